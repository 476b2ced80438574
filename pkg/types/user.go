package types

import (
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role codes are stable wire values shared with existing clients and the
// seeded database. Do not renumber.
type Role int

const (
	RoleAdmin     Role = 1
	RoleBusiness  Role = 2
	RoleNonProfit Role = 3
	RoleDonor     Role = 4
	RoleStudent   Role = 5
)

func (r Role) Individual() bool {
	return r == RoleDonor || r == RoleStudent
}

func (r Role) Organization() bool {
	return r == RoleBusiness || r == RoleNonProfit
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User carries role-conditional attributes: individual fields (firstName,
// lastName, birthDate, gender, school) are present only for donors and
// students, organization fields (companyName, address) only for businesses
// and nonprofits, and ein/billingAddress only for nonprofits. Validate
// enforces the full matrix on create.
type User struct {
	ID     bson.ObjectID `bson:"_id,omitempty"`
	Email  string        `bson:"email"`
	Role   Role          `bson:"role"`
	Avatar *string       `bson:"avatar,omitempty"`

	// Individual attributes (donor, student)
	FirstName *string        `bson:"firstName,omitempty"`
	LastName  *string        `bson:"lastName,omitempty"`
	BirthDate *int64         `bson:"birthDate,omitempty"` // unix seconds
	Gender    *Gender        `bson:"gender,omitempty"`
	School    *bson.ObjectID `bson:"school,omitempty"` // student only

	// Organization attributes (business, nonProfit)
	CompanyName *string `bson:"companyName,omitempty"`
	Address     *string `bson:"address,omitempty"`

	// NonProfit attributes
	EIN            *string `bson:"ein,omitempty"`
	BillingAddress *string `bson:"billingAddress,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

var einPattern = regexp.MustCompile(`^[1-9]\d?-\d{7}$`)

const minAgeYears = 16

// Validate checks the role-conditional field matrix applied when a user is
// created. Updates intentionally skip this check, matching the behavior the
// platform has always had.
func (u *User) Validate(now time.Time) error {
	if u.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	switch u.Role {
	case RoleBusiness, RoleNonProfit, RoleDonor, RoleStudent:
	default:
		return fmt.Errorf("%w: unknown role %d", ErrValidation, u.Role)
	}

	if u.Role.Individual() {
		if err := u.validateIndividual(now); err != nil {
			return err
		}
		if u.CompanyName != nil || u.Address != nil || u.EIN != nil || u.BillingAddress != nil {
			return fmt.Errorf("%w: organization fields are forbidden for role %d", ErrValidation, u.Role)
		}
		return nil
	}

	return u.validateOrganization()
}

func (u *User) validateIndividual(now time.Time) error {
	if u.FirstName == nil || u.LastName == nil {
		return fmt.Errorf("%w: firstName and lastName are required for role %d", ErrValidation, u.Role)
	}
	if u.BirthDate == nil {
		return fmt.Errorf("%w: birthDate is required for role %d", ErrValidation, u.Role)
	}
	if *u.BirthDate > now.AddDate(-minAgeYears, 0, 0).Unix() {
		return fmt.Errorf("%w: user must be at least %d years old", ErrValidation, minAgeYears)
	}
	if u.Gender == nil {
		return fmt.Errorf("%w: gender is required for role %d", ErrValidation, u.Role)
	}
	switch *u.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return fmt.Errorf("%w: invalid gender %q", ErrValidation, *u.Gender)
	}
	if u.Role == RoleStudent && u.School == nil {
		return fmt.Errorf("%w: school is required for students", ErrValidation)
	}
	if u.Role == RoleDonor && u.School != nil {
		return fmt.Errorf("%w: school is forbidden for donors", ErrValidation)
	}
	return nil
}

func (u *User) validateOrganization() error {
	if u.CompanyName == nil || u.Address == nil {
		return fmt.Errorf("%w: companyName and address are required for role %d", ErrValidation, u.Role)
	}
	if u.FirstName != nil || u.LastName != nil || u.BirthDate != nil || u.Gender != nil || u.School != nil {
		return fmt.Errorf("%w: individual fields are forbidden for role %d", ErrValidation, u.Role)
	}
	if u.Role == RoleNonProfit {
		if u.EIN == nil || u.BillingAddress == nil {
			return fmt.Errorf("%w: ein and billingAddress are required for nonprofits", ErrValidation)
		}
		if !einPattern.MatchString(*u.EIN) {
			return fmt.Errorf("%w: malformed ein %q", ErrValidation, *u.EIN)
		}
		return nil
	}
	if u.EIN != nil || u.BillingAddress != nil {
		return fmt.Errorf("%w: ein and billingAddress are forbidden for role %d", ErrValidation, u.Role)
	}
	return nil
}

// UserUpdate is the partial update payload. No role-conditional check is
// applied here; see User.Validate.
type UserUpdate struct {
	FirstName      *string        `bson:"firstName,omitempty"`
	LastName       *string        `bson:"lastName,omitempty"`
	BirthDate      *int64         `bson:"birthDate,omitempty"`
	Gender         *Gender        `bson:"gender,omitempty"`
	School         *bson.ObjectID `bson:"school,omitempty"`
	CompanyName    *string        `bson:"companyName,omitempty"`
	Address        *string        `bson:"address,omitempty"`
	EIN            *string        `bson:"ein,omitempty"`
	BillingAddress *string        `bson:"billingAddress,omitempty"`
	Avatar         *string        `bson:"avatar,omitempty"`
}
