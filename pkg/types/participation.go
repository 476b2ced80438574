package types

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ParticipationStatus codes are stable wire values.
type ParticipationStatus int

const (
	ParticipationPending ParticipationStatus = 0
	ParticipationConfirm ParticipationStatus = 1
	ParticipationReject  ParticipationStatus = 2
)

// MinActiveHours is the smallest quantity a confirmation may credit.
const MinActiveHours = 0.1

// Participation is a user's claim against a need. At most one row exists per
// (user, project) pair; re-applying replaces the previous row. ActiveHours is
// present only while the row is confirmed. Value is the contributed quantity
// summed into the need's fulfillment.
type Participation struct {
	ID          bson.ObjectID       `bson:"_id,omitempty"`
	User        bson.ObjectID       `bson:"user"`
	Project     bson.ObjectID       `bson:"project"`
	Need        bson.ObjectID       `bson:"need"`
	Status      ParticipationStatus `bson:"status"`
	ActiveHours *float64            `bson:"activeHours,omitempty"`
	Value       *float64            `bson:"value,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt"`
}

// ParticipationRequest is one row of the per-need request listing, with the
// applicant joined in.
type ParticipationRequest struct {
	ID          bson.ObjectID       `bson:"_id"`
	Status      ParticipationStatus `bson:"status"`
	ActiveHours *float64            `bson:"activeHours,omitempty"`
	User        RequestUser         `bson:"user"`
}

// RequestUser is the slice of the applicant exposed on request listings.
type RequestUser struct {
	ID          bson.ObjectID `bson:"_id"`
	FirstName   *string       `bson:"firstName,omitempty"`
	LastName    *string       `bson:"lastName,omitempty"`
	CompanyName *string       `bson:"companyName,omitempty"`
	Avatar      *string       `bson:"avatar,omitempty"`
	Role        Role          `bson:"role"`
}
