package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uplift/internal/utils"
	"uplift/pkg/types"

	"github.com/brianvoe/gofakeit/v6"
)

var genders = []types.Gender{types.GenderMale, types.GenderFemale, types.GenderOther}

func (s *Seeder) seedUsers(ctx context.Context, config *types.Config, schools []types.School) (nonProfits, individuals []*types.User, err error) {
	for i := 0; i < config.SeedNonProfits; i++ {
		user := fakeOrganization(types.RoleNonProfit)
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, types.ErrDuplicate) {
				continue
			}
			return nil, nil, fmt.Errorf("seed nonprofit: %w", err)
		}
		nonProfits = append(nonProfits, user)
	}

	for i := 0; i < config.SeedStudents; i++ {
		school := schools[gofakeit.Number(0, len(schools)-1)]
		user := fakeIndividual(types.RoleStudent)
		user.School = &school.ID
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, types.ErrDuplicate) {
				continue
			}
			return nil, nil, fmt.Errorf("seed student: %w", err)
		}
		individuals = append(individuals, user)
	}

	for i := 0; i < config.SeedDonors; i++ {
		user := fakeIndividual(types.RoleDonor)
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, types.ErrDuplicate) {
				continue
			}
			return nil, nil, fmt.Errorf("seed donor: %w", err)
		}
		individuals = append(individuals, user)
	}

	return nonProfits, individuals, nil
}

func fakeOrganization(role types.Role) *types.User {
	user := &types.User{
		Email:       gofakeit.Email(),
		Role:        role,
		CompanyName: utils.StringPtr(gofakeit.Company()),
		Address:     utils.StringPtr(gofakeit.Address().Address),
		Avatar:      utils.StringPtr(gofakeit.ImageURL(256, 256)),
	}
	if role == types.RoleNonProfit {
		user.EIN = utils.StringPtr(fmt.Sprintf("%d-%07d", gofakeit.Number(10, 99), gofakeit.Number(0, 9999999)))
		user.BillingAddress = utils.StringPtr(gofakeit.Address().Address)
	}
	return user
}

func fakeIndividual(role types.Role) *types.User {
	gender := genders[gofakeit.Number(0, len(genders)-1)]
	birth := time.Now().AddDate(-gofakeit.Number(17, 60), 0, 0).Unix()
	return &types.User{
		Email:     gofakeit.Email(),
		Role:      role,
		FirstName: utils.StringPtr(gofakeit.FirstName()),
		LastName:  utils.StringPtr(gofakeit.LastName()),
		BirthDate: utils.Int64Ptr(birth),
		Gender:    &gender,
		Avatar:    utils.StringPtr(gofakeit.ImageURL(256, 256)),
	}
}

func (s *Seeder) seedFollows(ctx context.Context, nonProfits, individuals []*types.User) error {
	if len(nonProfits) == 0 || len(individuals) == 0 {
		return nil
	}
	for _, user := range individuals {
		target := nonProfits[gofakeit.Number(0, len(nonProfits)-1)]
		err := s.users.Follow(ctx, user.ID, target.ID)
		if err != nil && !errors.Is(err, types.ErrDuplicate) {
			return fmt.Errorf("seed follow: %w", err)
		}
	}
	return nil
}
