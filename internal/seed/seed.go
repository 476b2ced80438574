// Package seed fills the database with realistic fixture data for local
// development and demos.
package seed

import (
	"context"
	"fmt"

	"uplift/internal/store"
	"uplift/pkg/types"

	"github.com/sirupsen/logrus"
)

const (
	maxProjectsPerNonProfit   = 15
	maxNeedsPerProject        = 8
	maxParticipantsPerProject = 25
)

type Seeder struct {
	log          *logrus.Logger
	users        *store.UserRepository
	projects     *store.ProjectRepository
	needs        *store.NeedRepository
	participants *store.ParticipationRepository
	schools      *store.SchoolRepository
}

func New(
	log *logrus.Logger,
	users *store.UserRepository,
	projects *store.ProjectRepository,
	needs *store.NeedRepository,
	participants *store.ParticipationRepository,
	schools *store.SchoolRepository,
) *Seeder {
	return &Seeder{
		log:          log,
		users:        users,
		projects:     projects,
		needs:        needs,
		participants: participants,
		schools:      schools,
	}
}

func (s *Seeder) Run(ctx context.Context, config *types.Config) error {
	schoolIDs, err := s.ensureSchools(ctx)
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"students":   config.SeedStudents,
		"donors":     config.SeedDonors,
		"nonprofits": config.SeedNonProfits,
	}).Info("seeding users")

	nonProfits, individuals, err := s.seedUsers(ctx, config, schoolIDs)
	if err != nil {
		return err
	}

	s.log.Info("seeding projects")
	if err := s.seedProjects(ctx, nonProfits, individuals); err != nil {
		return err
	}

	s.log.Info("seeding follows")
	if err := s.seedFollows(ctx, nonProfits, individuals); err != nil {
		return err
	}

	s.log.Info("seed complete")
	return nil
}

var schoolNames = []string{
	"Lincoln High School",
	"Roosevelt High School",
	"Jefferson Academy",
	"Washington Preparatory",
	"Franklin Community School",
	"Kennedy Institute",
}

func (s *Seeder) ensureSchools(ctx context.Context) ([]types.School, error) {
	existing, err := s.schools.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		if err := s.schools.CreateMany(ctx, schoolNames); err != nil {
			return nil, err
		}
		existing, err = s.schools.All(ctx)
		if err != nil {
			return nil, err
		}
	}

	schools := make([]types.School, 0, len(existing))
	for _, school := range existing {
		schools = append(schools, *school)
	}
	if len(schools) == 0 {
		return nil, fmt.Errorf("no schools available for student seed")
	}
	return schools, nil
}
