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

var projectTypePool = [][]types.ProjectType{
	{types.ProjectTypeVolunteer},
	{types.ProjectTypeMoney},
	{types.ProjectTypeVolunteer, types.ProjectTypeMoney},
	{types.ProjectTypeVolunteer, types.ProjectTypeMoney, types.ProjectTypePickup},
}

const coverURL = "https://picsum.photos/1920/640"

func (s *Seeder) seedProjects(ctx context.Context, nonProfits, individuals []*types.User) error {
	for _, owner := range nonProfits {
		for i := 0; i < gofakeit.Number(1, maxProjectsPerNonProfit); i++ {
			project, needs, err := s.seedProject(ctx, owner)
			if err != nil {
				return err
			}
			if err := s.seedParticipants(ctx, project, needs, individuals); err != nil {
				return err
			}
			if err := s.seedProjectFollows(ctx, project, individuals); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedProject(ctx context.Context, owner *types.User) (*types.Project, []*types.Need, error) {
	projectTypes := projectTypePool[gofakeit.Number(0, len(projectTypePool)-1)]
	start := time.Now().Add(time.Duration(gofakeit.Number(3, 72)) * time.Hour)

	project := &types.Project{
		User:        owner.ID,
		Title:       gofakeit.Sentence(3),
		ProjectType: projectTypes,
		Description: []types.DescriptionBlock{
			{Value: gofakeit.Paragraph(1, 3, 12, " "), Type: 0},
		},
		Cover: coverURL,
		Location: &types.Location{
			Geo:  []float64{gofakeit.Longitude(), gofakeit.Latitude()},
			Name: gofakeit.City(),
		},
		StartDate: start.Unix(),
		EndDate:   start.Add(time.Duration(gofakeit.Number(24, 24*30)) * time.Hour).Unix(),
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, nil, fmt.Errorf("seed project: %w", err)
	}

	needs := make([]*types.Need, 0, maxNeedsPerProject)
	for i := 0; i < gofakeit.Number(1, maxNeedsPerProject); i++ {
		needs = append(needs, &types.Need{
			Type:  projectTypes[gofakeit.Number(0, len(projectTypes)-1)],
			Value: gofakeit.Sentence(2),
			Of:    float64(gofakeit.Number(5, 200)),
		})
	}
	if err := s.needs.CreateMany(ctx, project, needs); err != nil {
		return nil, nil, fmt.Errorf("seed needs: %w", err)
	}
	return project, needs, nil
}

// seedParticipants walks a sample of individuals through the real
// application flow: apply, then for some rows a confirm/reject, then a
// contribution toward the need.
func (s *Seeder) seedParticipants(ctx context.Context, project *types.Project, needs []*types.Need, individuals []*types.User) error {
	if len(individuals) == 0 || len(needs) == 0 {
		return nil
	}

	count := gofakeit.Number(0, maxParticipantsPerProject)
	if count > len(individuals) {
		count = len(individuals)
	}

	for _, user := range pickUsers(individuals, count) {
		need := needs[gofakeit.Number(0, len(needs)-1)]
		if err := s.participants.Apply(ctx, project.ID, need.ID, user.ID); err != nil {
			return fmt.Errorf("seed apply: %w", err)
		}

		row, err := s.participants.ByUserAndProject(ctx, user.ID, project.ID)
		if err != nil {
			if errors.Is(err, types.ErrParticipationNotFound) {
				continue
			}
			return fmt.Errorf("seed participation lookup: %w", err)
		}

		switch gofakeit.Number(0, 2) {
		case int(types.ParticipationConfirm):
			hours := utils.Float64Ptr(float64(gofakeit.Number(1, 120)) / 10)
			if _, err := s.participants.ChangeStatus(ctx, project.ID, row.ID, types.ParticipationConfirm, hours); err != nil {
				return fmt.Errorf("seed confirm: %w", err)
			}
		case int(types.ParticipationReject):
			if _, err := s.participants.ChangeStatus(ctx, project.ID, row.ID, types.ParticipationReject, nil); err != nil {
				return fmt.Errorf("seed reject: %w", err)
			}
		}

		if gofakeit.Bool() {
			value := float64(gofakeit.Number(1, 50))
			if _, err := s.participants.Contribute(ctx, project.ID, row.ID, value); err != nil {
				return fmt.Errorf("seed contribution: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedProjectFollows(ctx context.Context, project *types.Project, individuals []*types.User) error {
	if len(individuals) == 0 {
		return nil
	}
	for _, user := range pickUsers(individuals, gofakeit.Number(0, 10)) {
		err := s.projects.Follow(ctx, user.ID, project.ID)
		if err != nil && !errors.Is(err, types.ErrDuplicate) {
			return fmt.Errorf("seed project follow: %w", err)
		}
	}
	return nil
}

// pickUsers samples up to count distinct users.
func pickUsers(users []*types.User, count int) []*types.User {
	if count >= len(users) {
		return users
	}
	picked := make([]*types.User, 0, count)
	seen := make(map[int]bool, count)
	for len(picked) < count {
		i := gofakeit.Number(0, len(users)-1)
		if seen[i] {
			continue
		}
		seen[i] = true
		picked = append(picked, users[i])
	}
	return picked
}
