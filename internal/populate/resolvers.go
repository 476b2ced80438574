package populate

import (
	"context"

	"uplift/internal/store"
	"uplift/pkg/types"
)

// DefaultResolvers is the platform's registry of virtual user fields. Each
// entry pairs a role predicate with the query producing the value.
func DefaultResolvers(users *store.UserRepository) map[string]Resolver {
	return map[string]Resolver{
		"projectsCount": {
			Applies: func(user *types.User) bool { return user.Role == types.RoleNonProfit },
			Resolve: func(ctx context.Context, user *types.User) (any, error) {
				return users.ProjectsCount(ctx, user.ID)
			},
		},
		"volunteerActivity": {
			Applies: func(user *types.User) bool { return user.Role.Individual() },
			Resolve: func(ctx context.Context, user *types.User) (any, error) {
				return users.VolunteerActivity(ctx, user.ID)
			},
		},
		"followersCount": {
			Applies: func(user *types.User) bool { return true },
			Resolve: func(ctx context.Context, user *types.User) (any, error) {
				return users.FollowersCount(ctx, user.ID)
			},
		},
		"followingCount": {
			Applies: func(user *types.User) bool { return true },
			Resolve: func(ctx context.Context, user *types.User) (any, error) {
				return users.FollowingCount(ctx, user.ID)
			},
		},
	}
}
