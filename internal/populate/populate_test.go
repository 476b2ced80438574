package populate

import (
	"context"
	"errors"
	"testing"

	"uplift/internal/utils"
	"uplift/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func testUser(role types.Role) *types.User {
	return &types.User{
		ID:    bson.NewObjectID(),
		Email: "someone@example.com",
		Role:  role,
	}
}

func always() func(*types.User) bool {
	return func(*types.User) bool { return true }
}

func constant(value any) func(context.Context, *types.User) (any, error) {
	return func(context.Context, *types.User) (any, error) { return value, nil }
}

func TestFieldsEmptyListReturnsBaseUnchanged(t *testing.T) {
	populator := New(map[string]Resolver{
		"projectsCount": {Applies: always(), Resolve: constant(int64(3))},
	})

	user := testUser(types.RoleNonProfit)
	doc, err := populator.Fields(context.Background(), user, "")
	require.NoError(t, err)

	base, err := toDocument(user)
	require.NoError(t, err)
	assert.Equal(t, base, doc)
}

func TestFieldsMergesResolvedValues(t *testing.T) {
	populator := New(map[string]Resolver{
		"followersCount": {Applies: always(), Resolve: constant(int64(7))},
		"followingCount": {Applies: always(), Resolve: constant(int64(2))},
	})

	user := testUser(types.RoleDonor)
	doc, err := populator.Fields(context.Background(), user, "followersCount followingCount")
	require.NoError(t, err)

	assert.Equal(t, int64(7), doc["followersCount"])
	assert.Equal(t, int64(2), doc["followingCount"])
	assert.Equal(t, user.Email, doc["email"])
}

func TestFieldsUnknownNameIsANoOp(t *testing.T) {
	populator := New(map[string]Resolver{})

	user := testUser(types.RoleStudent)
	doc, err := populator.Fields(context.Background(), user, "somethingUnregistered")
	require.NoError(t, err)
	assert.NotContains(t, doc, "somethingUnregistered")
}

func TestFieldsPredicateGatesTheKeyEntirely(t *testing.T) {
	resolved := false
	populator := New(map[string]Resolver{
		"projectsCount": {
			Applies: func(user *types.User) bool { return user.Role == types.RoleNonProfit },
			Resolve: func(context.Context, *types.User) (any, error) {
				resolved = true
				return int64(1), nil
			},
		},
	})

	doc, err := populator.Fields(context.Background(), testUser(types.RoleDonor), "projectsCount")
	require.NoError(t, err)

	// Not a null value: the key is simply absent.
	assert.NotContains(t, doc, "projectsCount")
	assert.False(t, resolved)
}

func TestFieldsDoesNotMutateTheBaseUser(t *testing.T) {
	populator := New(map[string]Resolver{
		"avatar": {Applies: always(), Resolve: constant("overwritten")},
	})

	user := testUser(types.RoleDonor)
	user.Avatar = utils.StringPtr("original")

	doc, err := populator.Fields(context.Background(), user, "avatar")
	require.NoError(t, err)
	assert.Equal(t, "overwritten", doc["avatar"])
	assert.Equal(t, "original", *user.Avatar)
}

func TestFieldsResolverErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	populator := New(map[string]Resolver{
		"followersCount": {Applies: always(), Resolve: constant(int64(1))},
		"projectsCount": {
			Applies: always(),
			Resolve: func(context.Context, *types.User) (any, error) { return nil, boom },
		},
	})

	_, err := populator.Fields(context.Background(), testUser(types.RoleNonProfit), "followersCount projectsCount")
	assert.ErrorIs(t, err, boom)
}

func TestDefaultResolverPredicates(t *testing.T) {
	resolvers := DefaultResolvers(nil)

	tests := []struct {
		field string
		role  types.Role
		want  bool
	}{
		{"projectsCount", types.RoleNonProfit, true},
		{"projectsCount", types.RoleBusiness, false},
		{"projectsCount", types.RoleDonor, false},
		{"volunteerActivity", types.RoleDonor, true},
		{"volunteerActivity", types.RoleStudent, true},
		{"volunteerActivity", types.RoleNonProfit, false},
		{"followersCount", types.RoleBusiness, true},
		{"followingCount", types.RoleStudent, true},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			resolver, ok := resolvers[tt.field]
			require.True(t, ok)
			assert.Equal(t, tt.want, resolver.Applies(testUser(tt.role)))
		})
	}
}
