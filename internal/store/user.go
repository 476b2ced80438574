package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uplift/pkg/types"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// VolunteerActivityPipeline sums the activeHours a user has been credited
// across their participations.
func VolunteerActivityPipeline(userID bson.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		matchStage(bson.D{{Key: "user", Value: userID}}),
		groupStage(bson.D{
			{Key: "_id", Value: nil},
			{Key: "sum", Value: bson.D{{Key: "$sum", Value: "$activeHours"}}},
		}),
	}
}

type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) users() *mongo.Collection {
	return r.db.Collection(usersCollection)
}

func (r *UserRepository) follows() *mongo.Collection {
	return r.db.Collection(followUsersCollection)
}

func (r *UserRepository) Create(ctx context.Context, user *types.User) error {
	now := time.Now()
	if err := user.Validate(now); err != nil {
		return err
	}

	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return types.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) ByID(ctx context.Context, userID bson.ObjectID) (*types.User, error) {
	var user types.User
	err := r.users().FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, types.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID.Hex(), err)
	}
	return &user, nil
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*types.User, error) {
	var user types.User
	err := r.users().FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, types.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

// Update applies a partial update. It runs no role-conditional check, which
// matches the platform's long-standing update behavior.
func (r *UserRepository) Update(ctx context.Context, userID bson.ObjectID, update *types.UserUpdate) (int64, error) {
	set, err := toSetDocument(update)
	if err != nil {
		return 0, fmt.Errorf("failed to build user update: %w", err)
	}
	set["updatedAt"] = time.Now()

	result, err := r.users().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}},
		bson.M{"$set": set},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update user %s: %w", userID.Hex(), err)
	}
	return result.MatchedCount, nil
}

func (r *UserRepository) Follow(ctx context.Context, followerID, followingID bson.ObjectID) error {
	edge := types.FollowUser{
		Follower:  followerID,
		Following: followingID,
		CreatedAt: time.Now(),
	}
	_, err := r.follows().InsertOne(ctx, edge)
	if mongo.IsDuplicateKeyError(err) {
		return types.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to follow user %s: %w", followingID.Hex(), err)
	}
	return nil
}

func (r *UserRepository) Unfollow(ctx context.Context, followerID, followingID bson.ObjectID) (int64, error) {
	result, err := r.follows().DeleteOne(ctx, bson.D{
		{Key: "follower", Value: followerID},
		{Key: "following", Value: followingID},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to unfollow user %s: %w", followingID.Hex(), err)
	}
	return result.DeletedCount, nil
}

func (r *UserRepository) FollowersCount(ctx context.Context, userID bson.ObjectID) (int64, error) {
	count, err := r.follows().CountDocuments(ctx, bson.D{{Key: "following", Value: userID}})
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

func (r *UserRepository) FollowingCount(ctx context.Context, userID bson.ObjectID) (int64, error) {
	count, err := r.follows().CountDocuments(ctx, bson.D{{Key: "follower", Value: userID}})
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return count, nil
}

func (r *UserRepository) ProjectsCount(ctx context.Context, userID bson.ObjectID) (int64, error) {
	count, err := r.db.Collection(projectsCollection).CountDocuments(ctx, bson.D{{Key: "user", Value: userID}})
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// VolunteerActivity sums the hours credited across the user's confirmed
// participations. A user with none has zero activity.
func (r *UserRepository) VolunteerActivity(ctx context.Context, userID bson.ObjectID) (float64, error) {
	cursor, err := r.db.Collection(participantsCollection).Aggregate(ctx, VolunteerActivityPipeline(userID))
	if err != nil {
		return 0, fmt.Errorf("failed to sum volunteer activity: %w", err)
	}

	var results []struct {
		Sum float64 `bson:"sum"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode volunteer activity: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Sum, nil
}
