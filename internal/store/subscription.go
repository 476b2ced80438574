package store

import (
	"context"
	"fmt"
	"time"

	"uplift/pkg/types"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type SubscriptionRepository struct {
	db *mongo.Database
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) subscriptions() *mongo.Collection {
	return r.db.Collection(subscriptionsCollection)
}

func (r *SubscriptionRepository) Create(ctx context.Context, email string) error {
	sub := types.EmailSubscription{Email: email, CreatedAt: time.Now()}
	_, err := r.subscriptions().InsertOne(ctx, sub)
	if mongo.IsDuplicateKeyError(err) {
		return types.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// All returns every captured email. TODO: paginate once the landing form
// traffic justifies it.
func (r *SubscriptionRepository) All(ctx context.Context) ([]*types.EmailSubscription, error) {
	cursor, err := r.subscriptions().Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	var subs []*types.EmailSubscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode subscriptions: %w", err)
	}
	return subs, nil
}
