package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uplift/internal/utils"
	"uplift/pkg/types"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type TokenRepository struct {
	db *mongo.Database
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) tokens() *mongo.Collection {
	return r.db.Collection(tokensCollection)
}

// Issue creates a fresh opaque token for the user.
func (r *TokenRepository) Issue(ctx context.Context, userID bson.ObjectID) (*types.Token, error) {
	token := &types.Token{
		Hash:      utils.NanoID(),
		User:      userID,
		CreatedAt: time.Now(),
	}
	result, err := r.tokens().InsertOne(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	if id, ok := result.InsertedID.(bson.ObjectID); ok {
		token.ID = id
	}
	return token, nil
}

// Resolve looks a token up by hash and slides its createdAt forward, so the
// TTL index only ever expires idle sessions.
func (r *TokenRepository) Resolve(ctx context.Context, hash string) (*types.Token, error) {
	var token types.Token
	err := r.tokens().FindOne(ctx, bson.D{{Key: "hash", Value: hash}}).Decode(&token)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, types.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}

	token.CreatedAt = time.Now()
	_, err = r.tokens().UpdateOne(ctx,
		bson.D{{Key: "hash", Value: hash}},
		bson.M{"$set": bson.M{"createdAt": token.CreatedAt}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to renew token: %w", err)
	}
	return &token, nil
}

func (r *TokenRepository) Revoke(ctx context.Context, hash string) (int64, error) {
	result, err := r.tokens().DeleteOne(ctx, bson.D{{Key: "hash", Value: hash}})
	if err != nil {
		return 0, fmt.Errorf("failed to revoke token: %w", err)
	}
	return result.DeletedCount, nil
}
