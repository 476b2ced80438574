package db

import (
	"context"
	"fmt"
	"time"

	"uplift/pkg/types"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func Connect(ctx context.Context, config *types.Config) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().ApplyURI(config.MongoURI)
	if config.MongoMaxPoolSize > 0 {
		opts.SetMaxPoolSize(config.MongoMaxPoolSize)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, client.Database(config.MongoDatabase), nil
}

// EnsureIndexes creates the indexes the repositories rely on: uniqueness of
// emails, follow edges and the one-row-per-(user, project) participation
// invariant, plus the sliding token TTL.
func EnsureIndexes(ctx context.Context, database *mongo.Database, tokenTTLSec int32) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"projects": {
			{Keys: bson.D{{Key: "user", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		"needs": {
			{Keys: bson.D{{Key: "project", Value: 1}}},
		},
		"needsparticipants": {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "project", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "need", Value: 1}}},
		},
		"followusers": {
			{Keys: bson.D{{Key: "follower", Value: 1}, {Key: "following", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "following", Value: 1}}},
		},
		"followprojects": {
			{Keys: bson.D{{Key: "follower", Value: 1}, {Key: "following", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "following", Value: 1}}},
		},
		"tokens": {
			{Keys: bson.D{{Key: "hash", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "createdAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(tokenTTLSec)},
		},
	}

	for collection, models := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", collection, err)
		}
	}
	return nil
}
