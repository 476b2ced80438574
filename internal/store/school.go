package store

import (
	"context"
	"errors"
	"fmt"

	"uplift/pkg/types"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type SchoolRepository struct {
	db *mongo.Database
}

func NewSchoolRepository(db *mongo.Database) *SchoolRepository {
	return &SchoolRepository{db: db}
}

func (r *SchoolRepository) schools() *mongo.Collection {
	return r.db.Collection(schoolsCollection)
}

func (r *SchoolRepository) All(ctx context.Context) ([]*types.School, error) {
	cursor, err := r.schools().Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}

	var schools []*types.School
	if err := cursor.All(ctx, &schools); err != nil {
		return nil, fmt.Errorf("failed to decode schools: %w", err)
	}
	return schools, nil
}

func (r *SchoolRepository) ByID(ctx context.Context, schoolID bson.ObjectID) (*types.School, error) {
	var school types.School
	err := r.schools().FindOne(ctx, bson.D{{Key: "_id", Value: schoolID}}).Decode(&school)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, types.ErrSchoolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch school %s: %w", schoolID.Hex(), err)
	}
	return &school, nil
}

func (r *SchoolRepository) CreateMany(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	docs := make([]any, 0, len(names))
	for _, name := range names {
		docs = append(docs, types.School{Name: name})
	}
	if _, err := r.schools().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create schools: %w", err)
	}
	return nil
}
