package store

import (
	"context"
	"fmt"
	"time"

	"uplift/pkg/types"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type NeedRepository struct {
	db *mongo.Database
}

func NewNeedRepository(db *mongo.Database) *NeedRepository {
	return &NeedRepository{db: db}
}

func (r *NeedRepository) needs() *mongo.Collection {
	return r.db.Collection(needsCollection)
}

func (r *NeedRepository) ByProject(ctx context.Context, projectID bson.ObjectID) ([]*types.Need, error) {
	cursor, err := r.needs().Find(ctx,
		bson.D{{Key: "project", Value: projectID}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list needs for project %s: %w", projectID.Hex(), err)
	}

	var needs []*types.Need
	if err := cursor.All(ctx, &needs); err != nil {
		return nil, fmt.Errorf("failed to decode needs for project %s: %w", projectID.Hex(), err)
	}
	return needs, nil
}

// CreateMany attaches needs to a project. Every need type must be declared on
// the project.
func (r *NeedRepository) CreateMany(ctx context.Context, project *types.Project, needs []*types.Need) error {
	if len(needs) == 0 {
		return nil
	}
	if !CheckNeedsValid(needs, project.ProjectType) {
		return fmt.Errorf("%w: need type not declared on project", types.ErrValidation)
	}

	now := time.Now()
	docs := make([]any, 0, len(needs))
	for _, need := range needs {
		need.ID = bson.NewObjectID()
		need.Project = project.ID
		need.CreatedAt = now
		docs = append(docs, need)
	}

	if _, err := r.needs().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create needs for project %s: %w", project.ID.Hex(), err)
	}
	return nil
}

func (r *NeedRepository) Update(ctx context.Context, project *types.Project, need *types.Need) (int64, error) {
	if !CheckNeedsValid([]*types.Need{need}, project.ProjectType) {
		return 0, fmt.Errorf("%w: need type not declared on project", types.ErrValidation)
	}

	result, err := r.needs().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: need.ID}, {Key: "project", Value: project.ID}},
		bson.M{"$set": bson.M{
			"type":  need.Type,
			"value": need.Value,
			"of":    need.Of,
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update need %s: %w", need.ID.Hex(), err)
	}
	return result.MatchedCount, nil
}

func (r *NeedRepository) Delete(ctx context.Context, projectID, needID bson.ObjectID) (int64, error) {
	result, err := r.needs().DeleteOne(ctx, bson.D{
		{Key: "_id", Value: needID},
		{Key: "project", Value: projectID},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete need %s: %w", needID.Hex(), err)
	}
	return result.DeletedCount, nil
}
