package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uplift/pkg/types"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var requestUserFields = []string{"_id", "firstName", "lastName", "companyName", "avatar", "role"}

// RequestsByNeedPipeline lists a need's participation requests with the
// applicant joined in, newest first.
func RequestsByNeedPipeline(projectID, needID bson.ObjectID, page Pagination) mongo.Pipeline {
	page = page.Normalize()
	return mongo.Pipeline{
		matchStage(bson.D{
			{Key: "need", Value: needID},
			{Key: "project", Value: projectID},
		}),
		sortStage(withIDTiebreak(bson.D{{Key: "createdAt", Value: -1}})),
		skipStage(page.Skip),
		limitStage(page.Limit),
		lookupStage(usersCollection, "user", "_id", "user"),
		addFieldsStage(bson.D{
			{Key: "user", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$user", 0}}}},
		}),
		projectStage(append(includeFields("status", "activeHours"),
			bson.E{Key: "user", Value: includeFields(requestUserFields...)})),
	}
}

// buildStatusUpdate validates a status transition and produces the update
// document. Confirming requires activeHours; rejecting clears them.
func buildStatusUpdate(status types.ParticipationStatus, activeHours *float64) (bson.M, error) {
	switch status {
	case types.ParticipationConfirm:
		if activeHours == nil || *activeHours < types.MinActiveHours {
			return nil, fmt.Errorf("%w: confirm requires activeHours >= %v", types.ErrValidation, types.MinActiveHours)
		}
		return bson.M{"$set": bson.M{"status": status, "activeHours": *activeHours}}, nil
	case types.ParticipationReject:
		if activeHours != nil {
			return nil, fmt.Errorf("%w: activeHours is forbidden on reject", types.ErrValidation)
		}
		return bson.M{
			"$set":   bson.M{"status": status},
			"$unset": bson.M{"activeHours": ""},
		}, nil
	default:
		return nil, fmt.Errorf("%w: invalid participation status %d", types.ErrValidation, status)
	}
}

type ParticipationRepository struct {
	db *mongo.Database

	// StrictStatusChange turns the silent zero-match on a missing
	// participation into ErrParticipationNotFound.
	StrictStatusChange bool
}

func NewParticipationRepository(db *mongo.Database) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

func (r *ParticipationRepository) participants() *mongo.Collection {
	return r.db.Collection(participantsCollection)
}

func (r *ParticipationRepository) needs() *mongo.Collection {
	return r.db.Collection(needsCollection)
}

// Apply registers a pending participation for the user on a need. A user
// holds at most one row per project: re-applying replaces the previous row in
// a single upsert, whatever its need or status was. Returns ErrNeedNotFound
// when the need does not belong to the project.
func (r *ParticipationRepository) Apply(ctx context.Context, projectID, needID, userID bson.ObjectID) error {
	count, err := r.needs().CountDocuments(ctx, bson.D{
		{Key: "_id", Value: needID},
		{Key: "project", Value: projectID},
	})
	if err != nil {
		return fmt.Errorf("failed to check need %s: %w", needID.Hex(), err)
	}
	if count == 0 {
		return types.ErrNeedNotFound
	}

	// The replacement omits _id so an existing row keeps its identity.
	row := types.Participation{
		User:      userID,
		Project:   projectID,
		Need:      needID,
		Status:    types.ParticipationPending,
		CreatedAt: time.Now(),
	}
	_, err = r.participants().ReplaceOne(ctx,
		bson.D{{Key: "user", Value: userID}, {Key: "project", Value: projectID}},
		row,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to apply to need %s: %w", needID.Hex(), err)
	}
	return nil
}

// ChangeStatus confirms or rejects a participation request and returns the
// matched count. A zero match is tolerated unless StrictStatusChange is set.
func (r *ParticipationRepository) ChangeStatus(ctx context.Context, projectID, requestID bson.ObjectID, status types.ParticipationStatus, activeHours *float64) (int64, error) {
	update, err := buildStatusUpdate(status, activeHours)
	if err != nil {
		return 0, err
	}

	result, err := r.participants().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: requestID}, {Key: "project", Value: projectID}},
		update,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to change status of request %s: %w", requestID.Hex(), err)
	}
	if result.MatchedCount == 0 && r.StrictStatusChange {
		return 0, types.ErrParticipationNotFound
	}
	return result.MatchedCount, nil
}

// Contribute records the quantity a participant has put toward their need.
// The detail pipeline sums this value into the need's fulfillment.
func (r *ParticipationRepository) Contribute(ctx context.Context, projectID, requestID bson.ObjectID, value float64) (int64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("%w: contribution must be positive", types.ErrValidation)
	}
	result, err := r.participants().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: requestID}, {Key: "project", Value: projectID}},
		bson.M{"$set": bson.M{"value": value}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record contribution on request %s: %w", requestID.Hex(), err)
	}
	return result.MatchedCount, nil
}

// Withdraw removes the user's participation on a need and returns how many
// rows were actually removed.
func (r *ParticipationRepository) Withdraw(ctx context.Context, projectID, needID, userID bson.ObjectID) (int64, error) {
	result, err := r.participants().DeleteMany(ctx, bson.D{
		{Key: "user", Value: userID},
		{Key: "need", Value: needID},
		{Key: "project", Value: projectID},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to withdraw from need %s: %w", needID.Hex(), err)
	}
	return result.DeletedCount, nil
}

func (r *ParticipationRepository) RequestsByNeed(ctx context.Context, projectID, needID bson.ObjectID, page Pagination) ([]*types.ParticipationRequest, error) {
	cursor, err := r.participants().Aggregate(ctx, RequestsByNeedPipeline(projectID, needID, page))
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for need %s: %w", needID.Hex(), err)
	}

	var requests []*types.ParticipationRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode requests for need %s: %w", needID.Hex(), err)
	}
	return requests, nil
}

// ByUserAndProject returns the user's current row for a project, if any.
func (r *ParticipationRepository) ByUserAndProject(ctx context.Context, userID, projectID bson.ObjectID) (*types.Participation, error) {
	var row types.Participation
	err := r.participants().FindOne(ctx, bson.D{
		{Key: "user", Value: userID},
		{Key: "project", Value: projectID},
	}).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, types.ErrParticipationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch participation: %w", err)
	}
	return &row, nil
}
