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

var (
	summaryProjectFields = []string{"projectType", "title", "isFollow", "description", "cover"}
	detailProjectFields  = []string{"projectType", "title", "description", "address", "cover",
		"startDate", "endDate", "location", "createdAt"}
	ownerFields = []string{"_id", "avatar", "companyName", "role"}
)

// DefaultProjectSort orders listings by creation time, newest first.
var DefaultProjectSort = bson.D{{Key: "createdAt", Value: -1}}

// ListProjectsPipeline builds the listing pipeline: filter, sort with id
// tiebreak, window, optional viewer follow join, owner join and a fixed
// projection allow-list.
func ListProjectsPipeline(filter bson.D, sort bson.D, page Pagination, viewerID *bson.ObjectID) mongo.Pipeline {
	page = page.Normalize()
	if len(sort) == 0 {
		sort = DefaultProjectSort
	}
	if filter == nil {
		filter = bson.D{}
	}

	pipeline := mongo.Pipeline{
		matchStage(filter),
		sortStage(withIDTiebreak(sort)),
		skipStage(page.Skip),
		limitStage(page.Limit),
	}

	if viewerID != nil {
		pipeline = append(pipeline, lookupViewerFollowsStage(*viewerID))
	}
	pipeline = append(pipeline, lookupOwnerStages(viewerID)...)

	projection := includeFields(summaryProjectFields...)
	projection = append(projection, bson.E{Key: "user", Value: includeFields(ownerFields...)})
	return append(pipeline, projectStage(projection))
}

// ProjectDetailPipeline builds the single-project pipeline: needs are joined
// and unwound, each need's fulfilled quantity is summed from its participant
// rows, then the document is re-grouped. Unwinding a project with no needs
// produces one placeholder row whose only field is current: 0; the final
// projection detects exactly that placeholder and replaces the needs array
// with an empty one.
func ProjectDetailPipeline(projectID bson.ObjectID, viewerID *bson.ObjectID) mongo.Pipeline {
	groupSpec := bson.D{{Key: "_id", Value: "$_id"}}
	groupSpec = append(groupSpec, firstFields(append(detailProjectFields, "user")...)...)
	groupSpec = append(groupSpec, bson.E{Key: "needs", Value: bson.D{{Key: "$push", Value: "$needs"}}})

	pipeline := mongo.Pipeline{
		matchStage(bson.D{{Key: "_id", Value: projectID}}),
		lookupStage(needsCollection, "_id", "project", "needs"),
		unwindStage("$needs", true),
		sortStage(bson.D{{Key: "needs", Value: 1}}),
		lookupStage(participantsCollection, "needs._id", "need", "participants"),
		addFieldsStage(bson.D{{Key: "needs.current", Value: bson.D{{Key: "$sum", Value: bson.D{
			{Key: "$map", Value: bson.D{
				{Key: "input", Value: "$participants"},
				{Key: "as", Value: "request"},
				{Key: "in", Value: "$$request.value"},
			}},
		}}}}}),
		groupStage(groupSpec),
	}

	if viewerID != nil {
		pipeline = append(pipeline,
			lookupViewerFollowsStage(*viewerID),
			lookupViewerParticipationStage(*viewerID, projectID),
		)
	}
	pipeline = append(pipeline, lookupOwnerStages(viewerID)...)

	projection := includeFields(append(detailProjectFields, "isFollow")...)
	projection = append(projection,
		bson.E{Key: "participation", Value: bson.D{{Key: "$map", Value: bson.D{
			{Key: "input", Value: "$participation"},
			{Key: "as", Value: "request"},
			{Key: "in", Value: "$$request.need"},
		}}}},
		bson.E{Key: "needs", Value: bson.D{{Key: "$cond", Value: bson.D{
			{Key: "if", Value: bson.D{{Key: "$eq", Value: bson.A{
				bson.D{{Key: "$arrayElemAt", Value: bson.A{"$needs", 0}}},
				bson.D{{Key: "current", Value: 0}},
			}}}},
			{Key: "then", Value: bson.A{}},
			{Key: "else", Value: "$needs"},
		}}}},
		bson.E{Key: "user", Value: includeFields(ownerFields...)},
	)
	return append(pipeline, projectStage(projection))
}

// CheckNeedsValid reports whether every need's type is declared on the parent
// project.
func CheckNeedsValid(needs []*types.Need, projectTypes []types.ProjectType) bool {
	for _, need := range needs {
		valid := false
		for _, pt := range projectTypes {
			if need.Type == pt {
				valid = true
				break
			}
		}
		if !valid {
			return false
		}
	}
	return true
}

type ProjectRepository struct {
	db *mongo.Database
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) projects() *mongo.Collection {
	return r.db.Collection(projectsCollection)
}

func (r *ProjectRepository) follows() *mongo.Collection {
	return r.db.Collection(followProjectsCollection)
}

func (r *ProjectRepository) List(ctx context.Context, filter bson.D, sort bson.D, page Pagination, viewerID *bson.ObjectID) ([]*types.ProjectSummary, error) {
	cursor, err := r.projects().Aggregate(ctx, ListProjectsPipeline(filter, sort, page, viewerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var projects []*types.ProjectSummary
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode project listing: %w", err)
	}
	return projects, nil
}

// Detail returns (nil, nil) when no project matches; absence signaling is the
// caller's responsibility.
func (r *ProjectRepository) Detail(ctx context.Context, projectID bson.ObjectID, viewerID *bson.ObjectID) (*types.ProjectDetail, error) {
	cursor, err := r.projects().Aggregate(ctx, ProjectDetailPipeline(projectID, viewerID))
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", projectID.Hex(), err)
	}

	var details []*types.ProjectDetail
	if err := cursor.All(ctx, &details); err != nil {
		return nil, fmt.Errorf("failed to decode project %s: %w", projectID.Hex(), err)
	}
	if len(details) == 0 {
		return nil, nil
	}
	return details[0], nil
}

func (r *ProjectRepository) ByID(ctx context.Context, projectID bson.ObjectID) (*types.Project, error) {
	var project types.Project
	err := r.projects().FindOne(ctx, bson.D{{Key: "_id", Value: projectID}}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, types.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project %s: %w", projectID.Hex(), err)
	}
	return &project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *types.Project) error {
	now := time.Now()
	project.ID = bson.NewObjectID()
	project.CreatedAt = now
	project.UpdatedAt = now

	if _, err := r.projects().InsertOne(ctx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, projectID bson.ObjectID, update *types.ProjectUpdate) (int64, error) {
	set, err := toSetDocument(update)
	if err != nil {
		return 0, fmt.Errorf("failed to build project update: %w", err)
	}
	set["updatedAt"] = time.Now()

	result, err := r.projects().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: projectID}},
		bson.M{"$set": set},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update project %s: %w", projectID.Hex(), err)
	}
	return result.MatchedCount, nil
}

func (r *ProjectRepository) Follow(ctx context.Context, followerID, projectID bson.ObjectID) error {
	edge := types.FollowProject{
		Follower:  followerID,
		Following: projectID,
		CreatedAt: time.Now(),
	}
	_, err := r.follows().InsertOne(ctx, edge)
	if mongo.IsDuplicateKeyError(err) {
		return types.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to follow project %s: %w", projectID.Hex(), err)
	}
	return nil
}

func (r *ProjectRepository) Unfollow(ctx context.Context, followerID, projectID bson.ObjectID) (int64, error) {
	result, err := r.follows().DeleteOne(ctx, bson.D{
		{Key: "follower", Value: followerID},
		{Key: "following", Value: projectID},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to unfollow project %s: %w", projectID.Hex(), err)
	}
	return result.DeletedCount, nil
}

// FollowedProjectIDs returns the ids of every project the user follows.
func (r *ProjectRepository) FollowedProjectIDs(ctx context.Context, followerID bson.ObjectID) ([]bson.ObjectID, error) {
	cursor, err := r.follows().Find(ctx,
		bson.D{{Key: "follower", Value: followerID}},
		options.Find().SetProjection(bson.D{{Key: "following", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list followed projects: %w", err)
	}

	var edges []types.FollowProject
	if err := cursor.All(ctx, &edges); err != nil {
		return nil, fmt.Errorf("failed to decode followed projects: %w", err)
	}

	ids := make([]bson.ObjectID, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.Following)
	}
	return ids, nil
}

// toSetDocument flattens a partial-update struct into a $set map, dropping
// unset fields via their omitempty tags.
func toSetDocument(update any) (bson.M, error) {
	raw, err := bson.Marshal(update)
	if err != nil {
		return nil, err
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	return set, nil
}
