package store

import (
	"testing"

	"uplift/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestListProjectsPipeline(t *testing.T) {
	t.Run("anonymous listing", func(t *testing.T) {
		pipeline := ListProjectsPipeline(nil, nil, Pagination{}, nil)

		assert.Equal(t,
			[]string{"$match", "$sort", "$skip", "$limit", "$lookup", "$addFields", "$project"},
			stageNames(pipeline),
		)

		// Default window and sort with stable tiebreak.
		assert.Equal(t, int64(0), pipeline[2][0].Value)
		assert.Equal(t, int64(10), pipeline[3][0].Value)
		assert.Equal(t,
			bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			stageValue(t, pipeline, 1),
		)

		addFields := stageValue(t, pipeline, 5)
		assert.Equal(t, false, docField(t, addFields, "isFollow"))
	})

	t.Run("viewer adds the follow join before the owner join", func(t *testing.T) {
		viewer := bson.NewObjectID()
		pipeline := ListProjectsPipeline(nil, nil, Pagination{Skip: 20, Limit: 5}, &viewer)

		assert.Equal(t,
			[]string{"$match", "$sort", "$skip", "$limit", "$lookup", "$lookup", "$addFields", "$project"},
			stageNames(pipeline),
		)
		assert.Equal(t, int64(20), pipeline[2][0].Value)
		assert.Equal(t, int64(5), pipeline[3][0].Value)

		follows := stageValue(t, pipeline, 4)
		assert.Equal(t, followProjectsCollection, docField(t, follows, "from"))
	})

	t.Run("filter and sort pass through", func(t *testing.T) {
		filter := bson.D{{Key: "user", Value: bson.NewObjectID()}}
		sort := bson.D{{Key: "title", Value: 1}}
		pipeline := ListProjectsPipeline(filter, sort, Pagination{}, nil)

		assert.Equal(t, filter, stageValue(t, pipeline, 0))
		assert.Equal(t,
			bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}},
			stageValue(t, pipeline, 1),
		)
	})

	t.Run("projection is a fixed allow-list", func(t *testing.T) {
		pipeline := ListProjectsPipeline(nil, nil, Pagination{}, nil)
		projection := stageValue(t, pipeline, len(pipeline)-1)

		for _, field := range summaryProjectFields {
			docField(t, projection, field)
		}
		user, ok := docField(t, projection, "user").(bson.D)
		require.True(t, ok)
		for _, field := range ownerFields {
			docField(t, user, field)
		}
	})
}

func TestProjectDetailPipeline(t *testing.T) {
	projectID := bson.NewObjectID()

	t.Run("anonymous detail", func(t *testing.T) {
		pipeline := ProjectDetailPipeline(projectID, nil)

		assert.Equal(t,
			[]string{"$match", "$lookup", "$unwind", "$sort", "$lookup", "$addFields",
				"$group", "$lookup", "$addFields", "$project"},
			stageNames(pipeline),
		)
		assert.Equal(t, bson.D{{Key: "_id", Value: projectID}}, stageValue(t, pipeline, 0))
	})

	t.Run("viewer adds follow and participation joins after the group", func(t *testing.T) {
		viewer := bson.NewObjectID()
		pipeline := ProjectDetailPipeline(projectID, &viewer)

		assert.Equal(t,
			[]string{"$match", "$lookup", "$unwind", "$sort", "$lookup", "$addFields",
				"$group", "$lookup", "$lookup", "$lookup", "$addFields", "$project"},
			stageNames(pipeline),
		)
	})

	t.Run("group collapses needs back into an array", func(t *testing.T) {
		pipeline := ProjectDetailPipeline(projectID, nil)
		group := stageValue(t, pipeline, 6)

		assert.Equal(t, "$_id", docField(t, group, "_id"))
		assert.Equal(t, bson.D{{Key: "$push", Value: "$needs"}}, docField(t, group, "needs"))
		assert.Equal(t, bson.D{{Key: "$first", Value: "$title"}}, docField(t, group, "title"))
	})

	t.Run("zero needs collapse to an empty array", func(t *testing.T) {
		pipeline := ProjectDetailPipeline(projectID, nil)
		projection := stageValue(t, pipeline, len(pipeline)-1)

		needs, ok := docField(t, projection, "needs").(bson.D)
		require.True(t, ok)
		cond, ok := needs[0].Value.(bson.D)
		require.True(t, ok)

		// The unwind-of-nothing placeholder is a document whose only field
		// is the computed current: 0.
		assert.Equal(t,
			bson.D{{Key: "$eq", Value: bson.A{
				bson.D{{Key: "$arrayElemAt", Value: bson.A{"$needs", 0}}},
				bson.D{{Key: "current", Value: 0}},
			}}},
			docField(t, cond, "if"),
		)
		assert.Equal(t, bson.A{}, docField(t, cond, "then"))
		assert.Equal(t, "$needs", docField(t, cond, "else"))
	})

	t.Run("viewer participation is mapped down to need ids", func(t *testing.T) {
		viewer := bson.NewObjectID()
		pipeline := ProjectDetailPipeline(projectID, &viewer)
		projection := stageValue(t, pipeline, len(pipeline)-1)

		participation, ok := docField(t, projection, "participation").(bson.D)
		require.True(t, ok)
		mapExpr, ok := participation[0].Value.(bson.D)
		require.True(t, ok)
		assert.Equal(t, "$$request.need", docField(t, mapExpr, "in"))
	})

	t.Run("fulfillment sums participant values", func(t *testing.T) {
		pipeline := ProjectDetailPipeline(projectID, nil)
		addFields := stageValue(t, pipeline, 5)

		current, ok := docField(t, addFields, "needs.current").(bson.D)
		require.True(t, ok)
		sum, ok := current[0].Value.(bson.D)
		require.True(t, ok)
		mapExpr, ok := sum[0].Value.(bson.D)
		require.True(t, ok)
		assert.Equal(t, "$participants", docField(t, mapExpr, "input"))
		assert.Equal(t, "$$request.value", docField(t, mapExpr, "in"))
	})
}

func TestCheckNeedsValid(t *testing.T) {
	volunteer := &types.Need{Type: types.ProjectTypeVolunteer}
	money := &types.Need{Type: types.ProjectTypeMoney}
	pickup := &types.Need{Type: types.ProjectTypePickup}

	tests := []struct {
		name         string
		needs        []*types.Need
		projectTypes []types.ProjectType
		want         bool
	}{
		{"all declared", []*types.Need{volunteer, money}, []types.ProjectType{types.ProjectTypeVolunteer, types.ProjectTypeMoney}, true},
		{"one undeclared", []*types.Need{volunteer, pickup}, []types.ProjectType{types.ProjectTypeVolunteer}, false},
		{"empty needs are valid", nil, []types.ProjectType{types.ProjectTypeVolunteer}, true},
		{"no declared types rejects everything", []*types.Need{volunteer}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckNeedsValid(tt.needs, tt.projectTypes))
		})
	}
}
