package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func stageNames(pipeline mongo.Pipeline) []string {
	names := make([]string, 0, len(pipeline))
	for _, stage := range pipeline {
		names = append(names, stage[0].Key)
	}
	return names
}

func stageValue(t *testing.T, pipeline mongo.Pipeline, index int) bson.D {
	t.Helper()
	require.Less(t, index, len(pipeline))
	value, ok := pipeline[index][0].Value.(bson.D)
	require.True(t, ok, "stage %d value is not a document", index)
	return value
}

func docField(t *testing.T, doc bson.D, key string) any {
	t.Helper()
	for _, e := range doc {
		if e.Key == key {
			return e.Value
		}
	}
	t.Fatalf("field %q not found in %v", key, doc)
	return nil
}

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{"zero value gets defaults", Pagination{}, Pagination{Skip: 0, Limit: 10}},
		{"negative skip clamps", Pagination{Skip: -5, Limit: 20}, Pagination{Skip: 0, Limit: 20}},
		{"negative limit gets default", Pagination{Skip: 3, Limit: -1}, Pagination{Skip: 3, Limit: 10}},
		{"explicit window passes through", Pagination{Skip: 40, Limit: 25}, Pagination{Skip: 40, Limit: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestWithIDTiebreak(t *testing.T) {
	t.Run("appends id following primary direction", func(t *testing.T) {
		sort := withIDTiebreak(bson.D{{Key: "createdAt", Value: -1}})
		assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, sort)

		sort = withIDTiebreak(bson.D{{Key: "title", Value: 1}})
		assert.Equal(t, bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}}, sort)
	})

	t.Run("leaves explicit id keys alone", func(t *testing.T) {
		sort := bson.D{{Key: "_id", Value: -1}}
		assert.Equal(t, sort, withIDTiebreak(sort))
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := bson.D{{Key: "createdAt", Value: -1}}
		withIDTiebreak(in)
		assert.Len(t, in, 1)
	})
}

func TestIncludeAndFirstFields(t *testing.T) {
	assert.Equal(t,
		bson.D{{Key: "title", Value: 1}, {Key: "cover", Value: 1}},
		includeFields("title", "cover"),
	)
	assert.Equal(t,
		bson.D{{Key: "title", Value: bson.D{{Key: "$first", Value: "$title"}}}},
		firstFields("title"),
	)
}

func TestLookupViewerFollowsStage(t *testing.T) {
	viewer := bson.NewObjectID()
	stage := lookupViewerFollowsStage(viewer)

	require.Equal(t, "$lookup", stage[0].Key)
	lookup, ok := stage[0].Value.(bson.D)
	require.True(t, ok)

	assert.Equal(t, followProjectsCollection, docField(t, lookup, "from"))
	assert.Equal(t, "lookupFollowing", docField(t, lookup, "as"))
}

func TestLookupOwnerStages(t *testing.T) {
	t.Run("anonymous viewer gets literal false", func(t *testing.T) {
		stages := lookupOwnerStages(nil)
		require.Len(t, stages, 2)

		addFields, ok := stages[1][0].Value.(bson.D)
		require.True(t, ok)
		assert.Equal(t, false, docField(t, addFields, "isFollow"))
	})

	t.Run("viewer gets anyElementTrue over the join", func(t *testing.T) {
		viewer := bson.NewObjectID()
		stages := lookupOwnerStages(&viewer)

		addFields, ok := stages[1][0].Value.(bson.D)
		require.True(t, ok)
		assert.Equal(t,
			bson.D{{Key: "$anyElementTrue", Value: bson.A{"$lookupFollowing"}}},
			docField(t, addFields, "isFollow"),
		)
	})
}
