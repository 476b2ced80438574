package store

import (
	"testing"

	"uplift/internal/utils"
	"uplift/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestBuildStatusUpdate(t *testing.T) {
	t.Run("confirm sets hours", func(t *testing.T) {
		update, err := buildStatusUpdate(types.ParticipationConfirm, utils.Float64Ptr(3))
		require.NoError(t, err)
		assert.Equal(t, bson.M{
			"$set": bson.M{"status": types.ParticipationConfirm, "activeHours": 3.0},
		}, update)
	})

	t.Run("confirm requires hours", func(t *testing.T) {
		_, err := buildStatusUpdate(types.ParticipationConfirm, nil)
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("confirm rejects hours below the floor", func(t *testing.T) {
		_, err := buildStatusUpdate(types.ParticipationConfirm, utils.Float64Ptr(0.05))
		assert.ErrorIs(t, err, types.ErrValidation)

		update, err := buildStatusUpdate(types.ParticipationConfirm, utils.Float64Ptr(types.MinActiveHours))
		require.NoError(t, err)
		assert.NotNil(t, update)
	})

	t.Run("reject clears hours", func(t *testing.T) {
		update, err := buildStatusUpdate(types.ParticipationReject, nil)
		require.NoError(t, err)
		assert.Equal(t, bson.M{
			"$set":   bson.M{"status": types.ParticipationReject},
			"$unset": bson.M{"activeHours": ""},
		}, update)
	})

	t.Run("reject forbids hours", func(t *testing.T) {
		_, err := buildStatusUpdate(types.ParticipationReject, utils.Float64Ptr(1))
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("pending is not an administrative transition", func(t *testing.T) {
		_, err := buildStatusUpdate(types.ParticipationPending, nil)
		assert.ErrorIs(t, err, types.ErrValidation)
	})
}

func TestRequestsByNeedPipeline(t *testing.T) {
	projectID := bson.NewObjectID()
	needID := bson.NewObjectID()

	pipeline := RequestsByNeedPipeline(projectID, needID, Pagination{})

	assert.Equal(t,
		[]string{"$match", "$sort", "$skip", "$limit", "$lookup", "$addFields", "$project"},
		stageNames(pipeline),
	)

	match := stageValue(t, pipeline, 0)
	assert.Equal(t, needID, docField(t, match, "need"))
	assert.Equal(t, projectID, docField(t, match, "project"))

	// Newest first, stable under equal timestamps.
	assert.Equal(t,
		bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		stageValue(t, pipeline, 1),
	)

	projection := stageValue(t, pipeline, len(pipeline)-1)
	user, ok := docField(t, projection, "user").(bson.D)
	require.True(t, ok)
	for _, field := range requestUserFields {
		docField(t, user, field)
	}
}
