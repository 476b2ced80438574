package types

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Need is a requestable quantity attached to a project. Type must be one of
// the parent project's declared types; the store enforces this at write time.
type Need struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Project   bson.ObjectID `bson:"project"`
	Type      ProjectType   `bson:"type"`
	Value     string        `bson:"value"`
	Of        float64       `bson:"of"` // target quantity
	CreatedAt time.Time     `bson:"createdAt"`
}
