package types

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Token is an opaque bearer credential. CreatedAt slides forward on every
// resolve, so the TTL index expires only idle sessions.
type Token struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Hash      string        `bson:"hash"`
	User      bson.ObjectID `bson:"user"`
	CreatedAt time.Time     `bson:"createdAt"`
}
