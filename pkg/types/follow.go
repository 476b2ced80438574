package types

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FollowUser is a directed user-to-user edge. Existence is membership; a
// unique (follower, following) index keeps edges boolean.
type FollowUser struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Follower  bson.ObjectID `bson:"follower"`
	Following bson.ObjectID `bson:"following"`
	CreatedAt time.Time     `bson:"createdAt"`
}

// FollowProject is a directed user-to-project edge.
type FollowProject struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Follower  bson.ObjectID `bson:"follower"`
	Following bson.ObjectID `bson:"following"`
	CreatedAt time.Time     `bson:"createdAt"`
}
