package types

import "go.mongodb.org/mongo-driver/v2/bson"

// School is a catalog entry students reference from their profile.
type School struct {
	ID   bson.ObjectID `bson:"_id,omitempty"`
	Name string        `bson:"name"`
}
