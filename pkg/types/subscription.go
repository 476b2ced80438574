package types

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// EmailSubscription is a landing-page email capture.
type EmailSubscription struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	CreatedAt time.Time     `bson:"createdAt"`
}
