// Package store holds the per-entity repositories and the aggregation
// pipelines they issue against the document store.
package store

// Collection names match the ones the platform has always used; renaming any
// of them orphans existing data.
const (
	usersCollection          = "users"
	projectsCollection       = "projects"
	needsCollection          = "needs"
	participantsCollection   = "needsparticipants"
	followUsersCollection    = "followusers"
	followProjectsCollection = "followprojects"
	tokensCollection         = "tokens"
	schoolsCollection        = "schools"
	subscriptionsCollection  = "emailsubscriptions"
)
