package store

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Pagination carries the skip/limit window of a listing. The zero value is
// usable; Normalize applies the defaults.
type Pagination struct {
	Skip  int64
	Limit int64
}

const defaultPageLimit = 10

func (p Pagination) Normalize() Pagination {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	return p
}

// Typed aggregation stages. Pipelines are composed from these by pure
// functions so the stage sequence can be asserted without a live store.

func matchStage(filter bson.D) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

func sortStage(sort bson.D) bson.D {
	return bson.D{{Key: "$sort", Value: sort}}
}

func skipStage(n int64) bson.D {
	return bson.D{{Key: "$skip", Value: n}}
}

func limitStage(n int64) bson.D {
	return bson.D{{Key: "$limit", Value: n}}
}

func lookupStage(from, localField, foreignField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: as},
	}}}
}

func unwindStage(path string, preserveEmpty bool) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: path},
		{Key: "preserveNullAndEmptyArrays", Value: preserveEmpty},
	}}}
}

func addFieldsStage(fields bson.D) bson.D {
	return bson.D{{Key: "$addFields", Value: fields}}
}

func projectStage(spec bson.D) bson.D {
	return bson.D{{Key: "$project", Value: spec}}
}

func groupStage(spec bson.D) bson.D {
	return bson.D{{Key: "$group", Value: spec}}
}

// includeFields builds a projection allow-list: {name: 1, ...}.
func includeFields(names ...string) bson.D {
	spec := make(bson.D, 0, len(names))
	for _, name := range names {
		spec = append(spec, bson.E{Key: name, Value: 1})
	}
	return spec
}

// firstFields carries scalar fields through a $group: {name: {$first: "$name"}}.
func firstFields(names ...string) bson.D {
	spec := make(bson.D, 0, len(names))
	for _, name := range names {
		spec = append(spec, bson.E{Key: name, Value: bson.D{{Key: "$first", Value: "$" + name}}})
	}
	return spec
}

// withIDTiebreak appends an _id sort key following the direction of the
// primary key, so rows equal under the requested sort come back in a stable
// insertion order.
func withIDTiebreak(sort bson.D) bson.D {
	for _, e := range sort {
		if e.Key == "_id" {
			return sort
		}
	}
	direction := 1
	if len(sort) > 0 {
		if d, ok := sort[0].Value.(int); ok && d < 0 {
			direction = -1
		}
	}
	out := make(bson.D, len(sort), len(sort)+1)
	copy(out, sort)
	return append(out, bson.E{Key: "_id", Value: direction})
}

// lookupViewerFollowsStage joins the viewer's follow edge for the project in
// scope into lookupFollowing. A non-empty result means the viewer follows it.
func lookupViewerFollowsStage(viewerID bson.ObjectID) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: followProjectsCollection},
		{Key: "let", Value: bson.D{{Key: "projectID", Value: "$_id"}}},
		{Key: "pipeline", Value: bson.A{
			bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
				{Key: "$and", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$following", "$$projectID"}}},
					bson.D{{Key: "$eq", Value: bson.A{"$follower", viewerID}}},
				}},
			}}}}},
		}},
		{Key: "as", Value: "lookupFollowing"},
	}}}
}

// lookupViewerParticipationStage joins the viewer's own participation rows
// for the project into participation.
func lookupViewerParticipationStage(viewerID, projectID bson.ObjectID) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: participantsCollection},
		{Key: "pipeline", Value: bson.A{
			bson.D{{Key: "$match", Value: bson.D{
				{Key: "user", Value: viewerID},
				{Key: "project", Value: projectID},
			}}},
		}},
		{Key: "as", Value: "participation"},
	}}}
}

// lookupOwnerStages joins the owning user and flattens the join array to a
// single object, alongside the viewer-relative isFollow flag. isFollow is a
// literal false, not absent, when there is no viewer.
func lookupOwnerStages(viewerID *bson.ObjectID) []bson.D {
	isFollow := any(false)
	if viewerID != nil {
		isFollow = bson.D{{Key: "$anyElementTrue", Value: bson.A{"$lookupFollowing"}}}
	}
	return []bson.D{
		lookupStage(usersCollection, "user", "_id", "user"),
		addFieldsStage(bson.D{
			{Key: "isFollow", Value: isFollow},
			{Key: "user", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$user", 0}}}},
		}),
	}
}
