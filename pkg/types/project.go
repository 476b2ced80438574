package types

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ProjectType codes are stable wire values.
type ProjectType int

const (
	ProjectTypeVolunteer ProjectType = 0
	ProjectTypeMoney     ProjectType = 1
	ProjectTypePickup    ProjectType = 2
)

// DescriptionBlock is one localized/typed rich-text block of a project
// description.
type DescriptionBlock struct {
	Value string `bson:"value"`
	Type  int    `bson:"type"`
}

// Location is a GeoJSON-ish point plus a display name. Geo is
// [longitude, latitude].
type Location struct {
	Geo  []float64 `bson:"geo,omitempty"`
	Name string    `bson:"name,omitempty"`
}

type Project struct {
	ID          bson.ObjectID      `bson:"_id,omitempty"`
	User        bson.ObjectID      `bson:"user"` // owning nonprofit
	Title       string             `bson:"title"`
	ProjectType []ProjectType      `bson:"projectType"`
	Description []DescriptionBlock `bson:"description,omitempty"`
	Cover       string             `bson:"cover,omitempty"`
	Address     *string            `bson:"address,omitempty"`
	Location    *Location          `bson:"location,omitempty"`
	StartDate   int64              `bson:"startDate,omitempty"` // unix seconds
	EndDate     int64              `bson:"endDate,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// HasType reports whether t is one of the project's declared types.
func (p *Project) HasType(t ProjectType) bool {
	for _, pt := range p.ProjectType {
		if pt == t {
			return true
		}
	}
	return false
}

// ProjectUpdate is the partial update payload for a project.
type ProjectUpdate struct {
	Title       *string            `bson:"title,omitempty"`
	Description []DescriptionBlock `bson:"description,omitempty"`
	StartDate   *int64             `bson:"startDate,omitempty"`
	EndDate     *int64             `bson:"endDate,omitempty"`
	Location    *Location          `bson:"location,omitempty"`
	Cover       *string            `bson:"cover,omitempty"`
}

// ProjectOwner is the slice of the owning user exposed on listing and detail
// read models.
type ProjectOwner struct {
	ID          bson.ObjectID `bson:"_id"`
	Avatar      *string       `bson:"avatar,omitempty"`
	CompanyName *string       `bson:"companyName,omitempty"`
	Role        Role          `bson:"role"`
}

// ProjectSummary is one row of a project listing.
type ProjectSummary struct {
	ID          bson.ObjectID      `bson:"_id"`
	ProjectType []ProjectType      `bson:"projectType"`
	Title       string             `bson:"title"`
	IsFollow    bool               `bson:"isFollow"`
	Description []DescriptionBlock `bson:"description,omitempty"`
	Cover       string             `bson:"cover,omitempty"`
	User        ProjectOwner       `bson:"user"`
}

// NeedProgress is a need joined with its fulfilled quantity, as computed by
// the detail pipeline.
type NeedProgress struct {
	ID      bson.ObjectID `bson:"_id,omitempty"`
	Type    ProjectType   `bson:"type"`
	Value   string        `bson:"value,omitempty"`
	Of      float64       `bson:"of,omitempty"`
	Current float64       `bson:"current"`
}

// ProjectDetail is the single-project read model. Needs is empty, never a
// placeholder row, when the project has no needs. Participation holds the
// need ids the viewer has applied to, and is nil for anonymous viewers.
type ProjectDetail struct {
	ID            bson.ObjectID      `bson:"_id"`
	ProjectType   []ProjectType      `bson:"projectType"`
	Title         string             `bson:"title"`
	IsFollow      bool               `bson:"isFollow"`
	Description   []DescriptionBlock `bson:"description,omitempty"`
	Address       *string            `bson:"address,omitempty"`
	Cover         string             `bson:"cover,omitempty"`
	StartDate     int64              `bson:"startDate,omitempty"`
	EndDate       int64              `bson:"endDate,omitempty"`
	Location      *Location          `bson:"location,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	Needs         []NeedProgress     `bson:"needs"`
	Participation []bson.ObjectID    `bson:"participation,omitempty"`
	User          ProjectOwner       `bson:"user"`
}
