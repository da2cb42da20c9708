package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/vibe-gaming/geodirectory/internal/geo"
)

// Levels below zero are out of band and skipped by traversal and default selection.
const (
	CityLevel          = 0
	PendingRegionLevel = -999
	PendingRegionName  = "(PENDING)"
)

// PendingRegionID is assigned to businesses whose location resolved to no region.
var PendingRegionID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

type Region struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	DisplayName string        `db:"display_name" json:"display_name"`
	City        string        `db:"city" json:"city"`
	State       string        `db:"state" json:"state"`
	Level       int           `db:"level" json:"level"`
	ParentID    uuid.NullUUID `db:"parent_id" json:"parent_id"`
	Geometry    *geo.Geometry `db:"geometry" json:"geometry,omitempty"`
	POICount    int           `db:"poi_count" json:"poi_count"`

	MinLat    *float64 `db:"min_lat" json:"min_lat,omitempty"`
	MaxLat    *float64 `db:"max_lat" json:"max_lat,omitempty"`
	MinLon    *float64 `db:"min_lon" json:"min_lon,omitempty"`
	MaxLon    *float64 `db:"max_lon" json:"max_lon,omitempty"`
	CenterLat *float64 `db:"center_lat" json:"center_lat,omitempty"`
	CenterLon *float64 `db:"center_lon" json:"center_lon,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RegionBounds are the box and midpoint derived from a region geometry.
type RegionBounds struct {
	MinLat    *float64
	MaxLat    *float64
	MinLon    *float64
	MaxLon    *float64
	CenterLat *float64
	CenterLon *float64
}

func NewPendingRegion() *Region {
	return &Region{
		ID:          PendingRegionID,
		Name:        PendingRegionName,
		DisplayName: PendingRegionName,
		Level:       PendingRegionLevel,
	}
}

func (r *Region) IsPending() bool {
	return r.ID == PendingRegionID
}

func (r *Region) IsCity() bool {
	return r.Level == CityLevel
}

func (r *Region) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Name
}

// BoundsFor derives the box and center of g. A nil geometry yields empty bounds.
func BoundsFor(g *geo.Geometry) RegionBounds {
	if g == nil || g.Orb() == nil {
		return RegionBounds{}
	}
	b := g.Bound()
	c := b.Center()
	return RegionBounds{
		MinLat:    &b.MinLat,
		MaxLat:    &b.MaxLat,
		MinLon:    &b.MinLon,
		MaxLon:    &b.MaxLon,
		CenterLat: &c.Lat,
		CenterLon: &c.Lon,
	}
}

func (r *Region) SetGeometry(g *geo.Geometry) {
	r.Geometry = g
	r.ApplyBounds(BoundsFor(g))
}

func (r *Region) ApplyBounds(b RegionBounds) {
	r.MinLat, r.MaxLat = b.MinLat, b.MaxLat
	r.MinLon, r.MaxLon = b.MinLon, b.MaxLon
	r.CenterLat, r.CenterLon = b.CenterLat, b.CenterLon
}

// RegionNode is a region with its subtree. Children is empty on leaves and on flattened levels.
type RegionNode struct {
	Region
	Children []*RegionNode `json:"children,omitempty"`
}

// RegionAssignment is the outcome of resolving a location: the finest region's name and
// every containing region id, finest first.
type RegionAssignment struct {
	DisplayName string      `json:"display_name"`
	RegionIDs   []uuid.UUID `json:"region_ids"`
}

func PendingAssignment() RegionAssignment {
	return RegionAssignment{
		DisplayName: PendingRegionName,
		RegionIDs:   []uuid.UUID{PendingRegionID},
	}
}

func (a RegionAssignment) IsPending() bool {
	return len(a.RegionIDs) == 1 && a.RegionIDs[0] == PendingRegionID
}
