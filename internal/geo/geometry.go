package geo

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	TypePoint        = "Point"
	TypePolygon      = "Polygon"
	TypeMultiPolygon = "MultiPolygon"
)

var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// Bound is a lon/lat box.
type Bound struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Center is the midpoint of the box, not the centroid of the shape.
func (b Bound) Center() Point {
	return Point{Lon: (b.MinLon + b.MaxLon) / 2, Lat: (b.MinLat + b.MaxLat) / 2}
}

func (b Bound) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

func (b Bound) Intersects(o Bound) bool {
	return b.MinLat <= o.MaxLat && b.MaxLat >= o.MinLat && b.MinLon <= o.MaxLon && b.MaxLon >= o.MinLon
}

// Geometry is a GeoJSON Point, Polygon or MultiPolygon with lon/lat coordinates.
// Containment and distance are evaluated on the sphere.
type Geometry struct {
	g orb.Geometry
}

func NewGeometry(g orb.Geometry) (*Geometry, error) {
	if err := validate(g); err != nil {
		return nil, err
	}
	return &Geometry{g: g}, nil
}

func NewPointGeometry(p Point) *Geometry {
	return &Geometry{g: p.Orb()}
}

// ParseGeoJSON decodes a bare GeoJSON geometry object.
func ParseGeoJSON(data []byte) (*Geometry, error) {
	var g Geometry
	if err := g.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Geometry) Type() string {
	if g == nil || g.g == nil {
		return ""
	}
	return g.g.GeoJSONType()
}

func (g *Geometry) Orb() orb.Geometry {
	return g.g
}

// Point returns the coordinate of a Point geometry.
func (g *Geometry) Point() (Point, bool) {
	if g == nil {
		return Point{}, false
	}
	p, ok := g.g.(orb.Point)
	if !ok {
		return Point{}, false
	}
	return Point{Lon: p.Lon(), Lat: p.Lat()}, true
}

// Bound is the lon/lat box of the geometry. Polygon edges are great-circle arcs, so the
// box covers their bulge toward the poles and can exceed the vertex extent. A box that
// crosses the antimeridian spans every longitude.
func (g *Geometry) Bound() Bound {
	if g == nil || g.g == nil {
		return Bound{}
	}
	if _, ok := g.g.(orb.Point); ok {
		return planarBound(g.g)
	}

	rect := s2.EmptyRect()
	for _, poly := range g.sphericalPolygons() {
		rect = rect.Union(poly.outer.RectBound())
	}
	if rect.IsEmpty() {
		return planarBound(g.g)
	}

	b := Bound{
		MinLat: rect.Lo().Lat.Degrees(),
		MaxLat: rect.Hi().Lat.Degrees(),
		MinLon: rect.Lo().Lng.Degrees(),
		MaxLon: rect.Hi().Lng.Degrees(),
	}
	if rect.Lng.IsInverted() {
		b.MinLon, b.MaxLon = -180, 180
	}
	return b
}

func planarBound(g orb.Geometry) Bound {
	b := g.Bound()
	return Bound{
		MinLat: b.Min.Lat(),
		MaxLat: b.Max.Lat(),
		MinLon: b.Min.Lon(),
		MaxLon: b.Max.Lon(),
	}
}

// Contains reports whether p lies inside the geometry. A Point geometry only contains itself.
func (g *Geometry) Contains(p Point) bool {
	if g == nil || g.g == nil {
		return false
	}
	if pt, ok := g.Point(); ok {
		return pt == p
	}

	x := p.toS2()
	for _, poly := range g.sphericalPolygons() {
		if poly.containsPoint(x) {
			return true
		}
	}
	return false
}

// DistanceMeters is 0 for a contained point, otherwise the distance to the closest edge.
func (g *Geometry) DistanceMeters(p Point) float64 {
	if g == nil || g.g == nil {
		return math.Inf(1)
	}
	if pt, ok := g.Point(); ok {
		return pt.DistanceMeters(p)
	}

	x := p.toS2()
	best := math.Inf(1)
	for _, poly := range g.sphericalPolygons() {
		if poly.containsPoint(x) {
			return 0
		}
		if d := poly.distance(x); d < best {
			best = d
		}
	}
	return best * EarthRadiusMeters
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	if g.g == nil {
		return []byte("null"), nil
	}
	return json.Marshal(geojson.NewGeometry(g.g))
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	gj, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return fmt.Errorf("decode geojson geometry: %w", err)
	}
	if err := validate(gj.Geometry()); err != nil {
		return err
	}
	g.g = gj.Geometry()
	return nil
}

// Scan implements sql.Scanner for a JSON column
func (g *Geometry) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to scan Geometry: expected []byte, got %T", value)
	}
	return g.UnmarshalJSON(data)
}

// Value implements driver.Valuer
func (g *Geometry) Value() (driver.Value, error) {
	if g == nil || g.g == nil {
		return nil, nil
	}
	b, err := g.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func validate(g orb.Geometry) error {
	switch v := g.(type) {
	case orb.Point:
		if !(Point{Lon: v.Lon(), Lat: v.Lat()}).Valid() {
			return fmt.Errorf("%w: point out of range", ErrUnsupportedGeometry)
		}
		return nil
	case orb.Polygon:
		return validatePolygon(v)
	case orb.MultiPolygon:
		if len(v) == 0 {
			return fmt.Errorf("%w: empty multipolygon", ErrUnsupportedGeometry)
		}
		for _, poly := range v {
			if err := validatePolygon(poly); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return fmt.Errorf("%w: empty geometry", ErrUnsupportedGeometry)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedGeometry, g.GeoJSONType())
	}
}

func validatePolygon(poly orb.Polygon) error {
	if len(poly) == 0 {
		return fmt.Errorf("%w: polygon without rings", ErrUnsupportedGeometry)
	}
	for _, ring := range poly {
		if len(ring) < 4 {
			return fmt.Errorf("%w: polygon ring needs at least 4 positions", ErrUnsupportedGeometry)
		}
		for _, c := range ring {
			if !(Point{Lon: c.Lon(), Lat: c.Lat()}).Valid() {
				return fmt.Errorf("%w: polygon position out of range", ErrUnsupportedGeometry)
			}
		}
	}
	return nil
}

type sphericalPolygon struct {
	outer *s2.Loop
	holes []*s2.Loop
}

func (g *Geometry) sphericalPolygons() []sphericalPolygon {
	var polys []orb.Polygon
	switch v := g.g.(type) {
	case orb.Polygon:
		polys = []orb.Polygon{v}
	case orb.MultiPolygon:
		polys = v
	}

	out := make([]sphericalPolygon, 0, len(polys))
	for _, poly := range polys {
		outer := loopFromRing(poly[0])
		if outer == nil {
			continue
		}
		sp := sphericalPolygon{outer: outer}
		for _, ring := range poly[1:] {
			if hole := loopFromRing(ring); hole != nil {
				sp.holes = append(sp.holes, hole)
			}
		}
		out = append(out, sp)
	}
	return out
}

func (sp sphericalPolygon) containsPoint(x s2.Point) bool {
	if !sp.outer.ContainsPoint(x) {
		return false
	}
	for _, hole := range sp.holes {
		if hole.ContainsPoint(x) {
			return false
		}
	}
	return true
}

// distance in radians from x to the nearest edge of any ring.
func (sp sphericalPolygon) distance(x s2.Point) float64 {
	best := math.Inf(1)
	for _, loop := range append([]*s2.Loop{sp.outer}, sp.holes...) {
		n := loop.NumVertices()
		for i := 0; i < n; i++ {
			d := s2.DistanceFromSegment(x, loop.Vertex(i), loop.Vertex(i+1)).Radians()
			if d < best {
				best = d
			}
		}
	}
	return best
}

// loopFromRing drops the closing position and repeated vertices, and normalizes the loop
// so it encloses the smaller of the two regions its boundary defines. Ring winding
// order in source data is therefore irrelevant.
func loopFromRing(ring orb.Ring) *s2.Loop {
	pts := make([]s2.Point, 0, len(ring))
	for i, c := range ring {
		if i == len(ring)-1 && i > 0 && c.Equal(ring[0]) {
			break
		}
		p := s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat(), c.Lon()))
		if n := len(pts); n > 0 && pts[n-1] == p {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) < 3 {
		return nil
	}

	loop := s2.LoopFromPoints(pts)
	loop.Normalize()
	return loop
}
