package geo

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// EarthRadiusMeters is the mean earth radius used for every angle <-> distance conversion.
const EarthRadiusMeters = 6371008.8

// Point is a WGS84 coordinate.
type Point struct {
	Lon float64 `json:"long"`
	Lat float64 `json:"lat"`
}

func NewPoint(lon, lat float64) Point {
	return Point{Lon: lon, Lat: lat}
}

// IsZero reports whether p is (0,0), which is treated as "no coordinate".
func (p Point) IsZero() bool {
	return p.Lon == 0 && p.Lat == 0
}

func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180 &&
		!math.IsNaN(p.Lat) && !math.IsNaN(p.Lon)
}

func (p Point) Orb() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

func (p Point) toS2() s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))
}

// DistanceMeters is the great circle distance between two points.
func (p Point) DistanceMeters(o Point) float64 {
	return p.toS2().Distance(o.toS2()).Radians() * EarthRadiusMeters
}

// BoundAround returns a lon/lat box that encloses every point within meters of p.
// Near the poles the box widens to all longitudes.
func BoundAround(p Point, meters float64) Bound {
	dLat := meters / EarthRadiusMeters * 180 / math.Pi
	b := Bound{
		MinLat: math.Max(p.Lat-dLat, -90),
		MaxLat: math.Min(p.Lat+dLat, 90),
	}

	cosLat := math.Cos(p.Lat * math.Pi / 180)
	if b.MinLat <= -90 || b.MaxLat >= 90 || cosLat < 1e-6 {
		b.MinLon, b.MaxLon = -180, 180
		return b
	}

	dLon := dLat / cosLat
	if dLon >= 180 {
		b.MinLon, b.MaxLon = -180, 180
		return b
	}
	b.MinLon = math.Max(p.Lon-dLon, -180)
	b.MaxLon = math.Min(p.Lon+dLon, 180)

	return b
}
