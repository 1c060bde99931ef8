package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Bound is a lat/lng bounding box in degrees.
type Bound struct {
	MinLat, MinLng float64
	MaxLat, MaxLng float64
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Valid reports whether the point lies on the globe.
func (p Point) Valid() bool { return ValidateCoordinates(p.Latitude, p.Longitude) }

// orbPoint converts to orb's [lng, lat] ordering.
func (p Point) orbPoint() orb.Point { return orb.Point{p.Longitude, p.Latitude} }

// BoundAround returns the box enclosing a circle of radiusKm around p.
func BoundAround(p Point, radiusKm float64) Bound {
	b := orbgeo.NewBoundAroundPoint(p.orbPoint(), radiusKm*1000)
	return Bound{
		MinLat: b.Min.Lat(),
		MinLng: b.Min.Lon(),
		MaxLat: b.Max.Lat(),
		MaxLng: b.Max.Lon(),
	}
}

// DistanceKm returns the great-circle distance between two points in kilometres.
func DistanceKm(a, b Point) float64 {
	return orbgeo.DistanceHaversine(a.orbPoint(), b.orbPoint()) / 1000
}
