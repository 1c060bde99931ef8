package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/leadscout/internal/domain"
	"github.com/kailas-cloud/leadscout/internal/domain/geo"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in runes.
	MaxQueryLength     = 512
	DefaultTargetCount = 50
	MaxTargetCount     = 1000
	MaxStateLength     = 2
)

// Location is the caller's GPS position.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Filters narrows a search by size and place.
type Filters struct {
	TargetCount int
	City        string
	State       string
	RadiusKm    float64 // 0 = unbounded
}

// Scope is the location branch a search batch resolves to.
type Scope string

// Location scopes, in priority order.
const (
	ScopePlace     Scope = "place"
	ScopeRadius    Scope = "radius"
	ScopeProximity Scope = "proximity"
)

// Request is a validated, immutable search request.
type Request struct {
	query    string
	location Location
	filters  Filters
}

// New validates and normalizes search parameters.
// Every validation failure wraps domain.ErrInvalidRequest.
func New(query string, loc Location, f Filters) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("query is required: %w", domain.ErrInvalidRequest)
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrInvalidRequest)
	}
	if !geo.ValidateCoordinates(loc.Latitude, loc.Longitude) {
		return Request{}, fmt.Errorf(
			"invalid coordinates: lat=%f lon=%f: %w", loc.Latitude, loc.Longitude, domain.ErrInvalidRequest,
		)
	}
	if f.RadiusKm < 0 {
		return Request{}, fmt.Errorf("radius_km must not be negative: %w", domain.ErrInvalidRequest)
	}

	f.City = strings.TrimSpace(f.City)
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
	if utf8.RuneCountInString(f.State) > MaxStateLength {
		return Request{}, fmt.Errorf(
			"state must be at most %d characters, got %q: %w", MaxStateLength, f.State, domain.ErrInvalidRequest,
		)
	}

	if f.TargetCount <= 0 {
		f.TargetCount = DefaultTargetCount
	}
	if f.TargetCount > MaxTargetCount {
		f.TargetCount = MaxTargetCount
	}

	return Request{query: query, location: loc, filters: f}, nil
}

// Query returns the trimmed business-category query.
func (r *Request) Query() string { return r.query }

// Location returns the caller's GPS position.
func (r *Request) Location() Location { return r.location }

// Filters returns the normalized filters.
func (r *Request) Filters() Filters { return r.filters }

// TargetCount returns the requested number of records.
func (r *Request) TargetCount() int { return r.filters.TargetCount }

// Scope resolves which location branch applies.
// City and state together win over the radius; the radius wins over plain proximity.
func (r *Request) Scope() Scope {
	switch {
	case r.filters.City != "" && r.filters.State != "":
		return ScopePlace
	case r.filters.RadiusKm > 0:
		return ScopeRadius
	default:
		return ScopeProximity
	}
}

// GeoPoint returns the location as a geo.Point.
func (r *Request) GeoPoint() geo.Point {
	return geo.Point{Latitude: r.location.Latitude, Longitude: r.location.Longitude}
}
