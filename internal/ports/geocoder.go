package ports

import (
	"context"
	"errors"

	"roadtrip-map-service/internal/domain"
)

// ErrNoMatch is returned when the geocoding service finds no candidate for
// a place name. Callers surface it to the user rather than retrying.
var ErrNoMatch = errors.New("no geocode match")

// GeocodeResult is the stable identity and location the geocoding service
// resolved for a free-text place name.
type GeocodeResult struct {
	ExternalPlaceID string
	Coords          domain.Coordinates
}

// Contract for resolving a free-text place name to a stable place id and
// coordinates.
type Geocoder interface {
	// Resolve returns the best candidate for name, or ErrNoMatch.
	Resolve(ctx context.Context, name string) (GeocodeResult, error)
}
