package ports

import (
	"context"

	"roadtrip-map-service/internal/domain"
)

// NoRouteText is the literal distance/duration label used when the route
// service reports no route between two places.
const NoRouteText = "na"

// RouteResult is one leg between two external place ids. DistanceText and
// DurationText are human-readable labels, both NoRouteText when the service
// reported zero results for the pair. Path is the road geometry; a nil Path
// means the service returned no geometry and the caller must fall back to a
// straight line between the endpoints.
type RouteResult struct {
	DistanceText string
	DurationText string
	Path         []domain.Coordinates
}

// HasPath reports whether the service returned road geometry for the leg.
func (r RouteResult) HasPath() bool { return len(r.Path) > 0 }

// Contract for retrieving the driving route between two geocoded places.
// Implementations return an error only for transport failures; "no route"
// and "no geometry" are expressed in the result itself.
type RouteProvider interface {
	Route(ctx context.Context, originID, destinationID string) (RouteResult, error)
}
