package geo

import (
	"context"
	"fmt"

	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
)

type MockLeg struct {
	From, To string
	Distance string
	Duration string
	Path     []domain.Coordinates
}

// MockRouteProvider serves canned legs keyed by origin|destination.
type MockRouteProvider struct {
	m map[string]ports.RouteResult
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]ports.RouteResult, len(legs))
	for _, l := range legs {
		m[l.From+"|"+l.To] = ports.RouteResult{
			DistanceText: l.Distance,
			DurationText: l.Duration,
			Path:         l.Path,
		}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) Route(ctx context.Context, originID, destinationID string) (ports.RouteResult, error) {
	r, ok := p.m[originID+"|"+destinationID]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing leg %q -> %q", originID, destinationID)
	}

	return r, nil
}

// MockGeocoder serves canned geocode results keyed by place name.
type MockGeocoder struct {
	m map[string]ports.GeocodeResult
}

func NewMockGeocoder(results map[string]ports.GeocodeResult) *MockGeocoder {
	return &MockGeocoder{m: results}
}

func (g *MockGeocoder) Resolve(ctx context.Context, name string) (ports.GeocodeResult, error) {
	r, ok := g.m[name]
	if !ok {
		return ports.GeocodeResult{}, fmt.Errorf("find place %q: %w", name, ports.ErrNoMatch)
	}

	return r, nil
}
