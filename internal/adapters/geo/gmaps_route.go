package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/twpayne/go-polyline"

	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/platform/obs"
	"roadtrip-map-service/internal/ports"
)

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
	} `json:"routes"`
}

// Route resolves one leg between two place ids: a Distance Matrix call for
// the human-readable distance/duration labels, and a Directions call for
// the road geometry. The two lookups fail independently: zero results from
// the matrix yields "na" labels while the geometry may still resolve, and a
// missing geometry leaves the path empty for the caller's straight-line
// fallback. Results are cached in Redis keyed by the id pair.
func (g *GoogleMapsProvider) Route(
	ctx context.Context,
	originID, destinationID string,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "gmaps.Route")(&err)

	if originID == "" || destinationID == "" {
		return ports.RouteResult{}, errors.New("get route: origin and destination ids must be non-empty")
	}

	if g.routeCache != nil {
		hit, ok, err := g.routeCache.Get(ctx, originID, destinationID)
		if err != nil {
			log.Printf("route cache read failed: %v", err)
		} else if ok {
			return hit, nil
		}
	}

	distance, duration, err := g.fetchDistance(ctx, originID, destinationID)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("fetch distance %q -> %q: %w", originID, destinationID, err)
	}

	path, err := g.fetchDirections(ctx, originID, destinationID)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("fetch directions %q -> %q: %w", originID, destinationID, err)
	}

	result := ports.RouteResult{
		DistanceText: distance,
		DurationText: duration,
		Path:         path,
	}

	if g.routeCache != nil {
		if err := g.routeCache.Put(ctx, originID, destinationID, result); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return result, nil
}

// fetchDistance queries the Distance Matrix endpoint for one origin and one
// destination. A ZERO_RESULTS element is not an error: both labels degrade
// to the no-route literal.
func (g *GoogleMapsProvider) fetchDistance(
	ctx context.Context,
	originID, destinationID string,
) (distance, duration string, err error) {
	endpoint := g.baseURL + "/distancematrix/json"
	query := url.Values{}
	query.Set("origins", "place_id:"+originID)
	query.Set("destinations", "place_id:"+destinationID)
	query.Set("mode", g.mode)
	query.Set("units", "metric")

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, endpoint, query)
	})
	if err != nil {
		return "", "", fmt.Errorf("execute distance matrix request: %w", err)
	}
	defer resp.Body.Close()

	var decoded distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", "", fmt.Errorf("decode distance matrix response: %w", err)
	}

	if len(decoded.Rows) != 1 || len(decoded.Rows[0].Elements) != 1 {
		return "", "", fmt.Errorf("expected 1x1 matrix; got %d rows", len(decoded.Rows))
	}

	element := decoded.Rows[0].Elements[0]
	if element.Status == "ZERO_RESULTS" {
		return ports.NoRouteText, ports.NoRouteText, nil
	}
	if element.Status != "OK" {
		return "", "", fmt.Errorf("distance matrix element status %q", element.Status)
	}

	return element.Distance.Text, element.Duration.Text, nil
}

// fetchDirections queries the Directions endpoint and decodes the overview
// polyline into a coordinate sequence. No routes means no geometry, which
// is reported as a nil path rather than an error.
func (g *GoogleMapsProvider) fetchDirections(
	ctx context.Context,
	originID, destinationID string,
) ([]domain.Coordinates, error) {
	endpoint := g.baseURL + "/directions/json"
	query := url.Values{}
	query.Set("origin", "place_id:"+originID)
	query.Set("destination", "place_id:"+destinationID)
	query.Set("mode", g.mode)

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, endpoint, query)
	})
	if err != nil {
		return nil, fmt.Errorf("execute directions request: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return nil, nil
	}

	encoded := decoded.Routes[0].OverviewPolyline.Points
	pairs, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode overview polyline: %w", err)
	}

	path := make([]domain.Coordinates, 0, len(pairs))
	for _, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("invalid decoded coordinate pair of length %d", len(pair))
		}
		path = append(path, domain.Coordinates{Lat: pair[0], Lng: pair[1]})
	}

	return path, nil
}
