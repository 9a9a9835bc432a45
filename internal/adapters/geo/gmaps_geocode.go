package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/platform/obs"
	"roadtrip-map-service/internal/ports"
)

type findPlaceResponse struct {
	Status     string `json:"status"`
	Candidates []struct {
		PlaceID  string `json:"place_id"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"candidates"`
}

// Resolve looks up a free-text place name via the Find Place endpoint and
// returns the first candidate's place id and location. A persistent cache
// is consulted first so repeated names never hit the network. No candidate
// means ports.ErrNoMatch; the caller must ask the user for a different name.
func (g *GoogleMapsProvider) Resolve(
	ctx context.Context,
	name string,
) (_ ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "gmaps.Resolve")(&err)

	norm := g.normalize(name)
	if norm == "" {
		return ports.GeocodeResult{}, &domain.ValidationError{Field: "name", Reason: "must be non-empty"}
	}

	if g.geocodeCache != nil {
		hit, ok, err := g.geocodeCache.Get(ctx, norm)
		if err != nil {
			return ports.GeocodeResult{}, fmt.Errorf("geocode cache read: %w", err)
		}
		if ok {
			return hit, nil
		}
	}

	endpoint := g.baseURL + "/place/findplacefromtext/json"
	query := url.Values{}
	query.Set("input", norm)
	query.Set("inputtype", "textquery")
	query.Set("fields", "place_id,geometry")

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, endpoint, query)
	})
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("execute find place request: %w", err)
	}
	defer resp.Body.Close()

	var decoded findPlaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("decode find place response: %w", err)
	}

	if len(decoded.Candidates) == 0 {
		return ports.GeocodeResult{}, fmt.Errorf("find place %q: %w", name, ports.ErrNoMatch)
	}

	top := decoded.Candidates[0]
	result := ports.GeocodeResult{
		ExternalPlaceID: top.PlaceID,
		Coords: domain.Coordinates{
			Lat: top.Geometry.Location.Lat,
			Lng: top.Geometry.Location.Lng,
		},
	}

	if g.geocodeCache != nil {
		if err := g.geocodeCache.Put(ctx, norm, result); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return result, nil
}
