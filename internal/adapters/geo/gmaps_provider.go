package geo

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"roadtrip-map-service/internal/adapters/cache"
)

// GoogleMapsProvider implements the Geocoder and RouteProvider ports using
// the Google Maps web services.
//
// It coordinates:
//   - Place-name normalization
//   - Persistent geocode caching (SQLite)
//   - Route-result caching (Redis)
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type GoogleMapsProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	mode         string
	geocodeCache *cache.SqliteGeocodeCache
	routeCache   *cache.RedisRouteCache
}

func NewGoogleMapsProvider(
	apiKey string,
	geocodeCache *cache.SqliteGeocodeCache,
	routeCache *cache.RedisRouteCache,
) (*GoogleMapsProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	provider := &GoogleMapsProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://maps.googleapis.com/maps/api",
		mode:         "driving",
		geocodeCache: geocodeCache,
		routeCache:   routeCache,
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *GoogleMapsProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
