package geo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/twpayne/go-polyline"
	_ "modernc.org/sqlite"

	"roadtrip-map-service/internal/adapters/cache"
	"roadtrip-map-service/internal/ports"
)

func newTestProvider(t *testing.T, handler http.Handler) *GoogleMapsProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewGoogleMapsProvider("test-key", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider.baseURL = srv.URL
	return provider
}

func TestGoogleMapsProviderResolve(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/place/findplacefromtext/json", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("input"); got != "Grand Canyon" {
			t.Errorf("input = %q, want normalized name", got)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Error("missing api key")
		}
		fmt.Fprint(w, `{
			"status": "OK",
			"candidates": [{
				"place_id": "ext-gc",
				"geometry": {"location": {"lat": 36.1, "lng": -112.1}}
			}]
		}`)
	})

	provider := newTestProvider(t, mux)

	got, err := provider.Resolve(context.Background(), "  Grand   Canyon ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ExternalPlaceID != "ext-gc" {
		t.Fatalf("place id = %q", got.ExternalPlaceID)
	}
	if got.Coords.Lat != 36.1 || got.Coords.Lng != -112.1 {
		t.Fatalf("coords = %+v", got.Coords)
	}
}

func TestGoogleMapsProviderResolveNoMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/place/findplacefromtext/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ZERO_RESULTS", "candidates": []}`)
	})

	provider := newTestProvider(t, mux)

	_, err := provider.Resolve(context.Background(), "Atlantis")
	if !errors.Is(err, ports.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestGoogleMapsProviderResolveUsesCache(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/place/findplacefromtext/json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{
			"status": "OK",
			"candidates": [{
				"place_id": "ext-1",
				"geometry": {"location": {"lat": 1, "lng": 2}}
			}]
		}`)
	})

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`
	CREATE TABLE geocode_cache (
		place_name TEXT PRIMARY KEY,
		external_place_id TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL
	);`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}

	provider := newTestProvider(t, mux)
	provider.geocodeCache = cache.NewSqliteGeocodeCache(db)

	for i := 0; i < 3; i++ {
		if _, err := provider.Resolve(context.Background(), "Same Place"); err != nil {
			t.Fatalf("resolve %d: unexpected error: %v", i, err)
		}
	}

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 upstream call, got %d", n)
	}
}

func TestGoogleMapsProviderRoute(t *testing.T) {
	points := string(polyline.EncodeCoords([][]float64{
		{10, 10},
		{15, 15},
		{20, 20},
	}))

	mux := http.NewServeMux()
	mux.HandleFunc("/distancematrix/json", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("origins"); got != "place_id:ext-a" {
			t.Errorf("origins = %q", got)
		}
		fmt.Fprint(w, `{
			"status": "OK",
			"rows": [{"elements": [{
				"status": "OK",
				"distance": {"text": "100 km"},
				"duration": {"text": "1 hour"}
			}]}]
		}`)
	})
	mux.HandleFunc("/directions/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"status": "OK",
			"routes": [{"overview_polyline": {"points": %q}}]
		}`, points)
	})

	provider := newTestProvider(t, mux)

	got, err := provider.Route(context.Background(), "ext-a", "ext-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DistanceText != "100 km" || got.DurationText != "1 hour" {
		t.Fatalf("labels = %q %q", got.DistanceText, got.DurationText)
	}
	if len(got.Path) != 3 {
		t.Fatalf("path has %d points, want 3", len(got.Path))
	}
	if got.Path[1].Lat != 15 || got.Path[1].Lng != 15 {
		t.Fatalf("path[1] = %+v", got.Path[1])
	}
}

func TestGoogleMapsProviderRouteZeroResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/distancematrix/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"status": "OK",
			"rows": [{"elements": [{"status": "ZERO_RESULTS"}]}]
		}`)
	})
	mux.HandleFunc("/directions/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ZERO_RESULTS", "routes": []}`)
	})

	provider := newTestProvider(t, mux)

	got, err := provider.Route(context.Background(), "ext-a", "ext-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DistanceText != ports.NoRouteText || got.DurationText != ports.NoRouteText {
		t.Fatalf("labels = %q %q, want na", got.DistanceText, got.DurationText)
	}
	if got.HasPath() {
		t.Fatalf("expected no geometry, got %+v", got.Path)
	}
}

func TestGoogleMapsProviderRetriesServerErrors(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/place/findplacefromtext/json", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{
			"status": "OK",
			"candidates": [{
				"place_id": "ext-1",
				"geometry": {"location": {"lat": 1, "lng": 2}}
			}]
		}`)
	})

	provider := newTestProvider(t, mux)

	got, err := provider.Resolve(context.Background(), "Flaky Place")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ExternalPlaceID != "ext-1" {
		t.Fatalf("place id = %q", got.ExternalPlaceID)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 attempts, got %d", n)
	}
}
