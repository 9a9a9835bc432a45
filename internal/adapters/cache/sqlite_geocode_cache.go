package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
)

// SQLite-backed cache mapping normalized place names to resolved geocode
// results. Keys are expected to be consistent (e.g., already normalized)
// by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch the cached geocode result for one place name.
func (s *SqliteGeocodeCache) Get(ctx context.Context, name string) (ports.GeocodeResult, bool, error) {
	if s.DB == nil {
		return ports.GeocodeResult{}, false, errors.New("geocode cache: db is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return ports.GeocodeResult{}, false, errors.New("get geocode cache: name must not be empty")
	}

	q := `
	SELECT external_place_id, lat, lng
	FROM geocode_cache
	WHERE place_name = ?;
	`

	var placeID string
	var lat, lng float64
	err := s.DB.QueryRowContext(ctx, q, name).Scan(&placeID, &lat, &lng)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.GeocodeResult{}, false, nil
	}
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return ports.GeocodeResult{
		ExternalPlaceID: placeID,
		Coords:          domain.Coordinates{Lat: lat, Lng: lng},
	}, true, nil
}

// Store one place name -> geocode result mapping.
func (s *SqliteGeocodeCache) Put(ctx context.Context, name string, result ports.GeocodeResult) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("insert geocode cache: name must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
		place_name,
		external_place_id,
		lat,
		lng
	)
	VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, name, result.ExternalPlaceID, result.Coords.Lat, result.Coords.Lng); err != nil {
		return fmt.Errorf("insert geocode cache name=%q: %w", name, err)
	}

	return nil
}
