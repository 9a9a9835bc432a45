package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripMapsQuery := `
	CREATE TABLE IF NOT EXISTS trip_maps (
		map_id TEXT NOT NULL,
		owner TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (owner, map_id)
	);
	`

	createCollaboratorsQuery := `
	CREATE TABLE IF NOT EXISTS collaborators (
		owner TEXT NOT NULL,
		map_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL,
		added_by TEXT NOT NULL,
		added_at TIMESTAMP NOT NULL,
		PRIMARY KEY (owner, map_id, user_id)
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		owner TEXT NOT NULL,
		map_id TEXT NOT NULL,
		stop_id INTEGER NOT NULL,
		nickname TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		overnight_flag TEXT NOT NULL DEFAULT 'n',
		role_flag TEXT NOT NULL,
		place_type TEXT NOT NULL DEFAULT '',
		external_place_id TEXT,
		lat REAL,
		lng REAL,
		link_titles TEXT NOT NULL DEFAULT '[]',
		links TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (owner, map_id, stop_id)
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		place_name TEXT PRIMARY KEY,
		external_place_id TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_collaborators_user
	ON collaborators(user_id);
	`

	statements := []string{
		createTripMapsQuery,
		createCollaboratorsQuery,
		createStopsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StopSeed struct {
	ID              int      `json:"id"`
	Nickname        string   `json:"nickname"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	OvernightFlag   string   `json:"overnight_flag"`
	RoleFlag        string   `json:"role_flag"`
	PlaceType       string   `json:"place_type"`
	ExternalPlaceID string   `json:"external_place_id"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
	LinkTitles      []string `json:"link_titles"`
	Links           []string `json:"links"`
}

type MapSeed struct {
	Owner string     `json:"owner"`
	Name  string     `json:"name"`
	Stops []StopSeed `json:"stops"`
}

// Populate the database with demo maps and stops from a JSON file. Each map
// in the seed gets a fresh document id; seeding is additive and intended
// for local runs.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed maps: read %q: %w", jsonPath, err)
	}

	var seeds []MapSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("seed maps: parse json: %w", err)
	}

	for i, m := range seeds {
		if strings.TrimSpace(m.Owner) == "" {
			return fmt.Errorf("seed maps: map at index %d: owner cannot be empty", i)
		}
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("seed maps: map at index %d: name cannot be empty", i)
		}
		for _, s := range m.Stops {
			if s.ID <= 0 {
				return fmt.Errorf("seed maps: map %q: invalid stop id %d", m.Name, s.ID)
			}
			if strings.TrimSpace(s.Name) == "" {
				return fmt.Errorf("seed maps: map %q: stop id=%d: name cannot be empty", m.Name, s.ID)
			}
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed maps: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertMap, err := tx.Prepare(`
	INSERT OR REPLACE INTO trip_maps (map_id, owner, name, created_at)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed maps: prepare map insert: %w", err)
	}
	defer insertMap.Close()

	insertStop, err := tx.Prepare(`
	INSERT OR REPLACE INTO stops (
		owner, map_id, stop_id, nickname, name, description,
		overnight_flag, role_flag, place_type,
		external_place_id, lat, lng, link_titles, links
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed maps: prepare stop insert: %w", err)
	}
	defer insertStop.Close()

	for _, m := range seeds {
		mapID := uuid.NewString()
		if _, err := insertMap.Exec(mapID, m.Owner, m.Name, time.Now().UTC()); err != nil {
			return fmt.Errorf("seed maps: insert map %q: %w", m.Name, err)
		}

		for _, s := range m.Stops {
			titles, err := encodeStringList(s.LinkTitles)
			if err != nil {
				return fmt.Errorf("seed maps: map %q stop id=%d: %w", m.Name, s.ID, err)
			}
			links, err := encodeStringList(s.Links)
			if err != nil {
				return fmt.Errorf("seed maps: map %q stop id=%d: %w", m.Name, s.ID, err)
			}

			_, err = insertStop.Exec(
				m.Owner, mapID, s.ID, s.Nickname, s.Name, s.Description,
				s.OvernightFlag, s.RoleFlag, s.PlaceType,
				nullableString(s.ExternalPlaceID), s.Lat, s.Lng, titles, links,
			)
			if err != nil {
				return fmt.Errorf("seed maps: insert stop id=%d: %w", s.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed maps: commit tx: %w", err)
	}

	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
