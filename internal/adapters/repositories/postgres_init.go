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

// Initialize the Postgres database schema. Same shape as the SQLite schema
// with Postgres column types.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS trip_maps (
			map_id TEXT NOT NULL,
			owner TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (owner, map_id)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS collaborators (
			owner TEXT NOT NULL,
			map_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			role TEXT NOT NULL,
			added_by TEXT NOT NULL,
			added_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (owner, map_id, user_id)
		);
		`,
		`
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
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			link_titles TEXT NOT NULL DEFAULT '[]',
			links TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (owner, map_id, stop_id)
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_collaborators_user
		ON collaborators(user_id);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}

// SeedPostgresFromJSON populates a Postgres database from the same seed
// format SeedFromJSON consumes. Existing rows are upserted.
func SeedPostgresFromJSON(db *sql.DB, jsonPath string) error {
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
	INSERT INTO trip_maps (map_id, owner, name, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (owner, map_id) DO UPDATE SET name = EXCLUDED.name;
	`)
	if err != nil {
		return fmt.Errorf("seed maps: prepare map insert: %w", err)
	}
	defer insertMap.Close()

	insertStop, err := tx.Prepare(`
	INSERT INTO stops (
		owner, map_id, stop_id, nickname, name, description,
		overnight_flag, role_flag, place_type,
		external_place_id, lat, lng, link_titles, links
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (owner, map_id, stop_id) DO UPDATE SET
		nickname = EXCLUDED.nickname,
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		overnight_flag = EXCLUDED.overnight_flag,
		role_flag = EXCLUDED.role_flag,
		place_type = EXCLUDED.place_type,
		external_place_id = EXCLUDED.external_place_id,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		link_titles = EXCLUDED.link_titles,
		links = EXCLUDED.links;
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
