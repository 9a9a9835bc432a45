package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/platform/obs"
)

// Postgres-backed implementation of the StopRepository port. Mirrors the
// SQLite variant with Postgres placeholders and upsert syntax.
type PostgresStopRepository struct{ DB *sql.DB }

func NewPostgresStopRepository(db *sql.DB) *PostgresStopRepository {
	return &PostgresStopRepository{DB: db}
}

func (s *PostgresStopRepository) ListStops(ctx context.Context, owner, mapID string) (_ []domain.StopRecord, err error) {
	defer obs.Time(ctx, "stops.pg.ListStops")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres stop repository: DB is nil")
	}

	query := `
	SELECT
		stop_id,
		nickname,
		name,
		description,
		overnight_flag,
		role_flag,
		place_type,
		external_place_id,
		lat,
		lng,
		link_titles,
		links
	FROM stops
	WHERE owner = $1 AND map_id = $2
	ORDER BY stop_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, owner, mapID)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	records := make([]domain.StopRecord, 0, 16)
	for rows.Next() {
		var rec domain.StopRecord
		var externalID sql.NullString
		var lat, lng sql.NullFloat64
		var titlesRaw, linksRaw string

		err := rows.Scan(
			&rec.ID, &rec.Nickname, &rec.Name, &rec.Description,
			&rec.OvernightFlag, &rec.RoleFlag, &rec.PlaceType,
			&externalID, &lat, &lng, &titlesRaw, &linksRaw,
		)
		if err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}

		if externalID.Valid {
			rec.ExternalPlaceID = externalID.String
		}
		if lat.Valid {
			rec.Lat = &lat.Float64
		}
		if lng.Valid {
			rec.Lng = &lng.Float64
		}

		if rec.LinkTitles, err = decodeStringList(titlesRaw); err != nil {
			return nil, fmt.Errorf("list stops: stop id=%d: %w", rec.ID, err)
		}
		if rec.Links, err = decodeStringList(linksRaw); err != nil {
			return nil, fmt.Errorf("list stops: stop id=%d: %w", rec.ID, err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return records, nil
}

func (s *PostgresStopRepository) AddStop(ctx context.Context, owner, mapID string, rec domain.StopRecord) error {
	if s.DB == nil {
		return errors.New("postgres stop repository: DB is nil")
	}

	titles, err := encodeStringList(rec.LinkTitles)
	if err != nil {
		return fmt.Errorf("add stop id=%d: %w", rec.ID, err)
	}
	links, err := encodeStringList(rec.Links)
	if err != nil {
		return fmt.Errorf("add stop id=%d: %w", rec.ID, err)
	}

	query := `
	INSERT INTO stops (
		owner, map_id, stop_id, nickname, name, description,
		overnight_flag, role_flag, place_type,
		external_place_id, lat, lng, link_titles, links
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`

	_, err = s.DB.ExecContext(ctx, query,
		owner, mapID, rec.ID, rec.Nickname, rec.Name, rec.Description,
		rec.OvernightFlag, rec.RoleFlag, rec.PlaceType,
		nullableString(rec.ExternalPlaceID), rec.Lat, rec.Lng, titles, links,
	)
	if err != nil {
		return fmt.Errorf("add stop id=%d: insert: %w", rec.ID, err)
	}

	return nil
}

func (s *PostgresStopRepository) UpdateStopField(ctx context.Context, owner, mapID string, stopID int, field, value string) error {
	if s.DB == nil {
		return errors.New("postgres stop repository: DB is nil")
	}

	column, ok := updatableStopFields[field]
	if !ok {
		return &domain.ValidationError{Field: field, Reason: "not an updatable stop field"}
	}

	query := fmt.Sprintf(`
	UPDATE stops
	SET %s = $1
	WHERE owner = $2 AND map_id = $3 AND stop_id = $4;
	`, column)

	res, err := s.DB.ExecContext(ctx, query, value, owner, mapID, stopID)
	if err != nil {
		return fmt.Errorf("update stop id=%d field=%q: %w", stopID, field, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update stop id=%d: rows affected: %w", stopID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update stop id=%d: no such stop", stopID)
	}

	return nil
}

func (s *PostgresStopRepository) DeleteStop(ctx context.Context, owner, mapID string, stopID int) error {
	if s.DB == nil {
		return errors.New("postgres stop repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `
	DELETE FROM stops
	WHERE owner = $1 AND map_id = $2 AND stop_id = $3;
	`, owner, mapID, stopID)
	if err != nil {
		return fmt.Errorf("delete stop id=%d: %w", stopID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete stop id=%d: rows affected: %w", stopID, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete stop id=%d: no such stop", stopID)
	}

	return nil
}

func (s *PostgresStopRepository) ReorderStops(ctx context.Context, owner, mapID string, order []int) error {
	if s.DB == nil {
		return errors.New("postgres stop repository: DB is nil")
	}

	if len(order) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reorder stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	UPDATE stops
	SET stop_id = $1
	WHERE owner = $2 AND map_id = $3 AND stop_id = $4;
	`)
	if err != nil {
		return fmt.Errorf("reorder stops: prepare update: %w", err)
	}
	defer stmt.Close()

	for i, currentID := range order {
		if _, err := stmt.ExecContext(ctx, -(i + 1), owner, mapID, currentID); err != nil {
			return fmt.Errorf("reorder stops: stage id=%d: %w", currentID, err)
		}
	}

	for i := range order {
		if _, err := stmt.ExecContext(ctx, i+1, owner, mapID, -(i + 1)); err != nil {
			return fmt.Errorf("reorder stops: finalize position %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reorder stops: commit tx: %w", err)
	}

	return nil
}

func (s *PostgresStopRepository) NextSequence(ctx context.Context, owner, mapID string) (int, error) {
	if s.DB == nil {
		return 0, errors.New("postgres stop repository: DB is nil")
	}

	var max sql.NullInt64
	err := s.DB.QueryRowContext(ctx, `
	SELECT MAX(stop_id)
	FROM stops
	WHERE owner = $1 AND map_id = $2;
	`, owner, mapID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("next sequence: query max stop id: %w", err)
	}

	if !max.Valid {
		return 1, nil
	}
	return int(max.Int64) + 1, nil
}
