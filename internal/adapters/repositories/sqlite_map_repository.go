package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
)

// SQLite-backed implementation of the TripMapRepository port.
type SqliteTripMapRepository struct{ DB *sql.DB }

func NewSqliteTripMapRepository(db *sql.DB) *SqliteTripMapRepository {
	return &SqliteTripMapRepository{DB: db}
}

// Create a new map document owned by owner and return its id.
func (s *SqliteTripMapRepository) CreateMap(ctx context.Context, owner, name string) (string, error) {
	if s.DB == nil {
		return "", errors.New("sqlite map repository: DB is nil")
	}

	mapID := uuid.NewString()
	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO trip_maps (map_id, owner, name, created_at)
	VALUES (?, ?, ?, ?);
	`, mapID, owner, name, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("create map %q: %w", name, err)
	}

	return mapID, nil
}

// GetMap returns one map document with its collaborator list.
func (s *SqliteTripMapRepository) GetMap(ctx context.Context, owner, mapID string) (*domain.TripMap, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite map repository: DB is nil")
	}

	m := &domain.TripMap{ID: mapID, Owner: owner}
	err := s.DB.QueryRowContext(ctx, `
	SELECT name, created_at
	FROM trip_maps
	WHERE owner = ? AND map_id = ?;
	`, owner, mapID).Scan(&m.Name, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrMapNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get map %q: %w", mapID, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT user_id, role, added_by, added_at
	FROM collaborators
	WHERE owner = ? AND map_id = ?;
	`, owner, mapID)
	if err != nil {
		return nil, fmt.Errorf("get map %q: query collaborators: %w", mapID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Collaborator
		var role string
		if err := rows.Scan(&c.UserID, &role, &c.AddedBy, &c.AddedAt); err != nil {
			return nil, fmt.Errorf("get map %q: scan collaborator: %w", mapID, err)
		}
		c.Role = domain.CollaboratorRole(role)
		m.Collaborators = append(m.Collaborators, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get map %q: collaborator iteration: %w", mapID, err)
	}

	return m, nil
}

// DeleteMap removes the map document and its stops and collaborators.
func (s *SqliteTripMapRepository) DeleteMap(ctx context.Context, owner, mapID string) error {
	if s.DB == nil {
		return errors.New("sqlite map repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete map %q: begin tx: %w", mapID, err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
	DELETE FROM trip_maps WHERE owner = ? AND map_id = ?;
	`, owner, mapID)
	if err != nil {
		return fmt.Errorf("delete map %q: %w", mapID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete map %q: rows affected: %w", mapID, err)
	}
	if affected == 0 {
		return ports.ErrMapNotFound
	}

	if _, err := tx.ExecContext(ctx, `
	DELETE FROM stops WHERE owner = ? AND map_id = ?;
	`, owner, mapID); err != nil {
		return fmt.Errorf("delete map %q: delete stops: %w", mapID, err)
	}

	if _, err := tx.ExecContext(ctx, `
	DELETE FROM collaborators WHERE owner = ? AND map_id = ?;
	`, owner, mapID); err != nil {
		return fmt.Errorf("delete map %q: delete collaborators: %w", mapID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete map %q: commit tx: %w", mapID, err)
	}

	return nil
}

// ListOwnedMaps returns the maps owned by owner, newest first.
func (s *SqliteTripMapRepository) ListOwnedMaps(ctx context.Context, owner string) ([]*domain.TripMap, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite map repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT map_id, name, created_at
	FROM trip_maps
	WHERE owner = ?
	ORDER BY created_at DESC;
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("list owned maps: query trip_maps: %w", err)
	}
	defer rows.Close()

	maps := make([]*domain.TripMap, 0, 8)
	for rows.Next() {
		m := &domain.TripMap{Owner: owner}
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("list owned maps: scan row: %w", err)
		}
		maps = append(maps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list owned maps: row iteration: %w", err)
	}

	return maps, nil
}

// ListSharedMaps returns maps owned by other users where uid is a
// collaborator.
func (s *SqliteTripMapRepository) ListSharedMaps(ctx context.Context, uid string) ([]*domain.TripMap, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite map repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT m.map_id, m.owner, m.name, m.created_at
	FROM trip_maps m
	JOIN collaborators c
		ON c.owner = m.owner AND c.map_id = m.map_id
	WHERE c.user_id = ? AND m.owner != ?
	ORDER BY m.created_at DESC;
	`, uid, uid)
	if err != nil {
		return nil, fmt.Errorf("list shared maps: query trip_maps: %w", err)
	}
	defer rows.Close()

	maps := make([]*domain.TripMap, 0, 8)
	for rows.Next() {
		m := &domain.TripMap{}
		if err := rows.Scan(&m.ID, &m.Owner, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("list shared maps: scan row: %w", err)
		}
		maps = append(maps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shared maps: row iteration: %w", err)
	}

	return maps, nil
}

// AddCollaborator grants c.UserID access to the map. Re-adding an existing
// collaborator replaces their role.
func (s *SqliteTripMapRepository) AddCollaborator(ctx context.Context, owner, mapID string, c domain.Collaborator) error {
	if s.DB == nil {
		return errors.New("sqlite map repository: DB is nil")
	}

	addedAt := c.AddedAt
	if addedAt.IsZero() {
		addedAt = time.Now().UTC()
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO collaborators (owner, map_id, user_id, role, added_by, added_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`, owner, mapID, c.UserID, string(c.Role), c.AddedBy, addedAt)
	if err != nil {
		return fmt.Errorf("add collaborator %q to map %q: %w", c.UserID, mapID, err)
	}

	return nil
}

// RemoveCollaborator revokes uid's access to the map.
func (s *SqliteTripMapRepository) RemoveCollaborator(ctx context.Context, owner, mapID, uid string) error {
	if s.DB == nil {
		return errors.New("sqlite map repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `
	DELETE FROM collaborators
	WHERE owner = ? AND map_id = ? AND user_id = ?;
	`, owner, mapID, uid)
	if err != nil {
		return fmt.Errorf("remove collaborator %q from map %q: %w", uid, mapID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove collaborator %q: rows affected: %w", uid, err)
	}
	if affected == 0 {
		return fmt.Errorf("remove collaborator %q: not a collaborator", uid)
	}

	return nil
}
