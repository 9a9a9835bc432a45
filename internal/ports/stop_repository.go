package ports

import (
	"context"

	"roadtrip-map-service/internal/domain"
)

// Port: a boundary for reading and writing stop records in a data source.
// Stops are keyed by owner + map + stop id; ListStops must return records
// ordered by id ascending, which downstream code trusts as visiting order.
type StopRepository interface {
	ListStops(ctx context.Context, owner, mapID string) ([]domain.StopRecord, error)
	AddStop(ctx context.Context, owner, mapID string, rec domain.StopRecord) error
	UpdateStopField(ctx context.Context, owner, mapID string, stopID int, field string, value string) error
	DeleteStop(ctx context.Context, owner, mapID string, stopID int) error
	// ReorderStops rewrites ids 1..n following the given current-id order.
	ReorderStops(ctx context.Context, owner, mapID string, order []int) error
	// NextSequence returns max(id)+1 for the map, 1 when it has no stops.
	NextSequence(ctx context.Context, owner, mapID string) (int, error)
}
