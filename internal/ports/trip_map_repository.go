package ports

import (
	"context"
	"errors"

	"roadtrip-map-service/internal/domain"
)

// ErrMapNotFound is returned when a map id does not exist under the given
// owner. Handlers translate it to a 404.
var ErrMapNotFound = errors.New("map not found")

// Port: a boundary for trip-map documents and their collaborator lists.
type TripMapRepository interface {
	CreateMap(ctx context.Context, owner, name string) (string, error)
	GetMap(ctx context.Context, owner, mapID string) (*domain.TripMap, error)
	DeleteMap(ctx context.Context, owner, mapID string) error
	ListOwnedMaps(ctx context.Context, owner string) ([]*domain.TripMap, error)
	// ListSharedMaps returns maps owned by other users where uid appears in
	// the collaborator list.
	ListSharedMaps(ctx context.Context, uid string) ([]*domain.TripMap, error)
	AddCollaborator(ctx context.Context, owner, mapID string, c domain.Collaborator) error
	RemoveCollaborator(ctx context.Context, owner, mapID, uid string) error
}
