package services

import (
	"context"
	"fmt"
	"strings"

	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
)

// NewStopRequest carries the user-supplied fields for a stop that has not
// been geocoded yet.
type NewStopRequest struct {
	Name          string
	Description   string
	Nickname      string
	OvernightFlag string
	RoleFlag      string
	PlaceType     string
	LinkTitles    []string
	Links         []string
}

// AddStop geocodes the place name synchronously and persists the stop with
// the next sequence id for the map. A geocoding miss or a validation
// failure leaves storage untouched; a stop is never half-written.
func AddStop(
	ctx context.Context,
	repo ports.StopRepository,
	geocoder ports.Geocoder,
	owner, mapID string,
	req NewStopRequest,
) (domain.StopRecord, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.StopRecord{}, &domain.ValidationError{Field: "name", Reason: "must be non-empty"}
	}
	if _, err := domain.ParseRole(req.RoleFlag); err != nil {
		return domain.StopRecord{}, err
	}

	geo, err := geocoder.Resolve(ctx, name)
	if err != nil {
		return domain.StopRecord{}, fmt.Errorf("add stop: resolve %q: %w", name, err)
	}

	seq, err := repo.NextSequence(ctx, owner, mapID)
	if err != nil {
		return domain.StopRecord{}, fmt.Errorf("add stop: next sequence: %w", err)
	}

	lat := geo.Coords.Lat
	lng := geo.Coords.Lng
	rec := domain.StopRecord{
		ID:              seq,
		Nickname:        strings.TrimSpace(req.Nickname),
		Name:            name,
		Description:     req.Description,
		OvernightFlag:   req.OvernightFlag,
		RoleFlag:        req.RoleFlag,
		PlaceType:       req.PlaceType,
		ExternalPlaceID: geo.ExternalPlaceID,
		Lat:             &lat,
		Lng:             &lng,
		LinkTitles:      req.LinkTitles,
		Links:           req.Links,
	}

	// Validate the assembled record the same way a render would.
	if _, err := domain.NewPlaceFromRecord(rec); err != nil {
		return domain.StopRecord{}, fmt.Errorf("add stop: %w", err)
	}

	if err := repo.AddStop(ctx, owner, mapID, rec); err != nil {
		return domain.StopRecord{}, fmt.Errorf("add stop: persist id=%d: %w", rec.ID, err)
	}

	return rec, nil
}
