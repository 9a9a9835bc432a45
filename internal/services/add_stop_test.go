package services

import (
	"context"
	"errors"
	"testing"

	"roadtrip-map-service/internal/adapters/geo"
	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
)

// fakeStopRepo records adds in memory; only the methods AddStop touches are
// meaningful.
type fakeStopRepo struct {
	stops   []domain.StopRecord
	nextSeq int
}

func (f *fakeStopRepo) ListStops(ctx context.Context, owner, mapID string) ([]domain.StopRecord, error) {
	return f.stops, nil
}

func (f *fakeStopRepo) AddStop(ctx context.Context, owner, mapID string, rec domain.StopRecord) error {
	f.stops = append(f.stops, rec)
	return nil
}

func (f *fakeStopRepo) UpdateStopField(ctx context.Context, owner, mapID string, stopID int, field, value string) error {
	return nil
}

func (f *fakeStopRepo) DeleteStop(ctx context.Context, owner, mapID string, stopID int) error {
	return nil
}

func (f *fakeStopRepo) ReorderStops(ctx context.Context, owner, mapID string, order []int) error {
	return nil
}

func (f *fakeStopRepo) NextSequence(ctx context.Context, owner, mapID string) (int, error) {
	return f.nextSeq, nil
}

func TestAddStop(t *testing.T) {
	repo := &fakeStopRepo{nextSeq: 4}
	geocoder := geo.NewMockGeocoder(map[string]ports.GeocodeResult{
		"Grand Canyon": {
			ExternalPlaceID: "ext-gc",
			Coords:          domain.Coordinates{Lat: 36.1, Lng: -112.1},
		},
	})

	rec, err := AddStop(context.Background(), repo, geocoder, "user-1", "map-1", NewStopRequest{
		Name:          "  Grand Canyon  ",
		Description:   "south rim",
		OvernightFlag: "y",
		RoleFlag:      "y",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ID != 4 {
		t.Fatalf("id = %d, want next sequence 4", rec.ID)
	}
	if rec.Name != "Grand Canyon" {
		t.Fatalf("name = %q, want trimmed", rec.Name)
	}
	if rec.ExternalPlaceID != "ext-gc" {
		t.Fatalf("external id = %q", rec.ExternalPlaceID)
	}
	if rec.Lat == nil || *rec.Lat != 36.1 {
		t.Fatalf("lat = %v", rec.Lat)
	}

	if len(repo.stops) != 1 {
		t.Fatalf("expected 1 persisted stop, got %d", len(repo.stops))
	}
}

func TestAddStopGeocodeMiss(t *testing.T) {
	repo := &fakeStopRepo{nextSeq: 1}
	geocoder := geo.NewMockGeocoder(nil)

	_, err := AddStop(context.Background(), repo, geocoder, "user-1", "map-1", NewStopRequest{
		Name:     "Atlantis",
		RoleFlag: "y",
	})
	if !errors.Is(err, ports.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}

	// nothing may be written on a miss
	if len(repo.stops) != 0 {
		t.Fatalf("expected no persisted stops, got %d", len(repo.stops))
	}
}

func TestAddStopRejectsBadInput(t *testing.T) {
	repo := &fakeStopRepo{nextSeq: 1}
	geocoder := geo.NewMockGeocoder(nil)

	var vErr *domain.ValidationError

	_, err := AddStop(context.Background(), repo, geocoder, "u", "m", NewStopRequest{
		Name:     "   ",
		RoleFlag: "y",
	})
	if !errors.As(err, &vErr) {
		t.Fatalf("blank name: expected ValidationError, got %v", err)
	}

	_, err = AddStop(context.Background(), repo, geocoder, "u", "m", NewStopRequest{
		Name:     "Somewhere",
		RoleFlag: "z",
	})
	if !errors.As(err, &vErr) {
		t.Fatalf("bad role flag: expected ValidationError, got %v", err)
	}
}
