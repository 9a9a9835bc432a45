package services

import (
	"fmt"

	"roadtrip-map-service/internal/domain"
)

// TripSet is the result of splitting one map's stop records by role.
type TripSet struct {
	Driving          *domain.Trip
	PointsOfInterest *domain.Trip
	Parking          *domain.Trip
}

// PartitionStops dispatches each record to one of three Trips based on its
// role flag, preserving input order within each Trip. For the driving Trip
// that order is the persisted visiting order. A record with an unrecognized
// role flag fails the whole partition; nothing is silently dropped.
func PartitionStops(records []domain.StopRecord) (*TripSet, error) {
	set := &TripSet{
		Driving:          domain.NewTrip(),
		PointsOfInterest: domain.NewTrip(),
		Parking:          domain.NewTrip(),
	}

	for _, rec := range records {
		place, err := domain.NewPlaceFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("partition stops: record id=%d: %w", rec.ID, err)
		}

		var trip *domain.Trip
		switch place.Role {
		case domain.RoleDrivingStop:
			trip = set.Driving
		case domain.RolePointOfInterest:
			trip = set.PointsOfInterest
		case domain.RoleParking:
			trip = set.Parking
		default:
			return nil, &domain.ValidationError{Field: "role", Reason: "unhandled role " + place.Role.String()}
		}

		if err := trip.Add(place); err != nil {
			return nil, fmt.Errorf("partition stops: record id=%d: %w", rec.ID, err)
		}
	}

	return set, nil
}
