package services

import (
	"context"
	"fmt"
	"sync"

	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
)

// RouteLookupError reports a transport failure from the route service for
// one pair of stops. The resolver does not retry; a wrapping layer may
// retry the whole render.
type RouteLookupError struct {
	OriginID      string
	DestinationID string
	Err           error
}

func (e *RouteLookupError) Error() string {
	return fmt.Sprintf("route lookup %q -> %q: %v", e.OriginID, e.DestinationID, e.Err)
}

func (e *RouteLookupError) Unwrap() error { return e.Err }

type segmentResult struct {
	idx     int
	segment domain.RouteSegment
	err     error
}

// ResolveRoutes computes the ordered route segments for the driving Trip:
// one segment per consecutive pair plus the closing leg back to the first
// stop. A trip of zero or one stops yields no segments.
//
// Lookups are pure per pair and run with bounded concurrency; the output is
// reassembled in pair order (0,1)..(n-2,n-1),(n-1,0) because segment order
// is a presentation contract, not a computation dependency. When the route
// service returns no geometry for a pair the segment degrades to a straight
// two-point line between the pair's plain coordinates.
func ResolveRoutes(
	ctx context.Context,
	driving *domain.Trip,
	provider ports.RouteProvider,
) ([]domain.RouteSegment, error) {
	n := driving.Len()
	if n <= 1 {
		return []domain.RouteSegment{}, nil
	}

	ids, err := driving.AllExternalIDs()
	if err != nil {
		return nil, fmt.Errorf("resolve routes: %w", err)
	}
	coords, err := driving.AllCoordinates()
	if err != nil {
		return nil, fmt.Errorf("resolve routes: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	resultsCh := make(chan segmentResult, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		j := (i + 1) % n

		wg.Add(1)
		go func(idx, i, j int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			seg, err := resolveSegment(ctx, provider, ids[i], ids[j], coords[i], coords[j])
			if err != nil {
				resultsCh <- segmentResult{idx: idx, err: err}
				cancel()
				return
			}
			resultsCh <- segmentResult{idx: idx, segment: seg}
		}(i, i, j)
	}

	wg.Wait()
	close(resultsCh)

	segments := make([]domain.RouteSegment, n)
	var lookupErr error
	for res := range resultsCh {
		if res.err != nil {
			if lookupErr == nil {
				lookupErr = res.err
			}
			continue
		}
		segments[res.idx] = res.segment
	}
	if lookupErr != nil {
		return nil, lookupErr
	}

	return segments, nil
}

func resolveSegment(
	ctx context.Context,
	provider ports.RouteProvider,
	originID, destID string,
	origin, dest domain.Coordinates,
) (domain.RouteSegment, error) {
	result, err := provider.Route(ctx, originID, destID)
	if err != nil {
		return domain.RouteSegment{}, &RouteLookupError{OriginID: originID, DestinationID: destID, Err: err}
	}

	path := result.Path
	if !result.HasPath() {
		path = []domain.Coordinates{origin, dest}
	}

	return domain.RouteSegment{
		OriginID:      originID,
		DestinationID: destID,
		Path:          path,
		DistanceText:  result.DistanceText,
		DurationText:  result.DurationText,
	}, nil
}
