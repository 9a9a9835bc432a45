package services

import (
	"context"
	"fmt"
	"strings"

	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
)

// ComposeMap derives the full render instruction set for one map open:
// partition the raw records, colour the driving stops, build the marker
// list (parking first, then points of interest, then numbered driving
// stops) and resolve the connecting route segments.
//
// An empty record set is the empty-trip terminal case, not an error: the
// result is a single wide world view with no pins or segments.
func ComposeMap(
	ctx context.Context,
	records []domain.StopRecord,
	provider ports.RouteProvider,
) (*domain.RenderSet, error) {
	if len(records) == 0 {
		return &domain.RenderSet{
			Center:   domain.WorldViewCenter,
			Zoom:     domain.WorldViewZoom,
			Markers:  []domain.MarkerInstruction{},
			Segments: []domain.SegmentInstruction{},
		}, nil
	}

	set, err := PartitionStops(records)
	if err != nil {
		return nil, fmt.Errorf("compose map: %w", err)
	}

	AssignColours(set.Driving)

	markers := make([]domain.MarkerInstruction, 0, len(records))

	// Parking drawn first so it sits beneath the other pins.
	for _, trip := range []*domain.Trip{set.Parking, set.PointsOfInterest} {
		for _, p := range trip.Places() {
			m, err := iconMarker(p)
			if err != nil {
				return nil, fmt.Errorf("compose map: place %q: %w", p.Nickname, err)
			}
			markers = append(markers, m)
		}
	}

	for i, p := range set.Driving.Places() {
		if p.Geo == nil {
			return nil, &domain.IncompleteDataError{Nickname: p.Nickname, Reason: "marker requested before geocoding"}
		}
		markers = append(markers, domain.MarkerInstruction{
			Position: p.Geo.Coords,
			Number:   i + 1,
			Colour:   p.Colour,
			Popup:    placePopup(p),
		})
	}

	segments := []domain.SegmentInstruction{}
	if set.Driving.Len() > 0 {
		resolved, err := ResolveRoutes(ctx, set.Driving, provider)
		if err != nil {
			return nil, fmt.Errorf("compose map: %w", err)
		}
		for _, seg := range resolved {
			segments = append(segments, domain.SegmentInstruction{
				Path:  seg.Path,
				Popup: drivePopup(seg.DistanceText, seg.DurationText),
			})
		}
	}

	center := domain.WorldViewCenter
	zoom := domain.WorldViewZoom
	if first := firstPlaced(set); first != nil {
		center = first.Geo.Coords
		zoom = domain.TripViewZoom
	}

	return &domain.RenderSet{
		Center:   center,
		Zoom:     zoom,
		Markers:  markers,
		Segments: segments,
	}, nil
}

// iconMarker builds the pin for a non-driving place. POI icons dispatch on
// the place type; an unrecognized type is rejected rather than rendered as
// nothing.
func iconMarker(p *domain.Place) (domain.MarkerInstruction, error) {
	if p.Geo == nil {
		return domain.MarkerInstruction{}, &domain.IncompleteDataError{Nickname: p.Nickname, Reason: "marker requested before geocoding"}
	}

	var icon domain.Icon
	switch p.Role {
	case domain.RoleParking:
		icon = domain.IconParking
	case domain.RolePointOfInterest:
		switch p.Type {
		case domain.PlaceTypePOI:
			icon = domain.IconInfo
		case domain.PlaceTypeSleep:
			icon = domain.IconBed
		default:
			return domain.MarkerInstruction{}, &domain.ValidationError{
				Field:  "place_type",
				Reason: fmt.Sprintf("unrecognized value %q", string(p.Type)),
			}
		}
	default:
		return domain.MarkerInstruction{}, &domain.ValidationError{
			Field:  "role",
			Reason: "icon marker requested for driving stop",
		}
	}

	return domain.MarkerInstruction{
		Position: p.Geo.Coords,
		Icon:     icon,
		Colour:   p.Colour,
		Popup:    placePopup(p),
	}, nil
}

// placePopup renders the popup body for a pin: name, links (if any), then
// the description.
func placePopup(p *domain.Place) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b><br>", p.Nickname)
	for i, title := range p.LinkTitles {
		fmt.Fprintf(&b, "%s: <a href='%s' target='_blank'>%s</a><br>", title, p.Links[i], p.Links[i])
	}
	b.WriteString(p.Description)
	return b.String()
}

func drivePopup(distance, duration string) string {
	return fmt.Sprintf("<b>Duration</b>: %s <br> <b>Distance</b>: %s", duration, distance)
}

// firstPlaced picks the place the map centers on: the first driving stop,
// else the first point of interest, else the first parking spot.
func firstPlaced(set *TripSet) *domain.Place {
	for _, trip := range []*domain.Trip{set.Driving, set.PointsOfInterest, set.Parking} {
		for _, p := range trip.Places() {
			if p.Geo != nil {
				return p
			}
		}
	}
	return nil
}
