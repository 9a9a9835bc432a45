package services

import "roadtrip-map-service/internal/domain"

// Marker colours for driving stops.
const (
	ColourOvernight   = "black"
	ColourPassThrough = "blue"
)

// AssignColours gives every driving stop its marker colour from the
// overnight flag. It mutates colour only and is idempotent: re-running it
// yields the same result.
func AssignColours(driving *domain.Trip) {
	for _, p := range driving.Places() {
		if p.Overnight {
			p.SetColour(ColourOvernight)
		} else {
			p.SetColour(ColourPassThrough)
		}
	}
}
