package domain

// RouteSegment is the line of travel between two consecutive driving stops.
// The path is the actual road geometry when the route service returned one,
// or a degenerate two-point straight line otherwise. Distance and duration
// are human-readable labels; both are the literal "na" when the route
// service reported no route between the endpoints.
type RouteSegment struct {
	OriginID      string
	DestinationID string
	Path          []Coordinates
	DistanceText  string
	DurationText  string
}
