package domain

// Icon names the pin glyph for non-numbered markers.
type Icon string

const (
	IconInfo    Icon = "info"
	IconBed     Icon = "bed"
	IconParking Icon = "parking"
)

// MarkerInstruction is one pin to draw. Driving stops carry a 1-based
// Number and a colour; POI and parking pins carry an Icon instead.
type MarkerInstruction struct {
	Position Coordinates
	Number   int
	Icon     Icon
	Colour   string
	Popup    string
}

// SegmentInstruction is one polyline to draw between two driving stops.
type SegmentInstruction struct {
	Path  []Coordinates
	Popup string
}

// World-view framing used when a map has no stops yet.
var WorldViewCenter = Coordinates{Lat: 30, Lng: 10}

const (
	WorldViewZoom = 2
	TripViewZoom  = 8
)

// RenderSet is the complete, ordered drawing instruction set for one map
// open. Markers are listed in draw order (parking first, then points of
// interest, then numbered driving stops) and segments in visiting order;
// the rendering surface may rely on both for z-ordering.
type RenderSet struct {
	Center   Coordinates
	Zoom     int
	Markers  []MarkerInstruction
	Segments []SegmentInstruction
}
