package dto

// Coordinates on the wire are [lat, lng] pairs, matching what web map
// widgets consume directly.
type LatLng [2]float64

type MarkerResponse struct {
	Position LatLng `json:"position"`
	Number   int    `json:"number,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Colour   string `json:"colour,omitempty"`
	Popup    string `json:"popup"`
}

type SegmentResponse struct {
	Path  []LatLng `json:"path"`
	Popup string   `json:"popup"`
}

type RenderResponse struct {
	Center   LatLng            `json:"center"`
	Zoom     int               `json:"zoom"`
	Markers  []MarkerResponse  `json:"markers"`
	Segments []SegmentResponse `json:"segments"`
}
