package domain

import "strconv"

// Role classifies how a stop participates in the trip.
type Role int

const (
	// Part of the ordered, routed itinerary.
	RoleDrivingStop Role = iota
	// Shown on the map but not routed.
	RolePointOfInterest
	// Shown beneath other pins, excluded from routing.
	RoleParking
)

func (r Role) String() string {
	switch r {
	case RoleDrivingStop:
		return "driving-stop"
	case RolePointOfInterest:
		return "point-of-interest"
	case RoleParking:
		return "parking"
	}
	return "unknown"
}

// ParseRole maps the persisted "include in drive" flag to a Role.
// Recognized values are exactly "y", "n" and "p"; anything else is rejected
// rather than silently bucketed.
func ParseRole(flag string) (Role, error) {
	switch flag {
	case "y":
		return RoleDrivingStop, nil
	case "n":
		return RolePointOfInterest, nil
	case "p":
		return RoleParking, nil
	}
	return 0, &ValidationError{Field: "role_flag", Reason: "unrecognized value " + strconv.Quote(flag)}
}

// PlaceType selects the icon for point-of-interest places.
type PlaceType string

const (
	PlaceTypePOI   PlaceType = "poi"
	PlaceTypeSleep PlaceType = "sleep"
)

// Geodata holds the resolved location of a place. The external place id is
// the geocoding service's opaque key, used as the join key for route
// lookups; it and the coordinates are populated together.
type Geodata struct {
	ExternalPlaceID string
	Coords          Coordinates
}

// Place is a single point in a trip: identity, display text, categorical
// role and, once geocoded, a resolved location.
type Place struct {
	ID          int
	Nickname    string
	Name        string
	Description string
	Role        Role
	Type        PlaceType
	Overnight   bool

	// Derived during colour assignment, never persisted as input.
	Colour string

	// Nil until geocoding resolves the place.
	Geo *Geodata

	// Parallel label/URL sequences, rendered as a list. May be empty.
	LinkTitles []string
	Links      []string
}

// SetGeodata replaces the resolved location in one step, keeping the
// invariant that coordinates never exist without an external place id.
func (p *Place) SetGeodata(externalID string, lat, lng float64) {
	p.Geo = &Geodata{
		ExternalPlaceID: externalID,
		Coords:          Coordinates{Lat: lat, Lng: lng},
	}
}

func (p *Place) SetColour(colour string) {
	p.Colour = colour
}

// SetLinks replaces the link list. Titles and links are parallel sequences;
// a mismatch is a validation error so a label can never point at the wrong
// URL.
func (p *Place) SetLinks(titles, links []string) error {
	if len(titles) != len(links) {
		return &ValidationError{Field: "links", Reason: "link titles and links must have the same length"}
	}
	p.LinkTitles = titles
	p.Links = links
	return nil
}

// SetLink normalizes a single label/URL pair into one-element sequences so
// callers may pass either a single link or a list.
func (p *Place) SetLink(title, link string) {
	p.LinkTitles = []string{title}
	p.Links = []string{link}
}
