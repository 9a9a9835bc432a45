package domain

import "fmt"

// Trip is an insertion-ordered collection of Places with two unique indexes
// over the same member set: one by nickname, one by numeric id. For driving
// stops the insertion order is the visiting order. A Trip is a request-scoped
// projection rebuilt from the persisted stop records on every render; it is
// never stored.
type Trip struct {
	order      []*Place
	byNickname map[string]*Place
	byID       map[int]*Place
}

func NewTrip() *Trip {
	return &Trip{
		byNickname: make(map[string]*Place),
		byID:       make(map[int]*Place),
	}
}

// Add inserts a place into both indexes. A nickname or id collision is
// rejected with a ValidationError; there is no partial-add state and no
// silent overwrite.
func (t *Trip) Add(p *Place) error {
	if p == nil {
		return &ValidationError{Reason: "place must be non-nil"}
	}
	if p.Nickname == "" {
		return &ValidationError{Field: "nickname", Reason: "must be non-empty"}
	}

	if _, ok := t.byNickname[p.Nickname]; ok {
		return &ValidationError{
			Field:  "nickname",
			Reason: fmt.Sprintf("duplicate nickname %q", p.Nickname),
		}
	}
	if _, ok := t.byID[p.ID]; ok {
		return &ValidationError{
			Field:  "id",
			Reason: fmt.Sprintf("duplicate id %d", p.ID),
		}
	}

	t.order = append(t.order, p)
	t.byNickname[p.Nickname] = p
	t.byID[p.ID] = p
	return nil
}

// Get resolves integer keys via the id index and string keys via the
// nickname index. Absence is reported via the second return value, not an
// error. Any other key type never matches.
func (t *Trip) Get(key any) (*Place, bool) {
	switch k := key.(type) {
	case int:
		p, ok := t.byID[k]
		return p, ok
	case string:
		p, ok := t.byNickname[k]
		return p, ok
	}
	return nil, false
}

func (t *Trip) Len() int { return len(t.order) }

// Places returns the members in insertion order. The slice is shared;
// callers must not reorder it.
func (t *Trip) Places() []*Place { return t.order }

// AllCoordinates returns each member's coordinates in iteration order.
// Any member without resolved geodata makes the whole view unavailable.
func (t *Trip) AllCoordinates() ([]Coordinates, error) {
	coords := make([]Coordinates, 0, len(t.order))
	for _, p := range t.order {
		if p.Geo == nil {
			return nil, &IncompleteDataError{Nickname: p.Nickname, Reason: "coordinates requested before geocoding"}
		}
		coords = append(coords, p.Geo.Coords)
	}
	return coords, nil
}

// AllExternalIDs returns each member's external place id in iteration order.
func (t *Trip) AllExternalIDs() ([]string, error) {
	ids := make([]string, 0, len(t.order))
	for _, p := range t.order {
		if p.Geo == nil {
			return nil, &IncompleteDataError{Nickname: p.Nickname, Reason: "external place id requested before geocoding"}
		}
		ids = append(ids, p.Geo.ExternalPlaceID)
	}
	return ids, nil
}

// AllDescriptions returns each member's description in iteration order.
func (t *Trip) AllDescriptions() []string {
	descs := make([]string, 0, len(t.order))
	for _, p := range t.order {
		descs = append(descs, p.Description)
	}
	return descs
}
