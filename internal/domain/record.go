package domain

// StopRecord is one persisted stop row as the storage layer hands it over:
// field values only, no behavior. Records arrive ordered by id ascending,
// which the rest of the system trusts as visiting order.
type StopRecord struct {
	ID              int
	Nickname        string
	Name            string
	Description     string
	OvernightFlag   string
	RoleFlag        string
	PlaceType       string
	ExternalPlaceID string
	Lat             *float64
	Lng             *float64
	LinkTitles      []string
	Links           []string
}

// NewPlaceFromRecord builds a Place from a raw record, validating the
// required fields. The nickname defaults to the place name when absent.
// Geodata is attached only when the record carries both coordinates; a
// record with coordinates but no external place id is rejected because the
// two are populated together by geocoding.
func NewPlaceFromRecord(rec StopRecord) (*Place, error) {
	if rec.ID <= 0 {
		return nil, &ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	if rec.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must be non-empty"}
	}

	role, err := ParseRole(rec.RoleFlag)
	if err != nil {
		return nil, err
	}

	nickname := rec.Nickname
	if nickname == "" {
		nickname = rec.Name
	}

	p := &Place{
		ID:          rec.ID,
		Nickname:    nickname,
		Name:        rec.Name,
		Description: rec.Description,
		Role:        role,
		Type:        PlaceType(rec.PlaceType),
		Overnight:   rec.OvernightFlag == "y",
	}

	if rec.Lat != nil && rec.Lng != nil {
		if rec.ExternalPlaceID == "" {
			return nil, &ValidationError{
				Field:  "external_place_id",
				Reason: "must be present when coordinates are present",
			}
		}
		p.SetGeodata(rec.ExternalPlaceID, *rec.Lat, *rec.Lng)
	}

	if len(rec.LinkTitles) > 0 || len(rec.Links) > 0 {
		if err := p.SetLinks(rec.LinkTitles, rec.Links); err != nil {
			return nil, err
		}
	}

	return p, nil
}
