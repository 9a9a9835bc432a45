package dto

type StopResponse struct {
	ID              int      `json:"id"`
	Nickname        string   `json:"nickname"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	OvernightFlag   string   `json:"overnight_flag"`
	RoleFlag        string   `json:"role_flag"`
	PlaceType       string   `json:"place_type,omitempty"`
	ExternalPlaceID string   `json:"external_place_id,omitempty"`
	Lat             *float64 `json:"lat,omitempty"`
	Lng             *float64 `json:"lng,omitempty"`
	LinkTitles      []string `json:"link_titles,omitempty"`
	Links           []string `json:"links,omitempty"`
}

type ListStopsResponse struct {
	Stops []StopResponse `json:"stops"`
}

type AddStopRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Nickname      string   `json:"nickname"`
	OvernightFlag string   `json:"overnight_flag"`
	RoleFlag      string   `json:"role_flag"`
	PlaceType     string   `json:"place_type"`
	LinkTitles    []string `json:"link_titles"`
	Links         []string `json:"links"`
}

type UpdateStopRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type ReorderStopsRequest struct {
	// Current stop ids in the desired new visiting order.
	Order []int `json:"order"`
}
