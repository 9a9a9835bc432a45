package dto

import "time"

type CreateMapRequest struct {
	Name string `json:"name"`
}

type MapResponse struct {
	MapID     string    `json:"map_id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

type ListMapsResponse struct {
	Owned  []MapResponse `json:"owned"`
	Shared []MapResponse `json:"shared"`
}

type AddCollaboratorRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type CollaboratorResponse struct {
	UserID  string    `json:"user_id"`
	Role    string    `json:"role"`
	AddedBy string    `json:"added_by"`
	AddedAt time.Time `json:"added_at"`
}
