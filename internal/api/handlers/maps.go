package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"roadtrip-map-service/internal/api/dto"
	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
)

// MapHandler exposes trip-map document and collaborator endpoints.
type MapHandler struct {
	Maps ports.TripMapRepository
}

func (h *MapHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid := UserID(r)

	var req dto.CreateMapRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	mapID, err := h.Maps.CreateMap(r.Context(), uid, name)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	m, err := h.Maps.GetMap(r.Context(), uid, mapID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, mapResponse(m))
}

// List returns the caller's own maps plus maps shared with them.
func (h *MapHandler) List(w http.ResponseWriter, r *http.Request) {
	uid := UserID(r)

	owned, err := h.Maps.ListOwnedMaps(r.Context(), uid)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	shared, err := h.Maps.ListSharedMaps(r.Context(), uid)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListMapsResponse{
		Owned:  make([]dto.MapResponse, 0, len(owned)),
		Shared: make([]dto.MapResponse, 0, len(shared)),
	}
	for _, m := range owned {
		res.Owned = append(res.Owned, mapResponse(m))
	}
	for _, m := range shared {
		res.Shared = append(res.Shared, mapResponse(m))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Delete removes a map the caller owns.
func (h *MapHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := UserID(r)
	mapID := chi.URLParam(r, "mapID")

	if err := h.Maps.DeleteMap(r.Context(), uid, mapID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "deleted": mapID})
}

// AddCollaborator grants another user access to the caller's map.
// Owner-only.
func (h *MapHandler) AddCollaborator(w http.ResponseWriter, r *http.Request) {
	uid := UserID(r)
	mapID := chi.URLParam(r, "mapID")

	var req dto.AddCollaboratorRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	collabUID := strings.TrimSpace(req.UserID)
	if collabUID == "" {
		writeError(w, r, http.StatusBadRequest, "user_id is required")
		return
	}

	roleStr := req.Role
	if roleStr == "" {
		roleStr = string(domain.RoleEditor)
	}
	role, err := domain.ParseCollaboratorRole(roleStr)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	// The map must exist under the caller's namespace; that also makes the
	// caller the owner.
	if _, err := h.Maps.GetMap(r.Context(), uid, mapID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	c := domain.Collaborator{UserID: collabUID, Role: role, AddedBy: uid}
	if err := h.Maps.AddCollaborator(r.Context(), uid, mapID, c); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CollaboratorResponse{
		UserID:  c.UserID,
		Role:    string(c.Role),
		AddedBy: c.AddedBy,
		AddedAt: c.AddedAt,
	})
}

// RemoveCollaborator revokes a collaborator's access. Owner-only.
func (h *MapHandler) RemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	uid := UserID(r)
	mapID := chi.URLParam(r, "mapID")
	collabUID := chi.URLParam(r, "userID")

	if _, err := h.Maps.GetMap(r.Context(), uid, mapID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Maps.RemoveCollaborator(r.Context(), uid, mapID, collabUID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "removed": collabUID})
}

func mapResponse(m *domain.TripMap) dto.MapResponse {
	return dto.MapResponse{
		MapID:     m.ID,
		Name:      m.Name,
		Owner:     m.Owner,
		CreatedAt: m.CreatedAt,
	}
}
