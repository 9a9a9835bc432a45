package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"roadtrip-map-service/internal/api/dto"
	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
	"roadtrip-map-service/internal/services"
)

// StopHandler exposes the stop CRUD endpoints for one map. Every operation
// checks the caller's access against the map's collaborator list: read for
// listing, write (owner or editor) for mutations.
type StopHandler struct {
	Maps     ports.TripMapRepository
	Stops    ports.StopRepository
	Geocoder ports.Geocoder
}

// mapAccess resolves the owner/map pair for the request and checks the
// caller's permission. Shared maps are addressed with an owner_id query
// parameter; without it the caller's own namespace is assumed.
func (h *StopHandler) mapAccess(w http.ResponseWriter, r *http.Request, write bool) (owner, mapID string, ok bool) {
	uid := UserID(r)
	mapID = chi.URLParam(r, "mapID")

	owner = r.URL.Query().Get("owner_id")
	if owner == "" {
		owner = uid
	}

	m, err := h.Maps.GetMap(r.Context(), owner, mapID)
	if err != nil {
		writeDomainError(w, r, err)
		return "", "", false
	}

	allowed := m.CanRead(uid)
	if write {
		allowed = m.CanWrite(uid)
	}
	if !allowed {
		writeError(w, r, http.StatusForbidden, "access denied")
		return "", "", false
	}

	return owner, mapID, true
}

func (h *StopHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, mapID, ok := h.mapAccess(w, r, false)
	if !ok {
		return
	}

	records, err := h.Stops.ListStops(r.Context(), owner, mapID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListStopsResponse{Stops: make([]dto.StopResponse, 0, len(records))}
	for _, rec := range records {
		res.Stops = append(res.Stops, stopResponse(rec))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Add geocodes the new stop synchronously, then persists it with the next
// sequence id.
func (h *StopHandler) Add(w http.ResponseWriter, r *http.Request) {
	owner, mapID, ok := h.mapAccess(w, r, true)
	if !ok {
		return
	}

	var req dto.AddStopRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := services.AddStop(r.Context(), h.Stops, h.Geocoder, owner, mapID, services.NewStopRequest{
		Name:          req.Name,
		Description:   req.Description,
		Nickname:      req.Nickname,
		OvernightFlag: req.OvernightFlag,
		RoleFlag:      req.RoleFlag,
		PlaceType:     req.PlaceType,
		LinkTitles:    req.LinkTitles,
		Links:         req.Links,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, stopResponse(rec))
}

func (h *StopHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	owner, mapID, ok := h.mapAccess(w, r, true)
	if !ok {
		return
	}

	stopID, err := strconv.Atoi(chi.URLParam(r, "stopID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid stop id")
		return
	}

	var req dto.UpdateStopRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Stops.UpdateStopField(r.Context(), owner, mapID, stopID, req.Field, req.Value); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *StopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, mapID, ok := h.mapAccess(w, r, true)
	if !ok {
		return
	}

	stopID, err := strconv.Atoi(chi.URLParam(r, "stopID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid stop id")
		return
	}

	if err := h.Stops.DeleteStop(r.Context(), owner, mapID, stopID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Reorder rewrites the visiting order of a map's stops.
func (h *StopHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	owner, mapID, ok := h.mapAccess(w, r, true)
	if !ok {
		return
	}

	var req dto.ReorderStopsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Order) == 0 {
		writeError(w, r, http.StatusBadRequest, "order must be a non-empty list of stop ids")
		return
	}

	if err := h.Stops.ReorderStops(r.Context(), owner, mapID, req.Order); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "saved_count": len(req.Order)})
}

func stopResponse(rec domain.StopRecord) dto.StopResponse {
	return dto.StopResponse{
		ID:              rec.ID,
		Nickname:        rec.Nickname,
		Name:            rec.Name,
		Description:     rec.Description,
		OvernightFlag:   rec.OvernightFlag,
		RoleFlag:        rec.RoleFlag,
		PlaceType:       rec.PlaceType,
		ExternalPlaceID: rec.ExternalPlaceID,
		Lat:             rec.Lat,
		Lng:             rec.Lng,
		LinkTitles:      rec.LinkTitles,
		Links:           rec.Links,
	}
}
