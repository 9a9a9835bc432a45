package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"roadtrip-map-service/internal/api/dto"
	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
	"roadtrip-map-service/internal/services"
)

// RenderHandler derives the drawing instruction set for one map open: it
// reads the stop records, runs the composition pipeline and returns the
// markers, segments and framing as JSON for the rendering surface.
type RenderHandler struct {
	Maps   ports.TripMapRepository
	Stops  ports.StopRepository
	Routes ports.RouteProvider
}

func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	uid := UserID(r)
	mapID := chi.URLParam(r, "mapID")

	owner := r.URL.Query().Get("owner_id")
	if owner == "" {
		owner = uid
	}

	m, err := h.Maps.GetMap(r.Context(), owner, mapID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !m.CanRead(uid) {
		writeError(w, r, http.StatusForbidden, "access denied")
		return
	}

	records, err := h.Stops.ListStops(r.Context(), owner, mapID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	set, err := services.ComposeMap(r.Context(), records, h.Routes)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, renderResponse(set))
}

func renderResponse(set *domain.RenderSet) dto.RenderResponse {
	res := dto.RenderResponse{
		Center:   latLng(set.Center),
		Zoom:     set.Zoom,
		Markers:  make([]dto.MarkerResponse, 0, len(set.Markers)),
		Segments: make([]dto.SegmentResponse, 0, len(set.Segments)),
	}

	for _, m := range set.Markers {
		res.Markers = append(res.Markers, dto.MarkerResponse{
			Position: latLng(m.Position),
			Number:   m.Number,
			Icon:     string(m.Icon),
			Colour:   m.Colour,
			Popup:    m.Popup,
		})
	}

	for _, s := range set.Segments {
		path := make([]dto.LatLng, 0, len(s.Path))
		for _, c := range s.Path {
			path = append(path, latLng(c))
		}
		res.Segments = append(res.Segments, dto.SegmentResponse{
			Path:  path,
			Popup: s.Popup,
		})
	}

	return res
}

func latLng(c domain.Coordinates) dto.LatLng {
	return dto.LatLng{c.Lat, c.Lng}
}
