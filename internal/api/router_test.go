package api

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"roadtrip-map-service/internal/adapters/geo"
	"roadtrip-map-service/internal/adapters/repositories"
	"roadtrip-map-service/internal/api/dto"
	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	geocoder := geo.NewMockGeocoder(map[string]ports.GeocodeResult{
		"Grand Canyon": {ExternalPlaceID: "ext-gc", Coords: domain.Coordinates{Lat: 36.1, Lng: -112.1}},
		"Las Vegas":    {ExternalPlaceID: "ext-lv", Coords: domain.Coordinates{Lat: 36.2, Lng: -115.1}},
	})
	routes := geo.NewMockRouteProvider([]geo.MockLeg{
		{From: "ext-gc", To: "ext-lv", Distance: "440 km", Duration: "4 hours",
			Path: []domain.Coordinates{{Lat: 36.1, Lng: -112.1}, {Lat: 36.2, Lng: -115.1}}},
		{From: "ext-lv", To: "ext-gc", Distance: "440 km", Duration: "4 hours",
			Path: []domain.Coordinates{{Lat: 36.2, Lng: -115.1}, {Lat: 36.1, Lng: -112.1}}},
	})

	return NewRouter(
		repositories.NewSqliteTripMapRepository(db),
		repositories.NewSqliteStopRepository(db),
		geocoder,
		routes,
		[]string{"*"},
	)
}

func doRequest(t *testing.T, h http.Handler, method, path, uid, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if uid != "" {
		req.Header.Set("X-User-ID", uid)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createMap(t *testing.T, h http.Handler, uid, name string) string {
	t.Helper()

	rec := doRequest(t, h, http.MethodPost, "/maps", uid, fmt.Sprintf(`{"name":%q}`, name))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create map: status %d body %s", rec.Code, rec.Body.String())
	}

	var res dto.MapResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode map response: %v", err)
	}
	return res.MapID
}

func TestHealthEndpointNeedsNoAuth(t *testing.T) {
	h := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMapsRequireUserHeader(t *testing.T) {
	h := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/maps", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestMapLifecycle(t *testing.T) {
	h := newTestServer(t)

	mapID := createMap(t, h, "user-1", "Summer 2026")

	rec := doRequest(t, h, http.MethodGet, "/maps", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list maps: status %d", rec.Code)
	}
	var list dto.ListMapsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Owned) != 1 || list.Owned[0].MapID != mapID {
		t.Fatalf("owned maps = %+v", list.Owned)
	}

	rec = doRequest(t, h, http.MethodDelete, "/maps/"+mapID, "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete map: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodDelete, "/maps/"+mapID, "user-1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: status %d, want 404", rec.Code)
	}
}

func TestStopLifecycle(t *testing.T) {
	h := newTestServer(t)
	mapID := createMap(t, h, "user-1", "Trip")

	rec := doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/stops", "user-1",
		`{"name":"Grand Canyon","role_flag":"y","overnight_flag":"y","description":"south rim"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add stop: status %d body %s", rec.Code, rec.Body.String())
	}
	var added dto.StopResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode stop: %v", err)
	}
	if added.ID != 1 || added.ExternalPlaceID != "ext-gc" {
		t.Fatalf("added stop = %+v", added)
	}

	rec = doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/stops", "user-1",
		`{"name":"Las Vegas","role_flag":"y","overnight_flag":"n"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add second stop: status %d body %s", rec.Code, rec.Body.String())
	}

	// an unknown place never reaches storage
	rec = doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/stops", "user-1",
		`{"name":"Atlantis","role_flag":"y"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown place: status %d, want 404", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/maps/"+mapID+"/stops", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list stops: status %d", rec.Code)
	}
	var list dto.ListStopsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode stops: %v", err)
	}
	if len(list.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(list.Stops))
	}

	rec = doRequest(t, h, http.MethodPatch, fmt.Sprintf("/maps/%s/stops/%d", mapID, added.ID), "user-1",
		`{"field":"description","value":"north rim"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update field: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/stops/reorder", "user-1",
		`{"order":[2,1]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodGet, "/maps/"+mapID+"/stops", "user-1", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode stops: %v", err)
	}
	if list.Stops[0].Name != "Las Vegas" || list.Stops[0].ID != 1 {
		t.Fatalf("stops after reorder = %+v", list.Stops)
	}

	rec = doRequest(t, h, http.MethodDelete, fmt.Sprintf("/maps/%s/stops/%d", mapID, 2), "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete stop: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestRenderEndpoint(t *testing.T) {
	h := newTestServer(t)
	mapID := createMap(t, h, "user-1", "Trip")

	// empty map renders the world view
	rec := doRequest(t, h, http.MethodGet, "/maps/"+mapID+"/render", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("render: status %d body %s", rec.Code, rec.Body.String())
	}
	var res dto.RenderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode render: %v", err)
	}
	if res.Center != (dto.LatLng{30, 10}) || res.Zoom != 2 {
		t.Fatalf("empty map framing = %+v zoom %d", res.Center, res.Zoom)
	}

	for _, body := range []string{
		`{"name":"Grand Canyon","role_flag":"y","overnight_flag":"y"}`,
		`{"name":"Las Vegas","role_flag":"y","overnight_flag":"n"}`,
	} {
		rec = doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/stops", "user-1", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("add stop: status %d body %s", rec.Code, rec.Body.String())
		}
	}

	rec = doRequest(t, h, http.MethodGet, "/maps/"+mapID+"/render", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("render: status %d body %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode render: %v", err)
	}

	if len(res.Markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(res.Markers))
	}
	if res.Markers[0].Number != 1 || res.Markers[0].Colour != "black" {
		t.Fatalf("marker 1 = %+v", res.Markers[0])
	}
	if res.Markers[1].Colour != "blue" {
		t.Fatalf("marker 2 = %+v", res.Markers[1])
	}
	if len(res.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(res.Segments))
	}
	if !strings.Contains(res.Segments[0].Popup, "4 hours") {
		t.Fatalf("segment popup = %q", res.Segments[0].Popup)
	}
	if res.Center != (dto.LatLng{36.1, -112.1}) || res.Zoom != 8 {
		t.Fatalf("framing = %+v zoom %d", res.Center, res.Zoom)
	}
}

func TestSharedMapAccess(t *testing.T) {
	h := newTestServer(t)
	mapID := createMap(t, h, "owner", "Shared")

	// not shared yet: the other user cannot even read
	rec := doRequest(t, h, http.MethodGet, "/maps/"+mapID+"/stops?owner_id=owner", "friend", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unshared read: status %d, want 403", rec.Code)
	}

	rec = doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/collaborators", "owner",
		`{"user_id":"friend","role":"viewer"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add collaborator: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodGet, "/maps/"+mapID+"/stops?owner_id=owner", "friend", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("viewer read: status %d body %s", rec.Code, rec.Body.String())
	}

	// a viewer cannot mutate
	rec = doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/stops?owner_id=owner", "friend",
		`{"name":"Grand Canyon","role_flag":"y"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("viewer write: status %d, want 403", rec.Code)
	}

	// promote to editor; writes now land in the owner's namespace
	rec = doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/collaborators", "owner",
		`{"user_id":"friend","role":"editor"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("promote collaborator: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/stops?owner_id=owner", "friend",
		`{"name":"Grand Canyon","role_flag":"y"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("editor write: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodGet, "/maps/"+mapID+"/stops", "owner", "")
	var list dto.ListStopsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode stops: %v", err)
	}
	if len(list.Stops) != 1 {
		t.Fatalf("owner sees %d stops, want 1", len(list.Stops))
	}

	// only collaborators may be revoked through the owner's namespace
	rec = doRequest(t, h, http.MethodDelete, "/maps/"+mapID+"/collaborators/friend", "owner", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove collaborator: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = doRequest(t, h, http.MethodGet, "/maps/"+mapID+"/stops?owner_id=owner", "friend", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("revoked read: status %d, want 403", rec.Code)
	}
}

func TestCollaboratorEndpointsAreOwnerOnly(t *testing.T) {
	h := newTestServer(t)
	mapID := createMap(t, h, "owner", "Mine")

	// a non-owner asking under their own namespace finds no such map
	rec := doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/collaborators", "intruder",
		`{"user_id":"intruder","role":"editor"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("intruder add collaborator: status %d, want 404", rec.Code)
	}
}

func TestBadRequestBodies(t *testing.T) {
	h := newTestServer(t)
	mapID := createMap(t, h, "user-1", "Trip")

	rec := doRequest(t, h, http.MethodPost, "/maps", "user-1", `{"name":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty name: status %d, want 400", rec.Code)
	}

	rec = doRequest(t, h, http.MethodPost, "/maps", "user-1", `{"unknown":"field"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: status %d, want 400", rec.Code)
	}

	rec = doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/stops", "user-1",
		`{"name":"Grand Canyon","role_flag":"maybe"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad role flag: status %d, want 400", rec.Code)
	}

	rec = doRequest(t, h, http.MethodPost, "/maps/"+mapID+"/stops/reorder", "user-1",
		`{"order":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty order: status %d, want 400", rec.Code)
	}
}
