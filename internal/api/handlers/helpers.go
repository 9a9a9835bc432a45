package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"roadtrip-map-service/internal/domain"
	"roadtrip-map-service/internal/ports"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// WithUserID attaches the authenticated user id (supplied by the external
// identity provider) to the request context.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

// UserID returns the authenticated user id threaded through the context.
func UserID(r *http.Request) string {
	uid, _ := r.Context().Value(userIDKey).(string)
	return uid
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps known error kinds to HTTP statuses; anything
// unrecognized is logged and reported as a 500 without leaking internals.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, r, http.StatusBadRequest, validationErr.Error())
		return
	}

	var incompleteErr *domain.IncompleteDataError
	if errors.As(err, &incompleteErr) {
		writeError(w, r, http.StatusUnprocessableEntity, incompleteErr.Error())
		return
	}

	if errors.Is(err, ports.ErrNoMatch) {
		writeError(w, r, http.StatusNotFound, "no place found for that name")
		return
	}

	if errors.Is(err, ports.ErrMapNotFound) {
		writeError(w, r, http.StatusNotFound, "map not found")
		return
	}

	log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

// decodeBody parses a single JSON object request body, rejecting unknown
// fields and trailing content.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}
