package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"roadtrip-map-service/internal/api/handlers"
	"roadtrip-map-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters.
func NewRouter(
	maps ports.TripMapRepository,
	stops ports.StopRepository,
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	allowedOrigins []string,
) http.Handler {
	mapHandler := &handlers.MapHandler{Maps: maps}
	stopHandler := &handlers.StopHandler{Maps: maps, Stops: stops, Geocoder: geocoder}
	renderHandler := &handlers.RenderHandler{Maps: maps, Stops: stops, Routes: routes}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Route("/maps", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", mapHandler.List)
		r.Post("/", mapHandler.Create)

		r.Route("/{mapID}", func(r chi.Router) {
			r.Delete("/", mapHandler.Delete)
			r.Get("/render", renderHandler.Render)

			r.Post("/collaborators", mapHandler.AddCollaborator)
			r.Delete("/collaborators/{userID}", mapHandler.RemoveCollaborator)

			r.Route("/stops", func(r chi.Router) {
				r.Get("/", stopHandler.List)
				r.Post("/", stopHandler.Add)
				r.Post("/reorder", stopHandler.Reorder)
				r.Patch("/{stopID}", stopHandler.UpdateField)
				r.Delete("/{stopID}", stopHandler.Delete)
			})
		})
	})

	return r
}
