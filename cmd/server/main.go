package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"roadtrip-map-service/internal/adapters/cache"
	"roadtrip-map-service/internal/adapters/geo"
	"roadtrip-map-service/internal/adapters/repositories"
	"roadtrip-map-service/internal/api"
	"roadtrip-map-service/internal/config"
	"roadtrip-map-service/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, Google Maps) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "app.db")
	seedPath := config.Get("SEED_PATH", "")
	port := config.Get("PORT", "8080")
	origins := strings.Split(config.Get("ALLOWED_ORIGINS", "http://localhost:5173"), ",")

	gmapsKey := os.Getenv("GOOGLE_MAPS_KEY")
	if strings.TrimSpace(gmapsKey) == "" {
		log.Fatal("GOOGLE_MAPS_KEY is required")
	}

	sqliteDB, err := db.OpenSqlite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema (and optionally seed demo data) on startup for
	// local runs.
	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatal(err)
	}
	if seedPath != "" {
		if err := repositories.SeedFromJSON(sqliteDB, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	// Route legs are cached in Redis when configured; without it every
	// render pays the full external API cost.
	var routeCache *cache.RedisRouteCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		routeCache = cache.NewRedisRouteCache(client)
		log.Printf("route cache enabled addr=%s", addr)
	} else {
		log.Println("REDIS_ADDR not set; route caching disabled")
	}

	geocodeCache := cache.NewSqliteGeocodeCache(sqliteDB)
	provider, err := geo.NewGoogleMapsProvider(gmapsKey, geocodeCache, routeCache)
	if err != nil {
		log.Fatal(err)
	}

	mapRepo := repositories.NewSqliteTripMapRepository(sqliteDB)
	stopRepo := repositories.NewSqliteStopRepository(sqliteDB)
	router := api.NewRouter(mapRepo, stopRepo, provider, provider, origins)

	// Timeouts are tuned for cold-cache renders (external API latency grows
	// with the number of driving stops).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
