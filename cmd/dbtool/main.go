package main

import (
	"context"
	"flag"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"roadtrip-map-service/internal/adapters/repositories"
	"roadtrip-map-service/internal/platform/db"
)

// dbtool manages the Postgres deployment. The server itself runs on SQLite
// for local and single-node setups; this tool initializes and inspects the
// hosted variant where stops live in Postgres.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	initSchema := flag.Bool("init", false, "create tables if they do not exist")
	seedPath := flag.String("seed", "", "path to a JSON seed file to import")
	listOwner := flag.String("owner", "", "owner id for -map listing")
	listMap := flag.String("map", "", "map id whose stops to list")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	switch {
	case *initSchema:
		if err := repositories.InitPostgresSchema(pg); err != nil {
			log.Fatal(err)
		}
		log.Println("postgres schema initialized")
		if *seedPath != "" {
			if err := repositories.SeedPostgresFromJSON(pg, *seedPath); err != nil {
				log.Fatal(err)
			}
			log.Println("seeding complete")
		}

	case *seedPath != "":
		if err := repositories.SeedPostgresFromJSON(pg, *seedPath); err != nil {
			log.Fatal(err)
		}
		log.Println("seeding complete")

	case *listMap != "":
		if *listOwner == "" {
			log.Fatal("-map requires -owner")
		}
		repo := repositories.NewPostgresStopRepository(pg)
		stops, err := repo.ListStops(context.Background(), *listOwner, *listMap)
		if err != nil {
			log.Fatal(err)
		}
		for _, s := range stops {
			log.Printf("stop id=%d name=%q role=%s overnight=%s", s.ID, s.Name, s.RoleFlag, s.OvernightFlag)
		}
		log.Printf("total=%d", len(stops))

	default:
		flag.Usage()
		os.Exit(2)
	}
}
