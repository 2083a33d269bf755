package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	reset := flag.Bool("reset", false, "delete existing orders before seeding")
	skipSeed := flag.Bool("schema-only", false, "create the schema without seeding")
	flag.Parse()

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.OpenPostgres(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *skipSeed {
		return
	}

	repo := repositories.NewPostgresOrderRepository(conn)
	if *reset {
		if err := repo.ClearOrders(ctx); err != nil {
			log.Fatalf("reset failed: %v", err)
		}
		log.Println("Existing orders deleted.")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/orders.json")
	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(ctx, repo, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
