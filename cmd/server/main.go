package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/geocoding"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/optimizer"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Nominatim, Redis) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, repo, geocodeCache, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := seedIfEmpty(ctx, repo, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	// Nominatim's usage policy allows one request per second.
	var geocoder ports.Geocoder
	if cfg.GeocoderUserAgent == "" {
		log.Println("GEOCODER_USER_AGENT not set; orders must include coordinates")
	} else {
		g, err := geocoding.NewNominatimGeocoder(geocoding.Config{
			BaseURL:     cfg.GeocoderBaseURL,
			UserAgent:   cfg.GeocoderUserAgent,
			Suffix:      cfg.GeocoderSuffix,
			MinInterval: time.Second,
		}, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		geocoder = g
	}

	var routeOptimizer ports.RouteOptimizer = optimizer.NewSolver(optimizer.Options{MaxPasses: cfg.MaxPasses})
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("parse REDIS_URL: %v", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, route cache disabled: err=%v", err)
		} else {
			routeOptimizer = optimizer.NewCachedOptimizer(routeOptimizer, cache.NewRedisRouteCache(client, cfg.RouteTTL))
			log.Printf("route cache enabled ttl=%s", cfg.RouteTTL)
		}
	}

	router := api.NewRouter(api.Deps{
		Repo:      repo,
		Geocoder:  geocoder,
		Optimizer: routeOptimizer,
		Partners:  cfg.Partners,
	})

	// Write timeout covers geocoding a whole CSV import at 1 req/s.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openStore picks Postgres when DATABASE_URL is set and SQLite otherwise.
func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, ports.OrderRepository, ports.GeocodeCache, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.InitSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, nil, err
		}
		return conn, repositories.NewPostgresOrderRepository(conn), cache.NewSQLGeocodeCache(conn), nil
	}

	conn, err := db.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, nil, err
	}
	return conn, repositories.NewSqliteOrderRepository(conn), cache.NewSqliteGeocodeCache(conn), nil
}

// seedIfEmpty loads demo orders on first start so local runs have data.
func seedIfEmpty(ctx context.Context, repo ports.OrderRepository, seedPath string) error {
	if seedPath == "" {
		return nil
	}
	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Printf("seed file not found, skipping: path=%s", seedPath)
		return nil
	}

	orders, err := repo.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if len(orders) > 0 {
		return nil
	}

	if err := repositories.SeedFromJSON(ctx, repo, seedPath); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
