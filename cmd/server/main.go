package main // Entry point package

import (
	"context" // Bounds startup store access
	"log"     // Logging library
	"time"    // Startup timeout duration

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/moewai/aquaflow/internal/config"  // Internal config loader
	"github.com/moewai/aquaflow/internal/planner" // Production plan generator
	"github.com/moewai/aquaflow/internal/queue"   // Order event consumer
	"github.com/moewai/aquaflow/internal/router"  // Internal router setup
	"github.com/moewai/aquaflow/internal/session" // Session manager
	"github.com/moewai/aquaflow/internal/store"   // Persisted collection store
)

func main() {
	// Load a local .env file when present; in containers the variables
	// come from the environment directly and a missing file is fine.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load() // Load environment config

	// Redis serves two roles here: snapshot backend (when selected) and
	// the rate limiter's counter store.  A nil client disables the latter.
	rdb := config.NewRedisClient()

	// Pick the snapshot backend.  The store itself is backend-agnostic;
	// everything below this switch works the same against any of them.
	var backend store.Backend
	switch cfg.SnapshotBackend {
	case config.BackendRedis:
		if rdb == nil {
			log.Fatalf("SNAPSHOT_BACKEND=redis but Redis is unreachable")
		}
		backend = store.NewRedisBackend(rdb, cfg.SnapshotKey)
	case config.BackendMySQL:
		b, err := store.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("mysql backend: %v", err)
		}
		backend = b
	case config.BackendMemory:
		backend = store.NewMemoryBackend()
	default:
		backend = store.NewFileBackend(cfg.SnapshotPath)
	}

	st := store.New(backend)

	// Seed the snapshot on first run.  Initialize is a no-op when data
	// already exists, so restarts never clobber state.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := st.Initialize(ctx); err != nil {
		cancel()
		log.Fatalf("initialize store: %v", err)
	}
	cancel()

	reg := store.NewRegistry(st)
	sessions := session.NewManager(reg.Users)
	plan := planner.New(cfg.GeminiAPIKey, cfg.GeminiModel)

	// Consume order events in the background.  The consumer reconnects on
	// its own; a broker outage never takes the API down.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	e := echo.New()          // Create Echo instance
	router.RegisterRoutes(e) // Register health check
	router.RegisterAPI(e, cfg, reg, sessions, plan, rdb)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
