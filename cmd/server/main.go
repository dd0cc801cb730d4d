/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the mortgage amortization engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration, apply flag overrides
  2. Initialize SQLite run store
  3. Pick the result cache (Redis when configured, in-memory otherwise)
  4. Initialize OpenTelemetry tracing (no-op without an endpoint)
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides DB_PATH)
           Use ":memory:" for in-memory database

ENVIRONMENT:
  PORT, DB_PATH, REDIS_ADDR, CACHE_TTL_HOURS, ALLOWED_ORIGINS,
  OTEL_ENDPOINT, OTEL_SERVICE_NAME. A local .env file is honored.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Flush tracing, close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/mortgage.db"

  # Run with Redis-backed result cache
  REDIS_ADDR=localhost:6379 ./server

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Run persistence
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/payoff/mortgage-engine/api"
	"github.com/payoff/mortgage-engine/config"
	"github.com/payoff/mortgage-engine/store/cache"
	"github.com/payoff/mortgage-engine/store/sqlite"
	"github.com/payoff/mortgage-engine/tracing"
)

func main() {
	cfg := config.Load()

	// Flags override the environment
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Result cache: Redis when configured, in-memory otherwise
	var resultCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr, time.Duration(cfg.CacheTTLHours)*time.Hour)
		defer redisCache.Close()
		resultCache = redisCache
		log.Printf("Using Redis result cache at %s", cfg.RedisAddr)
	} else {
		resultCache = cache.NewMemory()
	}

	// Tracing (no-op when OTEL_ENDPOINT is unset)
	shutdownTracing, err := tracing.Init(context.Background(), cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Initialize handler and router
	handler := api.NewHandler(store, resultCache)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("Tracing shutdown: %v", err)
	}

	log.Println("Server stopped")
}
