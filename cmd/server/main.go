package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/league-skinset-finder/internal/api"
	"github.com/dom/league-skinset-finder/internal/cache"
	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/config"
	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/repository"
	"github.com/dom/league-skinset-finder/internal/repository/postgres"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/dom/league-skinset-finder/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// Initialize catalog, from the database when one is configured
	var repos *repository.Repositories
	var cat *catalog.Catalog
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		repos = postgres.NewRepositories(db)

		cat, err = service.LoadFromRepository(ctx, repos)
		if errors.Is(err, domain.ErrEmptyCatalog) {
			log.Printf("database has no catalog, seeding from %s", cfg.CatalogPath)
			cat, err = seedCatalog(ctx, cfg.CatalogPath, repos)
		}
		if err != nil {
			log.Fatalf("failed to load catalog: %v", err)
		}
	} else {
		snap, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("failed to read catalog: %v", err)
		}
		cat, err = catalog.New(snap)
		if err != nil {
			log.Fatalf("failed to load catalog: %v", err)
		}
	}
	log.Printf("Catalog loaded: %d champions, %d skinsets, data date %s", cat.NumChampions(), cat.NumSkinsets(), cat.DataDate())

	// Initialize result cache
	var resultCache cache.ResultCache = cache.NopCache{}
	if cfg.RedisAddress != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, cfg.ResultCacheTTL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		resultCache = redisCache
	}

	// Initialize services
	services := service.NewServices(cat, repos, resultCache, cfg)

	// Initialize WebSocket hub
	hub := websocket.NewHub(services.Resolve)
	go hub.Run()

	// Initialize router
	router := api.NewRouter(services, hub)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Live sessions are hijacked connections that Shutdown does not wait for
	hub.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func seedCatalog(ctx context.Context, path string, repos *repository.Repositories) (*catalog.Catalog, error) {
	snap, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	record, err := service.NewCatalogService(nil, repos).Import(ctx, snap)
	if err != nil {
		return nil, err
	}
	log.Printf("Seeded catalog snapshot %s", record.ID)
	return service.LoadFromRepository(ctx, repos)
}
