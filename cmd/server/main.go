package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"uuidy/internal/classify"
	"uuidy/internal/config"
	"uuidy/internal/db"
	"uuidy/internal/jobs"
	"uuidy/internal/metrics"
	"uuidy/internal/search"
	"uuidy/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	if cfg.IsDev() {
		if err := database.SeedDevRecords(ctx); err != nil {
			log.Printf("Warning: failed to seed dev records: %v", err)
		}
	}

	// Metrics collector and recorder
	metrics.Init(database)

	// Classification pipeline
	cache := db.NewCache(database, cfg.CacheTTL)
	searcher := search.New(cfg)
	if !cfg.SearchEnabled() {
		log.Println("SERPAPI_KEY not set: web search disabled, classification will degrade to pattern matching only")
	}
	svc := classify.NewService(cache, searcher, cfg)

	// HTTP server
	srv := server.New(cfg)
	srv.RegisterRoutes(database, svc)

	// Background cache pruner
	jobCtx, cancelJobs := context.WithCancel(ctx)
	pruner := jobs.NewPruner(database, cfg.PruneInterval)
	go pruner.Start(jobCtx)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancelJobs()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
