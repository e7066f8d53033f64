package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"kwforge/internal/config"
	"kwforge/internal/db"
	"kwforge/internal/generator"
	"kwforge/internal/jobs"
	"kwforge/internal/metrics"
	"kwforge/internal/pipeline"
	"kwforge/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
		if err := database.SeedDevCorpus(ctx); err != nil {
			log.Printf("Warning: failed to seed dev corpus: %v", err)
		}
	}

	// Register Prometheus collectors and the lookup recorder
	metrics.Init(database)

	// Load the scoring policy
	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		log.Fatalf("Failed to load scoring policy: %v", err)
	}

	// Build the pipeline and its initial corpus index
	source := generator.New(cfg)
	p := pipeline.New(database, source, policy, cfg.CacheSize, cfg.CacheTTL)
	defer p.Close()
	if err := p.RefreshIndex(ctx); err != nil {
		if errors.Is(err, db.ErrCorpusEmpty) {
			log.Println("Warning: corpus is empty; scoring unavailable until keywords are ingested")
		} else {
			log.Fatalf("Failed to build corpus index: %v", err)
		}
	}

	// Periodic index rebuilds pick up newly ingested corpus keywords
	refresher := jobs.NewCorpusRefresher(p, cfg.CorpusRefreshInterval)
	go refresher.Start(ctx)

	// HTTP server
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, p); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
