package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kwforge/internal/db"
	"kwforge/internal/handlers"
	"kwforge/internal/handlers/api"
	"kwforge/internal/middleware"
	"kwforge/internal/pipeline"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, p *pipeline.Pipeline) error {
	// Initialize middleware
	authMiddleware, err := middleware.NewAuthMiddleware(ctx, s.Cfg.OIDCIssuer, s.Cfg.OIDCClientID)
	if err != nil {
		return err
	}
	if !authMiddleware.Enabled() {
		log.Println("OIDC token verification is disabled. Set OIDC_ISSUER to enable.")
	}

	// Initialize handlers
	probeHandler := handlers.NewProbeHandler(database, p)
	dashboardHandler := handlers.NewDashboardHandler(database)
	variantHandler := api.NewVariantHandler(database, p)
	keywordHandler := api.NewKeywordHandler(database, p)
	corpusHandler := api.NewCorpusHandler(database, p)

	// Probes and metrics are always unauthenticated; they are scraped
	// from inside the cluster.
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	s.App.Get("/api/health", probeHandler.Liveness)
	s.App.Get("/api/health/ready", probeHandler.Readiness)

	// Dashboard
	s.App.Get("/", authMiddleware.OptionalAuth, dashboardHandler.Index)

	// JSON API
	apiGroup := s.App.Group("/api", authMiddleware.RequireAuth)
	apiGroup.Post("/variants/generate", variantHandler.Generate)
	apiGroup.Get("/variants", variantHandler.Recent)
	apiGroup.Get("/variants/:id", variantHandler.Get)
	apiGroup.Post("/keywords/evaluate", keywordHandler.Evaluate)
	apiGroup.Get("/keywords", keywordHandler.List)
	apiGroup.Get("/keywords/:keyword/variants", keywordHandler.Variants)
	apiGroup.Get("/corpus/stats", corpusHandler.Stats)
	apiGroup.Post("/corpus/refresh", corpusHandler.Refresh)

	return nil
}
