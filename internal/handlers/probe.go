package handlers

import (
	"github.com/gofiber/fiber/v3"

	"kwforge/internal/db"
	"kwforge/internal/pipeline"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	db       *db.DB
	pipeline *pipeline.Pipeline
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(database *db.DB, p *pipeline.Pipeline) *ProbeHandler {
	return &ProbeHandler{db: database, pipeline: p}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK only when the database is reachable and the corpus index
// has been built, since scoring requests fail without either.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database unavailable",
		})
	}

	if !h.pipeline.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "corpus index not ready",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
