package api

import (
	"github.com/gofiber/fiber/v3"

	"kwforge/internal/db"
	"kwforge/internal/pipeline"
)

// CorpusHandler exposes reference corpus statistics via JSON API.
type CorpusHandler struct {
	db       *db.DB
	pipeline *pipeline.Pipeline
}

// NewCorpusHandler creates a new API corpus handler.
func NewCorpusHandler(database *db.DB, p *pipeline.Pipeline) *CorpusHandler {
	return &CorpusHandler{db: database, pipeline: p}
}

// Stats returns corpus and variant counts plus index readiness.
func (h *CorpusHandler) Stats(c fiber.Ctx) error {
	corpusSize, err := h.db.CountCorpusKeywords(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to count corpus keywords")
	}

	bySource, err := h.db.CountVariantsBySource(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to count variants")
	}

	return jsonSuccess(c, fiber.Map{
		"corpus_keywords":    corpusSize,
		"variants_by_source": bySource,
		"index_ready":        h.pipeline.Ready(),
	})
}

// Refresh rebuilds the corpus index immediately instead of waiting for the
// next scheduled refresh.
func (h *CorpusHandler) Refresh(c fiber.Ctx) error {
	if err := h.pipeline.RefreshIndex(c.Context()); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "corpus refresh failed")
	}

	return jsonSuccess(c, fiber.Map{"index_ready": true})
}
