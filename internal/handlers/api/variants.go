package api

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"kwforge/internal/db"
	"kwforge/internal/models"
	"kwforge/internal/pipeline"
)

// VariantHandler handles variant generation and retrieval via JSON API.
type VariantHandler struct {
	db       *db.DB
	pipeline *pipeline.Pipeline
}

// NewVariantHandler creates a new API variant handler.
func NewVariantHandler(database *db.DB, p *pipeline.Pipeline) *VariantHandler {
	return &VariantHandler{db: database, pipeline: p}
}

// Generate runs the full generation pipeline for an ad's features and
// returns the persisted, diversity-ranked variants.
func (h *VariantHandler) Generate(c fiber.Ctx) error {
	var features models.AdFeatures
	if err := json.Unmarshal(c.Body(), &features); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if features.ProductCategory == "" && len(features.VisitorIntent) == 0 && len(features.VisualCues) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "ad features are required: set at least product_category, visitor_intent, or visual_cues")
	}

	result, err := h.pipeline.GenerateVariants(c.Context(), features)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrIndexNotReady):
			return jsonError(c, fiber.StatusServiceUnavailable, "corpus index not ready")
		case errors.Is(err, pipeline.ErrNoCandidates):
			return jsonError(c, fiber.StatusUnprocessableEntity, "no usable keyword candidates were generated")
		default:
			slog.Error("variant generation failed", "error", err)
			return jsonError(c, fiber.StatusInternalServerError, "variant generation failed")
		}
	}

	return jsonSuccess(c, result)
}

// Get returns a single stored variant by ID.
func (h *VariantHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid variant id")
	}

	variant, err := h.db.GetVariantByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrVariantNotFound) {
			return jsonError(c, fiber.StatusNotFound, "variant not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch variant")
	}

	return jsonSuccess(c, variant)
}

// Recent returns the most recently stored variants.
func (h *VariantHandler) Recent(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 50)
	if limit < 1 || limit > 500 {
		return jsonError(c, fiber.StatusBadRequest, "limit must be between 1 and 500")
	}

	variants, err := h.db.GetRecentVariants(c.Context(), limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch variants")
	}

	return jsonSuccess(c, variants)
}
