package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v3"

	"kwforge/internal/db"
	"kwforge/internal/pipeline"
	"kwforge/internal/validation"
)

// maxEvaluateBatch bounds one evaluation request; larger batches should be
// split by the caller.
const maxEvaluateBatch = 100

// KeywordHandler handles keyword evaluation and browsing via JSON API.
type KeywordHandler struct {
	db       *db.DB
	pipeline *pipeline.Pipeline
}

// NewKeywordHandler creates a new API keyword handler.
func NewKeywordHandler(database *db.DB, p *pipeline.Pipeline) *KeywordHandler {
	return &KeywordHandler{db: database, pipeline: p}
}

// Evaluate scores caller-supplied keywords against the corpus without
// persisting anything.
func (h *KeywordHandler) Evaluate(c fiber.Ctx) error {
	var body struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if len(body.Keywords) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "keywords are required")
	}
	if len(body.Keywords) > maxEvaluateBatch {
		return jsonError(c, fiber.StatusBadRequest, "too many keywords in one request")
	}

	scored, err := h.pipeline.EvaluateKeywords(c.Context(), body.Keywords)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrIndexNotReady):
			return jsonError(c, fiber.StatusServiceUnavailable, "corpus index not ready")
		case errors.Is(err, pipeline.ErrNoCandidates):
			return jsonError(c, fiber.StatusBadRequest, "no valid keywords in request")
		default:
			slog.Error("keyword evaluation failed", "error", err)
			return jsonError(c, fiber.StatusInternalServerError, "keyword evaluation failed")
		}
	}

	return jsonSuccess(c, scored)
}

// List returns distinct keywords with their stored variant counts.
func (h *KeywordHandler) List(c fiber.Ctx) error {
	counts, err := h.db.GetKeywordCounts(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch keywords")
	}

	return jsonSuccess(c, counts)
}

// Variants returns all stored variants for one keyword.
func (h *KeywordHandler) Variants(c fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("keyword"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid keyword")
	}

	keyword := validation.NormalizeKeyword(raw)
	if !validation.ValidateKeyword(keyword) {
		return jsonError(c, fiber.StatusBadRequest, "invalid keyword")
	}

	variants, err := h.db.GetVariantsForKeyword(c.Context(), keyword)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch variants")
	}

	return jsonSuccess(c, variants)
}
