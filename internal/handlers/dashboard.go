package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"kwforge/internal/db"
)

// DashboardHandler renders the operator dashboard.
type DashboardHandler struct {
	db *db.DB
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(database *db.DB) *DashboardHandler {
	return &DashboardHandler{db: database}
}

// Index shows recent variants and per-keyword counts.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	recent, err := h.db.GetRecentVariants(c.Context(), 25)
	if err != nil {
		slog.Error("dashboard: failed to load recent variants", "error", err)
		return fiber.ErrInternalServerError
	}

	counts, err := h.db.GetKeywordCounts(c.Context())
	if err != nil {
		slog.Error("dashboard: failed to load keyword counts", "error", err)
		return fiber.ErrInternalServerError
	}

	corpusSize, err := h.db.CountCorpusKeywords(c.Context())
	if err != nil {
		slog.Error("dashboard: failed to count corpus", "error", err)
		return fiber.ErrInternalServerError
	}

	return c.Render("dashboard", fiber.Map{
		"Title":      "Keyword Variants",
		"Recent":     recent,
		"Counts":     counts,
		"CorpusSize": corpusSize,
	})
}
