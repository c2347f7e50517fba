package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/promptnest/promptnest-api/internal/api/shared"
	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/service"
)

// CatalogHandler handles the curated prompt library endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *slog.Logger
	now            func() time.Time
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger.With("component", "catalog_handler"),
		now:            time.Now,
	}
}

// Health handles GET /api/health requests.
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC(),
	})
}

// ListCategories handles GET /api/categories requests.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch categories")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}

// ListPlatforms handles GET /api/platforms requests.
func (h *CatalogHandler) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.catalogService.ListPlatforms(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch platforms")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, platforms)
}

// ListPrompts handles GET /api/prompts requests.
func (h *CatalogHandler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.catalogService.ListPrompts(r.Context(), getQueryInt(r, "limit"), getQueryInt(r, "offset"))
	h.respondPrompts(w, r, prompts, err, "Failed to fetch prompts")
}

// TrendingPrompts handles GET /api/prompts/trending requests.
func (h *CatalogHandler) TrendingPrompts(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.catalogService.TrendingPrompts(r.Context(), getQueryInt(r, "limit"))
	h.respondPrompts(w, r, prompts, err, "Failed to fetch trending prompts")
}

// FeaturedPrompts handles GET /api/prompts/featured requests.
func (h *CatalogHandler) FeaturedPrompts(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.catalogService.FeaturedPrompts(r.Context(), getQueryInt(r, "limit"))
	h.respondPrompts(w, r, prompts, err, "Failed to fetch featured prompts")
}

// SearchPrompts handles GET /api/prompts/search requests.
func (h *CatalogHandler) SearchPrompts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Search query is required")
		return
	}
	prompts, err := h.catalogService.SearchPrompts(r.Context(), query, getQueryInt(r, "limit"))
	h.respondPrompts(w, r, prompts, err, "Failed to search prompts")
}

// PromptsByPlatform handles GET /api/prompts/platform/{platformId} requests.
func (h *CatalogHandler) PromptsByPlatform(w http.ResponseWriter, r *http.Request) {
	platformID, err := getPathUUID(r, "platformId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	prompts, err := h.catalogService.PromptsByPlatform(r.Context(), platformID, getQueryInt(r, "limit"))
	h.respondPrompts(w, r, prompts, err, "Failed to fetch prompts by platform")
}

// PromptsByCategory handles GET /api/prompts/category/{categoryId} requests.
func (h *CatalogHandler) PromptsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getPathUUID(r, "categoryId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	prompts, err := h.catalogService.PromptsByCategory(r.Context(), categoryID, getQueryInt(r, "limit"))
	h.respondPrompts(w, r, prompts, err, "Failed to fetch prompts by category")
}

// GetPrompt handles GET /api/prompts/{id} requests. Each successful read
// counts as a view.
func (h *CatalogHandler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	prompt, err := h.catalogService.GetPrompt(r.Context(), id, visitorFromRequest(r, ""))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch prompt")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, prompt)
}

// RecordAnalytics handles POST /api/analytics requests.
func (h *CatalogHandler) RecordAnalytics(w http.ResponseWriter, r *http.Request) {
	var req AnalyticsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondInvalidRequest(w, r, err, false)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondInvalidRequest(w, r, err, true)
		return
	}

	promptID, err := uuid.Parse(req.PromptID)
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError("promptId", "has invalid format", domain.ErrInvalidID), "")
		return
	}

	err = h.catalogService.RecordAction(r.Context(), promptID, domain.ActionType(req.Action), visitorFromRequest(r, req.UserAgent))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record analytics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

// Stats handles GET /api/stats requests.
func (h *CatalogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalogService.Stats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch stats")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

func (h *CatalogHandler) respondPrompts(
	w http.ResponseWriter,
	r *http.Request,
	prompts []*domain.Prompt,
	err error,
	failure string,
) {
	if err != nil {
		HandleAPIError(w, r, err, failure)
		return
	}
	if prompts == nil {
		prompts = []*domain.Prompt{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, prompts)
}
