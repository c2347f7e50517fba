package api

import (
	"log/slog"
	"net/http"

	"github.com/promptnest/promptnest-api/internal/api/shared"
	"github.com/promptnest/promptnest-api/internal/service"
)

// GenerationHandler handles AI prompt generation requests.
type GenerationHandler struct {
	generationService service.GenerationService
	logger            *slog.Logger
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generationService service.GenerationService, logger *slog.Logger) *GenerationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationHandler{
		generationService: generationService,
		logger:            logger.With("component", "generation_handler"),
	}
}

// Generate handles POST /api/generate requests.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondInvalidRequest(w, r, err, false)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondInvalidRequest(w, r, err, true)
		return
	}

	result, err := h.generationService.Generate(r.Context(), req.Prompt, req.SessionID)
	if err != nil {
		HandleAPIError(w, r, err, msgGenerationFailed)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GenerateSingle handles POST /api/generate/single requests.
func (h *GenerationHandler) GenerateSingle(w http.ResponseWriter, r *http.Request) {
	var req GenerateSingleRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondInvalidRequest(w, r, err, false)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondInvalidRequest(w, r, err, true)
		return
	}

	prompt, err := h.generationService.GenerateSingle(r.Context(), req.Prompt, req.Platform)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate prompt")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateSingleResponse{Success: true, Prompt: prompt})
}

// RecentGenerations handles GET /api/generations/recent requests.
func (h *GenerationHandler) RecentGenerations(w http.ResponseWriter, r *http.Request) {
	records, err := h.generationService.RecentGenerations(r.Context(), getQueryInt(r, "limit"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch recent generations")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, records)
}
