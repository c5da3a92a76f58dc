package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"promptforge-backend/internal/models"
)

type generateService interface {
	ScaffoldPrompts(ctx context.Context, prompt string) (*models.ScaffoldResponse, error)
	Chat(ctx context.Context, history []models.ChatMessage) (string, error)
}

type GenerateHandler struct {
	generateService generateService
}

func NewGenerateHandler(svc generateService) *GenerateHandler {
	return &GenerateHandler{generateService: svc}
}

// Template classifies the project description and returns the scaffold
// prompt fragments for the selected template.
func (h *GenerateHandler) Template(w http.ResponseWriter, r *http.Request) {
	var req models.TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	result, err := h.generateService.ScaffoldPrompts(r.Context(), req.Prompt)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Chat continues a caller-owned conversation. A malformed messages field is
// rejected here, before any model call; an empty array is valid input.
func (h *GenerateHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Messages must be a list of role-tagged entries")
		return
	}

	reply, err := h.generateService.Chat(r.Context(), req.Messages)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Message: reply})
}
