package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	api "github.com/slidedeckhq/slidedeck-be/internal/api/respond"
	"github.com/slidedeckhq/slidedeck-be/internal/services"
)

// GenerateHandler handles AI-assisted content generation requests.
type GenerateHandler struct {
	service services.GenerateServiceProvider
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(service services.GenerateServiceProvider) *GenerateHandler {
	return &GenerateHandler{service: service}
}

// GeneratePayload is the body for whole-presentation generation.
type GeneratePayload struct {
	Mode       string `json:"mode"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	SlideCount *int   `json:"slide_count"`
}

// Generate builds and persists a new presentation from source text.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	payload := GeneratePayload{Mode: "ai", Title: "Generated Presentation"}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	slideCount := 5
	if payload.SlideCount != nil {
		slideCount = *payload.SlideCount
	}

	pres, err := h.service.Generate(r.Context(), caller(r), payload.Mode, payload.Title, payload.Text, slideCount)
	if err != nil {
		api.Error(w, err, "Generation failed")
		return
	}
	api.JSON(w, http.StatusCreated, map[string]interface{}{"presentation": pres})
}

// GenerateSlide regenerates one slide's content from a prompt.
func (h *GenerateHandler) GenerateSlide(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	slide, err := h.service.GenerateSlide(r.Context(), caller(r), chi.URLParam(r, "id"), chi.URLParam(r, "sid"), payload.Prompt)
	if err != nil {
		api.Error(w, err, "AI generation failed")
		return
	}
	api.JSON(w, http.StatusOK, map[string]interface{}{"slide": slide})
}
