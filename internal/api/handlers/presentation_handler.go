package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	api "github.com/slidedeckhq/slidedeck-be/internal/api/respond"
	"github.com/slidedeckhq/slidedeck-be/internal/auth"
	"github.com/slidedeckhq/slidedeck-be/internal/models"
	"github.com/slidedeckhq/slidedeck-be/internal/services"
)

// PresentationHandler handles presentation and slide CRUD requests.
type PresentationHandler struct {
	service services.PresentationServiceProvider
}

// NewPresentationHandler creates a new PresentationHandler.
func NewPresentationHandler(service services.PresentationServiceProvider) *PresentationHandler {
	return &PresentationHandler{service: service}
}

// caller returns the authenticated username; the auth middleware guarantees
// it is present on protected routes.
func caller(r *http.Request) string {
	username, _ := auth.UserFromContext(r.Context())
	return username
}

// List returns all presentations owned by the caller.
func (h *PresentationHandler) List(w http.ResponseWriter, r *http.Request) {
	presentations, err := h.service.List(caller(r))
	if err != nil {
		api.Error(w, err, "Failed to list presentations")
		return
	}
	api.JSON(w, http.StatusOK, map[string]interface{}{"presentations": presentations})
}

// CreatePayload is the body for presentation creation.
type CreatePayload struct {
	Title      string `json:"title"`
	SlideCount *int   `json:"slide_count"`
}

// Create builds a new presentation with default slides.
func (h *PresentationHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload := CreatePayload{Title: "Untitled"}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	slideCount := 5
	if payload.SlideCount != nil {
		slideCount = *payload.SlideCount
	}

	pres, err := h.service.Create(caller(r), payload.Title, slideCount)
	if err != nil {
		api.Error(w, err, "Failed to create presentation")
		return
	}
	api.JSON(w, http.StatusCreated, map[string]interface{}{"presentation": pres})
}

// Get returns a single presentation.
func (h *PresentationHandler) Get(w http.ResponseWriter, r *http.Request) {
	pres, err := h.service.Get(caller(r), chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, err, "Failed to get presentation")
		return
	}
	api.JSON(w, http.StatusOK, map[string]interface{}{"presentation": pres})
}

// Update applies a partial update to a presentation.
func (h *PresentationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title *string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pres, err := h.service.UpdateTitle(caller(r), chi.URLParam(r, "id"), payload.Title)
	if err != nil {
		api.Error(w, err, "Failed to update presentation")
		return
	}
	api.JSON(w, http.StatusOK, map[string]interface{}{"presentation": pres})
}

// Delete removes a presentation.
func (h *PresentationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(caller(r), chi.URLParam(r, "id")); err != nil {
		api.Error(w, err, "Failed to delete presentation")
		return
	}
	api.Message(w, http.StatusOK, "Presentation deleted")
}

// SlidePayload is the body for slide creation.
type SlidePayload struct {
	Title   *string            `json:"title"`
	Content string             `json:"content"`
	Image   *string            `json:"image"`
	Style   *models.StylePatch `json:"style"`
}

// CreateSlide appends a slide to a presentation.
func (h *PresentationHandler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	var payload SlidePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	title := "New Slide"
	if payload.Title != nil {
		title = strings.TrimSpace(*payload.Title)
	}
	slide := models.NewSlide(title, payload.Content)
	slide.Image = payload.Image
	if payload.Style != nil {
		slide.Style.Merge(*payload.Style)
	}

	created, err := h.service.AddSlide(caller(r), chi.URLParam(r, "id"), slide)
	if err != nil {
		api.Error(w, err, "Failed to create slide")
		return
	}
	api.JSON(w, http.StatusCreated, map[string]interface{}{"slide": created})
}

// UpdateSlide applies a partial update to one slide.
func (h *PresentationHandler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	var patch services.SlidePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	slide, err := h.service.UpdateSlide(caller(r), chi.URLParam(r, "id"), chi.URLParam(r, "sid"), patch)
	if err != nil {
		api.Error(w, err, "Failed to update slide")
		return
	}
	api.JSON(w, http.StatusOK, map[string]interface{}{"slide": slide})
}

// DeleteSlide removes a slide.
func (h *PresentationHandler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteSlide(caller(r), chi.URLParam(r, "id"), chi.URLParam(r, "sid"))
	if err != nil {
		api.Error(w, err, "Failed to delete slide")
		return
	}
	api.Message(w, http.StatusOK, "Slide deleted")
}

// Reorder rebuilds the slide sequence from the requested id order.
func (h *PresentationHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SlideIDs []string `json:"slide_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pres, err := h.service.Reorder(caller(r), chi.URLParam(r, "id"), payload.SlideIDs)
	if err != nil {
		api.Error(w, err, "Failed to reorder slides")
		return
	}
	api.JSON(w, http.StatusOK, map[string]interface{}{"presentation": pres})
}
