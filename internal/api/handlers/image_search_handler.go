package handlers

import (
	"net/http"
	"strconv"
	"strings"

	api "github.com/slidedeckhq/slidedeck-be/internal/api/respond"
	"github.com/slidedeckhq/slidedeck-be/internal/imagesearch"
)

// ImageSearchHandler handles stock-image search requests.
type ImageSearchHandler struct {
	client *imagesearch.Client
}

// NewImageSearchHandler creates a new ImageSearchHandler.
func NewImageSearchHandler(client *imagesearch.Client) *ImageSearchHandler {
	return &ImageSearchHandler{client: client}
}

// Search proxies a query to the configured image provider. Upstream failure
// or a missing key both yield an empty list with 200.
func (h *ImageSearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	source := r.URL.Query().Get("source")
	if source == "" {
		source = "unsplash"
	}
	limit := 12
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	images := h.client.Search(r.Context(), query, source, limit)
	api.JSON(w, http.StatusOK, map[string]interface{}{"images": images})
}
