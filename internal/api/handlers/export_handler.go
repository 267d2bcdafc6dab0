package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	api "github.com/slidedeckhq/slidedeck-be/internal/api/respond"
	"github.com/slidedeckhq/slidedeck-be/internal/services"
)

// ExportHandler handles deck export requests.
type ExportHandler struct {
	service services.ExportServiceProvider
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(service services.ExportServiceProvider) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export renders a presentation to a deck file and serves it as an
// attachment named after the presentation title.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	path, downloadName, err := h.service.Export(caller(r), chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, err, "Export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.presentationml.presentation")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	http.ServeFile(w, r, path)
}
