package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	api "github.com/slidedeckhq/slidedeck-be/internal/api/respond"
	"github.com/slidedeckhq/slidedeck-be/internal/services"
)

// UploadHandler handles document/image uploads and serves stored files.
type UploadHandler struct {
	service services.UploadServiceProvider
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service services.UploadServiceProvider) *UploadHandler {
	return &UploadHandler{service: service}
}

// Document accepts a multipart document upload and returns its extracted text.
func (h *UploadHandler) Document(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Message(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		api.Message(w, http.StatusBadRequest, "No selected file")
		return
	}

	text, cleanName, err := h.service.SaveDocument(header.Filename, file)
	if err != nil {
		api.Error(w, err, "Upload failed")
		return
	}
	api.JSON(w, http.StatusOK, map[string]string{
		"text":     text,
		"filename": cleanName,
	})
}

// Image accepts a multipart image upload and returns its reference URL.
func (h *UploadHandler) Image(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Message(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		api.Message(w, http.StatusBadRequest, "No selected file")
		return
	}

	url, err := h.service.SaveImage(header.Filename, file)
	if err != nil {
		api.Error(w, err, "Upload failed")
		return
	}
	api.JSON(w, http.StatusCreated, map[string]string{"url": url})
}

// Serve streams a stored upload. The filename is reduced to its base so the
// route cannot read outside the upload root.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "filename"))
	path := filepath.Join(h.service.Dir(), name)
	if _, err := os.Stat(path); err != nil {
		api.Message(w, http.StatusNotFound, "File not found")
		return
	}
	http.ServeFile(w, r, path)
}
