package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/slidedeckhq/slidedeck-be/internal/apperr"
	"github.com/slidedeckhq/slidedeck-be/internal/extract"
)

var documentExts = map[string]bool{"txt": true, "pdf": true, "doc": true, "docx": true}
var imageExts = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true}

// UploadServiceProvider defines the interface for upload services.
type UploadServiceProvider interface {
	SaveDocument(filename string, file io.Reader) (text, cleanName string, err error)
	SaveImage(filename string, file io.Reader) (url string, err error)
	Dir() string
}

// UploadService validates and stores uploaded files under a single directory.
type UploadService struct {
	dir string
}

// NewUploadService creates an UploadService rooted at dir.
func NewUploadService(dir string) *UploadService {
	return &UploadService{dir: dir}
}

// Dir returns the upload root.
func (s *UploadService) Dir() string { return s.dir }

// SaveDocument validates the extension, stores the file to a temp location,
// extracts its text and removes the temp file again on every path.
func (s *UploadService) SaveDocument(filename string, file io.Reader) (string, string, error) {
	clean := SecureFilename(filename)
	ext := extension(clean)
	if !documentExts[ext] {
		return "", "", apperr.Validation("Allowed formats: txt, pdf, doc, docx")
	}

	tempPath := filepath.Join(s.dir, fmt.Sprintf("%s_%s", uuid.New().String(), clean))
	if err := writeFile(tempPath, file); err != nil {
		return "", "", err
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			log.Warn().Err(err).Str("path", tempPath).Msg("failed to remove temp upload")
		}
	}()

	text, err := extract.Document(tempPath, ext)
	if err != nil {
		log.Warn().Err(err).Str("filename", clean).Msg("text extraction failed")
		text = ""
	}
	if strings.TrimSpace(text) == "" {
		return "", "", apperr.Validation("Could not extract text from document")
	}
	return text, clean, nil
}

// SaveImage validates the extension and persists the file under a unique
// name, returning its reference URL.
func (s *UploadService) SaveImage(filename string, file io.Reader) (string, error) {
	clean := SecureFilename(filename)
	ext := extension(clean)
	if !imageExts[ext] {
		return "", apperr.Validation("Allowed formats: png, jpg, jpeg, gif")
	}

	unique := fmt.Sprintf("%s_%s", uuid.New().String(), clean)
	if err := writeFile(filepath.Join(s.dir, unique), file); err != nil {
		return "", err
	}
	return "/uploads/" + unique, nil
}

func writeFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

func extension(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename strips any path components and replaces characters outside
// a conservative allow-list, so client-supplied names cannot escape the
// upload directory.
func SecureFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "file"
	}
	return base
}
