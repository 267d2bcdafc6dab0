package services

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/slidedeckhq/slidedeck-be/internal/datastore"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		fallback rgb
		want     rgb
	}{
		{"red", "#ff0000", white, rgb{255, 0, 0}},
		{"uppercase", "#00FF00", white, rgb{0, 255, 0}},
		{"blue", "#0000ff", black, rgb{0, 0, 255}},
		// Malformed backgrounds fall back to white, malformed font colors to
		// black. The asymmetry is long-standing behavior and must not be
		// unified silently.
		{"malformed background", "#zzz000", white, white},
		{"malformed font", "#zzz000", black, black},
		{"no hash background", "ff0000", white, white},
		{"short background", "#fff", white, white},
		{"empty font", "", black, black},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseHexColor(tc.in, tc.fallback); got != tc.want {
				t.Errorf("parseHexColor(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRGBToARGB(t *testing.T) {
	if got := (rgb{255, 0, 0}).argb(); got != "FFFF0000" {
		t.Errorf("argb = %q", got)
	}
	if got := white.argb(); got != "FFFFFFFF" {
		t.Errorf("argb = %q", got)
	}
}

func newTestExportService(t *testing.T) (*ExportService, *PresentationService, string) {
	t.Helper()
	dir := t.TempDir()
	store := datastore.New(filepath.Join(dir, "data.json"))
	uploadDir := filepath.Join(dir, "uploads")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		t.Fatal(err)
	}
	return NewExportService(store, uploadDir), NewPresentationService(store), uploadDir
}

func TestExport_WritesArtifact(t *testing.T) {
	s, presSvc, uploadDir := newTestExportService(t)
	pres, _ := presSvc.Create("alice", "Quarterly Review", 2)

	path, downloadName, err := s.Export("alice", pres.ID)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if downloadName != "Quarterly Review.pptx" {
		t.Errorf("download name = %q", downloadName)
	}
	if path != filepath.Join(uploadDir, pres.ID+"_export.pptx") {
		t.Errorf("artifact path = %q", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("artifact is empty")
	}
}

func TestExport_OwnershipChecks(t *testing.T) {
	s, presSvc, _ := newTestExportService(t)
	pres, _ := presSvc.Create("alice", "Deck", 1)

	_, _, err := s.Export("bob", pres.ID)
	wantStatus(t, err, http.StatusForbidden)

	_, _, err = s.Export("alice", "missing")
	wantStatus(t, err, http.StatusNotFound)
}

func TestExport_OverwritesPreviousArtifact(t *testing.T) {
	s, presSvc, _ := newTestExportService(t)
	pres, _ := presSvc.Create("alice", "Deck", 1)

	first, _, err := s.Export("alice", pres.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := s.Export("alice", pres.ID)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("expected the same artifact path per presentation, got %q then %q", first, second)
	}
}
