package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/slidedeckhq/slidedeck-be/internal/apperr"
	"github.com/slidedeckhq/slidedeck-be/internal/datastore"
	"github.com/slidedeckhq/slidedeck-be/internal/models"
)

func newTestPresentationService(t *testing.T) *PresentationService {
	t.Helper()
	store := datastore.New(filepath.Join(t.TempDir(), "data.json"))
	return NewPresentationService(store)
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected an apperr.Error, got %v", err)
	}
	if appErr.Status != status {
		t.Fatalf("expected status %d, got %d (%s)", status, appErr.Status, appErr.Message)
	}
}

func TestCreate_Defaults(t *testing.T) {
	s := newTestPresentationService(t)

	pres, err := s.Create("alice", "My Deck", 3)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(pres.Slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(pres.Slides))
	}
	if pres.Slides[0].Title != "Slide 1" || pres.Slides[2].Title != "Slide 3" {
		t.Errorf("unexpected slide titles: %q, %q", pres.Slides[0].Title, pres.Slides[2].Title)
	}
	if pres.Slides[0].Content != "Add your content here" {
		t.Errorf("unexpected default content: %q", pres.Slides[0].Content)
	}
	if got := pres.Slides[0].Style; got != models.DefaultStyle() {
		t.Errorf("expected default style, got %+v", got)
	}

	// Persisted immediately.
	got, err := s.Get("alice", pres.ID)
	if err != nil {
		t.Fatalf("Get after Create failed: %v", err)
	}
	if got.Title != "My Deck" {
		t.Errorf("persisted title = %q", got.Title)
	}
}

func TestCreate_ClampsSlideCount(t *testing.T) {
	s := newTestPresentationService(t)

	pres, err := s.Create("alice", "Big", 500)
	if err != nil {
		t.Fatal(err)
	}
	if len(pres.Slides) != 50 {
		t.Errorf("expected clamp to 50 slides, got %d", len(pres.Slides))
	}

	pres, err = s.Create("alice", "Small", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pres.Slides) != 1 {
		t.Errorf("expected clamp to 1 slide, got %d", len(pres.Slides))
	}
}

func TestCreate_RequiresTitle(t *testing.T) {
	s := newTestPresentationService(t)
	_, err := s.Create("alice", "   ", 3)
	wantStatus(t, err, http.StatusBadRequest)
}

func TestOwnershipIsolation(t *testing.T) {
	s := newTestPresentationService(t)

	pres, err := s.Create("alice", "Private", 1)
	if err != nil {
		t.Fatal(err)
	}

	// Invisible to bob's list.
	list, err := s.List("bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("bob's list should be empty, got %d items", len(list))
	}

	// Direct access forbidden.
	_, err = s.Get("bob", pres.ID)
	wantStatus(t, err, http.StatusForbidden)

	err = s.Delete("bob", pres.ID)
	wantStatus(t, err, http.StatusForbidden)

	// Missing id stays a 404, not a 403.
	_, err = s.Get("bob", "no-such-id")
	wantStatus(t, err, http.StatusNotFound)
}

func TestUpdateTitle(t *testing.T) {
	s := newTestPresentationService(t)
	pres, _ := s.Create("alice", "Old", 1)

	empty := "  "
	_, err := s.UpdateTitle("alice", pres.ID, &empty)
	wantStatus(t, err, http.StatusBadRequest)

	newTitle := "New"
	updated, err := s.UpdateTitle("alice", pres.ID, &newTitle)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "New" {
		t.Errorf("title = %q", updated.Title)
	}
	if !updated.UpdatedAt.After(pres.UpdatedAt) && !updated.UpdatedAt.Equal(pres.UpdatedAt) {
		t.Error("updated_at not refreshed")
	}
}

func TestReorder_AppendsUnmentionedSlides(t *testing.T) {
	s := newTestPresentationService(t)
	pres, _ := s.Create("alice", "Deck", 3)
	s1, s2, s3 := pres.Slides[0].ID, pres.Slides[1].ID, pres.Slides[2].ID

	// Partial order: s2 is not mentioned and must survive at the end.
	updated, err := s.Reorder("alice", pres.ID, []string{s3, s1})
	if err != nil {
		t.Fatal(err)
	}
	got := []string{updated.Slides[0].ID, updated.Slides[1].ID, updated.Slides[2].ID}
	want := []string{s3, s1, s2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestReorder_SkipsUnknownIDs(t *testing.T) {
	s := newTestPresentationService(t)
	pres, _ := s.Create("alice", "Deck", 2)

	updated, err := s.Reorder("alice", pres.ID, []string{"bogus", pres.Slides[1].ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(updated.Slides))
	}
	if updated.Slides[0].ID != pres.Slides[1].ID || updated.Slides[1].ID != pres.Slides[0].ID {
		t.Error("unknown id not skipped correctly")
	}
}

func TestUpdateSlide_StyleMerge(t *testing.T) {
	s := newTestPresentationService(t)
	pres, _ := s.Create("alice", "Deck", 1)
	slideID := pres.Slides[0].ID

	fontColor := "#fff"
	updated, err := s.UpdateSlide("alice", pres.ID, slideID, SlidePatch{
		Style: &models.StylePatch{FontColor: &fontColor},
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Style.FontColor != "#fff" {
		t.Errorf("fontColor = %q", updated.Style.FontColor)
	}
	// All other style fields stay at their defaults.
	def := models.DefaultStyle()
	if updated.Style.TitleFontSize != def.TitleFontSize ||
		updated.Style.ContentFontSize != def.ContentFontSize ||
		updated.Style.BackgroundColor != def.BackgroundColor ||
		updated.Style.BackgroundOpacity != def.BackgroundOpacity ||
		updated.Style.BackgroundBlur != def.BackgroundBlur {
		t.Errorf("merge touched unrelated fields: %+v", updated.Style)
	}
}

func TestUpdateSlide_ImageNullClears(t *testing.T) {
	s := newTestPresentationService(t)
	pres, _ := s.Create("alice", "Deck", 1)
	slideID := pres.Slides[0].ID

	img := `"/uploads/pic.png"`
	updated, err := s.UpdateSlide("alice", pres.ID, slideID, SlidePatch{Image: json.RawMessage(img)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Image == nil || *updated.Image != "/uploads/pic.png" {
		t.Fatalf("image not set: %v", updated.Image)
	}

	// Present-but-null clears the image.
	updated, err = s.UpdateSlide("alice", pres.ID, slideID, SlidePatch{Image: json.RawMessage("null")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Image != nil {
		t.Errorf("image should be cleared, got %q", *updated.Image)
	}
}

func TestUpdateSlide_NotFound(t *testing.T) {
	s := newTestPresentationService(t)
	pres, _ := s.Create("alice", "Deck", 1)

	_, err := s.UpdateSlide("alice", pres.ID, "no-such-slide", SlidePatch{})
	wantStatus(t, err, http.StatusNotFound)
}

func TestAddAndDeleteSlide(t *testing.T) {
	s := newTestPresentationService(t)
	pres, _ := s.Create("alice", "Deck", 1)

	slide := models.NewSlide("Extra", "body")
	if _, err := s.AddSlide("alice", pres.ID, slide); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get("alice", pres.ID)
	if len(got.Slides) != 2 {
		t.Fatalf("expected 2 slides after add, got %d", len(got.Slides))
	}

	if err := s.DeleteSlide("alice", pres.ID, slide.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Get("alice", pres.ID)
	if len(got.Slides) != 1 || got.Slides[0].ID != pres.Slides[0].ID {
		t.Errorf("delete removed the wrong slide: %+v", got.Slides)
	}
}
