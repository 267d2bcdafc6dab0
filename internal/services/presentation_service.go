package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slidedeckhq/slidedeck-be/internal/apperr"
	"github.com/slidedeckhq/slidedeck-be/internal/datastore"
	"github.com/slidedeckhq/slidedeck-be/internal/models"
)

// SlidePatch is a partial slide update. Image is kept raw so a present-but-null
// value clears the image while an absent key leaves it alone.
type SlidePatch struct {
	Title   *string            `json:"title"`
	Content *string            `json:"content"`
	Image   json.RawMessage    `json:"image"`
	Style   *models.StylePatch `json:"style"`
}

// PresentationServiceProvider defines the interface for presentation services.
type PresentationServiceProvider interface {
	List(owner string) ([]models.Presentation, error)
	Create(owner, title string, slideCount int) (models.Presentation, error)
	Get(owner, id string) (models.Presentation, error)
	UpdateTitle(owner, id string, title *string) (models.Presentation, error)
	Delete(owner, id string) error
	AddSlide(owner, presID string, slide models.Slide) (models.Slide, error)
	UpdateSlide(owner, presID, slideID string, patch SlidePatch) (models.Slide, error)
	DeleteSlide(owner, presID, slideID string) error
	Reorder(owner, presID string, orderedIDs []string) (models.Presentation, error)
}

// PresentationService provides CRUD and reorder operations over presentations.
type PresentationService struct {
	store *datastore.Store
}

// NewPresentationService creates a new PresentationService.
func NewPresentationService(store *datastore.Store) *PresentationService {
	return &PresentationService{store: store}
}

// findOwned looks up a presentation and enforces the ownership check.
func findOwned(st *datastore.State, owner, id string) (*models.Presentation, error) {
	pres, ok := st.Presentations[id]
	if !ok {
		return nil, apperr.NotFound("Presentation not found")
	}
	if pres.Owner != owner {
		return nil, apperr.Forbidden("Forbidden")
	}
	return &pres, nil
}

// List returns all presentations owned by the caller. No pagination.
func (s *PresentationService) List(owner string) ([]models.Presentation, error) {
	st := s.store.Load()
	result := make([]models.Presentation, 0)
	for _, pres := range st.Presentations {
		if pres.Owner == owner {
			result = append(result, pres)
		}
	}
	return result, nil
}

// ClampSlideCount bounds a requested slide count to the creation limits.
func ClampSlideCount(n, max int) int {
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}

// Create builds a presentation with slideCount default slides and persists it.
func (s *PresentationService) Create(owner, title string, slideCount int) (models.Presentation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Presentation{}, apperr.Validation("Title is required")
	}
	slideCount = ClampSlideCount(slideCount, 50)

	slides := make([]models.Slide, 0, slideCount)
	for i := 0; i < slideCount; i++ {
		slides = append(slides, models.NewSlide(fmt.Sprintf("Slide %d", i+1), "Add your content here"))
	}

	now := time.Now().UTC()
	pres := models.Presentation{
		ID:        uuid.New().String(),
		Owner:     owner,
		Title:     title,
		Slides:    slides,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.Update(func(st *datastore.State) error {
		st.Presentations[pres.ID] = pres
		return nil
	})
	if err != nil {
		return models.Presentation{}, err
	}
	return pres, nil
}

// Get returns a single presentation after the ownership check.
func (s *PresentationService) Get(owner, id string) (models.Presentation, error) {
	st := s.store.Load()
	pres, err := findOwned(&st, owner, id)
	if err != nil {
		return models.Presentation{}, err
	}
	return *pres, nil
}

// UpdateTitle applies a partial update; only the title can change.
func (s *PresentationService) UpdateTitle(owner, id string, title *string) (models.Presentation, error) {
	var updated models.Presentation
	err := s.store.Update(func(st *datastore.State) error {
		pres, err := findOwned(st, owner, id)
		if err != nil {
			return err
		}
		if title != nil {
			trimmed := strings.TrimSpace(*title)
			if trimmed == "" {
				return apperr.Validation("Title cannot be empty")
			}
			pres.Title = trimmed
		}
		pres.UpdatedAt = time.Now().UTC()
		st.Presentations[id] = *pres
		updated = *pres
		return nil
	})
	return updated, err
}

// Delete removes a presentation.
func (s *PresentationService) Delete(owner, id string) error {
	return s.store.Update(func(st *datastore.State) error {
		if _, err := findOwned(st, owner, id); err != nil {
			return err
		}
		delete(st.Presentations, id)
		return nil
	})
}

// AddSlide appends a slide to the presentation's ordered sequence.
func (s *PresentationService) AddSlide(owner, presID string, slide models.Slide) (models.Slide, error) {
	err := s.store.Update(func(st *datastore.State) error {
		pres, err := findOwned(st, owner, presID)
		if err != nil {
			return err
		}
		pres.Slides = append(pres.Slides, slide)
		pres.UpdatedAt = time.Now().UTC()
		st.Presentations[presID] = *pres
		return nil
	})
	if err != nil {
		return models.Slide{}, err
	}
	return slide, nil
}

// UpdateSlide applies a partial update to one slide. Style merges field by
// field; title, content and image replace wholesale.
func (s *PresentationService) UpdateSlide(owner, presID, slideID string, patch SlidePatch) (models.Slide, error) {
	var updated models.Slide
	err := s.store.Update(func(st *datastore.State) error {
		pres, err := findOwned(st, owner, presID)
		if err != nil {
			return err
		}
		idx := slideIndex(pres.Slides, slideID)
		if idx < 0 {
			return apperr.NotFound("Slide not found")
		}
		slide := &pres.Slides[idx]

		if patch.Title != nil {
			slide.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Content != nil {
			slide.Content = *patch.Content
		}
		if patch.Image != nil {
			var img *string
			if err := json.Unmarshal(patch.Image, &img); err != nil {
				return apperr.Validation("Invalid image value")
			}
			slide.Image = img
		}
		if patch.Style != nil {
			slide.Style.Merge(*patch.Style)
		}

		pres.UpdatedAt = time.Now().UTC()
		st.Presentations[presID] = *pres
		updated = *slide
		return nil
	})
	return updated, err
}

// DeleteSlide removes a slide by id.
func (s *PresentationService) DeleteSlide(owner, presID, slideID string) error {
	return s.store.Update(func(st *datastore.State) error {
		pres, err := findOwned(st, owner, presID)
		if err != nil {
			return err
		}
		kept := pres.Slides[:0]
		for _, slide := range pres.Slides {
			if slide.ID != slideID {
				kept = append(kept, slide)
			}
		}
		pres.Slides = kept
		pres.UpdatedAt = time.Now().UTC()
		st.Presentations[presID] = *pres
		return nil
	})
}

// Reorder rebuilds the slide sequence from orderedIDs. Unknown ids are
// skipped; slides not mentioned are appended in their prior relative order,
// so a partial list never drops data.
func (s *PresentationService) Reorder(owner, presID string, orderedIDs []string) (models.Presentation, error) {
	var updated models.Presentation
	err := s.store.Update(func(st *datastore.State) error {
		pres, err := findOwned(st, owner, presID)
		if err != nil {
			return err
		}

		byID := make(map[string]models.Slide, len(pres.Slides))
		for _, slide := range pres.Slides {
			byID[slide.ID] = slide
		}

		reordered := make([]models.Slide, 0, len(pres.Slides))
		seen := make(map[string]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			if slide, ok := byID[id]; ok && !seen[id] {
				reordered = append(reordered, slide)
				seen[id] = true
			}
		}
		for _, slide := range pres.Slides {
			if !seen[slide.ID] {
				reordered = append(reordered, slide)
			}
		}

		pres.Slides = reordered
		pres.UpdatedAt = time.Now().UTC()
		st.Presentations[presID] = *pres
		updated = *pres
		return nil
	})
	return updated, err
}

func slideIndex(slides []models.Slide, id string) int {
	for i := range slides {
		if slides[i].ID == id {
			return i
		}
	}
	return -1
}
