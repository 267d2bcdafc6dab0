package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slidedeckhq/slidedeck-be/internal/apperr"
	"github.com/slidedeckhq/slidedeck-be/internal/datastore"
	"github.com/slidedeckhq/slidedeck-be/internal/llm"
	"github.com/slidedeckhq/slidedeck-be/internal/models"
)

// GenerateServiceProvider defines the interface for content generation.
type GenerateServiceProvider interface {
	Generate(ctx context.Context, owner, mode, title, text string, slideCount int) (models.Presentation, error)
	GenerateSlide(ctx context.Context, owner, presID, slideID, prompt string) (models.Slide, error)
}

// GenerateService builds presentations from source text, with AI assistance
// when a provider chain is available and a deterministic fallback otherwise.
type GenerateService struct {
	store *datastore.Store
	llm   *llm.Client
}

// NewGenerateService creates a new GenerateService.
func NewGenerateService(store *datastore.Store, client *llm.Client) *GenerateService {
	return &GenerateService{store: store, llm: client}
}

// Generate creates and persists a new presentation. Mode "ai" with non-empty
// text issues one structured-content call per slide; any other mode (or an
// unavailable provider chain) falls back to a deterministic sentence split.
func (s *GenerateService) Generate(ctx context.Context, owner, mode, title, text string, slideCount int) (models.Presentation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Presentation{}, apperr.Validation("Title is required")
	}
	text = strings.TrimSpace(text)
	slideCount = ClampSlideCount(slideCount, 15)

	var slides []models.Slide
	if mode == "ai" && text != "" {
		slides = s.aiSlides(ctx, title, text, slideCount)
	} else {
		slides = deterministicSlides(title, text, slideCount)
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

// aiSlides asks the provider chain once per slide. Each call re-sends the
// full source text with a "slide i of N" framing; there is no shared context
// between calls.
func (s *GenerateService) aiSlides(ctx context.Context, title, text string, slideCount int) []models.Slide {
	slides := make([]models.Slide, 0, slideCount)
	for i := 0; i < slideCount; i++ {
		prompt := fmt.Sprintf(`Presentation: %q
Input content: %s

Create slide %d of %d that deeply analyzes and structures this information.
Provide actionable insights and reasoning for this section.`, title, text, i+1, slideCount)

		slideTitle := fmt.Sprintf("%s - Slide %d", title, i+1)
		slideContent := "Content to be filled"
		if result := s.llm.StructuredContent(ctx, prompt); result != nil {
			if result.Title != "" {
				slideTitle = result.Title
			}
			slideContent = JoinBullets(result.Bullets, "Generated content")
		}
		slides = append(slides, models.NewSlide(slideTitle, slideContent))
	}
	return slides
}

// deterministicSlides splits the text on sentence boundaries and assigns one
// sentence per slide, repeating the last sentence once the input runs out.
// Same input always yields the same slides.
func deterministicSlides(title, text string, slideCount int) []models.Slide {
	var sentences []string
	for _, part := range strings.Split(text, ".") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}

	slides := make([]models.Slide, 0, slideCount)
	for i := 0; i < slideCount; i++ {
		content := fmt.Sprintf("Slide %d content", i+1)
		if len(sentences) > 0 {
			idx := i
			if idx >= len(sentences) {
				idx = len(sentences) - 1
			}
			content = sentences[idx]
		}
		slides = append(slides, models.NewSlide(fmt.Sprintf("%s - Slide %d", title, i+1), content))
	}
	return slides
}

// GenerateSlide applies one structured-content call to an existing slide.
// A failed chain stores the raw prompt as content instead of bullets.
func (s *GenerateService) GenerateSlide(ctx context.Context, owner, presID, slideID, prompt string) (models.Slide, error) {
	prompt = strings.TrimSpace(prompt)

	// Check existence and ownership before spending a provider call. The
	// store is re-checked under the lock below.
	st := s.store.Load()
	pres, err := findOwned(&st, owner, presID)
	if err != nil {
		return models.Slide{}, err
	}
	if slideIndex(pres.Slides, slideID) < 0 {
		return models.Slide{}, apperr.NotFound("Slide not found")
	}

	var content *llm.SlideContent
	if prompt != "" {
		content = s.llm.StructuredContent(ctx, prompt)
	}

	var updated models.Slide
	err = s.store.Update(func(st *datastore.State) error {
		pres, err := findOwned(st, owner, presID)
		if err != nil {
			return err
		}
		idx := slideIndex(pres.Slides, slideID)
		if idx < 0 {
			return apperr.NotFound("Slide not found")
		}
		slide := &pres.Slides[idx]

		if prompt != "" {
			if content != nil {
				if content.Title != "" {
					slide.Title = content.Title
				}
				slide.Content = JoinBullets(content.Bullets, prompt)
			} else {
				slide.Content = prompt
			}
		}

		pres.UpdatedAt = time.Now().UTC()
		st.Presentations[presID] = *pres
		updated = *slide
		return nil
	})
	return updated, err
}

// JoinBullets renders bullets as "• "-prefixed lines, or the fallback when
// the list is empty.
func JoinBullets(bullets []string, fallback string) string {
	if len(bullets) == 0 {
		return fallback
	}
	lines := make([]string, 0, len(bullets))
	for _, b := range bullets {
		lines = append(lines, "• "+b)
	}
	return strings.Join(lines, "\n")
}
