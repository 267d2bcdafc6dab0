package models

import (
	"time"

	"github.com/google/uuid"
)

// Presentation is an ordered deck of slides owned by exactly one user.
type Presentation struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Title     string    `json:"title"`
	Slides    []Slide   `json:"slides"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Slide lives inside a single presentation; order within Slides is significant.
type Slide struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Image   *string `json:"image"`
	Style   Style   `json:"style"`
}

// Style is a value object describing slide appearance. Colors are #RRGGBB hex.
type Style struct {
	TitleFontSize     int     `json:"titleFontSize"`
	ContentFontSize   int     `json:"contentFontSize"`
	FontColor         string  `json:"fontColor"`
	BackgroundColor   string  `json:"backgroundColor"`
	BackgroundImage   *string `json:"backgroundImage"`
	BackgroundOpacity int     `json:"backgroundOpacity"`
	BackgroundBlur    int     `json:"backgroundBlur"`
}

// StylePatch is a partial style update; nil fields are left untouched.
type StylePatch struct {
	TitleFontSize     *int     `json:"titleFontSize"`
	ContentFontSize   *int     `json:"contentFontSize"`
	FontColor         *string  `json:"fontColor"`
	BackgroundColor   *string  `json:"backgroundColor"`
	BackgroundImage   *string  `json:"backgroundImage"`
	BackgroundOpacity *int     `json:"backgroundOpacity"`
	BackgroundBlur    *int     `json:"backgroundBlur"`
}

// DefaultStyle returns the style applied to every newly created slide.
func DefaultStyle() Style {
	return Style{
		TitleFontSize:     32,
		ContentFontSize:   18,
		FontColor:         "#000000",
		BackgroundColor:   "#ffffff",
		BackgroundImage:   nil,
		BackgroundOpacity: 100,
		BackgroundBlur:    0,
	}
}

// Merge applies the non-nil fields of a patch, field by field.
func (s *Style) Merge(p StylePatch) {
	if p.TitleFontSize != nil {
		s.TitleFontSize = *p.TitleFontSize
	}
	if p.ContentFontSize != nil {
		s.ContentFontSize = *p.ContentFontSize
	}
	if p.FontColor != nil {
		s.FontColor = *p.FontColor
	}
	if p.BackgroundColor != nil {
		s.BackgroundColor = *p.BackgroundColor
	}
	if p.BackgroundImage != nil {
		s.BackgroundImage = p.BackgroundImage
	}
	if p.BackgroundOpacity != nil {
		s.BackgroundOpacity = *p.BackgroundOpacity
	}
	if p.BackgroundBlur != nil {
		s.BackgroundBlur = *p.BackgroundBlur
	}
}

// NewSlide builds a slide with a fresh UUID and the default style.
func NewSlide(title, content string) Slide {
	return Slide{
		ID:      uuid.New().String(),
		Title:   title,
		Content: content,
		Image:   nil,
		Style:   DefaultStyle(),
	}
}
