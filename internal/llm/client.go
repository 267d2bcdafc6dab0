// Package llm calls external language-model APIs to produce structured slide
// content. Providers are tried in order; every failure falls through to the
// next provider, and a fully failed chain yields nil rather than an error —
// callers always have a deterministic fallback.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// SlideContent is the structured shape a provider must return for one slide.
type SlideContent struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

// Provider is a single structured-content backend.
type Provider interface {
	Name() string
	StructuredContent(ctx context.Context, prompt string) (*SlideContent, error)
}

// Client runs an ordered provider chain.
type Client struct {
	providers []Provider
}

// NewClient creates a client over the given providers, tried in order.
func NewClient(providers ...Provider) *Client {
	return &Client{providers: providers}
}

// callTimeout bounds each individual provider call.
const callTimeout = 30 * time.Second

// StructuredContent asks each provider in turn for {title, bullets}. Returns
// nil when every provider fails; never returns an error.
func (c *Client) StructuredContent(ctx context.Context, prompt string) *SlideContent {
	full := buildPrompt(prompt)
	for _, p := range c.providers {
		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		content, err := p.StructuredContent(callCtx, full)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("provider", p.Name()).Msg("structured content call failed")
			continue
		}
		if content != nil {
			log.Info().Str("provider", p.Name()).Str("title", truncate(content.Title, 50)).Msg("generated slide content")
			return content
		}
	}
	return nil
}

// buildPrompt wraps the caller's prompt with the JSON-only response framing.
func buildPrompt(prompt string) string {
	return fmt.Sprintf(`%s

Analyze the above deeply and structure your response as JSON:
{
"title": "A concise, insightful title (max 10 words)",
"bullets": [
    "First key insight or point (with reasoning if applicable)",
    "Second key insight or point",
    "Third key insight or point"
]
}

Return ONLY valid JSON, no markdown or extra text.`, prompt)
}

// parseStructured extracts {title, bullets} from a model response, tolerating
// markdown code fences. Responses missing either field are rejected.
func parseStructured(text string) (*SlideContent, error) {
	jsonStr := strings.TrimSpace(text)
	jsonStr = strings.TrimPrefix(jsonStr, "```json")
	jsonStr = strings.TrimSuffix(jsonStr, "```")
	jsonStr = strings.TrimSpace(jsonStr)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("response not JSON: %s: %w", truncate(text, 100), err)
	}
	if _, ok := raw["title"]; !ok {
		return nil, fmt.Errorf("response missing title")
	}
	if _, ok := raw["bullets"]; !ok {
		return nil, fmt.Errorf("response missing bullets")
	}

	var content SlideContent
	if err := json.Unmarshal([]byte(jsonStr), &content); err != nil {
		return nil, err
	}
	return &content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
