package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const geminiDefaultBase = "https://generativelanguage.googleapis.com/v1beta2"

// Gemini calls the Google generative language generateText API.
type Gemini struct {
	APIKey      string
	Model       string // e.g. "models/text-bison-001"
	Temperature float64
	MaxTokens   int
	BaseURL     string // overridable for tests
	client      *http.Client
}

// NewGemini creates a Gemini provider.
func NewGemini(apiKey, model string, temperature float64, maxTokens int) *Gemini {
	return &Gemini{
		APIKey:      apiKey,
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		BaseURL:     geminiDefaultBase,
		client:      &http.Client{},
	}
}

func (g *Gemini) Name() string { return "gemini" }

// StructuredContent sends one generateText request and parses the first
// candidate as structured slide JSON.
func (g *Gemini) StructuredContent(ctx context.Context, prompt string) (*SlideContent, error) {
	if g.APIKey == "" {
		return nil, fmt.Errorf("no API key configured")
	}

	endpoint := fmt.Sprintf("%s/%s:generateText?key=%s", g.BaseURL, g.Model, url.QueryEscape(g.APIKey))
	body := map[string]interface{}{
		"prompt":          map[string]string{"text": prompt},
		"temperature":     g.Temperature,
		"maxOutputTokens": g.MaxTokens,
	}
	jsonBody, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var result struct {
		Candidates []struct {
			Content string `json:"content"`
		} `json:"candidates"`
		Output  string `json:"output"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	text := ""
	if len(result.Candidates) > 0 {
		text = result.Candidates[0].Content
	}
	if text == "" {
		text = result.Output
	}
	if text == "" {
		text = result.Content
	}
	if text == "" {
		return nil, fmt.Errorf("empty response from gemini")
	}

	return parseStructured(text)
}
