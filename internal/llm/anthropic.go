package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const anthropicDefaultURL = "https://api.anthropic.com/v1/messages"

// Anthropic calls the Anthropic messages API.
type Anthropic struct {
	APIKey    string
	Model     string
	MaxTokens int
	BaseURL   string // overridable for tests
	client    *http.Client
}

// NewAnthropic creates an Anthropic provider.
func NewAnthropic(apiKey, model string, maxTokens int) *Anthropic {
	return &Anthropic{
		APIKey:    apiKey,
		Model:     model,
		MaxTokens: maxTokens,
		BaseURL:   anthropicDefaultURL,
		client:    &http.Client{},
	}
}

func (a *Anthropic) Name() string { return "anthropic" }

// StructuredContent sends one messages-API request and parses the first
// content block as structured slide JSON.
func (a *Anthropic) StructuredContent(ctx context.Context, prompt string) (*SlideContent, error) {
	if a.APIKey == "" {
		return nil, fmt.Errorf("no API key configured")
	}

	body := map[string]interface{}{
		"model":      a.Model,
		"max_tokens": a.MaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	jsonBody, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("anthropic API error (%d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if len(result.Content) == 0 || result.Content[0].Text == "" {
		return nil, fmt.Errorf("empty response from anthropic")
	}

	return parseStructured(result.Content[0].Text)
}
