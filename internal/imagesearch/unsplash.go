// Package imagesearch queries external stock-image providers. Failures
// degrade to an empty result set, never to a request error.
package imagesearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const unsplashDefaultURL = "https://api.unsplash.com/search/photos"

// Image is one search hit in the shape the frontend consumes.
type Image struct {
	ID     string `json:"id"`
	Thumb  string `json:"thumb"`
	Small  string `json:"small"`
	Full   string `json:"full"`
	Author string `json:"author"`
}

// Client searches Unsplash. Without an access key every search returns an
// empty list without touching the network.
type Client struct {
	AccessKey string
	BaseURL   string // overridable for tests
	client    *http.Client
}

// NewClient creates an image search client.
func NewClient(accessKey string) *Client {
	return &Client{
		AccessKey: accessKey,
		BaseURL:   unsplashDefaultURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Search runs a query against the given source. Only "unsplash" is backed by
// a provider; anything else yields an empty list.
func (c *Client) Search(ctx context.Context, query, source string, limit int) []Image {
	if source != "unsplash" || c.AccessKey == "" {
		return []Image{}
	}
	if query == "" {
		query = "photo"
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return []Image{}
	}
	req.Header.Set("Authorization", "Client-ID "+c.AccessKey)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("image search failed")
		return []Image{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("query", query).Msg("image search returned non-200")
		return []Image{}
	}

	var payload struct {
		Results []struct {
			ID   string `json:"id"`
			URLs struct {
				Thumb string `json:"thumb"`
				Small string `json:"small"`
				Full  string `json:"full"`
			} `json:"urls"`
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Warn().Err(err).Str("query", query).Msg("image search response not parseable")
		return []Image{}
	}

	images := make([]Image, 0, len(payload.Results))
	for _, hit := range payload.Results {
		images = append(images, Image{
			ID:     hit.ID,
			Thumb:  hit.URLs.Thumb,
			Small:  hit.URLs.Small,
			Full:   hit.URLs.Full,
			Author: hit.User.Name,
		})
	}
	return images
}
