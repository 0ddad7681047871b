// Package search implements the web search gateway used to identify unknown
// UUIDs. The gateway fails open: missing credentials, provider errors, and
// timeouts all degrade to an empty result list so a search outage never makes
// classification unavailable.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"uuidy/internal/config"
	"uuidy/internal/models"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// queryTemplate biases results toward Bluetooth-related pages.
const queryTemplate = `%q bluetooth OR BLE OR service OR GATT OR beacon`

// Client queries SerpAPI's Google engine for pages mentioning a UUID.
type Client struct {
	apiKey     string
	baseURL    string
	maxResults int
	client     *http.Client
}

// New creates a search client from configuration. An empty SERPAPI_KEY
// yields a client whose searches always return no results.
func New(cfg *config.Config) *Client {
	return &Client{
		apiKey:     cfg.SerpAPIKey,
		baseURL:    defaultBaseURL,
		maxResults: cfg.SearchMaxResults,
		client: &http.Client{
			Timeout: cfg.SearchTimeout,
		},
	}
}

// serpResponse is the subset of the SerpAPI payload we consume. Only organic
// results are parsed; ads and other result blocks are ignored.
type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search returns up to the configured number of organic results for a UUID,
// in provider relevance order. It never returns an error to callers.
func (c *Client) Search(ctx context.Context, id string) []models.Source {
	if c.apiKey == "" {
		slog.Debug("search skipped: no provider credential configured", "uuid", id)
		return nil
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", fmt.Sprintf(queryTemplate, id))
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(c.maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		slog.Error("failed to build search request", "uuid", id, "error", err)
		return nil
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("search request failed", "uuid", id, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("search provider returned non-OK status", "uuid", id, "status", resp.StatusCode)
		return nil
	}

	var payload serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		slog.Warn("failed to decode search response", "uuid", id, "error", err)
		return nil
	}

	var results []models.Source
	for _, item := range payload.OrganicResults {
		if item.Title == "" || item.Link == "" {
			continue
		}
		results = append(results, models.Source{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
		if len(results) >= c.maxResults {
			break
		}
	}

	slog.Debug("search completed", "uuid", id, "results", len(results))
	return results
}
