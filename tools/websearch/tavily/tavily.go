package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sotinhq/sotin/models"
)

// DefaultBaseURL is the Tavily search endpoint.
const DefaultBaseURL = "https://api.tavily.com/search"

// Client calls the Tavily search API.
type Client struct {
	APIKey  string
	BaseURL string

	client     *http.Client
	retryDelay time.Duration
	maxDelay   time.Duration
}

// New constructs a Tavily search client.
func New(apiKey string) *Client {
	return NewWithClient(apiKey, &http.Client{Timeout: 30 * time.Second})
}

// NewWithClient constructs a Tavily search client using the supplied HTTP
// client, useful for overriding the default timeout.
func NewWithClient(apiKey string, client *http.Client) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		client:     client,
		retryDelay: time.Second,
		maxDelay:   30 * time.Second,
	}
}

// Search posts a query to Tavily. Rate-limited responses are retried with a
// doubling delay; any other non-200 status is an error.
func (c *Client) Search(ctx context.Context, query string, opts models.SearchOptions) (models.SearchResponse, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return models.SearchResponse{}, errors.New("tavily: API key is missing")
	}

	body := map[string]any{
		"query":               query,
		"api_key":             c.APIKey,
		"max_results":         opts.MaxResults,
		"include_answer":      opts.IncludeAnswer,
		"include_raw_content": opts.IncludeRawContent,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return models.SearchResponse{}, err
	}

	var resp *http.Response
	delay := c.retryDelay
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
		if err != nil {
			return models.SearchResponse{}, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err = c.client.Do(req)
		if err != nil {
			return models.SearchResponse{}, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return models.SearchResponse{}, ctx.Err()
		case <-time.After(delay):
		}
		if delay < c.maxDelay {
			delay *= 2
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.SearchResponse{}, fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var raw struct {
		Results []struct {
			Title      string  `json:"title"`
			URL        string  `json:"url"`
			Content    string  `json:"content"`
			RawContent string  `json:"raw_content"`
			Score      float64 `json:"score"`
		} `json:"results"`
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.SearchResponse{}, err
	}

	out := models.SearchResponse{Answer: raw.Answer}
	for _, r := range raw.Results {
		out.Results = append(out.Results, models.RawSearchResult{
			Title:      r.Title,
			URL:        r.URL,
			Content:    r.Content,
			RawContent: r.RawContent,
			Score:      r.Score,
		})
		if opts.MaxResults > 0 && len(out.Results) >= opts.MaxResults {
			break
		}
	}
	return out, nil
}
