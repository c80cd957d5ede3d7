package brave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sotinhq/sotin/models"
)

// DefaultBaseURL is the Brave web search endpoint.
const DefaultBaseURL = "https://api.search.brave.com/res/v1/web/search"

// Client calls the Brave Search API. Brave has no quick-answer or raw page
// content, so those options are ignored and result descriptions map to the
// short content field.
type Client struct {
	APIKey  string
	BaseURL string

	client *http.Client
}

// New constructs a Brave search client.
func New(apiKey string) *Client {
	return NewWithClient(apiKey, &http.Client{Timeout: 30 * time.Second})
}

// NewWithClient constructs a Brave search client using the supplied HTTP
// client.
func NewWithClient(apiKey string, client *http.Client) *Client {
	return &Client{APIKey: apiKey, BaseURL: DefaultBaseURL, client: client}
}

// Search issues a Brave query.
// https://api.search.brave.com/app/documentation/web-search
func (c *Client) Search(ctx context.Context, query string, opts models.SearchOptions) (models.SearchResponse, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return models.SearchResponse{}, errors.New("brave: API key is missing")
	}

	params := url.Values{}
	params.Set("q", query)
	if opts.MaxResults > 0 {
		params.Set("count", strconv.Itoa(opts.MaxResults))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return models.SearchResponse{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return models.SearchResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.SearchResponse{}, fmt.Errorf("brave http %d", resp.StatusCode)
	}

	var raw struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
				Thumbnail   struct {
					Src string `json:"src"`
				} `json:"thumbnail"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.SearchResponse{}, err
	}

	var out models.SearchResponse
	for _, r := range raw.Web.Results {
		out.Results = append(out.Results, models.RawSearchResult{
			Title:     r.Title,
			URL:       r.URL,
			Content:   r.Description,
			Thumbnail: r.Thumbnail.Src,
		})
		if opts.MaxResults > 0 && len(out.Results) >= opts.MaxResults {
			break
		}
	}
	return out, nil
}
