package websearch

import (
	"context"
	"errors"

	"github.com/sotinhq/sotin/models"
	"github.com/sotinhq/sotin/tools/websearch/brave"
	"github.com/sotinhq/sotin/tools/websearch/tavily"
)

// WebSearcher is the interface all search providers satisfy. Callers pass a
// non-empty query; providers return the raw envelope unchanged.
type WebSearcher interface {
	Search(ctx context.Context, query string, opts models.SearchOptions) (models.SearchResponse, error)
}

type Provider string

const (
	TavilyProvider Provider = "tavily"
	BraveProvider  Provider = "brave"
)

var ErrUnsupportedProvider = errors.New("unsupported search provider")

// NewWebSearcher creates a search client for the named provider.
func NewWebSearcher(provider Provider, apiKey string) (WebSearcher, error) {
	switch provider {
	case TavilyProvider:
		return tavily.New(apiKey), nil
	case BraveProvider:
		return brave.New(apiKey), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
