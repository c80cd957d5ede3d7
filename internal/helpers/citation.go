package helpers

import (
	"net/url"
	"strings"

	"github.com/sotinhq/sotin/models"
)

// citationConfig controls formatting behaviour.
type citationConfig struct {
	maxSnippet int
}

// CitationOption configures citation formatting.
type CitationOption func(*citationConfig)

// WithMaxSnippetLength truncates snippets to the provided length (default 180).
func WithMaxSnippetLength(n int) CitationOption {
	return func(cfg *citationConfig) {
		if n > 0 {
			cfg.maxSnippet = n
		}
	}
}

// FormatCitation renders a single citation as a markdown line:
// [Title](URL) — _snippet_
// The title falls back to the source domain, then to the raw URL.
func FormatCitation(c models.Citation, opts ...CitationOption) string {
	cfg := citationConfig{maxSnippet: 180}
	for _, opt := range opts {
		opt(&cfg)
	}

	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = extractDomain(c.URL)
	}
	if title == "" {
		title = strings.TrimSpace(c.URL)
	}

	line := "[" + title + "](" + strings.TrimSpace(c.URL) + ")"
	if snippet := formatSnippet(c.Snippet, cfg.maxSnippet); snippet != "" {
		line += " — _" + snippet + "_"
	}
	return line
}

// FormatCitations renders a collection of citations.
func FormatCitations(citations []models.Citation, opts ...CitationOption) []string {
	if len(citations) == 0 {
		return nil
	}
	out := make([]string, 0, len(citations))
	for _, c := range citations {
		out = append(out, FormatCitation(c, opts...))
	}
	return out
}

func formatSnippet(snippet string, limit int) string {
	// Collapse whitespace.
	snippet = strings.Join(strings.Fields(snippet), " ")
	if snippet == "" {
		return ""
	}
	if limit > 0 {
		if runes := []rune(snippet); len(runes) > limit {
			snippet = string(runes[:limit]) + "…"
		}
	}
	return snippet
}

func extractDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	return strings.TrimPrefix(host, "www.")
}
