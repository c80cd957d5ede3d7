package agent

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sotinhq/sotin/models"
)

const (
	// DefaultMaxSources bounds one normalization batch.
	DefaultMaxSources = 6

	// maxSnippetChars bounds each normalized snippet.
	maxSnippetChars = 1200

	snippetPlaceholder = "…"
)

var (
	// socialNoiseRe matches counted-unit social metrics like "123 views".
	socialNoiseRe = regexp.MustCompile(`(?i)\b\d+\s*(subscribers?|likes?|views?|posted)\b`)
	// headingNoiseRe matches markdown heading markers followed by a layout
	// word, through the rest of that token.
	headingNoiseRe = regexp.MustCompile(`(?i)(###|##|#)\s*\b(description|video|channel)\b\S*`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// NormalizeSources cleans raw search results into deduplicated passages
// ready to cite. Results are kept in input order; records with an empty or
// already-seen URL are skipped without error, and at most maxSources
// passages survive.
func NormalizeSources(results []models.RawSearchResult, maxSources int) []models.NormalizedPassage {
	if maxSources <= 0 {
		maxSources = DefaultMaxSources
	}

	seen := make(map[string]struct{}, len(results))
	out := make([]models.NormalizedPassage, 0, maxSources)
	for _, r := range results {
		rawURL := strings.TrimSpace(r.URL)
		if rawURL == "" {
			continue
		}
		if _, ok := seen[rawURL]; ok {
			continue
		}
		seen[rawURL] = struct{}{}

		title := r.Title
		if title == "" {
			title = rawURL
		}

		snippet := strings.TrimSpace(firstNonEmpty(r.RawContent, r.Content, r.Snippet))
		snippet = socialNoiseRe.ReplaceAllString(snippet, "")
		snippet = headingNoiseRe.ReplaceAllString(snippet, "")
		snippet = collapseWhitespace(snippet)
		snippet = shorten(snippet, maxSnippetChars, snippetPlaceholder)

		imageURL := r.Thumbnail
		if imageURL == "" {
			imageURL = r.ImageURL
		}

		out = append(out, models.NormalizedPassage{
			URL:      rawURL,
			Title:    title,
			Snippet:  snippet,
			ImageURL: imageURL,
		})
		if len(out) >= maxSources {
			break
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// collapseWhitespace folds whitespace runs into single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// shorten truncates s to width characters, keeping whole words and
// appending the placeholder when anything was cut. When not even the first
// word fits, only the placeholder is returned.
func shorten(s string, width int, placeholder string) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}

	budget := width - utf8.RuneCountInString(placeholder)
	var b strings.Builder
	length := 0
	for _, w := range strings.Fields(s) {
		step := utf8.RuneCountInString(w)
		if length > 0 {
			step++
		}
		if length+step > budget {
			break
		}
		if length > 0 {
			b.WriteString(" ")
		}
		b.WriteString(w)
		length += step
	}
	if b.Len() == 0 {
		return placeholder
	}
	return b.String() + placeholder
}
