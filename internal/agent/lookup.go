package agent

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/sotinhq/sotin/internal/telemetry"
	"github.com/sotinhq/sotin/models"
	"github.com/sotinhq/sotin/tools/websearch"
)

const (
	lookupSummaryFallback = "Here is a concise summary based on top sources. See citations for details."
	lookupNoResults       = "No results found. Try a broader query."
)

// Lookup runs the search-only pipeline: query the search provider, normalize
// the hits and assemble a structured answer without any model call. The
// answer text is the provider's quick answer when one comes back, otherwise
// a fixed sentence pointing at the citations.
func Lookup(ctx context.Context, searcher websearch.WebSearcher, query string, opts ...Option) (models.StructuredAnswer, error) {
	started := time.Now()
	a := New(nil, searcher, opts...)

	resp, err := a.searchWeb(ctx, query, false)
	if err != nil {
		return models.StructuredAnswer{}, err
	}
	passages := NormalizeSources(resp.Results, a.maxSources)

	out := finalizeLookup(query, resp.Answer, passages)
	telemetry.PipelineDuration.WithLabelValues("lookup").Observe(time.Since(started).Seconds())
	return out, nil
}

func finalizeLookup(query, answer string, passages []models.NormalizedPassage) models.StructuredAnswer {
	text := scrubHeadings(answer)
	if text == "" {
		if len(passages) > 0 {
			text = lookupSummaryFallback
		} else {
			text = lookupNoResults
		}
	}

	citations := collectCitations(passages)
	return models.StructuredAnswer{
		Query:       query,
		FinalAnswer: text,
		Citations:   citations,
		Meta: map[string]any{
			"engine":      models.EngineSearchOnly,
			"num_sources": len(citations),
		},
	}
}

// scrubHeadings strips markdown heading markers and trailing whitespace from
// every line of the provider's quick answer.
func scrubHeadings(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimLeft(line, "# ")
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
