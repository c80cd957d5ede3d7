package agent

import (
	"net/url"
	"strings"

	"github.com/sotinhq/sotin/models"
)

const noAnswerFallback = "I couldn't find detailed information for that request."

// finalize assembles the structured answer. A web summary takes precedence
// over the router's direct answer; with neither, a fixed fallback sentence
// is used.
func finalize(query, summary, directAnswer string, passages []models.NormalizedPassage) models.StructuredAnswer {
	var final, engine string
	if summary != "" {
		final = summary
		engine = models.EngineWebSearch
	} else {
		final = directAnswer
		engine = models.EngineDirect
		if final == "" {
			final = noAnswerFallback
		}
	}

	citations := collectCitations(passages)
	return models.StructuredAnswer{
		Query:       query,
		FinalAnswer: final,
		Citations:   citations,
		Meta: map[string]any{
			"engine":      engine,
			"num_sources": len(citations),
		},
	}
}

// collectCitations converts passages one by one. A passage that fails
// validation is dropped, never padded with defaults.
func collectCitations(passages []models.NormalizedPassage) []models.Citation {
	citations := make([]models.Citation, 0, len(passages))
	for _, p := range passages {
		c, ok := newCitation(p)
		if !ok {
			continue
		}
		citations = append(citations, c)
	}
	return citations
}

// newCitation converts one passage into a citation. The source URL must be
// a well-formed absolute URL; a non-empty image URL must be too.
func newCitation(p models.NormalizedPassage) (models.Citation, bool) {
	if !validURL(p.URL) {
		return models.Citation{}, false
	}
	if p.ImageURL != "" && !validURL(p.ImageURL) {
		return models.Citation{}, false
	}
	return models.Citation{
		Title:    p.Title,
		URL:      p.URL,
		Snippet:  p.Snippet,
		ImageURL: p.ImageURL,
	}, true
}

func validURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && u.Scheme != "" && u.Host != ""
}
