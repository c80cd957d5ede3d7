package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sotinhq/sotin/models"
)

func TestLookupUsesEngineAnswer(t *testing.T) {
	search := &fakeSearcher{resp: models.SearchResponse{
		Answer: "# Heading\nFacts here.   \n## Sub\nMore.",
		Results: []models.RawSearchResult{
			{URL: "https://a.example.com", Title: "A", Content: "doc"},
		},
	}}

	out, err := Lookup(context.Background(), search, "solar flares")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	want := "Heading\nFacts here.\nSub\nMore."
	if out.FinalAnswer != want {
		t.Fatalf("FinalAnswer = %q, want %q", out.FinalAnswer, want)
	}
	if out.Meta["engine"] != models.EngineSearchOnly {
		t.Fatalf("expected engine %q, got %v", models.EngineSearchOnly, out.Meta["engine"])
	}
	if out.Meta["num_sources"] != 1 {
		t.Fatalf("expected num_sources 1, got %v", out.Meta["num_sources"])
	}
	if search.gotOpts.IncludeAnswer {
		t.Fatalf("lookup must not request the engine answer option")
	}
	if !search.gotOpts.IncludeRawContent {
		t.Fatalf("lookup should request raw content")
	}
}

func TestLookupFallbackWithPassages(t *testing.T) {
	search := &fakeSearcher{resp: models.SearchResponse{
		Results: []models.RawSearchResult{
			{URL: "https://a.example.com", Title: "A", Content: "doc"},
		},
	}}

	out, err := Lookup(context.Background(), search, "query")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if out.FinalAnswer != lookupSummaryFallback {
		t.Fatalf("FinalAnswer = %q, want %q", out.FinalAnswer, lookupSummaryFallback)
	}
}

func TestLookupNoResults(t *testing.T) {
	search := &fakeSearcher{}

	out, err := Lookup(context.Background(), search, "query")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if out.FinalAnswer != lookupNoResults {
		t.Fatalf("FinalAnswer = %q, want %q", out.FinalAnswer, lookupNoResults)
	}
	if out.Meta["num_sources"] != 0 {
		t.Fatalf("expected num_sources 0, got %v", out.Meta["num_sources"])
	}
}

func TestLookupEmptyQuerySkipsProvider(t *testing.T) {
	search := &fakeSearcher{}

	out, err := Lookup(context.Background(), search, "   ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if search.calls != 0 {
		t.Fatalf("provider must not be called for an empty query, got %d calls", search.calls)
	}
	if out.FinalAnswer != lookupNoResults {
		t.Fatalf("FinalAnswer = %q, want %q", out.FinalAnswer, lookupNoResults)
	}
}

func TestLookupPropagatesSearchError(t *testing.T) {
	search := &fakeSearcher{err: errors.New("quota exceeded")}

	_, err := Lookup(context.Background(), search, "query")
	if err == nil || !strings.Contains(err.Error(), "web search:") {
		t.Fatalf("expected search error, got %v", err)
	}
}

func TestScrubHeadings(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "   ", ""},
		{"plain", "no markup", "no markup"},
		{"heading levels", "# One\n## Two\n### Three", "One\nTwo\nThree"},
		{"trailing space", "line one   \nline two\t", "line one\nline two"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := scrubHeadings(tc.in); got != tc.want {
				t.Fatalf("scrubHeadings(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
