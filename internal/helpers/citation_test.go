package helpers

import (
	"testing"

	"github.com/sotinhq/sotin/models"
)

func TestFormatCitation(t *testing.T) {
	t.Parallel()
	c := models.Citation{
		Title:   "Investigative Report",
		URL:     "https://example.com/news/report?ref=homepage",
		Snippet: "Key findings indicate a significant shift in policy direction.",
	}

	got := FormatCitation(c)
	want := `[Investigative Report](https://example.com/news/report?ref=homepage) — _Key findings indicate a significant shift in policy direction._`

	if got != want {
		t.Fatalf("FormatCitation() = %q, want %q", got, want)
	}
}

func TestFormatCitationTruncatesSnippet(t *testing.T) {
	t.Parallel()
	c := models.Citation{
		URL:     "https://www.example.com/article",
		Snippet: "A very long snippet that should be truncated for neat citation summaries and avoid overly verbose output when rendering footnotes.",
	}

	got := FormatCitation(c, WithMaxSnippetLength(40))
	want := `[example.com](https://www.example.com/article) — _A very long snippet that should be trunc…_`

	if got != want {
		t.Fatalf("FormatCitation() = %q, want %q", got, want)
	}
}

func TestFormatCitationNoSnippet(t *testing.T) {
	t.Parallel()
	got := FormatCitation(models.Citation{Title: "Docs", URL: "https://docs.example.com"})
	want := `[Docs](https://docs.example.com)`

	if got != want {
		t.Fatalf("FormatCitation() = %q, want %q", got, want)
	}
}

func TestFormatCitationsBatch(t *testing.T) {
	t.Parallel()
	list := []models.Citation{
		{Title: "First", URL: "https://a.example.com"},
		{Title: "Second", URL: "https://b.example.com"},
	}
	items := FormatCitations(list)
	if len(items) != 2 {
		t.Fatalf("expected 2 citations, got %d", len(items))
	}
	if items[0] == items[1] {
		t.Fatalf("expected unique entries, got %#v", items)
	}
	if FormatCitations(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
