package agent

import (
	"testing"

	"github.com/sotinhq/sotin/models"
)

func TestFinalizePrecedence(t *testing.T) {
	t.Parallel()
	passages := []models.NormalizedPassage{{URL: "https://a.example.com", Title: "A", Snippet: "s"}}

	out := finalize("q", "web summary", "direct answer", passages)
	if out.FinalAnswer != "web summary" {
		t.Fatalf("expected summary to win, got %q", out.FinalAnswer)
	}
	if out.Meta["engine"] != models.EngineWebSearch {
		t.Fatalf("expected engine %q, got %v", models.EngineWebSearch, out.Meta["engine"])
	}

	out = finalize("q", "", "direct answer", nil)
	if out.FinalAnswer != "direct answer" {
		t.Fatalf("expected direct answer, got %q", out.FinalAnswer)
	}
	if out.Meta["engine"] != models.EngineDirect {
		t.Fatalf("expected engine %q, got %v", models.EngineDirect, out.Meta["engine"])
	}
}

func TestFinalizeFallbackText(t *testing.T) {
	t.Parallel()
	out := finalize("q", "", "", nil)
	if out.FinalAnswer != noAnswerFallback {
		t.Fatalf("expected fallback sentence, got %q", out.FinalAnswer)
	}
	if out.Meta["engine"] != models.EngineDirect {
		t.Fatalf("expected engine %q, got %v", models.EngineDirect, out.Meta["engine"])
	}
	if out.Citations == nil || len(out.Citations) != 0 {
		t.Fatalf("expected empty non-nil citations, got %#v", out.Citations)
	}
	if out.Meta["num_sources"] != 0 {
		t.Fatalf("expected num_sources 0, got %v", out.Meta["num_sources"])
	}
}

func TestFinalizeDropsInvalidCitations(t *testing.T) {
	t.Parallel()
	passages := []models.NormalizedPassage{
		{URL: "https://ok.example.com", Title: "ok", Snippet: "fine"},
		{URL: "/relative/path", Title: "relative"},
		{URL: "not a url", Title: "bogus"},
		{URL: "https://img.example.com", Title: "bad image", ImageURL: "missing-scheme.png"},
		{URL: "https://also-ok.example.com", Title: "ok too", ImageURL: "https://cdn.example.com/i.png"},
	}

	out := finalize("q", "summary", "", passages)
	if len(out.Citations) != 2 {
		t.Fatalf("expected 2 surviving citations, got %d: %+v", len(out.Citations), out.Citations)
	}
	if out.Citations[0].URL != "https://ok.example.com" || out.Citations[1].URL != "https://also-ok.example.com" {
		t.Fatalf("unexpected citations: %+v", out.Citations)
	}
	if out.Citations[1].ImageURL != "https://cdn.example.com/i.png" {
		t.Fatalf("expected valid image URL to be kept, got %q", out.Citations[1].ImageURL)
	}
	if out.Meta["num_sources"] != 2 {
		t.Fatalf("num_sources must count surviving citations, got %v", out.Meta["num_sources"])
	}
}

func TestValidURL(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw  string
		want bool
	}{
		{"https://example.com/path?x=1", true},
		{"http://example.com", true},
		{"  https://example.com  ", true},
		{"example.com/no-scheme", false},
		{"/relative", false},
		{"", false},
		{"mailto:someone@example.com", false},
	}
	for _, tc := range cases {
		if got := validURL(tc.raw); got != tc.want {
			t.Errorf("validURL(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
