package brave

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sotinhq/sotin/models"
)

func TestSearchSendsHeadersAndParams(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Subscription-Token"); got != "brave-key" {
			t.Errorf("unexpected subscription token %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("unexpected accept header %q", got)
		}
		q := r.URL.Query()
		if q.Get("q") != "solar flares" {
			t.Errorf("unexpected query %q", q.Get("q"))
		}
		if q.Get("count") != "4" {
			t.Errorf("unexpected count %q", q.Get("count"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"web":{"results":[{"title":"T","url":"https://b.example.com","description":"d","thumbnail":{"src":"https://img.example.com/t.png"}}]}}`)
	}))
	defer ts.Close()

	c := New("brave-key")
	c.BaseURL = ts.URL

	resp, err := c.Search(context.Background(), "solar flares", models.SearchOptions{MaxResults: 4})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	r := resp.Results[0]
	if r.Title != "T" || r.URL != "https://b.example.com" || r.Content != "d" || r.Thumbnail != "https://img.example.com/t.png" {
		t.Fatalf("unexpected result mapping: %+v", r)
	}
	if resp.Answer != "" {
		t.Fatalf("brave has no quick answer, got %q", resp.Answer)
	}
}

func TestSearchCapsResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"web":{"results":[
			{"title":"1","url":"https://one.example.com"},
			{"title":"2","url":"https://two.example.com"},
			{"title":"3","url":"https://three.example.com"}
		]}}`)
	}))
	defer ts.Close()

	c := New("k")
	c.BaseURL = ts.URL

	resp, err := c.Search(context.Background(), "q", models.SearchOptions{MaxResults: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected results capped at 2, got %d", len(resp.Results))
	}
}

func TestSearchMissingKey(t *testing.T) {
	t.Parallel()
	c := New("")
	_, err := c.Search(context.Background(), "q", models.SearchOptions{})
	if err == nil || !strings.Contains(err.Error(), "API key is missing") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := New("k")
	c.BaseURL = ts.URL

	_, err := c.Search(context.Background(), "q", models.SearchOptions{})
	if err == nil || err.Error() != "brave http 503" {
		t.Fatalf("expected http error, got %v", err)
	}
}
