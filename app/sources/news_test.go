package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blockwall/portfolio-pulse/app/feed"
	"github.com/blockwall/portfolio-pulse/app/registry"
)

const testFeedXML = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Search</title>
    <link>https://example.com</link>
    <description>results</description>
    <item><title>One</title><link>https://example.com/1</link><pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate></item>
    <item><title>Two</title><link>https://example.com/2</link><pubDate>Mon, 03 Jul 2023 09:00:00 GMT</pubDate></item>
    <item><title>Three</title><link>https://example.com/3</link><pubDate>Mon, 03 Jul 2023 08:00:00 GMT</pubDate></item>
  </channel>
</rss>`

func newTestClient() *Client {
	return NewClient("test-agent/1.0", 5*time.Second)
}

func TestNewsFetch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(testFeedXML))
	}))
	defer server.Close()

	adapter := NewNewsAdapter(newTestClient(), feed.NewParser())
	adapter.baseURL = server.URL

	company := &registry.Company{Slug: "acme", Name: "Acme", Query: `"Acme" fintech`}
	entries, err := adapter.Fetch(context.Background(), company, 8)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotQuery != `"Acme" fintech` {
		t.Errorf("Expected query forwarded, got: %q", gotQuery)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got: %d", len(entries))
	}
	if entries[0].Title != "One" {
		t.Errorf("Expected upstream order preserved, got: %q", entries[0].Title)
	}
}

func TestNewsFetchAppliesLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testFeedXML))
	}))
	defer server.Close()

	adapter := NewNewsAdapter(newTestClient(), feed.NewParser())
	adapter.baseURL = server.URL

	entries, err := adapter.Fetch(context.Background(), &registry.Company{Slug: "acme", Query: "acme"}, 2)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected limit of 2 applied, got: %d", len(entries))
	}
}

func TestNewsFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := NewNewsAdapter(newTestClient(), feed.NewParser())
	adapter.baseURL = server.URL

	entries, err := adapter.Fetch(context.Background(), &registry.Company{Slug: "acme", Query: "acme"}, 8)
	if err == nil {
		t.Error("Expected error for HTTP failure")
	}
	if len(entries) != 0 {
		t.Errorf("Expected zero entries on failure, got: %d", len(entries))
	}
}
