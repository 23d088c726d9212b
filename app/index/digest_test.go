package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blockwall/portfolio-pulse/app/feed"
)

func TestLedgerAppendsNewDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digest.json")
	ledger := NewLedger(path)

	items := []feed.Item{
		testItem("1", "acme", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), feed.SentimentBullish),
		testItem("2", "globex", time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), feed.SentimentBearish),
		testItem("3", "acme", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), feed.SentimentNeutral),
	}

	if err := ledger.Run(items); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	entries := ledger.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}
	if entries[0].Date != "2024-01-02" || entries[1].Date != "2024-01-01" {
		t.Errorf("Expected descending dates, got: %s, %s", entries[0].Date, entries[1].Date)
	}

	first := entries[1]
	if first.Filename != "portfolio-digest-2024-01-01.html" {
		t.Errorf("Unexpected filename: %q", first.Filename)
	}
	if first.Title != "Daily Portfolio Digest" {
		t.Errorf("Unexpected title: %q", first.Title)
	}
	if first.Updates != 2 || first.Companies != 2 {
		t.Errorf("Unexpected counts: updates=%d companies=%d", first.Updates, first.Companies)
	}
	if first.Bullish != 1 || first.Bearish != 1 {
		t.Errorf("Unexpected sentiment counts: bullish=%d bearish=%d", first.Bullish, first.Bearish)
	}
}

func TestLedgerWriteOncePerDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digest.json")
	ledger := NewLedger(path)

	items := []feed.Item{
		testItem("1", "acme", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), feed.SentimentBullish),
	}
	if err := ledger.Run(items); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// A later run surfaces more items for the same date. The recorded
	// entry must stay as first written.
	more := append(items,
		testItem("2", "globex", time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), feed.SentimentBearish),
		testItem("3", "acme", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), feed.SentimentNeutral),
	)
	if err := ledger.Run(more); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	entries := ledger.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}

	var jan1 DigestEntry
	for _, entry := range entries {
		if entry.Date == "2024-01-01" {
			jan1 = entry
		}
	}
	if jan1.Updates != 1 || jan1.Companies != 1 || jan1.Bearish != 0 {
		t.Errorf("Expected 2024-01-01 entry untouched, got: %+v", jan1)
	}
}

func TestLedgerIdempotentRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digest.json")
	ledger := NewLedger(path)

	items := []feed.Item{
		testItem("1", "acme", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), feed.SentimentNeutral),
	}

	if err := ledger.Run(items); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	firstData, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read ledger: %v", err)
	}

	if err := ledger.Run(items); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	secondData, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read ledger: %v", err)
	}

	if string(firstData) != string(secondData) {
		t.Error("Expected identical ledger after repeated run")
	}
}

func TestLedgerCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digest.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	ledger := NewLedger(path)
	items := []feed.Item{
		testItem("1", "acme", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), feed.SentimentNeutral),
	}
	if err := ledger.Run(items); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read ledger: %v", err)
	}
	var entries []DigestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("Expected valid JSON after rewrite: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 entry, got: %d", len(entries))
	}
}
