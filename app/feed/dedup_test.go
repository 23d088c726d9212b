package feed

import (
	"testing"
)

func itemWithURL(url string) Item {
	return Item{ID: "id-" + url, URL: url}
}

func TestRunFiltersSeenURLs(t *testing.T) {
	deduper := NewDeduper()

	existing := []Item{itemWithURL("https://a.com/x")}
	candidates := []Item{
		itemWithURL("https://a.com/x"),
		itemWithURL("https://a.com/y"),
	}

	added := deduper.Run(existing, candidates)

	if len(added) != 1 {
		t.Fatalf("Expected exactly 1 new item, got: %d", len(added))
	}
	if added[0].URL != "https://a.com/y" {
		t.Errorf("Expected the unseen URL, got: %s", added[0].URL)
	}
}

func TestRunDeduplicatesWithinBatch(t *testing.T) {
	deduper := NewDeduper()

	candidates := []Item{
		itemWithURL("https://a.com/x"),
		itemWithURL("https://a.com/x"),
		itemWithURL("https://a.com/y"),
	}

	added := deduper.Run(nil, candidates)

	if len(added) != 2 {
		t.Fatalf("Expected 2 items after in-batch dedup, got: %d", len(added))
	}
}

func TestRunPreservesCandidateOrder(t *testing.T) {
	deduper := NewDeduper()

	candidates := []Item{
		itemWithURL("https://a.com/3"),
		itemWithURL("https://a.com/1"),
		itemWithURL("https://a.com/2"),
	}

	added := deduper.Run(nil, candidates)

	for i, item := range candidates {
		if added[i].URL != item.URL {
			t.Errorf("Expected order preserved at %d, got: %s", i, added[i].URL)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	deduper := NewDeduper()

	existing := []Item{itemWithURL("https://a.com/x")}
	batch := []Item{
		itemWithURL("https://a.com/y"),
		itemWithURL("https://a.com/z"),
	}

	first := deduper.Run(existing, batch)
	merged := append(append([]Item{}, existing...), first...)

	second := deduper.Run(merged, first)
	if len(second) != 0 {
		t.Errorf("Expected dedup of an already-merged batch to yield nothing, got: %d", len(second))
	}
}

func TestRunEmptyInputs(t *testing.T) {
	deduper := NewDeduper()

	if got := deduper.Run(nil, nil); len(got) != 0 {
		t.Errorf("Expected empty result for empty inputs, got: %d", len(got))
	}
	if got := deduper.Run([]Item{itemWithURL("https://a.com/x")}, nil); len(got) != 0 {
		t.Errorf("Expected empty result for empty candidates, got: %d", len(got))
	}
}
