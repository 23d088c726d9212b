package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/blockwall/portfolio-pulse/app/feed"
)

// DigestEntry is one per-date summary record in the digest history.
type DigestEntry struct {
	Date      string `json:"date"`
	Filename  string `json:"filename"`
	Title     string `json:"title"`
	Updates   int    `json:"updates"`
	Companies int    `json:"companies"`
	Bullish   int    `json:"bullish"`
	Bearish   int    `json:"bearish"`
}

// Ledger maintains the digest history: a write-once-per-date JSON
// array. Dates already present are never recomputed or overwritten,
// even when later runs add items for them.
type Ledger struct {
	path string
}

func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

func (l *Ledger) Run(items []feed.Item) error {
	existing := l.load()

	present := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		present[entry.Date] = struct{}{}
	}

	byDate := make(map[string][]feed.Item)
	for _, item := range items {
		day := item.Day()
		byDate[day] = append(byDate[day], item)
	}

	appended := 0
	for day, dayItems := range byDate {
		if _, ok := present[day]; ok {
			continue
		}

		companies := make(map[string]struct{})
		bullish, bearish := 0, 0
		for _, item := range dayItems {
			companies[item.CompanySlug] = struct{}{}
			switch item.Sentiment {
			case feed.SentimentBullish:
				bullish++
			case feed.SentimentBearish:
				bearish++
			}
		}

		existing = append(existing, DigestEntry{
			Date:      day,
			Filename:  fmt.Sprintf("portfolio-digest-%s.html", day),
			Title:     "Daily Portfolio Digest",
			Updates:   len(dayItems),
			Companies: len(companies),
			Bullish:   bullish,
			Bearish:   bearish,
		})
		appended++
	}

	slices.SortFunc(existing, func(a, b DigestEntry) int {
		return strings.Compare(b.Date, a.Date)
	})

	if appended > 0 {
		slog.Info("Digest history extended", "new_dates", appended)
	}

	return l.save(existing)
}

// Entries returns the current digest history, newest first.
func (l *Ledger) Entries() []DigestEntry {
	return l.load()
}

func (l *Ledger) load() []DigestEntry {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read digest history, starting empty", "path", l.path, "error", err)
		}
		return nil
	}

	var entries []DigestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("Failed to parse digest history, starting empty", "path", l.path, "error", err)
		return nil
	}
	return entries
}

func (l *Ledger) save(entries []DigestEntry) error {
	if entries == nil {
		entries = []DigestEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal digest history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create digest directory: %w", err)
	}

	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write digest history: %w", err)
	}

	return nil
}
