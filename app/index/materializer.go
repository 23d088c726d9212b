package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/blockwall/portfolio-pulse/app/feed"
)

const latestViewSize = 50

type latestView struct {
	Items       []feed.Item `json:"items"`
	GeneratedAt time.Time   `json:"generated_at"`
}

type companyView struct {
	CompanySlug string      `json:"company_slug"`
	Items       []feed.Item `json:"items"`
	GeneratedAt time.Time   `json:"generated_at"`
}

type dailySummary struct {
	Date         string `json:"date"`
	ItemCount    int    `json:"item_count"`
	CompanyCount int    `json:"company_count"`
}

type dailyIndex struct {
	Dates       []dailySummary `json:"dates"`
	GeneratedAt time.Time      `json:"generated_at"`
}

type dailyView struct {
	Date        string      `json:"date"`
	Items       []feed.Item `json:"items"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// Materializer rebuilds every derived view from the corpus. Run is a
// pure function of its inputs: re-running it on the same corpus
// produces the same artifacts, so a crashed run is recovered by
// materializing again.
type Materializer struct {
	dataDir string
	ledger  *Ledger
	now     func() time.Time
}

func NewMaterializer(dataDir, digestFile string) *Materializer {
	return &Materializer{
		dataDir: dataDir,
		ledger:  NewLedger(digestFile),
		now:     time.Now,
	}
}

// Run rebuilds the latest, per-company and daily views from items and
// appends any new dates to the digest ledger. slugs is the full
// registry: every slug gets a per-company file even with zero items.
func (m *Materializer) Run(items []feed.Item, slugs []string) error {
	now := m.now().UTC()

	sorted := make([]feed.Item, len(items))
	copy(sorted, items)
	slices.SortStableFunc(sorted, func(a, b feed.Item) int {
		return b.DatePublished.Compare(a.DatePublished)
	})

	if err := m.writeLatest(sorted, now); err != nil {
		return err
	}
	if err := m.writeCompanyViews(sorted, slugs, now); err != nil {
		return err
	}
	dates, err := m.writeDailyViews(sorted, now)
	if err != nil {
		return err
	}
	if err := m.ledger.Run(sorted); err != nil {
		return err
	}

	slog.Info("Indexes materialized",
		"items", len(sorted),
		"companies", len(slugs),
		"dates", dates)

	return nil
}

func (m *Materializer) writeLatest(sorted []feed.Item, now time.Time) error {
	latest := sorted
	if len(latest) > latestViewSize {
		latest = latest[:latestViewSize]
	}

	view := latestView{Items: emptyNotNil(latest), GeneratedAt: now}
	return m.writeJSON(filepath.Join(m.dataDir, "indexes", "latest.json"), view)
}

func (m *Materializer) writeCompanyViews(sorted []feed.Item, slugs []string, now time.Time) error {
	byCompany := make(map[string][]feed.Item)
	for _, item := range sorted {
		byCompany[item.CompanySlug] = append(byCompany[item.CompanySlug], item)
	}

	// Every registry slug gets a file, empty list rather than omission.
	// Corpus items from slugs no longer in the registry keep theirs too.
	seen := make(map[string]struct{}, len(slugs)+len(byCompany))
	for _, slug := range slugs {
		seen[slug] = struct{}{}
	}
	for slug := range byCompany {
		seen[slug] = struct{}{}
	}

	for slug := range seen {
		view := companyView{
			CompanySlug: slug,
			Items:       emptyNotNil(byCompany[slug]),
			GeneratedAt: now,
		}
		path := filepath.Join(m.dataDir, "indexes", "by-company", slug+".json")
		if err := m.writeJSON(path, view); err != nil {
			return err
		}
	}

	return nil
}

func (m *Materializer) writeDailyViews(sorted []feed.Item, now time.Time) (int, error) {
	byDate := make(map[string][]feed.Item)
	for _, item := range sorted {
		day := item.Day()
		byDate[day] = append(byDate[day], item)
	}

	days := make([]string, 0, len(byDate))
	for day := range byDate {
		days = append(days, day)
	}
	slices.Sort(days)
	slices.Reverse(days)

	summaries := make([]dailySummary, 0, len(days))
	for _, day := range days {
		dayItems := byDate[day]
		companies := make(map[string]struct{})
		for _, item := range dayItems {
			companies[item.CompanySlug] = struct{}{}
		}
		summaries = append(summaries, dailySummary{
			Date:         day,
			ItemCount:    len(dayItems),
			CompanyCount: len(companies),
		})
	}

	idx := dailyIndex{Dates: summaries, GeneratedAt: now}
	if err := m.writeJSON(filepath.Join(m.dataDir, "indexes", "daily", "index.json"), idx); err != nil {
		return 0, err
	}

	for _, day := range days {
		view := dailyView{Date: day, Items: byDate[day], GeneratedAt: now}
		path := filepath.Join(m.dataDir, "indexes", "daily", day+".json")
		if err := m.writeJSON(path, view); err != nil {
			return 0, err
		}
	}

	return len(days), nil
}

func (m *Materializer) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func emptyNotNil(items []feed.Item) []feed.Item {
	if items == nil {
		return []feed.Item{}
	}
	return items
}
