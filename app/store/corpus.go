package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/blockwall/portfolio-pulse/app/feed"
)

// Document is the persisted corpus artifact: the single source of truth
// every derived view is rebuilt from.
type Document struct {
	LastUpdated time.Time   `json:"last_updated"`
	TotalItems  int         `json:"total_items"`
	Items       []feed.Item `json:"items"`
}

// Store reads and writes the corpus artifact.
type Store struct {
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

// Load returns the persisted items. A missing or corrupt file is a
// first run: empty corpus, warning only.
func (s *Store) Load() []feed.Item {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read corpus, starting empty", "path", s.path, "error", err)
		}
		return nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("Failed to parse corpus, starting empty", "path", s.path, "error", err)
		return nil
	}

	return doc.Items
}

// Save overwrites the corpus artifact with the full item list.
func (s *Store) Save(items []feed.Item) error {
	if items == nil {
		items = []feed.Item{}
	}

	doc := Document{
		LastUpdated: s.now().UTC(),
		TotalItems:  len(items),
		Items:       items,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corpus: %w", err)
	}

	return nil
}
