package feed

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	titleMaxLen   = 200
	summaryMaxLen = 280

	// Fixed default; significance is scored elsewhere, never here.
	defaultSignificance = 5
)

var publishedLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
}

// Normalizer maps raw entries into canonical items. Run is total: any
// combination of missing or malformed entry fields still produces a
// well-formed item.
type Normalizer struct {
	classifier *Classifier
	now        func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		classifier: NewClassifier(),
		now:        time.Now,
	}
}

func (n *Normalizer) Run(slug, companyName string, entry Entry, sourceType SourceType) Item {
	now := n.now().UTC()

	title := entry.Title
	if title == "" {
		title = "Untitled"
	}

	item := Item{
		ID:                n.itemID(slug, entry.Link, now),
		CompanySlug:       slug,
		CompanyName:       companyName,
		DatePublished:     n.resolvePublished(entry, now),
		DateIngested:      now,
		SourceType:        sourceType,
		Title:             Truncate(title, titleMaxLen),
		URL:               entry.Link,
		Publisher:         n.resolvePublisher(entry),
		Summary:           Truncate(entry.Description, summaryMaxLen),
		SignificanceScore: defaultSignificance,
		Sentiment:         n.classifier.Run(entry.Title + " " + entry.Description),
		Tags:              []string{},
	}

	return item
}

// itemID derives the deterministic item identity: stable for the same
// (company, url) within one ingestion day, distinct across days for
// URLs not yet deduplicated away.
func (n *Normalizer) itemID(slug, rawURL string, now time.Time) string {
	hash := md5.Sum([]byte(rawURL))
	return fmt.Sprintf("pf-%s-%s-%s", now.Format("20060102"), slug, hex.EncodeToString(hash[:])[:8])
}

func (n *Normalizer) resolvePublished(entry Entry, now time.Time) time.Time {
	if entry.Published != nil {
		return entry.Published.UTC()
	}
	if entry.PublishedRaw != "" {
		for _, layout := range publishedLayouts {
			if ts, err := time.Parse(layout, entry.PublishedRaw); err == nil {
				return ts.UTC()
			}
		}
	}
	// Missing or unparseable source timestamp falls back to ingestion time
	return now
}

func (n *Normalizer) resolvePublisher(entry Entry) string {
	if entry.Source != "" {
		return entry.Source
	}

	parsed, err := url.Parse(entry.Link)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
