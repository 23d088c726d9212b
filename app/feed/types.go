package feed

import (
	"time"
)

type SourceType string

const (
	SourceNews   SourceType = "news"
	SourceBlog   SourceType = "blog"
	SourceSocial SourceType = "social"
)

type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Entry is a raw feed entry as returned by a source adapter, before
// normalization into an Item. Published is set when the source format
// already carries a parsed timestamp; PublishedRaw keeps the original
// string for the normalizer's fallback parsing.
type Entry struct {
	Title        string
	Link         string
	Description  string
	PublishedRaw string
	Published    *time.Time
	Source       string
}

// Item is the canonical persisted unit. Field names match the JSON
// artifacts consumed by the site, so changes here are contract changes.
// Items are immutable once created.
type Item struct {
	ID                string     `json:"id"`
	CompanySlug       string     `json:"company_slug"`
	CompanyName       string     `json:"company_name"`
	DatePublished     time.Time  `json:"date_published"`
	DateIngested      time.Time  `json:"date_ingested"`
	SourceType        SourceType `json:"source_type"`
	Title             string     `json:"title"`
	URL               string     `json:"url"`
	Publisher         string     `json:"publisher"`
	Summary           string     `json:"summary_short"`
	ImageURL          *string    `json:"image_url"`
	SignificanceScore int        `json:"significance_score"`
	Sentiment         Sentiment  `json:"sentiment"`
	Tags              []string   `json:"tags"`
}

// Day returns the calendar date bucket of the item.
func (i Item) Day() string {
	return i.DatePublished.UTC().Format("2006-01-02")
}
