package feed

import (
	"bytes"
	"log/slog"

	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
)

// Parser converts raw feed documents into entries. Formats are tried in
// priority order: RSS 2.0 first, Atom only when RSS yields zero
// entries. A valid-but-empty RSS document therefore costs one extra
// parse attempt; format sniffing is deliberately not done.
type Parser struct {
	rssParser  *rss.Parser
	atomParser *atom.Parser
}

func NewParser() *Parser {
	return &Parser{
		rssParser:  &rss.Parser{},
		atomParser: &atom.Parser{},
	}
}

// Run parses data and returns the entries in document order. Entries
// missing a title or link are dropped silently; upstream feeds are
// untrusted and partially malformed by default. Run never fails: a
// document neither parser accepts yields zero entries.
func (p *Parser) Run(data []byte) []Entry {
	entries := p.parseRSS(data)
	if len(entries) == 0 {
		entries = p.parseAtom(data)
	}
	return entries
}

func (p *Parser) parseRSS(data []byte) []Entry {
	feed, err := p.rssParser.Parse(bytes.NewReader(data))
	if err != nil {
		slog.Debug("RSS parse attempt failed", "error", err)
		return nil
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entry := Entry{
			Title:        CleanText(item.Title),
			Link:         DecodeEntities(StripCDATA(item.Link)),
			Description:  CleanText(item.Description),
			PublishedRaw: item.PubDate,
			Published:    item.PubDateParsed,
		}
		if item.Source != nil {
			entry.Source = CleanText(item.Source.Title)
		}
		if entry.Title == "" || entry.Link == "" {
			slog.Debug("Dropping incomplete RSS item", "title", entry.Title, "link", entry.Link)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func (p *Parser) parseAtom(data []byte) []Entry {
	feed, err := p.atomParser.Parse(bytes.NewReader(data))
	if err != nil {
		slog.Debug("Atom parse attempt failed", "error", err)
		return nil
	}

	entries := make([]Entry, 0, len(feed.Entries))
	for _, atomEntry := range feed.Entries {
		entry := Entry{
			Title:        CleanText(atomEntry.Title),
			Link:         selectAtomLink(atomEntry.Links),
			PublishedRaw: atomEntry.Published,
			Published:    atomEntry.PublishedParsed,
		}

		if atomEntry.Summary != "" {
			entry.Description = CleanText(atomEntry.Summary)
		} else if atomEntry.Content != nil {
			entry.Description = CleanText(atomEntry.Content.Value)
		}

		if entry.PublishedRaw == "" {
			entry.PublishedRaw = atomEntry.Updated
		}
		if entry.Published == nil {
			entry.Published = atomEntry.UpdatedParsed
		}

		if entry.Title == "" || entry.Link == "" {
			slog.Debug("Dropping incomplete Atom entry", "title", entry.Title, "link", entry.Link)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// selectAtomLink picks the entry link, preferring rel="alternate" over
// the first link present. Atom allows both attribute and body forms;
// gofeed resolves either into Href.
func selectAtomLink(links []*atom.Link) string {
	var first string
	for _, link := range links {
		if link == nil || link.Href == "" {
			continue
		}
		if first == "" {
			first = link.Href
		}
		if link.Rel == "" || link.Rel == "alternate" {
			return link.Href
		}
	}
	return first
}
