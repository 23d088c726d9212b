package sources

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blockwall/portfolio-pulse/app/feed"
	"github.com/blockwall/portfolio-pulse/app/registry"
)

// BlogAdapter fetches a company's own blog feed. Companies without a
// configured feed URL are skipped entirely. When the company opts in to
// content extraction, entries arriving without a description get their
// summary backfilled from the article page.
type BlogAdapter struct {
	client    *Client
	parser    *feed.Parser
	extractor *feed.ContentExtractor
}

func NewBlogAdapter(client *Client, parser *feed.Parser, extractor *feed.ContentExtractor) *BlogAdapter {
	return &BlogAdapter{
		client:    client,
		parser:    parser,
		extractor: extractor,
	}
}

func (a *BlogAdapter) Name() string {
	return "blog"
}

func (a *BlogAdapter) Type() feed.SourceType {
	return feed.SourceBlog
}

func (a *BlogAdapter) Fetch(ctx context.Context, company *registry.Company, limit int) ([]feed.Entry, error) {
	if company.BlogRSS == "" {
		return nil, nil
	}

	data, err := a.client.Get(ctx, company.BlogRSS, nil)
	if err != nil {
		return nil, fmt.Errorf("blog feed failed: %w", err)
	}

	entries := a.parser.Run(data)
	if len(entries) > limit {
		entries = entries[:limit]
	}

	if company.ExtractContent {
		a.enrichEntries(ctx, company, entries)
	}

	return entries, nil
}

func (a *BlogAdapter) enrichEntries(ctx context.Context, company *registry.Company, entries []feed.Entry) {
	for i := range entries {
		if entries[i].Description != "" {
			continue
		}

		page, err := a.client.Get(ctx, entries[i].Link, nil)
		if err != nil {
			slog.Warn("Content extraction fetch failed",
				"company", company.Slug, "url", entries[i].Link, "error", err)
			continue
		}

		text, err := a.extractor.Run(page)
		if err != nil {
			slog.Debug("Content extraction yielded nothing",
				"company", company.Slug, "url", entries[i].Link, "error", err)
			continue
		}
		entries[i].Description = text
	}
}
