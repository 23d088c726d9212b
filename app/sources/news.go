package sources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/blockwall/portfolio-pulse/app/feed"
	"github.com/blockwall/portfolio-pulse/app/registry"
)

const newsBaseURL = "https://news.google.com/rss/search"

// NewsAdapter fetches the news-search RSS feed for a company's
// configured query.
type NewsAdapter struct {
	client  *Client
	parser  *feed.Parser
	baseURL string
}

func NewNewsAdapter(client *Client, parser *feed.Parser) *NewsAdapter {
	return &NewsAdapter{
		client:  client,
		parser:  parser,
		baseURL: newsBaseURL,
	}
}

func (a *NewsAdapter) Name() string {
	return "news"
}

func (a *NewsAdapter) Type() feed.SourceType {
	return feed.SourceNews
}

func (a *NewsAdapter) Fetch(ctx context.Context, company *registry.Company, limit int) ([]feed.Entry, error) {
	searchURL := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", a.baseURL, url.QueryEscape(company.Query))

	data, err := a.client.Get(ctx, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("news search failed: %w", err)
	}

	entries := a.parser.Run(data)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
