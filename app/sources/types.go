package sources

import (
	"context"

	"github.com/blockwall/portfolio-pulse/app/feed"
	"github.com/blockwall/portfolio-pulse/app/registry"
)

// Adapter fetches raw entries from one upstream surface for a company.
// Fetch returns at most limit entries in the order the upstream
// reported them. A company without the relevant source configured
// yields (nil, nil) without any network activity; failures are returned
// for the caller to log, never to abort a run.
type Adapter interface {
	Name() string
	Type() feed.SourceType
	Fetch(ctx context.Context, company *registry.Company, limit int) ([]feed.Entry, error)
}
