package collector

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"golang.org/x/time/rate"

	"github.com/blockwall/portfolio-pulse/app/archive"
	"github.com/blockwall/portfolio-pulse/app/cfg"
	"github.com/blockwall/portfolio-pulse/app/feed"
	"github.com/blockwall/portfolio-pulse/app/index"
	"github.com/blockwall/portfolio-pulse/app/registry"
	"github.com/blockwall/portfolio-pulse/app/sources"
	"github.com/blockwall/portfolio-pulse/app/store"
)

// Collector drives one collection cycle: fetch every configured source
// for every company in registry order, normalize, dedup against the
// persisted corpus, save and rebuild the derived views. Sources are
// visited sequentially, paced by a shared rate limiter.
type Collector struct {
	registry     *registry.Registry
	adapters     []sources.Adapter
	normalizer   *feed.Normalizer
	deduper      *feed.Deduper
	store        *store.Store
	materializer *index.Materializer
	runs         *archive.RunRepository
	limiter      *rate.Limiter
	maxItems     int
	socialItems  int
}

// NewCollector wires the full collection pipeline. runs may be nil
// when the run-history archive is unavailable.
func NewCollector(reg *registry.Registry, runs *archive.RunRepository) *Collector {
	c := cfg.Get()

	client := sources.NewClient(c.UserAgent, time.Duration(c.FetchTimeout)*time.Second)
	parser := feed.NewParser()
	extractor := feed.NewContentExtractor()

	// Fixed source order per company: news, blog, social.
	adapters := []sources.Adapter{
		sources.NewNewsAdapter(client, parser),
		sources.NewBlogAdapter(client, parser, extractor),
		sources.NewSocialAdapter(client, c.SocialToken),
	}

	return &Collector{
		registry:     reg,
		adapters:     adapters,
		normalizer:   feed.NewNormalizer(),
		deduper:      feed.NewDeduper(),
		store:        store.NewStore(filepath.Join(c.DataDir, "items.json")),
		materializer: index.NewMaterializer(c.DataDir, c.DigestFile),
		runs:         runs,
		limiter:      rate.NewLimiter(rate.Every(time.Duration(c.RequestDelay)*time.Millisecond), 1),
		maxItems:     c.MaxItems,
		socialItems:  c.SocialItems,
	}
}

// Run executes one collection cycle. Individual source failures are
// logged and skipped; only context cancellation or a failed corpus
// write aborts the cycle.
func (c *Collector) Run(ctx context.Context) error {
	existing := c.store.Load()
	companies := c.registry.GetCompanies()

	slog.Info("Collection started",
		"companies", len(companies),
		"corpus_size", len(existing))

	runID := c.startRun(len(companies))

	var candidates []feed.Item
	fetched := 0

	for _, company := range companies {
		for _, adapter := range c.adapters {
			limit := c.maxItems
			if adapter.Type() == feed.SourceSocial {
				limit = c.socialItems
			}

			if err := c.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("collection aborted: %w", err)
			}

			entries, err := adapter.Fetch(ctx, company, limit)
			if err != nil {
				slog.Warn("Source fetch failed",
					"company", company.Slug,
					"source", adapter.Name(),
					"error", err)
				c.recordFetch(runID, company.Slug, adapter, 0, err)
				continue
			}
			if len(entries) > 0 {
				slog.Debug("Source fetched",
					"company", company.Slug,
					"source", adapter.Name(),
					"entries", len(entries))
			}
			c.recordFetch(runID, company.Slug, adapter, len(entries), nil)

			fetched += len(entries)
			for _, entry := range entries {
				candidates = append(candidates, c.normalizer.Run(company.Slug, company.Name, entry, adapter.Type()))
			}
		}
	}

	fresh := c.deduper.Run(existing, candidates)

	merged := append(existing, fresh...)
	slices.SortStableFunc(merged, func(a, b feed.Item) int {
		return b.DatePublished.Compare(a.DatePublished)
	})

	if err := c.store.Save(merged); err != nil {
		return fmt.Errorf("failed to persist corpus: %w", err)
	}

	if err := c.materializer.Run(merged, c.registry.GetSlugs()); err != nil {
		return fmt.Errorf("failed to materialize indexes: %w", err)
	}

	c.finishRun(runID, fetched, len(fresh), len(merged))

	slog.Info("Collection finished",
		"fetched", fetched,
		"added", len(fresh),
		"corpus_size", len(merged))

	return nil
}

// Reindex rebuilds every derived view from the persisted corpus
// without touching the network.
func (c *Collector) Reindex() error {
	items := c.store.Load()

	slog.Info("Reindex started", "corpus_size", len(items))

	if err := c.materializer.Run(items, c.registry.GetSlugs()); err != nil {
		return fmt.Errorf("failed to materialize indexes: %w", err)
	}

	return nil
}

func (c *Collector) startRun(companies int) int64 {
	if c.runs == nil {
		return 0
	}

	runID, err := c.runs.StartRun(companies)
	if err != nil {
		slog.Warn("Failed to record run start", "error", err)
		return 0
	}
	return runID
}

func (c *Collector) recordFetch(runID int64, slug string, adapter sources.Adapter, count int, fetchErr error) {
	if c.runs == nil || runID == 0 {
		return
	}

	errMsg := ""
	if fetchErr != nil {
		errMsg = fetchErr.Error()
	}

	if err := c.runs.RecordFetch(runID, slug, string(adapter.Type()), count, errMsg); err != nil {
		slog.Warn("Failed to record fetch", "company", slug, "error", err)
	}
}

func (c *Collector) finishRun(runID int64, fetched, added, corpusSize int) {
	if c.runs == nil || runID == 0 {
		return
	}

	if err := c.runs.FinishRun(runID, fetched, added, corpusSize); err != nil {
		slog.Warn("Failed to record run finish", "error", err)
	}
}
