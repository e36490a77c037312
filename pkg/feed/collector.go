package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/pkg/metrics"
)

//go:generate moq -out mocks/article_store.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

// DefaultRetention is how long collected articles are kept
const DefaultRetention = 3 * 24 * time.Hour

// ArticleStore persists collected articles, deduplicated by fingerprint within a category
type ArticleStore interface {
	SaveArticle(ctx context.Context, article *domain.Article) (bool, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// Fetcher retrieves articles of a single feed
type Fetcher interface {
	Parse(ctx context.Context, category, url string) ([]domain.Article, error)
}

// Collector pulls all configured feeds into the article store
type Collector struct {
	store       ArticleStore
	fetcher     Fetcher
	feeds       map[string][]string
	concurrency int
}

// CollectorConfig holds collector dependencies and settings
type CollectorConfig struct {
	Store       ArticleStore
	Fetcher     Fetcher
	Feeds       map[string][]string // category -> feed urls
	Concurrency int                 // max feeds fetched in parallel, default 4
}

// CollectStats summarizes a collection run
type CollectStats struct {
	Feeds      int `json:"feeds"`
	Failed     int `json:"failed"`
	Saved      int `json:"saved"`
	Duplicates int `json:"duplicates"`
}

// NewCollector makes a feed collector. Category names are upper-cased.
func NewCollector(cfg CollectorConfig) *Collector {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	feeds := make(map[string][]string, len(cfg.Feeds))
	for cat, urls := range cfg.Feeds {
		cat = strings.ToUpper(strings.TrimSpace(cat))
		feeds[cat] = append(feeds[cat], urls...)
	}
	return &Collector{store: cfg.Store, fetcher: cfg.Fetcher, feeds: feeds, concurrency: cfg.Concurrency}
}

// Categories returns the categories the collector pulls, sorted
func (c *Collector) Categories() []string {
	return Categories(c.feeds)
}

// Collect fetches every feed and saves new articles. A failed feed is logged and counted,
// it doesn't stop the others. Returns an error only if the context is canceled.
func (c *Collector) Collect(ctx context.Context) (CollectStats, error) {
	return c.collect(ctx, c.Categories())
}

// CollectCategory fetches feeds of a single category, domain.ErrNotFound if it has no feeds
func (c *Collector) CollectCategory(ctx context.Context, category string) (CollectStats, error) {
	cat := strings.ToUpper(strings.TrimSpace(category))
	if len(c.feeds[cat]) == 0 {
		return CollectStats{}, fmt.Errorf("no feeds for category %q: %w", category, domain.ErrNotFound)
	}
	return c.collect(ctx, []string{cat})
}

func (c *Collector) collect(ctx context.Context, categories []string) (CollectStats, error) {
	var mu sync.Mutex
	stats := CollectStats{}

	g := errgroup.Group{}
	g.SetLimit(c.concurrency)
	for _, cat := range categories {
		for _, url := range c.feeds[cat] {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				saved, dups, err := c.collectFeed(ctx, cat, url)
				mu.Lock()
				defer mu.Unlock()
				stats.Feeds++
				if err != nil {
					stats.Failed++
					lgr.Printf("[WARN] failed to collect %s feed %s: %v", cat, url, err)
					return nil
				}
				stats.Saved += saved
				stats.Duplicates += dups
				return nil
			})
		}
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("collect canceled: %w", err)
	}
	lgr.Printf("[INFO] collected %d feeds, %d new articles, %d duplicates, %d failed",
		stats.Feeds, stats.Saved, stats.Duplicates, stats.Failed)
	return stats, nil
}

func (c *Collector) collectFeed(ctx context.Context, category, url string) (saved, dups int, err error) {
	st := time.Now()
	articles, err := c.fetcher.Parse(ctx, category, url)
	if err != nil {
		return 0, 0, err
	}
	for i := range articles {
		ok, err := c.store.SaveArticle(ctx, &articles[i])
		if err != nil {
			return saved, dups, fmt.Errorf("save article %q: %w", articles[i].Title, err)
		}
		if ok {
			saved++
			continue
		}
		dups++
	}
	metrics.RecordArticles(category, saved)
	lgr.Printf("[DEBUG] feed %s done in %v, %d articles, %d new", url, time.Since(st).Truncate(time.Millisecond),
		len(articles), saved)
	return saved, dups, nil
}

// Cleanup removes articles ingested before now-retention
func (c *Collector) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	n, err := c.store.DeleteOlderThan(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("cleanup articles: %w", err)
	}
	lgr.Printf("[INFO] removed %d articles older than %v", n, retention)
	return n, nil
}
