package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/newsdrop/pkg/domain"
)

// Parser fetches RSS/Atom feeds and turns their items into articles
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser creates a new feed parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Parse fetches the feed at url and returns its items as articles of the given category.
// Source is the feed title, or the url if the feed has no title.
func (p *Parser) Parse(ctx context.Context, category, url string) ([]domain.Article, error) {
	body, err := p.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = url
	}

	now := time.Now()
	res := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" && item.Link == "" {
			continue // nothing to show or to dedup on
		}
		if title == "" {
			title = "No Title"
		}
		article := domain.Article{
			Category:    category,
			Title:       title,
			Description: strings.TrimSpace(item.Description),
			Link:        item.Link,
			Source:      source,
			Fingerprint: domain.Fingerprint(title, item.Link),
			IngestedAt:  now,
		}
		switch {
		case item.PublishedParsed != nil:
			article.PublishedAt = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			article.PublishedAt = *item.UpdatedParsed
		}
		res = append(res, article)
	}
	return res, nil
}

// fetch retrieves content from a URL
func (p *Parser) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	addBrowserHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
