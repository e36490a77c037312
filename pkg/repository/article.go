package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsdrop/pkg/domain"
)

// ArticleRepository stores collected articles. Every call takes the category explicitly,
// it is the partition key of the article store.
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID          int64      `db:"id"`
	Category    string     `db:"category"`
	Fingerprint string     `db:"fingerprint"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Link        string     `db:"link"`
	Source      string     `db:"source"`
	PublishedAt *time.Time `db:"published_at"`
	IngestedAt  time.Time  `db:"ingested_at"`
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// SaveArticle inserts an article into its category partition.
// Returns false if an article with the same fingerprint is already stored in this category.
func (r *ArticleRepository) SaveArticle(ctx context.Context, article *domain.Article) (bool, error) {
	if article.Fingerprint == "" {
		article.Fingerprint = domain.Fingerprint(article.Title, article.Link)
	}
	if article.IngestedAt.IsZero() {
		article.IngestedAt = time.Now()
	}
	article.Category = partition(article.Category)

	rec := &articleSQL{
		Category:    article.Category,
		Fingerprint: article.Fingerprint,
		Title:       article.Title,
		Description: article.Description,
		Link:        article.Link,
		Source:      article.Source,
		IngestedAt:  article.IngestedAt.UTC(),
	}
	if article.HasPublished() {
		published := article.PublishedAt.UTC()
		rec.PublishedAt = &published
	}

	query := `
		INSERT INTO articles (category, fingerprint, title, description, link, source, published_at, ingested_at)
		VALUES (:category, :fingerprint, :title, :description, :link, :source, :published_at, :ingested_at)
		ON CONFLICT(category, fingerprint) DO NOTHING
	`
	var inserted bool
	err := withRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, rec)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		inserted = n > 0
		if inserted {
			if article.ID, err = res.LastInsertId(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("save article: %w", err)
	}
	return inserted, nil
}

// GetByCategory returns the newest articles of a category, articles without publish time go last
func (r *ArticleRepository) GetByCategory(ctx context.Context, category string, limit int) ([]domain.Article, error) {
	query := `
		SELECT * FROM articles
		WHERE category = ?
		ORDER BY (published_at IS NULL), published_at DESC, id DESC
		LIMIT ?
	`
	var recs []articleSQL
	if err := r.db.SelectContext(ctx, &recs, query, partition(category), limit); err != nil {
		return nil, fmt.Errorf("get articles by category %s: %w", category, err)
	}

	res := make([]domain.Article, len(recs))
	for i := range recs {
		res[i] = recs[i].toDomain()
	}
	return res, nil
}

// CountByCategory returns the number of stored articles in a category
func (r *ArticleRepository) CountByCategory(ctx context.Context, category string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles WHERE category = ?", partition(category)); err != nil {
		return 0, fmt.Errorf("count articles in %s: %w", category, err)
	}
	return count, nil
}

// Categories returns all categories with at least one article
func (r *ArticleRepository) Categories(ctx context.Context) ([]string, error) {
	var res []string
	if err := r.db.SelectContext(ctx, &res, "SELECT DISTINCT category FROM articles ORDER BY category"); err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return res, nil
}

// DeleteOlderThan removes articles ingested before the given time
func (r *ArticleRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE ingested_at < ?", before.UTC())
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete old articles: %w", err)
	}
	return deleted, nil
}

func (a *articleSQL) toDomain() domain.Article {
	res := domain.Article{
		ID:          a.ID,
		Category:    a.Category,
		Title:       a.Title,
		Description: a.Description,
		Link:        a.Link,
		Source:      a.Source,
		Fingerprint: a.Fingerprint,
		IngestedAt:  a.IngestedAt,
	}
	if a.PublishedAt != nil {
		res.PublishedAt = *a.PublishedAt
	}
	return res
}

// partition normalizes a category into its partition key
func partition(category string) string {
	return strings.ToUpper(strings.TrimSpace(category))
}
