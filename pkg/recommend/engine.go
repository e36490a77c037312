// Package recommend implements the preference model: ranking of candidate articles against
// a learned per-user profile, ingestion of like/dislike reactions and periodic decay.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdrop/pkg/domain"
)

//go:generate moq -out mocks/profile_store.go -pkg mocks -skip-ensure -fmt goimports . ProfileStore
//go:generate moq -out mocks/article_source.go -pkg mocks -skip-ensure -fmt goimports . ArticleSource
//go:generate moq -out mocks/delivery_checker.go -pkg mocks -skip-ensure -fmt goimports . DeliveryChecker
//go:generate moq -out mocks/reaction_ledger.go -pkg mocks -skip-ensure -fmt goimports . ReactionLedger

// score weights of the final ranking formula
const (
	categoryWeight = 0.4
	sourceWeight   = 0.2
	keywordWeight  = 0.3
	recencyWeight  = 0.1

	recencyHorizonHours = 168.0 // recency drops linearly to 0 over a week
	unknownRecency      = 0.5
)

// defaults used when a request leaves them unset
const (
	DefaultPerCategory = 10
	DefaultLimit       = 5
)

// ProfileStore provides per-user preference profiles with atomic updates
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*domain.PreferenceProfile, error)
	UpdateProfile(ctx context.Context, userID string, fn func(p *domain.PreferenceProfile) error) error
	ListUserIDs(ctx context.Context) ([]string, error)
}

// ArticleSource provides candidate articles, category is the partition key
type ArticleSource interface {
	GetByCategory(ctx context.Context, category string, limit int) ([]domain.Article, error)
}

// DeliveryChecker reports which articles a user has already received
type DeliveryChecker interface {
	Delivered(ctx context.Context, userID string, fingerprints []string) (map[string]bool, error)
}

// ScoredArticle is a ranked candidate with its score breakdown
type ScoredArticle struct {
	Article       domain.Article
	Score         float64
	CategoryScore float64
	SourceScore   float64
	KeywordScore  float64
	RecencyScore  float64
	Explanation   string
	ColdStart     bool // no profile, ordered by recency only
}

// Request describes a recommendation query
type Request struct {
	UserID      string
	Categories  []string
	PerCategory int // candidates fetched per category
	Limit       int // max results
}

// Engine ranks articles for users. It never changes stored state.
type Engine struct {
	profiles ProfileStore
	articles ArticleSource
	ledger   DeliveryChecker
	now      func() time.Time
}

// EngineConfig holds dependencies of the Engine
type EngineConfig struct {
	Profiles ProfileStore
	Articles ArticleSource
	Ledger   DeliveryChecker
	Now      func() time.Time // optional, for tests
}

// NewEngine makes a recommendation engine
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{profiles: cfg.Profiles, articles: cfg.Articles, ledger: cfg.Ledger, now: cfg.Now}
}

// Rank scores candidates against the user's profile and returns them best first.
// Without a profile candidates are returned newest first with zero score.
// Equal scores keep the candidates order.
func (e *Engine) Rank(ctx context.Context, userID string, candidates []domain.Article) ([]ScoredArticle, error) {
	profile, err := e.profiles.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	res := make([]ScoredArticle, len(candidates))
	if profile == nil {
		for i, a := range candidates {
			res[i] = ScoredArticle{Article: a, ColdStart: true, Explanation: "no preference data yet"}
		}
		sort.SliceStable(res, func(i, j int) bool {
			a, b := res[i].Article, res[j].Article
			if !a.HasPublished() || !b.HasPublished() {
				return a.HasPublished() && !b.HasPublished()
			}
			return a.PublishedAt.After(b.PublishedAt)
		})
		return res, nil
	}

	now := e.now()
	for i, a := range candidates {
		res[i] = e.score(profile, a, now)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Score > res[j].Score })
	return res, nil
}

// Recommend gathers candidates from the requested categories, drops articles the user already got
// and returns the best ranked ones. A category that can't be read is logged and skipped,
// the call fails only if every category failed.
func (e *Engine) Recommend(ctx context.Context, req Request) ([]ScoredArticle, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("empty user id: %w", domain.ErrValidation)
	}
	if req.PerCategory <= 0 {
		req.PerCategory = DefaultPerCategory
	}
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}

	var candidates []domain.Article
	var lastErr error
	failed := 0
	seen := map[string]bool{}
	for _, cat := range req.Categories {
		articles, err := e.articles.GetByCategory(ctx, NormalizeCategory(cat), req.PerCategory)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("get articles for %s: %w", cat, ctx.Err())
			}
			lgr.Printf("[WARN] failed to get articles for %s, user %s: %v", cat, req.UserID, err)
			lastErr = fmt.Errorf("get articles for %s: %w", cat, err)
			failed++
			continue
		}
		for _, a := range articles {
			if seen[a.Fingerprint] {
				continue
			}
			seen[a.Fingerprint] = true
			candidates = append(candidates, a)
		}
	}
	if failed > 0 && failed == len(req.Categories) {
		return nil, lastErr
	}
	if len(candidates) == 0 {
		lgr.Printf("[DEBUG] no articles for user %s in %v", req.UserID, req.Categories)
		return nil, nil
	}

	fingerprints := make([]string, len(candidates))
	for i, a := range candidates {
		fingerprints[i] = a.Fingerprint
	}
	delivered, err := e.ledger.Delivered(ctx, req.UserID, fingerprints)
	if err != nil {
		return nil, fmt.Errorf("check delivered: %w", err)
	}

	unseen := candidates[:0]
	for _, a := range candidates {
		if !delivered[a.Fingerprint] {
			unseen = append(unseen, a)
		}
	}
	if len(unseen) == 0 {
		lgr.Printf("[DEBUG] user %s has seen all %d candidates", req.UserID, len(candidates))
		return nil, nil
	}

	ranked, err := e.Rank(ctx, req.UserID, unseen)
	if err != nil {
		return nil, err
	}
	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}
	return ranked, nil
}

func (e *Engine) score(p *domain.PreferenceProfile, a domain.Article, now time.Time) ScoredArticle {
	res := ScoredArticle{
		Article:       a,
		CategoryScore: p.CategoryScores[NormalizeCategory(a.Category)],
		SourceScore:   p.SourceScores[NormalizeSource(a.Source)],
		KeywordScore:  keywordScore(p, a.Title),
		RecencyScore:  recency(a, now),
	}
	res.Score = categoryWeight*res.CategoryScore + sourceWeight*res.SourceScore +
		keywordWeight*res.KeywordScore + recencyWeight*res.RecencyScore
	res.Explanation = fmt.Sprintf("Category(%s): %.2f, Source(%s): %.2f, Keywords: %.2f, Recency: %.2f",
		a.Category, res.CategoryScore, a.Source, res.SourceScore, res.KeywordScore, res.RecencyScore)
	return res
}

// keywordScore is the mean of non-zero scores of the title keywords
func keywordScore(p *domain.PreferenceProfile, title string) float64 {
	var sum float64
	var matched int
	for _, k := range ExtractKeywords(title) {
		if s := p.KeywordScores[k]; s != 0 {
			sum += s
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return sum / float64(matched)
}

// recency is 1 for fresh articles going down to 0 at one week age, counted in whole hours
func recency(a domain.Article, now time.Time) float64 {
	if !a.HasPublished() {
		return unknownRecency
	}
	hours := float64(int64(now.Sub(a.PublishedAt).Hours()))
	r := 1 - hours/recencyHorizonHours
	return max(0, min(1, r))
}
