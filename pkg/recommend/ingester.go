package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/pkg/metrics"
)

// summary sizes
const (
	topCategories  = 5
	topSources     = 5
	topKeywords    = 10
	leastPreferred = 3
)

// ReactionLedger correlates reactions with delivered records and keeps the reaction flag on them
type ReactionLedger interface {
	GetDeliveryByRef(ctx context.Context, userID, ref string) (*domain.DeliveryRecord, error)
	SetReaction(ctx context.Context, id string, reaction domain.ReactionType) error
}

// Ingester feeds user reactions into preference profiles and runs profile decay
type Ingester struct {
	profiles ProfileStore
	ledger   ReactionLedger
	now      func() time.Time
}

// IngesterConfig holds dependencies of the Ingester
type IngesterConfig struct {
	Profiles ProfileStore
	Ledger   ReactionLedger
	Now      func() time.Time // optional, for tests
}

// NewIngester makes a reaction ingester
func NewIngester(cfg IngesterConfig) *Ingester {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Ingester{profiles: cfg.Profiles, ledger: cfg.Ledger, now: cfg.Now}
}

// RecordReaction applies a like/dislike to the user's profile.
// If the reaction refers to a delivered message, submitting the same reaction again clears the
// stored flag without touching scores, and a different reaction replaces the flag and applies
// its own delta. Previously applied deltas are never retracted.
// A reaction with nothing to attribute it to, no category, source, title or matching ref, is rejected.
func (g *Ingester) RecordReaction(ctx context.Context, r domain.Reaction) (domain.ReactionResult, error) {
	if r.UserID == "" {
		return domain.ReactionResult{}, fmt.Errorf("empty user id: %w", domain.ErrValidation)
	}
	if !r.Type.Valid() {
		return domain.ReactionResult{}, fmt.Errorf("unknown reaction %q: %w", r.Type, domain.ErrValidation)
	}

	var rec *domain.DeliveryRecord
	if r.MessageRef != "" {
		var err error
		rec, err = g.ledger.GetDeliveryByRef(ctx, r.UserID, r.MessageRef)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			lgr.Printf("[DEBUG] no delivery for ref %s of user %s", r.MessageRef, r.UserID)
			rec = nil
		case err != nil:
			return domain.ReactionResult{}, fmt.Errorf("get delivery by ref: %w", err)
		}
	}

	result := domain.ReactionResult{}
	if rec != nil {
		result.RecordID = rec.ID
		if rec.Reaction == r.Type {
			if err := g.ledger.SetReaction(ctx, rec.ID, domain.ReactionNone); err != nil {
				return result, fmt.Errorf("clear reaction: %w", err)
			}
			result.Cleared = true
			metrics.RecordReaction(string(r.Type), true)
			lgr.Printf("[INFO] cleared %s of user %s on %s", r.Type, r.UserID, rec.ID)
			return result, nil
		}
		if r.Category == "" {
			r.Category = rec.Category
		}
		if r.Source == "" {
			r.Source = rec.Source
		}
		if r.Title == "" {
			r.Title = rec.Title
		}
	}

	if r.Category == "" && r.Source == "" && r.Title == "" {
		if rec == nil {
			return result, fmt.Errorf("reaction of %s has no category, source, title or known ref: %w", r.UserID, domain.ErrValidation)
		}
		// manual message, nothing to learn from but the flag is kept for toggling
		if err := g.ledger.SetReaction(ctx, rec.ID, r.Type); err != nil {
			return result, fmt.Errorf("store reaction: %w", err)
		}
		return result, nil
	}

	keywords := ExtractKeywords(r.Title)
	err := g.profiles.UpdateProfile(ctx, r.UserID, func(p *domain.PreferenceProfile) error {
		applyReaction(p, r, keywords, g.now())
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("update profile: %w", err)
	}
	result.Applied = true

	if rec != nil {
		if err := g.ledger.SetReaction(ctx, rec.ID, r.Type); err != nil {
			return result, fmt.Errorf("store reaction: %w", err)
		}
	}

	metrics.RecordReaction(string(r.Type), false)
	lgr.Printf("[INFO] recorded %s for user %s, category: %s, source: %s, keywords: %v",
		r.Type, r.UserID, r.Category, r.Source, keywords)
	return result, nil
}

// ApplyDecay multiplies every score of every profile by its decay factor and prunes small entries.
// Profiles are processed independently, a failed profile is logged and skipped.
// Returns the number of decayed profiles.
func (g *Ingester) ApplyDecay(ctx context.Context) (int, error) {
	ids, err := g.profiles.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list profiles: %w", err)
	}

	var decayed int
	for _, id := range ids {
		if ctx.Err() != nil {
			return decayed, ctx.Err()
		}
		err := g.profiles.UpdateProfile(ctx, id, func(p *domain.PreferenceProfile) error {
			decay(p)
			return nil
		})
		if err != nil {
			lgr.Printf("[WARN] failed to decay profile of %s: %v", id, err)
			continue
		}
		decayed++
	}

	metrics.RecordDecay(decayed)
	lgr.Printf("[INFO] applied decay to %d of %d preference profiles", decayed, len(ids))
	return decayed, nil
}

// Summary describes the user's learned preferences
func (g *Ingester) Summary(ctx context.Context, userID string) (*domain.ProfileSummary, error) {
	p, err := g.profiles.GetProfile(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.ProfileSummary{
			UserID:                   userID,
			Status:                   domain.ProfileStatusNoData,
			Message:                  "No preference data yet. React to some articles to build your profile!",
			TopCategories:            []domain.ScoreEntry{},
			TopSources:               []domain.ScoreEntry{},
			TopKeywords:              []domain.ScoreEntry{},
			LeastPreferredCategories: []domain.ScoreEntry{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	res := &domain.ProfileSummary{
		UserID:        userID,
		Status:        domain.ProfileStatusActive,
		TotalLikes:    p.TotalLikes,
		TotalDislikes: p.TotalDislikes,
		TopCategories: topEntries(p.CategoryScores, topCategories),
		TopSources:    topEntries(p.SourceScores, topSources),
		TopKeywords:   topEntries(p.KeywordScores, topKeywords),
	}
	if !p.LastUpdatedAt.IsZero() {
		updated := p.LastUpdatedAt
		res.LastUpdated = &updated
	}

	res.LeastPreferredCategories = []domain.ScoreEntry{}
	for _, e := range sortedEntries(p.CategoryScores, true) {
		if e.Score >= 0 || len(res.LeastPreferredCategories) == leastPreferred {
			break
		}
		res.LeastPreferredCategories = append(res.LeastPreferredCategories, e)
	}
	return res, nil
}

// applyReaction merges the reaction delta into the profile
func applyReaction(p *domain.PreferenceProfile, r domain.Reaction, keywords []string, now time.Time) {
	delta := r.Type.Delta()
	if cat := NormalizeCategory(r.Category); cat != "" {
		p.CategoryScores[cat] += delta
	}
	if r.Source != "" {
		p.SourceScores[NormalizeSource(r.Source)] += delta
	}
	for _, k := range keywords {
		p.KeywordScores[k] += delta
	}
	switch r.Type {
	case domain.ReactionLike:
		p.TotalLikes++
	case domain.ReactionDislike:
		p.TotalDislikes++
	}
	p.LastUpdatedAt = now
}

// decay scales all scores by the profile's decay factor and drops entries below the retention threshold
func decay(p *domain.PreferenceProfile) {
	for _, scores := range []map[string]float64{p.CategoryScores, p.SourceScores, p.KeywordScores} {
		for k, v := range scores {
			v *= p.DecayFactor
			if math.Abs(v) < domain.MinRetainedScore {
				delete(scores, k)
				continue
			}
			scores[k] = v
		}
	}
}

func topEntries(scores map[string]float64, n int) []domain.ScoreEntry {
	res := sortedEntries(scores, false)
	if len(res) > n {
		res = res[:n]
	}
	return res
}

// sortedEntries orders scores descending, or ascending if asc is set. Equal scores are ordered by name.
func sortedEntries(scores map[string]float64, asc bool) []domain.ScoreEntry {
	res := make([]domain.ScoreEntry, 0, len(scores))
	for k, v := range scores {
		res = append(res, domain.ScoreEntry{Name: k, Score: v})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Score == res[j].Score {
			return res[i].Name < res[j].Name
		}
		if asc {
			return res[i].Score < res[j].Score
		}
		return res[i].Score > res[j].Score
	})
	return res
}
