package recommend

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/pkg/recommend/mocks"
)

// memProfiles makes a profile store mock backed by a map
func memProfiles(profiles map[string]*domain.PreferenceProfile) *mocks.ProfileStoreMock {
	var mu sync.Mutex
	return &mocks.ProfileStoreMock{
		GetProfileFunc: func(ctx context.Context, userID string) (*domain.PreferenceProfile, error) {
			mu.Lock()
			defer mu.Unlock()
			p, ok := profiles[userID]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return p, nil
		},
		UpdateProfileFunc: func(ctx context.Context, userID string, fn func(p *domain.PreferenceProfile) error) error {
			mu.Lock()
			defer mu.Unlock()
			p, ok := profiles[userID]
			if !ok {
				p = domain.NewPreferenceProfile(userID)
			}
			if err := fn(p); err != nil {
				return err
			}
			profiles[userID] = p
			return nil
		},
		ListUserIDsFunc: func(ctx context.Context) ([]string, error) {
			mu.Lock()
			defer mu.Unlock()
			res := make([]string, 0, len(profiles))
			for id := range profiles {
				res = append(res, id)
			}
			return res, nil
		},
	}
}

// memLedger makes a reaction ledger mock over a set of records
func memLedger(records ...*domain.DeliveryRecord) *mocks.ReactionLedgerMock {
	return &mocks.ReactionLedgerMock{
		GetDeliveryByRefFunc: func(ctx context.Context, userID, ref string) (*domain.DeliveryRecord, error) {
			for _, r := range records {
				if r.UserID == userID && (r.ID == ref || r.ChannelMessageRef == ref) {
					cp := *r
					return &cp, nil
				}
			}
			return nil, domain.ErrNotFound
		},
		SetReactionFunc: func(ctx context.Context, id string, reaction domain.ReactionType) error {
			for _, r := range records {
				if r.ID == id {
					r.Reaction = reaction
					return nil
				}
			}
			return domain.ErrNotFound
		},
	}
}

func TestIngester_RecordReaction(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	t.Run("like creates profile and merges deltas", func(t *testing.T) {
		profiles := map[string]*domain.PreferenceProfile{}
		ing := NewIngester(IngesterConfig{Profiles: memProfiles(profiles), Ledger: memLedger(), Now: func() time.Time { return now }})

		res, err := ing.RecordReaction(context.Background(), domain.Reaction{UserID: "u1", Type: domain.ReactionLike,
			Category: "sports", Source: "BBC Sport", Title: "India wins test match"})
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.False(t, res.Cleared)

		p := profiles["u1"]
		require.NotNil(t, p)
		assert.Equal(t, map[string]float64{"SPORTS": 1}, p.CategoryScores)
		assert.Equal(t, map[string]float64{"bbc": 1}, p.SourceScores)
		assert.Equal(t, map[string]float64{"india": 1, "wins": 1, "test": 1, "match": 1}, p.KeywordScores)
		assert.Equal(t, 1, p.TotalLikes)
		assert.Equal(t, now, p.LastUpdatedAt)

		_, err = ing.RecordReaction(context.Background(), domain.Reaction{UserID: "u1", Type: domain.ReactionDislike,
			Category: "SPORTS", Source: "ESPN", Title: "Match preview"})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, p.CategoryScores["SPORTS"], 1e-9)
		assert.InDelta(t, -1.0, p.SourceScores["espn"], 1e-9)
		assert.InDelta(t, 0.0, p.KeywordScores["match"], 1e-9)
		assert.InDelta(t, -1.0, p.KeywordScores["preview"], 1e-9)
		assert.Equal(t, 1, p.TotalDislikes)
	})

	t.Run("like then dislike of the same article nets zero", func(t *testing.T) {
		profiles := map[string]*domain.PreferenceProfile{}
		ing := NewIngester(IngesterConfig{Profiles: memProfiles(profiles), Ledger: memLedger()})
		r := domain.Reaction{UserID: "u1", Category: "SPORTS", Source: "BBC Sport", Title: "India wins test match"}
		r.Type = domain.ReactionLike
		_, err := ing.RecordReaction(context.Background(), r)
		require.NoError(t, err)
		r.Type = domain.ReactionDislike
		_, err = ing.RecordReaction(context.Background(), r)
		require.NoError(t, err)

		p := profiles["u1"]
		assert.InDelta(t, 0.0, p.CategoryScores["SPORTS"], 1e-9)
		assert.InDelta(t, 0.0, p.SourceScores["bbc"], 1e-9)
		for _, k := range []string{"india", "wins", "test", "match"} {
			assert.InDelta(t, 0.0, p.KeywordScores[k], 1e-9, k)
		}
		assert.Equal(t, 1, p.TotalLikes)
		assert.Equal(t, 1, p.TotalDislikes)
	})

	t.Run("validation", func(t *testing.T) {
		store := memProfiles(map[string]*domain.PreferenceProfile{})
		ing := NewIngester(IngesterConfig{Profiles: store, Ledger: memLedger()})
		_, err := ing.RecordReaction(context.Background(), domain.Reaction{Type: domain.ReactionLike})
		require.ErrorIs(t, err, domain.ErrValidation)
		_, err = ing.RecordReaction(context.Background(), domain.Reaction{UserID: "u1", Type: "love"})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, store.UpdateProfileCalls())
	})

	t.Run("toggle on correlated record", func(t *testing.T) {
		rec := &domain.DeliveryRecord{ID: "r1", UserID: "u1", ChannelMessageRef: "tg-1", Category: "SPORTS",
			Source: "BBC Sport", Title: "India wins test match"}
		profiles := map[string]*domain.PreferenceProfile{}
		ing := NewIngester(IngesterConfig{Profiles: memProfiles(profiles), Ledger: memLedger(rec)})
		like := domain.Reaction{UserID: "u1", Type: domain.ReactionLike, MessageRef: "tg-1"}

		// first like fills metadata from the record
		res, err := ing.RecordReaction(context.Background(), like)
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, "r1", res.RecordID)
		assert.Equal(t, domain.ReactionLike, rec.Reaction)
		assert.InDelta(t, 1.0, profiles["u1"].CategoryScores["SPORTS"], 1e-9)
		assert.InDelta(t, 1.0, profiles["u1"].SourceScores["bbc"], 1e-9)

		// same reaction clears the flag and keeps scores
		res, err = ing.RecordReaction(context.Background(), like)
		require.NoError(t, err)
		assert.True(t, res.Cleared)
		assert.False(t, res.Applied)
		assert.Equal(t, domain.ReactionNone, rec.Reaction)
		assert.InDelta(t, 1.0, profiles["u1"].CategoryScores["SPORTS"], 1e-9)
		assert.Equal(t, 1, profiles["u1"].TotalLikes)

		// like again after clearing applies a second delta
		_, err = ing.RecordReaction(context.Background(), like)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, profiles["u1"].CategoryScores["SPORTS"], 1e-9)

		// opposite reaction overwrites and applies its own delta without retracting
		res, err = ing.RecordReaction(context.Background(), domain.Reaction{UserID: "u1", Type: domain.ReactionDislike, MessageRef: "tg-1"})
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, domain.ReactionDislike, rec.Reaction)
		assert.InDelta(t, 1.0, profiles["u1"].CategoryScores["SPORTS"], 1e-9)
		assert.Equal(t, 2, profiles["u1"].TotalLikes)
		assert.Equal(t, 1, profiles["u1"].TotalDislikes)
	})

	t.Run("unknown ref applies delta without correlation", func(t *testing.T) {
		profiles := map[string]*domain.PreferenceProfile{}
		ledger := memLedger()
		ing := NewIngester(IngesterConfig{Profiles: memProfiles(profiles), Ledger: ledger})
		res, err := ing.RecordReaction(context.Background(), domain.Reaction{UserID: "u1", Type: domain.ReactionLike,
			Category: "NEWS", MessageRef: "missing"})
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Empty(t, res.RecordID)
		assert.Empty(t, ledger.SetReactionCalls())
		assert.InDelta(t, 1.0, profiles["u1"].CategoryScores["NEWS"], 1e-9)
	})

	t.Run("unknown ref alone is rejected", func(t *testing.T) {
		store := memProfiles(map[string]*domain.PreferenceProfile{})
		ledger := memLedger()
		ing := NewIngester(IngesterConfig{Profiles: store, Ledger: ledger})
		res, err := ing.RecordReaction(context.Background(), domain.Reaction{UserID: "u1", Type: domain.ReactionLike,
			MessageRef: "missing"})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.False(t, res.Applied)
		assert.Empty(t, store.UpdateProfileCalls(), "totals and update time untouched")
		assert.Empty(t, ledger.SetReactionCalls())
	})

	t.Run("record without attributes keeps flag only", func(t *testing.T) {
		rec := &domain.DeliveryRecord{ID: "m1", UserID: "u1", Subject: "Maintenance", Message: "tonight"}
		store := memProfiles(map[string]*domain.PreferenceProfile{})
		ing := NewIngester(IngesterConfig{Profiles: store, Ledger: memLedger(rec)})
		like := domain.Reaction{UserID: "u1", Type: domain.ReactionLike, MessageRef: "m1"}

		res, err := ing.RecordReaction(context.Background(), like)
		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Equal(t, "m1", res.RecordID)
		assert.Equal(t, domain.ReactionLike, rec.Reaction)
		assert.Empty(t, store.UpdateProfileCalls())

		res, err = ing.RecordReaction(context.Background(), like)
		require.NoError(t, err)
		assert.True(t, res.Cleared)
		assert.Equal(t, domain.ReactionNone, rec.Reaction)
	})

	t.Run("ledger error", func(t *testing.T) {
		store := memProfiles(map[string]*domain.PreferenceProfile{})
		ledger := &mocks.ReactionLedgerMock{
			GetDeliveryByRefFunc: func(ctx context.Context, userID, ref string) (*domain.DeliveryRecord, error) {
				return nil, errors.New("db down")
			},
		}
		ing := NewIngester(IngesterConfig{Profiles: store, Ledger: ledger})
		_, err := ing.RecordReaction(context.Background(), domain.Reaction{UserID: "u1", Type: domain.ReactionLike, MessageRef: "x"})
		require.Error(t, err)
		assert.Empty(t, store.UpdateProfileCalls())
	})
}

func TestIngester_ApplyDecay(t *testing.T) {
	p1 := domain.NewPreferenceProfile("u1")
	p1.CategoryScores = map[string]float64{"SPORTS": 2, "NEWS": -1, "TRAVEL": 0.1}
	p1.SourceScores = map[string]float64{"bbc": 0.105, "espn": -0.2}
	p1.KeywordScores = map[string]float64{"india": 1}
	p2 := domain.NewPreferenceProfile("u2")
	p2.DecayFactor = 0.5
	p2.CategoryScores = map[string]float64{"SPORTS": 0.3}
	p2.KeywordScores = map[string]float64{"cricket": -0.19}

	before := map[string]float64{}
	for k, v := range p1.CategoryScores {
		before[k] = v
	}

	profiles := map[string]*domain.PreferenceProfile{"u1": p1, "u2": p2}
	ing := NewIngester(IngesterConfig{Profiles: memProfiles(profiles), Ledger: memLedger()})
	n, err := ing.ApplyDecay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.InDelta(t, 1.9, p1.CategoryScores["SPORTS"], 1e-9)
	assert.InDelta(t, -0.95, p1.CategoryScores["NEWS"], 1e-9)
	assert.NotContains(t, p1.CategoryScores, "TRAVEL")
	assert.NotContains(t, p1.SourceScores, "bbc")
	assert.InDelta(t, -0.19, p1.SourceScores["espn"], 1e-9)
	assert.InDelta(t, 0.95, p1.KeywordScores["india"], 1e-9)

	assert.InDelta(t, 0.15, p2.CategoryScores["SPORTS"], 1e-9)
	assert.Empty(t, p2.KeywordScores)

	for _, p := range profiles {
		for _, scores := range []map[string]float64{p.CategoryScores, p.SourceScores, p.KeywordScores} {
			for k, v := range scores {
				assert.GreaterOrEqual(t, math.Abs(v), domain.MinRetainedScore, k)
			}
		}
	}
	for k, v := range p1.CategoryScores {
		assert.LessOrEqual(t, math.Abs(v), math.Abs(before[k]), k)
	}

	t.Run("failed profile skipped", func(t *testing.T) {
		store := memProfiles(map[string]*domain.PreferenceProfile{"u1": domain.NewPreferenceProfile("u1"),
			"u2": domain.NewPreferenceProfile("u2")})
		update := store.UpdateProfileFunc
		store.UpdateProfileFunc = func(ctx context.Context, userID string, fn func(p *domain.PreferenceProfile) error) error {
			if userID == "u1" {
				return errors.New("locked")
			}
			return update(ctx, userID, fn)
		}
		ing := NewIngester(IngesterConfig{Profiles: store})
		n, err := ing.ApplyDecay(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Len(t, store.UpdateProfileCalls(), 2)
	})

	t.Run("list failure", func(t *testing.T) {
		store := &mocks.ProfileStoreMock{
			ListUserIDsFunc: func(ctx context.Context) ([]string, error) { return nil, errors.New("db down") },
		}
		_, err := NewIngester(IngesterConfig{Profiles: store}).ApplyDecay(context.Background())
		require.Error(t, err)
	})
}

func TestIngester_Summary(t *testing.T) {
	updated := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	p := domain.NewPreferenceProfile("u1")
	p.TotalLikes, p.TotalDislikes, p.LastUpdatedAt = 7, 4, updated
	p.CategoryScores = map[string]float64{"SPORTS": 3, "NEWS": -1, "FINANCE": -2, "HEALTH": -0.5, "TRAVEL": -3,
		"TECHNOLOGY": 1, "EDUCATION": 0.5}
	p.SourceScores = map[string]float64{"bbc": 2, "espn": 1}
	p.KeywordScores = map[string]float64{}
	for i, k := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "b0", "b1", "b2"} {
		p.KeywordScores[k] = float64(i)
	}

	ing := NewIngester(IngesterConfig{Profiles: memProfiles(map[string]*domain.PreferenceProfile{"u1": p})})

	t.Run("active", func(t *testing.T) {
		s, err := ing.Summary(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, domain.ProfileStatusActive, s.Status)
		assert.Equal(t, 7, s.TotalLikes)
		assert.Equal(t, 4, s.TotalDislikes)
		require.NotNil(t, s.LastUpdated)
		assert.Equal(t, updated, *s.LastUpdated)

		assert.Equal(t, []domain.ScoreEntry{{Name: "SPORTS", Score: 3}, {Name: "TECHNOLOGY", Score: 1},
			{Name: "EDUCATION", Score: 0.5}, {Name: "HEALTH", Score: -0.5}, {Name: "NEWS", Score: -1}}, s.TopCategories)
		assert.Equal(t, []domain.ScoreEntry{{Name: "bbc", Score: 2}, {Name: "espn", Score: 1}}, s.TopSources)
		require.Len(t, s.TopKeywords, 10)
		assert.Equal(t, "b2", s.TopKeywords[0].Name)
		assert.Equal(t, "a3", s.TopKeywords[9].Name)
		assert.Equal(t, []domain.ScoreEntry{{Name: "TRAVEL", Score: -3}, {Name: "FINANCE", Score: -2},
			{Name: "NEWS", Score: -1}}, s.LeastPreferredCategories)
	})

	t.Run("no data", func(t *testing.T) {
		s, err := ing.Summary(context.Background(), "u2")
		require.NoError(t, err)
		assert.Equal(t, domain.ProfileStatusNoData, s.Status)
		assert.Equal(t, "No preference data yet. React to some articles to build your profile!", s.Message)
		assert.Nil(t, s.LastUpdated)
		assert.Empty(t, s.TopCategories)
	})
}
