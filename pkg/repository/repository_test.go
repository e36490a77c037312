package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdrop/pkg/domain"
)

func setupTestRepos(t *testing.T) *Repositories {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	require.NoError(t, repos.Ping(context.Background()))
	return repos
}

func TestArticleRepository(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	t.Run("save and dedup by fingerprint within category", func(t *testing.T) {
		a := &domain.Article{Category: "sports", Title: "Match report", Link: "https://example.com/1",
			Source: "BBC Sport", PublishedAt: now.Add(-2 * time.Hour)}
		inserted, err := repos.Article.SaveArticle(ctx, a)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.NotZero(t, a.ID)
		assert.Equal(t, "SPORTS", a.Category)
		assert.Equal(t, domain.Fingerprint("Match report", "https://example.com/1"), a.Fingerprint)

		dup := &domain.Article{Category: "SPORTS", Title: "Match report", Link: "https://example.com/1"}
		inserted, err = repos.Article.SaveArticle(ctx, dup)
		require.NoError(t, err)
		assert.False(t, inserted)

		// same article in another partition is a separate entry
		other := &domain.Article{Category: "NEWS", Title: "Match report", Link: "https://example.com/1"}
		inserted, err = repos.Article.SaveArticle(ctx, other)
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("get by category ordered by publish time", func(t *testing.T) {
		_, err := repos.Article.SaveArticle(ctx, &domain.Article{Category: "SPORTS", Title: "Newest",
			Link: "https://example.com/2", PublishedAt: now.Add(-time.Hour)})
		require.NoError(t, err)
		_, err = repos.Article.SaveArticle(ctx, &domain.Article{Category: "SPORTS", Title: "Undated",
			Link: "https://example.com/3"})
		require.NoError(t, err)

		articles, err := repos.Article.GetByCategory(ctx, "sports", 10)
		require.NoError(t, err)
		require.Len(t, articles, 3)
		assert.Equal(t, "Newest", articles[0].Title)
		assert.Equal(t, "Match report", articles[1].Title)
		assert.Equal(t, "BBC Sport", articles[1].Source)
		assert.True(t, articles[1].PublishedAt.Equal(now.Add(-2*time.Hour)))
		assert.Equal(t, "Undated", articles[2].Title)
		assert.False(t, articles[2].HasPublished())

		limited, err := repos.Article.GetByCategory(ctx, "SPORTS", 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		count, err := repos.Article.CountByCategory(ctx, "SPORTS")
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		empty, err := repos.Article.GetByCategory(ctx, "TRAVEL", 10)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("categories", func(t *testing.T) {
		cats, err := repos.Article.Categories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"NEWS", "SPORTS"}, cats)
	})

	t.Run("delete older than", func(t *testing.T) {
		_, err := repos.Article.SaveArticle(ctx, &domain.Article{Category: "TECHNOLOGY", Title: "Old",
			Link: "https://example.com/old", IngestedAt: now.Add(-96 * time.Hour)})
		require.NoError(t, err)

		deleted, err := repos.Article.DeleteOlderThan(ctx, now.Add(-72*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		count, err := repos.Article.CountByCategory(ctx, "TECHNOLOGY")
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestProfileRepository(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	t.Run("missing profile", func(t *testing.T) {
		_, err := repos.Profile.GetProfile(ctx, "nobody")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("update creates profile lazily", func(t *testing.T) {
		err := repos.Profile.UpdateProfile(ctx, "u1", func(p *domain.PreferenceProfile) error {
			p.CategoryScores["SPORTS"] += 1
			p.SourceScores["bbc"] += 1
			p.KeywordScores["india"] += 1
			p.TotalLikes++
			return nil
		})
		require.NoError(t, err)

		p, err := repos.Profile.GetProfile(ctx, "u1")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, p.CategoryScores["SPORTS"], 1e-9)
		assert.InDelta(t, 1.0, p.SourceScores["bbc"], 1e-9)
		assert.InDelta(t, 1.0, p.KeywordScores["india"], 1e-9)
		assert.Equal(t, 1, p.TotalLikes)
		assert.InDelta(t, domain.DefaultDecayFactor, p.DecayFactor, 1e-9)
		assert.False(t, p.LastUpdatedAt.IsZero())
	})

	t.Run("update error keeps stored profile", func(t *testing.T) {
		err := repos.Profile.UpdateProfile(ctx, "u1", func(p *domain.PreferenceProfile) error {
			p.CategoryScores["SPORTS"] = 100
			return errors.New("boom")
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")

		p, err := repos.Profile.GetProfile(ctx, "u1")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, p.CategoryScores["SPORTS"], 1e-9)
	})

	t.Run("concurrent updates are not lost", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := repos.Profile.UpdateProfile(ctx, "u2", func(p *domain.PreferenceProfile) error {
					p.CategoryScores["NEWS"] -= 1
					p.TotalDislikes++
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		p, err := repos.Profile.GetProfile(ctx, "u2")
		require.NoError(t, err)
		assert.InDelta(t, -10.0, p.CategoryScores["NEWS"], 1e-9)
		assert.Equal(t, 10, p.TotalDislikes)
	})

	t.Run("save and list", func(t *testing.T) {
		p := domain.NewPreferenceProfile("u3")
		p.DecayFactor = 0.5
		require.NoError(t, repos.Profile.SaveProfile(ctx, p))

		got, err := repos.Profile.GetProfile(ctx, "u3")
		require.NoError(t, err)
		assert.InDelta(t, 0.5, got.DecayFactor, 1e-9)
		assert.Empty(t, got.CategoryScores)

		ids, err := repos.Profile.ListUserIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"u1", "u2", "u3"}, ids)
	})
}

func TestDeliveryRepository(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	rec := &domain.DeliveryRecord{
		UserID:             "u1",
		ArticleFingerprint: "fp1",
		Category:           "SPORTS",
		Source:             "BBC Sport",
		Title:              "India wins test match",
		Subject:            "SPORTS: India wins test match",
		Message:            "body",
		Channels:           []domain.Channel{domain.ChannelEmail, domain.ChannelTelegram},
	}

	t.Run("create pending", func(t *testing.T) {
		require.NoError(t, repos.Delivery.CreateDelivery(ctx, rec))
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, domain.StatusPending, rec.Status)

		got, err := repos.Delivery.GetDelivery(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, got.Status)
		assert.Equal(t, []domain.Channel{domain.ChannelEmail, domain.ChannelTelegram}, got.Channels)
		assert.Nil(t, got.SentAt)
		assert.Equal(t, "India wins test match", got.Title)
	})

	t.Run("duplicate user and article rejected", func(t *testing.T) {
		err := repos.Delivery.CreateDelivery(ctx, &domain.DeliveryRecord{UserID: "u1", ArticleFingerprint: "fp1"})
		require.ErrorIs(t, err, domain.ErrDuplicate)

		// another user may receive the same article
		require.NoError(t, repos.Delivery.CreateDelivery(ctx, &domain.DeliveryRecord{UserID: "u2", ArticleFingerprint: "fp1"}))
	})

	t.Run("manual sends have no fingerprint and no dedup", func(t *testing.T) {
		require.NoError(t, repos.Delivery.CreateDelivery(ctx, &domain.DeliveryRecord{UserID: "u1", Message: "hello"}))
		require.NoError(t, repos.Delivery.CreateDelivery(ctx, &domain.DeliveryRecord{UserID: "u1", Message: "hello"}))
	})

	t.Run("complete moves pending to terminal once", func(t *testing.T) {
		sent := time.Now()
		rec.Status = domain.StatusSent
		rec.SentAt = &sent
		rec.Channels = []domain.Channel{domain.ChannelTelegram}
		rec.ChannelMessageRef = "app-ref"
		rec.ChannelRefs = map[domain.Channel]string{domain.ChannelApp: "app-ref", domain.ChannelTelegram: "tg-42"}
		require.NoError(t, repos.Delivery.CompleteDelivery(ctx, rec))

		got, err := repos.Delivery.GetDelivery(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSent, got.Status)
		require.NotNil(t, got.SentAt)
		assert.Equal(t, "app-ref", got.ChannelMessageRef)
		assert.Equal(t, map[domain.Channel]string{domain.ChannelApp: "app-ref", domain.ChannelTelegram: "tg-42"}, got.ChannelRefs)
		assert.Equal(t, []domain.Channel{domain.ChannelTelegram}, got.Channels)

		rec.Status = domain.StatusFailed
		err = repos.Delivery.CompleteDelivery(ctx, rec)
		require.Error(t, err)
		got, err = repos.Delivery.GetDelivery(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSent, got.Status)
	})

	t.Run("complete requires terminal status", func(t *testing.T) {
		err := repos.Delivery.CompleteDelivery(ctx, &domain.DeliveryRecord{ID: rec.ID, Status: domain.StatusPending})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("complete unknown record", func(t *testing.T) {
		err := repos.Delivery.CompleteDelivery(ctx, &domain.DeliveryRecord{ID: "missing", Status: domain.StatusSent})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("lookup by ref", func(t *testing.T) {
		// primary ref, a ref of any other channel and the record id itself all correlate
		for _, ref := range []string{"app-ref", "tg-42", rec.ID} {
			got, err := repos.Delivery.GetDeliveryByRef(ctx, "u1", ref)
			require.NoError(t, err, ref)
			assert.Equal(t, rec.ID, got.ID, ref)
		}

		_, err := repos.Delivery.GetDeliveryByRef(ctx, "u1", "tg-43")
		require.ErrorIs(t, err, domain.ErrNotFound)

		_, err = repos.Delivery.GetDeliveryByRef(ctx, "u2", "tg-42")
		require.ErrorIs(t, err, domain.ErrNotFound)
		_, err = repos.Delivery.GetDeliveryByRef(ctx, "u2", rec.ID)
		require.ErrorIs(t, err, domain.ErrNotFound, "record id of another user")
		_, err = repos.Delivery.GetDeliveryByRef(ctx, "u1", "")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delivered subset", func(t *testing.T) {
		res, err := repos.Delivery.Delivered(ctx, "u1", []string{"fp1", "fp2", "fp3"})
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"fp1": true}, res)

		res, err = repos.Delivery.Delivered(ctx, "u3", nil)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("reaction set and cleared", func(t *testing.T) {
		require.NoError(t, repos.Delivery.SetReaction(ctx, rec.ID, domain.ReactionLike))
		got, err := repos.Delivery.GetDelivery(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReactionLike, got.Reaction)

		require.NoError(t, repos.Delivery.SetReaction(ctx, rec.ID, domain.ReactionNone))
		got, err = repos.Delivery.GetDelivery(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReactionNone, got.Reaction)

		require.ErrorIs(t, repos.Delivery.SetReaction(ctx, "missing", domain.ReactionLike), domain.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		all, err := repos.Delivery.ListDeliveries(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, all, 4)

		mine, err := repos.Delivery.ListUserDeliveries(ctx, "u1", 100)
		require.NoError(t, err)
		assert.Len(t, mine, 3)
		for _, d := range mine {
			assert.Equal(t, "u1", d.UserID)
		}
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repos.Delivery.DeleteDelivery(ctx, rec.ID))
		_, err := repos.Delivery.GetDelivery(ctx, rec.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.ErrorIs(t, repos.Delivery.DeleteDelivery(ctx, rec.ID), domain.ErrNotFound)
	})
}

func TestUserRepository(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	t.Run("save with default interval", func(t *testing.T) {
		cfg := &domain.UserChannelConfig{
			UserID:     "u1",
			Categories: []string{"sports", "News"},
			Channels:   []domain.Channel{domain.ChannelEmail},
			Email:      "u1@example.com",
		}
		require.NoError(t, repos.User.SaveUser(ctx, cfg))

		got, err := repos.User.GetUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"SPORTS", "NEWS"}, got.Categories)
		assert.Equal(t, []domain.Channel{domain.ChannelEmail}, got.Channels)
		assert.Equal(t, "u1@example.com", got.Email)
		assert.Equal(t, domain.DefaultNotificationInterval, got.NotificationIntervalMinutes)
		assert.Nil(t, got.LastNotificationSentAt)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repos.User.GetUser(ctx, "nobody")
		require.ErrorIs(t, err, domain.ErrNotFound)
		err = repos.User.UpdateLastNotificationSent(ctx, "nobody", time.Now())
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("last notification kept on update", func(t *testing.T) {
		sent := time.Now().Add(-time.Hour).Truncate(time.Second)
		require.NoError(t, repos.User.UpdateLastNotificationSent(ctx, "u1", sent))

		require.NoError(t, repos.User.SaveUser(ctx, &domain.UserChannelConfig{UserID: "u1",
			Channels: []domain.Channel{domain.ChannelTelegram}, TelegramChatID: "123", NotificationIntervalMinutes: 30}))

		got, err := repos.User.GetUser(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, got.LastNotificationSentAt)
		assert.True(t, got.LastNotificationSentAt.Equal(sent))
		assert.Equal(t, 30, got.NotificationIntervalMinutes)
		assert.Equal(t, "123", got.TelegramChatID)
		assert.Empty(t, got.Categories)
	})

	t.Run("by telegram chat", func(t *testing.T) {
		got, err := repos.User.GetUserByTelegramChat(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.UserID)

		_, err = repos.User.GetUserByTelegramChat(ctx, "999")
		require.ErrorIs(t, err, domain.ErrNotFound)
		_, err = repos.User.GetUserByTelegramChat(ctx, "")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("get all", func(t *testing.T) {
		for i := 2; i <= 3; i++ {
			require.NoError(t, repos.User.SaveUser(ctx, &domain.UserChannelConfig{UserID: fmt.Sprintf("u%d", i)}))
		}
		users, err := repos.User.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "u1", users[0].UserID)
		assert.Equal(t, "u3", users[2].UserID)
	})
}

func TestDeliveryRepository_Stats(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	sentAt := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}
	recs := []*domain.DeliveryRecord{
		{UserID: "u1", ArticleFingerprint: "fp1", Channels: []domain.Channel{domain.ChannelEmail, domain.ChannelTelegram},
			Status: domain.StatusSent, SentAt: sentAt(time.Hour), Reaction: domain.ReactionLike},
		{UserID: "u1", ArticleFingerprint: "fp2", Channels: []domain.Channel{domain.ChannelTelegram},
			Status: domain.StatusSent, SentAt: sentAt(3 * 24 * time.Hour), Reaction: domain.ReactionDislike},
		{UserID: "u2", ArticleFingerprint: "fp1", Channels: []domain.Channel{domain.ChannelEmail},
			Status: domain.StatusSent, SentAt: sentAt(20 * 24 * time.Hour)},
		{UserID: "u3", ArticleFingerprint: "fp3", Channels: []domain.Channel{domain.ChannelSMS}, Status: domain.StatusFailed},
		{UserID: "u3", Message: "manual", Status: domain.StatusPending},
	}
	for i, r := range recs {
		r.CreatedAt = now.Add(-time.Duration(len(recs)-i) * time.Minute)
		require.NoError(t, repos.Delivery.CreateDelivery(ctx, r))
	}

	stats, err := repos.Delivery.DeliveryStats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.UniqueUsers)
	assert.Equal(t, map[domain.DeliveryStatus]int{domain.StatusSent: 3, domain.StatusFailed: 1, domain.StatusPending: 1},
		stats.ByStatus)
	assert.Equal(t, map[domain.Channel]int{domain.ChannelEmail: 2, domain.ChannelTelegram: 2, domain.ChannelSMS: 1},
		stats.ByChannel)
	assert.Equal(t, 1, stats.Likes)
	assert.Equal(t, 1, stats.Dislikes)
	assert.Equal(t, 1, stats.SentLast24h)
	assert.Equal(t, 2, stats.SentLast7d)

	require.Len(t, stats.DailyBreakdown, 7)
	assert.Equal(t, domain.DailyCount{Date: "2025-06-04", Sent: 0}, stats.DailyBreakdown[0])
	assert.Equal(t, domain.DailyCount{Date: "2025-06-07", Sent: 1}, stats.DailyBreakdown[3])
	assert.Equal(t, domain.DailyCount{Date: "2025-06-10", Sent: 1}, stats.DailyBreakdown[6])

	require.Len(t, stats.Recent, 5)
	assert.Equal(t, "manual", stats.Recent[0].Message, "newest first")

	empty := setupTestRepos(t)
	stats, err = empty.Delivery.DeliveryStats(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.ByStatus)
	assert.Len(t, stats.DailyBreakdown, 7)
	assert.Empty(t, stats.Recent)
}
