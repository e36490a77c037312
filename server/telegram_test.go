package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/server/mocks"
)

func callbackUpdate(chatID int64, data string) string {
	return fmt.Sprintf(`{"update_id":1,"callback_query":{"id":"cb-1","data":%q,"from":{"id":%d},
		"message":{"message_id":777,"chat":{"id":%d}}}}`, data, chatID, chatID)
}

func TestServer_TelegramWebhook(t *testing.T) {
	users := &mocks.UserStoreMock{
		GetUserByTelegramChatFunc: func(ctx context.Context, chatID string) (*domain.UserChannelConfig, error) {
			switch chatID {
			case "42":
				return &domain.UserChannelConfig{UserID: "u1", TelegramChatID: "42"}, nil
			case "13":
				return nil, errors.New("db locked")
			}
			return nil, domain.ErrNotFound
		},
	}
	reactions := map[string]domain.ReactionType{}
	prefs := &mocks.PreferencesMock{RecordReactionFunc: func(ctx context.Context, r domain.Reaction) (domain.ReactionResult, error) {
		if r.MessageRef != "rec-1" {
			return domain.ReactionResult{}, fmt.Errorf("nothing to react on: %w", domain.ErrValidation)
		}
		if reactions[r.MessageRef] == r.Type {
			reactions[r.MessageRef] = domain.ReactionNone
			return domain.ReactionResult{Cleared: true, RecordID: "rec-1"}, nil
		}
		reactions[r.MessageRef] = r.Type
		return domain.ReactionResult{Applied: true, RecordID: "rec-1"}, nil
	}}
	bot := &mocks.TelegramBotMock{AnswerCallbackFunc: func(ctx context.Context, callbackID, text string) error { return nil }}
	srv := New(Params{Config: testConfig(), Users: users, Preferences: prefs, Telegram: bot})

	lastAnswer := func() string {
		calls := bot.AnswerCallbackCalls()
		require.NotEmpty(t, calls)
		return calls[len(calls)-1].Text
	}

	t.Run("like applied", func(t *testing.T) {
		w := do(t, srv, "POST", "/api/v1/telegram/webhook", callbackUpdate(42, "reaction_like_rec-1"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "applied", decode[map[string]string](t, w)["status"])
		r := prefs.RecordReactionCalls()[0].R
		assert.Equal(t, domain.Reaction{UserID: "u1", Type: domain.ReactionLike, MessageRef: "rec-1"}, r)
		assert.Equal(t, "cb-1", bot.AnswerCallbackCalls()[0].CallbackID)
		assert.Equal(t, "👍 Thanks for your feedback!", lastAnswer())
	})

	t.Run("same button again clears", func(t *testing.T) {
		w := do(t, srv, "POST", "/api/v1/telegram/webhook", callbackUpdate(42, "reaction_like_rec-1"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cleared", decode[map[string]string](t, w)["status"])
		assert.Equal(t, "Reaction removed", lastAnswer())
	})

	t.Run("dislike", func(t *testing.T) {
		w := do(t, srv, "POST", "/api/v1/telegram/webhook", callbackUpdate(42, "reaction_dislike_rec-1"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "👎 Thanks for your feedback!", lastAnswer())
	})

	t.Run("unknown record", func(t *testing.T) {
		w := do(t, srv, "POST", "/api/v1/telegram/webhook", callbackUpdate(42, "reaction_like_gone"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "not_found", decode[map[string]string](t, w)["status"])
		assert.Equal(t, "Article not found", lastAnswer())
	})

	t.Run("unknown chat", func(t *testing.T) {
		calls := len(prefs.RecordReactionCalls())
		w := do(t, srv, "POST", "/api/v1/telegram/webhook", callbackUpdate(7, "reaction_like_rec-1"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "unknown_chat", decode[map[string]string](t, w)["status"])
		assert.Len(t, prefs.RecordReactionCalls(), calls)
	})

	t.Run("store error still acknowledged", func(t *testing.T) {
		w := do(t, srv, "POST", "/api/v1/telegram/webhook", callbackUpdate(13, "reaction_like_rec-1"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "error", decode[map[string]string](t, w)["status"])
		assert.Equal(t, "Error processing reaction", lastAnswer())
	})

	t.Run("ignored updates", func(t *testing.T) {
		answers := len(bot.AnswerCallbackCalls())
		for _, body := range []string{`{"update_id":2,"message":{"text":"/start"}}`, callbackUpdate(42, "menu_settings"), `{`} {
			w := do(t, srv, "POST", "/api/v1/telegram/webhook", body)
			require.Equal(t, http.StatusOK, w.Code, body)
			assert.Equal(t, "ignored", decode[map[string]string](t, w)["status"], body)
		}
		assert.Len(t, bot.AnswerCallbackCalls(), answers)
	})

	t.Run("info", func(t *testing.T) {
		w := do(t, srv, "GET", "/api/v1/telegram/webhook", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestServer_TelegramWebhookSecret(t *testing.T) {
	users := &mocks.UserStoreMock{
		GetUserByTelegramChatFunc: func(ctx context.Context, chatID string) (*domain.UserChannelConfig, error) {
			return &domain.UserChannelConfig{UserID: "u1"}, nil
		},
	}
	prefs := &mocks.PreferencesMock{RecordReactionFunc: func(ctx context.Context, r domain.Reaction) (domain.ReactionResult, error) {
		return domain.ReactionResult{Applied: true, RecordID: r.MessageRef}, nil
	}}
	// no bot, reactions are recorded without answering
	srv := New(Params{Config: testConfig(), Users: users, Preferences: prefs, TelegramSecret: "s3cret"})

	send := func(secret string) int {
		req := httptest.NewRequest("POST", "/api/v1/telegram/webhook", strings.NewReader(callbackUpdate(42, "reaction_like_r1")))
		if secret != "" {
			req.Header.Set("X-Telegram-Bot-Api-Secret-Token", secret)
		}
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, send(""))
	assert.Equal(t, http.StatusUnauthorized, send("wrong"))
	assert.Empty(t, prefs.RecordReactionCalls())

	assert.Equal(t, http.StatusOK, send("s3cret"))
	require.Len(t, prefs.RecordReactionCalls(), 1)
	assert.Equal(t, "r1", prefs.RecordReactionCalls()[0].R.MessageRef)
}
