package channel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-pkgz/email"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdrop/pkg/dispatch"
	"github.com/umputun/newsdrop/pkg/domain"
)

type fakeMailer struct {
	text   string
	params email.Params
	err    error
	delay  time.Duration

	mu    sync.Mutex
	calls int
}

func (f *fakeMailer) Send(text string, params email.Params) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	time.Sleep(f.delay)
	f.text, f.params = text, params
	return f.err
}

func (f *fakeMailer) sendCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestEmail_Send(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		m := &fakeMailer{}
		e := &Email{sender: m, from: "news@example.com"}
		assert.Equal(t, domain.ChannelEmail, e.Channel())

		ref, err := e.Send(context.Background(), dispatch.Message{Destination: "u1@example.com", Subject: "subj", Body: "body"})
		require.NoError(t, err)
		assert.Empty(t, ref)
		assert.Equal(t, "body", m.text)
		assert.Equal(t, "news@example.com", m.params.From)
		assert.Equal(t, []string{"u1@example.com"}, m.params.To)
		assert.Equal(t, "subj", m.params.Subject)
	})

	t.Run("default subject", func(t *testing.T) {
		m := &fakeMailer{}
		e := &Email{sender: m}
		_, err := e.Send(context.Background(), dispatch.Message{Destination: "u1@example.com", Body: "body"})
		require.NoError(t, err)
		assert.Equal(t, "Notification", m.params.Subject)
	})

	t.Run("smtp error", func(t *testing.T) {
		e := &Email{sender: &fakeMailer{err: errors.New("550 rejected")}}
		_, err := e.Send(context.Background(), dispatch.Message{Destination: "u1@example.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "550 rejected")
	})

	t.Run("context deadline", func(t *testing.T) {
		e := &Email{sender: &fakeMailer{delay: 500 * time.Millisecond}}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := e.Send(ctx, dispatch.Message{Destination: "u1@example.com"})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("canceled context doesn't start a send", func(t *testing.T) {
		m := &fakeMailer{}
		e := &Email{sender: m}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := e.Send(ctx, dispatch.Message{Destination: "u1@example.com", Body: "body"})
		require.ErrorIs(t, err, context.Canceled)
		time.Sleep(10 * time.Millisecond)
		assert.Equal(t, 0, m.sendCalls())
	})

	t.Run("constructor", func(t *testing.T) {
		e := NewEmail(EmailParams{Host: "localhost", Port: 2525, From: "news@example.com", Username: "user", Password: "pass"})
		assert.NotNil(t, e.sender)
		assert.Equal(t, "news@example.com", e.from)
	})
}

func TestTelegram_Send(t *testing.T) {
	var got tgSendRequest
	var path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got.ChatID == "bad" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":12345}}`))
	}))
	defer ts.Close()

	tg := NewTelegram(TelegramParams{Token: "tkn", APIURL: ts.URL, RPS: 100})
	assert.Equal(t, domain.ChannelTelegram, tg.Channel())

	t.Run("ok with reaction buttons", func(t *testing.T) {
		ref, err := tg.Send(context.Background(), dispatch.Message{Destination: "42", Body: "hello", RecordID: "r1"})
		require.NoError(t, err)
		assert.Equal(t, "12345", ref)
		assert.Equal(t, "/bottkn/sendMessage", path)
		assert.Equal(t, "42", got.ChatID)
		assert.Equal(t, "hello", got.Text)
		require.NotNil(t, got.ReplyMarkup)
		require.Len(t, got.ReplyMarkup.InlineKeyboard, 1)
		require.Len(t, got.ReplyMarkup.InlineKeyboard[0], 2)
		assert.Equal(t, "reaction_like_r1", got.ReplyMarkup.InlineKeyboard[0][0].CallbackData)
		assert.Equal(t, "reaction_dislike_r1", got.ReplyMarkup.InlineKeyboard[0][1].CallbackData)
	})

	t.Run("no buttons without record", func(t *testing.T) {
		got = tgSendRequest{}
		_, err := tg.Send(context.Background(), dispatch.Message{Destination: "42", Body: "hello"})
		require.NoError(t, err)
		assert.Nil(t, got.ReplyMarkup)
	})

	t.Run("api error", func(t *testing.T) {
		_, err := tg.Send(context.Background(), dispatch.Message{Destination: "bad", Body: "hello"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chat not found")
	})

	t.Run("no token", func(t *testing.T) {
		_, err := NewTelegram(TelegramParams{APIURL: ts.URL}).Send(context.Background(), dispatch.Message{Destination: "42"})
		require.Error(t, err)
	})

	t.Run("buttons parse back to the record", func(t *testing.T) {
		_, err := tg.Send(context.Background(), dispatch.Message{Destination: "42", Body: "hello", RecordID: "rec-9"})
		require.NoError(t, err)
		for i, want := range []domain.ReactionType{domain.ReactionLike, domain.ReactionDislike} {
			reaction, id, ok := ParseCallback(got.ReplyMarkup.InlineKeyboard[0][i].CallbackData)
			require.True(t, ok)
			assert.Equal(t, want, reaction)
			assert.Equal(t, "rec-9", id)
		}
	})
}

func TestTelegram_AnswerCallback(t *testing.T) {
	var path string
	var got map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got["callback_query_id"] == "expired" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: query is too old"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	defer ts.Close()

	tg := NewTelegram(TelegramParams{Token: "tkn", APIURL: ts.URL})
	require.NoError(t, tg.AnswerCallback(context.Background(), "cb1", "Thanks!"))
	assert.Equal(t, "/bottkn/answerCallbackQuery", path)
	assert.Equal(t, map[string]string{"callback_query_id": "cb1", "text": "Thanks!"}, got)

	err := tg.AnswerCallback(context.Background(), "expired", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is too old")
}

func TestParseCallback(t *testing.T) {
	tbl := []struct {
		data     string
		reaction domain.ReactionType
		id       string
		ok       bool
	}{
		{"reaction_like_abc-1", domain.ReactionLike, "abc-1", true},
		{"reaction_dislike_abc-1", domain.ReactionDislike, "abc-1", true},
		{"reaction_like_", domain.ReactionLike, "", false},
		{"menu_settings", domain.ReactionNone, "", false},
		{"", domain.ReactionNone, "", false},
	}
	for _, tt := range tbl {
		t.Run(tt.data, func(t *testing.T) {
			reaction, id, ok := ParseCallback(tt.data)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reaction, reaction)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestTelegramCallbackQuery_ChatID(t *testing.T) {
	var q TelegramUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"update_id":1,"callback_query":{"id":"cb","data":"reaction_like_r1",
		"from":{"id":11},"message":{"message_id":777,"chat":{"id":-100500}}}}`), &q))
	require.NotNil(t, q.CallbackQuery)
	assert.Equal(t, "-100500", q.CallbackQuery.ChatID())

	q.CallbackQuery.Message = nil
	assert.Equal(t, "11", q.CallbackQuery.ChatID())
}

func TestGateway_Send(t *testing.T) {
	var got gatewayRequest
	var auth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		switch got.To {
		case "+0":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":"invalid number"}`))
		case "+1":
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`{"id":"msg-77"}`))
		}
	}))
	defer ts.Close()

	gw := NewGateway(GatewayParams{Channel: domain.ChannelWhatsApp, URL: ts.URL, Token: "secret", Sender: "newsdrop", RPS: 100})
	assert.Equal(t, domain.ChannelWhatsApp, gw.Channel())

	t.Run("ok", func(t *testing.T) {
		ref, err := gw.Send(context.Background(), dispatch.Message{Destination: "+15550001", Subject: "s", Body: "b"})
		require.NoError(t, err)
		assert.Equal(t, "msg-77", ref)
		assert.Equal(t, "Bearer secret", auth)
		assert.Equal(t, gatewayRequest{Channel: "whatsapp", From: "newsdrop", To: "+15550001", Subject: "s", Text: "b"}, got)
	})

	t.Run("error with details", func(t *testing.T) {
		_, err := gw.Send(context.Background(), dispatch.Message{Destination: "+0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid number")
	})

	t.Run("error without body", func(t *testing.T) {
		_, err := gw.Send(context.Background(), dispatch.Message{Destination: "+1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("no url", func(t *testing.T) {
		_, err := NewGateway(GatewayParams{Channel: domain.ChannelSMS}).Send(context.Background(), dispatch.Message{Destination: "+1"})
		require.Error(t, err)
	})
}

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPush_Send(t *testing.T) {
	w := &fakeWriter{}
	p := &Push{writer: w}
	assert.Equal(t, domain.ChannelApp, p.Channel())

	ref, err := p.Send(context.Background(), dispatch.Message{Destination: "u1", UserID: "u1", RecordID: "r1", Subject: "s", Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, "r1", ref)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "u1", string(w.msgs[0].Key))

	var ev PushEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, "u1", ev.UserID)
	assert.Equal(t, "r1", ev.RecordID)
	assert.Equal(t, "s", ev.Subject)
	assert.Equal(t, "b", ev.Body)

	w.err = errors.New("broker down")
	_, err = p.Send(context.Background(), dispatch.Message{Destination: "u1"})
	require.Error(t, err)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)

	assert.NotNil(t, NewPush([]string{"localhost:9092"}, "notifications").writer)
}

func TestLog_Send(t *testing.T) {
	l := NewLog(domain.ChannelSMS)
	assert.Equal(t, domain.ChannelSMS, l.Channel())
	ref, err := l.Send(context.Background(), dispatch.Message{Destination: "+1", RecordID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "r1", ref)
}
