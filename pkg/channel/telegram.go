package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/umputun/newsdrop/pkg/dispatch"
	"github.com/umputun/newsdrop/pkg/domain"
)

const telegramAPI = "https://api.telegram.org"

// TelegramParams configures the bot
type TelegramParams struct {
	Token   string
	APIURL  string  // optional, for tests and self-hosted bot api
	RPS     float64 // outgoing messages per second, bot api allows ~30
	Timeout time.Duration
}

// Telegram sends messages through the bot api with like/dislike buttons.
// The returned ref is the telegram message id.
type Telegram struct {
	token   string
	apiURL  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewTelegram makes a telegram adapter
func NewTelegram(p TelegramParams) *Telegram {
	if p.APIURL == "" {
		p.APIURL = telegramAPI
	}
	if p.RPS <= 0 {
		p.RPS = 25
	}
	if p.Timeout <= 0 {
		p.Timeout = 5 * time.Second
	}
	return &Telegram{
		token:   p.Token,
		apiURL:  p.APIURL,
		client:  &http.Client{Timeout: p.Timeout},
		limiter: rate.NewLimiter(rate.Limit(p.RPS), 1),
	}
}

type tgButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type tgMarkup struct {
	InlineKeyboard [][]tgButton `json:"inline_keyboard"`
}

type tgSendRequest struct {
	ChatID      string    `json:"chat_id"`
	Text        string    `json:"text"`
	ReplyMarkup *tgMarkup `json:"reply_markup,omitempty"`
}

type tgSendResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

// TelegramUpdate is the part of an incoming bot api update used for reaction callbacks
type TelegramUpdate struct {
	UpdateID      int64                  `json:"update_id"`
	CallbackQuery *TelegramCallbackQuery `json:"callback_query,omitempty"`
}

// TelegramCallbackQuery is a press of an inline keyboard button
type TelegramCallbackQuery struct {
	ID   string `json:"id"`
	Data string `json:"data"`
	From struct {
		ID int64 `json:"id"`
	} `json:"from"`
	Message *struct {
		MessageID int64 `json:"message_id"`
		Chat      struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message,omitempty"`
}

// ChatID returns the chat the pressed button belongs to, the sender id if the message is gone
func (q TelegramCallbackQuery) ChatID() string {
	if q.Message != nil && q.Message.Chat.ID != 0 {
		return strconv.FormatInt(q.Message.Chat.ID, 10)
	}
	return strconv.FormatInt(q.From.ID, 10)
}

const (
	likePrefix    = "reaction_like_"
	dislikePrefix = "reaction_dislike_"
)

// ParseCallback extracts the reaction and the delivery record id from button callback data
func ParseCallback(data string) (reaction domain.ReactionType, recordID string, ok bool) {
	switch {
	case strings.HasPrefix(data, likePrefix):
		reaction, recordID = domain.ReactionLike, strings.TrimPrefix(data, likePrefix)
	case strings.HasPrefix(data, dislikePrefix):
		reaction, recordID = domain.ReactionDislike, strings.TrimPrefix(data, dislikePrefix)
	default:
		return domain.ReactionNone, "", false
	}
	return reaction, recordID, recordID != ""
}

// Channel returns telegram channel
func (t *Telegram) Channel() domain.Channel { return domain.ChannelTelegram }

// Send posts the message to the chat in msg.Destination
func (t *Telegram) Send(ctx context.Context, msg dispatch.Message) (string, error) {
	if t.token == "" {
		return "", fmt.Errorf("telegram token not set")
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("telegram rate limit: %w", err)
	}

	req := tgSendRequest{ChatID: msg.Destination, Text: msg.Body}
	if msg.RecordID != "" {
		// reaction buttons carry the record id back in callback data
		req.ReplyMarkup = &tgMarkup{InlineKeyboard: [][]tgButton{{
			{Text: "👍 Like", CallbackData: likePrefix + msg.RecordID},
			{Text: "👎 Dislike", CallbackData: dislikePrefix + msg.RecordID},
		}}}
	}
	var resp tgSendResponse
	if err := t.call(ctx, "sendMessage", req, &resp); err != nil {
		return "", err
	}
	return strconv.FormatInt(resp.Result.MessageID, 10), nil
}

// AnswerCallback acknowledges a button press, text is shown to the user as a short notification
func (t *Telegram) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if t.token == "" {
		return fmt.Errorf("telegram token not set")
	}
	req := struct {
		CallbackQueryID string `json:"callback_query_id"`
		Text            string `json:"text,omitempty"`
	}{CallbackQueryID: callbackID, Text: text}
	var resp tgSendResponse
	return t.call(ctx, "answerCallbackQuery", req, &resp)
}

// call posts req to the bot api method and decodes the response into resp
func (t *Telegram) call(ctx context.Context, method string, req any, resp *tgSendResponse) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal telegram request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", t.apiURL, t.token, method)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("read telegram response: %w", err)
	}
	if err := json.Unmarshal(respBody, resp); err != nil {
		return fmt.Errorf("telegram %s error: %s", method, httpResp.Status)
	}
	if httpResp.StatusCode != http.StatusOK || !resp.OK {
		return fmt.Errorf("telegram %s error: %s, %s", method, httpResp.Status, resp.Description)
	}
	return nil
}
