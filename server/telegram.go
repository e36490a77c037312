package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdrop/pkg/channel"
	"github.com/umputun/newsdrop/pkg/domain"
)

const tgSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

func (s *Server) telegramWebhookInfoHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "message": "telegram webhook endpoint is active"})
}

// telegramWebhookHandler ingests like/dislike button presses. Any update that passed the secret check
// is acknowledged with 200, otherwise telegram keeps redelivering it.
func (s *Server) telegramWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if s.tgSecret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(tgSecretHeader)), []byte(s.tgSecret)) != 1 {
		renderJSON(w, r, http.StatusUnauthorized, map[string]string{"error": "invalid webhook secret"})
		return
	}

	update := channel.TelegramUpdate{}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		lgr.Printf("[WARN] invalid telegram update: %v", err)
		renderJSON(w, r, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}
	q := update.CallbackQuery
	if q == nil {
		renderJSON(w, r, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}
	reaction, recordID, ok := channel.ParseCallback(q.Data)
	if !ok {
		lgr.Printf("[DEBUG] unsupported telegram callback %q", q.Data)
		renderJSON(w, r, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	answer, status := s.telegramReaction(r.Context(), q.ChatID(), reaction, recordID)
	if s.telegram != nil {
		if err := s.telegram.AnswerCallback(r.Context(), q.ID, answer); err != nil {
			lgr.Printf("[WARN] failed to answer telegram callback %s: %v", q.ID, err)
		}
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": status})
}

// telegramReaction records the reaction of the chat's user on the record,
// returns the text shown to the user and the webhook response status
func (s *Server) telegramReaction(ctx context.Context, chatID string, reaction domain.ReactionType, recordID string) (answer, status string) {
	user, err := s.users.GetUserByTelegramChat(ctx, chatID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			lgr.Printf("[WARN] telegram reaction from chat %s: %v", chatID, err)
			return "Error processing reaction", "error"
		}
		return "Please register to leave feedback", "unknown_chat"
	}

	res, err := s.preferences.RecordReaction(ctx, domain.Reaction{UserID: user.UserID, Type: reaction, MessageRef: recordID})
	switch {
	case errors.Is(err, domain.ErrValidation), err == nil && res.RecordID == "":
		lgr.Printf("[INFO] telegram reaction of %s on unknown record %s", user.UserID, recordID)
		return "Article not found", "not_found"
	case err != nil:
		lgr.Printf("[WARN] telegram reaction of %s on %s: %v", user.UserID, recordID, err)
		return "Error processing reaction", "error"
	case res.Cleared:
		return "Reaction removed", "cleared"
	case reaction == domain.ReactionLike:
		return "👍 Thanks for your feedback!", "applied"
	default:
		return "👎 Thanks for your feedback!", "applied"
	}
}
