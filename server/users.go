package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/umputun/newsdrop/pkg/domain"
)

// userRequest is the body of PUT /users/{userId}
type userRequest struct {
	Categories                  []string         `json:"categories"`
	Channels                    []domain.Channel `json:"channels"`
	Email                       string           `json:"email"`
	Phone                       string           `json:"phone"`
	TelegramChatID              string           `json:"telegramChatId"`
	NotificationIntervalMinutes int              `json:"notificationIntervalMinutes"`
}

func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.GetAll(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, nonNil(users))
}

func (s *Server) getUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, user)
}

// putUserHandler registers a user or replaces its channels, categories and interval.
// The last notification time is preserved.
func (s *Server) putUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.PathValue("userId"))
	req := userRequest{}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	user, err := req.toUser(userID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	if err := s.users.SaveUser(r.Context(), user); err != nil {
		renderError(w, r, err)
		return
	}

	stored, err := s.users.GetUser(r.Context(), userID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, stored)
}

func (u userRequest) toUser(userID string) (*domain.UserChannelConfig, error) {
	if userID == "" {
		return nil, fmt.Errorf("empty user id: %w", domain.ErrValidation)
	}
	if u.NotificationIntervalMinutes < 0 {
		return nil, fmt.Errorf("negative notification interval: %w", domain.ErrValidation)
	}

	res := &domain.UserChannelConfig{
		UserID:                      userID,
		Email:                       strings.TrimSpace(u.Email),
		Phone:                       strings.TrimSpace(u.Phone),
		TelegramChatID:              strings.TrimSpace(u.TelegramChatID),
		NotificationIntervalMinutes: u.NotificationIntervalMinutes,
		Categories:                  splitList(strings.Join(u.Categories, ",")),
		Channels:                    []domain.Channel{},
	}
	if res.Categories == nil {
		res.Categories = []string{}
	}
	for _, ch := range u.Channels {
		ch = domain.Channel(strings.ToLower(strings.TrimSpace(string(ch))))
		if !ch.Valid() {
			return nil, fmt.Errorf("unknown channel %q: %w", ch, domain.ErrValidation)
		}
		res.Channels = append(res.Channels, ch)
	}
	return res, nil
}
