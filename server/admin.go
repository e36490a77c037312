package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/pkg/scheduler"
)

// broadcastRequest is the body of POST /admin/broadcast/all and /admin/broadcast/selected
type broadcastRequest struct {
	UserIDs []string `json:"userIds"`
	Subject string   `json:"subject"`
	Message string   `json:"message"`
}

// adminStatsHandler returns aggregated delivery statistics
func (s *Server) adminStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.notifications.DeliveryStats(r.Context(), time.Now())
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

func (s *Server) broadcastAllHandler(w http.ResponseWriter, r *http.Request) {
	req := broadcastRequest{}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	s.broadcast(w, r, scheduler.BroadcastMessage{Subject: req.Subject, Message: req.Message})
}

// broadcastSelectedHandler sends to the listed users only, ids without a registered user are reported back
func (s *Server) broadcastSelectedHandler(w http.ResponseWriter, r *http.Request) {
	req := broadcastRequest{}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	ids := make([]string, 0, len(req.UserIDs))
	for _, id := range req.UserIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		renderError(w, r, fmt.Errorf("no user ids: %w", domain.ErrValidation))
		return
	}
	s.broadcast(w, r, scheduler.BroadcastMessage{UserIDs: ids, Subject: req.Subject, Message: req.Message})
}

func (s *Server) broadcast(w http.ResponseWriter, r *http.Request, msg scheduler.BroadcastMessage) {
	res, err := s.sender.Broadcast(r.Context(), msg)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}
