package server

import (
	"errors"
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/pkg/scheduler"
)

// sendRequest is the body of POST /notifications
type sendRequest struct {
	UserID  string `json:"userId"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// listNotificationsHandler returns the most recent delivery records
func (s *Server) listNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, defaultListLimit)
	if err != nil {
		renderError(w, r, err)
		return
	}
	recs, err := s.notifications.ListDeliveries(r.Context(), limit)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, nonNil(recs))
}

// userNotificationsHandler returns delivery records of a single user
func (s *Server) userNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, defaultListLimit)
	if err != nil {
		renderError(w, r, err)
		return
	}
	recs, err := s.notifications.ListUserDeliveries(r.Context(), r.PathValue("userId"), limit)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, nonNil(recs))
}

func (s *Server) getNotificationHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := s.notifications.GetDelivery(r.Context(), r.PathValue("id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, rec)
}

// deleteNotificationHandler removes a record. Deleting a missing record is not an error.
func (s *Server) deleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.notifications.DeleteDelivery(r.Context(), id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sendNotificationHandler sends a free-form message to the user's channels and returns the stored record
func (s *Server) sendNotificationHandler(w http.ResponseWriter, r *http.Request) {
	req := sendRequest{}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	rec, err := s.sender.Send(r.Context(), scheduler.ManualMessage{UserID: req.UserID, Subject: req.Subject, Message: req.Message})
	if err != nil {
		if rec == nil {
			renderError(w, r, err)
			return
		}
		// message went out but the final record state wasn't saved
		lgr.Printf("[WARN] manual notification %s: %v", rec.ID, err)
	}
	renderJSON(w, r, http.StatusCreated, rec)
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
