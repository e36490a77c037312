package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/pkg/recommend"
)

// recommendationItem is a ranked article in API responses
type recommendationItem struct {
	Fingerprint string     `json:"fingerprint"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Link        string     `json:"link"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Score       float64    `json:"score"`
	Breakdown   struct {
		Category float64 `json:"category"`
		Source   float64 `json:"source"`
		Keyword  float64 `json:"keyword"`
		Recency  float64 `json:"recency"`
	} `json:"breakdown"`
	Explanation string `json:"explanation"`
	ColdStart   bool   `json:"coldStart,omitempty"`
}

type recommendationsResponse struct {
	UserID          string               `json:"userId"`
	Categories      []string             `json:"categories"`
	Count           int                  `json:"count"`
	Recommendations []recommendationItem `json:"recommendations"`
}

// reactRequest is the body of POST /recommendations/{userId}/react
type reactRequest struct {
	Reaction string `json:"reaction"`
	Category string `json:"category"`
	Source   string `json:"source"`
	Title    string `json:"title"`
	Ref      string `json:"ref"`
}

// recommendationsHandler returns ranked unseen articles for the user.
// Query: categories (comma separated, default all known), limit.
func (s *Server) recommendationsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	limit, err := queryLimit(r, s.recommendLimit)
	if err != nil {
		renderError(w, r, err)
		return
	}

	categories := splitList(r.URL.Query().Get("categories"))
	if len(categories) == 0 {
		if categories, err = s.knownCategories(r); err != nil {
			renderError(w, r, err)
			return
		}
	}

	ranked, err := s.recommender.Recommend(r.Context(), recommend.Request{UserID: userID, Categories: categories, Limit: limit})
	if err != nil {
		renderError(w, r, fmt.Errorf("recommend for %s: %w", userID, err))
		return
	}

	resp := recommendationsResponse{UserID: userID, Categories: categories, Count: len(ranked),
		Recommendations: make([]recommendationItem, 0, len(ranked))}
	for _, sa := range ranked {
		resp.Recommendations = append(resp.Recommendations, toRecommendationItem(sa))
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// profileHandler returns the preference summary of the user
func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.preferences.Summary(r.Context(), r.PathValue("userId"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, summary)
}

// reactHandler records like or dislike of an article
func (s *Server) reactHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	req := reactRequest{}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	reaction := domain.Reaction{
		UserID:     userID,
		Type:       domain.ReactionType(strings.ToLower(strings.TrimSpace(req.Reaction))),
		Category:   req.Category,
		Source:     req.Source,
		Title:      req.Title,
		MessageRef: req.Ref,
	}
	if reaction.MessageRef == "" && reaction.Category == "" && reaction.Source == "" && reaction.Title == "" {
		renderError(w, r, fmt.Errorf("category, source, title or ref is required: %w", domain.ErrValidation))
		return
	}

	res, err := s.preferences.RecordReaction(r.Context(), reaction)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{
		"status":   "ok",
		"userId":   userID,
		"reaction": reaction.Type,
		"applied":  res.Applied,
		"cleared":  res.Cleared,
		"recordId": res.RecordID,
	})
}

// applyDecayHandler decays all profiles now
func (s *Server) applyDecayHandler(w http.ResponseWriter, r *http.Request) {
	n, err := s.preferences.ApplyDecay(r.Context())
	if err != nil {
		renderError(w, r, fmt.Errorf("apply decay: %w", err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "profiles": n})
}

// knownCategories lists categories with stored articles, falling back to the built-in list
func (s *Server) knownCategories(r *http.Request) ([]string, error) {
	if s.categories != nil {
		cats, err := s.categories.Categories(r.Context())
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		if len(cats) > 0 {
			return cats, nil
		}
	}
	return s.defaultCats, nil
}

func toRecommendationItem(sa recommend.ScoredArticle) recommendationItem {
	a := sa.Article
	item := recommendationItem{
		Fingerprint: a.Fingerprint,
		Category:    a.Category,
		Title:       a.Title,
		Description: a.Description,
		Link:        a.Link,
		Source:      a.Source,
		Score:       sa.Score,
		Explanation: sa.Explanation,
		ColdStart:   sa.ColdStart,
	}
	if a.HasPublished() {
		published := a.PublishedAt
		item.PublishedAt = &published
	}
	item.Breakdown.Category = sa.CategoryScore
	item.Breakdown.Source = sa.SourceScore
	item.Breakdown.Keyword = sa.KeywordScore
	item.Breakdown.Recency = sa.RecencyScore
	return item
}

// splitList splits comma separated values, skipping empty ones
func splitList(v string) []string {
	var res []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}
