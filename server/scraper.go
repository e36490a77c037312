package server

import (
	"net/http"
	"sort"

	"github.com/umputun/newsdrop/pkg/recommend"
)

// scrapeHandler runs a collection of every configured feed and returns its stats
func (s *Server) scrapeHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.scraper.Collect(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

func (s *Server) scrapeCategoryHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.scraper.CollectCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

// articleCountsHandler returns the number of stored articles per category, covering configured
// categories without articles as well
func (s *Server) articleCountsHandler(w http.ResponseWriter, r *http.Request) {
	stored, err := s.categories.Categories(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	cats := map[string]bool{}
	for _, c := range append(stored, s.scraper.Categories()...) {
		cats[recommend.NormalizeCategory(c)] = true
	}
	names := make([]string, 0, len(cats))
	for c := range cats {
		names = append(names, c)
	}
	sort.Strings(names)

	counts := make(map[string]int, len(names))
	for _, c := range names {
		n, err := s.articles.CountByCategory(r.Context(), c)
		if err != nil {
			renderError(w, r, err)
			return
		}
		counts[c] = n
	}
	renderJSON(w, r, http.StatusOK, counts)
}

func (s *Server) articleCountHandler(w http.ResponseWriter, r *http.Request) {
	cat := recommend.NormalizeCategory(r.PathValue("category"))
	n, err := s.articles.CountByCategory(r.Context(), cat)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"category": cat, "count": n})
}

// cleanupHandler removes articles older than the configured retention
func (s *Server) cleanupHandler(w http.ResponseWriter, r *http.Request) {
	removed, err := s.scraper.Cleanup(r.Context(), s.retention)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "removed": removed})
}
