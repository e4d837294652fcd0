package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/cybernews-agent/cybernews/pkg/domain"
	"github.com/cybernews-agent/cybernews/pkg/feed"
)

// rssHandler serves the latest items as RSS, optionally limited by ?category=
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if name := r.URL.Query().Get("category"); name != "" {
		c, ok := domain.LookupCategory(name)
		if !ok {
			renderError(w, r, fmt.Errorf("unknown category %q", name), http.StatusBadRequest)
			return
		}
		category = c
	}

	items := s.latest(r.Context()).NewsItems
	rss, err := feed.NewGenerator(s.baseURL).GenerateRSS(items, category)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
