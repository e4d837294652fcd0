package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/cybernews-agent/cybernews/pkg/repository"
)

// historyHandler lists recent pipeline runs, ?limit= caps the list
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			renderError(w, r, errors.New("limit must be a positive number"), http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] failed to get run history: %v", err)
		renderError(w, r, errors.New("failed to get history"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"runs": runs, "total": len(runs)})
}

// historyRunHandler returns the full result of a past run
func (s *Server) historyRunHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.history.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, errors.New("run not found"), http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to get run: %v", err)
		renderError(w, r, errors.New("failed to get run"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}
