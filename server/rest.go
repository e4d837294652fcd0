package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cybernews-agent/cybernews/pkg/agent"
	"github.com/cybernews-agent/cybernews/pkg/notify"
	"github.com/cybernews-agent/cybernews/pkg/report"
	"github.com/cybernews-agent/cybernews/pkg/scheduler"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	if res, ok := s.cache.Get(r.Context()); ok {
		status["last_run"] = res.Timestamp
		status["total_items"] = res.TotalItems
	}
	renderJSON(w, r, http.StatusOK, status)
}

// newsHandler returns the latest pipeline result
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.latest(r.Context()))
}

// searchHandler filters the latest items by the q parameter
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := agent.Search(query, s.latest(r.Context()).NewsItems)
	renderJSON(w, r, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
		"total":   len(results),
	})
}

// digestHandler returns the daily digest of the latest result
func (s *Server) digestHandler(w http.ResponseWriter, r *http.Request) {
	res := s.latest(r.Context())
	renderJSON(w, r, http.StatusOK, map[string]any{
		"digest":    res.DailyDigest,
		"timestamp": res.Timestamp,
	})
}

// refreshHandler runs the pipeline regardless of the cached result
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	res := s.refresh(r.Context())
	log.Printf("[INFO] pipeline refreshed via api, %s", agent.Summary(res))
	renderJSON(w, r, http.StatusOK, map[string]any{
		"run_id":         res.RunID,
		"total_items":    res.TotalItems,
		"severity_stats": res.SeverityStats,
		"timestamp":      res.Timestamp,
	})
}

// exportJSONHandler sends the latest items as a json report
func (s *Server) exportJSONHandler(w http.ResponseWriter, r *http.Request) {
	res := s.latest(r.Context())
	data, err := s.reporter.JSON(r.Context(), res.NewsItems)
	if err != nil {
		log.Printf("[ERROR] failed to make json report: %v", err)
		renderError(w, r, errors.New("failed to generate report"), http.StatusInternalServerError)
		return
	}
	s.sendFile(w, "application/json", exportName(res.Timestamp, "json"), data)
}

// exportPDFHandler sends the latest items as a pdf report
func (s *Server) exportPDFHandler(w http.ResponseWriter, r *http.Request) {
	res := s.latest(r.Context())
	title := r.URL.Query().Get("title")
	if title == "" {
		title = report.DefaultPDFTitle
	}
	data, err := s.reporter.PDF(r.Context(), res.NewsItems, title)
	if err != nil {
		log.Printf("[ERROR] failed to make pdf report: %v", err)
		renderError(w, r, errors.New("failed to generate report"), http.StatusInternalServerError)
		return
	}
	s.sendFile(w, "application/pdf", exportName(res.Timestamp, "pdf"), data)
}

// exportEmailHandler returns the email digest for the latest items
func (s *Server) exportEmailHandler(w http.ResponseWriter, r *http.Request) {
	res := s.latest(r.Context())
	msg, err := s.reporter.Email(res.NewsItems)
	if err != nil {
		log.Printf("[ERROR] failed to make email digest: %v", err)
		renderError(w, r, errors.New("failed to generate email"), http.StatusInternalServerError)
		return
	}
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(msg.Body)); err != nil {
			log.Printf("[WARN] failed to write email body: %v", err)
		}
		return
	}
	renderJSON(w, r, http.StatusOK, msg)
}

// subscribeHandler adds an email subscriber
func (s *Server) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	added, err := s.notifier.Subscribe(r.Context(), email)
	if err != nil {
		if errors.Is(err, notify.ErrInvalidEmail) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		log.Printf("[ERROR] failed to subscribe %s: %v", email, err)
		renderError(w, r, errors.New("failed to subscribe"), http.StatusInternalServerError)
		return
	}

	msg := "subscribed successfully"
	if !added {
		msg = "already subscribed"
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"subscribed": added, "message": msg})
}

// unsubscribeHandler removes an email subscriber
func (s *Server) unsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	removed, err := s.notifier.Unsubscribe(r.Context(), email)
	if err != nil {
		log.Printf("[ERROR] failed to unsubscribe %s: %v", email, err)
		renderError(w, r, errors.New("failed to unsubscribe"), http.StatusInternalServerError)
		return
	}
	if !removed {
		renderError(w, r, errors.New("email not found"), http.StatusNotFound)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"unsubscribed": true})
}

// notificationsHandler reports delivery configuration and scheduler state
func (s *Server) notificationsHandler(w http.ResponseWriter, r *http.Request) {
	st := s.notifier.Status(r.Context())
	resp := map[string]any{
		"email_configured":   st.EmailConfigured,
		"webhook_configured": st.WebhookConfigured,
		"subscriber_count":   st.SubscriberCount,
		"scheduler_running":  s.scheduler.Running(),
		"schedule":           s.scheduler.Spec(),
	}
	if next := s.scheduler.NextRun(); !next.IsZero() {
		resp["next_run"] = next
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// testNotificationHandler sends a test notification through every configured channel
func (s *Server) testNotificationHandler(w http.ResponseWriter, r *http.Request) {
	if !s.deliveryConfigured(r.Context()) {
		renderError(w, r, errors.New("notifications are not configured"), http.StatusBadRequest)
		return
	}
	if err := s.notifier.SendTest(r.Context()); err != nil {
		log.Printf("[WARN] test notification failed: %v", err)
		renderError(w, r, fmt.Errorf("test notification failed: %w", err), http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"sent": true})
}

// startNotificationsHandler starts the daily scheduler
func (s *Server) startNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.deliveryConfigured(r.Context()) {
		renderError(w, r, errors.New("notifications are not configured"), http.StatusBadRequest)
		return
	}
	// scheduler outlives the request, it runs under the server context
	if err := s.scheduler.Start(s.serverCtx()); err != nil {
		if errors.Is(err, scheduler.ErrAlreadyRunning) {
			renderError(w, r, err, http.StatusConflict)
			return
		}
		log.Printf("[ERROR] failed to start scheduler: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"running": true, "next_run": s.scheduler.NextRun()})
}

// stopNotificationsHandler stops the daily scheduler
func (s *Server) stopNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	s.scheduler.Stop()
	renderJSON(w, r, http.StatusOK, map[string]any{"running": false})
}

func (s *Server) deliveryConfigured(ctx context.Context) bool {
	st := s.notifier.Status(ctx)
	return st.EmailConfigured || st.WebhookConfigured
}

func (s *Server) sendFile(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := w.Write(data); err != nil {
		log.Printf("[WARN] failed to write %s: %v", name, err)
	}
}

func exportName(ts time.Time, ext string) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return fmt.Sprintf("cybernews-%s.%s", ts.Format("20060102-1504"), ext)
}

// emailParam reads email from a json body or a form value
func emailParam(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", errors.New("invalid request body")
		}
		return strings.TrimSpace(req.Email), nil
	}
	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		return "", errors.New("email is required")
	}
	return email, nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
