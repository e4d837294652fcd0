package source

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

type article map[string]any

func newsArticle(title, desc, url string) article {
	return article{
		"source":      map[string]string{"id": "src", "name": "Test Source"},
		"title":       title,
		"description": desc,
		"url":         url,
		"publishedAt": "2024-05-01T10:00:00Z",
	}
}

func newsAPIServer(t *testing.T, headlinesStatus int) *httptest.Server {
	t.Helper()
	writeArticles := func(w http.ResponseWriter, articles ...article) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "articles": articles})
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/everything", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		q := r.URL.Query()
		switch {
		case q.Get("q") == "cybersecurity":
			assert.Equal(t, "publishedAt", q.Get("sortBy"))
			assert.Equal(t, "en", q.Get("language"))
			assert.Contains(t, []string{"1", "10"}, q.Get("pageSize"))
			writeArticles(w,
				newsArticle("Cybersecurity budget grows", "spending up", "https://n.example/a1"),
				newsArticle("", "no title", "https://n.example/a2"),
				newsArticle("Ransomware hits city", "services down", "https://n.example/a3"),
			)
		case q.Get("q") == "ransomware":
			writeArticles(w,
				newsArticle("RANSOMWARE hits city ", "duplicate", "https://n.example/a3b"),
				newsArticle("Phishing wave", "emails", "https://n.example/a4"),
				newsArticle("No url", "ransomware", ""),
			)
		case q.Get("sources") == "techcrunch":
			writeArticles(w,
				newsArticle("Startup raises funding", "Series B round", "https://n.example/a7"),
				newsArticle("Botnet takedown", "police action", "https://n.example/a8"),
			)
		case q.Get("sources") == "securityweek":
			writeArticles(w, newsArticle("Firewall vendor patches flaw", "update", "https://n.example/a9"))
		default:
			t.Errorf("unexpected everything query %v", q)
		}
	})
	mux.HandleFunc("/top-headlines", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "technology", r.URL.Query().Get("category"))
		if headlinesStatus != http.StatusOK {
			w.WriteHeader(headlinesStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "code": "rateLimited", "message": "too many requests"})
			return
		}
		writeArticles(w,
			newsArticle("New phone launched", "camera upgrades", "https://n.example/a5"),
			newsArticle("Zero-day in browser", "patch now", "https://n.example/a6"),
		)
	})
	mux.HandleFunc("/top-headlines/sources", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "sources": []map[string]string{
			{"id": "techcrunch", "name": "TechCrunch"},
			{"id": "espn", "name": "ESPN"},
			{"id": "securityweek", "name": "SW"},
		}})
	})
	return httptest.NewServer(mux)
}

func titles(items []domain.NewsItem) []string {
	res := make([]string, 0, len(items))
	for _, it := range items {
		res = append(res, it.Title)
	}
	return res
}

func TestNewsAPI_Fetch(t *testing.T) {
	srv := newsAPIServer(t, http.StatusOK)
	defer srv.Close()

	n := NewNewsAPI(NewsAPIOpts{
		APIKey:         "test-key",
		BaseURL:        srv.URL,
		SearchTerms:    []string{"cybersecurity", "ransomware"},
		TrustedSources: []string{"securityweek"},
		Timeout:        time.Second,
	})
	assert.Equal(t, "newsapi", n.Name())

	items := n.Fetch(t.Context(), 30)
	assert.Equal(t, []string{
		"Cybersecurity budget grows", "Ransomware hits city", "Phishing wave",
		"Zero-day in browser", "Botnet takedown", "Firewall vendor patches flaw",
	}, titles(items))

	first := items[0]
	assert.Equal(t, "spending up", first.Content)
	assert.Equal(t, "Test Source", first.Source)
	assert.Equal(t, "https://n.example/a1", first.URL)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), first.PublishedAt)
	assert.Equal(t, domain.CategoryGeneral, first.Category)
	assert.Equal(t, domain.SeverityMedium, first.Severity)
	assert.Equal(t, "services down", items[1].Content, "first duplicate wins")

	t.Run("capped", func(t *testing.T) {
		items := n.Fetch(t.Context(), 3)
		assert.Equal(t, []string{"Cybersecurity budget grows", "Ransomware hits city", "Phishing wave"}, titles(items))
	})
}

func TestNewsAPI_Fetch_PartialFailure(t *testing.T) {
	srv := newsAPIServer(t, http.StatusTooManyRequests)
	defer srv.Close()

	n := NewNewsAPI(NewsAPIOpts{
		APIKey: "test-key", BaseURL: srv.URL, SearchTerms: []string{"cybersecurity"},
		TrustedSources: []string{"securityweek"}, Timeout: time.Second,
	})
	items := n.Fetch(t.Context(), 30)
	assert.Equal(t, []string{
		"Cybersecurity budget grows", "Ransomware hits city", "Botnet takedown", "Firewall vendor patches flaw",
	}, titles(items))
}

func TestNewsAPI_Fetch_Unreachable(t *testing.T) {
	n := NewNewsAPI(NewsAPIOpts{APIKey: "test-key", BaseURL: "http://127.0.0.1:1", SearchTerms: []string{"x"}, Timeout: time.Second})
	items := n.Fetch(t.Context(), 10)
	assert.Empty(t, items, "credentials are set, so no placeholders")
}

func TestNewsAPI_Fetch_SearchPacing(t *testing.T) {
	srv := newsAPIServer(t, http.StatusOK)
	defer srv.Close()

	n := NewNewsAPI(NewsAPIOpts{
		APIKey: "test-key", BaseURL: srv.URL, SearchTerms: []string{"cybersecurity", "ransomware"},
		RequestDelay: 100 * time.Millisecond, Timeout: time.Second,
	})
	st := time.Now()
	items, err := n.fetchSearch(t.Context(), 10)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(st), 90*time.Millisecond)
	assert.Len(t, items, 4)
}

func TestNewsAPI_Fetch_Placeholders(t *testing.T) {
	n := NewNewsAPI(NewsAPIOpts{})
	items := n.Fetch(t.Context(), 10)
	require.Len(t, items, 5)
	assert.Equal(t, "Major Ransomware Attack Targets Healthcare Sector", items[0].Title)
	assert.Equal(t, "https://example.com/news/1", items[0].URL)
	assert.Equal(t, domain.SeverityHigh, items[0].Severity)
	assert.Equal(t, []string{"mock", "cybersecurity"}, items[0].Tags)
	assert.True(t, items[1].PublishedAt.Before(items[0].PublishedAt))

	assert.Len(t, n.Fetch(t.Context(), 2), 2)
}
