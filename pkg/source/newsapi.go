package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/time/rate"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

// NewsAPIOpts defines the structured news API connector settings
type NewsAPIOpts struct {
	APIKey         string
	BaseURL        string
	SearchTerms    []string
	TrustedSources []string
	MaxSources     int
	RequestDelay   time.Duration // between broad search calls
	SourceDelay    time.Duration // between curated source calls
	Timeout        time.Duration
	UserAgent      string
}

// NewsAPI collects articles from a NewsAPI.org compatible service
type NewsAPI struct {
	opts      NewsAPIOpts
	client    *http.Client
	relevance *Relevance
}

type newsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type newsAPISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
	Sources  []newsAPISource  `json:"sources"`
}

// sourceNameHints select curated sources by name
var sourceNameHints = []string{"security", "cyber", "tech", "computer"}

// NewNewsAPI makes the connector, an empty api key makes it serve placeholder items
func NewNewsAPI(opts NewsAPIOpts) *NewsAPI {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://newsapi.org/v2"
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.MaxSources <= 0 {
		opts.MaxSources = 3
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &NewsAPI{
		opts:      opts,
		client:    &http.Client{Timeout: opts.Timeout},
		relevance: NewRelevance(Vocabulary),
	}
}

// Name of the connector
func (n *NewsAPI) Name() string { return "newsapi" }

// Fetch runs broad search, tech headlines and curated sources sub-fetches, each asked for a third of maxItems
func (n *NewsAPI) Fetch(ctx context.Context, maxItems int) []domain.NewsItem {
	if n.opts.APIKey == "" {
		lgr.Printf("[WARN] newsapi key not configured, using placeholder items")
		return placeholderItems(newsPlaceholders, maxItems, "https://example.com/news/%d", "mock", "cybersecurity")
	}

	subFetches := []struct {
		name string
		fn   func(ctx context.Context, limit int) ([]domain.NewsItem, error)
	}{
		{"everything", n.fetchSearch},
		{"top-headlines", n.fetchHeadlines},
		{"sources", n.fetchSources},
	}

	share := max(1, maxItems/len(subFetches))
	var all []domain.NewsItem
	for _, sf := range subFetches {
		items, err := sf.fn(ctx, share)
		if err != nil {
			lgr.Printf("[WARN] newsapi %s: %v", sf.name, err)
		}
		all = append(all, items...)
	}

	res := capItems(n.relevance.FilterUnique(all), maxItems)
	lgr.Printf("[INFO] newsapi collected %d items (%d raw)", len(res), len(all))
	return res
}

// fetchSearch queries the everything endpoint for each search term
func (n *NewsAPI) fetchSearch(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	pacer := newPacer(n.opts.RequestDelay)
	var items []domain.NewsItem
	var errs []error
	for _, term := range n.opts.SearchTerms {
		params := url.Values{
			"q":        {term},
			"language": {"en"},
			"sortBy":   {"publishedAt"},
			"pageSize": {strconv.Itoa(min(20, limit))},
		}
		articles, err := n.articles(ctx, pacer, "/everything", params)
		if err != nil {
			errs = append(errs, fmt.Errorf("term %q: %w", term, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		items = append(items, n.toItems(articles, false)...)
	}
	return items, errors.Join(errs...)
}

// fetchHeadlines queries technology top headlines, only relevant articles are kept
func (n *NewsAPI) fetchHeadlines(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	params := url.Values{
		"category": {"technology"},
		"language": {"en"},
		"pageSize": {strconv.Itoa(min(20, limit))},
	}
	articles, err := n.articles(ctx, nil, "/top-headlines", params)
	if err != nil {
		return nil, err
	}
	return n.toItems(articles, true), nil
}

// fetchSources discovers curated technology sources and queries each of them
func (n *NewsAPI) fetchSources(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	resp, err := n.get(ctx, "/top-headlines/sources", url.Values{"category": {"technology"}, "language": {"en"}})
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	ids := make([]string, 0, n.opts.MaxSources)
	for _, src := range resp.Sources {
		if len(ids) >= n.opts.MaxSources {
			break
		}
		if n.curated(src) {
			ids = append(ids, src.ID)
		}
	}
	lgr.Printf("[DEBUG] newsapi curated sources: %v", ids)

	pacer := newPacer(n.opts.SourceDelay)
	var items []domain.NewsItem
	var errs []error
	for _, id := range ids {
		params := url.Values{
			"sources":  {id},
			"language": {"en"},
			"sortBy":   {"publishedAt"},
			"pageSize": {strconv.Itoa(min(10, limit))},
		}
		articles, err := n.articles(ctx, pacer, "/everything", params)
		if err != nil {
			errs = append(errs, fmt.Errorf("source %s: %w", id, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		items = append(items, n.toItems(articles, true)...)
	}
	return items, errors.Join(errs...)
}

func (n *NewsAPI) curated(src newsAPISource) bool {
	if slices.Contains(n.opts.TrustedSources, src.ID) {
		return true
	}
	name := strings.ToLower(src.Name)
	for _, hint := range sourceNameHints {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}

func (n *NewsAPI) articles(ctx context.Context, pacer *rate.Limiter, path string, params url.Values) ([]newsAPIArticle, error) {
	if pacer != nil {
		if err := pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limit: %w", err)
		}
	}
	resp, err := n.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	return resp.Articles, nil
}

// toItems converts articles, dropping ones without title or url
func (n *NewsAPI) toItems(articles []newsAPIArticle, onlyRelevant bool) []domain.NewsItem {
	items := make([]domain.NewsItem, 0, len(articles))
	for _, a := range articles {
		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}
		item, err := domain.NewNewsItem(a.Title, a.Description, a.URL, source, parseTime(a.PublishedAt))
		if err != nil {
			continue
		}
		if onlyRelevant && !n.relevance.Relevant(item) {
			continue
		}
		items = append(items, item)
	}
	return items
}

func (n *NewsAPI) get(ctx context.Context, path string, params url.Values) (*newsAPIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.opts.BaseURL+path+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", n.opts.APIKey)
	if n.opts.UserAgent != "" {
		req.Header.Set("User-Agent", n.opts.UserAgent)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	var res newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, path)
		}
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK || res.Status != "ok" {
		return nil, fmt.Errorf("%s failed with status %d: %s %s", path, resp.StatusCode, res.Code, res.Message)
	}
	return &res, nil
}
