package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

// RedditOpts defines the discussion platform connector settings
type RedditOpts struct {
	ClientID       string
	ClientSecret   string
	TokenURL       string
	APIURL         string
	Subreddits     []string
	MaxChannels    int
	ChannelDelay   time.Duration
	MinTitleLength int
	Timeout        time.Duration
	UserAgent      string
}

// Reddit collects hot posts from security subreddits using an app-only oauth token
type Reddit struct {
	opts      RedditOpts
	client    *http.Client // nil when credentials are missing
	relevance *Relevance
}

type redditPost struct {
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// tokenEarlyExpiry refreshes the token a minute before it actually expires
const tokenEarlyExpiry = time.Minute

// NewReddit makes the connector. Without client id and secret it serves placeholder items.
// The token is requested lazily on the first call and reused until close to expiry.
func NewReddit(opts RedditOpts) *Reddit {
	if opts.TokenURL == "" {
		opts.TokenURL = "https://www.reddit.com/api/v1/access_token"
	}
	if opts.APIURL == "" {
		opts.APIURL = "https://oauth.reddit.com"
	}
	opts.APIURL = strings.TrimRight(opts.APIURL, "/")
	if opts.MaxChannels <= 0 {
		opts.MaxChannels = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "CyberNewsAgent/1.0"
	}

	r := &Reddit{opts: opts, relevance: NewRelevance(Vocabulary)}
	if opts.ClientID == "" || opts.ClientSecret == "" {
		return r
	}

	base := &http.Client{Timeout: opts.Timeout, Transport: &userAgentTransport{agent: opts.UserAgent, next: http.DefaultTransport}}
	cc := clientcredentials.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		TokenURL:     opts.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	tokens := oauth2.ReuseTokenSourceWithExpiry(nil, cc.TokenSource(tokenCtx), tokenEarlyExpiry)
	r.client = &http.Client{Timeout: opts.Timeout, Transport: &oauth2.Transport{Source: tokens, Base: base.Transport}}
	return r
}

// Name of the connector
func (r *Reddit) Name() string { return "reddit" }

// Fetch reads hot listings of the first channels, spreading maxItems evenly between them
func (r *Reddit) Fetch(ctx context.Context, maxItems int) []domain.NewsItem {
	if r.client == nil {
		lgr.Printf("[WARN] reddit credentials not configured, using placeholder items")
		return placeholderItems(redditPlaceholders, maxItems, "https://reddit.com/r/cybersecurity/comments/mock%d", "reddit", "mock", "cybersecurity")
	}

	channels := r.opts.Subreddits
	if len(channels) > r.opts.MaxChannels {
		channels = channels[:r.opts.MaxChannels]
	}
	if len(channels) == 0 {
		return []domain.NewsItem{}
	}
	perChannel := max(1, maxItems/len(channels))

	pacer := newPacer(r.opts.ChannelDelay)
	var all []domain.NewsItem
	for _, sub := range channels {
		if err := pacer.Wait(ctx); err != nil {
			lgr.Printf("[WARN] stop reading subreddits: %v", err)
			break
		}
		posts, err := r.fetchChannel(ctx, sub, perChannel)
		if err != nil {
			lgr.Printf("[WARN] subreddit %s: %v", sub, err)
			continue
		}
		all = append(all, posts...)
	}

	res := capItems(r.relevance.FilterUnique(all), maxItems)
	lgr.Printf("[INFO] reddit collected %d items (%d raw)", len(res), len(all))
	return res
}

func (r *Reddit) fetchChannel(ctx context.Context, sub string, perChannel int) ([]domain.NewsItem, error) {
	params := url.Values{"limit": {strconv.Itoa(min(25, perChannel*2))}, "raw_json": {"1"}}
	u := fmt.Sprintf("%s/r/%s/hot.json?%s", r.opts.APIURL, url.PathEscape(sub), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch hot listing: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	items := make([]domain.NewsItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		title := strings.TrimSpace(post.Title)
		if utf8.RuneCountInString(title) <= r.opts.MinTitleLength {
			continue
		}
		body := fmt.Sprintf("%s\n\n%s\n\nScore: %d, Comments: %d", title, strings.TrimSpace(post.Selftext), post.Score, post.NumComments)
		var published time.Time
		if post.CreatedUTC > 0 {
			published = time.Unix(int64(post.CreatedUTC), 0)
		}
		item, err := domain.NewNewsItem(title, body, "https://reddit.com"+post.Permalink, "Reddit r/"+sub, published)
		if err != nil {
			continue
		}
		items = append(items, item.WithTags("reddit-"+sub, "score-"+strconv.Itoa(post.Score)))
	}
	return items, nil
}

// userAgentTransport sets the user agent on every request, the platform rejects default agents
type userAgentTransport struct {
	agent string
	next  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.agent)
	return t.next.RoundTrip(r)
}
