package source

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/cybernews-agent/cybernews/pkg/content"
	"github.com/cybernews-agent/cybernews/pkg/domain"
	"github.com/cybernews-agent/cybernews/pkg/feed"
)

// FeedParser parses rss/atom feeds
type FeedParser interface {
	Parse(ctx context.Context, url string) (*feed.Feed, error)
}

// PageFetcher loads html pages and article bodies
type PageFetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
	Extract(ctx context.Context, url string) (string, error)
}

// WebOpts defines the rss and scraping connector settings
type WebOpts struct {
	Feeds            []string
	Sites            []string
	PerFeedLimit     int
	PerSiteLimit     int
	FeedDelay        time.Duration
	SiteDelay        time.Duration
	MaxContentLength int
	Timeout          time.Duration
	UserAgent        string
}

// Web collects items from rss feeds and from site front pages
type Web struct {
	opts      WebOpts
	feeds     FeedParser
	pages     PageFetcher
	relevance *Relevance
}

// articleSelectors locate article candidates on a front page, in priority order
var articleSelectors = []string{"article", ".article", ".post", ".news-item", ".story", "h2 a", "h3 a", ".headline a"}

const dateSelectors = "time, .date, .published, .timestamp, [datetime]"

type scrapedArticle struct {
	title     string
	url       string
	published time.Time
}

// NewWeb makes the connector with the default feed parser and page fetcher
func NewWeb(opts WebOpts) *Web {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxContentLength <= 0 {
		opts.MaxContentLength = 2000
	}
	return NewWebWith(opts,
		feed.NewParser(opts.Timeout, content.DefaultUserAgent),
		content.NewHTTPExtractor(opts.Timeout, content.DefaultUserAgent, opts.MaxContentLength))
}

// NewWebWith makes the connector with custom feed parser and page fetcher
func NewWebWith(opts WebOpts, feeds FeedParser, pages PageFetcher) *Web {
	if opts.PerFeedLimit <= 0 {
		opts.PerFeedLimit = 5
	}
	if opts.PerSiteLimit <= 0 {
		opts.PerSiteLimit = 3
	}
	return &Web{opts: opts, feeds: feeds, pages: pages, relevance: NewRelevance(Vocabulary)}
}

// Name of the connector
func (w *Web) Name() string { return "web" }

// Fetch collects half of maxItems from feeds and half from scraped sites, then drops irrelevant items
func (w *Web) Fetch(ctx context.Context, maxItems int) []domain.NewsItem {
	half := maxItems / 2
	rss := w.fetchFeeds(ctx, half)
	direct := w.fetchSites(ctx, half)

	all := make([]domain.NewsItem, 0, len(rss)+len(direct))
	all = append(all, rss...)
	all = append(all, direct...)
	res := capItems(w.relevance.Filter(all), maxItems)
	lgr.Printf("[INFO] web collected %d items (rss %d, sites %d)", len(res), len(rss), len(direct))
	return res
}

func (w *Web) fetchFeeds(ctx context.Context, limit int) []domain.NewsItem {
	items := []domain.NewsItem{}
	pacer := newPacer(w.opts.FeedDelay)
	for _, feedURL := range w.opts.Feeds {
		if len(items) >= limit {
			break
		}
		if err := pacer.Wait(ctx); err != nil {
			lgr.Printf("[WARN] stop reading feeds: %v", err)
			break
		}
		parsed, err := w.feeds.Parse(ctx, feedURL)
		if err != nil {
			lgr.Printf("[WARN] feed %s: %v", feedURL, err)
			continue
		}
		for i, entry := range parsed.Entries {
			if i >= w.opts.PerFeedLimit {
				break
			}
			item, err := domain.NewNewsItem(entry.Title, entry.Description, entry.Link, feedURL, entry.Published)
			if err != nil {
				continue
			}
			items = append(items, item)
		}
	}
	return capItems(items, limit)
}

func (w *Web) fetchSites(ctx context.Context, limit int) []domain.NewsItem {
	items := []domain.NewsItem{}
	pacer := newPacer(w.opts.SiteDelay)
	for _, siteURL := range w.opts.Sites {
		if len(items) >= limit {
			break
		}
		if err := pacer.Wait(ctx); err != nil {
			lgr.Printf("[WARN] stop scraping sites: %v", err)
			break
		}
		doc, err := w.pages.Document(ctx, siteURL)
		if err != nil {
			lgr.Printf("[WARN] site %s: %v", siteURL, err)
			continue
		}
		articles := extractArticles(doc, siteURL)
		for i, a := range articles {
			if i >= w.opts.PerSiteLimit {
				break
			}
			body, err := w.pages.Extract(ctx, a.url)
			if err != nil {
				lgr.Printf("[DEBUG] article body %s: %v", a.url, err)
			}
			item, err := domain.NewNewsItem(a.title, content.Truncate(body, w.opts.MaxContentLength), a.url, siteURL, a.published)
			if err != nil {
				continue
			}
			items = append(items, item)
		}
	}
	return capItems(items, limit)
}

// extractArticles finds article links on a front page, selectors are applied in order and
// a link found by several selectors is kept once
func extractArticles(doc *goquery.Document, siteURL string) []scrapedArticle {
	base := doc.Url
	if base == nil {
		base, _ = url.Parse(siteURL)
	}

	var res []scrapedArticle
	seen := map[string]struct{}{}
	for _, sel := range articleSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			link := s
			if goquery.NodeName(s) != "a" {
				link = s.Find("a").First()
			}
			title := content.CollapseSpaces(link.Text())
			href, _ := link.Attr("href")
			href = strings.TrimSpace(href)
			if title == "" || href == "" {
				return
			}
			articleURL := resolveURL(base, href)
			if articleURL == "" {
				return
			}
			if _, ok := seen[articleURL]; ok {
				return
			}
			seen[articleURL] = struct{}{}
			res = append(res, scrapedArticle{title: title, url: articleURL, published: publishedDate(s)})
		})
	}
	return res
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	return ref.String()
}

// publishedDate looks for a date inside the article element, zero time when not found
func publishedDate(s *goquery.Selection) time.Time {
	node := s.Find(dateSelectors).First()
	if node.Length() == 0 {
		return time.Time{}
	}
	if dt, ok := node.Attr("datetime"); ok {
		if t := parseTime(dt); !t.IsZero() {
			return t
		}
	}
	return parseTime(node.Text())
}
