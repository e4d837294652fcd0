package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

// Generator creates RSS feeds from classified news items
type Generator struct {
	baseURL string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/")}
}

// GenerateRSS creates an RSS 2.0 feed. Empty category means all items.
func (g *Generator) GenerateRSS(items []domain.NewsItem, category domain.Category) (string, error) {
	title := "Cyber News - All Categories"
	selfLink := g.baseURL + "/rss"
	if category != "" {
		title = "Cyber News - " + string(category)
		selfLink += "?category=" + url.QueryEscape(string(category))
	}

	rssItems := make([]*RSSItem, 0, len(items))
	for _, item := range items {
		if category != "" && item.Category != category {
			continue
		}
		rssItems = append(rssItems, g.convertToRSSItem(item))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   "Classified cybersecurity news",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

func (g *Generator) convertToRSSItem(item domain.NewsItem) *RSSItem {
	desc := fmt.Sprintf("Severity: %s | Category: %s | Source: %s", item.Severity, item.Category, item.Source)
	switch {
	case item.Summary != "":
		desc += "\n\n" + item.Summary
	case item.Content != "":
		desc += "\n\n" + item.Content
	}

	return &RSSItem{
		Title:       fmt.Sprintf("[%s] %s", item.Severity, item.Title),
		Link:        item.URL,
		GUID:        item.URL,
		Description: desc,
		PubDate:     item.PublishedAt.Format(time.RFC1123Z),
		Categories:  append([]string{string(item.Category)}, item.Tags...),
	}
}
