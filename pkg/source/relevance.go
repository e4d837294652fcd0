// Package source implements the news connectors: a structured news API, rss feeds
// with direct site scraping, and a discussion platform. Connectors never fail, they
// log errors and return whatever they managed to collect.
package source

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

// Vocabulary is the shared cybersecurity relevance vocabulary, lower-cased
var Vocabulary = []string{
	"cyberattack", "cyber attack", "ransomware", "malware", "phishing", "breach",
	"vulnerability", "exploit", "cve", "zero-day", "apt", "threat", "security",
	"infosec", "cybersecurity", "hack", "hacker", "data breach", "incident response",
	"soc", "siem", "firewall", "intrusion", "backdoor", "trojan", "botnet", "ddos",
}

// Relevance is a keyword OR-gate deciding whether an item is about cybersecurity
type Relevance struct {
	mu      sync.Mutex // matcher keeps per-call state and is not safe for concurrent use
	matcher *ahocorasick.Matcher
}

// NewRelevance builds the matcher for the given keywords
func NewRelevance(keywords []string) *Relevance {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			normalized = append(normalized, kw)
		}
	}
	return &Relevance{matcher: ahocorasick.NewStringMatcher(normalized)}
}

// Relevant reports whether title or content contains any keyword
func (r *Relevance) Relevant(item domain.NewsItem) bool {
	text := strings.ToLower(item.Title + " " + item.Content)
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matcher.Match([]byte(text))) > 0
}

// Filter keeps relevant items, order preserved
func (r *Relevance) Filter(items []domain.NewsItem) []domain.NewsItem {
	res := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		if r.Relevant(item) {
			res = append(res, item)
		}
	}
	return res
}

// FilterUnique keeps relevant items with a title not seen before, the first occurrence wins
func (r *Relevance) FilterUnique(items []domain.NewsItem) []domain.NewsItem {
	res := make([]domain.NewsItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := item.TitleKey()
		if _, ok := seen[key]; ok {
			continue
		}
		if !r.Relevant(item) {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, item)
	}
	return res
}

func capItems(items []domain.NewsItem, n int) []domain.NewsItem {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
