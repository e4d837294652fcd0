package domain

import (
	"errors"
	"strings"
	"time"
)

// MaxTags is the upper bound on tags kept for a single item
const MaxTags = 5

var (
	// ErrMissingTitle is returned when an item has no title after trimming
	ErrMissingTitle = errors.New("news item title is required")
	// ErrMissingURL is returned when an item has no url after trimming
	ErrMissingURL = errors.New("news item url is required")
)

// Category is one of the fixed news categories
type Category string

// categories in scoring order, the first maximum wins a tie
const (
	CategoryLatestAttacks      Category = "Latest Attacks"
	CategoryVulnerabilities    Category = "Vulnerabilities"
	CategoryNewTools           Category = "New Tools"
	CategoryThreatIntelligence Category = "Threat Intelligence"
	CategoryGeneral            Category = "General"
)

// Categories lists all categories in their fixed order
var Categories = []Category{
	CategoryLatestAttacks,
	CategoryVulnerabilities,
	CategoryNewTools,
	CategoryThreatIntelligence,
	CategoryGeneral,
}

// ParseCategory maps free text to a category. Matching ignores case, spaces, dashes
// and underscores, so "latest_attacks" and "LatestAttacks" both resolve. Unknown values map to General.
func ParseCategory(s string) Category {
	if c, ok := LookupCategory(s); ok {
		return c
	}
	return CategoryGeneral
}

// LookupCategory is ParseCategory reporting whether s names a known category
func LookupCategory(s string) (Category, bool) {
	key := normalizeEnum(s)
	for _, c := range Categories {
		if normalizeEnum(string(c)) == key {
			return c, true
		}
	}
	return "", false
}

// Severity is the threat tier of an item
type Severity string

// severities in scoring order
const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Severities lists all severity tiers from the most to the least severe
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity maps free text to a severity, unknown values map to Medium
func ParseSeverity(s string) Severity {
	key := normalizeEnum(s)
	for _, sv := range Severities {
		if normalizeEnum(string(sv)) == key {
			return sv
		}
	}
	return SeverityMedium
}

// Rank returns a sort weight, higher is more severe
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityLow:
		return 1
	default:
		return 2
	}
}

// Analysis is the classifier output for a single item
type Analysis struct {
	Summary  string
	Category Category
	Severity Severity
	Tags     []string
}

// NewsItem is a single cybersecurity news record collected from any source
type NewsItem struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Category    Category  `json:"category"`
	Severity    Severity  `json:"severity"`
	Tags        []string  `json:"tags"`
	Summary     string    `json:"summary"`
}

// NewNewsItem makes an unclassified item with default category and severity.
// Zero published time is replaced with the current time.
func NewNewsItem(title, content, url, source string, published time.Time) (NewsItem, error) {
	title, url = strings.TrimSpace(title), strings.TrimSpace(url)
	if title == "" {
		return NewsItem{}, ErrMissingTitle
	}
	if url == "" {
		return NewsItem{}, ErrMissingURL
	}
	if published.IsZero() {
		published = time.Now()
	}
	return NewsItem{
		Title:       title,
		Content:     strings.TrimSpace(content),
		URL:         url,
		Source:      source,
		PublishedAt: published,
		Category:    CategoryGeneral,
		Severity:    SeverityMedium,
		Tags:        []string{},
	}, nil
}

// TitleKey returns the normalized title used for deduplication
func (n NewsItem) TitleKey() string {
	return strings.ToLower(strings.TrimSpace(n.Title))
}

// WithTags returns a copy of the item with tags appended, up to MaxTags
func (n NewsItem) WithTags(tags ...string) NewsItem {
	res := make([]string, 0, MaxTags)
	res = append(res, n.Tags...)
	for _, t := range tags {
		if len(res) >= MaxTags {
			break
		}
		res = append(res, t)
	}
	n.Tags = res
	return n
}

// Apply returns a copy of the item with the analysis applied
func (n NewsItem) Apply(a Analysis) NewsItem {
	n.Summary = a.Summary
	n.Category = ParseCategory(string(a.Category))
	n.Severity = ParseSeverity(string(a.Severity))
	tags := a.Tags
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	n.Tags = append([]string{}, tags...)
	return n
}

// PipelineResult is the snapshot produced by one pipeline run
type PipelineResult struct {
	RunID           string                  `json:"run_id"`
	NewsItems       []NewsItem              `json:"news_items"`
	CategorizedNews map[Category][]NewsItem `json:"categorized_news"`
	DailyDigest     string                  `json:"daily_digest"`
	SeverityStats   map[Severity]int        `json:"severity_stats"`
	TotalItems      int                     `json:"total_items"`
	Timestamp       time.Time               `json:"timestamp"`
}

// RunSummary is a short record of a past pipeline run
type RunSummary struct {
	RunID      string    `json:"run_id" db:"run_id"`
	TotalItems int       `json:"total_items" db:"total_items"`
	High       int       `json:"high" db:"high"`
	Medium     int       `json:"medium" db:"medium"`
	Low        int       `json:"low" db:"low"`
	Timestamp  time.Time `json:"timestamp" db:"ran_at"`
}

// EmailDigest is a rendered email, body is html
type EmailDigest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func normalizeEnum(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}
