// Package report builds artifacts from classified news items: the daily digest text,
// PDF report, HTML email digest, welcome email and JSON export.
package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/cybernews-agent/cybernews/pkg/agent"
	"github.com/cybernews-agent/cybernews/pkg/domain"
	"github.com/cybernews-agent/cybernews/pkg/llm"
)

// NoNewsDigest is the digest text for an empty item list
const NoNewsDigest = "No cybersecurity news items available for today's digest."

const topItems = 5

// AIDigester writes a narrative digest with a model, any error means "use the template"
type AIDigester interface {
	Digest(ctx context.Context, items []domain.NewsItem) (string, error)
}

// Opts configures the builder
type Opts struct {
	AppURL   string // dashboard link used in emails
	Schedule string // daily schedule as shown to subscribers
}

// Builder makes report artifacts
type Builder struct {
	ai   AIDigester
	opts Opts
	now  func() time.Time
}

// NewBuilder makes a report builder. ai may be nil, then the template digest is always used.
func NewBuilder(ai AIDigester, opts Opts) *Builder {
	if opts.AppURL == "" {
		opts.AppURL = "http://localhost:8080"
	}
	if opts.Schedule == "" {
		opts.Schedule = "0 9 * * *"
	}
	return &Builder{ai: ai, opts: opts, now: time.Now}
}

// Digest returns the daily digest text, from the model when possible and from the template otherwise
func (b *Builder) Digest(ctx context.Context, items []domain.NewsItem) string {
	if len(items) == 0 {
		return NoNewsDigest
	}
	if b.ai != nil {
		text, err := b.ai.Digest(ctx, items)
		if err == nil {
			return text
		}
		if !errors.Is(err, llm.ErrDigestDisabled) {
			lgr.Printf("[WARN] ai digest failed, using template: %v", err)
		}
	}
	return TemplateDigest(items)
}

// TemplateDigest builds the digest from counts only, it doesn't call any service
func TemplateDigest(items []domain.NewsItem) string {
	if len(items) == 0 {
		return NoNewsDigest
	}

	parts := []string{fmt.Sprintf("Today's cybersecurity landscape shows %d significant developments across multiple threat vectors.", len(items))}

	var high []domain.NewsItem
	for _, item := range items {
		if domain.ParseSeverity(string(item.Severity)) == domain.SeverityHigh {
			high = append(high, item)
		}
	}
	if len(high) > 0 {
		parts = append(parts, fmt.Sprintf("Critical alerts include %d high-severity incidents, including %s.",
			len(high), strings.ToLower(high[0].Title)))
	}

	categorized := agent.Categorize(items)
	for _, c := range domain.Categories {
		if n := len(categorized[c]); n > 0 {
			parts = append(parts, fmt.Sprintf("In %s, %d notable developments were reported.", strings.ToLower(string(c)), n))
		}
	}

	stats := agent.SeverityStats(items)
	switch {
	case stats[domain.SeverityHigh] > 0:
		parts = append(parts, "The threat landscape remains elevated with multiple high-severity incidents requiring immediate attention.")
	case stats[domain.SeverityMedium] > 0:
		parts = append(parts, "Moderate security concerns dominate today's news cycle.")
	default:
		parts = append(parts, "Today's security landscape shows relatively low immediate threats.")
	}
	return strings.Join(parts, " ")
}

// TopItems returns up to n items ordered by severity, then by publication time, newest first
func TopItems(items []domain.NewsItem, n int) []domain.NewsItem {
	res := make([]domain.NewsItem, len(items))
	copy(res, items)
	sort.SliceStable(res, func(i, j int) bool {
		ri, rj := domain.ParseSeverity(string(res[i].Severity)).Rank(), domain.ParseSeverity(string(res[j].Severity)).Rank()
		if ri != rj {
			return ri > rj
		}
		return res[i].PublishedAt.After(res[j].PublishedAt)
	})
	if len(res) > n {
		res = res[:n]
	}
	return res
}

func greeting(t time.Time) string {
	switch {
	case t.Hour() < 12:
		return "Good morning"
	case t.Hour() < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
