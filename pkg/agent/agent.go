// Package agent runs the news pipeline: it collects items from all sources, classifies them,
// builds the digest and groups the result by category and severity.
package agent

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source
//go:generate moq -out mocks/classifier.go -pkg mocks -skip-ensure -fmt goimports . Classifier
//go:generate moq -out mocks/digest_builder.go -pkg mocks -skip-ensure -fmt goimports . DigestBuilder

// Source fetches relevant items from one external source family. Failures are handled
// inside the source and show up as fewer or no items.
type Source interface {
	Name() string
	Fetch(ctx context.Context, maxItems int) []domain.NewsItem
}

// Classifier assigns summary, category, severity and tags to items
type Classifier interface {
	ClassifyItems(ctx context.Context, items []domain.NewsItem) []domain.NewsItem
}

// DigestBuilder makes the daily digest text
type DigestBuilder interface {
	Digest(ctx context.Context, items []domain.NewsItem) string
}

// Agent owns the fixed list of sources and the pipeline stages
type Agent struct {
	sources    []Source
	classifier Classifier
	reporter   DigestBuilder
	timeout    time.Duration
}

// Option configures an Agent
type Option func(*Agent)

// WithTimeout bounds a whole pipeline run, zero means no bound
func WithTimeout(d time.Duration) Option {
	return func(a *Agent) { a.timeout = d }
}

// New makes an agent
func New(sources []Source, classifier Classifier, reporter DigestBuilder, opts ...Option) *Agent {
	a := &Agent{sources: sources, classifier: classifier, reporter: reporter}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Collect asks every source for its share of maxItems, merges results in source order,
// drops items with repeated titles and truncates to maxItems
func (a *Agent) Collect(ctx context.Context, maxItems int) []domain.NewsItem {
	if len(a.sources) == 0 || maxItems <= 0 {
		return []domain.NewsItem{}
	}
	share := maxItems / len(a.sources)

	slots := make([][]domain.NewsItem, len(a.sources))
	var g errgroup.Group
	g.SetLimit(len(a.sources))
	for i, src := range a.sources {
		g.Go(func() error {
			slots[i] = a.fetch(ctx, src, share)
			return nil
		})
	}
	_ = g.Wait()

	var merged []domain.NewsItem
	for _, items := range slots {
		merged = append(merged, items...)
	}
	res := Dedup(merged)
	if len(res) > maxItems {
		res = res[:maxItems]
	}
	lgr.Printf("[INFO] collected %d items from %d sources (%d before dedup)", len(res), len(a.sources), len(merged))
	return res
}

func (a *Agent) fetch(ctx context.Context, src Source, share int) (res []domain.NewsItem) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] source %s panicked: %v\n%s", src.Name(), r, debug.Stack())
			res = nil
		}
	}()
	st := time.Now()
	res = src.Fetch(ctx, share)
	lgr.Printf("[DEBUG] source %s returned %d items in %v", src.Name(), len(res), time.Since(st))
	return res
}

// RunFullPipeline collects, classifies, digests and groups items. It never fails,
// an unexpected panic in any stage gives an empty result.
func (a *Agent) RunFullPipeline(ctx context.Context, maxItems int) (res domain.PipelineResult) {
	runID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] pipeline run %s failed: %v\n%s", runID, r, debug.Stack())
			res = EmptyResult(runID)
		}
	}()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	st := time.Now()
	lgr.Printf("[INFO] pipeline run %s started, max items %d", runID, maxItems)

	items := a.Collect(ctx, maxItems)
	items = a.classifier.ClassifyItems(ctx, items)
	digest := a.reporter.Digest(ctx, items)

	res = domain.PipelineResult{
		RunID:           runID,
		NewsItems:       items,
		CategorizedNews: Categorize(items),
		DailyDigest:     digest,
		SeverityStats:   SeverityStats(items),
		TotalItems:      len(items),
		Timestamp:       time.Now(),
	}
	lgr.Printf("[INFO] pipeline run %s completed: %d items in %v", runID, res.TotalItems, time.Since(st))
	return res
}

// EmptyResult makes a well-formed result with no items
func EmptyResult(runID string) domain.PipelineResult {
	return domain.PipelineResult{
		RunID:           runID,
		NewsItems:       []domain.NewsItem{},
		CategorizedNews: Categorize(nil),
		DailyDigest:     "",
		SeverityStats:   SeverityStats(nil),
		TotalItems:      0,
		Timestamp:       time.Now(),
	}
}

// Dedup keeps the first item for every normalized title, order is preserved
func Dedup(items []domain.NewsItem) []domain.NewsItem {
	seen := make(map[string]struct{}, len(items))
	res := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		key := item.TitleKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, item)
	}
	return res
}

// Search returns items with query in title, content or any tag, ignoring case.
// An empty query matches everything.
func Search(query string, items []domain.NewsItem) []domain.NewsItem {
	q := strings.ToLower(strings.TrimSpace(query))
	res := []domain.NewsItem{}
	for _, item := range items {
		if q == "" || matches(item, q) {
			res = append(res, item)
		}
	}
	return res
}

func matches(item domain.NewsItem, q string) bool {
	if strings.Contains(strings.ToLower(item.Title), q) || strings.Contains(strings.ToLower(item.Content), q) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Categorize buckets items into all fixed categories, unknown values go to General
func Categorize(items []domain.NewsItem) map[domain.Category][]domain.NewsItem {
	res := make(map[domain.Category][]domain.NewsItem, len(domain.Categories))
	for _, c := range domain.Categories {
		res[c] = []domain.NewsItem{}
	}
	for _, item := range items {
		c := domain.ParseCategory(string(item.Category))
		res[c] = append(res[c], item)
	}
	return res
}

// SeverityStats counts items per severity tier, unknown values count as Medium
func SeverityStats(items []domain.NewsItem) map[domain.Severity]int {
	res := make(map[domain.Severity]int, len(domain.Severities))
	for _, s := range domain.Severities {
		res[s] = 0
	}
	for _, item := range items {
		res[domain.ParseSeverity(string(item.Severity))]++
	}
	return res
}

// Summary is a short human readable description of a result
func Summary(res domain.PipelineResult) string {
	return fmt.Sprintf("%d items, high: %d, medium: %d, low: %d", res.TotalItems,
		res.SeverityStats[domain.SeverityHigh], res.SeverityStats[domain.SeverityMedium], res.SeverityStats[domain.SeverityLow])
}
