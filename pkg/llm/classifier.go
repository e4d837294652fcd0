package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/go-pkgz/lgr"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

const analysisSystemPrompt = "You are a cybersecurity expert analyzing news articles. Provide accurate, concise analysis."

const analysisPrompt = `Analyze this cybersecurity news article and provide:

1. A concise 2-3 sentence summary
2. Category (Latest Attacks, Vulnerabilities, New Tools, Threat Intelligence, or General)
3. Severity level (High, Medium, or Low)
4. Key tags/keywords (3-5 relevant terms)

Article:
Title: %s

Content: %s

Respond in JSON format:
{
    "summary": "Brief summary here",
    "category": "Category name",
    "severity": "Severity level",
    "tags": ["tag1", "tag2", "tag3"]
}`

const defaultMaxTokens = 500

// ClassifierOpts configures the classifier
type ClassifierOpts struct {
	RulesOnly bool // never call the model
	MaxTokens int  // completion limit for a single analysis
}

// Classifier assigns summary, category, severity and tags to news items.
// It starts with the model when a completer is available and moves to keyword rules for good
// once the model reports quota, rate limit or credential problems.
type Classifier struct {
	completer Completer
	maxTokens int
	primary   *atomic.Bool
}

// NewClassifier makes a classifier, nil completer means rules only
func NewClassifier(completer Completer, opts ClassifierOpts) *Classifier {
	res := &Classifier{completer: completer, maxTokens: opts.MaxTokens, primary: &atomic.Bool{}}
	if res.maxTokens <= 0 {
		res.maxTokens = defaultMaxTokens
	}
	res.primary.Store(completer != nil && !opts.RulesOnly)
	return res
}

// DigestWriter makes a digest writer on the same model. Both share one downgrade state,
// a quota error seen by either moves the classifier to rules and the digest to the template.
func (c *Classifier) DigestWriter(maxTokens int) *DigestWriter {
	return newDigestWriter(c.completer, maxTokens, c.primary)
}

// PrimaryEnabled reports whether the model is still used
func (c *Classifier) PrimaryEnabled() bool {
	return c.primary.Load()
}

// Analyze classifies one item. Model failures are answered by the rule-based analysis,
// only context cancellation is returned as an error.
func (c *Classifier) Analyze(ctx context.Context, item domain.NewsItem) (domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.Analysis{}, err
	}
	if !c.primary.Load() {
		return AnalyzeRules(item.Title, item.Content), nil
	}

	resp, err := c.completer.Complete(ctx, analysisSystemPrompt, fmt.Sprintf(analysisPrompt, item.Title, item.Content), c.maxTokens)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Analysis{}, ctxErr
		}
		c.fail(err)
		return AnalyzeRules(item.Title, item.Content), nil
	}

	analysis, err := parseAnalysis(resp)
	if err != nil {
		lgr.Printf("[DEBUG] can't parse llm analysis for %q, using text rules: %v", item.Title, err)
		return analyzeText(resp), nil
	}
	return analysis, nil
}

// ClassifyItems classifies items in order and returns updated copies.
// An item whose analysis fails is kept as is.
func (c *Classifier) ClassifyItems(ctx context.Context, items []domain.NewsItem) []domain.NewsItem {
	res := make([]domain.NewsItem, len(items))
	copy(res, items)
	for i := range res {
		analysis, err := c.safeAnalyze(ctx, res[i])
		if err != nil {
			lgr.Printf("[WARN] failed to classify %q: %v", res[i].Title, err)
			continue
		}
		res[i] = res[i].Apply(analysis)
	}
	return res
}

func (c *Classifier) safeAnalyze(ctx context.Context, item domain.NewsItem) (res domain.Analysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analysis panic: %v", r)
		}
	}()
	return c.Analyze(ctx, item)
}

func (c *Classifier) fail(err error) {
	if IsQuotaError(err) {
		if c.primary.CompareAndSwap(true, false) {
			lgr.Printf("[WARN] llm quota or credentials rejected, switching to rule-based classification and template digest: %v", err)
		}
		return
	}
	lgr.Printf("[WARN] llm analysis failed, using rules: %v", err)
}

type analysisResponse struct {
	Summary  string   `json:"summary"`
	Category string   `json:"category"`
	Severity string   `json:"severity"`
	Tags     []string `json:"tags"`
}

// parseAnalysis decodes the span from the first '{' to the last '}'
func parseAnalysis(text string) (domain.Analysis, error) {
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return domain.Analysis{}, errors.New("no json object found in response")
	}

	var resp analysisResponse
	if err := json.Unmarshal([]byte(text[start:end+1]), &resp); err != nil {
		return domain.Analysis{}, fmt.Errorf("failed to parse json response: %w", err)
	}

	tags := make([]string, 0, len(resp.Tags))
	for _, t := range resp.Tags {
		if t = strings.TrimSpace(t); t != "" && len(tags) < domain.MaxTags {
			tags = append(tags, t)
		}
	}
	return domain.Analysis{
		Summary:  strings.TrimSpace(resp.Summary),
		Category: domain.ParseCategory(resp.Category),
		Severity: domain.ParseSeverity(resp.Severity),
		Tags:     tags,
	}, nil
}
