package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/go-pkgz/lgr"

	"github.com/cybernews-agent/cybernews/pkg/content"
	"github.com/cybernews-agent/cybernews/pkg/domain"
)

const (
	digestSystemPrompt = "You are a cybersecurity expert creating a daily digest. Write professionally and concisely."
	digestItems        = 10
	defaultDigestTkn   = 800
)

const digestPrompt = `Create a comprehensive daily cybersecurity digest based on the following news items:

%s

Write a professional digest that includes:
1. Executive summary of the day's cybersecurity landscape
2. Key highlights and trends
3. Most critical threats and vulnerabilities
4. Important updates and announcements

Format as a single, well-structured paragraph suitable for executives and security professionals.`

// ErrDigestDisabled is returned when the model is not used for digests
var ErrDigestDisabled = errors.New("llm digest disabled")

// DigestWriter asks the model for a narrative digest of the top items
type DigestWriter struct {
	completer Completer
	maxTokens int
	enabled   *atomic.Bool
}

// NewDigestWriter makes a standalone digest writer, nil completer or rulesOnly disables it.
// Use Classifier.DigestWriter to share the downgrade with a classifier.
func NewDigestWriter(completer Completer, maxTokens int, rulesOnly bool) *DigestWriter {
	enabled := &atomic.Bool{}
	enabled.Store(completer != nil && !rulesOnly)
	return newDigestWriter(completer, maxTokens, enabled)
}

func newDigestWriter(completer Completer, maxTokens int, enabled *atomic.Bool) *DigestWriter {
	if maxTokens <= 0 {
		maxTokens = defaultDigestTkn
	}
	return &DigestWriter{completer: completer, maxTokens: maxTokens, enabled: enabled}
}

// Enabled reports whether the writer still calls the model
func (d *DigestWriter) Enabled() bool {
	return d.enabled.Load()
}

// Digest returns the model digest for the first items. Any error means the caller
// should build the template digest instead.
func (d *DigestWriter) Digest(ctx context.Context, items []domain.NewsItem) (string, error) {
	if !d.enabled.Load() {
		return "", ErrDigestDisabled
	}
	if len(items) == 0 {
		return "", errors.New("no items for digest")
	}

	resp, err := d.completer.Complete(ctx, digestSystemPrompt, buildDigestPrompt(items), d.maxTokens)
	if err != nil {
		if IsQuotaError(err) && d.enabled.CompareAndSwap(true, false) {
			lgr.Printf("[WARN] llm quota or credentials rejected, switching to template digest and rule-based classification: %v", err)
		}
		return "", fmt.Errorf("generate digest: %w", err)
	}
	resp = strings.TrimSpace(resp)
	if resp == "" {
		return "", errors.New("empty digest from llm")
	}
	return resp, nil
}

func buildDigestPrompt(items []domain.NewsItem) string {
	if len(items) > digestItems {
		items = items[:digestItems]
	}
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		summary := item.Summary
		if summary == "" {
			summary = content.Truncate(item.Content, summaryRunes)
		}
		blocks = append(blocks, fmt.Sprintf("Title: %s\nSummary: %s\nCategory: %s\nSeverity: %s",
			item.Title, summary, item.Category, item.Severity))
	}
	return fmt.Sprintf(digestPrompt, strings.Join(blocks, "\n\n"))
}
