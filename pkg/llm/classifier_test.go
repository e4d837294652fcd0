package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

type fakeCompleter struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	fn      func(prompt string) (string, error)
}

func (f *fakeCompleter) Complete(_ context.Context, _, prompt string, _ int) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.fn(prompt)
}

func (f *fakeCompleter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newsItem(t *testing.T, title, content string) domain.NewsItem {
	t.Helper()
	item, err := domain.NewNewsItem(title, content, "https://example.com/"+strings.ReplaceAll(title, " ", "-"), "test", time.Now())
	require.NoError(t, err)
	return item
}

func TestClassifier_Analyze(t *testing.T) {
	t.Run("model answer", func(t *testing.T) {
		fc := &fakeCompleter{fn: func(string) (string, error) {
			return "Here you go:\n```json\n{\"summary\": \" Patch now. \", \"category\": \"vulnerabilities\", " +
				"\"severity\": \"HIGH\", \"tags\": [\"cve\", \" \", \"patch\", \"browser\", \"chrome\", \"google\", \"extra\"]}\n```", nil
		}}
		c := NewClassifier(fc, ClassifierOpts{})
		assert.True(t, c.PrimaryEnabled())

		got, err := c.Analyze(context.Background(), newsItem(t, "Chrome zero-day", "Google fixed it"))
		require.NoError(t, err)
		assert.Equal(t, domain.Analysis{
			Summary:  "Patch now.",
			Category: domain.CategoryVulnerabilities,
			Severity: domain.SeverityHigh,
			Tags:     []string{"cve", "patch", "browser", "chrome", "google"},
		}, got)
		require.Len(t, fc.prompts, 1)
		assert.Contains(t, fc.prompts[0], "Title: Chrome zero-day\n\nContent: Google fixed it")
	})

	t.Run("unknown enums are normalized", func(t *testing.T) {
		fc := &fakeCompleter{fn: func(string) (string, error) {
			return `{"summary": "s", "category": "Gossip", "severity": "extreme", "tags": []}`, nil
		}}
		got, err := NewClassifier(fc, ClassifierOpts{}).Analyze(context.Background(), newsItem(t, "t", "c"))
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryGeneral, got.Category)
		assert.Equal(t, domain.SeverityMedium, got.Severity)
		assert.Empty(t, got.Tags)
	})

	t.Run("non json answer analysed as text", func(t *testing.T) {
		fc := &fakeCompleter{fn: func(string) (string, error) { return "The ransomware breach is critical", nil }}
		c := NewClassifier(fc, ClassifierOpts{})
		got, err := c.Analyze(context.Background(), newsItem(t, "t", "c"))
		require.NoError(t, err)
		assert.Equal(t, "The ransomware breach is critical", got.Summary)
		assert.Equal(t, domain.CategoryLatestAttacks, got.Category)
		assert.Equal(t, domain.SeverityHigh, got.Severity)
		assert.True(t, c.PrimaryEnabled())
	})

	t.Run("quota error downgrades for good", func(t *testing.T) {
		fc := &fakeCompleter{fn: func(string) (string, error) { return "", errors.New("googleapi: Error 429: Quota exceeded") }}
		c := NewClassifier(fc, ClassifierOpts{})
		item := newsItem(t, "Ransomware attack hits hospital", "Systems down")

		got, err := c.Analyze(context.Background(), item)
		require.NoError(t, err)
		assert.Equal(t, AnalyzeRules(item.Title, item.Content), got)
		assert.False(t, c.PrimaryEnabled())

		_, err = c.Analyze(context.Background(), item)
		require.NoError(t, err)
		assert.Equal(t, 1, fc.Calls(), "model not called after downgrade")
	})

	t.Run("transient error keeps the model", func(t *testing.T) {
		fc := &fakeCompleter{fn: func(string) (string, error) { return "", errors.New("connection reset by peer") }}
		c := NewClassifier(fc, ClassifierOpts{})
		item := newsItem(t, "Phishing wave", "Users targeted")

		for i := 0; i < 2; i++ {
			got, err := c.Analyze(context.Background(), item)
			require.NoError(t, err)
			assert.Equal(t, AnalyzeRules(item.Title, item.Content), got)
		}
		assert.True(t, c.PrimaryEnabled())
		assert.Equal(t, 2, fc.Calls())
	})

	t.Run("rules only", func(t *testing.T) {
		fc := &fakeCompleter{fn: func(string) (string, error) { return "{}", nil }}
		c := NewClassifier(fc, ClassifierOpts{RulesOnly: true})
		assert.False(t, c.PrimaryEnabled())
		_, err := c.Analyze(context.Background(), newsItem(t, "t", "c"))
		require.NoError(t, err)
		assert.Equal(t, 0, fc.Calls())
	})

	t.Run("nil completer", func(t *testing.T) {
		c := NewClassifier(nil, ClassifierOpts{})
		assert.False(t, c.PrimaryEnabled())
		got, err := c.Analyze(context.Background(), newsItem(t, "Botnet takedown", "Police seized servers"))
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryGeneral, got.Category)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewClassifier(nil, ClassifierOpts{}).Analyze(ctx, newsItem(t, "t", "c"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestClassifier_ConcurrentDowngrade(t *testing.T) {
	fc := &fakeCompleter{fn: func(string) (string, error) { return "", errors.New("RESOURCE_EXHAUSTED") }}
	c := NewClassifier(fc, ClassifierOpts{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Analyze(context.Background(), domain.NewsItem{Title: "t"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.False(t, c.PrimaryEnabled())
}

func TestClassifier_ClassifyItems(t *testing.T) {
	fc := &fakeCompleter{fn: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Title: boom") {
			panic("model client exploded")
		}
		return `{"summary": "ok", "category": "New Tools", "severity": "Low", "tags": ["tool"]}`, nil
	}}
	c := NewClassifier(fc, ClassifierOpts{})

	items := []domain.NewsItem{
		newsItem(t, "first", "a"),
		newsItem(t, "boom", "b"),
		newsItem(t, "third", "c"),
	}
	res := c.ClassifyItems(context.Background(), items)
	require.Len(t, res, 3)

	assert.Equal(t, "first", res[0].Title)
	assert.Equal(t, domain.CategoryNewTools, res[0].Category)
	assert.Equal(t, domain.SeverityLow, res[0].Severity)
	assert.Equal(t, []string{"tool"}, res[0].Tags)
	assert.Equal(t, "ok", res[0].Summary)

	assert.Equal(t, items[1], res[1], "failed item left unchanged")
	assert.Equal(t, domain.CategoryNewTools, res[2].Category)

	assert.Equal(t, domain.CategoryGeneral, items[0].Category, "input not modified")
	assert.Empty(t, items[0].Summary)
}

func TestClassifier_ClassifyItemsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	items := []domain.NewsItem{newsItem(t, "Ransomware attack", "x")}
	res := NewClassifier(nil, ClassifierOpts{}).ClassifyItems(ctx, items)
	assert.Equal(t, items, res)
}
