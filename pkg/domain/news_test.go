package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNewsItem(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		item, err := NewNewsItem("  Ransomware Hits Hospital ", "body", " https://example.com/a ", "test", time.Time{})
		require.NoError(t, err)
		assert.Equal(t, "Ransomware Hits Hospital", item.Title)
		assert.Equal(t, "https://example.com/a", item.URL)
		assert.Equal(t, CategoryGeneral, item.Category)
		assert.Equal(t, SeverityMedium, item.Severity)
		assert.Empty(t, item.Tags)
		assert.Empty(t, item.Summary)
		assert.WithinDuration(t, time.Now(), item.PublishedAt, time.Minute)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := NewNewsItem("   ", "body", "https://example.com", "test", time.Now())
		require.ErrorIs(t, err, ErrMissingTitle)
	})

	t.Run("missing url", func(t *testing.T) {
		_, err := NewNewsItem("title", "body", "", "test", time.Now())
		require.ErrorIs(t, err, ErrMissingURL)
	})
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"Latest Attacks", CategoryLatestAttacks},
		{"latest_attacks", CategoryLatestAttacks},
		{"LatestAttacks", CategoryLatestAttacks},
		{"vulnerabilities", CategoryVulnerabilities},
		{"New Tools", CategoryNewTools},
		{"threat-intelligence", CategoryThreatIntelligence},
		{"General", CategoryGeneral},
		{"something else", CategoryGeneral},
		{"", CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.in))
		})
	}
}

func TestLookupCategory(t *testing.T) {
	c, ok := LookupCategory("new_tools")
	assert.True(t, ok)
	assert.Equal(t, CategoryNewTools, c)

	c, ok = LookupCategory("general")
	assert.True(t, ok)
	assert.Equal(t, CategoryGeneral, c)

	_, ok = LookupCategory("malware")
	assert.False(t, ok)
}

func TestParseSeverity(t *testing.T) {
	assert.Equal(t, SeverityHigh, ParseSeverity("HIGH"))
	assert.Equal(t, SeverityLow, ParseSeverity(" low "))
	assert.Equal(t, SeverityMedium, ParseSeverity("critical"))
	assert.Equal(t, SeverityMedium, ParseSeverity(""))
	assert.Greater(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Greater(t, SeverityMedium.Rank(), SeverityLow.Rank())
}

func TestNewsItem_Apply(t *testing.T) {
	item := NewsItem{Title: "t", URL: "u", Category: CategoryGeneral, Severity: SeverityMedium}
	res := item.Apply(Analysis{
		Summary:  "sum",
		Category: "vulnerabilities",
		Severity: "bogus",
		Tags:     []string{"a", "b", "c", "d", "e", "f"},
	})
	assert.Equal(t, "sum", res.Summary)
	assert.Equal(t, CategoryVulnerabilities, res.Category)
	assert.Equal(t, SeverityMedium, res.Severity)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, res.Tags)
	assert.Empty(t, item.Summary, "original item untouched")
}

func TestNewsItem_WithTags(t *testing.T) {
	item := NewsItem{Tags: []string{"reddit-netsec"}}
	res := item.WithTags("score-10", "a", "b", "c", "d")
	assert.Equal(t, []string{"reddit-netsec", "score-10", "a", "b", "c"}, res.Tags)
	assert.Equal(t, []string{"reddit-netsec"}, item.Tags)
}

func TestNewsItem_TitleKey(t *testing.T) {
	assert.Equal(t, "big breach", NewsItem{Title: "  Big BREACH "}.TitleKey())
}
