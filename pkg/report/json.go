package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

type jsonItem struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Summary     string   `json:"summary"`
	URL         string   `json:"url"`
	Source      string   `json:"source"`
	PublishedAt string   `json:"published_at"`
	Category    string   `json:"category"`
	Severity    string   `json:"severity"`
	Tags        []string `json:"tags"`
}

type jsonExport struct {
	Timestamp  string     `json:"timestamp"`
	TotalItems int        `json:"total_items"`
	Digest     string     `json:"digest"`
	Items      []jsonItem `json:"items"`
}

// JSON exports items with the digest as an indented document
func (b *Builder) JSON(ctx context.Context, items []domain.NewsItem) ([]byte, error) {
	export := jsonExport{
		Timestamp:  b.now().Format(time.RFC3339),
		TotalItems: len(items),
		Digest:     b.Digest(ctx, items),
		Items:      make([]jsonItem, 0, len(items)),
	}
	for _, item := range items {
		tags := item.Tags
		if tags == nil {
			tags = []string{}
		}
		export.Items = append(export.Items, jsonItem{
			Title:       item.Title,
			Content:     item.Content,
			Summary:     item.Summary,
			URL:         item.URL,
			Source:      item.Source,
			PublishedAt: item.PublishedAt.Format(time.RFC3339),
			Category:    string(item.Category),
			Severity:    string(item.Severity),
			Tags:        tags,
		})
	}

	res, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json export: %w", err)
	}
	return res, nil
}
