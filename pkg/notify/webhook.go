package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"

	"github.com/cybernews-agent/cybernews/pkg/agent"
	"github.com/cybernews-agent/cybernews/pkg/domain"
	"github.com/cybernews-agent/cybernews/pkg/report"
)

const (
	colorHigh    = 0xff0000
	colorDefault = 0xffa500
	maxFieldLen  = 1000
)

var errWebhookRejected = errors.New("webhook rejected payload")

// WebhookOpts configures the webhook sender
type WebhookOpts struct {
	URL     string
	AppURL  string
	Timeout time.Duration
	Retries int
	Delay   time.Duration
}

// Webhook posts a Discord/Slack style summary of the digest
type Webhook struct {
	client *http.Client
	opts   WebhookOpts
	now    func() time.Time
}

type webhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type webhookEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Fields      []webhookField `json:"fields"`
	Timestamp   string         `json:"timestamp"`
	Footer      struct {
		Text string `json:"text"`
	} `json:"footer"`
}

type webhookPayload struct {
	Content string         `json:"content"`
	Embeds  []webhookEmbed `json:"embeds"`
}

// NewWebhook makes a webhook sender
func NewWebhook(opts WebhookOpts) *Webhook {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	if opts.Delay <= 0 {
		opts.Delay = 500 * time.Millisecond
	}
	return &Webhook{client: &http.Client{Timeout: opts.Timeout}, opts: opts, now: time.Now}
}

// Send posts the summary, server errors are retried with backoff and 4xx answers are not
func (w *Webhook) Send(ctx context.Context, items []domain.NewsItem) error {
	body, err := json.Marshal(w.payload(items))
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	retrier := repeater.NewBackoff(w.opts.Retries, w.opts.Delay, repeater.WithMaxDelay(5*time.Second))
	err = retrier.Do(ctx, func() error {
		return w.post(ctx, body)
	}, errWebhookRejected)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	return nil
}

func (w *Webhook) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.opts.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", errWebhookRejected, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", errWebhookRejected, resp.StatusCode)
	default:
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
}

func (w *Webhook) payload(items []domain.NewsItem) webhookPayload {
	stats := agent.SeverityStats(items)
	embed := webhookEmbed{
		Title:       "CyberNews Agent Daily Digest",
		Description: fmt.Sprintf("Found %d cybersecurity updates", len(items)),
		Color:       colorDefault,
		Fields: []webhookField{
			{
				Name: "📊 Statistics",
				Value: fmt.Sprintf("High: %d\nMedium: %d\nLow: %d",
					stats[domain.SeverityHigh], stats[domain.SeverityMedium], stats[domain.SeverityLow]),
				Inline: true,
			},
			{Name: "🔗 Access Dashboard", Value: fmt.Sprintf("[Open CyberNews Agent](%s)", w.opts.AppURL), Inline: true},
		},
		Timestamp: w.now().Format(time.RFC3339),
	}
	embed.Footer.Text = "CyberNews Agent"
	if stats[domain.SeverityHigh] > 0 {
		embed.Color = colorHigh
	}

	if len(items) > 0 {
		lines := make([]string, 0, 5)
		for _, item := range report.TopItems(items, 5) {
			lines = append(lines, fmt.Sprintf("• %s (%s)", item.Title, item.Severity))
		}
		text := strings.Join(lines, "\n")
		if r := []rune(text); len(r) > maxFieldLen {
			text = string(r[:maxFieldLen])
		}
		embed.Fields = append(embed.Fields, webhookField{Name: "🔥 Top Stories", Value: text})
	}
	return webhookPayload{Content: "🚨 **Daily Cybersecurity Alert**", Embeds: []webhookEmbed{embed}}
}
