package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/cybernews-agent/cybernews/pkg/agent"
	"github.com/cybernews-agent/cybernews/pkg/content"
	"github.com/cybernews-agent/cybernews/pkg/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// WelcomeSubject is the subject of the mail sent to new subscribers
const WelcomeSubject = "🛡️ Welcome to CyberNews Agent - Let's Dive Into the Cyber World Together!"

type emailArticle struct {
	Title         string
	URL           string
	Summary       string
	Source        string
	Severity      domain.Severity
	SeverityClass string
}

type digestData struct {
	Greeting  string
	Intro     string
	Total     int
	High      int
	Medium    int
	Low       int
	Articles  []emailArticle
	Generated string
}

type welcomeData struct {
	Greeting string
	Email    string
	Schedule string
	TopItems int
	AppURL   string
}

// Email makes the HTML digest mail for subscribers
func (b *Builder) Email(items []domain.NewsItem) (domain.EmailDigest, error) {
	stats := agent.SeverityStats(items)
	total, high, medium := len(items), stats[domain.SeverityHigh], stats[domain.SeverityMedium]

	var subject, intro string
	switch {
	case high > 0:
		subject = fmt.Sprintf("🚨 URGENT: %d Critical Cybersecurity Alerts", high)
		intro = fmt.Sprintf("We've identified %d critical security alerts that require immediate attention, along with %d other important updates.",
			high, total-high)
	case medium > 0:
		subject = fmt.Sprintf("⚠️ %d Medium-Severity Security Updates", medium)
		intro = fmt.Sprintf("Today's cybersecurity landscape shows %d medium-severity incidents among %d total security updates.", medium, total)
	default:
		subject = fmt.Sprintf("📊 Daily Cybersecurity Digest - %d Updates", total)
		intro = fmt.Sprintf("Here are today's %d cybersecurity updates and industry developments.", total)
	}

	now := b.now()
	data := digestData{
		Greeting:  greeting(now),
		Intro:     intro,
		Total:     total,
		High:      high,
		Medium:    medium,
		Low:       stats[domain.SeverityLow],
		Generated: now.Format("January 02, 2006 at 03:04 PM"),
	}
	for _, item := range TopItems(items, topItems) {
		summary := item.Summary
		if summary == "" {
			summary = content.Truncate(item.Content, 200)
			if len([]rune(item.Content)) > 200 {
				summary += "..."
			}
		}
		data.Articles = append(data.Articles, emailArticle{
			Title:         item.Title,
			URL:           item.URL,
			Summary:       summary,
			Source:        item.Source,
			Severity:      item.Severity,
			SeverityClass: strings.ToLower(string(item.Severity)),
		})
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "digest.html", data); err != nil {
		return domain.EmailDigest{}, fmt.Errorf("render digest email: %w", err)
	}
	return domain.EmailDigest{Subject: subject, Body: buf.String()}, nil
}

// Welcome makes the mail sent to a new subscriber
func (b *Builder) Welcome(email string) (domain.EmailDigest, error) {
	data := welcomeData{
		Greeting: greeting(b.now()),
		Email:    email,
		Schedule: b.opts.Schedule,
		TopItems: topItems,
		AppURL:   b.opts.AppURL,
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "welcome.html", data); err != nil {
		return domain.EmailDigest{}, fmt.Errorf("render welcome email: %w", err)
	}
	return domain.EmailDigest{Subject: WelcomeSubject, Body: buf.String()}, nil
}
