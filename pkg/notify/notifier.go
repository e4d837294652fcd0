package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

//go:generate moq -out mocks/mailer.go -pkg mocks -skip-ensure -fmt goimports . Mailer
//go:generate moq -out mocks/webhook_sender.go -pkg mocks -skip-ensure -fmt goimports . WebhookSender
//go:generate moq -out mocks/subscribers.go -pkg mocks -skip-ensure -fmt goimports . Subscribers

// ErrInvalidEmail is returned for addresses that fail validation
var ErrInvalidEmail = errors.New("invalid email address")

// Subscribers keeps subscriber emails in normalized form
type Subscribers interface {
	Add(ctx context.Context, email string) (bool, error)
	Remove(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

// Mailer delivers one email to one recipient
type Mailer interface {
	Send(ctx context.Context, to string, msg domain.EmailDigest) error
}

// WebhookSender posts a digest summary to a chat webhook
type WebhookSender interface {
	Send(ctx context.Context, items []domain.NewsItem) error
}

// Reporter renders notification emails
type Reporter interface {
	Email(items []domain.NewsItem) (domain.EmailDigest, error)
	Welcome(email string) (domain.EmailDigest, error)
}

// Status describes delivery configuration
type Status struct {
	EmailConfigured   bool `json:"email_configured"`
	WebhookConfigured bool `json:"webhook_configured"`
	SubscriberCount   int  `json:"subscriber_count"`
}

// Notifier sends digests to subscribers and the webhook. Mailer and webhook are optional,
// a nil one disables its channel.
type Notifier struct {
	store    Subscribers
	reporter Reporter
	mailer   Mailer
	webhook  WebhookSender
}

// NewNotifier makes a notifier
func NewNotifier(store Subscribers, reporter Reporter, mailer Mailer, webhook WebhookSender) *Notifier {
	return &Notifier{store: store, reporter: reporter, mailer: mailer, webhook: webhook}
}

// SendDaily mails the digest to every subscriber and posts it to the webhook.
// A failed recipient doesn't stop the others, all failures are joined in the returned error.
func (n *Notifier) SendDaily(ctx context.Context, items []domain.NewsItem) error {
	subscribers, err := n.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}
	lgr.Printf("[INFO] sending daily notification for %d items to %d subscribers", len(items), len(subscribers))

	var errs []error
	switch {
	case n.mailer == nil:
		lgr.Printf("[DEBUG] email not configured, skipping subscribers")
	case len(subscribers) == 0:
		lgr.Printf("[INFO] no subscribers to send notifications to")
	default:
		msg, err := n.reporter.Email(items)
		if err != nil {
			return fmt.Errorf("make digest email: %w", err)
		}
		sent := 0
		for _, to := range subscribers {
			if err := n.mailer.Send(ctx, to, msg); err != nil {
				lgr.Printf("[WARN] failed to send digest to %s: %v", to, err)
				errs = append(errs, err)
				continue
			}
			sent++
		}
		lgr.Printf("[INFO] digest email sent to %d of %d subscribers", sent, len(subscribers))
	}

	if n.webhook != nil {
		if err := n.webhook.Send(ctx, items); err != nil {
			lgr.Printf("[WARN] failed to send webhook notification: %v", err)
			errs = append(errs, err)
		} else {
			lgr.Printf("[INFO] webhook notification sent")
		}
	}
	return errors.Join(errs...)
}

// SendWelcome mails the welcome message to a new subscriber
func (n *Notifier) SendWelcome(ctx context.Context, email string) error {
	if n.mailer == nil {
		return errors.New("email not configured")
	}
	msg, err := n.reporter.Welcome(email)
	if err != nil {
		return fmt.Errorf("make welcome email: %w", err)
	}
	if err := n.mailer.Send(ctx, email, msg); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	lgr.Printf("[INFO] welcome email sent to %s", email)
	return nil
}

// SendTest sends the daily notification with a single test item
func (n *Notifier) SendTest(ctx context.Context) error {
	lgr.Printf("[INFO] sending test notification")
	item := domain.NewsItem{
		Title:       "Test Cybersecurity Alert",
		Content:     "This is a test notification from CyberNews Agent",
		URL:         "https://example.com",
		Source:      "Test Source",
		PublishedAt: time.Now(),
		Category:    domain.CategoryGeneral,
		Severity:    domain.SeverityMedium,
		Tags:        []string{"test", "notification"},
		Summary:     "Test notification to verify email/webhook setup",
	}
	return n.SendDaily(ctx, []domain.NewsItem{item})
}

// Subscribe validates email, adds it and sends the welcome message. False means already subscribed.
// A failed welcome mail doesn't fail the subscription.
func (n *Notifier) Subscribe(ctx context.Context, email string) (bool, error) {
	email, err := ValidateEmail(email)
	if err != nil {
		return false, err
	}

	added, err := n.store.Add(ctx, email)
	if err != nil || !added {
		return added, err
	}
	lgr.Printf("[INFO] added new subscriber %s", email)
	if n.mailer != nil {
		if err := n.SendWelcome(ctx, email); err != nil {
			lgr.Printf("[WARN] welcome email to %s failed: %v", email, err)
		}
	}
	return true, nil
}

// Unsubscribe removes email, false means it wasn't subscribed
func (n *Notifier) Unsubscribe(ctx context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)
	removed, err := n.store.Remove(ctx, email)
	if removed {
		lgr.Printf("[INFO] removed subscriber %s", email)
	}
	return removed, err
}

// Status reports delivery configuration, subscriber count is zero when the store fails
func (n *Notifier) Status(ctx context.Context) Status {
	count, err := n.store.Count(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to count subscribers: %v", err)
	}
	return Status{
		EmailConfigured:   n.mailer != nil,
		WebhookConfigured: n.webhook != nil,
		SubscriberCount:   count,
	}
}
