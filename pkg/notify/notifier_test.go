package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybernews-agent/cybernews/pkg/domain"
	"github.com/cybernews-agent/cybernews/pkg/notify/mocks"
	"github.com/cybernews-agent/cybernews/pkg/report"
)

func newStore(t *testing.T, emails ...string) *SubscriberStore {
	t.Helper()
	store, err := NewSubscriberStore("")
	require.NoError(t, err)
	for _, e := range emails {
		_, err := store.Add(context.Background(), e)
		require.NoError(t, err)
	}
	return store
}

func newsItems() []domain.NewsItem {
	return []domain.NewsItem{
		{Title: "Ransomware hits city", URL: "https://example.com/1", Source: "web", Severity: domain.SeverityHigh,
			Category: domain.CategoryLatestAttacks, PublishedAt: time.Now()},
		{Title: "Patch released", URL: "https://example.com/2", Source: "web", Severity: domain.SeverityLow,
			Category: domain.CategoryVulnerabilities, PublishedAt: time.Now()},
	}
}

func TestNotifier_SendDaily(t *testing.T) {
	mailer := &mocks.MailerMock{SendFunc: func(_ context.Context, to string, _ domain.EmailDigest) error {
		if to == "broken@example.com" {
			return errors.New("mailbox unavailable")
		}
		return nil
	}}
	webhook := &mocks.WebhookSenderMock{SendFunc: func(context.Context, []domain.NewsItem) error { return nil }}
	store := newStore(t, "a@example.com", "broken@example.com", "c@example.com")
	n := NewNotifier(store, report.NewBuilder(nil, report.Opts{}), mailer, webhook)

	err := n.SendDaily(context.Background(), newsItems())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mailbox unavailable")

	calls := mailer.SendCalls()
	require.Len(t, calls, 3, "failure doesn't stop other recipients")
	assert.Equal(t, "a@example.com", calls[0].To)
	assert.Equal(t, "c@example.com", calls[2].To)
	assert.Equal(t, "🚨 URGENT: 1 Critical Cybersecurity Alerts", calls[0].Msg.Subject)
	assert.Contains(t, calls[0].Msg.Body, "Ransomware hits city")
	require.Len(t, webhook.SendCalls(), 1)
	assert.Len(t, webhook.SendCalls()[0].Items, 2)
}

func TestNotifier_SendDailyChannelsOptional(t *testing.T) {
	t.Run("no mailer", func(t *testing.T) {
		webhook := &mocks.WebhookSenderMock{SendFunc: func(context.Context, []domain.NewsItem) error { return nil }}
		n := NewNotifier(newStore(t, "a@example.com"), report.NewBuilder(nil, report.Opts{}), nil, webhook)
		require.NoError(t, n.SendDaily(context.Background(), newsItems()))
		assert.Len(t, webhook.SendCalls(), 1)
	})

	t.Run("no subscribers", func(t *testing.T) {
		mailer := &mocks.MailerMock{}
		n := NewNotifier(newStore(t), report.NewBuilder(nil, report.Opts{}), mailer, nil)
		require.NoError(t, n.SendDaily(context.Background(), newsItems()))
		assert.Empty(t, mailer.SendCalls())
	})

	t.Run("webhook failure reported", func(t *testing.T) {
		webhook := &mocks.WebhookSenderMock{SendFunc: func(context.Context, []domain.NewsItem) error { return errors.New("hook down") }}
		n := NewNotifier(newStore(t), report.NewBuilder(nil, report.Opts{}), nil, webhook)
		err := n.SendDaily(context.Background(), newsItems())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hook down")
	})
}

func TestNotifier_Subscribe(t *testing.T) {
	mailer := &mocks.MailerMock{SendFunc: func(context.Context, string, domain.EmailDigest) error { return errors.New("smtp down") }}
	n := NewNotifier(newStore(t), report.NewBuilder(nil, report.Opts{}), mailer, nil)

	added, err := n.Subscribe(context.Background(), " New@Example.com ")
	require.NoError(t, err, "welcome failure doesn't fail subscription")
	assert.True(t, added)
	require.Len(t, mailer.SendCalls(), 1)
	assert.Equal(t, "new@example.com", mailer.SendCalls()[0].To)
	assert.Equal(t, report.WelcomeSubject, mailer.SendCalls()[0].Msg.Subject)

	added, err = n.Subscribe(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, mailer.SendCalls(), 1, "no welcome for duplicates")

	_, err = n.Subscribe(context.Background(), "bad")
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = n.Subscribe(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidEmail)

	assert.Equal(t, 1, n.Status(context.Background()).SubscriberCount)
	removed, err := n.Unsubscribe(context.Background(), "NEW@example.com")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 0, n.Status(context.Background()).SubscriberCount)
}

func TestNotifier_SendTest(t *testing.T) {
	mailer := &mocks.MailerMock{SendFunc: func(context.Context, string, domain.EmailDigest) error { return nil }}
	n := NewNotifier(newStore(t, "a@example.com"), report.NewBuilder(nil, report.Opts{}), mailer, nil)

	require.NoError(t, n.SendTest(context.Background()))
	require.Len(t, mailer.SendCalls(), 1)
	assert.Equal(t, "⚠️ 1 Medium-Severity Security Updates", mailer.SendCalls()[0].Msg.Subject)
	assert.Contains(t, mailer.SendCalls()[0].Msg.Body, "Test Cybersecurity Alert")
}

func TestNotifier_SendWelcomeWithoutMailer(t *testing.T) {
	n := NewNotifier(newStore(t), report.NewBuilder(nil, report.Opts{}), nil, nil)
	require.Error(t, n.SendWelcome(context.Background(), "a@example.com"))
}

func TestNotifier_Status(t *testing.T) {
	n := NewNotifier(newStore(t, "a@example.com", "b@example.com"), report.NewBuilder(nil, report.Opts{}), &mocks.MailerMock{}, nil)
	assert.Equal(t, Status{EmailConfigured: true, WebhookConfigured: false, SubscriberCount: 2}, n.Status(context.Background()))
}

func TestNotifier_StatusCountError(t *testing.T) {
	store := &mocks.SubscribersMock{CountFunc: func(context.Context) (int, error) { return 0, errors.New("db gone") }}
	n := NewNotifier(store, report.NewBuilder(nil, report.Opts{}), nil, nil)
	assert.Equal(t, Status{}, n.Status(context.Background()))
}

func TestNotifier_SendDailyListError(t *testing.T) {
	store := &mocks.SubscribersMock{ListFunc: func(context.Context) ([]string, error) { return nil, errors.New("db gone") }}
	mailer := &mocks.MailerMock{}
	n := NewNotifier(store, report.NewBuilder(nil, report.Opts{}), mailer, nil)
	err := n.SendDaily(context.Background(), newsItems())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list subscribers")
	assert.Empty(t, mailer.SendCalls())
}

func TestSMTPMailer(t *testing.T) {
	m := NewSMTPMailer(SMTPOpts{Host: "localhost", Username: "bot@example.com"})
	assert.Equal(t, "bot@example.com", m.from)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Send(ctx, "a@example.com", domain.EmailDigest{Subject: "s", Body: "b"})
	require.ErrorIs(t, err, context.Canceled)
}
