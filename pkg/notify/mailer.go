package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/email"
	"github.com/go-pkgz/lgr"

	"github.com/cybernews-agent/cybernews/pkg/domain"
)

// SMTPOpts configures smtp delivery
type SMTPOpts struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	StartTLS bool
	Timeout  time.Duration
}

// SMTPMailer sends html mails through an smtp server, one message per recipient
type SMTPMailer struct {
	sender *email.Sender
	from   string
}

// NewSMTPMailer makes a mailer, From defaults to Username
func NewSMTPMailer(opts SMTPOpts) *SMTPMailer {
	if opts.Port == 0 {
		opts.Port = 587
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.From == "" {
		opts.From = opts.Username
	}

	sender := email.NewSender(opts.Host,
		email.Port(opts.Port),
		email.STARTTLS(opts.StartTLS),
		email.Auth(opts.Username, opts.Password),
		email.ContentType("text/html"),
		email.TimeOut(opts.Timeout),
		email.Log(lgr.Default()),
	)
	return &SMTPMailer{sender: sender, from: opts.From}
}

// Send delivers msg to a single recipient
func (m *SMTPMailer) Send(ctx context.Context, to string, msg domain.EmailDigest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.sender.Send(msg.Body, email.Params{From: m.from, To: []string{to}, Subject: msg.Subject}); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
