// Package mail delivers transactional email. The SMTP implementation is
// constructed once at startup and injected wherever outbound mail is
// needed; there is no hidden package-level client.
package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/ebolarium/baplikasyon/internal/config"
)

// Message describes one outbound email.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
	// AttachmentPath points at a file to attach; empty means no attachment.
	AttachmentPath string
	// AttachmentName overrides the attachment filename shown to the recipient.
	AttachmentName string
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers mail over SMTP. When the mail config is disabled it
// only logs, which keeps development and tests quiet.
type SMTPMailer struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewSMTPMailer builds the mailer from config.
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	var dialer *gomail.Dialer
	if cfg.Enabled {
		dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	}
	return &SMTPMailer{cfg: cfg, dialer: dialer, logger: logger}
}

// Send dispatches a single message.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.cfg.Enabled {
		m.logger.Info("mail disabled; skipping send",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject))
		return nil
	}
	if m.cfg.SMTPHost == "" || m.cfg.Username == "" {
		return fmt.Errorf("mail service not properly configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.cfg.FromEmail, m.cfg.FromName)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		gm.AddAlternative("text/html", msg.HTMLBody)
	}
	if msg.AttachmentPath != "" {
		if msg.AttachmentName != "" {
			gm.Attach(msg.AttachmentPath, gomail.Rename(msg.AttachmentName))
		} else {
			gm.Attach(msg.AttachmentPath)
		}
	}

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
