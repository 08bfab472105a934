// Package notifier delivers booking and payment emails from the outbox.
// Delivery is best-effort by contract: nothing here may affect booking state.
package notifier

import (
	"log/slog"

	"mindvale-server/internal/pkg/config"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends plain-text mail over the configured SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig, logger *slog.Logger) *SMTPMailer {
	if !cfg.Configured() {
		logger.Warn("smtp not configured; notification emails will be dropped")
	}
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if !m.cfg.Configured() || to == "" {
		// Dropping is the degraded mode; the job is still marked done so the
		// outbox does not grow without bound.
		return nil
	}

	msg := gomail.NewMessage()
	from := m.cfg.From
	if from == "" {
		from = m.cfg.User
	}
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	return d.DialAndSend(msg)
}
