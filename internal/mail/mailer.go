// Package mail sends support-ticket notification email over SMTP.
package mail

import (
	"fmt"
	"net/smtp"

	"wishwash-backend/config"
	"wishwash-backend/internal/model"
)

// Mailer delivers support tickets to the configured support inbox.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendSupportTicket emails the ticket contents to the support inbox. Callers
// treat failures as best-effort: the ticket row is already persisted.
func (m *Mailer) SendSupportTicket(t *model.SupportTicket) error {
	if m.cfg.Host == "" || m.cfg.SupportInbox == "" {
		return fmt.Errorf("smtp is not configured")
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	body := fmt.Sprintf(
		"<h1>New support ticket</h1>"+
			"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Contact email:</strong> %s</p>"+
			"<hr /><h3>Message:</h3><p>%s</p>",
		t.Name, t.Email, t.Message,
	)
	msg := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: New support ticket: %s\r\n"+
			"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n%s",
		m.cfg.SupportInbox, t.Name, body,
	))

	return smtp.SendMail(addr, auth, m.cfg.Username, []string{m.cfg.SupportInbox}, msg)
}
