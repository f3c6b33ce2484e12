package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// Mailer delivers account emails. Failures surface to the caller; there are
// no retries.
type Mailer interface {
	SendActivation(to, username, activationLink string) error
	SendPasswordReset(to, username, resetLink string) error
}

// SMTPMailer sends mail through a single SMTP relay via gomail.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer for the given relay.
func NewSMTPMailer(host string, port int, user, password, from, fromName string) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(host, port, user, password),
		from:     from,
		fromName: fromName,
	}
}

// SendActivation emails the account-activation link.
func (m *SMTPMailer) SendActivation(to, username, activationLink string) error {
	body, err := renderTemplate(activationTemplate, templateData{
		Username: username,
		Link:     activationLink,
		AppName:  m.fromName,
	})
	if err != nil {
		return err
	}
	return m.send(to, fmt.Sprintf("%s - Activate your account", m.fromName), body)
}

// SendPasswordReset emails the password-reset link.
func (m *SMTPMailer) SendPasswordReset(to, username, resetLink string) error {
	body, err := renderTemplate(resetTemplate, templateData{
		Username: username,
		Link:     resetLink,
		AppName:  m.fromName,
	})
	if err != nil {
		return err
	}
	return m.send(to, fmt.Sprintf("%s - Reset your password", m.fromName), body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

type templateData struct {
	Username string
	Link     string
	AppName  string
}

func renderTemplate(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render mail template: %w", err)
	}
	return buf.String(), nil
}
