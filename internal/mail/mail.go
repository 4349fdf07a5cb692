// Package mail forwards contact-form submissions to the site owner over
// SMTP. Delivery is synchronous with no retry: the volume is interactive
// and the submitter can try again.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendContactMessage(name, email, phone, message string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSMTPMailer builds a mailer that authenticates against host:port and
// negotiates STARTTLS before sending.
func NewSMTPMailer(host string, port int, username, password, from, to string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		to:     to,
	}
}

func (m *SMTPMailer) SendContactMessage(name, email, phone, message string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", "Blog Message")
	msg.SetBody("text/plain",
		fmt.Sprintf("Name: %s\nPhone: %s\nEmail: %s\nMessage: %s", name, phone, email, message))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}
