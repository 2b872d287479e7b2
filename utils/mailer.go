package utils

import (
	"fmt"
	"net/smtp"
)

// Mailer sends plain-text notification mail. A zero Host disables it.
type Mailer struct {
	Host string
	Port string
	From string
	Pass string
}

func (m Mailer) Enabled() bool {
	return m.Host != ""
}

// Send delivers a single message; callers treat failures as best-effort.
func (m Mailer) Send(to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.From, to, subject, body)
	auth := smtp.PlainAuth("", m.From, m.Pass, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(msg))
}
