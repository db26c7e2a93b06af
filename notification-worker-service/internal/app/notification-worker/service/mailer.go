package service

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPMailer отправляет письма через SMTP сервер
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer создает новый SMTP mailer
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send отправляет HTML письмо
// Соединение открывается на каждое письмо: поток уведомлений небольшой,
// держать постоянное SMTP соединение не нужно
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
