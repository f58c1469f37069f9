// Package mailer delivers ticket values by SMTP.
package mailer

import (
	"fmt"

	"github.com/famcare/auth-service/internal/auth/domain"
	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendVerificationEmail(account *domain.Account, ticketValue string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", account.Email)
	msg.SetHeader("Subject", "Verify your email address")

	body := fmt.Sprintf(`
		<h3>Welcome%s!</h3>
		<p>Please confirm your email address by entering the following code in the app:</p>
		<p><strong>%s</strong></p>
		<p>The code expires shortly. If you did not create an account, you can ignore this email.</p>
	`, displayGreeting(account), ticketValue)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

func (m *SMTPMailer) SendPasswordResetEmail(account *domain.Account, ticketValue string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", account.Email)
	msg.SetHeader("Subject", "Password reset request")

	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your account.</p>
		<p>Use the following code to choose a new password: <strong>%s</strong></p>
		<p>If you did not request this change, you can ignore this email.</p>
	`, ticketValue)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}

func displayGreeting(account *domain.Account) string {
	if account.DisplayName == "" {
		return ""
	}
	return ", " + account.DisplayName
}
