package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/inkwell-app/inkwell/internal/pkg/env"
)

// SendMail sends an email via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	}
	return err
}

// SendVerificationMail delivers the 6-digit verification code
func SendVerificationMail(to string, code string) error {
	subject := "Verify your Inkwell account"
	body := fmt.Sprintf(
		"<h2>Welcome to Inkwell!</h2>"+
			"<p>Your verification code is:</p>"+
			"<h1 style=\"letter-spacing: 4px;\">%s</h1>"+
			"<p>The code expires in 24 hours. If you did not sign up, you can ignore this mail.</p>",
		code,
	)
	return SendMail(to, subject, body)
}

// SendWelcomeMail greets a freshly verified user
func SendWelcomeMail(to string, name string) error {
	subject := "Welcome to Inkwell"
	body := fmt.Sprintf(
		"<h2>Hi %s,</h2>"+
			"<p>your email is verified and your account is ready. Happy writing!</p>",
		name,
	)
	return SendMail(to, subject, body)
}
