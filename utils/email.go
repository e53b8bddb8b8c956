package utils

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"sync"
	"time"

	"github.com/arjunvnair/campus-event-backend/config"
)

// ======================
// SMTP Configuration
// ======================
var (
	smtpHost      string
	smtpPort      string
	smtpUsername  string
	smtpPassword  string
	smtpFromName  string
	smtpFromEmail string
	smtpTimeout   = 10 * time.Second // Timeout for SMTP connection
)

// InitMailer applies the loaded SMTP settings. Call once at startup,
// after config.Load, so values from a .env file are picked up.
func InitMailer(cfg *config.Config) {
	smtpHost = cfg.SMTPHost
	smtpPort = cfg.SMTPPort
	smtpUsername = cfg.SMTPUsername
	smtpPassword = cfg.SMTPPassword
	smtpFromName = cfg.SMTPFromName
	smtpFromEmail = cfg.SMTPFromEmail
}

// sendEmail opens a plain connection first and upgrades with StartTLS;
// dialing TLS directly fails against port 587 submission servers.
func sendEmail(to, subject, body string) error {
	if smtpHost == "" || smtpUsername == "" || smtpPassword == "" {
		fmt.Println("⚠️ SMTP not configured. Email not sent.")
		return nil
	}

	if smtpFromEmail == "" {
		smtpFromEmail = smtpUsername
	}

	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	conn, err := net.DialTimeout("tcp", addr, smtpTimeout)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, smtpHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         smtpHost,
	}

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", smtpUsername, smtpPassword, smtpHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(smtpFromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	from := smtpFromName
	if from == "" {
		from = smtpFromEmail
	} else {
		from = fmt.Sprintf("%s <%s>", smtpFromName, smtpFromEmail)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, to, subject, body))

	if _, err = w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		fmt.Printf("⚠️ QUIT command error (non-critical): %v\n", err)
	}

	return nil
}

// ======================
// Async bulk email sender
// ======================
func SendBulkEmailsAsync(recipients []string, subject, body string) {
	go func() {
		var wg sync.WaitGroup
		for _, email := range recipients {
			wg.Add(1)
			go func(to string) {
				defer wg.Done()
				if err := sendEmail(to, subject, body); err != nil {
					fmt.Printf("❌ Failed to send email to %s: %v\n", to, err)
				}
			}(email)
		}
		wg.Wait()
	}()
}

// ======================
// Account Verification
// ======================
func SendOTPEmail(toEmail, name, otp string) error {
	subject := "Verify your campus events account"
	body := fmt.Sprintf("Hello %s,\n\nYour verification code is: %s\n\nIt expires in 10 minutes. If you did not sign up, please ignore this email.", name, otp)
	return sendEmail(toEmail, subject, body)
}

// ======================
// Registration Emails
// ======================
func SendRegistrationConfirmation(toEmail, name, eventName string) error {
	subject := fmt.Sprintf("You're registered for %s", eventName)
	body := fmt.Sprintf("Hello %s,\n\nYour registration for \"%s\" has been confirmed. See you there!", name, eventName)
	return sendEmail(toEmail, subject, body)
}

func SendUnregistrationNotice(toEmail, name, eventName string) error {
	subject := fmt.Sprintf("Registration cancelled for %s", eventName)
	body := fmt.Sprintf("Hello %s,\n\nYour registration for \"%s\" has been cancelled. You can register again while seats remain.", name, eventName)
	return sendEmail(toEmail, subject, body)
}

func SendEventUpdateEmail(toEmail, name, eventName, detail string) error {
	subject := fmt.Sprintf("Update for %s", eventName)
	body := fmt.Sprintf("Hello %s,\n\nThere is an update for \"%s\":\n%s", name, eventName, detail)
	return sendEmail(toEmail, subject, body)
}
