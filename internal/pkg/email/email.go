package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService delivers transactional mail.
type EmailService interface {
	SendRegisterOTP(to, code string, expiresIn time.Duration) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	backoff   time.Duration
}

// NewEmailService parses the embedded templates. An empty SMTP host turns sending into a logged no-op.
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		backoff:   time.Second,
	}, nil
}

type registerOTPEmailData struct {
	AppName          string
	Code             string
	ExpiresInMinutes int
}

// SendRegisterOTP sends the one-time registration code
func (s *emailServiceImpl) SendRegisterOTP(to, code string, expiresIn time.Duration) error {
	body, err := s.renderRegisterOTP(code, expiresIn)
	if err != nil {
		return err
	}
	return s.sendHTML(to, "Your registration code", body)
}

func (s *emailServiceImpl) renderRegisterOTP(code string, expiresIn time.Duration) (string, error) {
	data := registerOTPEmailData{
		AppName:          s.cfg.FromName,
		Code:             code,
		ExpiresInMinutes: int(expiresIn.Minutes()),
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "register_otp.html", data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return body.String(), nil
}

// buildMessage renders an RFC 5322 message with an HTML body.
// Header values are Q-encoded so non-ASCII names survive.
func buildMessage(fromName, from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + (&mail.Address{Name: fromName, Address: from}).String() + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	message := buildMessage(s.cfg.FromName, s.cfg.From, to, subject, htmlBody)
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = s.send(addr, auth, s.cfg.From, []string{to}, message); err == nil {
			slog.Info("Email sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}
		slog.Warn("Email send failed", "to", to, "attempt", attempt, "max_retries", maxRetries, "error", err)

		if attempt < maxRetries {
			time.Sleep(s.backoff << (attempt - 1))
		}
	}
	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, err)
}
