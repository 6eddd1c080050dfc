package mailer

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Port != "" && c.From != ""
}

// New returns an SMTP mailer, or a mailer that only logs when SMTP is not
// configured.
func New(cfg SMTPConfig) Mailer {
	if !cfg.Configured() {
		slog.Warn("smtp not configured, emails will only be logged")
		return LogMailer{}
	}
	return &SMTPMailer{cfg: cfg}
}

type SMTPMailer struct {
	cfg SMTPConfig
}

func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	contentType := "text/plain"
	lb := strings.ToLower(body)
	if strings.Contains(lb, "<html") || strings.Contains(lb, "<body") {
		contentType = "text/html"
	}
	fmt.Fprintf(&b, "Content-Type: %s; charset=\"utf-8\"\r\n", contentType)
	b.WriteString("\r\n" + body + "\r\n")
	return b.String()
}

// Send delivers one message over implicit TLS.
func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := m.cfg.Host + ":" + m.cfg.Port
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer c.Close()

	if m.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write([]byte(buildMessage(m.cfg.From, to, subject, body))); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return c.Quit()
}

type LogMailer struct{}

func (LogMailer) Send(to, subject, _ string) error {
	slog.Info("email not sent, smtp disabled", "to", to, "subject", subject)
	return nil
}

// SendAsync sends in the background and only logs failures. Callers never
// wait on email delivery.
func SendAsync(m Mailer, to, subject, body string) {
	go func() {
		start := time.Now()
		if err := m.Send(to, subject, body); err != nil {
			slog.Error("could not send email", "to", to, "subject", subject, "err", err)
			return
		}
		slog.Debug("email sent", "to", to, "subject", subject, "took", time.Since(start))
	}()
}
