package external_services

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
)

// smtp attribute
type EmailService struct {
	Host        string
	Port        string
	Username    string
	AppPassword string
	From        string
	// Secure dials with implicit TLS (port 465); otherwise STARTTLS is used when offered.
	Secure bool
	// Timeout bounds dialing when the caller's context carries no deadline.
	Timeout time.Duration
}

// EmailService factory
func NewEmailService(host, port, username, appPassword, from string, secure bool) *EmailService {
	return &EmailService{
		Host:        host,
		Port:        port,
		Username:    username,
		AppPassword: appPassword,
		From:        from,
		Secure:      secure,
		Timeout:     15 * time.Second,
	}
}

// make sure EmailService implements contract.IEmailService.go
var _ contract.IEmailService = (*EmailService)(nil)

// SendEmail delivers one HTML message.
func (es *EmailService) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	msg := buildMessage(es.From, to, subject, htmlBody)
	addr := net.JoinHostPort(es.Host, es.Port)

	conn, err := es.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("failed to connect to smtp server %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, es.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start smtp session: %w", err)
	}
	defer c.Close()

	if !es.Secure {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: es.Host}); err != nil {
				return fmt.Errorf("failed to start tls: %w", err)
			}
		}
	}
	if es.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", es.Username, es.AppPassword, es.Host)); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}
	if err := c.Mail(es.From); err != nil {
		return fmt.Errorf("smtp MAIL FROM failed: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT TO %s failed: %w", to, err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return c.Quit()
}

func (es *EmailService) dial(ctx context.Context, addr string) (net.Conn, error) {
	d := &net.Dialer{Timeout: es.Timeout}
	if es.Secure {
		td := &tls.Dialer{NetDialer: d, Config: &tls.Config{ServerName: es.Host}}
		return td.DialContext(ctx, "tcp", addr)
	}
	return d.DialContext(ctx, "tcp", addr)
}

// buildMessage writes RFC 5322 headers and a base64 encoded HTML body.
func buildMessage(from, to, subject, htmlBody string) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	sb.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("Content-Transfer-Encoding: base64\r\n")
	sb.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString([]byte(htmlBody))
	for len(encoded) > 76 {
		sb.WriteString(encoded[:76] + "\r\n")
		encoded = encoded[76:]
	}
	sb.WriteString(encoded + "\r\n")
	return []byte(sb.String())
}
