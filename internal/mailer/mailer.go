// Package mailer sends the transactional emails of the dashboard.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"text/template"
	"time"

	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/middleware"
)

var resetTemplate = template.Must(template.New("reset").Parse(`Hi {{.Name}},

We received a request to reset the password of your Social Dashboard account.
Open the link below to choose a new password. The link expires in {{.TTL}}.

{{.Link}}

If you did not ask for this, you can ignore this email.
`))

type resetData struct {
	Name string
	Link string
	TTL  string
}

// SMTPConfig configures SMTPMailer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	ResetTTL time.Duration
}

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	cfg  SMTPConfig
	send sendFunc
}

var _ portssvc.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, resetLink string) error {
	body, err := renderReset(name, resetLink, m.cfg.ResetTTL)
	if err != nil {
		return err
	}
	msg := buildMessage(m.cfg.From, to, "Reset your password", body)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	if err := m.send(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).InfoContext(ctx, "Password reset email sent", slog.String("to", to))
	return nil
}

// LogMailer writes mail to the log instead of sending it. It is used when SMTP is not configured.
type LogMailer struct {
	ResetTTL time.Duration
}

var _ portssvc.Mailer = (*LogMailer)(nil)

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, name, resetLink string) error {
	middleware.GetLoggerFromCtx(ctx).WarnContext(ctx, "SMTP not configured, password reset email not sent",
		slog.String("to", to),
		slog.String("reset_link", resetLink))
	return nil
}

func renderReset(name, link string, ttl time.Duration) ([]byte, error) {
	if name == "" {
		name = "there"
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, resetData{Name: name, Link: link, TTL: ttl.String()}); err != nil {
		return nil, fmt.Errorf("render reset email: %w", err)
	}
	return buf.Bytes(), nil
}

func buildMessage(from, to, subject string, body []byte) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(string(body), "\n", "\r\n"))
	return []byte(b.String())
}
