// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mailer sends transactional email through SMTP providers stored
// in the database, with an environment-configured fallback provider.
package mailer

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"hackerthink/internal/models"
	"hackerthink/internal/store"
)

// Fallback is the environment-configured provider used when no default
// provider exists in the database or the stored one fails.
type Fallback struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	UseTLS    bool
}

// Message is one outbound email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer resolves the active SMTP provider and dispatches messages.
type Mailer struct {
	configs  *store.SMTPConfigStore
	key      []byte // AES-256 key for stored passwords
	fallback *Fallback
}

// New creates a Mailer. fallback may be nil when no environment provider
// is configured.
func New(configs *store.SMTPConfigStore, key []byte, fallback *Fallback) *Mailer {
	return &Mailer{configs: configs, key: key, fallback: fallback}
}

// Send dispatches a message through the default stored provider, falling
// back to the environment provider when none is stored or delivery fails.
func (m *Mailer) Send(msg *Message) error {
	cfg, err := m.configs.Default()
	if err != nil {
		slog.Warn("smtp provider lookup failed", "error", err)
	}

	if cfg != nil {
		password := ""
		if len(cfg.PasswordEnc) > 0 {
			password, err = Decrypt(m.key, cfg.PasswordEnc)
			if err != nil {
				return fmt.Errorf("decrypt smtp password: %w", err)
			}
		}
		err = send(cfg.Addr(), cfg.Username, password, cfg.FromEmail, cfg.UseTLS, msg)
		if err == nil {
			return nil
		}
		slog.Error("stored smtp provider failed, trying fallback",
			"provider", cfg.Name, "error", err)
	}

	if m.fallback == nil || m.fallback.Host == "" {
		if cfg == nil {
			return fmt.Errorf("no smtp provider configured")
		}
		return fmt.Errorf("send mail: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.fallback.Host, m.fallback.Port)
	if err := send(addr, m.fallback.Username, m.fallback.Password, m.fallback.FromEmail, m.fallback.UseTLS, msg); err != nil {
		return fmt.Errorf("send mail via fallback: %w", err)
	}
	return nil
}

// NotifyComment sends the moderation notification for a newly submitted
// comment. Failures are logged, never surfaced to the commenter.
func (m *Mailer) NotifyComment(to string, c *models.Comment) {
	if to == "" {
		return
	}
	msg := &Message{
		To:      []string{to},
		Subject: fmt.Sprintf("New comment from %s awaiting moderation", c.AuthorName),
		Body: fmt.Sprintf("Author: %s <%s>\nThread: %s\nSubmitted: %s\n\n%s\n",
			c.AuthorName, c.AuthorEmail, c.ContentID,
			c.CreatedAt.Format(time.RFC3339), c.Body),
	}
	if err := m.Send(msg); err != nil {
		slog.Error("comment notification failed", "comment", c.ID, "error", err)
	}
}

// send performs the actual SMTP delivery. Port 465 gets implicit TLS,
// everything else uses STARTTLS when the provider asks for TLS.
func send(addr, username, password, from string, useTLS bool, msg *Message) error {
	var auth smtp.Auth
	host := addr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		host = addr[:idx]
	}
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	payload := buildPayload(from, msg)

	if useTLS && strings.HasSuffix(addr, ":465") {
		return sendImplicitTLS(addr, host, auth, from, msg.To, payload)
	}

	return smtp.SendMail(addr, auth, from, msg.To, payload)
}

func sendImplicitTLS(addr, host string, auth smtp.Auth, from string, to []string, payload []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return fmt.Errorf("smtp tls dial: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt: %w", err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return client.Quit()
}

// buildPayload assembles the RFC 5322 message bytes.
func buildPayload(from string, msg *Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
