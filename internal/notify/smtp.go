// Package notify delivers staged lifecycle notices to account owners over
// SMTP. It implements both the Notifier and Session ports: the connection is
// opened once per sweep run and reused for every message.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"privsweep/internal/sweep/models"
	dErrors "privsweep/pkg/domain-errors"
)

// SMTPNotifier holds one SMTP connection for the duration of a run.
// Not safe for concurrent use; the sweep engine is strictly sequential.
type SMTPNotifier struct {
	host   string
	port   int
	sender string
	auth   smtp.Auth
	client *smtp.Client
}

type SMTPOption func(*SMTPNotifier)

// WithAuth enables PLAIN authentication against the relay.
func WithAuth(username, password string) SMTPOption {
	return func(n *SMTPNotifier) {
		if username != "" {
			n.auth = smtp.PlainAuth("", username, password, n.host)
		}
	}
}

func NewSMTPNotifier(host string, port int, sender string, opts ...SMTPOption) (*SMTPNotifier, error) {
	if host == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "smtp host is required")
	}
	if sender == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "smtp sender is required")
	}
	n := &SMTPNotifier{host: host, port: port, sender: sender}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Connect opens the mail session. A failure here is fatal for the run.
func (n *SMTPNotifier) Connect(_ context.Context) error {
	client, err := smtp.Dial(fmt.Sprintf("%s:%d", n.host, n.port))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "connect to smtp relay")
	}
	if n.auth != nil {
		if err := client.Auth(n.auth); err != nil {
			_ = client.Close()
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "authenticate to smtp relay")
		}
	}
	n.client = client
	return nil
}

// Disconnect closes the mail session. Best effort; called on every exit path.
func (n *SMTPNotifier) Disconnect(_ context.Context) error {
	if n.client == nil {
		return nil
	}
	defer func() { n.client = nil }()
	if err := n.client.Quit(); err != nil {
		return fmt.Errorf("smtp quit: %w", err)
	}
	return nil
}

// Send delivers one staged notice. Errors propagate unwrapped in meaning:
// the orchestrator treats any failure here as fatal for the whole run.
func (n *SMTPNotifier) Send(_ context.Context, stage models.NotificationStage, account models.AccountRecord, recipient string, inactivityDays int) error {
	if n.client == nil {
		return dErrors.New(dErrors.CodeUnavailable, "smtp session not established")
	}

	subject, body, err := renderMessage(stage, account, recipient, inactivityDays)
	if err != nil {
		return err
	}

	if err := n.client.Mail(n.sender); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "smtp MAIL FROM")
	}
	if err := n.client.Rcpt(recipient); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "smtp RCPT TO "+recipient)
	}
	writer, err := n.client.Data()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "smtp DATA")
	}
	if _, err := writer.Write([]byte(formatMessage(n.sender, recipient, subject, body))); err != nil {
		_ = writer.Close()
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "smtp write body")
	}
	if err := writer.Close(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "smtp finish message")
	}
	return nil
}

func formatMessage(sender, recipient, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", sender)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
