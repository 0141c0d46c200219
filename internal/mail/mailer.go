// Package mail delivers rendered invoice emails through an SMTP relay.
// Delivery is synchronous and at-most-once: the caller blocks until the
// relay answers, and nothing is queued or retried on failure.
package mail

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

type SMTPMailer struct {
	client   *mail.Client
	from     string
	fromName string
}

// New builds a mailer for the relay at host:port. Port 465 speaks implicit
// TLS; any other port, such as a STARTTLS submission relay on 587, negotiates
// TLS after connecting.
func New(host string, port int, user, password, from, fromName string) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(user),
		mail.WithPassword(password),
	}

	if port == 465 {
		opts = append(opts, mail.WithSSLPort(false))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	return &SMTPMailer{
		client:   client,
		from:     from,
		fromName: fromName,
	}, nil
}

// Send composes an HTML message and hands it to the relay. Authentication
// rejections, unreachable relays and refused recipients all come back as a
// single error.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("delivering mail: %w", err)
	}

	return nil
}
