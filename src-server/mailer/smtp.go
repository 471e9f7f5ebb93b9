package mailer

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

type SMTPMailer struct {
	client *gomail.Client
	from   string
}

var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	if host == "" {
		return nil, fmt.Errorf("NewSMTPMailer: host is blank")
	}
	if from == "" {
		return nil, fmt.Errorf("NewSMTPMailer: from address is blank")
	}

	opts := []gomail.Option{gomail.WithPort(port)}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}
	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewSMTPMailer: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   from,
	}, nil
}

// Send renders the template and delivers it synchronously.
func (m *SMTPMailer) Send(ctx context.Context, templateID string, recipient string, locale string, params Params) error {
	rendered, err := render(templateID, locale, params)
	if err != nil {
		return &NotificationError{TemplateID: templateID, Recipient: recipient, Err: err}
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return &NotificationError{TemplateID: templateID, Recipient: recipient, Err: err}
	}
	if err := msg.To(recipient); err != nil {
		return &NotificationError{TemplateID: templateID, Recipient: recipient, Err: err}
	}
	msg.Subject(rendered.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, rendered.Body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return &NotificationError{TemplateID: templateID, Recipient: recipient, Err: err}
	}

	return nil
}

// DiscardMailer is used when no SMTP host is configured; sends are logged
// and dropped.
type DiscardMailer struct{}

var _ Mailer = DiscardMailer{}

func (DiscardMailer) Send(_ context.Context, templateID string, recipient string, _ string, _ Params) error {
	slog.Warn("mail dispatch disabled, dropping message", "template", templateID, "recipient", recipient)
	return nil
}
