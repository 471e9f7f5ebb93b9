package mailer

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
)

const (
	TemplateRegistrationConfirmation = "registration_confirmation"
	TemplateAdminNotification        = "admin_notification"
)

// Params carried into every mail template.
type Params struct {
	Name      string
	EventName string
	EventDate string
	Category  string
}

// Mailer delivers one templated message to one recipient.
type Mailer interface {
	Send(ctx context.Context, templateID string, recipient string, locale string, params Params) error
}

// Mail dispatch failure. Never surfaced to the registrant and never reverses
// a committed registration; callers log it and move on.
type NotificationError struct {
	TemplateID string
	Recipient  string
	Err        error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("can't send %s to %s: %v", e.TemplateID, e.Recipient, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

type renderedMail struct {
	Subject string
	Body    string
}

var templates = map[string]map[string]struct {
	subject string
	body    *template.Template
}{
	"en": {
		TemplateRegistrationConfirmation: {
			subject: "Registration confirmed: {{.EventName}}",
			body: template.Must(template.New(TemplateRegistrationConfirmation).Parse(
				"Hi {{.Name}},\n\n" +
					"You are registered for {{.EventName}} ({{.Category}}) on {{.EventDate}}.\n\n" +
					"See you there!\n")),
		},
		TemplateAdminNotification: {
			subject: "New registration: {{.EventName}}",
			body: template.Must(template.New(TemplateAdminNotification).Parse(
				"{{.Name}} registered for {{.EventName}} ({{.Category}}) on {{.EventDate}}.\n")),
		},
	},
}

func render(templateID string, locale string, params Params) (renderedMail, error) {
	localeTemplates, ok := templates[locale]
	if !ok {
		localeTemplates = templates["en"]
	}
	tmpl, ok := localeTemplates[templateID]
	if !ok {
		return renderedMail{}, fmt.Errorf("render: unknown template %q", templateID)
	}

	subjectTmpl, err := template.New("subject").Parse(tmpl.subject)
	if err != nil {
		return renderedMail{}, fmt.Errorf("render: %w", err)
	}
	var subject bytes.Buffer
	if err := subjectTmpl.Execute(&subject, params); err != nil {
		return renderedMail{}, fmt.Errorf("render: %w", err)
	}
	var body bytes.Buffer
	if err := tmpl.body.Execute(&body, params); err != nil {
		return renderedMail{}, fmt.Errorf("render: %w", err)
	}

	return renderedMail{
		Subject: subject.String(),
		Body:    body.String(),
	}, nil
}
