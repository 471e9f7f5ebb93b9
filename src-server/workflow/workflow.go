// Package workflow drives a registration submission from an empty form to a
// committed row: resolve the cascading category -> date -> event options,
// validate, insert, then trigger the confirmation mails.
package workflow

import (
	"context"
	"errors"
	"eventsman/src-server/catalog"
	"eventsman/src-server/mailer"
	"eventsman/src-server/model"
	"eventsman/src-server/store"
	"eventsman/src-server/utils"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/uptrace/bun"
)

// How far a selection has advanced through the form.
type State int

const (
	StateNoCategory State = iota
	StateCategorySelected
	StateDateSelected
	StateEventSelected
	StateValidated
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateNoCategory:
		return "no-category"
	case StateCategorySelected:
		return "category-selected"
	case StateDateSelected:
		return "date-selected"
	case StateEventSelected:
		return "event-selected"
	case StateValidated:
		return "validated"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Selection is the explicit form state passed between client and server on
// every render and on submit.
type Selection struct {
	Category  string
	EventDate string
	EventID   string

	FullName   string
	Email      string
	College    string
	Department string
}

// Form is one resolved render of the cascade: the option sets the user can
// currently pick from, and how far the selection got.
type Form struct {
	State      State
	Categories []string
	Dates      []string
	Events     []catalog.EventOption
}

// Result of a submission attempt. FieldErrors is non-empty when validation
// sent the user back to the form; RegistrationID is set once submitted.
type Result struct {
	State          State
	FieldErrors    ValidationError
	RegistrationID int64
}

var specialCharPattern = regexp.MustCompile(`[^A-Za-z0-9\s]`)

type Workflow struct {
	db       bun.IDB
	catalog  *catalog.Catalog
	regStore *store.RegistrationStore
	mailer   mailer.Mailer
	metrics  *utils.Metric
}

// metrics may be nil when no collector is running.
func NewWorkflow(db bun.IDB, regStore *store.RegistrationStore, mailSender mailer.Mailer, metrics *utils.Metric) *Workflow {
	return &Workflow{
		db:       db,
		catalog:  catalog.NewCatalog(db),
		regStore: regStore,
		mailer:   mailSender,
		metrics:  metrics,
	}
}

// Resolve one render of the cascade. A selected value that is no longer in
// its option set (the window closed between renders) resets that stage and
// everything after it. today must be the same instant for the whole render.
func (w *Workflow) Resolve(ctx context.Context, sel Selection, today time.Time) (*Form, error) {
	form := &Form{State: StateNoCategory}

	var err error
	if form.Categories, err = w.catalog.OpenCategories(ctx, today); err != nil {
		return nil, fmt.Errorf("Workflow.Resolve: %w", err)
	}
	if sel.Category == "" || !containsString(form.Categories, sel.Category) {
		return form, nil
	}
	form.State = StateCategorySelected

	if form.Dates, err = w.catalog.OpenDatesForCategory(ctx, sel.Category, today); err != nil {
		return nil, fmt.Errorf("Workflow.Resolve: %w", err)
	}
	if sel.EventDate == "" || !containsString(form.Dates, sel.EventDate) {
		return form, nil
	}
	form.State = StateDateSelected

	if form.Events, err = w.catalog.OpenEventsForCategoryAndDate(ctx, sel.Category, sel.EventDate, today); err != nil {
		return nil, fmt.Errorf("Workflow.Resolve: %w", err)
	}
	if sel.EventID == "" || !containsOption(form.Events, sel.EventID) {
		return form, nil
	}
	form.State = StateEventSelected

	return form, nil
}

// Validate collects every field error of the selection; nothing
// short-circuits except the duplicate check, which needs email and event to
// be present. The returned error is a store failure, not a validation
// outcome.
func (w *Workflow) Validate(ctx context.Context, sel Selection) (ValidationError, error) {
	var fieldErrs ValidationError

	for _, field := range []struct {
		name  string
		value string
	}{
		{"full_name", sel.FullName},
		{"email", sel.Email},
		{"college", sel.College},
		{"department", sel.Department},
	} {
		if field.value == "" {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   field.name,
				Message: fmt.Sprintf("%s field is required.", utils.FieldLabel(field.name)),
			})
		}
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"full_name", sel.FullName},
		{"college", sel.College},
		{"department", sel.Department},
	} {
		if specialCharPattern.MatchString(field.value) {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   field.name,
				Message: fmt.Sprintf("Special characters are not allowed in %s.", utils.FieldLabel(field.name)),
			})
		}
	}

	if sel.Email != "" && sel.EventID != "" {
		exists, err := w.regStore.Exists(ctx, sel.Email, sel.EventID)
		if err != nil {
			return nil, fmt.Errorf("Workflow.Validate: %w", err)
		}
		if exists {
			fieldErrs = append(fieldErrs, FieldError{Field: "email", Message: DuplicateMessage})
		}
	}

	return fieldErrs, nil
}

// Submit runs the full transition: resolve, validate, insert, then mail.
// Validation failures come back in the Result with the state unchanged; a
// store failure comes back as an error (*store.PersistenceError) for the
// caller to turn into its generic message. Mail failures never make it out.
func (w *Workflow) Submit(ctx context.Context, sel Selection, today time.Time) (*Result, error) {
	form, err := w.Resolve(ctx, sel, today)
	if err != nil {
		return nil, fmt.Errorf("Workflow.Submit: %w", err)
	}

	fieldErrs, err := w.Validate(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("Workflow.Submit: %w", err)
	}
	if form.State != StateEventSelected {
		fieldErrs = append(fieldErrs, FieldError{
			Field:   "event_id",
			Message: "Please pick an open category, date and event.",
		})
	}
	if len(fieldErrs) > 0 {
		return &Result{State: form.State, FieldErrors: fieldErrs}, nil
	}

	registrationModel := model.Registration{
		EventID:    sel.EventID,
		FullName:   sel.FullName,
		Email:      sel.Email,
		College:    sel.College,
		Department: sel.Department,
	}
	if err := w.regStore.Insert(ctx, &registrationModel); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// lost the pre-check race; same message as the fast path
			return &Result{
				State:       form.State,
				FieldErrors: ValidationError{{Field: "email", Message: DuplicateMessage}},
			}, nil
		}
		return nil, err
	}

	// the row is committed; everything below is best-effort
	w.sendRegistrationEmails(ctx, sel)

	return &Result{
		State:          StateSubmitted,
		RegistrationID: registrationModel.ID,
	}, nil
}

// Confirmation to the registrant always; admin notification only when
// enabled and an admin address is configured. Failures are logged per
// recipient and isolated from each other.
func (w *Workflow) sendRegistrationEmails(ctx context.Context, sel Selection) {
	eventModel, err := w.catalog.Event(ctx, sel.EventID)
	if err != nil || eventModel == nil {
		slog.Warn("can't fetch event for registration mails", "event_id", sel.EventID, "error", err)
		return
	}

	params := mailer.Params{
		Name:      sel.FullName,
		EventName: eventModel.Name,
		EventDate: eventModel.EventDate,
		Category:  eventModel.Category,
	}

	start := time.Now()
	if err := w.mailer.Send(ctx, mailer.TemplateRegistrationConfirmation, sel.Email, "en", params); err != nil {
		slog.Warn("can't send registration confirmation", "recipient", sel.Email, "error", err)
	}
	w.metrics.PushMailSend(float64(time.Since(start).Microseconds()))

	settingsModel, err := model.LoadSettings(ctx, w.db)
	if err != nil {
		slog.Warn("can't load settings for admin notification", "error", err)
		return
	}
	if !settingsModel.EnableNotifications || settingsModel.AdminEmail == "" {
		return
	}

	start = time.Now()
	if err := w.mailer.Send(ctx, mailer.TemplateAdminNotification, settingsModel.AdminEmail, "en", params); err != nil {
		slog.Warn("can't send admin notification", "recipient", settingsModel.AdminEmail, "error", err)
	}
	w.metrics.PushMailSend(float64(time.Since(start).Microseconds()))
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsOption(options []catalog.EventOption, id string) bool {
	for _, option := range options {
		if option.ID == id {
			return true
		}
	}
	return false
}
