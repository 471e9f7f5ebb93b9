// Package admin is the glue behind the admin surfaces: event creation,
// registration listing, CSV export, and notification settings.
package admin

import (
	"context"
	"eventsman/src-server/model"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olebedev/when"
	"github.com/uptrace/bun"
)

// Raw admin input for one new event. Dates accept the storage layout or
// anything the natural parser understands ("next friday").
type EventInput struct {
	Name         string
	Category     string
	EventDate    string
	RegStartDate string
	RegEndDate   string
}

// CreateEvent inserts a new event and returns it. The error text is shown
// to the admin verbatim.
func CreateEvent(ctx context.Context, db bun.IDB, whenParser *when.Parser, loc *time.Location, input EventInput) (*model.Event, error) {
	eventDate, err := parseDate(whenParser, loc, input.EventDate)
	if err != nil {
		return nil, fmt.Errorf("CreateEvent: can't parse event date: %w", err)
	}
	regStartDate, err := parseDate(whenParser, loc, input.RegStartDate)
	if err != nil {
		return nil, fmt.Errorf("CreateEvent: can't parse registration start date: %w", err)
	}
	regEndDate, err := parseDate(whenParser, loc, input.RegEndDate)
	if err != nil {
		return nil, fmt.Errorf("CreateEvent: can't parse registration end date: %w", err)
	}

	eventModel := model.Event{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Category:     input.Category,
		EventDate:    eventDate,
		RegStartDate: regStartDate,
		RegEndDate:   regEndDate,
	}
	if err := eventModel.Upsert(ctx, db); err != nil {
		return nil, err
	}

	return &eventModel, nil
}

// Strict storage layout first, then the natural-language parser.
func parseDate(whenParser *when.Parser, loc *time.Location, text string) (string, error) {
	if parsed, err := time.ParseInLocation(model.DateLayout, text, loc); err == nil {
		return parsed.Format(model.DateLayout), nil
	}

	result, err := whenParser.Parse(text, time.Now().In(loc))
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", fmt.Errorf("%q is not a date", text)
	}
	return result.Time.Format(model.DateLayout), nil
}
