package model

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// DateLayout is the storage format for every calendar-date column.
const DateLayout = "2006-01-02"

// Categories an event can be created under. The set is a plain slice so
// deployments can extend it without a schema change.
var Categories = []string{
	"Online Workshop",
	"Hackathon",
	"Conference",
	"One-day Workshop",
}

type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID       string `bun:"id,pk,notnull"`
	Name     string `bun:"event_name,notnull"`
	Category string `bun:"category,notnull"`

	// calendar dates in DateLayout; RegStartDate/RegEndDate bound the
	// inclusive registration window
	EventDate    string `bun:"event_date,notnull"`
	RegStartDate string `bun:"reg_start_date,notnull"`
	RegEndDate   string `bun:"reg_end_date,notnull"`

	Registrations []*Registration `bun:"rel:has-many,join:id=event_id"`
}

// RegistrationOpen reports whether today falls inside the event's
// registration window. Window bounds are inclusive.
func (e *Event) RegistrationOpen(today time.Time) bool {
	day := today.Format(DateLayout)
	return e.RegStartDate <= day && day <= e.RegEndDate
}

// Upsert the event to the database
func (e *Event) Upsert(ctx context.Context, db bun.IDB) error {
	// validate
	switch {
	case e.ID == "":
		return fmt.Errorf("Event.Upsert: id is required")
	case e.Name == "":
		return fmt.Errorf("Event.Upsert: event name is required")
	case e.Category == "":
		return fmt.Errorf("Event.Upsert: category is required")
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"event date", e.EventDate},
		{"registration start date", e.RegStartDate},
		{"registration end date", e.RegEndDate},
	} {
		if _, err := time.Parse(DateLayout, field.value); err != nil {
			return fmt.Errorf("Event.Upsert: %s is invalid: %w", field.name, err)
		}
	}

	if _, err := db.NewInsert().
		Model(e).
		On("CONFLICT (id) DO UPDATE").
		Set("event_name = EXCLUDED.event_name").
		Set("category = EXCLUDED.category").
		Set("event_date = EXCLUDED.event_date").
		Set("reg_start_date = EXCLUDED.reg_start_date").
		Set("reg_end_date = EXCLUDED.reg_end_date").
		Exec(ctx); err != nil {
		return fmt.Errorf("Event.Upsert: %w", err)
	}

	return nil
}
