// Package catalog holds the read-only event queries backing the cascading
// category -> date -> event filters. "Open" queries only see events whose
// registration window contains the given reference day; callers must reuse
// one instant across a logical form render so the cascade stays consistent.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"eventsman/src-server/model"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// One entry of an ordered id -> name mapping.
type EventOption struct {
	ID   string
	Name string
}

type Catalog struct {
	db bun.IDB
}

func NewCatalog(db bun.IDB) *Catalog {
	return &Catalog{db: db}
}

// All distinct event dates across all events, no window restriction.
func (c *Catalog) DistinctEventDates(ctx context.Context) ([]string, error) {
	var dates []string
	if err := c.db.NewSelect().
		Model((*model.Event)(nil)).
		Column("event_date").
		Distinct().
		Order("event_date ASC").
		Scan(ctx, &dates); err != nil {
		return nil, fmt.Errorf("Catalog.DistinctEventDates: %w", err)
	}
	return dates, nil
}

// Events on the given date, no window restriction.
func (c *Catalog) EventsOnDate(ctx context.Context, date string) ([]EventOption, error) {
	var eventModels []model.Event
	if err := c.db.NewSelect().
		Model(&eventModels).
		Column("id", "event_name").
		Where("event_date = ?", date).
		Order("event_name ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("Catalog.EventsOnDate: %w", err)
	}
	return toOptions(eventModels), nil
}

// Distinct categories with at least one event open for registration today.
func (c *Catalog) OpenCategories(ctx context.Context, today time.Time) ([]string, error) {
	var categories []string
	if err := c.db.NewSelect().
		Model((*model.Event)(nil)).
		Column("category").
		Distinct().
		Where("reg_start_date <= ?", today.Format(model.DateLayout)).
		Where("reg_end_date >= ?", today.Format(model.DateLayout)).
		Order("category ASC").
		Scan(ctx, &categories); err != nil {
		return nil, fmt.Errorf("Catalog.OpenCategories: %w", err)
	}
	return categories, nil
}

// Distinct event dates in the category that are open for registration today.
func (c *Catalog) OpenDatesForCategory(ctx context.Context, category string, today time.Time) ([]string, error) {
	var dates []string
	if err := c.db.NewSelect().
		Model((*model.Event)(nil)).
		Column("event_date").
		Distinct().
		Where("category = ?", category).
		Where("reg_start_date <= ?", today.Format(model.DateLayout)).
		Where("reg_end_date >= ?", today.Format(model.DateLayout)).
		Order("event_date ASC").
		Scan(ctx, &dates); err != nil {
		return nil, fmt.Errorf("Catalog.OpenDatesForCategory: %w", err)
	}
	return dates, nil
}

// Events in the category on the date that are open for registration today.
func (c *Catalog) OpenEventsForCategoryAndDate(ctx context.Context, category string, date string, today time.Time) ([]EventOption, error) {
	var eventModels []model.Event
	if err := c.db.NewSelect().
		Model(&eventModels).
		Column("id", "event_name").
		Where("category = ?", category).
		Where("event_date = ?", date).
		Where("reg_start_date <= ?", today.Format(model.DateLayout)).
		Where("reg_end_date >= ?", today.Format(model.DateLayout)).
		Order("event_name ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("Catalog.OpenEventsForCategoryAndDate: %w", err)
	}
	return toOptions(eventModels), nil
}

// One event by id, nil when it doesn't exist.
func (c *Catalog) Event(ctx context.Context, id string) (*model.Event, error) {
	eventModel := new(model.Event)
	if err := c.db.NewSelect().
		Model(eventModel).
		Where("id = ?", id).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("Catalog.Event: %w", err)
	}
	return eventModel, nil
}

func toOptions(eventModels []model.Event) []EventOption {
	options := make([]EventOption, 0, len(eventModels))
	for _, eventModel := range eventModels {
		options = append(options, EventOption{
			ID:   eventModel.ID,
			Name: eventModel.Name,
		})
	}
	return options
}
