package catalog_test

import (
	"context"
	"database/sql"
	"eventsman/src-server/catalog"
	"eventsman/src-server/model"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	bundb := bun.NewDB(db, sqlitedialect.New())
	if err := model.CreateSchema(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { bundb.Close() })
	return bundb
}

func seedEvent(t *testing.T, bundb *bun.DB, name, category, eventDate, regStart, regEnd string) model.Event {
	t.Helper()
	eventModel := model.Event{
		ID:           uuid.NewString(),
		Name:         name,
		Category:     category,
		EventDate:    eventDate,
		RegStartDate: regStart,
		RegEndDate:   regEnd,
	}
	if err := eventModel.Upsert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}
	return eventModel
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatal(err)
	}
	return parsed
}

func TestOpenCategories(t *testing.T) {
	bundb := newTestDB(t)
	eventCatalog := catalog.NewCatalog(bundb)

	seedEvent(t, bundb, "Robo Hack", "Hackathon", "2024-05-01", "2024-04-01", "2024-04-30")
	seedEvent(t, bundb, "Go Summit", "Conference", "2024-06-01", "2024-05-10", "2024-05-20")

	// a category shows up iff reg_start <= today <= reg_end for one of
	// its events, bounds inclusive
	for _, tc := range []struct {
		today string
		want  []string
	}{
		{"2024-03-31", nil},
		{"2024-04-01", []string{"Hackathon"}},
		{"2024-04-30", []string{"Hackathon"}},
		{"2024-05-01", nil},
		{"2024-05-15", []string{"Conference"}},
	} {
		categories, err := eventCatalog.OpenCategories(context.Background(), day(t, tc.today))
		if err != nil {
			t.Fatal(err)
		}
		if len(categories) != len(tc.want) {
			t.Errorf("OpenCategories(%s) = %v, want %v", tc.today, categories, tc.want)
			continue
		}
		for i := range tc.want {
			if categories[i] != tc.want[i] {
				t.Errorf("OpenCategories(%s) = %v, want %v", tc.today, categories, tc.want)
			}
		}
	}
}

func TestCascadeConsistent(t *testing.T) {
	bundb := newTestDB(t)
	eventCatalog := catalog.NewCatalog(bundb)
	today := day(t, "2024-04-15")

	seedEvent(t, bundb, "Robo Hack", "Hackathon", "2024-05-01", "2024-04-01", "2024-04-30")
	seedEvent(t, bundb, "AI Hack", "Hackathon", "2024-05-02", "2024-04-01", "2024-04-30")
	// same category and date but closed window, must never cascade through
	seedEvent(t, bundb, "Old Hack", "Hackathon", "2024-05-01", "2024-03-01", "2024-03-31")
	seedEvent(t, bundb, "Go Summit", "Conference", "2024-05-01", "2024-04-01", "2024-04-30")

	dates, err := eventCatalog.OpenDatesForCategory(context.Background(), "Hackathon", today)
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 2 || dates[0] != "2024-05-01" || dates[1] != "2024-05-02" {
		t.Fatal("unexpected open dates", dates)
	}

	// every event below an open date has that category and date, and is open
	for _, date := range dates {
		events, err := eventCatalog.OpenEventsForCategoryAndDate(context.Background(), "Hackathon", date, today)
		if err != nil {
			t.Fatal(err)
		}
		for _, option := range events {
			eventModel, err := eventCatalog.Event(context.Background(), option.ID)
			if err != nil {
				t.Fatal(err)
			}
			if eventModel.Category != "Hackathon" || eventModel.EventDate != date {
				t.Error("cascade returned a foreign event", eventModel)
			}
			if !eventModel.RegistrationOpen(today) {
				t.Error("cascade returned a closed event", eventModel.Name)
			}
		}
	}

	events, err := eventCatalog.OpenEventsForCategoryAndDate(context.Background(), "Hackathon", "2024-05-01", today)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Name != "Robo Hack" {
		t.Error("expected only the open Robo Hack on 2024-05-01", events)
	}
}

func TestListingQueriesIgnoreWindow(t *testing.T) {
	bundb := newTestDB(t)
	eventCatalog := catalog.NewCatalog(bundb)

	seedEvent(t, bundb, "Robo Hack", "Hackathon", "2024-05-01", "2024-04-01", "2024-04-30")
	closed := seedEvent(t, bundb, "Old Hack", "Hackathon", "2024-05-01", "2024-03-01", "2024-03-31")
	seedEvent(t, bundb, "Go Summit", "Conference", "2024-06-01", "2024-05-10", "2024-05-20")

	dates, err := eventCatalog.DistinctEventDates(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 2 || dates[0] != "2024-05-01" || dates[1] != "2024-06-01" {
		t.Error("expected distinct ordered dates across all events", dates)
	}

	events, err := eventCatalog.EventsOnDate(context.Background(), "2024-05-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatal("listing must include closed events", events)
	}
	found := false
	for _, option := range events {
		if option.ID == closed.ID {
			found = true
		}
	}
	if !found {
		t.Error("closed event missing from listing options")
	}
}
