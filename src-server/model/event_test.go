package model_test

import (
	"context"
	"database/sql"
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

func TestEventUpsert(t *testing.T) {
	bundb := newTestDB(t)

	eventModel := model.Event{
		ID:           uuid.NewString(),
		Name:         "Robo Hack",
		Category:     "Hackathon",
		EventDate:    "2024-05-01",
		RegStartDate: "2024-04-01",
		RegEndDate:   "2024-04-30",
	}
	if err := eventModel.Upsert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}

	// case: roundtrip
	func() {
		eventModelTest := new(model.Event)
		if err := bundb.NewSelect().
			Model(eventModelTest).
			Where("id = ?", eventModel.ID).
			Scan(context.Background()); err != nil {
			t.Fatal(err)
		}
		if eventModelTest.Name != "Robo Hack" || eventModelTest.Category != "Hackathon" {
			t.Error("event not stored", eventModelTest)
		}
	}()

	// case: upsert replaces fields on conflict
	func() {
		eventModel.Name = "Robo Hack 2"
		if err := eventModel.Upsert(context.Background(), bundb); err != nil {
			t.Fatal(err)
		}
		count, err := bundb.NewSelect().
			Model((*model.Event)(nil)).
			Count(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Error("upsert should not create a second row", count)
		}
	}()

	// case: validation
	for _, invalid := range []model.Event{
		{ID: uuid.NewString(), Category: "Hackathon", EventDate: "2024-05-01", RegStartDate: "2024-04-01", RegEndDate: "2024-04-30"},
		{ID: uuid.NewString(), Name: "x", EventDate: "2024-05-01", RegStartDate: "2024-04-01", RegEndDate: "2024-04-30"},
		{ID: uuid.NewString(), Name: "x", Category: "Hackathon", EventDate: "05/01/2024", RegStartDate: "2024-04-01", RegEndDate: "2024-04-30"},
	} {
		if err := invalid.Upsert(context.Background(), bundb); err == nil {
			t.Error("invalid event should not upsert", invalid)
		}
	}
}

func TestEventRegistrationOpen(t *testing.T) {
	eventModel := model.Event{
		RegStartDate: "2024-04-01",
		RegEndDate:   "2024-04-30",
	}

	day := func(s string) time.Time {
		parsed, err := time.Parse(model.DateLayout, s)
		if err != nil {
			t.Fatal(err)
		}
		return parsed
	}

	// window bounds are inclusive
	for _, tc := range []struct {
		today string
		want  bool
	}{
		{"2024-03-31", false},
		{"2024-04-01", true},
		{"2024-04-15", true},
		{"2024-04-30", true},
		{"2024-05-01", false},
	} {
		if got := eventModel.RegistrationOpen(day(tc.today)); got != tc.want {
			t.Errorf("RegistrationOpen(%s) = %t, want %t", tc.today, got, tc.want)
		}
	}
}
