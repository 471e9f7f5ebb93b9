package store_test

import (
	"context"
	"database/sql"
	"errors"
	"eventsman/src-server/model"
	"eventsman/src-server/store"
	"testing"

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

func seedEvent(t *testing.T, bundb *bun.DB, name, eventDate string) model.Event {
	t.Helper()
	eventModel := model.Event{
		ID:           uuid.NewString(),
		Name:         name,
		Category:     "Hackathon",
		EventDate:    eventDate,
		RegStartDate: "2024-04-01",
		RegEndDate:   "2024-04-30",
	}
	if err := eventModel.Upsert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}
	return eventModel
}

func TestExistsAndInsert(t *testing.T) {
	bundb := newTestDB(t)
	regStore := store.NewRegistrationStore(bundb, nil)
	eventModel := seedEvent(t, bundb, "Robo Hack", "2024-05-01")

	exists, err := regStore.Exists(context.Background(), "a@b.com", eventModel.ID)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("nothing inserted yet")
	}

	registrationModel := model.Registration{
		EventID:    eventModel.ID,
		FullName:   "John Doe",
		Email:      "a@b.com",
		College:    "Some College",
		Department: "CSE",
	}
	if err := regStore.Insert(context.Background(), &registrationModel); err != nil {
		t.Fatal(err)
	}
	if registrationModel.Created == 0 {
		t.Error("Insert must stamp Created")
	}
	if registrationModel.ID == 0 {
		t.Error("Insert must fill the generated id")
	}

	exists, err = regStore.Exists(context.Background(), "a@b.com", eventModel.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("registration should exist now")
	}

	// same pair again loses to the unique index
	duplicate := model.Registration{
		EventID:    eventModel.ID,
		FullName:   "John Doe",
		Email:      "a@b.com",
		College:    "Some College",
		Department: "CSE",
	}
	if err := regStore.Insert(context.Background(), &duplicate); !errors.Is(err, store.ErrDuplicate) {
		t.Error("expected ErrDuplicate, got", err)
	}
}

func TestListRegistrations(t *testing.T) {
	bundb := newTestDB(t)
	regStore := store.NewRegistrationStore(bundb, nil)
	roboHack := seedEvent(t, bundb, "Robo Hack", "2024-05-01")
	aiHack := seedEvent(t, bundb, "AI Hack", "2024-05-02")

	for i, reg := range []model.Registration{
		{EventID: roboHack.ID, FullName: "John Doe", Email: "a@b.com", College: "Some College", Department: "CSE"},
		{EventID: aiHack.ID, FullName: "Jane Roe", Email: "jane@b.com", College: "Other College", Department: "ECE"},
		{EventID: roboHack.ID, FullName: "Max Moe", Email: "max@b.com", College: "Some College", Department: "CSE"},
	} {
		reg.Created = int64(100 + i)
		if err := regStore.Insert(context.Background(), &reg); err != nil {
			t.Fatal(err)
		}
	}

	// unfiltered: everything, joined with the event date, oldest first
	rows, err := regStore.ListRegistrations(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatal("expected 3 rows", rows)
	}
	if rows[0].FullName != "John Doe" || rows[2].FullName != "Max Moe" {
		t.Error("rows out of order", rows)
	}
	if rows[1].EventDate != "2024-05-02" {
		t.Error("join did not carry the event date", rows[1])
	}

	// filter by date
	rows, err = regStore.ListRegistrations(context.Background(), "2024-05-01", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Error("date filter should keep the two Robo Hack rows", rows)
	}

	// filter by date and event
	rows, err = regStore.ListRegistrations(context.Background(), "2024-05-02", aiHack.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Email != "jane@b.com" {
		t.Error("combined filter should keep only Jane", rows)
	}
}
