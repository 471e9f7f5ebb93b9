// Package store persists and reads back registrations. The unique index on
// (email, event_id) is the authoritative duplicate guard; Exists only feeds
// the fast-path user-facing message.
package store

import (
	"context"
	"errors"
	"eventsman/src-server/model"
	"eventsman/src-server/utils"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// The (email, event_id) pair already has a registration.
var ErrDuplicate = errors.New("already registered for this event")

// Store read/write failure. The registrant sees a generic message; the
// detail stays in the logs.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// One listing row: registration fields joined with the event's date.
type Row struct {
	FullName   string `bun:"full_name"`
	Email      string `bun:"email"`
	EventDate  string `bun:"event_date"`
	College    string `bun:"college"`
	Department string `bun:"department"`
	Created    int64  `bun:"created"`
}

type RegistrationStore struct {
	db      bun.IDB
	metrics *utils.Metric
}

// metrics may be nil when no collector is running.
func NewRegistrationStore(db bun.IDB, metrics *utils.Metric) *RegistrationStore {
	return &RegistrationStore{db: db, metrics: metrics}
}

// Whether a registration already exists for the (email, eventID) pair.
func (s *RegistrationStore) Exists(ctx context.Context, email string, eventID string) (bool, error) {
	start := time.Now()
	exists, err := s.db.NewSelect().
		Model((*model.Registration)(nil)).
		Where("email = ?", email).
		Where("event_id = ?", eventID).
		Exists(ctx)
	if err != nil {
		return false, &PersistenceError{Op: "RegistrationStore.Exists", Err: err}
	}
	s.metrics.PushDatabaseRead(float64(time.Since(start).Microseconds()))
	return exists, nil
}

// Insert the registration, stamping Created when unset. Returns ErrDuplicate
// when the unique index rejects the write (two submissions can both pass the
// Exists pre-check; the index settles the race).
func (s *RegistrationStore) Insert(ctx context.Context, registrationModel *model.Registration) error {
	if registrationModel.EventID == "" {
		return &PersistenceError{Op: "RegistrationStore.Insert", Err: errors.New("event id is required")}
	}
	if registrationModel.Created == 0 {
		registrationModel.Created = time.Now().Unix()
	}

	start := time.Now()
	if _, err := s.db.NewInsert().
		Model(registrationModel).
		Exec(ctx); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicate
		}
		return &PersistenceError{Op: "RegistrationStore.Insert", Err: err}
	}
	s.metrics.PushDatabaseWrite(float64(time.Since(start).Microseconds()))
	s.metrics.PushRegistrationCreated()

	return nil
}

// Registrations joined with the event date, oldest first, optionally
// filtered by event date and/or event id. No pagination; the full result
// set comes back.
func (s *RegistrationStore) ListRegistrations(ctx context.Context, filterDate string, filterEventID string) ([]Row, error) {
	query := s.db.NewSelect().
		Model((*model.Registration)(nil)).
		ColumnExpr("r.full_name, r.email, r.college, r.department, r.created").
		ColumnExpr("e.event_date").
		Join("JOIN events AS e ON e.id = r.event_id").
		Order("r.created ASC").
		Order("r.id ASC")
	if filterDate != "" {
		query = query.Where("e.event_date = ?", filterDate)
	}
	if filterEventID != "" {
		query = query.Where("r.event_id = ?", filterEventID)
	}

	start := time.Now()
	var rows []Row
	if err := query.Scan(ctx, &rows); err != nil {
		return nil, &PersistenceError{Op: "RegistrationStore.ListRegistrations", Err: err}
	}
	s.metrics.PushDatabaseRead(float64(time.Since(start).Microseconds()))

	return rows, nil
}
