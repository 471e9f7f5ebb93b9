package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// Settings is a single-row table; the row is read and written as a unit.
type Settings struct {
	bun.BaseModel `bun:"table:settings"`

	ID                  int64  `bun:"id,pk"`
	EnableNotifications bool   `bun:"enable_notifications,notnull"`
	AdminEmail          string `bun:"admin_email"`
}

const settingsRowID = 1

// Load the settings row, zero-valued defaults when nothing was saved yet.
func LoadSettings(ctx context.Context, db bun.IDB) (*Settings, error) {
	settingsModel := new(Settings)
	if err := db.NewSelect().
		Model(settingsModel).
		Where("id = ?", settingsRowID).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &Settings{ID: settingsRowID}, nil
		}
		return nil, fmt.Errorf("LoadSettings: %w", err)
	}
	return settingsModel, nil
}

// Save the settings row as a unit
func (s *Settings) Save(ctx context.Context, db bun.IDB) error {
	s.ID = settingsRowID
	if _, err := db.NewInsert().
		Model(s).
		On("CONFLICT (id) DO UPDATE").
		Set("enable_notifications = EXCLUDED.enable_notifications").
		Set("admin_email = EXCLUDED.admin_email").
		Exec(ctx); err != nil {
		return fmt.Errorf("Settings.Save: %w", err)
	}
	return nil
}
