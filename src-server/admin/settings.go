package admin

import (
	"context"
	"eventsman/src-server/model"

	"github.com/uptrace/bun"
)

// Current notification settings.
func Settings(ctx context.Context, db bun.IDB) (*model.Settings, error) {
	return model.LoadSettings(ctx, db)
}

// UpdateSettings writes both values as a unit and returns the saved row.
// The admin email is stored even while notifications are off; the
// enable_notifications flag alone decides whether it is used at send time.
func UpdateSettings(ctx context.Context, db bun.IDB, enableNotifications bool, adminEmail string) (*model.Settings, error) {
	settingsModel := model.Settings{
		EnableNotifications: enableNotifications,
		AdminEmail:          adminEmail,
	}
	if err := settingsModel.Save(ctx, db); err != nil {
		return nil, err
	}
	return &settingsModel, nil
}
