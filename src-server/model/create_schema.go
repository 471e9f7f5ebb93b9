package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

func CreateSchema(ctx context.Context, db *bun.DB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []interface{}{
			(*Event)(nil),
			(*Registration)(nil),
			(*Settings)(nil),
		} {
			if _, err := tx.
				NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
		}

		// authoritative duplicate guard; the workflow's pre-check is only
		// the fast path for the user-facing message
		if _, err := tx.
			NewCreateIndex().
			Model((*Registration)(nil)).
			Index("registrations_email_event_id_key").
			Unique().
			IfNotExists().
			Column("email", "event_id").
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return fmt.Errorf("CreateSchema: %w", err)
	}

	return nil
}
