package model

import (
	"github.com/uptrace/bun"
)

type Registration struct {
	bun.BaseModel `bun:"table:registrations,alias:r"`

	ID         int64  `bun:"id,pk,autoincrement"`
	EventID    string `bun:"event_id,notnull"` // required
	FullName   string `bun:"full_name,notnull"`
	Email      string `bun:"email,notnull"`
	College    string `bun:"college,notnull"`
	Department string `bun:"department,notnull"`
	Created    int64  `bun:"created,notnull"` // unix seconds, set at insert

	Event *Event `bun:"rel:belongs-to,join:event_id=id"`
}
