package models

import (
	"time"

	"github.com/google/uuid"
)

type Connection struct {
	ID              uuid.UUID `db:"id"`
	UserID          uuid.UUID `db:"user_id"`
	ConnectedUserID uuid.UUID `db:"connected_user_id"`
	CreatedAt       time.Time `db:"created_at"`
}
