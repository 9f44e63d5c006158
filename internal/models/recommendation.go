package models

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is a user's endorsement of a business. Discount and Rating
// are optional; nil means the author did not provide one.
type Recommendation struct {
	ID           uuid.UUID  `db:"id"`
	UserID       uuid.UUID  `db:"user_id"`
	BusinessID   uuid.UUID  `db:"business_id"`
	BusinessName string     `db:"business_name"`
	Discount     *int       `db:"discount"` // percent, 0-100
	Rating       *int       `db:"rating"`   // 1-5
	Comment      string     `db:"comment"`
	ValidUntil   *time.Time `db:"valid_until"`
	SavedCount   int64      `db:"saved_count"`
	ViewCount    int64      `db:"view_count"`
	CreatedAt    time.Time  `db:"created_at"`
}
