package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedOffer is one user's bookmark of a recommendation. There is at most one
// per (UserID, RecommendationID). Claimed only ever moves from false to true,
// and when it does ClaimedAt is set to a time not before SavedAt.
type SavedOffer struct {
	ID               uuid.UUID  `db:"id"`
	UserID           uuid.UUID  `db:"user_id"`
	RecommendationID uuid.UUID  `db:"recommendation_id"`
	Saved            bool       `db:"saved"`
	Claimed          bool       `db:"claimed"`
	SavedAt          time.Time  `db:"saved_at"`
	ClaimedAt        *time.Time `db:"claimed_at"`
}
