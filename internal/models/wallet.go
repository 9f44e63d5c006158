package models

import (
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	UserID    uuid.UUID `db:"user_id"`
	Coins     int64     `db:"coins"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Reward is the ledger entry written when a claim credits a referrer.
// SavedOfferID is unique: an offer pays out at most once.
type Reward struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	SavedOfferID uuid.UUID `db:"saved_offer_id"`
	Coins        int64     `db:"coins"`
	CreatedAt    time.Time `db:"created_at"`
}
