package repository

import (
	"context"
	"errors"
	"time"

	"shareit/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("record already exists")
	ErrAlreadyClaimed = errors.New("offer already claimed")
)

type UserStore interface {
	// Create inserts the user together with an empty wallet.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type BusinessStore interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
	// Search matches query case-insensitively against name and category.
	// An empty query lists everything.
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Business, error)
}

type RecommendationFilter struct {
	UserID     *uuid.UUID
	BusinessID *uuid.UUID
	Limit      int
	Offset     int
}

type RecommendationStore interface {
	Create(ctx context.Context, rec *models.Recommendation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error)
	List(ctx context.Context, filter RecommendationFilter) ([]*models.Recommendation, error)
	IncrementViewCount(ctx context.Context, id uuid.UUID) (*models.Recommendation, error)
}

type SavedOfferStore interface {
	// SaveIfAbsent inserts offer unless one already exists for its
	// (UserID, RecommendationID) pair. On insert the recommendation's
	// saved count is incremented in the same atomic unit. It returns the
	// stored record and whether it was created by this call.
	SaveIfAbsent(ctx context.Context, offer *models.SavedOffer) (*models.SavedOffer, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.SavedOffer, error)
	// ListByUserID returns the user's offers, most recently saved first.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.SavedOffer, error)
	// Claim flips the offer to claimed, records the reward and credits the
	// reward owner's wallet as one atomic unit. It returns ErrAlreadyClaimed
	// if the offer was claimed before, ErrNotFound if it does not exist.
	Claim(ctx context.Context, offerID uuid.UUID, claimedAt time.Time, reward *models.Reward) (*models.SavedOffer, error)
}

type WalletStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	SetCoins(ctx context.Context, userID uuid.UUID, coins int64, at time.Time) (*models.Wallet, error)
	ListRewards(ctx context.Context, userID uuid.UUID) ([]*models.Reward, error)
}

type ConnectionStore interface {
	Create(ctx context.Context, conn *models.Connection) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Connection, error)
}
