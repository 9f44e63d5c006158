package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var savedOfferColumns = []string{"id", "user_id", "recommendation_id", "saved", "claimed", "saved_at", "claimed_at"}

type SavedOfferRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSavedOfferRepository(db *pgxpool.Pool, logger *zap.Logger) *SavedOfferRepository {
	return &SavedOfferRepository{
		db:     db,
		logger: logger,
	}
}

// SaveIfAbsent relies on the (user_id, recommendation_id) unique index: a
// concurrent duplicate insert waits for the first transaction and then
// falls through to reading the committed row.
func (r *SavedOfferRepository) SaveIfAbsent(ctx context.Context, offer *models.SavedOffer) (*models.SavedOffer, bool, error) {
	var (
		stored  *models.SavedOffer
		created bool
	)

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		row, err := queryRow(ctx, tx, insertSavedOfferQuery(offer))
		if err != nil {
			return err
		}

		stored, err = scanSavedOffer(row)
		switch {
		case errors.Is(err, ErrNotFound):
			// Conflict: the pair already exists.
			row, err := queryRow(ctx, tx, psql.Select(savedOfferColumns...).
				From("saved_offers").
				Where(squirrel.Eq{"user_id": offer.UserID, "recommendation_id": offer.RecommendationID}))
			if err != nil {
				return err
			}
			stored, err = scanSavedOffer(row)
			return err
		case err != nil:
			return err
		}

		tag, err := exec(ctx, tx, incrementSavedCountQuery(offer.RecommendationID))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("recommendation %s: %w", offer.RecommendationID, ErrNotFound)
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		r.logger.Debug("Saved offer created",
			zap.String("saved_offer_id", stored.ID.String()),
			zap.String("user_id", stored.UserID.String()),
		)
	}
	return stored, created, nil
}

func (r *SavedOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedOffer, error) {
	row, err := queryRow(ctx, r.db, psql.Select(savedOfferColumns...).
		From("saved_offers").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	return scanSavedOffer(row)
}

func (r *SavedOfferRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.SavedOffer, error) {
	return queryAll(ctx, r.db, psql.Select(savedOfferColumns...).
		From("saved_offers").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("saved_at DESC", "id ASC"), scanSavedOffer)
}

// Claim runs the conditional flag update, the reward ledger insert and the
// wallet credit in one transaction.
func (r *SavedOfferRepository) Claim(ctx context.Context, offerID uuid.UUID, claimedAt time.Time, reward *models.Reward) (*models.SavedOffer, error) {
	var claimed *models.SavedOffer

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		row, err := queryRow(ctx, tx, claimSavedOfferQuery(offerID, claimedAt))
		if err != nil {
			return err
		}

		claimed, err = scanSavedOffer(row)
		if errors.Is(err, ErrNotFound) {
			// Nothing matched "claimed = false": tell a missing offer apart
			// from one that was already claimed.
			row, err := queryRow(ctx, tx, psql.Select("claimed").
				From("saved_offers").
				Where(squirrel.Eq{"id": offerID}))
			if err != nil {
				return err
			}
			var alreadyClaimed bool
			if err := row.Scan(&alreadyClaimed); err != nil {
				return translateError(err)
			}
			return ErrAlreadyClaimed
		}
		if err != nil {
			return err
		}

		if _, err := exec(ctx, tx, insertRewardQuery(reward)); err != nil {
			if errors.Is(err, ErrDuplicate) {
				return ErrAlreadyClaimed
			}
			return err
		}

		_, err = exec(ctx, tx, creditWalletQuery(reward.UserID, reward.Coins, claimedAt))
		return err
	})
	if err != nil {
		return nil, err
	}

	return claimed, nil
}

func insertSavedOfferQuery(offer *models.SavedOffer) squirrel.InsertBuilder {
	return psql.Insert("saved_offers").
		Columns(savedOfferColumns...).
		Values(offer.ID, offer.UserID, offer.RecommendationID, offer.Saved, offer.Claimed, offer.SavedAt, offer.ClaimedAt).
		Suffix("ON CONFLICT (user_id, recommendation_id) DO NOTHING RETURNING " + strings.Join(savedOfferColumns, ", "))
}

func incrementSavedCountQuery(recommendationID uuid.UUID) squirrel.UpdateBuilder {
	return psql.Update("recommendations").
		Set("saved_count", squirrel.Expr("saved_count + 1")).
		Where(squirrel.Eq{"id": recommendationID})
}

func claimSavedOfferQuery(offerID uuid.UUID, claimedAt time.Time) squirrel.UpdateBuilder {
	return psql.Update("saved_offers").
		Set("claimed", true).
		Set("claimed_at", claimedAt).
		Where(squirrel.Eq{"id": offerID, "claimed": false}).
		Suffix("RETURNING " + strings.Join(savedOfferColumns, ", "))
}

func scanSavedOffer(row rowScanner) (*models.SavedOffer, error) {
	var offer models.SavedOffer
	if err := row.Scan(
		&offer.ID, &offer.UserID, &offer.RecommendationID, &offer.Saved, &offer.Claimed, &offer.SavedAt, &offer.ClaimedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &offer, nil
}
