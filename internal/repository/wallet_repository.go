package repository

import (
	"context"
	"strings"
	"time"

	"shareit/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	walletColumns = []string{"user_id", "coins", "updated_at"}
	rewardColumns = []string{"id", "user_id", "saved_offer_id", "coins", "created_at"}
)

type WalletRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewWalletRepository(db *pgxpool.Pool, logger *zap.Logger) *WalletRepository {
	return &WalletRepository{
		db:     db,
		logger: logger,
	}
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	row, err := queryRow(ctx, r.db, psql.Select(walletColumns...).
		From("wallets").
		Where(squirrel.Eq{"user_id": userID}))
	if err != nil {
		return nil, err
	}
	return scanWallet(row)
}

func (r *WalletRepository) SetCoins(ctx context.Context, userID uuid.UUID, coins int64, at time.Time) (*models.Wallet, error) {
	row, err := queryRow(ctx, r.db, psql.Update("wallets").
		Set("coins", coins).
		Set("updated_at", at).
		Where(squirrel.Eq{"user_id": userID}).
		Suffix("RETURNING "+strings.Join(walletColumns, ", ")))
	if err != nil {
		return nil, err
	}
	return scanWallet(row)
}

func (r *WalletRepository) ListRewards(ctx context.Context, userID uuid.UUID) ([]*models.Reward, error) {
	return queryAll(ctx, r.db, psql.Select(rewardColumns...).
		From("rewards").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id ASC"), scanReward)
}

func insertRewardQuery(reward *models.Reward) squirrel.InsertBuilder {
	return psql.Insert("rewards").
		Columns(rewardColumns...).
		Values(reward.ID, reward.UserID, reward.SavedOfferID, reward.Coins, reward.CreatedAt)
}

// creditWalletQuery adds coins to the wallet, creating it when missing.
func creditWalletQuery(userID uuid.UUID, coins int64, at time.Time) squirrel.InsertBuilder {
	return psql.Insert("wallets").
		Columns(walletColumns...).
		Values(userID, coins, at).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET coins = wallets.coins + EXCLUDED.coins, updated_at = EXCLUDED.updated_at")
}

func scanWallet(row rowScanner) (*models.Wallet, error) {
	var w models.Wallet
	if err := row.Scan(&w.UserID, &w.Coins, &w.UpdatedAt); err != nil {
		return nil, translateError(err)
	}
	return &w, nil
}

func scanReward(row rowScanner) (*models.Reward, error) {
	var rw models.Reward
	if err := row.Scan(&rw.ID, &rw.UserID, &rw.SavedOfferID, &rw.Coins, &rw.CreatedAt); err != nil {
		return nil, translateError(err)
	}
	return &rw, nil
}
