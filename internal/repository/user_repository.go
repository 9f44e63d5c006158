package repository

import (
	"context"

	"shareit/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var userColumns = []string{"id", "username", "email", "display_name", "created_at", "updated_at"}

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := exec(ctx, tx, insertUserQuery(user)); err != nil {
			return err
		}
		_, err := exec(ctx, tx, psql.Insert("wallets").
			Columns("user_id", "coins", "updated_at").
			Values(user.ID, 0, user.CreatedAt))
		return err
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row, err := queryRow(ctx, r.db, psql.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func insertUserQuery(user *models.User) squirrel.InsertBuilder {
	return psql.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Username, user.Email, user.DisplayName, user.CreatedAt, user.UpdatedAt)
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.DisplayName, &user.CreatedAt, &user.UpdatedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}
