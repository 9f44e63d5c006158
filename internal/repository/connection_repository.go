package repository

import (
	"context"

	"shareit/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var connectionColumns = []string{"id", "user_id", "connected_user_id", "created_at"}

type ConnectionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewConnectionRepository(db *pgxpool.Pool, logger *zap.Logger) *ConnectionRepository {
	return &ConnectionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ConnectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	_, err := exec(ctx, r.db, psql.Insert("connections").
		Columns(connectionColumns...).
		Values(conn.ID, conn.UserID, conn.ConnectedUserID, conn.CreatedAt))
	return err
}

func (r *ConnectionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Connection, error) {
	return queryAll(ctx, r.db, psql.Select(connectionColumns...).
		From("connections").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id ASC"), func(row rowScanner) (*models.Connection, error) {
		var c models.Connection
		if err := row.Scan(&c.ID, &c.UserID, &c.ConnectedUserID, &c.CreatedAt); err != nil {
			return nil, translateError(err)
		}
		return &c, nil
	})
}
