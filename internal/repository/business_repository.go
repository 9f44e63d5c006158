package repository

import (
	"context"

	"shareit/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var businessColumns = []string{"id", "name", "category", "address", "description", "image_url", "created_at"}

type BusinessRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBusinessRepository(db *pgxpool.Pool, logger *zap.Logger) *BusinessRepository {
	return &BusinessRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BusinessRepository) Create(ctx context.Context, b *models.Business) error {
	_, err := exec(ctx, r.db, psql.Insert("businesses").
		Columns(businessColumns...).
		Values(b.ID, b.Name, b.Category, b.Address, b.Description, b.ImageURL, b.CreatedAt))
	return err
}

func (r *BusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	row, err := queryRow(ctx, r.db, psql.Select(businessColumns...).
		From("businesses").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	return scanBusiness(row)
}

func (r *BusinessRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Business, error) {
	return queryAll(ctx, r.db, searchBusinessesQuery(query, limit, offset), scanBusiness)
}

func searchBusinessesQuery(query string, limit, offset int) squirrel.SelectBuilder {
	builder := psql.Select(businessColumns...).
		From("businesses").
		OrderBy("name ASC", "id ASC")

	if query != "" {
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"name": "%" + query + "%"},
			squirrel.ILike{"category": "%" + query + "%"},
		})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}
	return builder
}

func scanBusiness(row rowScanner) (*models.Business, error) {
	var b models.Business
	if err := row.Scan(
		&b.ID, &b.Name, &b.Category, &b.Address, &b.Description, &b.ImageURL, &b.CreatedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &b, nil
}
