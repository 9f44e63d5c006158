package repository

import (
	"context"
	"strings"

	"shareit/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var recommendationColumns = []string{
	"id", "user_id", "business_id", "business_name", "discount", "rating", "comment",
	"valid_until", "saved_count", "view_count", "created_at",
}

type RecommendationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRecommendationRepository(db *pgxpool.Pool, logger *zap.Logger) *RecommendationRepository {
	return &RecommendationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *RecommendationRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	_, err := exec(ctx, r.db, psql.Insert("recommendations").
		Columns(recommendationColumns...).
		Values(rec.ID, rec.UserID, rec.BusinessID, rec.BusinessName, rec.Discount, rec.Rating, rec.Comment,
			rec.ValidUntil, rec.SavedCount, rec.ViewCount, rec.CreatedAt))
	return err
}

func (r *RecommendationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	row, err := queryRow(ctx, r.db, psql.Select(recommendationColumns...).
		From("recommendations").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	return scanRecommendation(row)
}

func (r *RecommendationRepository) List(ctx context.Context, filter RecommendationFilter) ([]*models.Recommendation, error) {
	return queryAll(ctx, r.db, listRecommendationsQuery(filter), scanRecommendation)
}

func (r *RecommendationRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	row, err := queryRow(ctx, r.db, psql.Update("recommendations").
		Set("view_count", squirrel.Expr("view_count + 1")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING "+strings.Join(recommendationColumns, ", ")))
	if err != nil {
		return nil, err
	}
	return scanRecommendation(row)
}

func listRecommendationsQuery(filter RecommendationFilter) squirrel.SelectBuilder {
	builder := psql.Select(recommendationColumns...).
		From("recommendations").
		OrderBy("created_at DESC", "id ASC")

	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.BusinessID != nil {
		builder = builder.Where(squirrel.Eq{"business_id": *filter.BusinessID})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}
	return builder
}

func scanRecommendation(row rowScanner) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := row.Scan(
		&rec.ID, &rec.UserID, &rec.BusinessID, &rec.BusinessName, &rec.Discount, &rec.Rating, &rec.Comment,
		&rec.ValidUntil, &rec.SavedCount, &rec.ViewCount, &rec.CreatedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &rec, nil
}
