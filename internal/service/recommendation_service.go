package service

import (
	"context"
	"time"

	"shareit/internal/dto"
	"shareit/internal/models"
	"shareit/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecommendationService struct {
	recs       repository.RecommendationStore
	users      repository.UserStore
	businesses repository.BusinessStore
	now        func() time.Time
	logger     *zap.Logger
}

func NewRecommendationService(
	recs repository.RecommendationStore,
	users repository.UserStore,
	businesses repository.BusinessStore,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		recs:       recs,
		users:      users,
		businesses: businesses,
		now:        time.Now,
		logger:     logger,
	}
}

// CreateRecommendation records a user's recommendation of a business. The
// business name is copied from the business when the request omits it.
func (s *RecommendationService) CreateRecommendation(ctx context.Context, req *dto.CreateRecommendationRequest) (*models.Recommendation, error) {
	if err := dto.Validate(req); err != nil {
		return nil, validationError(err)
	}

	now := s.now().UTC()
	if req.ValidUntil != nil && !req.ValidUntil.After(now) {
		return nil, validationError(&dto.ValidationError{
			Fields: map[string]string{"validUntil": "must be in the future"},
		})
	}

	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, storeError("get author", err)
	}
	business, err := s.businesses.GetByID(ctx, req.BusinessID)
	if err != nil {
		return nil, storeError("get business", err)
	}

	name := cleanText(req.BusinessName)
	if name == "" {
		name = business.Name
	}

	rec := &models.Recommendation{
		ID:           uuid.New(),
		UserID:       req.UserID,
		BusinessID:   req.BusinessID,
		BusinessName: name,
		Discount:     req.Discount,
		Rating:       req.Rating,
		Comment:      cleanText(req.Comment),
		ValidUntil:   req.ValidUntil,
		CreatedAt:    now,
	}
	if err := s.recs.Create(ctx, rec); err != nil {
		return nil, storeError("create recommendation", err)
	}

	s.logger.Info("Recommendation created",
		zap.String("recommendation_id", rec.ID.String()),
		zap.String("user_id", rec.UserID.String()),
		zap.String("business_id", rec.BusinessID.String()),
	)
	return rec, nil
}

func (s *RecommendationService) GetRecommendation(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	rec, err := s.recs.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get recommendation", err)
	}
	return rec, nil
}

func (s *RecommendationService) ListRecommendations(ctx context.Context, filter repository.RecommendationFilter) ([]*models.Recommendation, error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	recs, err := s.recs.List(ctx, filter)
	if err != nil {
		return nil, storeError("list recommendations", err)
	}
	return recs, nil
}

// RecordView bumps the recommendation's view counter.
func (s *RecommendationService) RecordView(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	rec, err := s.recs.IncrementViewCount(ctx, id)
	if err != nil {
		return nil, storeError("record view", err)
	}
	return rec, nil
}
