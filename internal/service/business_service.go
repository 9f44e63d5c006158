package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/dto"
	"shareit/internal/models"
	"shareit/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type BusinessService struct {
	businesses repository.BusinessStore
	now        func() time.Time
	logger     *zap.Logger
}

func NewBusinessService(businesses repository.BusinessStore, logger *zap.Logger) *BusinessService {
	return &BusinessService{
		businesses: businesses,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *BusinessService) CreateBusiness(ctx context.Context, req *dto.CreateBusinessRequest) (*models.Business, error) {
	if err := dto.Validate(req); err != nil {
		return nil, validationError(err)
	}

	b := &models.Business{
		ID:          uuid.New(),
		Name:        cleanText(req.Name),
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Address:     cleanText(req.Address),
		Description: cleanText(req.Description),
		ImageURL:    req.ImageURL,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.businesses.Create(ctx, b); err != nil {
		return nil, storeError("create business", err)
	}

	s.logger.Info("Business created", zap.String("business_id", b.ID.String()), zap.String("name", b.Name))
	return b, nil
}

func (s *BusinessService) GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	b, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get business", err)
	}
	return b, nil
}

// ListBusinesses searches by name or category; an empty query lists all.
func (s *BusinessService) ListBusinesses(ctx context.Context, query string, limit, offset int) ([]*models.Business, error) {
	limit, offset = normalizePage(limit, offset)

	businesses, err := s.businesses.Search(ctx, strings.TrimSpace(query), limit, offset)
	if err != nil {
		return nil, storeError("list businesses", err)
	}
	return businesses, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
