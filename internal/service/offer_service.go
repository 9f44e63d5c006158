package service

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/dto"
	"shareit/internal/models"
	"shareit/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// OfferService owns the saved-offer lifecycle: saving a recommendation
// (idempotent per user and recommendation) and claiming a saved offer
// (exactly once, crediting the referrer).
type OfferService struct {
	offers      repository.SavedOfferStore
	recs        repository.RecommendationStore
	users       repository.UserStore
	rewardCoins int64
	inflight    singleflight.Group
	now         func() time.Time
	logger      *zap.Logger
}

func NewOfferService(
	offers repository.SavedOfferStore,
	recs repository.RecommendationStore,
	users repository.UserStore,
	rewardCoins int64,
	logger *zap.Logger,
) *OfferService {
	return &OfferService{
		offers:      offers,
		recs:        recs,
		users:       users,
		rewardCoins: rewardCoins,
		now:         time.Now,
		logger:      logger,
	}
}

type saveResult struct {
	offer   *models.SavedOffer
	created bool
}

// SaveOffer bookmarks a recommendation for a user. Saving the same pair
// again returns the stored record unchanged with created == false.
func (s *OfferService) SaveOffer(ctx context.Context, req *dto.SaveOfferRequest) (*models.SavedOffer, bool, error) {
	if err := dto.Validate(req); err != nil {
		return nil, false, validationError(err)
	}

	// Concurrent duplicates inside this process share one store round trip.
	// The store's uniqueness guarantee still covers other processes.
	key := req.UserID.String() + ":" + req.RecommendationID.String()
	v, err, _ := s.inflight.Do(key, func() (any, error) {
		return s.saveOffer(ctx, req)
	})
	if err != nil {
		return nil, false, err
	}

	res := v.(saveResult)
	offer := *res.offer
	return &offer, res.created, nil
}

func (s *OfferService) saveOffer(ctx context.Context, req *dto.SaveOfferRequest) (saveResult, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return saveResult{}, storeError("get user", err)
	}
	if _, err := s.recs.GetByID(ctx, req.RecommendationID); err != nil {
		return saveResult{}, storeError("get recommendation", err)
	}

	offer := &models.SavedOffer{
		ID:               uuid.New(),
		UserID:           req.UserID,
		RecommendationID: req.RecommendationID,
		Saved:            true,
		Claimed:          false,
		SavedAt:          s.now().UTC(),
	}

	stored, created, err := s.offers.SaveIfAbsent(ctx, offer)
	if err != nil {
		return saveResult{}, storeError("save offer", err)
	}

	if created {
		s.logger.Info("Offer saved",
			zap.String("saved_offer_id", stored.ID.String()),
			zap.String("user_id", stored.UserID.String()),
			zap.String("recommendation_id", stored.RecommendationID.String()),
		)
	} else {
		s.logger.Debug("Offer already saved",
			zap.String("saved_offer_id", stored.ID.String()),
		)
	}

	return saveResult{offer: stored, created: created}, nil
}

// ClaimOffer redeems a saved offer on behalf of referrer. The claim flag and
// the referrer's reward are persisted together or not at all.
func (s *OfferService) ClaimOffer(ctx context.Context, offerID uuid.UUID, req *dto.ClaimOfferRequest) (*models.SavedOffer, error) {
	if err := dto.Validate(req); err != nil {
		return nil, validationError(err)
	}

	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, storeError("get saved offer", err)
	}
	if req.ReferrerID == offer.UserID {
		return nil, ErrInvalidReferrer
	}
	if _, err := s.users.GetByID(ctx, req.ReferrerID); err != nil {
		return nil, storeError("get referrer", err)
	}
	if offer.Claimed {
		return nil, fmt.Errorf("claim offer %s: %w", offerID, ErrAlreadyClaimed)
	}

	claimedAt := s.now().UTC()
	if claimedAt.Before(offer.SavedAt) {
		claimedAt = offer.SavedAt
	}

	reward := &models.Reward{
		ID:           uuid.New(),
		UserID:       req.ReferrerID,
		SavedOfferID: offer.ID,
		Coins:        s.rewardCoins,
		CreatedAt:    claimedAt,
	}

	claimed, err := s.offers.Claim(ctx, offer.ID, claimedAt, reward)
	if err != nil {
		return nil, storeError("claim offer", err)
	}

	s.logger.Info("Offer claimed",
		zap.String("saved_offer_id", claimed.ID.String()),
		zap.String("referrer_id", req.ReferrerID.String()),
		zap.Int64("coins", reward.Coins),
	)

	return claimed, nil
}

// ListSavedOffers returns the user's saved offers, most recent first.
func (s *OfferService) ListSavedOffers(ctx context.Context, userID uuid.UUID) ([]*models.SavedOffer, error) {
	offers, err := s.offers.ListByUserID(ctx, userID)
	if err != nil {
		return nil, storeError("list saved offers", err)
	}
	return offers, nil
}
