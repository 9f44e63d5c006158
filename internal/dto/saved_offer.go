package dto

import (
	"time"

	"shareit/internal/models"

	"github.com/google/uuid"
)

type SaveOfferRequest struct {
	UserID           uuid.UUID `json:"userId" validate:"required"`
	RecommendationID uuid.UUID `json:"recommendationId" validate:"required"`
}

type ClaimOfferRequest struct {
	ReferrerID uuid.UUID `json:"referrerId" validate:"required"`
}

type SavedOfferResponse struct {
	ID               string  `json:"id"`
	UserID           string  `json:"userId"`
	RecommendationID string  `json:"recommendationId"`
	Saved            bool    `json:"saved"`
	Claimed          bool    `json:"claimed"`
	SavedAt          string  `json:"savedAt"`
	ClaimedAt        *string `json:"claimedAt,omitempty"`
}

func NewSavedOfferResponse(o *models.SavedOffer) SavedOfferResponse {
	resp := SavedOfferResponse{
		ID:               o.ID.String(),
		UserID:           o.UserID.String(),
		RecommendationID: o.RecommendationID.String(),
		Saved:            o.Saved,
		Claimed:          o.Claimed,
		SavedAt:          o.SavedAt.Format(time.RFC3339Nano),
	}
	if o.ClaimedAt != nil {
		s := o.ClaimedAt.Format(time.RFC3339Nano)
		resp.ClaimedAt = &s
	}
	return resp
}

func NewSavedOfferResponses(offers []*models.SavedOffer) []SavedOfferResponse {
	out := make([]SavedOfferResponse, len(offers))
	for i, o := range offers {
		out[i] = NewSavedOfferResponse(o)
	}
	return out
}
