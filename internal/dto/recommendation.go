package dto

import (
	"time"

	"shareit/internal/models"

	"github.com/google/uuid"
)

type CreateRecommendationRequest struct {
	UserID       uuid.UUID  `json:"userId" validate:"required"`
	BusinessID   uuid.UUID  `json:"businessId" validate:"required"`
	BusinessName string     `json:"businessName" validate:"omitempty,max=200"`
	Discount     *int       `json:"discount" validate:"omitempty,min=0,max=100"`
	Rating       *int       `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment      string     `json:"comment" validate:"omitempty,max=2000"`
	ValidUntil   *time.Time `json:"validUntil"`
}

type RecommendationResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	BusinessID   string  `json:"businessId"`
	BusinessName string  `json:"businessName"`
	Discount     *int    `json:"discount,omitempty"`
	Rating       *int    `json:"rating,omitempty"`
	Comment      string  `json:"comment,omitempty"`
	ValidUntil   *string `json:"validUntil,omitempty"`
	SavedCount   int64   `json:"savedCount"`
	ViewCount    int64   `json:"viewCount"`
	CreatedAt    string  `json:"createdAt"`
}

func NewRecommendationResponse(r *models.Recommendation) RecommendationResponse {
	resp := RecommendationResponse{
		ID:           r.ID.String(),
		UserID:       r.UserID.String(),
		BusinessID:   r.BusinessID.String(),
		BusinessName: r.BusinessName,
		Discount:     r.Discount,
		Rating:       r.Rating,
		Comment:      r.Comment,
		SavedCount:   r.SavedCount,
		ViewCount:    r.ViewCount,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.ValidUntil != nil {
		s := r.ValidUntil.Format(time.RFC3339)
		resp.ValidUntil = &s
	}
	return resp
}

func NewRecommendationResponses(recs []*models.Recommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, len(recs))
	for i, r := range recs {
		out[i] = NewRecommendationResponse(r)
	}
	return out
}
