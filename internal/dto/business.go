package dto

import (
	"time"

	"shareit/internal/models"
)

type CreateBusinessRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Category    string `json:"category" validate:"required,max=64"`
	Address     string `json:"address" validate:"omitempty,max=300"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type BusinessResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func NewBusinessResponse(b *models.Business) BusinessResponse {
	return BusinessResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Category:    b.Category,
		Address:     b.Address,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

func NewBusinessResponses(businesses []*models.Business) []BusinessResponse {
	out := make([]BusinessResponse, len(businesses))
	for i, b := range businesses {
		out[i] = NewBusinessResponse(b)
	}
	return out
}
