package dto

import (
	"time"

	"shareit/internal/models"
)

type UpdateWalletRequest struct {
	Coins *int64 `json:"coins" validate:"required,min=0"`
}

type WalletResponse struct {
	UserID    string `json:"userId"`
	Coins     int64  `json:"coins"`
	UpdatedAt string `json:"updatedAt"`
}

func NewWalletResponse(w *models.Wallet) WalletResponse {
	return WalletResponse{
		UserID:    w.UserID.String(),
		Coins:     w.Coins,
		UpdatedAt: w.UpdatedAt.Format(time.RFC3339),
	}
}

type RewardResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	SavedOfferID string `json:"savedOfferId"`
	Coins        int64  `json:"coins"`
	CreatedAt    string `json:"createdAt"`
}

func NewRewardResponses(rewards []*models.Reward) []RewardResponse {
	out := make([]RewardResponse, len(rewards))
	for i, r := range rewards {
		out[i] = RewardResponse{
			ID:           r.ID.String(),
			UserID:       r.UserID.String(),
			SavedOfferID: r.SavedOfferID.String(),
			Coins:        r.Coins,
			CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}
