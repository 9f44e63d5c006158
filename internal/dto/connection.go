package dto

import (
	"time"

	"shareit/internal/models"

	"github.com/google/uuid"
)

type CreateConnectionRequest struct {
	UserID          uuid.UUID `json:"userId" validate:"required"`
	ConnectedUserID uuid.UUID `json:"connectedUserId" validate:"required"`
}

type ConnectionResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	ConnectedUserID string `json:"connectedUserId"`
	CreatedAt       string `json:"createdAt"`
}

func NewConnectionResponse(c *models.Connection) ConnectionResponse {
	return ConnectionResponse{
		ID:              c.ID.String(),
		UserID:          c.UserID.String(),
		ConnectedUserID: c.ConnectedUserID.String(),
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
}

func NewConnectionResponses(conns []*models.Connection) []ConnectionResponse {
	out := make([]ConnectionResponse, len(conns))
	for i, c := range conns {
		out[i] = NewConnectionResponse(c)
	}
	return out
}
