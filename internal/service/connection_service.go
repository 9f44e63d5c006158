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

type ConnectionService struct {
	conns  repository.ConnectionStore
	users  repository.UserStore
	now    func() time.Time
	logger *zap.Logger
}

func NewConnectionService(conns repository.ConnectionStore, users repository.UserStore, logger *zap.Logger) *ConnectionService {
	return &ConnectionService{
		conns:  conns,
		users:  users,
		now:    time.Now,
		logger: logger,
	}
}

func (s *ConnectionService) Connect(ctx context.Context, req *dto.CreateConnectionRequest) (*models.Connection, error) {
	if err := dto.Validate(req); err != nil {
		return nil, validationError(err)
	}
	if req.UserID == req.ConnectedUserID {
		return nil, validationError(&dto.ValidationError{
			Fields: map[string]string{"connectedUserId": "must differ from userId"},
		})
	}

	for _, id := range []uuid.UUID{req.UserID, req.ConnectedUserID} {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			return nil, storeError("get user", err)
		}
	}

	conn := &models.Connection{
		ID:              uuid.New(),
		UserID:          req.UserID,
		ConnectedUserID: req.ConnectedUserID,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.conns.Create(ctx, conn); err != nil {
		return nil, storeError("create connection", err)
	}

	s.logger.Info("Users connected",
		zap.String("user_id", conn.UserID.String()),
		zap.String("connected_user_id", conn.ConnectedUserID.String()),
	)
	return conn, nil
}

func (s *ConnectionService) ListConnections(ctx context.Context, userID uuid.UUID) ([]*models.Connection, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, storeError("get user", err)
	}

	conns, err := s.conns.ListByUserID(ctx, userID)
	if err != nil {
		return nil, storeError("list connections", err)
	}
	return conns, nil
}
