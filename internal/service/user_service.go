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

type UserService struct {
	users   repository.UserStore
	wallets repository.WalletStore
	now     func() time.Time
	logger  *zap.Logger
}

func NewUserService(users repository.UserStore, wallets repository.WalletStore, logger *zap.Logger) *UserService {
	return &UserService{
		users:   users,
		wallets: wallets,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if err := dto.Validate(req); err != nil {
		return nil, validationError(err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:          uuid.New(),
		Username:    cleanText(req.Username),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		DisplayName: cleanText(req.DisplayName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError("create user", err)
	}

	s.logger.Info("User created", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get user", err)
	}
	return user, nil
}

func (s *UserService) GetWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	wallet, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, storeError("get wallet", err)
	}
	return wallet, nil
}

// SetWalletCoins overwrites the balance. This is an administrative action;
// claims credit wallets through OfferService.
func (s *UserService) SetWalletCoins(ctx context.Context, userID uuid.UUID, req *dto.UpdateWalletRequest) (*models.Wallet, error) {
	if err := dto.Validate(req); err != nil {
		return nil, validationError(err)
	}

	wallet, err := s.wallets.SetCoins(ctx, userID, *req.Coins, s.now().UTC())
	if err != nil {
		return nil, storeError("set wallet coins", err)
	}

	s.logger.Info("Wallet balance set",
		zap.String("user_id", userID.String()),
		zap.Int64("coins", wallet.Coins),
	)
	return wallet, nil
}

func (s *UserService) ListRewards(ctx context.Context, userID uuid.UUID) ([]*models.Reward, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, storeError("get user", err)
	}

	rewards, err := s.wallets.ListRewards(ctx, userID)
	if err != nil {
		return nil, storeError("list rewards", err)
	}
	return rewards, nil
}
