// Package storage selects and opens the configured repository back-end.
package storage

import (
	"context"
	"fmt"

	"shareit/internal/repository"
	"shareit/internal/repository/memory"
	"shareit/pkg/config"
	"shareit/pkg/postgres"

	"go.uber.org/zap"
)

// Stores bundles one implementation of every repository interface.
type Stores struct {
	Users           repository.UserStore
	Businesses      repository.BusinessStore
	Recommendations repository.RecommendationStore
	SavedOffers     repository.SavedOfferStore
	Wallets         repository.WalletStore
	Connections     repository.ConnectionStore

	close func()
}

// Close releases the underlying connection pool, if any.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to Postgres (applying migrations when configured) or
// builds an empty in-memory store, depending on cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage, data will not survive a restart")
		return NewMemory(memory.New()), nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Database.Migrate {
			if err := postgres.Migrate(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &Stores{
			Users:           repository.NewUserRepository(pool, logger),
			Businesses:      repository.NewBusinessRepository(pool, logger),
			Recommendations: repository.NewRecommendationRepository(pool, logger),
			SavedOffers:     repository.NewSavedOfferRepository(pool, logger),
			Wallets:         repository.NewWalletRepository(pool, logger),
			Connections:     repository.NewConnectionRepository(pool, logger),
			close:           pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewMemory wraps an in-memory DB.
func NewMemory(db *memory.DB) *Stores {
	return &Stores{
		Users:           db.Users(),
		Businesses:      db.Businesses(),
		Recommendations: db.Recommendations(),
		SavedOffers:     db.SavedOffers(),
		Wallets:         db.Wallets(),
		Connections:     db.Connections(),
	}
}
