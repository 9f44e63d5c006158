package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"shareit/internal/service"
	"shareit/internal/storage"
	"shareit/pkg/config"
	"shareit/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if cfg.Storage.Driver == config.StorageMemory {
		appLogger.Fatal("Seeding in-memory storage has no effect, set STORAGE_DRIVER=postgres")
	}

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer stores.Close()

	seedDir := filepath.Join("cmd", "seed")
	fixturesFile := os.Getenv("SEED_FIXTURES")
	if fixturesFile == "" {
		fixturesFile = filepath.Join(seedDir, "fixtures.yaml")
	}
	cacheFile := filepath.Join(seedDir, ".seed_cache.json")

	fx, err := loadFixtures(fixturesFile)
	if err != nil {
		appLogger.Fatal("Failed to load fixtures", zap.Error(err))
	}
	cache, err := loadCache(cacheFile)
	if err != nil {
		appLogger.Fatal("Failed to load seed cache", zap.Error(err))
	}

	s := &seeder{
		users:       service.NewUserService(stores.Users, stores.Wallets, appLogger),
		businesses:  service.NewBusinessService(stores.Businesses, appLogger),
		recs:        service.NewRecommendationService(stores.Recommendations, stores.Users, stores.Businesses, appLogger),
		connections: service.NewConnectionService(stores.Connections, stores.Users, appLogger),
		cache:       cache,
		logger:      appLogger,
	}

	appLogger.Info("Starting database seeding...", zap.String("fixtures", fixturesFile))

	runErr := s.run(ctx, fx)
	// Persist whatever was created, even on failure, so a rerun resumes.
	if err := saveCache(cacheFile, cache); err != nil {
		appLogger.Error("Failed to save seed cache", zap.Error(err))
	}
	if runErr != nil {
		appLogger.Fatal("Seeding failed", zap.Error(runErr))
	}

	appLogger.Info("Database seeding completed successfully!")
}
