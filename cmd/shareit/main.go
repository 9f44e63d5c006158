package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shareit/internal/api"
	"shareit/internal/api/handlers"
	"shareit/internal/service"
	"shareit/internal/storage"
	"shareit/pkg/config"
	"shareit/pkg/logger"

	"go.uber.org/zap"
)

// @title ShareIt API
// @version 1.0
// @description Recommend businesses, save offers from friends and claim them for coin rewards.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting ShareIt service",
		zap.String("storage", cfg.Storage.Driver),
		zap.Int64("reward_coins", cfg.Rewards.ClaimCoins),
	)

	// Initialize storage
	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer stores.Close()

	// Initialize services
	userService := service.NewUserService(stores.Users, stores.Wallets, appLogger)
	connService := service.NewConnectionService(stores.Connections, stores.Users, appLogger)
	businessService := service.NewBusinessService(stores.Businesses, appLogger)
	recService := service.NewRecommendationService(stores.Recommendations, stores.Users, stores.Businesses, appLogger)
	offerService := service.NewOfferService(stores.SavedOffers, stores.Recommendations, stores.Users, cfg.Rewards.ClaimCoins, appLogger)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, connService, appLogger)
	businessHandler := handlers.NewBusinessHandler(businessService, appLogger)
	recHandler := handlers.NewRecommendationHandler(recService, appLogger)
	offerHandler := handlers.NewOfferHandler(offerService, appLogger)

	// Setup router
	app := api.SetupRouter(userHandler, businessHandler, recHandler, offerHandler, &cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
