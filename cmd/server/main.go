package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/slotswapper/internal/app"
	"github.com/Freeeeeet/slotswapper/internal/config"
	"github.com/Freeeeeet/slotswapper/internal/controller"
	"github.com/Freeeeeet/slotswapper/internal/controller/handlers"
	"github.com/Freeeeeet/slotswapper/internal/repository"
	"github.com/Freeeeeet/slotswapper/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	swapRepo := repository.NewSwapRequestRepository(pool)

	// Сервисы
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, logger)
	slotService := service.NewSlotService(slotRepo, logger)
	marketplaceService := service.NewMarketplaceService(slotRepo)
	swapService := service.NewSwapService(pool, slotRepo, swapRepo, logger)

	router := controller.NewRouter(controller.RouterConfig{
		Logger:             logger,
		TokenParser:        authService,
		AuthHandler:        handlers.NewAuthHandler(authService),
		SlotHandler:        handlers.NewSlotHandler(slotService),
		MarketplaceHandler: handlers.NewMarketplaceHandler(marketplaceService),
		SwapHandler:        handlers.NewSwapHandler(swapService),
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("SlotSwapper backend listening",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
