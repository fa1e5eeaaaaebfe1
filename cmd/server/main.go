package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/parkease/backend/internal/config"
	"github.com/parkease/backend/internal/infrastructure/cache"
	"github.com/parkease/backend/internal/infrastructure/database"
	httpServer "github.com/parkease/backend/internal/infrastructure/http"
	"github.com/parkease/backend/internal/infrastructure/provider/stripe"
	"github.com/parkease/backend/internal/infrastructure/source"
	"github.com/parkease/backend/internal/usecase"
	"github.com/parkease/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)

	// External sources and optional search cache.
	catalog := source.NewUniversityCatalog()
	tampa := source.NewTampaSource(cfg.Service.TampaEndpoint, cfg.Service.TampaTimeout, zapLogger)

	var spotCache usecase.SpotCache
	if redisClient := cache.NewRedisClient(cfg.Service.RedisAddr, cfg.Service.RedisPassword, cfg.Service.RedisDB, zapLogger); redisClient != nil {
		spotCache = cache.NewExternalSpotCache(redisClient, cfg.Service.SearchCacheTTL, zapLogger)
		defer redisClient.Close()
	}

	paymentProvider := stripe.NewStripeProvider(cfg.Service.StripeSecretKey, zapLogger)

	spotService := usecase.NewSpotService(repos.ParkingSpot, catalog, zapLogger)
	searchService := usecase.NewSearchService(repos.ParkingSpot, catalog, tampa, spotCache, zapLogger)
	reservationService := usecase.NewReservationService(repos.Reservation, repos.ParkingSpot, zapLogger)
	paymentService := usecase.NewPaymentService(repos.Payment, repos.Reservation, reservationService, paymentProvider, zapLogger)
	favoriteService := usecase.NewFavoriteService(repos.Favorite, repos.ParkingSpot, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpSrv := httpServer.NewServer(cfg, zapLogger, &httpServer.Services{
		Spots:        spotService,
		Search:       searchService,
		Reservations: reservationService,
		Payments:     paymentService,
		Favorites:    favoriteService,
		Users:        repos.User,
		Webhooks:     repos.Webhook,
	})

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
