package database

import (
	"github.com/parkease/backend/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&model.User{},
		&model.ParkingSpot{},
		&model.Payment{},
		&model.Reservation{},
		&model.Favorite{},
		&model.StripeWebhookEvent{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	// (source, external_id) must be unique for imported spots; local spots
	// have no external id and stay out of the partial index.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_parking_spots_source_external
		ON parking_spots (source, external_id)
		WHERE external_id IS NOT NULL
	`).Error
	if err != nil {
		logger.Error("Failed to create source/external_id index", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed")
	return nil
}
