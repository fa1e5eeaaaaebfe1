package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type parkingSpotRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewParkingSpotRepository creates a new parking spot repository
func NewParkingSpotRepository(db *gorm.DB, logger *zap.Logger) repository.ParkingSpotRepository {
	return &parkingSpotRepository{
		db:     db,
		logger: logger,
	}
}

func (r *parkingSpotRepository) GetAll(ctx context.Context) ([]model.ParkingSpot, error) {
	var spots []model.ParkingSpot

	if err := r.db.WithContext(ctx).Find(&spots).Error; err != nil {
		r.logger.Error("Failed to list parking spots", zap.Error(err))
		return nil, fmt.Errorf("failed to list parking spots: %w", err)
	}

	return spots, nil
}

func (r *parkingSpotRepository) GetByID(ctx context.Context, id int64) (*model.ParkingSpot, error) {
	var spot model.ParkingSpot

	err := r.db.WithContext(ctx).First(&spot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get parking spot",
			zap.Int64("spot_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get parking spot: %w", err)
	}

	return &spot, nil
}

// SearchByLocation matches the location substring against city or address.
// Containment is case-sensitive, same as the search path has always behaved.
func (r *parkingSpotRepository) SearchByLocation(ctx context.Context, location string) ([]model.ParkingSpot, error) {
	var spots []model.ParkingSpot

	pattern := "%" + location + "%"
	err := r.db.WithContext(ctx).
		Where("city LIKE ? OR address LIKE ?", pattern, pattern).
		Find(&spots).Error
	if err != nil {
		r.logger.Error("Failed to search parking spots",
			zap.String("location", location),
			zap.Error(err))
		return nil, fmt.Errorf("failed to search parking spots: %w", err)
	}

	return spots, nil
}

func (r *parkingSpotRepository) Create(ctx context.Context, spot *model.ParkingSpot) error {
	if err := r.db.WithContext(ctx).Create(spot).Error; err != nil {
		r.logger.Error("Failed to create parking spot",
			zap.String("name", spot.Name),
			zap.Error(err))
		return fmt.Errorf("failed to create parking spot: %w", err)
	}

	return nil
}

func (r *parkingSpotRepository) Update(ctx context.Context, spot *model.ParkingSpot) error {
	if err := r.db.WithContext(ctx).Save(spot).Error; err != nil {
		r.logger.Error("Failed to update parking spot",
			zap.Int64("spot_id", spot.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update parking spot: %w", err)
	}

	return nil
}

// Delete removes the spot; reservations and favorites referencing it go with
// it via the FK cascade.
func (r *parkingSpotRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.ParkingSpot{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete parking spot",
			zap.Int64("spot_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete parking spot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
