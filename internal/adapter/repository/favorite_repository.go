package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type favoriteRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB, logger *zap.Logger) repository.FavoriteRepository {
	return &favoriteRepository{
		db:     db,
		logger: logger,
	}
}

func (r *favoriteRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Favorite, error) {
	var favorites []model.Favorite

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&favorites).Error
	if err != nil {
		r.logger.Error("Failed to get user favorites",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get user favorites: %w", err)
	}

	return favorites, nil
}

func (r *favoriteRepository) GetSpotsByUserID(ctx context.Context, userID int64) ([]model.ParkingSpot, error) {
	var spots []model.ParkingSpot

	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.parking_spot_id = parking_spots.id").
		Where("favorites.user_id = ?", userID).
		Find(&spots).Error
	if err != nil {
		r.logger.Error("Failed to get favorite spots",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get favorite spots: %w", err)
	}

	return spots, nil
}

func (r *favoriteRepository) GetByUserAndSpot(ctx context.Context, userID, parkingSpotID int64) (*model.Favorite, error) {
	var favorite model.Favorite

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND parking_spot_id = ?", userID, parkingSpotID).
		First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get favorite",
			zap.Int64("user_id", userID),
			zap.Int64("spot_id", parkingSpotID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}

	return &favorite, nil
}

// Create inserts the favorite. The unique (user_id, parking_spot_id) index
// makes concurrent duplicate adds collapse into one row; ON CONFLICT keeps
// the race from surfacing as an error.
func (r *favoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(favorite).Error
	if err != nil {
		r.logger.Error("Failed to create favorite",
			zap.Int64("user_id", favorite.UserID),
			zap.Int64("spot_id", favorite.ParkingSpotID),
			zap.Error(err))
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	return nil
}

// Delete is scoped to the owner so one user's favorite id cannot be
// removed by another user.
func (r *favoriteRepository) Delete(ctx context.Context, id, userID int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		r.logger.Error("Failed to delete favorite",
			zap.Int64("favorite_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
