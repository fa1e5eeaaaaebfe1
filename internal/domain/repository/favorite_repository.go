package repository

import (
	"context"

	"github.com/parkease/backend/internal/domain/model"
)

// FavoriteRepository persists a user's saved spots.
type FavoriteRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]model.Favorite, error)
	// GetSpotsByUserID returns the parking spots the user has favorited.
	GetSpotsByUserID(ctx context.Context, userID int64) ([]model.ParkingSpot, error)
	GetByUserAndSpot(ctx context.Context, userID, parkingSpotID int64) (*model.Favorite, error)
	Create(ctx context.Context, favorite *model.Favorite) error
	Delete(ctx context.Context, id, userID int64) error
}
