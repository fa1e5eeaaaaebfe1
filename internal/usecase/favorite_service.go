package usecase

import (
	"context"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/repository"
	"github.com/parkease/backend/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FavoriteService manages a user's saved spots.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	spotRepo     repository.ParkingSpotRepository
	logger       *zap.Logger
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	spotRepo repository.ParkingSpotRepository,
	logger *zap.Logger,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		spotRepo:     spotRepo,
		logger:       logger,
	}
}

// ListSpots returns the parking spots a user has favorited.
func (s *FavoriteService) ListSpots(ctx context.Context, userID int64) ([]model.ParkingSpot, error) {
	return s.favoriteRepo.GetSpotsByUserID(ctx, userID)
}

// Add saves a spot for the user. Adding a pair that already exists is an
// idempotent no-op returning the existing row alongside a CONFLICT error so
// the handler can report "Already in favorites".
func (s *FavoriteService) Add(ctx context.Context, userID, parkingSpotID int64) (*model.Favorite, error) {
	spot, err := s.spotRepo.GetByID(ctx, parkingSpotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, errors.NotFound("parking spot not found")
	}

	existing, err := s.favoriteRepo.GetByUserAndSpot(ctx, userID, parkingSpotID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, errors.Conflict("already in favorites")
	}

	favorite := &model.Favorite{
		UserID:        userID,
		ParkingSpotID: parkingSpotID,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}

	// The unique index may have swallowed a concurrent insert of the same
	// pair; resolve to whichever row won.
	if favorite.ID == 0 {
		winner, err := s.favoriteRepo.GetByUserAndSpot(ctx, userID, parkingSpotID)
		if err != nil {
			return nil, err
		}
		if winner != nil {
			return winner, errors.Conflict("already in favorites")
		}
	}

	s.logger.Info("Favorite added",
		zap.Int64("user_id", userID),
		zap.Int64("spot_id", parkingSpotID),
	)

	return favorite, nil
}

// Remove deletes one of the user's own favorites. A favorite owned by
// someone else reads as not found.
func (s *FavoriteService) Remove(ctx context.Context, id, userID int64) error {
	err := s.favoriteRepo.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("favorite not found")
		}
		return err
	}
	return nil
}
