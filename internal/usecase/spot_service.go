package usecase

import (
	"context"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/repository"
	"github.com/parkease/backend/internal/domain/source"
	"github.com/parkease/backend/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SpotService owns CRUD over locally managed parking spots. The list view
// also folds in the static campus catalog, mirroring how the map overlay
// consumes it.
type SpotService struct {
	spotRepo repository.ParkingSpotRepository
	catalog  source.StaticCatalog
	logger   *zap.Logger
}

// NewSpotService creates a new spot service
func NewSpotService(
	spotRepo repository.ParkingSpotRepository,
	catalog source.StaticCatalog,
	logger *zap.Logger,
) *SpotService {
	return &SpotService{
		spotRepo: spotRepo,
		catalog:  catalog,
		logger:   logger,
	}
}

// List returns every local spot plus the static catalog.
func (s *SpotService) List(ctx context.Context) ([]model.ParkingSpot, error) {
	spots, err := s.spotRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return append(spots, s.catalog.List()...), nil
}

// Catalog returns the static university catalog on its own.
func (s *SpotService) Catalog() []model.ParkingSpot {
	return s.catalog.List()
}

// GetByID returns one locally persisted spot.
func (s *SpotService) GetByID(ctx context.Context, id int64) (*model.ParkingSpot, error) {
	spot, err := s.spotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, errors.NotFound("parking spot not found")
	}
	return spot, nil
}

// Create persists a new local spot.
func (s *SpotService) Create(ctx context.Context, spot *model.ParkingSpot) error {
	if spot.Name == "" || spot.Address == "" || spot.City == "" {
		return errors.InvalidArgument("name, address, and city are required")
	}
	if spot.Price.LessThan(decimal.Zero) {
		return errors.InvalidArgument("price must not be negative")
	}
	if spot.AvailableSpots < 0 {
		return errors.InvalidArgument("available spots must not be negative")
	}
	if spot.Source == "" {
		spot.Source = model.SpotSourceLocal
	}
	// Locally created spots carry no external id.
	if spot.Source == model.SpotSourceLocal {
		spot.ExternalID = nil
	}

	return s.spotRepo.Create(ctx, spot)
}

// Update overwrites a local spot. The path id must match the body id.
func (s *SpotService) Update(ctx context.Context, id int64, spot *model.ParkingSpot) error {
	if spot.ID != 0 && spot.ID != id {
		return errors.InvalidArgument("id mismatch between path and body")
	}
	spot.ID = id

	existing, err := s.spotRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.NotFound("parking spot not found")
	}

	if spot.Price.LessThan(decimal.Zero) {
		return errors.InvalidArgument("price must not be negative")
	}
	if spot.AvailableSpots < 0 {
		return errors.InvalidArgument("available spots must not be negative")
	}
	spot.CreatedAt = existing.CreatedAt

	return s.spotRepo.Update(ctx, spot)
}

// Delete removes a local spot; its reservations and favorites cascade away.
func (s *SpotService) Delete(ctx context.Context, id int64) error {
	err := s.spotRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("parking spot not found")
		}
		return err
	}

	s.logger.Info("Parking spot deleted", zap.Int64("spot_id", id))
	return nil
}
