package repository

import (
	"context"

	"github.com/parkease/backend/internal/domain/model"
)

// ParkingSpotRepository persists locally managed parking spots.
type ParkingSpotRepository interface {
	GetAll(ctx context.Context) ([]model.ParkingSpot, error)
	GetByID(ctx context.Context, id int64) (*model.ParkingSpot, error)
	// SearchByLocation returns spots whose city or address contains the given
	// substring.
	SearchByLocation(ctx context.Context, location string) ([]model.ParkingSpot, error)
	Create(ctx context.Context, spot *model.ParkingSpot) error
	Update(ctx context.Context, spot *model.ParkingSpot) error
	Delete(ctx context.Context, id int64) error
}
