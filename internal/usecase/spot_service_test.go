package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/usecase"
	"github.com/parkease/backend/pkg/errors"
)

func TestSpotService_List(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	mockRepo := new(MockParkingSpotRepository)
	mockRepo.On("GetAll", ctx).Return([]model.ParkingSpot{
		spot("Downtown Lot", "100 Main St", "Tampa"),
	}, nil)

	catalog := &fakeCatalog{spots: []model.ParkingSpot{
		spot("Thomas Parking Garage", "401 W Kennedy Blvd", "Tampa"),
	}}

	service := usecase.NewSpotService(mockRepo, catalog, logger)

	spots, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, spots, 2)
}

func TestSpotService_Create(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	valid := func() *model.ParkingSpot {
		return &model.ParkingSpot{
			Name:           "Downtown Lot",
			Address:        "100 Main St",
			City:           "Tampa",
			Price:          decimal.NewFromFloat(3.00),
			AvailableSpots: 20,
		}
	}

	t.Run("defaults to the local source without an external id", func(t *testing.T) {
		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(s *model.ParkingSpot) bool {
			return s.Source == model.SpotSourceLocal && s.ExternalID == nil
		})).Return(nil)
		service := usecase.NewSpotService(mockRepo, &fakeCatalog{}, logger)

		s := valid()
		externalID := "EXT1"
		s.ExternalID = &externalID

		assert.NoError(t, service.Create(ctx, s))
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects missing identity fields", func(t *testing.T) {
		service := usecase.NewSpotService(new(MockParkingSpotRepository), &fakeCatalog{}, logger)

		s := valid()
		s.City = ""
		err := service.Create(ctx, s)

		assert.Error(t, err)
		assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		service := usecase.NewSpotService(new(MockParkingSpotRepository), &fakeCatalog{}, logger)

		s := valid()
		s.Price = decimal.NewFromFloat(-1.00)
		err := service.Create(ctx, s)

		assert.Error(t, err)
		assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))
	})
}

func TestSpotService_Update(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("path and body id must agree", func(t *testing.T) {
		service := usecase.NewSpotService(new(MockParkingSpotRepository), &fakeCatalog{}, logger)

		err := service.Update(ctx, 7, &model.ParkingSpot{ID: 8, Name: "X", Address: "Y", City: "Z"})

		assert.Error(t, err)
		assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))
	})

	t.Run("unknown spot is not found", func(t *testing.T) {
		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("GetByID", ctx, int64(7)).Return(nil, nil)
		service := usecase.NewSpotService(mockRepo, &fakeCatalog{}, logger)

		err := service.Update(ctx, 7, &model.ParkingSpot{Name: "X", Address: "Y", City: "Z"})

		assert.Error(t, err)
		assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))
	})
}
