package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/usecase"
)

func spot(name, address, city string) model.ParkingSpot {
	return model.ParkingSpot{Name: name, Address: address, City: city}
}

func TestSearchService_Search(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("empty location returns every source unfiltered", func(t *testing.T) {
		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("GetAll", ctx).Return([]model.ParkingSpot{
			spot("Downtown Lot", "100 Main St", "Tampa"),
		}, nil)

		catalog := &fakeCatalog{spots: []model.ParkingSpot{
			spot("Thomas Parking Garage", "401 W Kennedy Blvd", "Tampa"),
		}}
		external := &fakeExternal{spots: []model.ParkingSpot{
			spot("City Garage", "200 Franklin St", "Tampa"),
		}}

		service := usecase.NewSearchService(mockRepo, catalog, external, nil, logger)

		results, err := service.Search(ctx, "", 0)

		assert.NoError(t, err)
		assert.Len(t, results, 3)
		mockRepo.AssertExpectations(t)
	})

	t.Run("location filter applies to every source", func(t *testing.T) {
		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("SearchByLocation", ctx, "Kennedy").Return([]model.ParkingSpot{}, nil)

		catalog := &fakeCatalog{spots: []model.ParkingSpot{
			spot("Thomas Parking Garage", "401 W Kennedy Blvd", "Tampa"),
			spot("North Parking Lot", "304 N Boulevard", "Tampa"),
		}}
		external := &fakeExternal{spots: []model.ParkingSpot{
			spot("Kennedy Garage", "500 Kennedy Ave", "Tampa"),
			spot("Franklin Garage", "200 Franklin St", "Tampa"),
		}}

		service := usecase.NewSearchService(mockRepo, catalog, external, nil, logger)

		results, err := service.Search(ctx, "Kennedy", 5)

		assert.NoError(t, err)
		assert.Len(t, results, 2)
		for _, r := range results {
			assert.Contains(t, r.Address, "Kennedy")
		}
	})

	t.Run("filter matches on city as well as address", func(t *testing.T) {
		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("SearchByLocation", ctx, "Tampa").Return([]model.ParkingSpot{}, nil)

		catalog := &fakeCatalog{spots: []model.ParkingSpot{
			spot("Campus Lot", "1 University Dr", "Tampa"),
			spot("Airport Lot", "1 Airport Rd", "Orlando"),
		}}
		external := &fakeExternal{}

		service := usecase.NewSearchService(mockRepo, catalog, external, nil, logger)

		results, err := service.Search(ctx, "Tampa", 0)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "Campus Lot", results[0].Name)
	})

	t.Run("filter is case sensitive", func(t *testing.T) {
		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("SearchByLocation", ctx, "tampa").Return([]model.ParkingSpot{}, nil)

		catalog := &fakeCatalog{spots: []model.ParkingSpot{
			spot("Campus Lot", "1 University Dr", "Tampa"),
		}}

		service := usecase.NewSearchService(mockRepo, catalog, &fakeExternal{}, nil, logger)

		results, err := service.Search(ctx, "tampa", 0)

		assert.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("duplicates collapse with first source winning", func(t *testing.T) {
		localCopy := spot("Thomas Parking Garage", "401 W Kennedy Blvd", "Tampa")
		localCopy.ID = 42

		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("GetAll", ctx).Return([]model.ParkingSpot{localCopy}, nil)

		catalog := &fakeCatalog{spots: []model.ParkingSpot{
			spot("Thomas Parking Garage", "401 W Kennedy Blvd", "Tampa"),
		}}
		external := &fakeExternal{spots: []model.ParkingSpot{
			spot("Thomas Parking Garage", "401 W Kennedy Blvd", "Tampa"),
		}}

		service := usecase.NewSearchService(mockRepo, catalog, external, nil, logger)

		results, err := service.Search(ctx, "", 0)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, int64(42), results[0].ID)
	})

	t.Run("external outage degrades to remaining sources", func(t *testing.T) {
		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("GetAll", ctx).Return([]model.ParkingSpot{
			spot("Downtown Lot", "100 Main St", "Tampa"),
		}, nil)

		catalog := &fakeCatalog{spots: []model.ParkingSpot{
			spot("Campus Lot", "1 University Dr", "Tampa"),
		}}
		// The provider adapter absorbs failures into an empty result.
		external := &fakeExternal{spots: nil}

		service := usecase.NewSearchService(mockRepo, catalog, external, nil, logger)

		results, err := service.Search(ctx, "", 0)

		assert.NoError(t, err)
		assert.Len(t, results, 2)
	})
}

func TestSearchService_ExternalCache(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("cache hit skips the provider fetch", func(t *testing.T) {
		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("GetAll", ctx).Return([]model.ParkingSpot{}, nil)

		cache := &fakeCache{
			hit:    true,
			stored: []model.ParkingSpot{spot("Cached Garage", "1 Cache St", "Tampa")},
		}
		external := &fakeExternal{spots: []model.ParkingSpot{
			spot("Fresh Garage", "2 Fresh St", "Tampa"),
		}}

		service := usecase.NewSearchService(mockRepo, &fakeCatalog{}, external, cache, logger)

		results, err := service.Search(ctx, "", 0)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "Cached Garage", results[0].Name)
		assert.Equal(t, 0, cache.sets)
	})

	t.Run("cache miss fetches and stores", func(t *testing.T) {
		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("GetAll", ctx).Return([]model.ParkingSpot{}, nil)

		cache := &fakeCache{}
		external := &fakeExternal{spots: []model.ParkingSpot{
			spot("Fresh Garage", "2 Fresh St", "Tampa"),
		}}

		service := usecase.NewSearchService(mockRepo, &fakeCatalog{}, external, cache, logger)

		results, err := service.Search(ctx, "", 0)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, 1, cache.sets)
		assert.Len(t, cache.stored, 1)
	})

	t.Run("empty provider results are not cached", func(t *testing.T) {
		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("GetAll", ctx).Return([]model.ParkingSpot{}, nil)

		cache := &fakeCache{}
		external := &fakeExternal{spots: nil}

		service := usecase.NewSearchService(mockRepo, &fakeCatalog{}, external, cache, logger)

		_, err := service.Search(ctx, "", 0)

		assert.NoError(t, err)
		assert.Equal(t, 0, cache.sets)
	})
}
