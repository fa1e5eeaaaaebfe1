package usecase_test

import (
	"context"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/provider"
	"github.com/stretchr/testify/mock"
)

// MockParkingSpotRepository is a mock implementation of ParkingSpotRepository
type MockParkingSpotRepository struct {
	mock.Mock
}

func (m *MockParkingSpotRepository) GetAll(ctx context.Context) ([]model.ParkingSpot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ParkingSpot), args.Error(1)
}

func (m *MockParkingSpotRepository) GetByID(ctx context.Context, id int64) (*model.ParkingSpot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingSpot), args.Error(1)
}

func (m *MockParkingSpotRepository) SearchByLocation(ctx context.Context, location string) ([]model.ParkingSpot, error) {
	args := m.Called(ctx, location)
	return args.Get(0).([]model.ParkingSpot), args.Error(1)
}

func (m *MockParkingSpotRepository) Create(ctx context.Context, spot *model.ParkingSpot) error {
	args := m.Called(ctx, spot)
	return args.Error(0)
}

func (m *MockParkingSpotRepository) Update(ctx context.Context, spot *model.ParkingSpot) error {
	args := m.Called(ctx, spot)
	return args.Error(0)
}

func (m *MockParkingSpotRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReservationRepository is a mock implementation of ReservationRepository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetAll(ctx context.Context) ([]model.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Reservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByPaymentID(ctx context.Context, paymentID int64) (*model.Reservation, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) Update(ctx context.Context, reservation *model.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateStatusFromPending(ctx context.Context, id int64, status model.ReservationStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) LinkPayment(ctx context.Context, id int64, paymentID int64) error {
	args := m.Called(ctx, id, paymentID)
	return args.Error(0)
}

func (m *MockReservationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetAll(ctx context.Context) ([]model.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Payment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByProviderIntentID(ctx context.Context, intentID string) (*model.Payment, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus, lastFour, cardBrand *string) error {
	args := m.Called(ctx, id, status, lastFour, cardBrand)
	return args.Error(0)
}

// MockFavoriteRepository is a mock implementation of FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) GetSpotsByUserID(ctx context.Context, userID int64) ([]model.ParkingSpot, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.ParkingSpot), args.Error(1)
}

func (m *MockFavoriteRepository) GetByUserAndSpot(ctx context.Context, userID, parkingSpotID int64) (*model.Favorite, error) {
	args := m.Called(ctx, userID, parkingSpotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockPaymentProvider is a mock implementation of PaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) GetProviderName() string {
	return "mock"
}

func (m *MockPaymentProvider) CreateIntent(ctx context.Context, req *provider.CreateIntentRequest) (*provider.CreateIntentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.CreateIntentResponse), args.Error(1)
}

func (m *MockPaymentProvider) GetIntent(ctx context.Context, intentID string) (*provider.IntentStatus, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.IntentStatus), args.Error(1)
}

// fakeCatalog is a fixed StaticCatalog for tests.
type fakeCatalog struct {
	spots []model.ParkingSpot
}

func (c *fakeCatalog) List() []model.ParkingSpot {
	return c.spots
}

func (c *fakeCatalog) FindByExternalID(externalID string) (*model.ParkingSpot, bool) {
	for i := range c.spots {
		if c.spots[i].ExternalID != nil && *c.spots[i].ExternalID == externalID {
			return &c.spots[i], true
		}
	}
	return nil, false
}

// fakeExternal returns a canned result set.
type fakeExternal struct {
	spots []model.ParkingSpot
}

func (e *fakeExternal) Fetch(ctx context.Context) []model.ParkingSpot {
	return e.spots
}

// fakeCache records cache traffic.
type fakeCache struct {
	stored []model.ParkingSpot
	hit    bool
	gets   int
	sets   int
}

func (c *fakeCache) Get(ctx context.Context) ([]model.ParkingSpot, bool) {
	c.gets++
	if !c.hit {
		return nil, false
	}
	return c.stored, true
}

func (c *fakeCache) Set(ctx context.Context, spots []model.ParkingSpot) {
	c.sets++
	c.stored = spots
}
