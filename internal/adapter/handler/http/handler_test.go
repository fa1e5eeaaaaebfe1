package http_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	handlers "github.com/parkease/backend/internal/adapter/handler/http"
	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/middleware/auth"
	"github.com/parkease/backend/internal/usecase"
)

const testJWTSecret = "test-secret"

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// MockFavoriteRepository mocks repository.FavoriteRepository
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

// MockParkingSpotRepository mocks repository.ParkingSpotRepository
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

func authedRequest(t *testing.T, method, target, body string) *nethttp.Request {
	t.Helper()
	token, err := auth.IssueToken(testJWTSecret, &auth.AuthUser{UserID: 1, Username: "driver"})
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	e.Use(auth.JWTMiddleware(auth.JWTConfig{
		Secret:    testJWTSecret,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/api/parking-spots"},
	}))
	return e
}

func TestFavoriteHandler_Add(t *testing.T) {
	logger := zap.NewNop()

	t.Run("new favorite is created", func(t *testing.T) {
		mockSpots := new(MockParkingSpotRepository)
		mockFavorites := new(MockFavoriteRepository)
		mockSpots.On("GetByID", mock.Anything, int64(7)).Return(&model.ParkingSpot{ID: 7}, nil)
		mockFavorites.On("GetByUserAndSpot", mock.Anything, int64(1), int64(7)).Return(nil, nil)
		mockFavorites.On("Create", mock.Anything, mock.AnythingOfType("*model.Favorite")).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Favorite).ID = 5
		}).Return(nil)

		service := usecase.NewFavoriteService(mockFavorites, mockSpots, logger)
		handler := handlers.NewFavoriteHandler(service, logger)

		e := newEcho()
		e.POST("/api/favorites", handler.Add)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, authedRequest(t, nethttp.MethodPost, "/api/favorites", `{"parking_spot_id": 7}`))

		assert.Equal(t, nethttp.StatusCreated, rec.Code)
	})

	t.Run("duplicate favorite is a 400", func(t *testing.T) {
		mockSpots := new(MockParkingSpotRepository)
		mockFavorites := new(MockFavoriteRepository)
		mockSpots.On("GetByID", mock.Anything, int64(7)).Return(&model.ParkingSpot{ID: 7}, nil)
		mockFavorites.On("GetByUserAndSpot", mock.Anything, int64(1), int64(7)).Return(&model.Favorite{
			ID: 5, UserID: 1, ParkingSpotID: 7,
		}, nil)

		service := usecase.NewFavoriteService(mockFavorites, mockSpots, logger)
		handler := handlers.NewFavoriteHandler(service, logger)

		e := newEcho()
		e.POST("/api/favorites", handler.Add)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, authedRequest(t, nethttp.MethodPost, "/api/favorites", `{"parking_spot_id": 7}`))

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Already in favorites")
	})

	t.Run("unknown spot is a 404", func(t *testing.T) {
		mockSpots := new(MockParkingSpotRepository)
		mockSpots.On("GetByID", mock.Anything, int64(404)).Return(nil, nil)

		service := usecase.NewFavoriteService(new(MockFavoriteRepository), mockSpots, logger)
		handler := handlers.NewFavoriteHandler(service, logger)

		e := newEcho()
		e.POST("/api/favorites", handler.Add)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, authedRequest(t, nethttp.MethodPost, "/api/favorites", `{"parking_spot_id": 404}`))

		assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	})

	t.Run("unauthenticated add is a 401", func(t *testing.T) {
		service := usecase.NewFavoriteService(new(MockFavoriteRepository), new(MockParkingSpotRepository), logger)
		handler := handlers.NewFavoriteHandler(service, logger)

		e := newEcho()
		e.POST("/api/favorites", handler.Add)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/favorites", strings.NewReader(`{"parking_spot_id": 7}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	})
}

func TestFavoriteHandler_Delete(t *testing.T) {
	logger := zap.NewNop()

	t.Run("removes the user's own favorite", func(t *testing.T) {
		mockFavorites := new(MockFavoriteRepository)
		mockFavorites.On("Delete", mock.Anything, int64(5), int64(1)).Return(nil)

		service := usecase.NewFavoriteService(mockFavorites, new(MockParkingSpotRepository), logger)
		handler := handlers.NewFavoriteHandler(service, logger)

		e := newEcho()
		e.DELETE("/api/favorites/:id", handler.Delete)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, authedRequest(t, nethttp.MethodDelete, "/api/favorites/5", ""))

		assert.Equal(t, nethttp.StatusNoContent, rec.Code)
		mockFavorites.AssertExpectations(t)
	})

	t.Run("another user's favorite is a 404", func(t *testing.T) {
		mockFavorites := new(MockFavoriteRepository)
		mockFavorites.On("Delete", mock.Anything, int64(5), int64(1)).Return(gorm.ErrRecordNotFound)

		service := usecase.NewFavoriteService(mockFavorites, new(MockParkingSpotRepository), logger)
		handler := handlers.NewFavoriteHandler(service, logger)

		e := newEcho()
		e.DELETE("/api/favorites/:id", handler.Delete)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, authedRequest(t, nethttp.MethodDelete, "/api/favorites/5", ""))

		assert.Equal(t, nethttp.StatusNotFound, rec.Code)
		mockFavorites.AssertExpectations(t)
	})
}

func TestPaymentHandler_Delete(t *testing.T) {
	handler := handlers.NewPaymentHandler(nil, zap.NewNop())

	e := newEcho()
	e.DELETE("/api/payments/:id", handler.Delete)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, authedRequest(t, nethttp.MethodDelete, "/api/payments/11", ""))

	assert.Equal(t, nethttp.StatusNotImplemented, rec.Code)
	assert.Contains(t, rec.Body.String(), "not supported")
}

func TestParkingSpotHandler_Search(t *testing.T) {
	logger := zap.NewNop()

	newHandler := func(repo *MockParkingSpotRepository) *handlers.ParkingSpotHandler {
		spots := usecase.NewSpotService(repo, &staticCatalogStub{}, logger)
		search := usecase.NewSearchService(repo, &staticCatalogStub{}, &externalStub{}, nil, logger)
		return handlers.NewParkingSpotHandler(spots, search, logger)
	}

	t.Run("radius arrives as a string", func(t *testing.T) {
		mockRepo := new(MockParkingSpotRepository)
		mockRepo.On("SearchByLocation", mock.Anything, "Tampa").Return([]model.ParkingSpot{
			{ID: 1, Name: "Downtown Lot", City: "Tampa"},
		}, nil)

		e := newEcho()
		e.POST("/api/parking-spots/search", newHandler(mockRepo).Search)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/parking-spots/search",
			strings.NewReader(`{"location": "Tampa", "date": "2026-09-01", "radius": "5"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, nethttp.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Downtown Lot")
	})

	t.Run("unparsable radius is a 400", func(t *testing.T) {
		e := newEcho()
		e.POST("/api/parking-spots/search", newHandler(new(MockParkingSpotRepository)).Search)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/parking-spots/search",
			strings.NewReader(`{"location": "Tampa", "radius": "five"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})
}

type staticCatalogStub struct{}

func (s *staticCatalogStub) List() []model.ParkingSpot { return nil }

func (s *staticCatalogStub) FindByExternalID(externalID string) (*model.ParkingSpot, bool) {
	return nil, false
}

type externalStub struct{}

func (s *externalStub) Fetch(ctx context.Context) []model.ParkingSpot { return nil }
