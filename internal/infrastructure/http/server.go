package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	handlers "github.com/parkease/backend/internal/adapter/handler/http"
	"github.com/parkease/backend/internal/adapter/repository"
	"github.com/parkease/backend/internal/config"
	domainrepo "github.com/parkease/backend/internal/domain/repository"
	"github.com/parkease/backend/internal/middleware/auth"
	"github.com/parkease/backend/internal/usecase"
	"github.com/parkease/backend/pkg/logger"
	"go.uber.org/zap"
)

// Services bundles the use cases the HTTP layer exposes.
type Services struct {
	Spots        *usecase.SpotService
	Search       *usecase.SearchService
	Reservations *usecase.ReservationService
	Payments     *usecase.PaymentService
	Favorites    *usecase.FavoriteService
	Users        domainrepo.UserRepository
	Webhooks     repository.WebhookRepository
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	services *Services
}

type requestValidator struct {
	validator *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func NewServer(cfg *config.Config, log *zap.Logger, services *Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validator: validator.New()}

	// Middleware
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:   cfg,
		logger:   log,
		echo:     e,
		services: services,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "parkease",
		})
	})

	spotHandler := handlers.NewParkingSpotHandler(s.services.Spots, s.services.Search, s.logger)
	reservationHandler := handlers.NewReservationHandler(s.services.Reservations, s.logger)
	favoriteHandler := handlers.NewFavoriteHandler(s.services.Favorites, s.logger)
	paymentHandler := handlers.NewPaymentHandler(s.services.Payments, s.logger)
	userHandler := handlers.NewUserHandler(s.services.Users, s.logger)
	webhookHandler := handlers.NewWebhookHandler(
		s.services.Payments,
		s.services.Webhooks,
		s.config.Service.StripeWebhookSecret,
		s.logger,
	)

	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/api/webhook",
			"/api/parking-spots",
			"/api/university-parking",
		},
	}

	api := s.echo.Group("/api", auth.JWTMiddleware(jwtConfig))

	// Parking spots (public, including the aggregated search)
	api.GET("/parking-spots", spotHandler.List)
	api.GET("/parking-spots/:id", spotHandler.Get)
	api.POST("/parking-spots/search", spotHandler.Search)
	api.POST("/parking-spots", spotHandler.Create)
	api.PUT("/parking-spots/:id", spotHandler.Update)
	api.DELETE("/parking-spots/:id", spotHandler.Delete)
	api.GET("/university-parking", spotHandler.UniversityParking)

	// Reservations
	api.GET("/reservations", reservationHandler.List)
	api.GET("/reservations/:id", reservationHandler.Get)
	api.POST("/reservations", reservationHandler.Create)
	api.PUT("/reservations/:id", reservationHandler.Update)
	api.PUT("/reservations/:id/cancel", reservationHandler.Cancel)
	api.DELETE("/reservations/:id", reservationHandler.Delete)

	// Authenticated profile
	api.GET("/me", userHandler.Me)

	// Favorites
	api.GET("/favorites", favoriteHandler.List)
	api.POST("/favorites", favoriteHandler.Add)
	api.DELETE("/favorites/:id", favoriteHandler.Delete)

	// Payments
	api.POST("/create-payment-intent", paymentHandler.CreateIntent)
	api.GET("/payment-status/:intentId", paymentHandler.Status)
	api.GET("/payments", paymentHandler.List)
	api.GET("/payments/:id", paymentHandler.Get)
	api.POST("/payments", paymentHandler.Create)
	api.PUT("/payments/:id", paymentHandler.Update)
	api.DELETE("/payments/:id", paymentHandler.Delete)

	// Stripe webhook (signature-verified, no JWT)
	api.POST("/webhook", webhookHandler.HandleWebhook)
}
