package database

import (
	"github.com/parkease/backend/internal/adapter/repository"
	domainRepo "github.com/parkease/backend/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	ParkingSpot domainRepo.ParkingSpotRepository
	Reservation domainRepo.ReservationRepository
	Payment     domainRepo.PaymentRepository
	Favorite    domainRepo.FavoriteRepository
	User        domainRepo.UserRepository
	Webhook     repository.WebhookRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		ParkingSpot: repository.NewParkingSpotRepository(db, logger),
		Reservation: repository.NewReservationRepository(db, logger),
		Payment:     repository.NewPaymentRepository(db, logger),
		Favorite:    repository.NewFavoriteRepository(db, logger),
		User:        repository.NewUserRepository(db, logger),
		Webhook:     repository.NewWebhookRepository(db, logger),
	}
}
