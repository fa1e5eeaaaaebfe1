package repository

import (
	"context"

	"github.com/parkease/backend/internal/domain/model"
)

// ReservationRepository persists reservations.
type ReservationRepository interface {
	GetAll(ctx context.Context) ([]model.Reservation, error)
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	GetByUserID(ctx context.Context, userID int64) ([]model.Reservation, error)
	GetByPaymentID(ctx context.Context, paymentID int64) (*model.Reservation, error)
	Create(ctx context.Context, reservation *model.Reservation) error
	Update(ctx context.Context, reservation *model.Reservation) error
	UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error
	// UpdateStatusFromPending applies the status only while the reservation
	// is still pending, reporting whether the write happened.
	UpdateStatusFromPending(ctx context.Context, id int64, status model.ReservationStatus) (bool, error)
	LinkPayment(ctx context.Context, id int64, paymentID int64) error
	Delete(ctx context.Context, id int64) error
}
