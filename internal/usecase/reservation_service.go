package usecase

import (
	"context"
	"strings"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/repository"
	"github.com/parkease/backend/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ServiceFee is the fixed per-reservation fee added on top of rate x hours.
var ServiceFee = decimal.NewFromFloat(2.00)

// ReservationDraft is what the client submits. Any total price the client
// sends is discarded; the quote is recomputed server-side.
type ReservationDraft struct {
	UserID        int64
	ParkingSpotID int64
	Date          string
	StartTime     string
	Duration      int
	VehicleType   string
	LicensePlate  string
}

// ReservationUpdate carries the editable reservation fields. Nil pointers
// leave the field untouched.
type ReservationUpdate struct {
	Date         *string
	StartTime    *string
	Duration     *int
	VehicleType  *string
	LicensePlate *string
}

// ReservationService owns reservation pricing and status lifecycle.
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	spotRepo        repository.ParkingSpotRepository
	logger          *zap.Logger
}

// NewReservationService creates a new reservation service
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	spotRepo repository.ParkingSpotRepository,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		spotRepo:        spotRepo,
		logger:          logger,
	}
}

// Quote computes the total price: spot rate x duration hours + service fee.
func (s *ReservationService) Quote(spot *model.ParkingSpot, durationHours int) decimal.Decimal {
	return spot.Price.Mul(decimal.NewFromInt(int64(durationHours))).Add(ServiceFee)
}

// Create validates the draft, prices it, and persists a pending reservation.
func (s *ReservationService) Create(ctx context.Context, draft *ReservationDraft) (*model.Reservation, error) {
	if draft.Duration < 1 {
		return nil, errors.InvalidArgument("duration must be at least 1 hour")
	}
	if strings.TrimSpace(draft.LicensePlate) == "" {
		return nil, errors.InvalidArgument("license plate is required")
	}

	spot, err := s.spotRepo.GetByID(ctx, draft.ParkingSpotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, errors.NotFound("parking spot not found")
	}

	reservation := &model.Reservation{
		UserID:        draft.UserID,
		ParkingSpotID: draft.ParkingSpotID,
		Date:          draft.Date,
		StartTime:     draft.StartTime,
		Duration:      draft.Duration,
		VehicleType:   draft.VehicleType,
		LicensePlate:  draft.LicensePlate,
		TotalPrice:    s.Quote(spot, draft.Duration),
		Status:        model.ReservationStatusPending,
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.logger.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("user_id", reservation.UserID),
		zap.Int64("spot_id", reservation.ParkingSpotID),
		zap.String("total_price", reservation.TotalPrice.String()),
	)

	return reservation, nil
}

// GetByID returns one reservation with its spot preloaded.
func (s *ReservationService) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, errors.NotFound("reservation not found")
	}
	return reservation, nil
}

// ListByUser returns a user's reservations.
func (s *ReservationService) ListByUser(ctx context.Context, userID int64) ([]model.Reservation, error) {
	return s.reservationRepo.GetByUserID(ctx, userID)
}

// Update edits the reservation fields and reprices it. The status is left
// alone and payment is not re-triggered. Only the owner may edit.
func (s *ReservationService) Update(ctx context.Context, id, userID int64, update *ReservationUpdate) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, errors.NotFound("reservation not found")
	}
	if reservation.UserID != userID {
		return nil, errors.Unauthorized("reservation belongs to another user")
	}

	if update.Date != nil {
		reservation.Date = *update.Date
	}
	if update.StartTime != nil {
		reservation.StartTime = *update.StartTime
	}
	if update.Duration != nil {
		if *update.Duration < 1 {
			return nil, errors.InvalidArgument("duration must be at least 1 hour")
		}
		reservation.Duration = *update.Duration
	}
	if update.VehicleType != nil {
		reservation.VehicleType = *update.VehicleType
	}
	if update.LicensePlate != nil {
		if strings.TrimSpace(*update.LicensePlate) == "" {
			return nil, errors.InvalidArgument("license plate is required")
		}
		reservation.LicensePlate = *update.LicensePlate
	}

	spot, err := s.spotRepo.GetByID(ctx, reservation.ParkingSpotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, errors.NotFound("parking spot not found")
	}
	reservation.TotalPrice = s.Quote(spot, reservation.Duration)

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	return reservation, nil
}

// Transition applies a payment outcome to the reservation: a succeeded
// payment confirms it, a failed payment fails it. Only a pending reservation
// moves; a reservation the user already cancelled stays cancelled even when
// its payment settles afterwards.
func (s *ReservationService) Transition(ctx context.Context, reservationID int64, outcome model.PaymentStatus) error {
	var target model.ReservationStatus
	switch outcome {
	case model.PaymentStatusSucceeded:
		target = model.ReservationStatusConfirmed
	case model.PaymentStatusFailed:
		target = model.ReservationStatusFailed
	default:
		return errors.InvalidArgument("payment outcome must be terminal")
	}

	applied, err := s.reservationRepo.UpdateStatusFromPending(ctx, reservationID, target)
	if err != nil {
		return err
	}
	if !applied {
		s.logger.Warn("Reservation no longer pending; payment outcome not applied to it",
			zap.Int64("reservation_id", reservationID),
			zap.String("outcome", string(outcome)),
		)
		return nil
	}

	s.logger.Info("Reservation status transitioned",
		zap.Int64("reservation_id", reservationID),
		zap.String("status", string(target)),
	)

	return nil
}

// Cancel marks the reservation cancelled. Permitted from any status except a
// reservation that is already cancelled. Only the owner may cancel.
func (s *ReservationService) Cancel(ctx context.Context, id, userID int64) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation == nil {
		return errors.NotFound("reservation not found")
	}
	if reservation.UserID != userID {
		return errors.Unauthorized("reservation belongs to another user")
	}
	if reservation.IsTerminalCancelled() {
		return errors.InvalidArgument("reservation is already cancelled")
	}

	return s.reservationRepo.UpdateStatus(ctx, id, model.ReservationStatusCancelled)
}

// Delete removes the reservation row entirely. Only the owner may delete.
func (s *ReservationService) Delete(ctx context.Context, id, userID int64) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation == nil {
		return errors.NotFound("reservation not found")
	}
	if reservation.UserID != userID {
		return errors.Unauthorized("reservation belongs to another user")
	}

	return s.reservationRepo.Delete(ctx, id)
}
