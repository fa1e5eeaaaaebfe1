package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type reservationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB, logger *zap.Logger) repository.ReservationRepository {
	return &reservationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *reservationRepository) GetAll(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation

	err := r.db.WithContext(ctx).
		Preload("ParkingSpot").
		Find(&reservations).Error
	if err != nil {
		r.logger.Error("Failed to list reservations", zap.Error(err))
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	return reservations, nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	var reservation model.Reservation

	err := r.db.WithContext(ctx).
		Preload("ParkingSpot").
		First(&reservation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get reservation",
			zap.Int64("reservation_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	return &reservation, nil
}

func (r *reservationRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Reservation, error) {
	var reservations []model.Reservation

	err := r.db.WithContext(ctx).
		Preload("ParkingSpot").
		Where("user_id = ?", userID).
		Find(&reservations).Error
	if err != nil {
		r.logger.Error("Failed to get user reservations",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get user reservations: %w", err)
	}

	return reservations, nil
}

func (r *reservationRepository) GetByPaymentID(ctx context.Context, paymentID int64) (*model.Reservation, error) {
	var reservation model.Reservation

	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get reservation by payment",
			zap.Int64("payment_id", paymentID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get reservation by payment: %w", err)
	}

	return &reservation, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	if err := r.db.WithContext(ctx).Create(reservation).Error; err != nil {
		r.logger.Error("Failed to create reservation",
			zap.Int64("user_id", reservation.UserID),
			zap.Int64("spot_id", reservation.ParkingSpotID),
			zap.Error(err))
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	return nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *model.Reservation) error {
	if err := r.db.WithContext(ctx).Save(reservation).Error; err != nil {
		r.logger.Error("Failed to update reservation",
			zap.Int64("reservation_id", reservation.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update reservation: %w", err)
	}

	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		r.logger.Error("Failed to update reservation status",
			zap.Int64("reservation_id", id),
			zap.String("status", string(status)),
			zap.Error(err))
		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	return nil
}

func (r *reservationRepository) UpdateStatusFromPending(ctx context.Context, id int64, status model.ReservationStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ? AND status = ?", id, model.ReservationStatusPending).
		Update("status", status)
	if result.Error != nil {
		r.logger.Error("Failed to update reservation status",
			zap.Int64("reservation_id", id),
			zap.String("status", string(status)),
			zap.Error(result.Error))
		return false, fmt.Errorf("failed to update reservation status: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *reservationRepository) LinkPayment(ctx context.Context, id int64, paymentID int64) error {
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ?", id).
		Update("payment_id", paymentID).Error
	if err != nil {
		r.logger.Error("Failed to link payment to reservation",
			zap.Int64("reservation_id", id),
			zap.Int64("payment_id", paymentID),
			zap.Error(err))
		return fmt.Errorf("failed to link payment to reservation: %w", err)
	}

	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Reservation{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete reservation",
			zap.Int64("reservation_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
