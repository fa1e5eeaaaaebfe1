package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *paymentRepository) GetAll(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment

	if err := r.db.WithContext(ctx).Find(&payments).Error; err != nil {
		r.logger.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get payment",
			zap.Int64("payment_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

func (r *paymentRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Payment, error) {
	var payments []model.Payment

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("transaction_date DESC").
		Find(&payments).Error
	if err != nil {
		r.logger.Error("Failed to get user payments",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get user payments: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) GetByProviderIntentID(ctx context.Context, intentID string) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where("provider_payment_intent_id = ?", intentID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get payment by intent",
			zap.String("intent_id", intentID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment by intent: %w", err)
	}

	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		r.logger.Error("Failed to create payment",
			zap.Int64("user_id", payment.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// UpdateStatus touches only the status and, when supplied, the card metadata.
// The amount column is deliberately never part of this write.
func (r *paymentRepository) UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus, lastFour, cardBrand *string) error {
	updates := map[string]interface{}{
		"payment_status": status,
		"updated_at":     time.Now(),
	}
	if lastFour != nil {
		updates["last_four"] = *lastFour
	}
	if cardBrand != nil {
		updates["card_brand"] = *cardBrand
	}

	err := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		r.logger.Error("Failed to update payment status",
			zap.Int64("payment_id", id),
			zap.String("status", string(status)),
			zap.Error(err))
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	return nil
}
