package repository

import (
	"context"

	"github.com/parkease/backend/internal/domain/model"
)

// PaymentRepository persists payment records. Payments are never deleted.
type PaymentRepository interface {
	GetAll(ctx context.Context) ([]model.Payment, error)
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	GetByUserID(ctx context.Context, userID int64) ([]model.Payment, error)
	GetByProviderIntentID(ctx context.Context, intentID string) (*model.Payment, error)
	Create(ctx context.Context, payment *model.Payment) error
	// UpdateStatus sets the payment status and, when the card metadata
	// pointers are non-nil, records them in the same write.
	UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus, lastFour, cardBrand *string) error
}
