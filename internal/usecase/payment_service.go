package usecase

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/provider"
	"github.com/parkease/backend/internal/domain/repository"
	"github.com/parkease/backend/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReservationLifecycle is the slice of the reservation service the payment
// bridge needs: applying a terminal payment outcome.
type ReservationLifecycle interface {
	Transition(ctx context.Context, reservationID int64, outcome model.PaymentStatus) error
}

// OpenPaymentRequest opens a payment intent for a user, optionally tied to a
// reservation.
type OpenPaymentRequest struct {
	Amount        decimal.Decimal
	UserID        int64
	ReservationID *int64
	Method        model.PaymentMethod
}

// OpenPaymentResult carries what the client needs to complete the payment.
type OpenPaymentResult struct {
	PaymentID    int64
	IntentID     string
	ClientSecret string
}

// PaymentService bridges the hosted payment provider and the local payment
// records. The provider is the source of truth for payment status; local
// state is reconciled through Confirm and webhook deliveries.
type PaymentService struct {
	paymentRepo     repository.PaymentRepository
	reservationRepo repository.ReservationRepository
	reservations    ReservationLifecycle
	provider        provider.PaymentProvider
	logger          *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	reservationRepo repository.ReservationRepository,
	reservations ReservationLifecycle,
	paymentProvider provider.PaymentProvider,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		reservations:    reservations,
		provider:        paymentProvider,
		logger:          logger,
	}
}

// Open creates a provider intent, records a pending local payment keyed to
// it, and links the reservation when one is given.
//
// The provider call and the local write are not one transaction; if the local
// write fails after the intent was opened, the confirm/webhook path
// reconciles from the provider side.
func (s *PaymentService) Open(ctx context.Context, req *OpenPaymentRequest) (*OpenPaymentResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.InvalidArgument("amount must be positive")
	}
	if req.UserID == 0 {
		return nil, errors.InvalidArgument("user id is required")
	}

	method := req.Method
	if method == "" {
		method = model.PaymentMethodCreditCard
	}

	metadata := map[string]string{}
	if req.ReservationID != nil {
		metadata["reservation_id"] = strconv.FormatInt(*req.ReservationID, 10)
	}

	intent, err := s.provider.CreateIntent(ctx, &provider.CreateIntentRequest{
		Amount:          req.Amount,
		Currency:        "usd",
		ClientReference: uuid.New().String(),
		Metadata:        metadata,
	})
	if err != nil {
		s.logger.Error("Failed to create payment intent",
			zap.Int64("user_id", req.UserID),
			zap.Error(err))
		return nil, err
	}

	payment := &model.Payment{
		UserID:                  req.UserID,
		Amount:                  req.Amount,
		PaymentMethod:           method,
		PaymentStatus:           model.PaymentStatusPending,
		ProviderPaymentIntentID: &intent.IntentID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if req.ReservationID != nil {
		if err := s.reservationRepo.LinkPayment(ctx, *req.ReservationID, payment.ID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Payment intent opened",
		zap.Int64("payment_id", payment.ID),
		zap.String("intent_id", intent.IntentID),
		zap.String("amount", req.Amount.String()),
	)

	return &OpenPaymentResult{
		PaymentID:    payment.ID,
		IntentID:     intent.IntentID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// Confirm re-reads the intent from the provider and reconciles local state.
// Returns the provider's status string.
func (s *PaymentService) Confirm(ctx context.Context, intentID string) (string, error) {
	if intentID == "" {
		return "", errors.InvalidArgument("payment intent id is required")
	}

	status, err := s.provider.GetIntent(ctx, intentID)
	if err != nil {
		return "", err
	}

	outcome := mapProviderStatus(status.Status)
	if outcome != model.PaymentStatusPending {
		if err := s.ApplyOutcome(ctx, intentID, outcome, status.LastFour, status.CardBrand); err != nil {
			return "", err
		}
	}

	return status.Status, nil
}

// ApplyOutcome reconciles a terminal payment outcome. Re-applying the same
// terminal outcome is a no-op, so repeated webhook deliveries and a
// confirm-then-webhook overlap are both harmless.
func (s *PaymentService) ApplyOutcome(ctx context.Context, intentID string, outcome model.PaymentStatus, lastFour, cardBrand *string) error {
	if outcome != model.PaymentStatusSucceeded && outcome != model.PaymentStatusFailed {
		return errors.InvalidArgument("outcome must be terminal")
	}

	payment, err := s.paymentRepo.GetByProviderIntentID(ctx, intentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return errors.NotFound("payment not found for intent")
	}

	if payment.IsTerminal() {
		if payment.PaymentStatus != outcome {
			s.logger.Warn("Conflicting terminal outcome for payment; keeping existing status",
				zap.Int64("payment_id", payment.ID),
				zap.String("existing", string(payment.PaymentStatus)),
				zap.String("incoming", string(outcome)))
		}
		return nil
	}

	// Card metadata is only recorded together with a success.
	if outcome != model.PaymentStatusSucceeded {
		lastFour, cardBrand = nil, nil
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, outcome, lastFour, cardBrand); err != nil {
		return err
	}

	reservation, err := s.reservationRepo.GetByPaymentID(ctx, payment.ID)
	if err != nil {
		return err
	}
	if reservation != nil {
		if err := s.reservations.Transition(ctx, reservation.ID, outcome); err != nil {
			return err
		}
	}

	s.logger.Info("Payment outcome applied",
		zap.Int64("payment_id", payment.ID),
		zap.String("intent_id", intentID),
		zap.String("outcome", string(outcome)),
	)

	return nil
}

// Record stores a manually reported payment (no provider intent), e.g. a
// wallet payment completed out of band.
func (s *PaymentService) Record(ctx context.Context, payment *model.Payment) error {
	if payment.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.InvalidArgument("amount must be positive")
	}
	if payment.UserID == 0 {
		return errors.InvalidArgument("user id is required")
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = model.PaymentMethodCreditCard
	}
	if payment.PaymentStatus == "" {
		payment.PaymentStatus = model.PaymentStatusPending
	}

	return s.paymentRepo.Create(ctx, payment)
}

// SetStatus updates a manually recorded payment's status. Payments opened
// through the provider are reconciled via Confirm or the webhook instead.
func (s *PaymentService) SetStatus(ctx context.Context, id int64, status model.PaymentStatus) (*model.Payment, error) {
	switch status {
	case model.PaymentStatusPending, model.PaymentStatusSucceeded, model.PaymentStatusFailed:
	default:
		return nil, errors.InvalidArgument("unknown payment status")
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errors.NotFound("payment not found")
	}

	if err := s.paymentRepo.UpdateStatus(ctx, id, status, nil, nil); err != nil {
		return nil, err
	}

	payment.PaymentStatus = status
	return payment, nil
}

// GetByID returns one payment.
func (s *PaymentService) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errors.NotFound("payment not found")
	}
	return payment, nil
}

// List returns all payments or one user's payments.
func (s *PaymentService) List(ctx context.Context, userID *int64) ([]model.Payment, error) {
	if userID != nil {
		return s.paymentRepo.GetByUserID(ctx, *userID)
	}
	return s.paymentRepo.GetAll(ctx)
}

// mapProviderStatus folds the provider's intent status into the local
// payment status. Canceled is the only terminal failure an intent reports;
// a declined attempt rolls the intent back to requires_payment_method, so
// retryable states (requires_payment_method, requires_action, processing)
// all stay pending.
func mapProviderStatus(status string) model.PaymentStatus {
	switch status {
	case "succeeded":
		return model.PaymentStatusSucceeded
	case "canceled":
		return model.PaymentStatusFailed
	default:
		return model.PaymentStatusPending
	}
}
