package stripe

import (
	"context"

	"github.com/parkease/backend/internal/domain/provider"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"go.uber.org/zap"
)

// StripeProvider implements the PaymentProvider interface for Stripe.
type StripeProvider struct {
	logger *zap.Logger
}

// NewStripeProvider creates a new Stripe provider. The secret key is set on
// the global stripe client.
func NewStripeProvider(secretKey string, logger *zap.Logger) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{
		logger: logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return "stripe"
}

// CreateIntent opens a Stripe payment intent. The amount is converted to
// minor currency units (cents).
func (s *StripeProvider) CreateIntent(ctx context.Context, req *provider.CreateIntentRequest) (*provider.CreateIntentResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount.Shift(2).Round(0).IntPart()),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if req.ClientReference != "" {
		params.AddMetadata("client_reference", req.ClientReference)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		s.logger.Error("Stripe payment intent creation failed", zap.Error(err))
		return nil, toProviderError(err)
	}

	s.logger.Info("Stripe payment intent created",
		zap.String("intent_id", pi.ID),
		zap.Int64("amount_cents", pi.Amount),
	)

	return &provider.CreateIntentResponse{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// GetIntent reads the intent back from Stripe, expanding the latest charge so
// card metadata is available once the payment succeeded.
func (s *StripeProvider) GetIntent(ctx context.Context, intentID string) (*provider.IntentStatus, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("latest_charge")

	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		s.logger.Error("Stripe payment intent lookup failed",
			zap.String("intent_id", intentID),
			zap.Error(err))
		return nil, toProviderError(err)
	}

	status := &provider.IntentStatus{
		IntentID: pi.ID,
		Status:   string(pi.Status),
	}

	if pi.LatestCharge != nil && pi.LatestCharge.PaymentMethodDetails != nil &&
		pi.LatestCharge.PaymentMethodDetails.Card != nil {
		card := pi.LatestCharge.PaymentMethodDetails.Card
		lastFour := card.Last4
		brand := string(card.Brand)
		status.LastFour = &lastFour
		status.CardBrand = &brand
	}

	return status, nil
}

// toProviderError flattens a stripe-go error into the domain error shape.
func toProviderError(err error) error {
	if stripeErr, ok := err.(*stripe.Error); ok {
		return &provider.ProviderError{
			Code:    string(stripeErr.Code),
			Message: stripeErr.Msg,
		}
	}
	return &provider.ProviderError{
		Code:    "PROVIDER_UNAVAILABLE",
		Message: err.Error(),
	}
}

var _ provider.PaymentProvider = (*StripeProvider)(nil)
