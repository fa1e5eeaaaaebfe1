package provider

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// CreateIntentRequest asks the provider to open a payment intent.
type CreateIntentRequest struct {
	// Amount in major currency units; converted to minor units by the
	// provider implementation.
	Amount   decimal.Decimal
	Currency string
	// ClientReference is an opaque id tying the intent back to this service.
	ClientReference string
	Metadata        map[string]string
}

// CreateIntentResponse carries the provider-side identifiers the client
// needs to complete the payment.
type CreateIntentResponse struct {
	IntentID     string
	ClientSecret string
	Status       string
}

// IntentStatus is the provider's view of a payment intent.
type IntentStatus struct {
	IntentID string
	Status   string
	// Card metadata, populated when the provider exposes the charged payment
	// method.
	LastFour  *string
	CardBrand *string
}

// PaymentProvider abstracts the hosted payment service.
type PaymentProvider interface {
	GetProviderName() string
	CreateIntent(ctx context.Context, req *CreateIntentRequest) (*CreateIntentResponse, error)
	GetIntent(ctx context.Context, intentID string) (*IntentStatus, error)
}

// ProviderError is a provider-side failure surfaced to the caller.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %s: %s", e.Code, e.Message)
}
