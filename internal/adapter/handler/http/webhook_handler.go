package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/parkease/backend/internal/adapter/repository"
	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/usecase"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

// WebhookHandler receives Stripe event deliveries. Every verified event is
// journaled before processing so redeliveries can be detected, and terminal
// payment outcomes are folded into local payment and reservation state.
type WebhookHandler struct {
	payments      *usecase.PaymentService
	webhooks      repository.WebhookRepository
	webhookSecret string
	logger        *zap.Logger
}

func NewWebhookHandler(
	payments *usecase.PaymentService,
	webhooks repository.WebhookRepository,
	webhookSecret string,
	logger *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		payments:      payments,
		webhooks:      webhooks,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error reading request body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(
		body,
		sig,
		h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		h.logger.Error("Webhook signature verification failed",
			zap.Error(err),
			zap.String("signature", sig),
		)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Webhook signature verification failed: " + err.Error(),
		})
	}

	h.logger.Info("Webhook event received",
		zap.String("type", string(event.Type)),
		zap.String("id", event.ID),
		zap.Time("created", time.Unix(event.Created, 0)),
	)

	ctx := c.Request().Context()

	existing, err := h.webhooks.GetEvent(ctx, event.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to journal event"})
	}
	if existing != nil && existing.Status == model.WebhookStatusCompleted {
		h.logger.Info("Duplicate webhook delivery ignored", zap.String("id", event.ID))
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}
	if existing == nil {
		raw, _ := json.Marshal(event)
		if err := h.webhooks.SaveEvent(ctx, event.ID, string(event.Type), raw); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to journal event"})
		}
	}

	if err := h.processEvent(ctx, event); err != nil {
		if markErr := h.webhooks.MarkFailed(ctx, event.ID, err); markErr != nil {
			h.logger.Error("Failed to mark webhook event failed", zap.Error(markErr))
		}
		// 500 so the provider retries the delivery.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to process event"})
	}

	if err := h.webhooks.MarkProcessed(ctx, event.ID); err != nil {
		h.logger.Error("Failed to mark webhook event processed", zap.Error(err))
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

func (h *WebhookHandler) processEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		intent, err := parseIntent(event)
		if err != nil {
			return err
		}

		h.logger.Info("Payment intent succeeded",
			zap.String("intent_id", intent.ID),
			zap.Int64("amount", intent.Amount),
		)

		lastFour, cardBrand := cardDetails(intent)
		return h.payments.ApplyOutcome(ctx, intent.ID, model.PaymentStatusSucceeded, lastFour, cardBrand)

	case stripe.EventTypePaymentIntentPaymentFailed:
		intent, err := parseIntent(event)
		if err != nil {
			return err
		}

		h.logger.Warn("Payment intent failed",
			zap.String("intent_id", intent.ID),
			zap.Int64("amount", intent.Amount),
		)

		return h.payments.ApplyOutcome(ctx, intent.ID, model.PaymentStatusFailed, nil, nil)

	default:
		h.logger.Warn("Unhandled event type",
			zap.String("type", string(event.Type)),
		)
		return nil
	}
}

func parseIntent(event stripe.Event) (*stripe.PaymentIntent, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// cardDetails pulls the card brand and last four digits when the event
// payload carries the charge inline. Most deliveries do not, in which case
// both come back nil and the confirm path fills them in later.
func cardDetails(intent *stripe.PaymentIntent) (*string, *string) {
	if intent.LatestCharge == nil || intent.LatestCharge.PaymentMethodDetails == nil {
		return nil, nil
	}
	card := intent.LatestCharge.PaymentMethodDetails.Card
	if card == nil {
		return nil, nil
	}

	lastFour := card.Last4
	brand := string(card.Brand)
	if lastFour == "" && brand == "" {
		return nil, nil
	}
	return &lastFour, &brand
}
