package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/middleware/auth"
	"github.com/parkease/backend/internal/usecase"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments *usecase.PaymentService
	logger   *zap.Logger
}

func NewPaymentHandler(payments *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger,
	}
}

type CreateIntentRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	ReservationID *int64  `json:"reservation_id,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

type PaymentRecordRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	PaymentStatus string  `json:"payment_status,omitempty"`
	LastFour      string  `json:"last_four,omitempty"`
	CardBrand     string  `json:"card_brand,omitempty"`
}

type PaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

// CreateIntent opens a provider payment intent and returns the client secret
// the frontend needs to collect the card.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	result, err := h.payments.Open(c.Request().Context(), &usecase.OpenPaymentRequest{
		Amount:        decimal.NewFromFloat(req.Amount),
		UserID:        user.UserID,
		ReservationID: req.ReservationID,
		Method:        model.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		return respondError(c, err, "Failed to create payment intent")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"clientSecret": result.ClientSecret,
		"id":           result.IntentID,
	})
}

// Status re-reads the intent from the provider and reports its status. Local
// records are reconciled as a side effect.
func (h *PaymentHandler) Status(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	status, err := h.payments.Confirm(c.Request().Context(), c.Param("intentId"))
	if err != nil {
		h.logger.Error("Failed to confirm payment intent",
			zap.String("intent_id", c.Param("intentId")),
			zap.Error(err))
		return respondError(c, err, "Failed to retrieve payment status")
	}

	return c.JSON(http.StatusOK, echo.Map{"status": status})
}

func (h *PaymentHandler) List(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	if raw := c.QueryParam("userId"); raw != "" {
		requested, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid userId"})
		}
		if requested != user.UserID {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
		}
	}

	payments, err := h.payments.List(c.Request().Context(), &user.UserID)
	if err != nil {
		h.logger.Error("Failed to list payments",
			zap.Int64("user_id", user.UserID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to fetch payments",
		})
	}

	return c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) Get(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid payment id"})
	}

	payment, err := h.payments.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch payment")
	}
	if payment.UserID != user.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
	}

	return c.JSON(http.StatusOK, payment)
}

// Create records a payment completed out of band, with no provider intent.
func (h *PaymentHandler) Create(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req PaymentRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	payment := &model.Payment{
		UserID:        user.UserID,
		Amount:        decimal.NewFromFloat(req.Amount),
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		PaymentStatus: model.PaymentStatus(req.PaymentStatus),
	}
	if req.LastFour != "" {
		payment.LastFour = &req.LastFour
	}
	if req.CardBrand != "" {
		payment.CardBrand = &req.CardBrand
	}
	if err := h.payments.Record(c.Request().Context(), payment); err != nil {
		return respondError(c, err, "Failed to record payment")
	}

	return c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) Update(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid payment id"})
	}

	var req PaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	existing, err := h.payments.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch payment")
	}
	if existing.UserID != user.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
	}

	payment, err := h.payments.SetStatus(c.Request().Context(), id, model.PaymentStatus(req.PaymentStatus))
	if err != nil {
		return respondError(c, err, "Failed to update payment")
	}

	return c.JSON(http.StatusOK, payment)
}

// Delete is intentionally unsupported; payment rows are an audit trail.
func (h *PaymentHandler) Delete(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, echo.Map{
		"message": "Payment deletion is not supported",
	})
}
