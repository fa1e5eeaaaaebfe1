package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/parkease/backend/internal/middleware/auth"
	"github.com/parkease/backend/internal/usecase"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	reservations *usecase.ReservationService
	logger       *zap.Logger
}

func NewReservationHandler(reservations *usecase.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		reservations: reservations,
		logger:       logger,
	}
}

type ReservationRequest struct {
	ParkingSpotID int64  `json:"parking_spot_id" validate:"required"`
	Date          string `json:"date" validate:"required"`
	StartTime     string `json:"start_time" validate:"required"`
	Duration      int    `json:"duration" validate:"required,gte=1"`
	VehicleType   string `json:"vehicle_type"`
	LicensePlate  string `json:"license_plate" validate:"required"`
}

type ReservationUpdateRequest struct {
	Date         *string `json:"date,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	Duration     *int    `json:"duration,omitempty" validate:"omitempty,gte=1"`
	VehicleType  *string `json:"vehicle_type,omitempty"`
	LicensePlate *string `json:"license_plate,omitempty"`
}

// List returns the authenticated user's reservations. A userId query
// parameter naming anyone else is rejected.
func (h *ReservationHandler) List(c echo.Context) error {
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

	reservations, err := h.reservations.ListByUser(c.Request().Context(), user.UserID)
	if err != nil {
		h.logger.Error("Failed to list reservations",
			zap.Int64("user_id", user.UserID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to fetch reservations",
		})
	}

	return c.JSON(http.StatusOK, reservations)
}

func (h *ReservationHandler) Get(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid reservation id"})
	}

	reservation, err := h.reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch reservation")
	}
	if reservation.UserID != user.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
	}

	return c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) Create(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req ReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	reservation, err := h.reservations.Create(c.Request().Context(), &usecase.ReservationDraft{
		UserID:        user.UserID,
		ParkingSpotID: req.ParkingSpotID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		Duration:      req.Duration,
		VehicleType:   req.VehicleType,
		LicensePlate:  req.LicensePlate,
	})
	if err != nil {
		return respondError(c, err, "Failed to create reservation")
	}

	return c.JSON(http.StatusCreated, reservation)
}

func (h *ReservationHandler) Update(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid reservation id"})
	}

	var req ReservationUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	_, err = h.reservations.Update(c.Request().Context(), id, user.UserID, &usecase.ReservationUpdate{
		Date:         req.Date,
		StartTime:    req.StartTime,
		Duration:     req.Duration,
		VehicleType:  req.VehicleType,
		LicensePlate: req.LicensePlate,
	})
	if err != nil {
		return respondError(c, err, "Failed to update reservation")
	}

	return c.NoContent(http.StatusNoContent)
}

// Cancel marks the reservation cancelled without removing the row.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid reservation id"})
	}

	if err := h.reservations.Cancel(c.Request().Context(), id, user.UserID); err != nil {
		return respondError(c, err, "Failed to cancel reservation")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) Delete(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid reservation id"})
	}

	if err := h.reservations.Delete(c.Request().Context(), id, user.UserID); err != nil {
		return respondError(c, err, "Failed to delete reservation")
	}

	return c.NoContent(http.StatusNoContent)
}
