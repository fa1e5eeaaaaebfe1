package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/parkease/backend/internal/middleware/auth"
	"github.com/parkease/backend/internal/usecase"
	"github.com/parkease/backend/pkg/errors"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	favorites *usecase.FavoriteService
	logger    *zap.Logger
}

func NewFavoriteHandler(favorites *usecase.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: favorites,
		logger:    logger,
	}
}

type FavoriteRequest struct {
	ParkingSpotID int64 `json:"parking_spot_id" validate:"required"`
}

// List returns the full parking spot rows the user has favorited, not the
// join rows themselves.
func (h *FavoriteHandler) List(c echo.Context) error {
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

	spots, err := h.favorites.ListSpots(c.Request().Context(), user.UserID)
	if err != nil {
		h.logger.Error("Failed to list favorites",
			zap.Int64("user_id", user.UserID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to fetch favorites",
		})
	}

	return c.JSON(http.StatusOK, spots)
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	favorite, err := h.favorites.Add(c.Request().Context(), user.UserID, req.ParkingSpotID)
	if err != nil {
		// The clients treat a duplicate as a plain bad request, not a
		// conflict.
		if errors.CodeOf(err) == errors.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Already in favorites"})
		}
		return respondError(c, err, "Failed to add favorite")
	}

	return c.JSON(http.StatusCreated, favorite)
}

func (h *FavoriteHandler) Delete(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid favorite id"})
	}

	if err := h.favorites.Remove(c.Request().Context(), id, user.UserID); err != nil {
		return respondError(c, err, "Failed to remove favorite")
	}

	return c.NoContent(http.StatusNoContent)
}
