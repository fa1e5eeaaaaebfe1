package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/parkease/backend/internal/domain/repository"
	"github.com/parkease/backend/internal/middleware/auth"
	"go.uber.org/zap"
)

type UserHandler struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewUserHandler(users repository.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// Me returns the profile row behind the authenticated token.
func (h *UserHandler) Me(c echo.Context) error {
	authUser, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetByID(c.Request().Context(), authUser.UserID)
	if err != nil {
		h.logger.Error("Failed to fetch user",
			zap.Int64("user_id", authUser.UserID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to fetch user",
		})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}

	return c.JSON(http.StatusOK, user)
}
