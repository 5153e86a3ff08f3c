package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type UsersHTTP struct {
	Svc *service.AccountService
}

func (h *UsersHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return storeFailure(c, l, "list_users_error", "Failed to fetch user data", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UsersHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.update")

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateUser(ctx, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidIdentifier):
			l.Warn("update_user_error", "status", 400, "reason", "bad id", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid User ID format.")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_user_error", "status", 400, "reason", "invalid fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_user_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "User not found.")
		case errors.Is(err, service.ErrDuplicateEmail):
			l.Warn("update_user_error", "status", 409, "reason", "email taken", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "Email already exists.")
		case errors.Is(err, service.ErrConflict):
			l.Warn("update_user_error", "status", 409, "reason", "admin exists", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "An admin user already exists.")
		}
		return storeFailure(c, l, "update_user_error", "Failed to update user", err)
	}

	l.Info("update_user_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *UsersHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.delete")

	id, err := h.Svc.DeleteUser(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidIdentifier):
			l.Warn("delete_user_error", "status", 400, "reason", "bad id", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid User ID format.")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("delete_user_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "User not found.")
		}
		return storeFailure(c, l, "delete_user_error", "Failed to delete user", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User deleted successfully",
		"id":      id,
	})
}
