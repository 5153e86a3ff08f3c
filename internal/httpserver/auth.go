package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

// storeFailure answers 500 with the underlying error text in "details".
func storeFailure(c echo.Context, l *slog.Logger, event, msg string, err error) error {
	l.Error(event, "status", http.StatusInternalServerError, "reason", msg, "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error":   msg,
		"details": err.Error(),
	})
}

func (h *AuthHTTP) Setup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.admin_setup")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_setup_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	admin, err := h.Svc.Setup(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConflict):
			l.Warn("admin_setup_error", "status", 403, "reason", "admin exists", "error", err)
			return echo.NewHTTPError(http.StatusForbidden, "Admin user already exists. Setup blocked.")
		case errors.Is(err, service.ErrDuplicateEmail):
			l.Warn("admin_setup_error", "status", 409, "reason", "email taken", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "This email address is already registered.")
		}
		return storeFailure(c, l, "admin_setup_error", "Failed to create admin", err)
	}

	l.Info("admin_setup_success", "user_id", admin.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Admin user created successfully!",
		"user":    admin,
	})
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_error", "status", 400, "reason", "missing fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields (name, email, password).")
		case errors.Is(err, service.ErrDuplicateEmail):
			l.Warn("register_error", "status", 409, "reason", "email taken", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "This email address is already registered.")
		}
		return storeFailure(c, l, "register_error", "Failed to create user account", err)
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) AdminLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.admin_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	admin, err := h.Svc.AdminLogin(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			l.Warn("admin_login_failed", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials or not an admin.")
		}
		return storeFailure(c, l, "admin_login_error", "Login failed", err)
	}

	l.Info("admin_login_success")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Admin login successful",
		"user":    admin.Name,
		"role":    admin.Role,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("login_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "User not found or role mismatch.")
		case errors.Is(err, service.ErrUnauthorized):
			l.Warn("login_failed", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password.")
		}
		return storeFailure(c, l, "login_error", "Login failed", err)
	}

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"role":    user.Role,
	})
}
