package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/metrics"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	UsersHandler   *UsersHTTP
	CatalogHandler *CatalogHTTP
	Metrics        *metrics.Prom
	Ready          func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}

	api := e.Group("/api")

	api.POST("/admin/setup", d.AuthHandler.Setup)
	api.POST("/register", d.AuthHandler.Register)
	api.POST("/admin/login", d.AuthHandler.AdminLogin)
	api.POST("/login", d.AuthHandler.Login)

	users := api.Group("/users")
	users.GET("", d.UsersHandler.ListUsers)
	users.PUT("/:id", d.UsersHandler.UpdateUser)
	users.DELETE("/:id", d.UsersHandler.DeleteUser)

	products := api.Group("/products")
	products.POST("", d.CatalogHandler.CreateProduct)
	products.GET("", d.CatalogHandler.GetProducts)
	products.PUT("/:id", d.CatalogHandler.UpdateProduct)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct)
}

func (d *Deps) ready(c echo.Context) error {
	if d.Ready == nil {
		return c.NoContent(http.StatusOK)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := d.Ready(ctx); err != nil {
		logging.FromContext(ctx).Error("not_ready", "status", 503, "error", err)
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
