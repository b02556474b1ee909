package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupHealth(e *echo.Echo) {
	e.GET("/health", h.Health)
}

func (h *HttpAPIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.HealthService.Health(c.Request().Context()))
}
