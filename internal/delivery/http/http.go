package http

import (
	"fks-execution/internal/service"
	"fks-execution/pkg/logger"

	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo    *echo.Echo
	log     *logger.Logger
	service *service.Service
}

func NewHttpAPIHandler(echo *echo.Echo, log *logger.Logger, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:    echo,
		log:     log,
		service: service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.SetupHealth(h.echo)
	h.SetupSignal(h.echo.Group("/execute"))
}
