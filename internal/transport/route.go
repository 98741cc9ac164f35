package transport

import (
	"github.com/labstack/echo/v4"

	"github.com/beanbocchi/flowmeter/internal/service"
)

type Handler struct {
	svc *service.Service
}

func SetupRoute(e *echo.Echo, svc *service.Service) {
	h := &Handler{svc: svc}
	api := e.Group("/api/v1")

	api.POST("/transfers", h.Upload)
	api.GET("/transfers", h.ListTransfers)
	api.GET("/transfers/:id", h.Progress)
	api.GET("/objects/*", h.Download)
}
