package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/beanbocchi/flowmeter/internal/service"
	"github.com/beanbocchi/flowmeter/pkg/validator"
)

// NewEcho creates a new Echo instance
func NewEcho(svc *service.Service) (*echo.Echo, error) {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Custom validator
	customVal, err := validator.New()
	if err != nil {
		return nil, err
	}
	e.Validator = customVal

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Setup routes
	SetupRoute(e, svc)

	return e, nil
}
