package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beanbocchi/flowmeter/internal/service"
	"github.com/beanbocchi/flowmeter/pkg/response"
)

type UploadRequest struct {
	ObjectKey string `form:"object_key" validate:"required,min=1,max=512"`
}

func (h *Handler) Upload(c echo.Context) error {
	var req UploadRequest
	if err := c.Bind(&req); err != nil {
		return response.FromError(c.Response().Writer, http.StatusBadRequest, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.FromError(c.Response().Writer, http.StatusBadRequest, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.FromError(c.Response().Writer, http.StatusBadRequest, err)
	}

	transfer, err := h.svc.Upload(c.Request().Context(), service.UploadParams{
		ObjectKey: req.ObjectKey,
		File:      file,
	})
	if err != nil {
		return response.FromError(c.Response().Writer, http.StatusInternalServerError, err)
	}

	return response.FromData(c.Response().Writer, http.StatusCreated, transfer)
}
