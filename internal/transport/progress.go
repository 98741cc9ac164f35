package transport

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/beanbocchi/flowmeter/internal/model"
	"github.com/beanbocchi/flowmeter/internal/service"
	"github.com/beanbocchi/flowmeter/pkg/response"
)

func (h *Handler) Progress(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.FromError(c.Response().Writer, http.StatusBadRequest, err)
	}

	progress, err := h.svc.Progress(c.Request().Context(), service.ProgressParams{
		TransferID: id,
	})
	if err != nil {
		var coded model.Error
		if errors.As(err, &coded) && coded.Code() == model.ErrTransferNotFound.Code() {
			return response.FromError(c.Response().Writer, http.StatusNotFound, err)
		}
		return response.FromError(c.Response().Writer, http.StatusInternalServerError, err)
	}

	return response.FromData(c.Response().Writer, http.StatusOK, progress)
}
