package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/beanbocchi/flowmeter/internal/model"
	"github.com/beanbocchi/flowmeter/internal/service"
	"github.com/beanbocchi/flowmeter/pkg/response"
)

func (h *Handler) Download(c echo.Context) error {
	key, err := url.PathUnescape(c.Param("*"))
	if err != nil || key == "" {
		return response.FromError(c.Response().Writer, http.StatusBadRequest, fmt.Errorf("invalid object key"))
	}

	result, err := h.svc.Download(c.Request().Context(), service.DownloadParams{
		ObjectKey: key,
	})
	if err != nil {
		var coded model.Error
		if errors.As(err, &coded) && coded.Code() == model.ErrObjectNotFound.Code() {
			return response.FromError(c.Response().Writer, http.StatusNotFound, err)
		}
		return response.FromError(c.Response().Writer, http.StatusInternalServerError, err)
	}
	defer result.Content.Close()

	c.Response().Header().Set(echo.HeaderContentType, "application/octet-stream")
	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(result.Size, 10))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", key))
	c.Response().WriteHeader(http.StatusOK)

	if _, err := io.Copy(c.Response().Writer, result.Content); err != nil {
		// Headers are gone already, nothing to report to the client.
		return err
	}

	return nil
}
