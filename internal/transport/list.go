package transport

import (
	"net/http"

	"github.com/guregu/null/v6"
	"github.com/labstack/echo/v4"

	"github.com/beanbocchi/flowmeter/internal/db"
	"github.com/beanbocchi/flowmeter/internal/model"
	"github.com/beanbocchi/flowmeter/internal/service"
	"github.com/beanbocchi/flowmeter/pkg/response"
)

type ListTransfersRequest struct {
	model.PaginationParams
}

func (h *Handler) ListTransfers(c echo.Context) error {
	var req ListTransfersRequest
	if err := c.Bind(&req); err != nil {
		return response.FromError(c.Response().Writer, http.StatusBadRequest, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.FromError(c.Response().Writer, http.StatusBadRequest, err)
	}

	result, err := h.svc.ListTransfers(c.Request().Context(), service.ListTransfersParams{
		PaginationParams: req.PaginationParams,
	})
	if err != nil {
		return response.FromError(c.Response().Writer, http.StatusInternalServerError, err)
	}

	page := response.PaginationResponse[db.Transfer]{
		Data: result.Transfers,
		PageMeta: response.PageMeta{
			Limit: req.GetLimit(),
			Total: result.Total,
			Page:  null.Int32From(req.GetPage()),
		},
	}
	if result.Total.Valid && int64(req.GetPage()*req.GetLimit()) < result.Total.Int64 {
		page.PageMeta.NextPage = null.Int32From(req.GetPage() + 1)
	}

	return response.FromData(c.Response().Writer, http.StatusOK, page)
}
