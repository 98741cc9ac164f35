package service

import (
	"context"
	"fmt"

	"github.com/guregu/null/v6"

	"github.com/beanbocchi/flowmeter/internal/db"
	"github.com/beanbocchi/flowmeter/internal/model"
)

type ListTransfersParams struct {
	model.PaginationParams
}

type ListTransfersResult struct {
	Transfers []db.Transfer
	Total     null.Int64
}

func (s *Service) ListTransfers(ctx context.Context, params ListTransfersParams) (ListTransfersResult, error) {
	transfers, err := s.storage.ListTransfers(ctx, db.ListTransfersParams{
		Limit:  int64(params.GetLimit()),
		Offset: int64(params.Offset()),
	})
	if err != nil {
		return ListTransfersResult{}, fmt.Errorf("list transfers: %w", err)
	}

	total, err := s.storage.CountTransfers(ctx)
	if err != nil {
		return ListTransfersResult{}, fmt.Errorf("count transfers: %w", err)
	}

	return ListTransfersResult{
		Transfers: transfers,
		Total:     null.IntFrom(total),
	}, nil
}
