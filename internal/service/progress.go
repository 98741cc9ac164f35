package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/guregu/null/v6"

	"github.com/beanbocchi/flowmeter/internal/db"
	"github.com/beanbocchi/flowmeter/internal/model"
)

type ProgressParams struct {
	TransferID uuid.UUID `validate:"required,uuid"`
}

// Progress reports a transfer's current position. For in-flight transfers
// the live meter wins over the persisted snapshot, which may be a tick
// behind.
func (s *Service) Progress(ctx context.Context, params ProgressParams) (model.TransferProgress, error) {
	transfer, err := s.storage.GetTransfer(ctx, params.TransferID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TransferProgress{}, model.ErrTransferNotFound.Fmt(params.TransferID.String())
		}
		return model.TransferProgress{}, fmt.Errorf("get transfer: %w", err)
	}

	progress := fromRow(transfer)

	if m := s.liveMeter(params.TransferID); m != nil {
		progress.BytesRead = m.BytesRead()
		progress.Fraction = m.Fraction()
		if rate := m.Rate(); rate > 0 {
			progress.RateBps = null.FloatFrom(rate)
		}
		if eta, ok := m.ETA(); ok {
			progress.EtaSeconds = null.FloatFrom(eta.Seconds())
		}
		if end, ok := m.ProjectedEnd(); ok {
			progress.ProjectedEnd = null.TimeFrom(end)
		}
	}

	return progress, nil
}

func fromRow(t db.Transfer) model.TransferProgress {
	return model.TransferProgress{
		ID:           uuid.MustParse(t.ID),
		ObjectKey:    t.ObjectKey,
		Status:       model.TransferStatus(t.Status),
		TotalBytes:   t.TotalBytes,
		BytesRead:    t.BytesRead,
		Fraction:     t.Fraction,
		RateBps:      t.RateBps,
		StartedAt:    t.StartedAt,
		CompletedAt:  t.CompletedAt,
		FileHash:     t.FileHash,
		ErrorMessage: t.ErrorMessage,
	}
}
