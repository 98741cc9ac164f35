package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/aws/smithy-go/ptr"
	"github.com/c2h5oh/datasize"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/beanbocchi/flowmeter/internal/db"
	"github.com/beanbocchi/flowmeter/internal/model"
	"github.com/beanbocchi/flowmeter/pkg/meter"
)

type UploadParams struct {
	ObjectKey string `validate:"required,min=1,max=512"`
	File      *multipart.FileHeader
}

// Upload streams the uploaded file into the object store through a progress
// meter, hashing it on the way. Progress snapshots land in storage on a
// ticker so they survive the process and feed later queries.
func (s *Service) Upload(ctx context.Context, params UploadParams) (db.Transfer, error) {
	id := uuid.New()

	transfer, err := s.storage.CreateTransfer(ctx, db.CreateTransferParams{
		ID:         id.String(),
		ObjectKey:  params.ObjectKey,
		Status:     string(model.TransferPending),
		TotalBytes: params.File.Size,
		StartedAt:  time.Now(),
	})
	if err != nil {
		return db.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}

	src, err := params.File.Open()
	if err != nil {
		s.failTransfer(ctx, id, err)
		return db.Transfer{}, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	// Hash while uploading; the meter sits outermost so it sees exactly
	// what the object store consumed.
	hasher := blake3.New()
	m := meter.NewReader(io.TeeReader(src, hasher), params.File.Size)

	s.trackMeter(id, m)
	defer s.untrackMeter(id)

	if err := s.storage.UpdateTransfer(ctx, db.UpdateTransferParams{
		ID:     id.String(),
		Status: ptr.String(string(model.TransferRunning)),
	}); err != nil {
		return db.Transfer{}, fmt.Errorf("update transfer: %w", err)
	}

	// Snapshot progress while the upload runs.
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.cfg.App.SnapshotInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.snapshot(id, m)
			}
		}
	}()

	err = s.objectStore.Upload(ctx, params.ObjectKey, m)
	close(done)
	if err != nil {
		s.failTransfer(ctx, id, err)
		return db.Transfer{}, model.NewError("object_store.put", "Failed to store object: %v").Fmt(err)
	}

	hash := hex.EncodeToString(hasher.Sum(nil))
	if err := s.storage.UpdateTransfer(ctx, db.UpdateTransferParams{
		ID:          id.String(),
		Status:      ptr.String(string(model.TransferCompleted)),
		BytesRead:   ptr.Int64(m.BytesRead()),
		Fraction:    ptr.Float64(m.Fraction()),
		RateBps:     ptr.Float64(m.Rate()),
		FileHash:    ptr.String(hash),
		CompletedAt: ptr.Time(time.Now()),
	}); err != nil {
		return db.Transfer{}, fmt.Errorf("finalize transfer: %w", err)
	}

	slog.Info("transfer completed",
		"id", id,
		"key", params.ObjectKey,
		"size", datasize.ByteSize(m.BytesRead()).HumanReadable(),
		"elapsed", m.Elapsed(),
		"rate", fmt.Sprintf("%s/s", datasize.ByteSize(m.Rate()).HumanReadable()),
	)

	return s.storage.GetTransfer(ctx, transfer.ID)
}

// snapshot enqueues a storage write with the meter's current numbers. The
// write is dropped when the job queue is saturated; the next tick will
// carry fresher values anyway.
func (s *Service) snapshot(id uuid.UUID, m *meter.Reader) {
	read := m.BytesRead()
	fraction := m.Fraction()
	rate := m.Rate()

	job := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		params := db.UpdateTransferParams{
			ID:        id.String(),
			BytesRead: ptr.Int64(read),
			Fraction:  ptr.Float64(fraction),
		}
		if rate > 0 {
			params.RateBps = ptr.Float64(rate)
		}
		if err := s.storage.UpdateTransfer(ctx, params); err != nil {
			slog.Error("failed to snapshot transfer progress", "id", id, "error", err)
		}
	}

	select {
	case s.jobs <- job:
	default:
		slog.Warn("job queue full, dropping progress snapshot", "id", id)
	}
}

func (s *Service) failTransfer(ctx context.Context, id uuid.UUID, cause error) {
	if err := s.storage.UpdateTransfer(ctx, db.UpdateTransferParams{
		ID:           id.String(),
		Status:       ptr.String(string(model.TransferFailed)),
		ErrorMessage: ptr.String(cause.Error()),
		CompletedAt:  ptr.Time(time.Now()),
	}); err != nil {
		slog.Error("failed to mark transfer failed", "id", id, "error", err)
	}
}
