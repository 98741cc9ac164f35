package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"storj.io/uplink"

	"github.com/beanbocchi/flowmeter/internal/model"
	"github.com/beanbocchi/flowmeter/pkg/meter"
)

type DownloadParams struct {
	ObjectKey string `validate:"required,min=1,max=512"`
}

// DownloadResult carries the metered stream and the object size so the
// transport can set Content-Length and clients can meter their own side.
type DownloadResult struct {
	Content *meter.Reader
	Size    int64
}

func (s *Service) Download(ctx context.Context, params DownloadParams) (*DownloadResult, error) {
	info, err := s.objectStore.Stat(ctx, params.ObjectKey)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, uplink.ErrObjectNotFound) {
			return nil, model.ErrObjectNotFound.Fmt(params.ObjectKey)
		}
		return nil, fmt.Errorf("stat object: %w", err)
	}

	reader, err := s.objectStore.Download(ctx, params.ObjectKey)
	if err != nil {
		return nil, model.NewError("object_store.get", "Failed to get object from object store: %v").Fmt(err)
	}

	return &DownloadResult{
		Content: meter.NewReader(reader, info.Size),
		Size:    info.Size,
	}, nil
}
