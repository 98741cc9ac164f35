package objectstore

import (
	"context"
	"io"
)

// ObjectInfo describes a stored object. Size feeds the progress meter when
// an object is streamed back out.
type ObjectInfo struct {
	Key  string
	Size int64
}

type Client interface {
	Upload(ctx context.Context, key string, content io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}
