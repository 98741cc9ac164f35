package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestClient(t *testing.T) *ClientImpl {
	t.Helper()
	client, err := NewClient(LocalConfig{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("creates root directory", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "objects")
		if _, err := NewClient(LocalConfig{Root: root}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := os.Stat(root); err != nil {
			t.Errorf("expected root to exist: %v", err)
		}
	})

	t.Run("empty root returns error", func(t *testing.T) {
		if _, err := NewClient(LocalConfig{}); err == nil {
			t.Fatal("expected error for empty root")
		}
	})
}

func TestUploadDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		client := newTestClient(t)

		if err := client.Upload(ctx, "a/b/payload.bin", strings.NewReader("payload")); err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		reader, err := client.Download(ctx, "a/b/payload.bin")
		if err != nil {
			t.Fatalf("download failed: %v", err)
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(data) != "payload" {
			t.Errorf("expected %q, got %q", "payload", string(data))
		}
	})

	t.Run("no partial file left on failed upload", func(t *testing.T) {
		client := newTestClient(t)

		failing := io.MultiReader(strings.NewReader("partial"), errorReader{})
		if err := client.Upload(ctx, "broken.bin", failing); err == nil {
			t.Fatal("expected upload error")
		}

		if _, err := client.Download(ctx, "broken.bin"); err == nil {
			t.Error("expected no object after failed upload")
		}
	})

	t.Run("traversal key stays under root", func(t *testing.T) {
		client := newTestClient(t)

		outside := filepath.Join(client.root, "..", "escaped.bin")
		if err := client.Upload(ctx, "../escaped.bin", strings.NewReader("x")); err != nil {
			t.Fatalf("upload failed: %v", err)
		}
		if _, err := os.Stat(outside); err == nil {
			t.Error("object escaped the root directory")
		}
	})
}

func TestStat(t *testing.T) {
	ctx := context.Background()

	t.Run("reports object size", func(t *testing.T) {
		client := newTestClient(t)
		if err := client.Upload(ctx, "sized.bin", strings.NewReader("0123456789")); err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		info, err := client.Stat(ctx, "sized.bin")
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if info.Size != 10 {
			t.Errorf("expected size 10, got %d", info.Size)
		}
	})

	t.Run("missing object returns error", func(t *testing.T) {
		client := newTestClient(t)
		if _, err := client.Stat(ctx, "missing.bin"); err == nil {
			t.Fatal("expected error for missing object")
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if err := client.Upload(ctx, "gone.bin", strings.NewReader("x")); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if err := client.Delete(ctx, "gone.bin"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := client.Stat(ctx, "gone.bin"); err == nil {
		t.Error("expected object to be gone")
	}

	// Deleting a missing object is not an error.
	if err := client.Delete(ctx, "never-there.bin"); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}

type errorReader struct{}

func (errorReader) Read(p []byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}
