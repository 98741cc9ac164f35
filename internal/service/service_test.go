package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/beanbocchi/flowmeter/config"
	"github.com/beanbocchi/flowmeter/internal/db"
	"github.com/beanbocchi/flowmeter/internal/model"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	sqliteDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A second pool connection would see a different in-memory database.
	sqliteDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqliteDB.Close() })

	if err := db.Migrate(sqliteDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Env: "dev",
		App: config.App{
			Name:             "flowmeter-test",
			Port:             0,
			JobBuffer:        8,
			SnapshotInterval: 10 * time.Millisecond,
		},
		Objectstore: config.Objectstore{
			Type:  "local",
			Local: config.LocalStore{Root: t.TempDir()},
		},
	}

	svc, err := NewService(cfg, sqliteDB)
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

// makeFileHeader builds a *multipart.FileHeader the way echo would hand it
// to the handler, without spinning up an HTTP server.
func makeFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores object and finalizes transfer", func(t *testing.T) {
		svc := newTestService(t)
		content := bytes.Repeat([]byte("flow"), 1000)

		transfer, err := svc.Upload(ctx, UploadParams{
			ObjectKey: "test/payload.bin",
			File:      makeFileHeader(t, "payload.bin", content),
		})
		if err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		if transfer.Status != string(model.TransferCompleted) {
			t.Errorf("expected status completed, got %s", transfer.Status)
		}
		if transfer.BytesRead != int64(len(content)) {
			t.Errorf("expected %d bytes read, got %d", len(content), transfer.BytesRead)
		}
		if transfer.Fraction != 1 {
			t.Errorf("expected fraction 1, got %v", transfer.Fraction)
		}
		if !transfer.FileHash.Valid || transfer.FileHash.String == "" {
			t.Error("expected a file hash")
		}
		if !transfer.CompletedAt.Valid {
			t.Error("expected a completion timestamp")
		}

		// The object must be readable back, byte for byte.
		result, err := svc.Download(ctx, DownloadParams{ObjectKey: "test/payload.bin"})
		if err != nil {
			t.Fatalf("download failed: %v", err)
		}
		defer result.Content.Close()

		if result.Size != int64(len(content)) {
			t.Errorf("expected size %d, got %d", len(content), result.Size)
		}
		data, err := io.ReadAll(result.Content)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if !bytes.Equal(data, content) {
			t.Error("downloaded content differs from uploaded content")
		}
		if result.Content.Fraction() != 1 {
			t.Errorf("expected metered fraction 1, got %v", result.Content.Fraction())
		}
	})

	t.Run("empty file completes immediately", func(t *testing.T) {
		svc := newTestService(t)

		transfer, err := svc.Upload(ctx, UploadParams{
			ObjectKey: "test/empty.bin",
			File:      makeFileHeader(t, "empty.bin", nil),
		})
		if err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		if transfer.TotalBytes != 0 {
			t.Errorf("expected total 0, got %d", transfer.TotalBytes)
		}
		// Zero-size transfers report as complete rather than dividing by zero.
		if transfer.Fraction != 1 {
			t.Errorf("expected fraction 1 for empty file, got %v", transfer.Fraction)
		}
	})
}

func TestProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("completed transfer reports persisted numbers", func(t *testing.T) {
		svc := newTestService(t)
		content := []byte(strings.Repeat("x", 2048))

		transfer, err := svc.Upload(ctx, UploadParams{
			ObjectKey: "test/progress.bin",
			File:      makeFileHeader(t, "progress.bin", content),
		})
		if err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		progress, err := svc.Progress(ctx, ProgressParams{
			TransferID: uuid.MustParse(transfer.ID),
		})
		if err != nil {
			t.Fatalf("progress failed: %v", err)
		}

		if progress.Status != model.TransferCompleted {
			t.Errorf("expected completed, got %s", progress.Status)
		}
		if progress.BytesRead != int64(len(content)) {
			t.Errorf("expected %d bytes, got %d", len(content), progress.BytesRead)
		}
		if progress.Fraction != 1 {
			t.Errorf("expected fraction 1, got %v", progress.Fraction)
		}
	})

	t.Run("unknown transfer returns coded not found", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Progress(ctx, ProgressParams{TransferID: uuid.New()})
		if err == nil {
			t.Fatal("expected error")
		}
		var coded model.Error
		if !errors.As(err, &coded) || coded.Code() != model.ErrTransferNotFound.Code() {
			t.Errorf("expected transfer.not_found, got %v", err)
		}
	})
}

func TestListTransfers(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, key := range []string{"a.bin", "b.bin", "c.bin"} {
		if _, err := svc.Upload(ctx, UploadParams{
			ObjectKey: key,
			File:      makeFileHeader(t, key, []byte("content")),
		}); err != nil {
			t.Fatalf("upload %s failed: %v", key, err)
		}
	}

	result, err := svc.ListTransfers(ctx, ListTransfersParams{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(result.Transfers) != 3 {
		t.Errorf("expected 3 transfers, got %d", len(result.Transfers))
	}
	if !result.Total.Valid || result.Total.Int64 != 3 {
		t.Errorf("expected total 3, got %v", result.Total)
	}
}

func TestDownloadMissingObject(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Download(context.Background(), DownloadParams{ObjectKey: "missing.bin"})
	if err == nil {
		t.Fatal("expected error")
	}
	var coded model.Error
	if !errors.As(err, &coded) || coded.Code() != model.ErrObjectNotFound.Code() {
		t.Errorf("expected object.not_found, got %v", err)
	}
}
