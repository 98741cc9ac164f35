package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"github.com/beanbocchi/flowmeter/config"
	"github.com/beanbocchi/flowmeter/internal/db"
	"github.com/beanbocchi/flowmeter/internal/service"
	"github.com/beanbocchi/flowmeter/internal/transport"
)

// NewConfig provides the application configuration
func NewConfig() *config.Config {
	return config.GetConfig()
}

func SetupLogger() {
	cfg := config.GetConfig().Log

	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// Start wires storage, the transfer service and the HTTP server, then
// serves in the background.
func Start() error {
	cfg := NewConfig()
	SetupLogger()

	sqliteDB, err := sql.Open("sqlite", cfg.Sqlite.Path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Migrate(sqliteDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	svc, err := service.NewService(cfg, sqliteDB)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	e, err := transport.NewEcho(svc)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("server started", "addr", addr, "objectstore", cfg.Objectstore.Type)
	return nil
}
