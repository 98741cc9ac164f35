package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/beanbocchi/flowmeter/config"
	"github.com/beanbocchi/flowmeter/internal/client/objectstore"
	"github.com/beanbocchi/flowmeter/internal/client/objectstore/local"
	"github.com/beanbocchi/flowmeter/internal/client/objectstore/stoj"
	syncstore "github.com/beanbocchi/flowmeter/internal/client/objectstore/sync"
	"github.com/beanbocchi/flowmeter/pkg/meter"
	"github.com/beanbocchi/flowmeter/pkg/sqlc"
)

type Service struct {
	cfg         *config.Config
	objectStore objectstore.Client
	storage     *sqlc.Storage

	// active holds the live meters of in-flight transfers so progress
	// queries can read current numbers instead of the last snapshot.
	mu     sync.Mutex
	active map[uuid.UUID]*meter.Reader

	// jobs serializes background storage writes (progress snapshots).
	jobs chan func()
}

func NewService(cfg *config.Config, sqliteDB *sql.DB) (*Service, error) {
	storage := sqlc.NewStorage(sqliteDB)

	var store objectstore.Client
	switch cfg.Objectstore.Type {
	case "storj":
		storjStore, err := stoj.NewClient(context.Background(), stoj.StorjConfig{
			Bucket:      cfg.Objectstore.Storj.Bucket,
			AccessGrant: cfg.Objectstore.Storj.AccessGrant,
		})
		if err != nil {
			return nil, fmt.Errorf("create storj store: %w", err)
		}
		store = storjStore
	default:
		localStore, err := local.NewClient(local.LocalConfig{
			Root: cfg.Objectstore.Local.Root,
		})
		if err != nil {
			return nil, fmt.Errorf("create local store: %w", err)
		}
		store = localStore
	}

	syncedStore, err := syncstore.NewSyncClient(syncstore.SyncConfig{Client: store})
	if err != nil {
		return nil, fmt.Errorf("create sync store: %w", err)
	}

	// Snapshot writes from many transfers funnel through one worker.
	jobs := make(chan func(), cfg.App.JobBuffer)
	go func() {
		for job := range jobs {
			job()
		}
	}()

	return &Service{
		cfg:         cfg,
		objectStore: syncedStore,
		storage:     storage,
		active:      make(map[uuid.UUID]*meter.Reader),
		jobs:        jobs,
	}, nil
}

func (s *Service) trackMeter(id uuid.UUID, m *meter.Reader) {
	s.mu.Lock()
	s.active[id] = m
	s.mu.Unlock()
}

func (s *Service) untrackMeter(id uuid.UUID) {
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()
}

func (s *Service) liveMeter(id uuid.UUID) *meter.Reader {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[id]
}
