package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"stock-manager/core/config"
	"stock-manager/core/database"
	"stock-manager/core/lock"
	"stock-manager/core/logger"
	"stock-manager/core/metrics"
	"stock-manager/core/reconcile"
	"stock-manager/core/storage"
	"stock-manager/feature/inventory"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps holds the wired dependencies shared by every command.
type deps struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	repo    *inventory.Repository
	store   storage.Client
	locker  lock.Locker
	metrics *metrics.Metrics
	engine  *reconcile.Engine
}

// newDeps loads configuration and connects the database, storage and lock backend.
// Storage is nil unless enabled.
func newDeps(ctx context.Context, reg prometheus.Registerer) (_ *deps, err error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logg = logger.WithLedger(logg, cfg.Server.Ledger)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			closeDB(db)
		}
	}()
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	repo := inventory.NewRepository(db, cfg.Server.Ledger)
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}

	var store storage.Client
	if cfg.Storage.Enabled {
		if store, err = storage.NewClient(cfg.Storage); err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	locker, err := lock.New(cfg.Lock)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.Reconcile.EngineOptions()
	if err != nil {
		return nil, err
	}

	return &deps{
		cfg:     cfg,
		logger:  logg,
		db:      db,
		repo:    repo,
		store:   store,
		locker:  locker,
		metrics: metrics.New(reg),
		engine:  reconcile.NewEngine(opts...),
	}, nil
}

// inventoryOptions wires the inventory feature from the shared dependencies.
func (r *deps) inventoryOptions() inventory.Options {
	opts := inventory.Options{
		Repository: r.repo,
		Engine:     r.engine,
		Locker:     r.locker,
		Metrics:    r.metrics,
		Logger:     r.logger,

		SnapshotTTL: time.Duration(r.cfg.Reconcile.SnapshotTTLSeconds) * time.Second,
	}
	if r.store != nil {
		opts.Archive = inventory.NewArchive(r.store, r.cfg.Storage.Bucket)
	}
	return opts
}

// close releases the lock backend and the database pool, then flushes the logger.
func (r *deps) close() {
	if c, ok := r.locker.(io.Closer); ok {
		_ = c.Close()
	}
	closeDB(r.db)
	_ = r.logger.Sync()
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
