package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/tasknest/domain"
)

// StorageHealth abstracts the storage monitor.
type StorageHealth interface {
	IsOnline() bool
}

// Flusher is the part of the task store the resyncer drives.
type Flusher interface {
	Dirty() bool
	Flush(ctx context.Context) domain.PersistResult
}

// ResyncConfig controls how often a dirty collection is re-persisted.
type ResyncConfig struct {
	Interval time.Duration
}

// Resyncer re-persists the task collection after a failed save, so a storage
// outage costs durability only until the backend is reachable again.
type Resyncer struct {
	store  Flusher
	health StorageHealth
	logger *zap.Logger
	cron   *cron.Cron
	cfg    ResyncConfig
}

func NewResyncer(store Flusher, health StorageHealth, logger *zap.Logger, cfg ResyncConfig) *Resyncer {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Resyncer{
		store:  store,
		health: health,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", max(1, int(cfg.Interval.Seconds())))
	_, _ = r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := r.Run(ctx); err != nil {
			r.logger.Warn("task resync failed", zap.Error(err))
		}
	})

	return r
}

// Start launches the cron scheduler.
func (r *Resyncer) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("task resync started", zap.Duration("interval", r.cfg.Interval))
}

// Stop halts the scheduler and makes a final flush attempt.
func (r *Resyncer) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	if err := r.Run(ctx); err != nil {
		r.logger.Error("final task flush failed", zap.Error(err))
	}
	r.logger.Info("task resync stopped")
}

// Run flushes the store once if it is dirty and storage looks reachable.
func (r *Resyncer) Run(ctx context.Context) error {
	if r == nil || r.store == nil || !r.store.Dirty() {
		return nil
	}
	if r.health != nil && !r.health.IsOnline() {
		r.logger.Debug("skipping task resync (storage offline)")
		return nil
	}
	if result := r.store.Flush(ctx); !result.OK() {
		return result.Err
	}
	return nil
}
