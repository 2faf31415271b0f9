package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tasknest/repository"
)

// DirtyReporter reports whether the in-memory collection is ahead of storage.
type DirtyReporter interface {
	Dirty() bool
}

// Monitor periodically pings the slot backend.
type Monitor struct {
	backend string
	pinger  repository.Pinger
	store   DirtyReporter
	timeout time.Duration

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

// New creates a monitor. A nil pinger means the backend cannot be pinged and is assumed online.
func New(backend string, pinger repository.Pinger, store DirtyReporter, interval, timeout time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		backend:  backend,
		pinger:   pinger,
		store:    store,
		timeout:  timeout,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
		status:   Status{Backend: backend, Storage: true},
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Storage
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	status := m.status
	if m.store != nil {
		status.Dirty = m.store.Dirty()
	}
	return status
}

// Refresh pings the backend immediately.
func (m *Monitor) Refresh() Status {
	status := Status{
		Backend:   m.backend,
		Storage:   true,
		LastCheck: time.Now(),
	}
	if err := m.checkStorage(); err != nil {
		status.Storage = false
		status.LastError = err.Error()
	}

	m.mu.Lock()
	if m.status.Storage != status.Storage {
		m.logger.Info("storage availability changed",
			zap.String("backend", m.backend),
			zap.Bool("online", status.Storage))
	}
	m.status = status
	m.mu.Unlock()
	return m.GetStatus()
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) checkStorage() error {
	if m.pinger == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	if err := m.pinger.Ping(ctx); err != nil {
		m.logger.Warn("storage ping failed", zap.String("backend", m.backend), zap.Error(err))
		return err
	}
	return nil
}
