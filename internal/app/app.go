package app

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/fastygo/tasknest/domain"
	"github.com/fastygo/tasknest/internal/config"
	"github.com/fastygo/tasknest/internal/events"
	"github.com/fastygo/tasknest/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/tasknest/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/tasknest/internal/infrastructure/redis"
	"github.com/fastygo/tasknest/internal/persistence"
	"github.com/fastygo/tasknest/internal/services"
	"github.com/fastygo/tasknest/internal/services/lifecycle"
	"github.com/fastygo/tasknest/repository"
	boltRepo "github.com/fastygo/tasknest/repository/bolt"
	fileRepo "github.com/fastygo/tasknest/repository/file"
	pgRepo "github.com/fastygo/tasknest/repository/postgres"
	redisRepo "github.com/fastygo/tasknest/repository/redis"
	"github.com/fastygo/tasknest/usecase"
	taskUC "github.com/fastygo/tasknest/usecase/task"
)

// App holds the wired components shared by the server and the CLI.
type App struct {
	Config        *config.Config
	Logger        *zap.Logger
	Slots         repository.SlotStore
	Persister     *persistence.Adapter
	Notifications *events.Queue
	Store         *taskUC.Store
	Monitor       *monitor.Monitor
	Resyncer      *services.Resyncer
	Lifecycle     *lifecycle.Manager
}

// New opens the configured slot backend and builds an initialized task store.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...taskUC.Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, logger)

	slots, err := OpenSlots(ctx, cfg, logger, manager)
	if err != nil {
		_ = manager.Shutdown(ctx)
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		_ = manager.Shutdown(ctx)
		return nil, err
	}

	persister := persistence.New(slots, cfg.Storage.Key, logger.Named("persistence"))
	logger.Info("task collection slot", zap.String("key", persister.Key()))

	queue := events.NewQueue(cfg.Notifications.Capacity)
	notifyLogger := logger.Named("notifications")
	notifier := usecase.NotifierFunc(func(n domain.Notification) {
		notifyLogger.Debug("notification queued",
			zap.String("kind", string(n.Kind)),
			zap.String("task_id", n.TaskID),
		)
		queue.Publish(n)
	})

	storeOpts := append([]taskUC.Option{
		taskUC.WithLocation(loc),
		taskUC.WithRetainCompletedAt(cfg.Tasks.RetainCompletedAt),
	}, opts...)
	store := taskUC.New(persister, notifier, logger.Named("tasks"), storeOpts...)
	store.Initialize(ctx)

	changeLogger := logger.Named("tasks")
	unsubscribe := store.OnChange(func(tasks []domain.Task) {
		changeLogger.Debug("task collection changed", zap.Int("count", len(tasks)))
	})
	manager.Register("task observers", func(ctx context.Context) error {
		unsubscribe()
		return nil
	})

	pinger, _ := slots.(repository.Pinger)
	mon := monitor.New(cfg.Storage.Backend, pinger, store, cfg.Resync.Interval, cfg.Storage.PingTimeout, logger.Named("monitor"))
	resyncer := services.NewResyncer(store, mon, logger.Named("resync"), services.ResyncConfig{
		Interval: cfg.Resync.Interval,
	})

	return &App{
		Config:        cfg,
		Logger:        logger,
		Slots:         slots,
		Persister:     persister,
		Notifications: queue,
		Store:         store,
		Monitor:       mon,
		Resyncer:      resyncer,
		Lifecycle:     manager,
	}, nil
}

// Start launches background monitoring and resync.
func (a *App) Start() {
	a.Monitor.Start()
	a.Lifecycle.Register("monitor", func(ctx context.Context) error {
		a.Monitor.Stop()
		return nil
	})

	a.Resyncer.Start()
	a.Lifecycle.Register("resync", func(ctx context.Context) error {
		a.Resyncer.Stop(ctx)
		return nil
	})
}

// Shutdown flushes a dirty store and closes every backend.
func (a *App) Shutdown(ctx context.Context) error {
	if a.Store.Dirty() {
		if result := a.Store.Flush(ctx); !result.OK() {
			a.Logger.Error("tasks not persisted before shutdown", zap.Error(result.Err))
		}
	}
	return a.Lifecycle.Shutdown(ctx)
}

// OpenSlots connects the backend named by cfg.Storage.Backend and registers its shutdown hook.
func OpenSlots(ctx context.Context, cfg *config.Config, logger *zap.Logger, manager *lifecycle.Manager) (repository.SlotStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendBolt:
		store, err := boltRepo.Open(cfg.Storage.BoltPath, cfg.Storage.BoltBucket)
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		manager.RegisterCloser("bolt", store)
		logger.Info("using bolt slot store", zap.String("path", cfg.Storage.BoltPath))
		return store, nil

	case config.BackendFile:
		store, err := fileRepo.NewSlotStore(afero.NewOsFs(), cfg.Storage.FileDir)
		if err != nil {
			return nil, err
		}
		logger.Info("using file slot store", zap.String("dir", cfg.Storage.FileDir))
		return store, nil

	case config.BackendRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis, cfg.Storage.PingTimeout)
		if err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		manager.RegisterCloser("redis", client)
		logger.Info("using redis slot store", zap.String("prefix", cfg.Redis.Prefix))
		return redisRepo.NewSlotStore(client, cfg.Redis.Prefix), nil

	case config.BackendPostgres:
		if err := pgInfra.RunMigrations(cfg.Database, cfg.Migrations, logger); err != nil {
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, cfg.Storage.PingTimeout, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connection failed: %w", err)
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pgInfra.Close(pool, logger)
			return nil
		})
		return pgRepo.NewSlotStore(pool), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
