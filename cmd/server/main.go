package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/tasknest/api/handler"
	"github.com/fastygo/tasknest/internal/app"
	"github.com/fastygo/tasknest/internal/config"
	"github.com/fastygo/tasknest/internal/router"
	"github.com/fastygo/tasknest/pkg/httpcontext"
	"github.com/fastygo/tasknest/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Output:   cfg.Logger.Output,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(appCtx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("bootstrap failed", zap.Error(err))
	}
	a.Lifecycle.Listen(cancel)
	a.Start()

	loc, err := cfg.Location()
	if err != nil {
		zapLogger.Fatal("invalid time zone", zap.Error(err))
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:         apiHandler.NewTaskHandler(a.Store, loc, ctxAdapter, zapLogger),
		Notification: apiHandler.NewNotificationHandler(a.Notifications, ctxAdapter, zapLogger),
		Health:       apiHandler.NewHealthHandler(a.Monitor, ctxAdapter, zapLogger),
	}
	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("storage", cfg.Storage.Backend),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	a.Lifecycle.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := a.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
