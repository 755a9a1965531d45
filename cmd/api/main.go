package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mortgage-calculator/internal/config"
	"mortgage-calculator/internal/observability"
	"mortgage-calculator/internal/server"
	"mortgage-calculator/internal/web"
)

func main() {

	configPath := flag.String("config", config.DefaultFile, "path to the YAML config file")
	flag.Parse()

	ctx := context.Background()

	if err := loadDotEnv(dotEnvFiles...); err != nil {
		panic(err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	// Logger
	err = observability.InitLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Telemetry
	shutdown, err := initTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		panic(err)
	}
	defer shutdown(ctx)

	// Sessions
	store, closeStore, err := newStore(ctx, cfg.Session)
	if err != nil {
		observability.Logger.Fatal("opening session store", zap.Error(err))
	}
	defer closeStore()

	// Router
	router := server.NewRouter(web.New(store, cfg.Session.CookieName, cfg.Session.TTL))

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("address", cfg.Server.Address),
			zap.String("session_store", cfg.Session.Store),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, cfg.Server.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("server shutdown", zap.Error(err))
	}
	observability.Logger.Info("server stopped")
}
