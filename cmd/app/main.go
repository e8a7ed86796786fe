package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/chris/custodial-bridge/pkg/bootstrap"
	"github.com/chris/custodial-bridge/pkg/config"
	"github.com/chris/custodial-bridge/pkg/handlers"
	"github.com/chris/custodial-bridge/pkg/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}

	app, err := bootstrap.New(ctx, cfg, "bridge-api")
	if err != nil {
		log.Fatalf("unable to initialise bridge, %v", err)
	}
	defer app.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(reg)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           handlers.NewRouter(app.Service, app.Log, reg, cfg.Operator.APIKey),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Log.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	if cfg.Operator.APIKey == "" {
		app.Log.Warn("operator.api_key is not set, signer and operator routes are disabled")
	}

	app.Log.Info("starting server", zap.String("port", cfg.HTTP.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.Log.Fatal("failed to start server", zap.Error(err))
	}
	app.Log.Info("server stopped")
}
