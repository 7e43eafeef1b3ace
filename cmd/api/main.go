package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"commerce-crm-sync/internal/config"
	"commerce-crm-sync/internal/httpserver"
	"commerce-crm-sync/internal/logger"
	crmrepo "commerce-crm-sync/internal/repository/crm"
	orderrepo "commerce-crm-sync/internal/repository/order"
	"commerce-crm-sync/internal/service/ordersync"
	"commerce-crm-sync/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("init telemetry", zap.Error(err))
	}

	httpClient := telemetry.HTTPClient(cfg.UpstreamTimeout)
	orderRepo := orderrepo.NewShopify(cfg.Shopify, httpClient, log)
	crmRepo := crmrepo.NewPipedrive(cfg.Pipedrive, httpClient, log)
	syncService := ordersync.New(orderRepo, crmRepo, log)

	srv, err := httpserver.New(cfg.HTTPAddr, log, httpserver.Deps{
		Syncer:           syncService,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		TracingEnabled:   tp.Enabled(),
		ServiceName:      cfg.Telemetry.ServiceName,
	})
	if err != nil {
		log.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	} else {
		log.Info("server stopped")
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("telemetry shutdown failed", zap.Error(err))
	}
}
