package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"commerce-crm-sync/internal/config"
	"commerce-crm-sync/internal/domain"
	"commerce-crm-sync/internal/logger"
	crmrepo "commerce-crm-sync/internal/repository/crm"
	orderrepo "commerce-crm-sync/internal/repository/order"
	"commerce-crm-sync/internal/service/ordersync"
	"commerce-crm-sync/internal/telemetry"
)

func main() {
	var (
		orderID string
		envFile string
	)
	flag.StringVar(&orderID, "order", "", "Shopify order ID to sync")
	flag.StringVar(&envFile, "env", ".env", "Path to an optional dotenv file")
	flag.Parse()

	if orderID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadFile(envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	httpClient := telemetry.HTTPClient(cfg.UpstreamTimeout)
	svc := ordersync.New(
		orderrepo.NewShopify(cfg.Shopify, httpClient, log),
		crmrepo.NewPipedrive(cfg.Pipedrive, httpClient, log),
		log,
	)

	start := time.Now()
	res, err := svc.Sync(context.Background(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			log.Error("order not found", zap.String("order_id", orderID))
		case errors.Is(err, ordersync.ErrMissingEmail):
			log.Error("customer email is missing", zap.String("order_id", orderID))
		default:
			log.Error("sync failed", zap.String("order_id", orderID), zap.Error(err))
		}
		os.Exit(1)
	}

	fmt.Printf("Synced order %s to deal %d (%d products) in %s\n",
		res.OrderID, res.DealID, len(res.ProductIDs), time.Since(start).Truncate(time.Millisecond))
}
