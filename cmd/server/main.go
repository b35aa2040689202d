package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/sheikh-saqib/tea-order-assistant/internal/aggregation"
	"github.com/sheikh-saqib/tea-order-assistant/internal/config"
	"github.com/sheikh-saqib/tea-order-assistant/internal/dashboard"
	"github.com/sheikh-saqib/tea-order-assistant/internal/events/kafka"
	httpserver "github.com/sheikh-saqib/tea-order-assistant/internal/http"
	httpH "github.com/sheikh-saqib/tea-order-assistant/internal/http/handlers"
	"github.com/sheikh-saqib/tea-order-assistant/internal/intake"
	"github.com/sheikh-saqib/tea-order-assistant/internal/intent"
	"github.com/sheikh-saqib/tea-order-assistant/internal/ledger"
	"github.com/sheikh-saqib/tea-order-assistant/internal/pkg/logger"
	"github.com/sheikh-saqib/tea-order-assistant/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if cfg.LogMode == "prod" || cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Ledger: opened once here, closed on shutdown.
	store, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	orderLedger := ledger.NewLedger(store)
	defer func() {
		if err := orderLedger.Close(); err != nil {
			log.Error("close ledger", "error", err)
		}
	}()

	opts := []intake.Option{intake.WithLogger(log.With("component", "intake"))}
	if cfg.KafkaEnabled() {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer publisher.Close()
		opts = append(opts, intake.WithPublisher(publisher))
		log.Info("publishing order events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	intakeService := intake.NewService(intent.NewClassifier(), orderLedger, opts...)
	defer intakeService.Wait()

	engine := aggregation.NewEngine(orderLedger, log.With("component", "aggregation"))
	dashboardService := dashboard.NewService(engine)

	server := httpserver.NewServer(cfg.Addr(), httpserver.RouterConfig{
		Logger:           log.With("component", "http"),
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		HealthHandler:    httpH.NewHealthHandler(),
		ChatHandler:      httpH.NewChatHandler(intakeService),
		OrderHandler:     httpH.NewOrderHandler(intakeService, log),
		DashboardHandler: httpH.NewDashboardHandler(dashboardService, log),
		PageHandler:      httpH.NewPageHandler(cfg.DashboardPollSeconds),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Write the header up front so a fresh deployment shows an empty,
		// initialized ledger.
		if err := orderLedger.EnsureInitialized(gctx); err != nil {
			log.Warn("ledger not initialized at startup, will retry on first order", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr(), "ledger_backend", cfg.LedgerBackend)
		return server.Run(gctx, cfg.ShutdownTimeout)
	})

	err = g.Wait()
	log.Info("server stopped")
	return err
}
