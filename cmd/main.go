package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/audit"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/logger"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/schema"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/server"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Config error:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logger init error:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server stopped with error", zap.Error(err))
	}
	log.Info("Server gracefully stopped")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := storage.NewMemStorage()

	if cfg.Admin.Username != "" {
		admin := storage.InsertUser{Username: cfg.Admin.Username, Password: cfg.Admin.Password}
		if err := schema.ValidateUser(admin); err != nil {
			return fmt.Errorf("invalid admin credentials: %w", err)
		}
		if _, err := storage.SeedAdmin(ctx, store, admin.Username, admin.Password, log); err != nil {
			return err
		}
	}

	var (
		producer kafka.Producer
		auditMgr *audit.Manager
		auditor  server.Auditor
	)
	if cfg.Audit.Enabled {
		if len(cfg.Audit.Brokers) > 0 {
			producer = kafka.NewKafkaProducer(cfg.Audit.Brokers, log)
		} else {
			producer = kafka.NewConsoleProducer(log)
		}
		auditMgr = audit.NewManager(producer, cfg.Audit.Topic, cfg.Audit.Workers, cfg.Audit.BatchSize, cfg.Audit.FlushInterval, log)
		auditMgr.Start(context.Background())
		auditor = auditMgr
	}

	staticDir := ""
	if cfg.IsProduction() {
		staticDir = cfg.Server.StaticDir
	}

	srv := server.New(store, auditor, log, server.Config{
		Port:                cfg.Server.Port,
		StaticDir:           staticDir,
		SubmitRatePerMinute: cfg.RateLimit.PerMinute,
		SubmitBurst:         cfg.RateLimit.Burst,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if auditMgr != nil {
			auditMgr.Shutdown(shutdownCtx)
		}
		if producer != nil {
			if err := producer.Close(); err != nil {
				log.Error("Failed to close producer", zap.Error(err))
			}
		}
		return nil
	})

	return g.Wait()
}
