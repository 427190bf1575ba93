package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/audit"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/logger"
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

	if len(cfg.Audit.Brokers) == 0 {
		log.Fatal("KAFKA_BROKERS is not set, nothing to consume")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Audit.Brokers,
		GroupID:        cfg.Audit.GroupID,
		Topic:          cfg.Audit.Topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Info("Closing Kafka reader")
		if err := r.Close(); err != nil {
			log.Error("Error closing Kafka reader", zap.Error(err))
		}
	}()

	log.Info("Consumer connected",
		zap.String("topic", cfg.Audit.Topic),
		zap.Strings("brokers", cfg.Audit.Brokers),
		zap.String("group_id", cfg.Audit.GroupID),
	)

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				log.Info("Shutdown signal received, stopping consumer")
				return
			}
			log.Error("Error reading message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		var entry audit.Entry
		if err := json.Unmarshal(m.Value, &entry); err != nil {
			log.Warn("Skipping malformed audit message",
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
				zap.Error(err),
			)
			continue
		}

		log.Info("Audit entry",
			zap.Time("timestamp", entry.Timestamp),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
			zap.ByteString("key", m.Key),
			zap.String("handler", entry.Handler),
			zap.String("method", entry.Method),
			zap.String("path", entry.Path),
			zap.Int("status_code", entry.StatusCode),
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID),
			zap.String("old_status", entry.OldStatus),
			zap.String("new_status", entry.NewStatus),
		)
	}
}
