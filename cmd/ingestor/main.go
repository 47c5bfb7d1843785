package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/tradesys/market-data-engine/internal/bootstrap"
	"github.com/tradesys/market-data-engine/internal/infrastructure/questdb"
	"github.com/tradesys/market-data-engine/pkg/config"
	"github.com/tradesys/market-data-engine/pkg/logger"
	"github.com/tradesys/market-data-engine/pkg/redis"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		slog.Error("Failed to create logger", "error", err)
		os.Exit(1)
	}
	defer log.Sync()

	questdbClient, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		slog.Error("Failed to connect to QuestDB", "error", err)
		os.Exit(1)
	}
	defer questdbClient.Close()

	redisClient := redis.NewClient(log, &cfg.Redis)
	if err := redisClient.Connect(ctx); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Disconnect(ctx)

	b, err := (&bootstrap.Bootstrap{}).Init(bootstrap.BootstrapConfig{
		Config:  cfg,
		Logger:  log,
		QuestDB: questdbClient,
		Redis:   redisClient,
	})
	if err != nil {
		slog.Error("Failed to bootstrap", "error", err)
		os.Exit(1)
	}

	b.Service.Ingestion.Start(ctx)

	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		b.Service.Consumer.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		b.Service.Consumer.Subscribe(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down ingestor...")
	cancel()
	if err := b.Service.Consumer.Stop(); err != nil {
		slog.Error("Failed to stop consumer", "error", err)
	}
	b.Service.Ingestion.Stop(context.Background())

	slog.Info("Ingestor stopped")
}
