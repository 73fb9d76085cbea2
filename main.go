package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"newsdesk/api"
	"newsdesk/archive"
	"newsdesk/config"
	"newsdesk/events"
	"newsdesk/logging"
	"newsdesk/orchestrator"
	"newsdesk/storage"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	logging.Init()

	cfg := config.Load()
	ctx := context.Background()

	store, err := storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	producer := initProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	arch := initArchive(ctx, cfg)

	orch := orchestrator.New(cfg, store, producer, arch)

	// Optional Kafka ingestion: consume raw scanner articles when brokers
	// are configured.
	if len(cfg.KafkaBrokers) > 0 {
		consumer, err := events.NewConsumer(events.ConsumerConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaArticleTopic,
			GroupID: cfg.KafkaGroupID,
			Handler: orch.ArticleHandler(),
		})
		if err != nil {
			slog.Error("kafka consumer init failed", "error", err)
			os.Exit(1)
		}
		if err := consumer.Start(ctx); err != nil {
			slog.Error("kafka consumer start failed", "error", err)
			os.Exit(1)
		}
		defer consumer.Close()
	}

	// Initial sync so the API has data on startup; failure is non-fatal.
	if _, err := orch.RunSync(ctx); err != nil {
		slog.Warn("initial sync failed", "error", err)
	}

	server := api.NewServer(cfg, store, orch, producer)
	addr := ":" + cfg.Port

	slog.Info("starting API server", "addr", addr)
	if err := http.ListenAndServe(addr, server.NewRouter()); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func initProducer(cfg config.Config) *events.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}
	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaSelectionTopic, cfg.KafkaSyncTopic)
	if err != nil {
		slog.Warn("kafka producer init failed, events disabled", "error", err)
		return nil
	}
	return producer
}

func initArchive(ctx context.Context, cfg config.Config) *archive.Archive {
	if cfg.S3Bucket == "" {
		return nil
	}
	arch, err := archive.New(ctx, archive.Config{
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		Prefix:       cfg.S3Prefix,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		slog.Warn("archive init failed, archiving disabled", "error", err)
		return nil
	}
	return arch
}
