// Command catalog runs the CWWP catalog service: it periodically scans every
// registered Caltrans feed, keeps the county/highway catalog fresh, serves
// the llms.txt document and JSON APIs over HTTP, and optionally publishes
// normalized items to Kafka.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/californiaroad/cwwp-catalog/internal/adapter/http"
	kafkaadapter "github.com/californiaroad/cwwp-catalog/internal/adapter/kafka"
	"github.com/californiaroad/cwwp-catalog/internal/catalog"
	"github.com/californiaroad/cwwp-catalog/internal/config"
	"github.com/californiaroad/cwwp-catalog/internal/feed"
	"github.com/californiaroad/cwwp-catalog/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := feed.NewClient(cfg.FeedBaseURL, cfg.FeedTimeout, cfg.FeedCacheTTL, logger)
	store := catalog.NewStore()

	// Sink publisher (feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS).
	var publisher catalog.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.PublisherEnabled.Set(1)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		metrics.PublisherEnabled.Set(0)
		logger.Info("kafka publishing disabled")
	}

	builder := catalog.NewBuilder(client, publisher, store, cfg.PullDelay, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, store, client, cfg.SiteURL, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the build loop.
	go func() {
		if err := builder.Run(ctx, cfg.BuildInterval); err != nil {
			logger.Error("catalog build loop error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
