// Command catalogdoc performs one catalog build and writes the llms.txt
// navigation document, for static-site builds and manual inspection.
//
// Usage:
//
//	go run ./cmd/catalogdoc -out public/llms.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/californiaroad/cwwp-catalog/internal/catalog"
	"github.com/californiaroad/cwwp-catalog/internal/config"
	"github.com/californiaroad/cwwp-catalog/internal/feed"
	"github.com/californiaroad/cwwp-catalog/internal/observability"
)

func main() {
	out := flag.String("out", "", "output path; stdout when empty")
	flag.Parse()

	if err := run(*out); err != nil {
		slog.Error("catalogdoc failed", "error", err)
		os.Exit(1)
	}
}

func run(out string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := feed.NewClient(cfg.FeedBaseURL, cfg.FeedTimeout, 0, logger)
	store := catalog.NewStore()
	builder := catalog.NewBuilder(client, nil, store, cfg.PullDelay, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	doc := catalog.Document(cat, cfg.SiteURL)
	if out == "" {
		fmt.Print(doc)
		return nil
	}
	if err := os.WriteFile(out, []byte(doc), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Info("document written", "path", out, "counties", len(cat.Counties), "highways", len(cat.Highways))
	return nil
}
