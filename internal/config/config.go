// Package config loads service settings from environment variables, with an
// optional YAML overlay file for deployments that prefer file-based config.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all service settings.
type Config struct {
	HTTPAddr        string        `validate:"required"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
	LogFormat       string        `validate:"oneof=json text"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// Public base URL used in rendered navigation documents.
	SiteURL string `validate:"required,url"`

	// Upstream feed settings.
	FeedBaseURL  string        `validate:"required,url"`
	FeedTimeout  time.Duration `validate:"gt=0"`
	FeedCacheTTL time.Duration `validate:"min=0"`

	// Catalog build settings.
	BuildInterval time.Duration `validate:"gt=0"`
	PullDelay     time.Duration `validate:"min=0"`

	// Kafka sink configuration (feature-flagged).
	KafkaBrokers   []string
	KafkaSinkTopic string
	KafkaEnabled   bool
}

// overlay mirrors Config with YAML tags. Durations are strings so the file
// can say "5s" instead of nanosecond integers; absent keys leave the
// env-derived value alone.
type overlay struct {
	HTTPAddr        string   `yaml:"http_addr"`
	SiteURL         string   `yaml:"site_url"`
	LogLevel        string   `yaml:"log_level"`
	LogFormat       string   `yaml:"log_format"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
	FeedBaseURL     string   `yaml:"feed_base_url"`
	FeedTimeout     string   `yaml:"feed_timeout"`
	FeedCacheTTL    string   `yaml:"feed_cache_ttl"`
	BuildInterval   string   `yaml:"build_interval"`
	PullDelay       string   `yaml:"pull_delay"`
	KafkaBrokers    []string `yaml:"kafka_brokers"`
	KafkaSinkTopic  string   `yaml:"kafka_sink_topic"`
	KafkaEnabled    *bool    `yaml:"kafka_enabled"`
}

// Load reads configuration from environment variables, applies the overlay
// file named by CATALOG_CONFIG when set, and validates the result.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	feedTimeout, err := parseDurationEnv("FEED_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	feedCacheTTL, err := parseDurationEnv("FEED_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}
	buildInterval, err := parseDurationEnv("BUILD_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}
	pullDelay, err := parseDurationEnv("PULL_DELAY", "50ms")
	if err != nil {
		return nil, err
	}

	kafkaBrokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(kafkaBrokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SiteURL: envOrDefault("SITE_URL", "https://californiaroad.data"),

		FeedBaseURL:  envOrDefault("FEED_BASE_URL", "https://cwwp2.dot.ca.gov"),
		FeedTimeout:  feedTimeout,
		FeedCacheTTL: feedCacheTTL,

		BuildInterval: buildInterval,
		PullDelay:     pullDelay,

		KafkaBrokers:   kafkaBrokers,
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "normalized-road-items"),
		KafkaEnabled:   kafkaEnabled,
	}

	if path := os.Getenv("CATALOG_CONFIG"); path != "" {
		if err := applyOverlay(cfg, path); err != nil {
			return nil, fmt.Errorf("apply %s: %w", path, err)
		}
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but no brokers are configured")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func applyOverlay(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var o overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return err
	}

	if o.HTTPAddr != "" {
		cfg.HTTPAddr = o.HTTPAddr
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
	if o.SiteURL != "" {
		cfg.SiteURL = o.SiteURL
	}
	if o.FeedBaseURL != "" {
		cfg.FeedBaseURL = o.FeedBaseURL
	}
	if len(o.KafkaBrokers) > 0 {
		cfg.KafkaBrokers = o.KafkaBrokers
	}
	if o.KafkaSinkTopic != "" {
		cfg.KafkaSinkTopic = o.KafkaSinkTopic
	}
	if o.KafkaEnabled != nil {
		cfg.KafkaEnabled = *o.KafkaEnabled
	}

	for _, d := range []struct {
		raw  string
		dst  *time.Duration
		name string
	}{
		{o.ShutdownTimeout, &cfg.ShutdownTimeout, "shutdown_timeout"},
		{o.FeedTimeout, &cfg.FeedTimeout, "feed_timeout"},
		{o.FeedCacheTTL, &cfg.FeedCacheTTL, "feed_cache_ttl"},
		{o.BuildInterval, &cfg.BuildInterval, "build_interval"},
		{o.PullDelay, &cfg.PullDelay, "pull_delay"},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*d.dst = parsed
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
