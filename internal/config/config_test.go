package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://cwwp2.dot.ca.gov", cfg.FeedBaseURL)
	assert.Equal(t, "https://californiaroad.data", cfg.SiteURL)
	assert.Equal(t, 15*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 5*time.Minute, cfg.FeedCacheTTL)
	assert.Equal(t, 10*time.Minute, cfg.BuildInterval)
	assert.Equal(t, 50*time.Millisecond, cfg.PullDelay)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "normalized-road-items", cfg.KafkaSinkTopic)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("FEED_BASE_URL", "http://localhost:8081")
	t.Setenv("BUILD_INTERVAL", "1m")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "http://localhost:8081", cfg.FeedBaseURL)
	assert.Equal(t, time.Minute, cfg.BuildInterval)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled, "brokers present implies enabled")
}

func TestLoadKafkaFlag(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoadErrors(t *testing.T) {
	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("BUILD_INTERVAL", "soon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("kafka enabled without brokers", func(t *testing.T) {
		t.Setenv("KAFKA_ENABLED", "true")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-url base", func(t *testing.T) {
		t.Setenv("FEED_BASE_URL", "not a url")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":7070"
feed_timeout: 30s
kafka_brokers: [overlay:9092]
kafka_enabled: true
`), 0o600))
	t.Setenv("CATALOG_CONFIG", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.FeedTimeout)
	assert.Equal(t, []string{"overlay:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled)
	// env values without overlay keys survive
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadOverlayErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CATALOG_CONFIG", filepath.Join(t.TempDir(), "absent.yml"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad duration in overlay", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yml")
		require.NoError(t, os.WriteFile(path, []byte("pull_delay: quick\n"), 0o600))
		t.Setenv("CATALOG_CONFIG", path)
		_, err := Load()
		assert.Error(t, err)
	})
}
