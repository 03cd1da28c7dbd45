//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/californiaroad/cwwp-catalog/internal/adapter/kafka"
	"github.com/californiaroad/cwwp-catalog/internal/catalog"
	"github.com/californiaroad/cwwp-catalog/internal/config"
	"github.com/californiaroad/cwwp-catalog/internal/feed"
	"github.com/californiaroad/cwwp-catalog/internal/observability"
)

const testSinkTopic = "test-normalized-items"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker
// address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err, "resolve brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// startUpstream serves a mock CWWP endpoint: one camera feed for district 4,
// a 404 for everything else.
func startUpstream(t *testing.T) *httptest.Server {
	t.Helper()

	body := `{"data":[
		{"cctv":{"index":"401","location":{"district":4,"locationName":"I-80 at Gilman St","nearbyPlace":"Berkeley","county":"Alameda"},"inService":"true","imageData":{"static":{"currentImageURL":"https://example.org/cam401.jpg"}}}},
		{"cctv":{"index":"402","location":{"district":4,"locationName":"US-101 at Broadway","nearbyPlace":"Burlingame","county":"San Mateo"},"inService":"false"}}
	]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/d4/cctv/cctvStatusD04.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestBuildPublishesToKafka runs a real catalog build against a mock upstream
// and verifies the normalized items land on the sink topic with the expected
// keys and headers.
func TestBuildPublishesToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	upstream := startUpstream(t)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}

	client := feed.NewClient(upstream.URL, 5*time.Second, 0, discardLogger())
	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	store := catalog.NewStore()
	builder := catalog.NewBuilder(client, writer, store, 0, discardLogger(), observability.NewMetricsForTesting())

	cat, err := builder.Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Pulls)
	assert.Equal(t, []string{"Alameda", "San Mateo"}, cat.Counties)
	assert.Equal(t, []string{"I-80", "US-101"}, cat.Highways)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	byID := map[string]kafkago.Message{}
	for len(byID) < 2 {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from sink topic")
		byID[string(msg.Key)] = msg
	}

	msg, ok := byID["cctv-d04-i401"]
	require.True(t, ok, "expected message keyed by item id")

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "cctv", headers["data_type"])
	assert.Equal(t, "4", headers["district"])
	_, err = time.Parse(time.RFC3339, headers["processed_at"])
	assert.NoError(t, err, "processed_at should be valid RFC3339")

	var item struct {
		ID        string `json:"id"`
		Slug      string `json:"slug"`
		Highway   string `json:"highway"`
		InService bool   `json:"in_service"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &item))
	assert.Equal(t, "cctv-d04-i401", item.ID)
	assert.Equal(t, "i-80-at-gilman-st-cctv", item.Slug)
	assert.Equal(t, "I-80", item.Highway)
	assert.True(t, item.InService)

	_, ok = byID["cctv-d04-i402"]
	assert.True(t, ok, "out-of-service camera still published")
}
