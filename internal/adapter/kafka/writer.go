// Package kafka publishes normalized road items to the sink topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/californiaroad/cwwp-catalog/internal/config"
	"github.com/californiaroad/cwwp-catalog/internal/domain"
)

// Writer produces normalized items to a Kafka topic.
// It implements catalog.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch serializes and publishes a batch of normalized items in a
// single WriteMessages call.
func (w *Writer) PublishBatch(ctx context.Context, items []domain.NormalizedItem) error {
	if len(items) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(items))
	for i := range items {
		msg, err := serializeToMessage(items[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a normalized item into a Kafka message keyed
// by the item's stable id, so a compacted topic holds one record per item.
func serializeToMessage(item domain.NormalizedItem) (kafkago.Message, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize item %s: %w", item.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(item.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "data_type", Value: []byte(item.Type)},
			{Key: "district", Value: []byte(strconv.Itoa(item.District))},
			{Key: "processed_at", Value: []byte(item.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
