package kafka

import (
	"context"
	"log/slog"
	"sort"

	"github.com/basinflow/etp-compute-service/internal/config"
	"github.com/basinflow/etp-compute-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces result events to the sink Kafka topic.
// It implements pipeline.Loader.
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

// Load publishes one serialized result event to the sink topic.
func (w *Writer) Load(ctx context.Context, event domain.OutputEvent) error {
	return w.writer.WriteMessages(ctx, mapOutputEventToMessage(event))
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// mapOutputEventToMessage converts an output event into a Kafka message.
// Headers are emitted in sorted key order so message bytes are deterministic.
func mapOutputEventToMessage(event domain.OutputEvent) kafkago.Message {
	keys := make([]string, 0, len(event.Headers))
	for k := range event.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]kafkago.Header, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(event.Headers[k])})
	}

	return kafkago.Message{
		Key:     event.Key,
		Value:   event.Value,
		Headers: headers,
	}
}
