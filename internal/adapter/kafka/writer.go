package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/city-weather-service/internal/config"
	"github.com/couchcryptid/city-weather-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes lookup events to a Kafka topic.
// It implements lookup.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured lookup topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaLookupTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes one lookup event, keyed by city ID so a city's lookups stay ordered.
func (w *Writer) Publish(ctx context.Context, event domain.LookupEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish lookup event: %w", err)
	}
	w.logger.Debug("lookup event published", "city", event.Display.CityName, "kind", event.Kind)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a LookupEvent into a Kafka message.
func serializeToMessage(event domain.LookupEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize lookup event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatInt(event.CityID, 10)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "lookup_kind", Value: []byte(event.Kind)},
			{Key: "looked_up_at", Value: []byte(event.LookedUpAt.Format(time.RFC3339))},
		},
	}, nil
}
