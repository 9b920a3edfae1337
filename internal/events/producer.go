package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher sends change events. Implementations must be safe to Close once.
type Publisher interface {
	Publish(ctx context.Context, key string, event CloudEvent) error
	Close() error
}

// messageWriter is the part of kafka-go's Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

var _ Publisher = (*Producer)(nil)

// Producer publishes events to a single Kafka topic.
type Producer struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewProducer creates a Producer writing to topic on the given brokers.
func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newProducerWithWriter(writer, topic, logger)
}

func newProducerWithWriter(writer messageWriter, topic string, logger *zap.Logger) *Producer {
	return &Producer{writer: writer, topic: topic, logger: logger}
}

// Publish writes the event keyed by key so all events of one dog share a
// partition.
func (p *Producer) Publish(ctx context.Context, key string, event CloudEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal cloud event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "ce_type", Value: []byte(event.Type)},
			{Key: "ce_id", Value: []byte(event.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to topic %s: %w", p.topic, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", p.topic),
		zap.String("event_type", event.Type),
		zap.String("key", key),
	)
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// NoopPublisher discards events. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, CloudEvent) error { return nil }
func (NoopPublisher) Close() error { return nil }
