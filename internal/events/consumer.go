package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// HandlerFunc processes one decoded change event.
type HandlerFunc func(ctx context.Context, event CloudEvent) error

// messageReader is the part of kafka-go's Reader the consumer uses.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafkago.Message, error)
	Close() error
}

// DogEventConsumer tails the dog change topic.
type DogEventConsumer struct {
	reader messageReader
	logger *zap.Logger
}

// NewDogEventConsumer creates a consumer in the given group. Without a group
// it reads the single partition from the newest offset.
func NewDogEventConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *DogEventConsumer {
	cfg := kafkago.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	}
	if groupID == "" {
		cfg.StartOffset = kafkago.LastOffset
	}
	return &DogEventConsumer{
		reader: kafkago.NewReader(cfg),
		logger: logger,
	}
}

// Start reads messages and passes each decoded event to handle. It blocks
// until ctx is cancelled or the handler returns an error.
func (c *DogEventConsumer) Start(ctx context.Context, handle HandlerFunc) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("failed to read dog event", zap.Error(err))
			return err
		}
		if err := c.handleMessage(ctx, msg, handle); err != nil {
			return err
		}
	}
}

// Close closes the underlying Kafka reader.
func (c *DogEventConsumer) Close() error {
	return c.reader.Close()
}

func (c *DogEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message, handle HandlerFunc) error {
	event, err := ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse dog event",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // skip malformed messages
	}

	switch event.Type {
	case DogRegistered, DogUpdated, DogTableDropped:
		return handle(ctx, event)
	default:
		c.logger.Debug("ignoring unhandled event type",
			zap.String("type", event.Type),
		)
		return nil
	}
}
