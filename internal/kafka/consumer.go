package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/segmentio/kafka-go"
)

// Handler processes one message value. A failing message is retried a few
// times, then logged and committed.
type Handler func(ctx context.Context, key, value []byte) error

const (
	handleAttempts = 3
	retryBackoff   = time.Second
)

type Consumer struct {
	reader   *kafka.Reader
	log      *logger.Logger
	attempts int
	backoff  time.Duration
}

func NewConsumer(brokers []string, groupID, topic string, log *logger.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log:      log,
		attempts: handleAttempts,
		backoff:  retryBackoff,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume fetches messages until ctx is done, committing each one after
// handle returns. It returns nil on cancellation and an error only when
// the reader itself fails.
func (c *Consumer) Consume(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if err := c.process(ctx, handle, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.ErrorContext(ctx, "message handling failed",
				"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "key", string(msg.Key), "error", err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

// process runs handle with a fixed backoff between attempts. It gives up
// early when ctx is done so the message is fetched again after a restart.
func (c *Consumer) process(ctx context.Context, handle Handler, msg kafka.Message) error {
	var err error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err = handle(ctx, msg.Key, msg.Value); err == nil {
			return nil
		}
		if attempt == c.attempts {
			break
		}
		c.log.WarnContext(ctx, "message handling failed, retrying",
			"offset", msg.Offset, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return err
		case <-time.After(c.backoff):
		}
	}
	return err
}
