package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/segmentio/kafka-go"
)

type Producer struct {
	brokers []string
	topics  []string
	writer  *kafka.Writer
	log     *logger.Logger
}

// NewProducer returns a producer that fans every event out to topics.
func NewProducer(brokers []string, log *logger.Logger, topics ...string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		brokers: brokers,
		topics:  topics,
		writer:  writer,
		log:     log,
	}
}

// PublishBookingEvent writes the event to every configured topic, keyed by
// booking reference so events for one booking stay ordered.
func (p *Producer) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	messages, err := bookingMessages(event, p.topics)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	p.log.DebugContext(ctx, "published booking event",
		"event_id", event.ID, "type", event.Type, "booking_reference", event.BookingReference)
	return nil
}

func bookingMessages(event BookingEvent, topics []string) ([]kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	now := time.Now()
	messages := make([]kafka.Message, 0, len(topics))
	for _, topic := range topics {
		if topic == "" {
			continue
		}
		messages = append(messages, kafka.Message{
			Topic: topic,
			Key:   []byte(event.BookingReference),
			Value: data,
			Time:  now,
		})
	}
	return messages, nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and reads its partitions.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no Kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}

	p.log.InfoContext(ctx, "connected to Kafka", "partitions", len(partitions))
	return nil
}
