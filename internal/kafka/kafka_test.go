package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking() domain.Booking {
	return domain.Booking{
		ID:               7,
		FlightID:         3,
		PassengerID:      5,
		BookingReference: "BKA1B2C3",
		SeatNumber:       "12A",
		Status:           domain.BookingStatusPending,
	}
}

func TestNewBookingEvent(t *testing.T) {
	event := NewBookingEvent(EventBookingCreated, sampleBooking())

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventBookingCreated, event.Type)
	assert.Equal(t, int64(7), event.BookingID)
	assert.Equal(t, "BKA1B2C3", event.BookingReference)
	assert.Equal(t, "pending", event.Status)
	assert.WithinDuration(t, time.Now(), event.OccurredAt, time.Minute)
}

func TestDecodeBookingEvent(t *testing.T) {
	valid, err := json.Marshal(NewBookingEvent(EventBookingCancelled, sampleBooking()))
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{name: "valid", data: valid},
		{name: "not json", data: []byte("{"), wantErr: true},
		{name: "missing reference", data: []byte(`{"type":"booking_created","flightId":1,"passengerId":1}`), wantErr: true},
		{name: "missing passenger", data: []byte(`{"type":"booking_created","bookingReference":"BK000000","flightId":1}`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := DecodeBookingEvent(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, EventBookingCancelled, event.Type)
		})
	}
}

func TestBookingMessages(t *testing.T) {
	event := NewBookingEvent(EventBookingCreated, sampleBooking())

	messages, err := bookingMessages(event, []string{"booking-events", "", "booking-notifications"})
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, "booking-events", messages[0].Topic)
	assert.Equal(t, "booking-notifications", messages[1].Topic)
	for _, m := range messages {
		assert.Equal(t, []byte("BKA1B2C3"), m.Key)
		decoded, err := DecodeBookingEvent(m.Value)
		require.NoError(t, err)
		assert.Equal(t, event.ID, decoded.ID)
	}
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, logger.Nop(), "booking-events")
	assert.NotNil(t, p)
	assert.Equal(t, []string{"booking-events"}, p.topics)
	assert.NoError(t, p.Close())
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}

func TestConsumer_Close(t *testing.T) {
	var nilConsumer *Consumer
	assert.NoError(t, nilConsumer.Close())

	c := NewConsumer([]string{"localhost:9092"}, "flightbooking-test", "booking-notifications", logger.Nop())
	require.NotNil(t, c)
	assert.NoError(t, c.Close())
}

func TestConsumer_ProcessRetries(t *testing.T) {
	c := &Consumer{log: logger.Nop(), attempts: 3, backoff: time.Millisecond}
	msg := kafka.Message{Key: []byte("BKA1B2C3"), Value: []byte("{}"), Offset: 42}
	transient := errors.New("connection reset")

	t.Run("recovers after transient failures", func(t *testing.T) {
		calls := 0
		err := c.process(context.Background(), func(_ context.Context, key, value []byte) error {
			calls++
			assert.Equal(t, "BKA1B2C3", string(key))
			if calls < 3 {
				return transient
			}
			return nil
		}, msg)

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the last attempt", func(t *testing.T) {
		calls := 0
		err := c.process(context.Background(), func(context.Context, []byte, []byte) error {
			calls++
			return transient
		}, msg)

		assert.ErrorIs(t, err, transient)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		slow := &Consumer{log: logger.Nop(), attempts: 3, backoff: time.Hour}
		calls := 0
		err := slow.process(ctx, func(context.Context, []byte, []byte) error {
			calls++
			cancel()
			return transient
		}, msg)

		assert.ErrorIs(t, err, transient)
		assert.Equal(t, 1, calls)
	})
}
