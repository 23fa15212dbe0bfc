package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/google/uuid"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingUpdated   = "booking_updated"
	EventBookingCancelled = "booking_cancelled"
	EventBookingDeleted   = "booking_deleted"
)

type BookingEvent struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	BookingID        int64     `json:"bookingId"`
	BookingReference string    `json:"bookingReference"`
	FlightID         int64     `json:"flightId"`
	PassengerID      int64     `json:"passengerId"`
	SeatNumber       string    `json:"seatNumber"`
	Status           string    `json:"status"`
	OccurredAt       time.Time `json:"occurredAt"`
}

func NewBookingEvent(eventType string, b domain.Booking) BookingEvent {
	return BookingEvent{
		ID:               uuid.NewString(),
		Type:             eventType,
		BookingID:        b.ID,
		BookingReference: b.BookingReference,
		FlightID:         b.FlightID,
		PassengerID:      b.PassengerID,
		SeatNumber:       b.SeatNumber,
		Status:           string(b.Status),
		OccurredAt:       time.Now().UTC(),
	}
}

// DecodeBookingEvent parses a message value and rejects events missing the
// fields a consumer needs to act on them.
func DecodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event: %w", err)
	}
	if event.Type == "" || event.BookingReference == "" || event.PassengerID <= 0 || event.FlightID <= 0 {
		return BookingEvent{}, fmt.Errorf("decode booking event: incomplete event %q", event.ID)
	}
	return event, nil
}
