package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/email"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type Sender interface {
	Send(ctx context.Context, msg email.Message) error
}

type NotificationService struct {
	flights    repository.FlightRepository
	passengers repository.PassengerRepository
	sender     Sender
	log        *logger.Logger
}

func NewNotificationService(flights repository.FlightRepository, passengers repository.PassengerRepository, sender Sender, log *logger.Logger) *NotificationService {
	return &NotificationService{flights: flights, passengers: passengers, sender: sender, log: log}
}

// HandleMessage turns one booking event into an email to the passenger.
// Undecodable events and events for unknown passengers or flights are
// logged and dropped. Lookup failures are returned so the consumer retries.
func (s *NotificationService) HandleMessage(ctx context.Context, value []byte) error {
	event, err := kafka.DecodeBookingEvent(value)
	if err != nil {
		s.log.WarnContext(ctx, "skipping malformed booking event", "error", err)
		return nil
	}

	passenger, err := s.passengers.GetByID(ctx, event.PassengerID)
	if errors.Is(err, domain.ErrPassengerNotFound) {
		s.log.WarnContext(ctx, "skipping booking event", "event_id", event.ID, "passenger_id", event.PassengerID, "error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load passenger %d: %w", event.PassengerID, err)
	}
	flight, err := s.flights.GetByID(ctx, event.FlightID)
	if errors.Is(err, domain.ErrFlightNotFound) {
		s.log.WarnContext(ctx, "skipping booking event", "event_id", event.ID, "flight_id", event.FlightID, "error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load flight %d: %w", event.FlightID, err)
	}

	msg := compose(event, *passenger, *flight)
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send notification for %s: %w", event.BookingReference, err)
	}
	return nil
}

func compose(event kafka.BookingEvent, p domain.Passenger, f domain.Flight) email.Message {
	var headline string
	switch event.Type {
	case kafka.EventBookingCreated:
		headline = "is received"
	case kafka.EventBookingCancelled, kafka.EventBookingDeleted:
		headline = "is cancelled"
	default:
		headline = "was updated"
	}

	return email.Message{
		To:      p.Email,
		Subject: fmt.Sprintf("Booking %s %s", event.BookingReference, headline),
		Body: fmt.Sprintf("Dear %s,\n\nYour booking %s %s.\nFlight %s (%s) %s -> %s departs %s.\nSeat %s, status %s.\n",
			p.FullName(), event.BookingReference, headline,
			f.FlightNumber, f.Airline, f.Origin, f.Destination, f.DepartureTime.UTC().Format(time.RFC1123),
			event.SeatNumber, event.Status),
	}
}
