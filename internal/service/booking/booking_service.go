package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/ticket"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id int64, input UpdateBookingInput) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	Ticket(ctx context.Context, id int64) (*domain.BookingDetails, []byte, error)
}

// Cache is the part of the flight cache the booking path invalidates.
type Cache interface {
	InvalidateFlight(ctx context.Context, flightID int64) error
}

type Producer interface {
	PublishBookingEvent(ctx context.Context, event kafka.BookingEvent) error
}

type CreateBookingInput struct {
	FlightID    int64
	PassengerID int64
	SeatNumber  string
	TotalPrice  int64
	// Status defaults to pending when empty.
	Status string
}

// UpdateBookingInput is a partial update; nil fields are left unchanged.
type UpdateBookingInput struct {
	Status     *string
	SeatNumber *string
}

type BookingService struct {
	bookings          repository.BookingRepository
	flights           repository.FlightRepository
	passengers        repository.PassengerRepository
	cache             Cache
	producer          Producer
	log               *logger.Logger
	newReference      func() (string, error)
	renderTicket      func(domain.BookingDetails) ([]byte, error)
	referenceAttempts int
	maxPageSize       int
}

type BookingServiceOption func(*BookingService)

func WithReferenceAttempts(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.referenceAttempts = n
		}
	}
}

func WithMaxPageSize(n int) BookingServiceOption {
	return func(s *BookingService) {
		s.maxPageSize = n
	}
}

func WithReferenceGenerator(gen func() (string, error)) BookingServiceOption {
	return func(s *BookingService) {
		s.newReference = gen
	}
}

// NewBookingService wires the booking lifecycle. cache and producer may be
// nil, in which case invalidation and events are skipped.
func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	cache Cache,
	producer Producer,
	log *logger.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:          bookings,
		flights:           flights,
		passengers:        passengers,
		cache:             cache,
		producer:          producer,
		log:               log,
		newReference:      NewReference,
		renderTicket:      ticket.Render,
		referenceAttempts: 10,
		maxPageSize:       100,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.TotalPrice <= 0 {
		return nil, domain.NewValidationError("INVALID_TOTAL_PRICE", "totalPrice must be a positive integer")
	}
	seat, ok := domain.NormalizeSeatNumber(input.SeatNumber)
	if !ok {
		return nil, domain.NewValidationError("INVALID_SEAT_NUMBER", "seatNumber must be in format: digits followed by a letter (e.g., 12A)")
	}
	status := domain.BookingStatusPending
	if input.Status != "" {
		status = domain.BookingStatus(input.Status)
		if !status.Valid() {
			return nil, domain.NewValidationError("INVALID_STATUS", "status must be one of: pending, confirmed, cancelled")
		}
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if _, err := s.passengers.GetByID(ctx, input.PassengerID); err != nil {
		return nil, err
	}
	if flight.AvailableSeats <= 0 {
		return nil, domain.ErrNoAvailableSeats
	}

	for attempt := 0; attempt < s.referenceAttempts; attempt++ {
		reference, err := s.newReference()
		if err != nil {
			return nil, fmt.Errorf("generate booking reference: %w", err)
		}
		exists, err := s.bookings.ReferenceExists(ctx, reference)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		booking := &domain.Booking{
			FlightID:         input.FlightID,
			PassengerID:      input.PassengerID,
			BookingReference: reference,
			SeatNumber:       seat,
			BookingDate:      time.Now().UTC(),
			Status:           status,
			TotalPrice:       input.TotalPrice,
		}
		err = s.bookings.Create(ctx, booking)
		if errors.Is(err, domain.ErrDuplicateReference) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.log.InfoContext(ctx, "booking created",
			"booking_id", booking.ID, "booking_reference", booking.BookingReference, "flight_id", booking.FlightID)
		s.afterChange(ctx, kafka.EventBookingCreated, *booking)
		return booking, nil
	}

	s.log.ErrorContext(ctx, "booking reference attempts exhausted", "attempts", s.referenceAttempts)
	return nil, domain.ErrReferenceGenerationFailed
}

func (s *BookingService) UpdateBooking(ctx context.Context, id int64, input UpdateBookingInput) (*domain.Booking, error) {
	var patch domain.BookingPatch
	if input.Status != nil {
		status := domain.BookingStatus(*input.Status)
		if !status.Valid() {
			return nil, domain.NewValidationError("INVALID_STATUS", "Invalid status. Must be one of: pending, confirmed, cancelled")
		}
		patch.Status = &status
	}
	if input.SeatNumber != nil {
		seat, ok := domain.NormalizeSeatNumber(*input.SeatNumber)
		if !ok {
			return nil, domain.NewValidationError("INVALID_SEAT_NUMBER", "Invalid seat number format. Must be digits followed by a letter (e.g., 12A)")
		}
		patch.SeatNumber = &seat
	}

	change, err := s.bookings.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	eventType := kafka.EventBookingUpdated
	if change.Cancelled() {
		eventType = kafka.EventBookingCancelled
		if !change.SeatReleased {
			s.log.WarnContext(ctx, "seat not released on cancellation", "booking_id", id, "flight_id", change.Booking.FlightID)
		}
	}
	s.log.InfoContext(ctx, "booking updated",
		"booking_id", id, "previous_status", change.PreviousStatus, "status", change.Booking.Status)
	s.afterChange(ctx, eventType, change.Booking)
	return &change.Booking, nil
}

// DeleteBooking removes the booking and returns it as it was, marked
// cancelled. A booking that was already cancelled gives no seat back.
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	change, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "booking deleted",
		"booking_id", id, "previous_status", change.PreviousStatus, "seat_released", change.SeatReleased)
	s.afterChange(ctx, kafka.EventBookingDeleted, change.Booking)
	return &change.Booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	filter.Limit = domain.PageLimit(filter.Limit, s.maxPageSize)
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.bookings.List(ctx, filter)
}

// Ticket loads the booking with its flight and passenger and renders the
// e-ticket PDF. Cancelled bookings have no ticket.
func (s *BookingService) Ticket(ctx context.Context, id int64) (*domain.BookingDetails, []byte, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if b.Status == domain.BookingStatusCancelled {
		return nil, nil, domain.ErrBookingCancelled
	}

	flight, err := s.flights.GetByID(ctx, b.FlightID)
	if err != nil {
		return nil, nil, err
	}
	passenger, err := s.passengers.GetByID(ctx, b.PassengerID)
	if err != nil {
		return nil, nil, err
	}

	details := &domain.BookingDetails{Booking: *b, Flight: *flight, Passenger: *passenger}
	pdf, err := s.renderTicket(*details)
	if err != nil {
		return nil, nil, fmt.Errorf("render ticket: %w", err)
	}
	return details, pdf, nil
}

// afterChange runs the post-commit side effects. Their failures are logged
// and never undo the committed booking.
func (s *BookingService) afterChange(ctx context.Context, eventType string, b domain.Booking) {
	if s.cache != nil {
		if err := s.cache.InvalidateFlight(ctx, b.FlightID); err != nil {
			s.log.WarnContext(ctx, "flight cache invalidation failed", "flight_id", b.FlightID, "error", err)
		}
	}
	if s.producer != nil {
		if err := s.producer.PublishBookingEvent(ctx, kafka.NewBookingEvent(eventType, b)); err != nil {
			s.log.WarnContext(ctx, "failed to publish booking event",
				"type", eventType, "booking_reference", b.BookingReference, "error", err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
