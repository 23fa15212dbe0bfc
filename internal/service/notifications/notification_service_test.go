package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/email"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Int(1), args.Error(2)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return m.Called(ctx, flight).Error(0)
}

func (m *MockFlightRepository) InventoryDrift(ctx context.Context) ([]domain.InventoryDrift, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.InventoryDrift), args.Error(1)
}

type MockPassengerRepository struct {
	mock.Mock
}

func (m *MockPassengerRepository) Create(ctx context.Context, p *domain.Passenger) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) List(ctx context.Context, filter domain.PassengerFilter) ([]domain.Passenger, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockPassengerRepository) ExistsByPassport(ctx context.Context, passport string) (bool, error) {
	args := m.Called(ctx, passport)
	return args.Bool(0), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func encodedEvent(t *testing.T, eventType string) []byte {
	t.Helper()
	event := kafka.NewBookingEvent(eventType, domain.Booking{
		ID: 5, FlightID: 4, PassengerID: 7, BookingReference: "BKA1B2C3", SeatNumber: "12A", Status: domain.BookingStatusPending,
	})
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return data
}

func TestNotificationService_HandleMessage(t *testing.T) {
	ctx := context.Background()
	flight := &domain.Flight{ID: 4, FlightNumber: "BA178", Airline: "British Airways", Origin: "JFK", Destination: "LHR", DepartureTime: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	passenger := &domain.Passenger{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

	t.Run("sends email", func(t *testing.T) {
		flights := &MockFlightRepository{}
		passengers := &MockPassengerRepository{}
		sender := &MockSender{}
		service := NewNotificationService(flights, passengers, sender, logger.Nop())

		passengers.On("GetByID", ctx, int64(7)).Return(passenger, nil).Once()
		flights.On("GetByID", ctx, int64(4)).Return(flight, nil).Once()
		sender.On("Send", ctx, mock.MatchedBy(func(m email.Message) bool {
			return m.To == "ada@example.com" && m.Subject == "Booking BKA1B2C3 is received"
		})).Return(nil).Once()

		err := service.HandleMessage(ctx, encodedEvent(t, kafka.EventBookingCreated))

		assert.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("malformed event is skipped", func(t *testing.T) {
		sender := &MockSender{}
		service := NewNotificationService(&MockFlightRepository{}, &MockPassengerRepository{}, sender, logger.Nop())

		err := service.HandleMessage(ctx, []byte("not json"))

		assert.NoError(t, err)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("unknown passenger is skipped", func(t *testing.T) {
		passengers := &MockPassengerRepository{}
		sender := &MockSender{}
		service := NewNotificationService(&MockFlightRepository{}, passengers, sender, logger.Nop())

		passengers.On("GetByID", ctx, int64(7)).Return(nil, domain.ErrPassengerNotFound).Once()

		err := service.HandleMessage(ctx, encodedEvent(t, kafka.EventBookingCreated))

		assert.NoError(t, err)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("unknown flight is skipped", func(t *testing.T) {
		flights := &MockFlightRepository{}
		passengers := &MockPassengerRepository{}
		sender := &MockSender{}
		service := NewNotificationService(flights, passengers, sender, logger.Nop())

		passengers.On("GetByID", ctx, int64(7)).Return(passenger, nil).Once()
		flights.On("GetByID", ctx, int64(4)).Return(nil, domain.ErrFlightNotFound).Once()

		err := service.HandleMessage(ctx, encodedEvent(t, kafka.EventBookingCreated))

		assert.NoError(t, err)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("passenger lookup failure is returned", func(t *testing.T) {
		passengers := &MockPassengerRepository{}
		sender := &MockSender{}
		service := NewNotificationService(&MockFlightRepository{}, passengers, sender, logger.Nop())

		dbDown := errors.New("connection refused")
		passengers.On("GetByID", ctx, int64(7)).Return(nil, dbDown).Once()

		err := service.HandleMessage(ctx, encodedEvent(t, kafka.EventBookingCreated))

		assert.ErrorIs(t, err, dbDown)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("flight lookup failure is returned", func(t *testing.T) {
		flights := &MockFlightRepository{}
		passengers := &MockPassengerRepository{}
		sender := &MockSender{}
		service := NewNotificationService(flights, passengers, sender, logger.Nop())

		dbDown := errors.New("connection refused")
		passengers.On("GetByID", ctx, int64(7)).Return(passenger, nil).Once()
		flights.On("GetByID", ctx, int64(4)).Return(nil, dbDown).Once()

		err := service.HandleMessage(ctx, encodedEvent(t, kafka.EventBookingCreated))

		assert.ErrorIs(t, err, dbDown)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("send failure is returned", func(t *testing.T) {
		flights := &MockFlightRepository{}
		passengers := &MockPassengerRepository{}
		sender := &MockSender{}
		service := NewNotificationService(flights, passengers, sender, logger.Nop())

		passengers.On("GetByID", ctx, int64(7)).Return(passenger, nil).Once()
		flights.On("GetByID", ctx, int64(4)).Return(flight, nil).Once()
		sender.On("Send", ctx, mock.Anything).Return(errors.New("smtp down")).Once()

		err := service.HandleMessage(ctx, encodedEvent(t, kafka.EventBookingCreated))

		assert.Error(t, err)
	})
}

func TestCompose(t *testing.T) {
	event := kafka.BookingEvent{Type: kafka.EventBookingDeleted, BookingReference: "BKA1B2C3", SeatNumber: "12A", Status: "cancelled"}
	msg := compose(event, domain.Passenger{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, domain.Flight{FlightNumber: "BA178"})

	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "Booking BKA1B2C3 is cancelled", msg.Subject)
	assert.Contains(t, msg.Body, "Dear Ada Lovelace")
	assert.Contains(t, msg.Body, "BA178")
}
