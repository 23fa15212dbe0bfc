package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/passengers"
)

type seedFlight struct {
	number, airline, origin, destination  string
	departInDays, departHour, durationMin int
	price                                 int64
	seats                                 int
}

var sampleFlights = []seedFlight{
	{"DL101", "Delta Air Lines", "JFK", "LAX", 7, 8, 375, 650, 180},
	{"JL202", "Japan Airlines", "LAX", "NRT", 10, 11, 690, 850, 240},
	{"BA303", "British Airways", "LHR", "JFK", 12, 14, 480, 720, 200},
	{"AF404", "Air France", "CDG", "JFK", 14, 10, 500, 690, 220},
	{"EK505", "Emirates", "DXB", "LHR", 15, 2, 460, 910, 300},
	{"UA606", "United Airlines", "SFO", "ORD", 5, 6, 250, 320, 2},
}

var samplePassengers = []passengers.CreatePassengerInput{
	{FirstName: "John", LastName: "Smith", Email: "john.smith@gmail.com", Phone: "+1-555-0101", PassportNumber: "US123456789", DateOfBirth: "1989-03-15"},
	{FirstName: "Sarah", LastName: "Johnson", Email: "sarah.johnson@yahoo.com", Phone: "+1-555-0202", PassportNumber: "US234567890", DateOfBirth: "1985-07-22"},
	{FirstName: "Michael", LastName: "Chen", Email: "michael.chen@outlook.com", Phone: "+44-20-1234-5678", PassportNumber: "GB987654321", DateOfBirth: "1992-11-08"},
	{FirstName: "Emily", LastName: "Rodriguez", Email: "emily.rodriguez@gmail.com", Phone: "+1-555-0303", PassportNumber: "US345678901", DateOfBirth: "1978-05-14"},
	{FirstName: "David", LastName: "Kim", Email: "david.kim@hotmail.com", Phone: "+81-3-1234-5678", PassportNumber: "JP456789123", DateOfBirth: "1995-09-30"},
}

// sampleBookings index into the flights and passengers created by this run.
var sampleBookings = []struct {
	flight, passenger int
	seat, status      string
}{
	{0, 0, "12A", "confirmed"},
	{0, 1, "12B", "confirmed"},
	{0, 2, "15C", "pending"},
	{1, 3, "3A", "confirmed"},
	{1, 4, "3B", "cancelled"},
	{5, 0, "1A", "confirmed"},
	{5, 1, "1B", "pending"},
}

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.New("info").Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := repository.Connect(ctx, cfg.Database)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool, log); err != nil {
		log.Error("migrate database", "error", err)
		os.Exit(1)
	}

	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	passengerService := passengers.NewPassengerService(passengerRepo, log, cfg.Booking.MaxPageSize)
	bookingService := booking.NewBookingService(repository.NewBookingRepository(pool), flightRepo, passengerRepo, nil, nil, log)

	flightIDs := make([]int64, len(sampleFlights))
	for i, sf := range sampleFlights {
		f := sf.flight(time.Now().UTC())
		if err := flightRepo.Create(ctx, f); err != nil {
			log.Warn("skipping flight", "flight_number", sf.number, "error", err)
			continue
		}
		flightIDs[i] = f.ID
	}

	passengerIDs := make([]int64, len(samplePassengers))
	for i, in := range samplePassengers {
		p, err := passengerService.Create(ctx, in)
		if err != nil {
			var domainErr *domain.Error
			if errors.As(err, &domainErr) && domainErr.Kind == domain.KindConflict {
				log.Info("passenger already seeded", "email", in.Email)
				continue
			}
			log.Error("create passenger", "email", in.Email, "error", err)
			os.Exit(1)
		}
		passengerIDs[i] = p.ID
	}

	created := 0
	for _, sb := range sampleBookings {
		flightID, passengerID := flightIDs[sb.flight], passengerIDs[sb.passenger]
		if flightID == 0 || passengerID == 0 {
			continue
		}
		_, err := bookingService.CreateBooking(ctx, booking.CreateBookingInput{
			FlightID:    flightID,
			PassengerID: passengerID,
			SeatNumber:  sb.seat,
			TotalPrice:  sampleFlights[sb.flight].price,
			Status:      sb.status,
		})
		if err != nil {
			log.Warn("skipping booking", "flight_id", flightID, "passenger_id", passengerID, "error", err)
			continue
		}
		created++
	}

	log.Info("seed finished", "bookings", created)
}

func (sf seedFlight) flight(now time.Time) *domain.Flight {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	departure := day.AddDate(0, 0, sf.departInDays).Add(time.Duration(sf.departHour) * time.Hour)
	return &domain.Flight{
		FlightNumber:   sf.number,
		Airline:        sf.airline,
		Origin:         sf.origin,
		Destination:    sf.destination,
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(time.Duration(sf.durationMin) * time.Minute),
		Price:          sf.price,
		AvailableSeats: sf.seats,
		TotalSeats:     sf.seats,
		Status:         domain.FlightStatusScheduled,
	}
}
