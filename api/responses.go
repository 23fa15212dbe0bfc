package api

import (
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type flightResponse struct {
	ID             int64     `json:"id"`
	FlightNumber   string    `json:"flightNumber"`
	Airline        string    `json:"airline"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Price          int64     `json:"price"`
	AvailableSeats int       `json:"availableSeats"`
	TotalSeats     int       `json:"totalSeats"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func newFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		Airline:        f.Airline,
		Origin:         f.Origin,
		Destination:    f.Destination,
		DepartureTime:  f.DepartureTime.UTC(),
		ArrivalTime:    f.ArrivalTime.UTC(),
		Price:          f.Price,
		AvailableSeats: f.AvailableSeats,
		TotalSeats:     f.TotalSeats,
		Status:         f.Status,
		CreatedAt:      f.CreatedAt.UTC(),
		UpdatedAt:      f.UpdatedAt.UTC(),
	}
}

type flightPageResponse struct {
	Flights []flightResponse `json:"flights"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

func newFlightPageResponse(page *domain.FlightPage) flightPageResponse {
	resp := flightPageResponse{
		Flights: make([]flightResponse, 0, len(page.Flights)),
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	}
	for _, f := range page.Flights {
		resp.Flights = append(resp.Flights, newFlightResponse(f))
	}
	return resp
}

type passengerResponse struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	PassportNumber string    `json:"passportNumber"`
	DateOfBirth    string    `json:"dateOfBirth"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func newPassengerResponse(p domain.Passenger) passengerResponse {
	return passengerResponse{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		PassportNumber: p.PassportNumber,
		DateOfBirth:    p.DateOfBirth.Format(domain.DateLayout),
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}
}

type bookingResponse struct {
	ID               int64     `json:"id"`
	FlightID         int64     `json:"flightId"`
	PassengerID      int64     `json:"passengerId"`
	BookingReference string    `json:"bookingReference"`
	SeatNumber       string    `json:"seatNumber"`
	BookingDate      time.Time `json:"bookingDate"`
	Status           string    `json:"status"`
	TotalPrice       int64     `json:"totalPrice"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func newBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:               b.ID,
		FlightID:         b.FlightID,
		PassengerID:      b.PassengerID,
		BookingReference: b.BookingReference,
		SeatNumber:       b.SeatNumber,
		BookingDate:      b.BookingDate.UTC(),
		Status:           string(b.Status),
		TotalPrice:       b.TotalPrice,
		CreatedAt:        b.CreatedAt.UTC(),
		UpdatedAt:        b.UpdatedAt.UTC(),
	}
}

type deleteBookingResponse struct {
	Message   string `json:"message"`
	BookingID int64  `json:"bookingId"`
}
