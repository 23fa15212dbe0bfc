package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID               int64
	FlightID         int64
	PassengerID      int64
	BookingReference string
	SeatNumber       string
	BookingDate      time.Time
	Status           BookingStatus
	TotalPrice       int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BookingPatch carries a partial update; nil fields are left untouched.
type BookingPatch struct {
	Status     *BookingStatus
	SeatNumber *string
}

// BookingChange is the outcome of an update or delete, including what
// happened to the flight's seat counter.
type BookingChange struct {
	Booking        Booking
	PreviousStatus BookingStatus
	SeatReleased   bool
	SeatReserved   bool
}

func (c BookingChange) Cancelled() bool {
	return c.Booking.Status == BookingStatusCancelled && c.PreviousStatus != BookingStatusCancelled
}

type BookingFilter struct {
	Status      string
	PassengerID int64
	FlightID    int64
	Search      string
	Limit       int
	Offset      int
}

// BookingDetails joins a booking with the flight and passenger it references.
type BookingDetails struct {
	Booking   Booking
	Flight    Flight
	Passenger Passenger
}
