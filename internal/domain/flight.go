package domain

import "time"

const FlightStatusScheduled = "scheduled"

type Flight struct {
	ID             int64
	FlightNumber   string
	Airline        string
	Origin         string
	Destination    string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	Price          int64
	AvailableSeats int
	TotalSeats     int
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FlightFilter narrows a flight listing. Zero values mean "no filter".
type FlightFilter struct {
	Search      string
	Origin      string
	Destination string
	// DepartureFrom/DepartureTo bound departure_time as [from, to).
	DepartureFrom time.Time
	DepartureTo   time.Time
	MinSeats      int
	Limit         int
	Offset        int
}

type FlightPage struct {
	Flights []Flight
	Total   int
	Limit   int
	Offset  int
}

// InventoryDrift describes a flight whose seat counter disagrees with its
// live bookings.
type InventoryDrift struct {
	FlightID       int64
	FlightNumber   string
	AvailableSeats int
	ExpectedSeats  int
}
