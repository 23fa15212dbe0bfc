package domain

import "time"

type Passenger struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	PassportNumber string
	DateOfBirth    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

type PassengerFilter struct {
	Search string
	Limit  int
	Offset int
}
