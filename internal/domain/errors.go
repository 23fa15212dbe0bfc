package domain

import "errors"

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindInternal
)

// Error is a failure with a stable machine-readable code that the HTTP
// layer can render as {error, code}.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

var (
	ErrFlightNotFound    = &Error{Kind: KindNotFound, Code: "FLIGHT_NOT_FOUND", Message: "Flight not found"}
	ErrPassengerNotFound = &Error{Kind: KindNotFound, Code: "PASSENGER_NOT_FOUND", Message: "Passenger not found"}
	ErrBookingNotFound   = &Error{Kind: KindNotFound, Code: "BOOKING_NOT_FOUND", Message: "Booking not found"}

	ErrNoAvailableSeats  = &Error{Kind: KindConflict, Code: "NO_AVAILABLE_SEATS", Message: "No available seats on this flight"}
	ErrDuplicateEmail    = &Error{Kind: KindConflict, Code: "DUPLICATE_EMAIL", Message: "Email already exists"}
	ErrDuplicatePassport = &Error{Kind: KindConflict, Code: "DUPLICATE_PASSPORT_NUMBER", Message: "Passport number already exists"}
	ErrBookingCancelled  = &Error{Kind: KindConflict, Code: "BOOKING_CANCELLED", Message: "Booking is cancelled"}

	ErrReferenceGenerationFailed = &Error{Kind: KindInternal, Code: "BOOKING_REFERENCE_GENERATION_FAILED", Message: "Failed to generate unique booking reference"}
)

// ErrDuplicateReference is returned by storage when a booking reference is
// already taken. Callers retry with a fresh reference.
var ErrDuplicateReference = errors.New("booking reference already exists")
