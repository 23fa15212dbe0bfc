package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	Update(ctx context.Context, id int64, patch domain.BookingPatch) (*domain.BookingChange, error)
	Delete(ctx context.Context, id int64) (*domain.BookingChange, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, flight_id, passenger_id, booking_reference, seat_number, booking_date, status, total_price, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.FlightID, &b.PassengerID, &b.BookingReference, &b.SeatNumber, &b.BookingDate, &b.Status, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create takes a seat on the flight and inserts the booking in a single
// transaction. A taken reference yields domain.ErrDuplicateReference and
// leaves the seat counter untouched.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// A booking created as cancelled never holds a seat.
	if booking.Status != domain.BookingStatusCancelled {
		if err := reserveSeat(ctx, tx, booking.FlightID); err != nil {
			return err
		}
	}

	err = tx.QueryRow(ctx, `INSERT INTO bookings (flight_id, passenger_id, booking_reference, seat_number, booking_date, status, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		booking.FlightID, booking.PassengerID, booking.BookingReference, booking.SeatNumber, booking.BookingDate, booking.Status, booking.TotalPrice).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if constraint, ok := constraintViolation(err, uniqueViolation); ok && constraint == "bookings_booking_reference_key" {
			return domain.ErrDuplicateReference
		}
		if constraint, ok := constraintViolation(err, foreignKeyViolation); ok && constraint == "bookings_passenger_id_fkey" {
			return domain.ErrPassengerNotFound
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE booking_reference=$1)`, reference).Scan(&exists)
	return exists, err
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return b, nil
}

func (r *PGBookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	var (
		conds []string
		args  []any
	)
	add := func(format string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.PassengerID > 0 {
		add("passenger_id = $%d", filter.PassengerID)
	}
	if filter.FlightID > 0 {
		add("flight_id = $%d", filter.FlightID)
	}
	if filter.Search != "" {
		add("booking_reference ILIKE $%d", "%"+filter.Search+"%")
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// Update applies patch under a row lock and reconciles the flight's seat
// counter when the status moves into or out of cancelled.
func (r *PGBookingRepository) Update(ctx context.Context, id int64, patch domain.BookingPatch) (*domain.BookingChange, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	current, err := scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}

	change := &domain.BookingChange{PreviousStatus: current.Status}
	var status *string
	if patch.Status != nil {
		next := *patch.Status
		s := string(next)
		status = &s

		switch {
		case next == domain.BookingStatusCancelled && current.Status != domain.BookingStatusCancelled:
			// A missing flight or a full counter is skipped, not an error.
			released, err := releaseSeat(ctx, tx, current.FlightID)
			if err != nil {
				return nil, err
			}
			change.SeatReleased = released
		case next != domain.BookingStatusCancelled && current.Status == domain.BookingStatusCancelled:
			if err := reserveSeat(ctx, tx, current.FlightID); err != nil {
				return nil, err
			}
			change.SeatReserved = true
		}
	}

	updated, err := scanBooking(tx.QueryRow(ctx, `UPDATE bookings
		SET status = COALESCE($2, status), seat_number = COALESCE($3, seat_number), updated_at = now()
		WHERE id=$1
		RETURNING `+bookingColumns, id, status, patch.SeatNumber))
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	change.Booking = *updated
	return change, nil
}

// Delete removes the booking. The seat goes back to the flight only when
// the booking was not already cancelled, so deleting twice never double
// counts.
func (r *PGBookingRepository) Delete(ctx context.Context, id int64) (*domain.BookingChange, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	current, err := scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}

	change := &domain.BookingChange{Booking: *current, PreviousStatus: current.Status}
	if current.Status != domain.BookingStatusCancelled {
		released, err := releaseSeat(ctx, tx, current.FlightID)
		if err != nil {
			return nil, err
		}
		change.SeatReleased = released
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id); err != nil {
		return nil, fmt.Errorf("delete booking: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	change.Booking.Status = domain.BookingStatusCancelled
	return change, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
