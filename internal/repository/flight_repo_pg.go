package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	InventoryDrift(ctx context.Context) ([]domain.InventoryDrift, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, airline, origin, destination, departure_time, arrival_time, price, available_seats, total_seats, status, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.Price, &f.AvailableSeats, &f.TotalSeats, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// flightConditions builds the WHERE clause shared by the page and count
// queries.
func flightConditions(filter domain.FlightFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(format string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if filter.Search != "" {
		add("(flight_number ILIKE $%[1]d OR airline ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	if filter.Origin != "" {
		add("origin = $%d", filter.Origin)
	}
	if filter.Destination != "" {
		add("destination = $%d", filter.Destination)
	}
	if !filter.DepartureFrom.IsZero() {
		add("departure_time >= $%d", filter.DepartureFrom)
	}
	if !filter.DepartureTo.IsZero() {
		add("departure_time < $%d", filter.DepartureTo)
	}
	if filter.MinSeats > 0 {
		add("available_seats >= $%d", filter.MinSeats)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, int, error) {
	where, args := flightConditions(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count flights: %w", err)
	}

	query := `SELECT ` + flightColumns + ` FROM flights` + where +
		fmt.Sprintf(` ORDER BY departure_time, id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, 0, err
		}
		flights = append(flights, *f)
	}
	return flights, total, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err, domain.ErrFlightNotFound)
	}
	return f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	if flight.Status == "" {
		flight.Status = domain.FlightStatusScheduled
	}
	return r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airline, origin, destination, departure_time, arrival_time, price, available_seats, total_seats, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Airline, flight.Origin, flight.Destination, flight.DepartureTime, flight.ArrivalTime,
		flight.Price, flight.AvailableSeats, flight.TotalSeats, flight.Status).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

// InventoryDrift returns flights whose available_seats counter differs from
// total_seats minus their non-cancelled bookings.
func (r *PGFlightRepository) InventoryDrift(ctx context.Context) ([]domain.InventoryDrift, error) {
	rows, err := r.db.Query(ctx, `
        SELECT f.id, f.flight_number, f.available_seats,
               f.total_seats - COUNT(b.id) FILTER (WHERE b.status <> 'cancelled') AS expected
        FROM flights f
        LEFT JOIN bookings b ON b.flight_id = f.id
        GROUP BY f.id
        HAVING f.available_seats <> f.total_seats - COUNT(b.id) FILTER (WHERE b.status <> 'cancelled')
        ORDER BY f.id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drift []domain.InventoryDrift
	for rows.Next() {
		var d domain.InventoryDrift
		if err := rows.Scan(&d.FlightID, &d.FlightNumber, &d.AvailableSeats, &d.ExpectedSeats); err != nil {
			return nil, err
		}
		drift = append(drift, d)
	}
	return drift, rows.Err()
}

// reserveSeat takes one seat from the flight. It distinguishes a missing
// flight from a sold-out one so callers can surface the right code.
func reserveSeat(ctx context.Context, q querier, flightID int64) error {
	res, err := q.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now() WHERE id=$1 AND available_seats > 0`, flightID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flights WHERE id=$1)`, flightID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrFlightNotFound
	}
	return domain.ErrNoAvailableSeats
}

// releaseSeat gives one seat back unless the counter is already at capacity
// or the flight is gone. It reports whether a seat was released.
func releaseSeat(ctx context.Context, q querier, flightID int64) (bool, error) {
	res, err := q.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1, updated_at = now() WHERE id=$1 AND available_seats < total_seats`, flightID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
