package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PassengerRepository interface {
	Create(ctx context.Context, passenger *domain.Passenger) error
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	List(ctx context.Context, filter domain.PassengerFilter) ([]domain.Passenger, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPassport(ctx context.Context, passport string) (bool, error)
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `id, first_name, last_name, email, phone, passport_number, date_of_birth, created_at, updated_at`

func scanPassenger(row pgx.Row) (*domain.Passenger, error) {
	var p domain.Passenger
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.PassportNumber, &p.DateOfBirth, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGPassengerRepository) Create(ctx context.Context, p *domain.Passenger) error {
	err := r.db.QueryRow(ctx, `INSERT INTO passengers (first_name, last_name, email, phone, passport_number, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		p.FirstName, p.LastName, p.Email, p.Phone, p.PassportNumber, p.DateOfBirth).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if constraint, ok := constraintViolation(err, uniqueViolation); ok {
		switch constraint {
		case "passengers_email_key":
			return domain.ErrDuplicateEmail
		case "passengers_passport_number_key":
			return domain.ErrDuplicatePassport
		}
	}
	return err
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	p, err := scanPassenger(r.db.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err, domain.ErrPassengerNotFound)
	}
	return p, nil
}

func (r *PGPassengerRepository) List(ctx context.Context, filter domain.PassengerFilter) ([]domain.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers`
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1`
	}
	query += fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("list passengers: %w", err)
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, *p)
	}
	return passengers, rows.Err()
}

func (r *PGPassengerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM passengers WHERE email=$1)`, email).Scan(&exists)
	return exists, err
}

func (r *PGPassengerRepository) ExistsByPassport(ctx context.Context, passport string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM passengers WHERE passport_number=$1)`, passport).Scan(&exists)
	return exists, err
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
