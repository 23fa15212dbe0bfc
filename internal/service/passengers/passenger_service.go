package passengers

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type PassengerUseCase interface {
	Create(ctx context.Context, input CreatePassengerInput) (*domain.Passenger, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	List(ctx context.Context, filter domain.PassengerFilter) ([]domain.Passenger, error)
}

type CreatePassengerInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	PassportNumber string
	DateOfBirth    string
}

type PassengerService struct {
	repo        repository.PassengerRepository
	log         *logger.Logger
	maxPageSize int
}

func NewPassengerService(repo repository.PassengerRepository, log *logger.Logger, maxPageSize int) *PassengerService {
	return &PassengerService{repo: repo, log: log, maxPageSize: maxPageSize}
}

// Create validates and sanitizes input, then inserts the passenger. Email
// and passport uniqueness is pre-checked for a clean error and enforced by
// the database constraints under concurrency.
func (s *PassengerService) Create(ctx context.Context, input CreatePassengerInput) (*domain.Passenger, error) {
	p, err := input.passenger()
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateEmail
	}

	taken, err = s.repo.ExistsByPassport(ctx, p.PassportNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicatePassport
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "passenger created", "passenger_id", p.ID)
	return p, nil
}

// passenger applies the validation rules in the order clients see them.
func (in CreatePassengerInput) passenger() (*domain.Passenger, error) {
	firstName := strings.TrimSpace(in.FirstName)
	if utf8.RuneCountInString(firstName) < 2 {
		return nil, domain.NewValidationError("INVALID_FIRST_NAME", "First name is required and must be at least 2 characters")
	}
	lastName := strings.TrimSpace(in.LastName)
	if utf8.RuneCountInString(lastName) < 2 {
		return nil, domain.NewValidationError("INVALID_LAST_NAME", "Last name is required and must be at least 2 characters")
	}
	if in.Email == "" {
		return nil, domain.NewValidationError("MISSING_EMAIL", "Email is required")
	}
	if !domain.ValidEmailShape(in.Email) {
		return nil, domain.NewValidationError("INVALID_EMAIL_FORMAT", "Invalid email format")
	}
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return nil, domain.NewValidationError("MISSING_PHONE", "Phone is required")
	}
	if strings.TrimSpace(in.PassportNumber) == "" {
		return nil, domain.NewValidationError("MISSING_PASSPORT_NUMBER", "Passport number is required")
	}
	if in.DateOfBirth == "" {
		return nil, domain.NewValidationError("MISSING_DATE_OF_BIRTH", "Date of birth is required")
	}
	dob, ok := domain.ParseDate(in.DateOfBirth)
	if !ok {
		return nil, domain.NewValidationError("INVALID_DATE_FORMAT", "Invalid date format. Expected YYYY-MM-DD")
	}
	passport, ok := domain.NormalizePassportNumber(in.PassportNumber)
	if !ok {
		return nil, domain.NewValidationError("INVALID_PASSPORT_FORMAT", "Passport number must be alphanumeric")
	}

	return &domain.Passenger{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          domain.NormalizeEmail(in.Email),
		Phone:          phone,
		PassportNumber: passport,
		DateOfBirth:    dob,
	}, nil
}

func (s *PassengerService) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PassengerService) List(ctx context.Context, filter domain.PassengerFilter) ([]domain.Passenger, error) {
	filter.Limit = domain.PageLimit(filter.Limit, s.maxPageSize)
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

var _ PassengerUseCase = (*PassengerService)(nil)
