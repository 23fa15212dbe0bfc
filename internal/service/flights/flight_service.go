package flights

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) (*domain.FlightPage, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	AuditInventory(ctx context.Context) ([]domain.InventoryDrift, error)
}

type FlightCache interface {
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	SetFlight(ctx context.Context, flight *domain.Flight) error
	GetFlightPage(ctx context.Context, filter domain.FlightFilter) (*domain.FlightPage, error)
	SetFlightPage(ctx context.Context, filter domain.FlightFilter, page *domain.FlightPage) error
}

type FlightService struct {
	repo        repository.FlightRepository
	cache       FlightCache
	log         *logger.Logger
	maxPageSize int
}

// NewFlightService wires the flight read path. cache may be nil.
func NewFlightService(repo repository.FlightRepository, cache FlightCache, log *logger.Logger, maxPageSize int) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log, maxPageSize: maxPageSize}
}

func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) (*domain.FlightPage, error) {
	filter.Limit = domain.PageLimit(filter.Limit, s.maxPageSize)
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if s.cache != nil {
		cached, err := s.cache.GetFlightPage(ctx, filter)
		if err != nil {
			s.log.WarnContext(ctx, "flight page cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := &domain.FlightPage{Flights: flights, Total: total, Limit: filter.Limit, Offset: filter.Offset}

	if s.cache != nil {
		if err := s.cache.SetFlightPage(ctx, filter, page); err != nil {
			s.log.WarnContext(ctx, "flight page cache write failed", "error", err)
		}
	}
	return page, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlight(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlight(ctx, flight); err != nil {
			s.log.WarnContext(ctx, "flight cache write failed", "flight_id", id, "error", err)
		}
	}
	return flight, nil
}

// AuditInventory reports flights whose seat counter has drifted from their
// bookings. It only detects; nothing is repaired.
func (s *FlightService) AuditInventory(ctx context.Context) ([]domain.InventoryDrift, error) {
	drift, err := s.repo.InventoryDrift(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range drift {
		s.log.WarnContext(ctx, "seat inventory drift",
			"flight_id", d.FlightID,
			"flight_number", d.FlightNumber,
			"available_seats", d.AvailableSeats,
			"expected_seats", d.ExpectedSeats,
		)
	}
	return drift, nil
}

var _ FlightUseCase = (*FlightService)(nil)
