package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FlightHandler struct {
	service  flights.FlightUseCase
	validate *validator.Validate
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service, validate: newValidator()}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

type flightSearchQuery struct {
	Search      string `form:"search"`
	Origin      string `form:"origin" validate:"omitempty,iata"`
	Destination string `form:"destination" validate:"omitempty,iata"`
	Date        string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

var flightQueryRules = fieldRules{
	"origin":      {Invalid: "INVALID_ORIGIN", Message: "Origin must be a 3-letter IATA airport code"},
	"destination": {Invalid: "INVALID_DESTINATION", Message: "Destination must be a 3-letter IATA airport code"},
	"date":        {Invalid: "INVALID_DATE", Message: "Date must be a valid date string (YYYY-MM-DD)"},
}

func (h *FlightHandler) list(c *gin.Context) {
	if id, ok, err := lookupID(c); ok {
		if err != nil {
			writeError(c, err)
			return
		}
		h.respondFlight(c, id)
		return
	}

	filter, err := h.filter(c)
	if err != nil {
		writeError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFlightPageResponse(page))
}

// filter reads the list query in the order its parameters are checked:
// pagination, origin, destination, date, passengers.
func (h *FlightHandler) filter(c *gin.Context) (domain.FlightFilter, error) {
	var filter domain.FlightFilter

	limit, offset, err := pagination(c)
	if err != nil {
		return filter, err
	}

	q := flightSearchQuery{
		Search:      strings.TrimSpace(c.Query("search")),
		Origin:      strings.ToUpper(strings.TrimSpace(c.Query("origin"))),
		Destination: strings.ToUpper(strings.TrimSpace(c.Query("destination"))),
		Date:        strings.TrimSpace(c.Query("date")),
	}
	if err := h.validate.Struct(q); err != nil {
		return filter, fieldError(err, flightQueryRules)
	}

	filter = domain.FlightFilter{
		Search:      q.Search,
		Origin:      q.Origin,
		Destination: q.Destination,
		Limit:       limit,
		Offset:      offset,
	}
	if q.Date != "" {
		day, ok := domain.ParseDate(q.Date)
		if !ok {
			return filter, domain.NewValidationError("INVALID_DATE", flightQueryRules["date"].Message)
		}
		filter.DepartureFrom, filter.DepartureTo = domain.UTCDay(day)
	}

	if raw := c.Query("passengers"); raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 1 {
			return filter, domain.NewValidationError("INVALID_PASSENGERS", "Passengers must be a positive integer")
		}
		filter.MinSeats = n
	}
	return filter, nil
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondFlight(c, id)
}

func (h *FlightHandler) respondFlight(c *gin.Context, id int64) {
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFlightResponse(*flight))
}
