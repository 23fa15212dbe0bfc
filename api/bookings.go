package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/ticket"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type BookingHandler struct {
	service  booking.BookingUseCase
	validate *validator.Validate
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service, validate: newValidator()}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.GET("/:id/ticket", h.ticket)
}

type createBookingRequest struct {
	FlightID    int64  `json:"flightId" validate:"required"`
	PassengerID int64  `json:"passengerId" validate:"required"`
	SeatNumber  string `json:"seatNumber" validate:"required"`
	TotalPrice  *int64 `json:"totalPrice" validate:"required"`
	Status      string `json:"status"`
}

var createBookingRules = fieldRules{
	"flightId":    {Missing: "MISSING_FLIGHT_ID", Invalid: "INVALID_FLIGHT_ID", Message: "flightId must be a valid integer"},
	"passengerId": {Missing: "MISSING_PASSENGER_ID", Invalid: "INVALID_PASSENGER_ID", Message: "passengerId must be a valid integer"},
	"seatNumber":  {Missing: "MISSING_SEAT_NUMBER", Invalid: "INVALID_SEAT_NUMBER", Message: "seatNumber must be in format: digits followed by a letter (e.g., 12A)"},
	"totalPrice":  {Missing: "MISSING_TOTAL_PRICE", Invalid: "INVALID_TOTAL_PRICE", Message: "totalPrice must be a positive integer"},
	"status":      {Invalid: "INVALID_STATUS", Message: "status must be one of: pending, confirmed, cancelled"},
}

type updateBookingRequest struct {
	Status     *string `json:"status"`
	SeatNumber *string `json:"seatNumber"`
}

var updateBookingRules = fieldRules{
	"status":     {Invalid: "INVALID_STATUS", Message: "Invalid status. Must be one of: pending, confirmed, cancelled"},
	"seatNumber": {Invalid: "INVALID_SEAT_NUMBER", Message: "Invalid seat number format. Must be digits followed by a letter (e.g., 12A)"},
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := bindJSON(c, h.validate, &req, createBookingRules); err != nil {
		writeError(c, err)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		FlightID:    req.FlightID,
		PassengerID: req.PassengerID,
		SeatNumber:  req.SeatNumber,
		TotalPrice:  *req.TotalPrice,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBookingResponse(*b))
}

func (h *BookingHandler) list(c *gin.Context) {
	if id, ok, err := lookupID(c); ok {
		if err != nil {
			writeError(c, err)
			return
		}
		h.respondBooking(c, id)
		return
	}

	limit, offset, err := pagination(c)
	if err != nil {
		writeError(c, err)
		return
	}
	list, err := h.service.ListBookings(c.Request.Context(), domain.BookingFilter{
		Status:      strings.TrimSpace(c.Query("status")),
		PassengerID: optionalID(c, "passengerId"),
		FlightID:    optionalID(c, "flightId"),
		Search:      strings.TrimSpace(c.Query("search")),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, newBookingResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondBooking(c, id)
}

func (h *BookingHandler) respondBooking(c *gin.Context, id int64) {
	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(*b))
}

func (h *BookingHandler) update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var req updateBookingRequest
	if err := bindJSON(c, h.validate, &req, updateBookingRules); err != nil {
		writeError(c, err)
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), id, booking.UpdateBookingInput{
		Status:     req.Status,
		SeatNumber: req.SeatNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(*b))
}

func (h *BookingHandler) delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	b, err := h.service.DeleteBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleteBookingResponse{
		Message:   "Booking cancelled successfully",
		BookingID: b.ID,
	})
}

func (h *BookingHandler) ticket(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	details, pdf, err := h.service.Ticket(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", ticket.Filename(details.Booking.BookingReference)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
