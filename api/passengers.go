package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/passengers"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PassengerHandler struct {
	service  passengers.PassengerUseCase
	validate *validator.Validate
}

func NewPassengerHandler(service passengers.PassengerUseCase) *PassengerHandler {
	return &PassengerHandler{service: service, validate: newValidator()}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
}

// createPassengerRequest only shapes the body; field rules and their order
// live in the passenger service.
type createPassengerRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	PassportNumber string `json:"passportNumber"`
	DateOfBirth    string `json:"dateOfBirth"`
}

// A non-string value is treated like an absent one.
var passengerBodyRules = fieldRules{
	"firstName":      {Invalid: "INVALID_FIRST_NAME", Message: "First name is required and must be at least 2 characters"},
	"lastName":       {Invalid: "INVALID_LAST_NAME", Message: "Last name is required and must be at least 2 characters"},
	"email":          {Invalid: "MISSING_EMAIL", Message: "Email is required"},
	"phone":          {Invalid: "MISSING_PHONE", Message: "Phone is required"},
	"passportNumber": {Invalid: "MISSING_PASSPORT_NUMBER", Message: "Passport number is required"},
	"dateOfBirth":    {Invalid: "MISSING_DATE_OF_BIRTH", Message: "Date of birth is required"},
}

func (h *PassengerHandler) create(c *gin.Context) {
	var req createPassengerRequest
	if err := bindJSON(c, h.validate, &req, passengerBodyRules); err != nil {
		writeError(c, err)
		return
	}

	passenger, err := h.service.Create(c.Request.Context(), passengers.CreatePassengerInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		PassportNumber: req.PassportNumber,
		DateOfBirth:    req.DateOfBirth,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPassengerResponse(*passenger))
}

func (h *PassengerHandler) list(c *gin.Context) {
	if id, ok, err := lookupID(c); ok {
		if err != nil {
			writeError(c, err)
			return
		}
		passenger, err := h.service.GetByID(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newPassengerResponse(*passenger))
		return
	}

	limit, offset, err := pagination(c)
	if err != nil {
		writeError(c, err)
		return
	}
	list, err := h.service.List(c.Request.Context(), domain.PassengerFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]passengerResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, newPassengerResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}
