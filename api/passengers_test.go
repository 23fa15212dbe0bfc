package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/passengers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPassengerUseCase struct {
	mock.Mock
}

func (m *MockPassengerUseCase) Create(ctx context.Context, input passengers.CreatePassengerInput) (*domain.Passenger, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerUseCase) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerUseCase) List(ctx context.Context, filter domain.PassengerFilter) ([]domain.Passenger, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func samplePassenger() domain.Passenger {
	return domain.Passenger{
		ID:             3,
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		Phone:          "+44 20 7946 0000",
		PassportNumber: "GB1234567",
		DateOfBirth:    time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestPassengerHandler_create(t *testing.T) {
	mockService := &MockPassengerUseCase{}
	handler := NewPassengerHandler(mockService)

	body := map[string]any{
		"firstName":      " Ada ",
		"lastName":       "Lovelace",
		"email":          "ADA@example.com",
		"phone":          "+44 20 7946 0000",
		"passportNumber": "gb1234567",
		"dateOfBirth":    "1990-05-15",
	}
	c, w := newTestContext(http.MethodPost, "/api/passengers", body)

	input := passengers.CreatePassengerInput{
		FirstName:      " Ada ",
		LastName:       "Lovelace",
		Email:          "ADA@example.com",
		Phone:          "+44 20 7946 0000",
		PassportNumber: "gb1234567",
		DateOfBirth:    "1990-05-15",
	}
	created := samplePassenger()
	mockService.On("Create", mock.Anything, input).Return(&created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp passengerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "1990-05-15", resp.DateOfBirth)
	assert.Equal(t, "GB1234567", resp.PassportNumber)
	mockService.AssertExpectations(t)
}

func TestPassengerHandler_create_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"numeric first name", `{"firstName":12,"lastName":"Lovelace"}`, http.StatusBadRequest, "INVALID_FIRST_NAME"},
		{"boolean email", `{"firstName":"Ada","lastName":"Lovelace","email":true}`, http.StatusBadRequest, "MISSING_EMAIL"},
		{"unknown field", `{"firstName":"Ada","nickname":"A"}`, http.StatusBadRequest, "INVALID_REQUEST_BODY"},
		{"malformed json", `{"firstName":`, http.StatusBadRequest, "INVALID_REQUEST_BODY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockPassengerUseCase{}
			handler := NewPassengerHandler(mockService)
			c, w := newTestContext(http.MethodPost, "/api/passengers", tt.body)

			handler.create(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, readError(t, w).Code)
			mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPassengerHandler_create_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.NewValidationError("INVALID_EMAIL_FORMAT", "Invalid email format"), http.StatusBadRequest, "INVALID_EMAIL_FORMAT"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{"duplicate passport", domain.ErrDuplicatePassport, http.StatusConflict, "DUPLICATE_PASSPORT_NUMBER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockPassengerUseCase{}
			handler := NewPassengerHandler(mockService)
			c, w := newTestContext(http.MethodPost, "/api/passengers", map[string]string{"email": "x"})
			mockService.On("Create", mock.Anything, passengers.CreatePassengerInput{Email: "x"}).Return(nil, tt.err)

			handler.create(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, readError(t, w).Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestPassengerHandler_list(t *testing.T) {
	mockService := &MockPassengerUseCase{}
	handler := NewPassengerHandler(mockService)

	c, w := newTestContext(http.MethodGet, "/api/passengers?search=ada&limit=20&offset=40", nil)
	mockService.On("List", mock.Anything, domain.PassengerFilter{Search: "ada", Limit: 20, Offset: 40}).
		Return([]domain.Passenger{samplePassenger()}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []passengerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "ada@example.com", resp[0].Email)
	mockService.AssertExpectations(t)
}

func TestPassengerHandler_list_Empty(t *testing.T) {
	mockService := &MockPassengerUseCase{}
	handler := NewPassengerHandler(mockService)

	c, w := newTestContext(http.MethodGet, "/api/passengers", nil)
	mockService.On("List", mock.Anything, domain.PassengerFilter{}).Return([]domain.Passenger{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPassengerHandler_list_ByQueryID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockService := &MockPassengerUseCase{}
		handler := NewPassengerHandler(mockService)
		p := samplePassenger()
		c, w := newTestContext(http.MethodGet, "/api/passengers?id=3", nil)
		mockService.On("GetByID", mock.Anything, int64(3)).Return(&p, nil)

		handler.list(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"lastName":"Lovelace"`)
	})

	t.Run("missing", func(t *testing.T) {
		mockService := &MockPassengerUseCase{}
		handler := NewPassengerHandler(mockService)
		c, w := newTestContext(http.MethodGet, "/api/passengers?id=404", nil)
		mockService.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrPassengerNotFound)

		handler.list(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "PASSENGER_NOT_FOUND", readError(t, w).Code)
	})

	t.Run("bad pagination", func(t *testing.T) {
		handler := NewPassengerHandler(&MockPassengerUseCase{})
		c, w := newTestContext(http.MethodGet, "/api/passengers?limit=-3", nil)

		handler.list(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_PAGINATION", readError(t, w).Code)
	})
}
