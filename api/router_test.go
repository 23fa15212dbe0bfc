package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(f *MockFlightUseCase, p *MockPassengerUseCase, b *MockBookingUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(config.HTTPConfig{AllowedOrigins: []string{"*"}}, logger.Nop(), f, p, b)
}

func TestRouter_Routes(t *testing.T) {
	flightsMock := &MockFlightUseCase{}
	bookingsMock := &MockBookingUseCase{}
	router := newTestRouter(flightsMock, &MockPassengerUseCase{}, bookingsMock)

	flight := sampleFlight()
	flightsMock.On("GetByID", mock.Anything, int64(7)).Return(&flight, nil)
	bookingsMock.On("DeleteBooking", mock.Anything, int64(5)).Return(nil, domain.ErrBookingNotFound)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/flights/7", http.StatusOK},
		{http.MethodGet, "/api/flights/seven", http.StatusBadRequest},
		{http.MethodDelete, "/api/bookings/5", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.status, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestRouter_RequestID(t *testing.T) {
	flightsMock := &MockFlightUseCase{}
	router := newTestRouter(flightsMock, &MockPassengerUseCase{}, &MockBookingUseCase{})
	flight := sampleFlight()
	flightsMock.On("GetByID", mock.Anything, int64(7)).Return(&flight, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flights/7", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/flights/7", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestRouter_RequestIDReachesService(t *testing.T) {
	flightsMock := &MockFlightUseCase{}
	router := newTestRouter(flightsMock, &MockPassengerUseCase{}, &MockBookingUseCase{})
	flight := sampleFlight()
	carriesID := mock.MatchedBy(func(ctx context.Context) bool {
		return logger.RequestIDFromContext(ctx) == "req-456"
	})
	flightsMock.On("GetByID", carriesID, int64(7)).Return(&flight, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/flights/7", nil)
	req.Header.Set("X-Request-ID", "req-456")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	flightsMock.AssertExpectations(t)
}

func TestCorsConfig(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)

	cfg := corsConfig([]string{"https://app.example.com"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowOrigins)
}
