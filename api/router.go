package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/passengers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine serving /api.
func NewRouter(
	cfg config.HTTPConfig,
	log *logger.Logger,
	flightSvc flights.FlightUseCase,
	passengerSvc passengers.PassengerUseCase,
	bookingSvc booking.BookingUseCase,
) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(log), gin.Recovery())
	engine.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Route not found", Code: "NOT_FOUND"})
	})

	api := engine.Group("/api")
	NewFlightHandler(flightSvc).Register(api.Group("/flights"))
	NewPassengerHandler(passengerSvc).Register(api.Group("/passengers"))
	NewBookingHandler(bookingSvc).Register(api.Group("/bookings"))

	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
