package cache

import (
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, 30*time.Second)
	assert.NotNil(t, c)
	assert.Equal(t, 30*time.Second, c.flightsTTL)
	assert.NoError(t, c.Close())
}

func TestFlightKey(t *testing.T) {
	assert.Equal(t, "cache:flight:42", flightKey(42))
}

func TestFlightPageKey(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	base := domain.FlightFilter{Origin: "JFK", Destination: "LHR", DepartureFrom: day, DepartureTo: day.Add(24 * time.Hour), Limit: 10}

	assert.Equal(t,
		"cache:flights:3:q=:o=JFK:d=LHR:from=1717200000:to=1717286400:seats=0:limit=10:offset=0",
		flightPageKey(3, base))

	t.Run("generation changes the key", func(t *testing.T) {
		assert.NotEqual(t, flightPageKey(1, base), flightPageKey(2, base))
	})

	t.Run("search is escaped", func(t *testing.T) {
		f := base
		f.Search = "a:b c"
		assert.Contains(t, flightPageKey(1, f), "q=a%3Ab+c:")
	})

	t.Run("every filter field participates", func(t *testing.T) {
		f := base
		f.MinSeats = 2
		assert.NotEqual(t, flightPageKey(1, base), flightPageKey(1, f))
		f = base
		f.Offset = 10
		assert.NotEqual(t, flightPageKey(1, base), flightPageKey(1, f))
	})
}
