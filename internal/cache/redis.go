package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache caches flight lookups. List pages are keyed by a generation
// counter, so bumping the counter drops every cached page at once.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	var f domain.Flight
	ok, err := c.get(ctx, flightKey(id), &f)
	if err != nil || !ok {
		return nil, err
	}
	return &f, nil
}

func (c *RedisCache) SetFlight(ctx context.Context, flight *domain.Flight) error {
	return c.set(ctx, flightKey(flight.ID), flight)
}

func (c *RedisCache) GetFlightPage(ctx context.Context, filter domain.FlightFilter) (*domain.FlightPage, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, err
	}
	var page domain.FlightPage
	ok, err := c.get(ctx, flightPageKey(gen, filter), &page)
	if err != nil || !ok {
		return nil, err
	}
	return &page, nil
}

func (c *RedisCache) SetFlightPage(ctx context.Context, filter domain.FlightFilter, page *domain.FlightPage) error {
	gen, err := c.generation(ctx)
	if err != nil {
		return err
	}
	return c.set(ctx, flightPageKey(gen, filter), page)
}

// InvalidateFlight drops the cached flight and every cached list page.
func (c *RedisCache) InvalidateFlight(ctx context.Context, id int64) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, flightKey(id))
		pipe.Incr(ctx, generationKey())
		return nil
	})
	return err
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.flightsTTL).Err()
}

func flightKey(id int64) string {
	return fmt.Sprintf("cache:flight:%d", id)
}

func generationKey() string {
	return "cache:flights:gen"
}

func flightPageKey(gen int64, f domain.FlightFilter) string {
	return fmt.Sprintf("cache:flights:%d:q=%s:o=%s:d=%s:from=%d:to=%d:seats=%d:limit=%d:offset=%d",
		gen, url.QueryEscape(f.Search), f.Origin, f.Destination,
		unixOrZero(f.DepartureFrom), unixOrZero(f.DepartureTo), f.MinSeats, f.Limit, f.Offset)
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
