package health_api

import (
	"context"
	"time"

	"github.com/Domenick1991/flightbooking/internal/logger"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service reported alongside the overall
// ("") status.
const ServiceName = "flightbooking"

// Pinger is a dependency the service cannot serve without.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher drives the gRPC health status from periodic dependency pings.
type Watcher struct {
	server   *health.Server
	checks   map[string]Pinger
	interval time.Duration
	timeout  time.Duration
	log      *logger.Logger
}

func NewWatcher(server *health.Server, interval time.Duration, log *logger.Logger, checks map[string]Pinger) *Watcher {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Watcher{
		server:   server,
		checks:   checks,
		interval: interval,
		timeout:  interval / 2,
		log:      log,
	}
}

// Check pings every dependency once and publishes the result. It reports
// whether all of them answered.
func (w *Watcher) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	healthy := true
	for name, dep := range w.checks {
		if err := dep.Ping(ctx); err != nil {
			healthy = false
			w.log.WarnContext(ctx, "dependency unhealthy", "dependency", name, "error", err)
		}
	}

	status := grpc_health_v1.HealthCheckResponse_SERVING
	if !healthy {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	w.server.SetServingStatus("", status)
	w.server.SetServingStatus(ServiceName, status)
	return healthy
}

// Run checks immediately and then on every tick until ctx is done, when
// the server is switched to NOT_SERVING for good.
func (w *Watcher) Run(ctx context.Context) {
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.server.Shutdown()
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}
