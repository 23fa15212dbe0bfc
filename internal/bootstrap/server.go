package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
)

const swaggerDocument = "flightbooking.swagger.json"

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
	healthConn *grpc.ClientConn
}

// Run starts the gRPC health server and the HTTP server (REST API, healthz
// gateway, swagger) and blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, log *logger.Logger, api http.Handler, healthSrv *health.Server) error {
	s, err := newServers(cfg, api, healthSrv)
	if err != nil {
		return err
	}
	defer s.healthConn.Close()

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info("servers started", "http", cfg.HTTP.Address, "grpc", cfg.GRPC.Address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		healthSrv.Shutdown()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.grpcServer.GracefulStop()
		return nil
	}
}

func newServers(cfg *config.Config, api http.Handler, healthSrv *health.Server) (*Servers, error) {
	grpcSrv := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcSrv, healthSrv)

	conn, err := grpc.NewClient(dialTarget(cfg.GRPC.Address), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial health service: %w", err)
	}

	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      newHandler(cfg.HTTP, api, grpc_health_v1.NewHealthClient(conn)),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSeconds) * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
		healthConn: conn,
	}, nil
}

// newHandler mounts the REST API at the root, the gateway's /healthz, and
// the OpenAPI document with its UI.
func newHandler(cfg config.HTTPConfig, api http.Handler, healthClient grpc_health_v1.HealthClient) http.Handler {
	gateway := runtime.NewServeMux(
		runtime.WithHealthzEndpoint(healthClient),
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONPb{
			MarshalOptions: protojson.MarshalOptions{
				UseProtoNames:   true,
				EmitUnpopulated: true,
			},
		}),
	)

	mux := http.NewServeMux()
	mux.Handle("/", api)
	mux.Handle("/healthz", gateway)

	if cfg.SwaggerDir != "" {
		fs := http.FileServer(http.Dir(cfg.SwaggerDir))
		mux.Handle("/swagger/", http.StripPrefix("/swagger/", fs))
		mux.Handle("/docs/", httpSwagger.Handler(httpSwagger.URL("/swagger/"+swaggerDocument)))
	}
	return mux
}

// dialTarget turns a listen address such as ":9090" into one a client can
// dial.
func dialTarget(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host != "" {
		return addr
	}
	return net.JoinHostPort("localhost", port)
}
