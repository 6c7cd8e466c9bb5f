package healthgrpc

import (
	"context"
	"log/slog"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "findit.gateway"

type Checker interface {
	Check(ctx context.Context) map[string]error
}

// Server exposes the gateway's readiness over the standard gRPC health
// protocol for orchestrators that probe over gRPC.
type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	checker  Checker
	interval time.Duration
	logger   *slog.Logger
}

func NewServer(checker Checker, interval time.Duration, logger *slog.Logger) *Server {
	srv := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	return &Server{
		grpc:     srv,
		health:   hs,
		checker:  checker,
		interval: interval,
		logger:   logger,
	}
}

// Probe runs the readiness checks once and publishes the result.
func (s *Server) Probe(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if failed := s.checker.Check(ctx); len(failed) > 0 {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		for name, err := range failed {
			s.logger.Warn("readiness check failed", slog.String("check", name), slog.Any("error", err))
		}
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve blocks until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	s.Probe(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				s.Probe(ctx)
			}
		}
	})

	g.Go(func() error {
		s.logger.Info("grpc health server listening", slog.String("addr", lis.Addr().String()))
		return s.grpc.Serve(lis)
	})

	g.Go(func() error {
		<-ctx.Done()
		s.health.Shutdown()
		s.grpc.GracefulStop()
		return nil
	})

	return g.Wait()
}
