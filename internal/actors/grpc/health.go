package grpc

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-checked service name of the backend.
const ServiceName = "lavc.v1.Backend"

// Pinger checks a dependency. It is implemented by database clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthServiceArgs are the mandatory args to instantiate the HealthService.
type HealthServiceArgs struct {
	// Dependencies are pinged on every check. The service is SERVING only when all of them answer.
	Dependencies map[string]Pinger
}

// HealthServiceOptArgs are the optional args of the HealthService.
type HealthServiceOptArgs = func(*HealthService)

// WithInterval overrides the interval between two checks.
func WithInterval(interval time.Duration) HealthServiceOptArgs {
	return func(h *HealthService) {
		h.interval = interval
	}
}

// NewHealthService creates a new HealthService. The service starts NOT_SERVING until the first check.
func NewHealthService(args HealthServiceArgs, optArgs ...HealthServiceOptArgs) *HealthService {
	h := &HealthService{
		server:       health.NewServer(),
		dependencies: args.Dependencies,
		interval:     10 * time.Second,
	}
	for _, opt := range optArgs {
		opt(h)
	}
	h.server.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	h.server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// HealthService implements the standard gRPC health protocol on top of dependency pings.
type HealthService struct {
	server       *health.Server
	dependencies map[string]Pinger
	interval     time.Duration
}

// Register registers the health and reflection services on s.
func (h *HealthService) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.server)
	reflection.Register(s)
}

// Check pings every dependency and updates the serving status accordingly.
func (h *HealthService) Check(ctx context.Context) error {
	var errs []error
	for name, dep := range h.dependencies {
		pingCtx, cancel := context.WithTimeout(ctx, h.interval)
		err := dep.Ping(pingCtx)
		cancel()
		if err != nil {
			log.WithError(err).WithField("dependency", name).Warn("health check failed")
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)
	status := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus(ServiceName, status)
	h.server.SetServingStatus("", status)
	return err
}

// Run checks the dependencies periodically until ctx is cancelled. On return every service is marked
// NOT_SERVING.
func (h *HealthService) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		_ = h.Check(ctx)
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
		}
	}
}

// Status returns the current serving status of the backend.
func (h *HealthService) Status(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	resp, err := h.server.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN
	}
	return resp.GetStatus()
}
