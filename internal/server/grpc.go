// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/common"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// DefaultHealthInterval is how often the gRPC health status is refreshed.
const DefaultHealthInterval = 10 * time.Second

// HealthChecker reports whether the service dependencies are reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// GRPCServer manages the gRPC server lifecycle.
// It exposes the standard health service, whose status follows the store health.
type GRPCServer struct {
	server       *grpc.Server
	healthServer *health.Server
	checker      HealthChecker
	port         int
	interval     time.Duration
	cancel       context.CancelFunc
}

// NewGRPCServer creates a new gRPC server instance.
func NewGRPCServer(port int, checker HealthChecker) *GRPCServer {
	return &GRPCServer{
		port:     port,
		checker:  checker,
		interval: DefaultHealthInterval,
	}
}

// Setup configures the gRPC server with interceptors and registers health and reflection.
func (s *GRPCServer) Setup() error {
	unaryInterceptors := []grpc.UnaryServerInterceptor{
		logging.UnaryServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}
	streamInterceptors := []grpc.StreamServerInterceptor{
		logging.StreamServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}

	// Create server with OpenTelemetry instrumentation
	s.server = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(unaryInterceptors...),
		grpc.ChainStreamInterceptor(streamInterceptors...),
	)

	// ============================================================
	// Enable gRPC server features
	// ============================================================
	// - Reflection: allows tools like grpcurl to inspect services
	// - Health check: for Kubernetes liveness/readiness probes
	// ============================================================
	s.healthServer = health.NewServer()
	reflection.Register(s.server)
	grpc_health_v1.RegisterHealthServer(s.server, s.healthServer)

	logrus.Infof("gRPC reflection and health check enabled")

	return nil
}

// Start begins listening and serving gRPC requests.
func (s *GRPCServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.refreshHealth(watchCtx)
	go s.watchHealth(watchCtx)

	go func() {
		logrus.Infof("gRPC server listening on port %d", s.port)
		if err := s.server.Serve(lis); err != nil {
			logrus.Fatalf("gRPC server failed: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the gRPC server.
func (s *GRPCServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down gRPC server...")
	if s.cancel != nil {
		s.cancel()
	}
	s.healthServer.Shutdown()
	s.server.GracefulStop()
	logrus.Info("gRPC server stopped")
	return nil
}

func (s *GRPCServer) watchHealth(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshHealth(ctx)
		}
	}
}

// refreshHealth sets the overall serving status from the health checker.
func (s *GRPCServer) refreshHealth(ctx context.Context) {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if s.checker != nil {
		if err := s.checker.Check(ctx); err != nil {
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
	}
	s.healthServer.SetServingStatus("", status)
}
