// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AccelByte/extend-word-puzzle/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// MetricsServer manages the Prometheus metrics HTTP server.
type MetricsServer struct {
	server   *http.Server
	registry *prometheus.Registry
	port     int
	endpoint string
}

// NewMetricsServer creates a new metrics server instance.
func NewMetricsServer(port int, endpoint string) *MetricsServer {
	return &MetricsServer{
		port:     port,
		endpoint: endpoint,
	}
}

// Setup configures the metrics server and registers collectors.
//
// ============================================================
// DEVELOPER: Register custom Prometheus metrics here
// ============================================================
// Go runtime and process metrics are exposed along with the
// game collectors from pkg/metrics. New game metrics should be
// defined in pkg/metrics and added to metrics.Collectors().
// ============================================================
func (m *MetricsServer) Setup() error {
	m.registry = prometheus.NewRegistry()

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.registry.MustRegister(metrics.Collectors()...)

	mux := http.NewServeMux()
	mux.Handle(m.endpoint, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	m.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", m.port),
		Handler: mux,
	}

	return nil
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *MetricsServer) Handler() http.Handler {
	return m.server.Handler
}

// Start begins serving metrics on the configured port.
func (m *MetricsServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("metrics server listening on port %d%s", m.port, m.endpoint)
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("metrics server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down metrics server...")
	if err := m.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("metrics server stopped")
	return nil
}
