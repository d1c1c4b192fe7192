// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-word-puzzle/pkg/common"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// TelemetryConfig configures tracing.
type TelemetryConfig struct {
	ServiceName    string
	Environment    string
	ZipkinEndpoint string
	Enabled        bool
	ID             int
}

// SetupTelemetry initializes OpenTelemetry tracer and propagators.
// Returns a shutdown function that should be called on application shutdown.
//
// ============================================================
// DEVELOPER: OpenTelemetry configuration
// ============================================================
// Spans are exported to zipkin at OTEL_EXPORTER_ZIPKIN_ENDPOINT.
// With OTEL_ENABLED=false spans are created but never sampled,
// so scopes and trace ids in logs keep working.
//
// Trace context is propagated using:
// - B3 (Zipkin) propagation
// - W3C TraceContext propagation
// - W3C Baggage propagation
// ============================================================
func SetupTelemetry(ctx context.Context, cfg TelemetryConfig) (func(context.Context) error, error) {
	endpoint := ""
	if cfg.Enabled {
		endpoint = cfg.ZipkinEndpoint
		if endpoint == "" {
			endpoint = common.DefaultZipkinEndpoint
		}
	}

	tracerProvider, err := common.NewTracerProvider(cfg.ServiceName, cfg.Environment, endpoint, int64(cfg.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	otel.SetTracerProvider(tracerProvider)
	logrus.Infof("set tracer provider: (name: %s environment: %s id: %d exporting: %t)",
		cfg.ServiceName, cfg.Environment, cfg.ID, endpoint != "")

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			b3.New(),                   // Zipkin B3 propagation
			propagation.TraceContext{}, // W3C Trace Context
			propagation.Baggage{},      // W3C Baggage
		),
	)
	logrus.Infof("set text map propagator")

	shutdown := func(ctx context.Context) error {
		logrus.Info("shutting down telemetry...")
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
		logrus.Info("telemetry stopped")
		return nil
	}

	return shutdown, nil
}
