// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPServer manages the game API HTTP server lifecycle.
type HTTPServer struct {
	server  *http.Server
	port    int
	handler http.Handler
}

// NewHTTPServer creates a new HTTP server for the given handler.
func NewHTTPServer(port int, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		port:    port,
		handler: handler,
	}
}

// Setup configures the underlying http.Server.
func (h *HTTPServer) Setup() error {
	if h.handler == nil {
		return fmt.Errorf("http handler is required")
	}

	h.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", h.port),
		Handler:           h.handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return nil
}

// Start begins serving the game API.
func (h *HTTPServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("http server listening on port %d", h.port)
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("http server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down http server...")
	if err := h.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("http server stopped")
	return nil
}
