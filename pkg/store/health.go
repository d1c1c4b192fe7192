// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthChecker provides storage health check functionality
type HealthChecker struct {
	kv KV
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(kv KV) *HealthChecker {
	return &HealthChecker{kv: kv}
}

// Check performs a storage health check
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.kv.Ping(ctx); err != nil {
		logrus.Errorf("storage health check failed: %v", err)
		return err
	}

	logrus.Debugf("storage health check passed")
	return nil
}

// IsHealthy returns true if storage is accessible
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}
