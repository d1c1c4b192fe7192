// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-word-puzzle/pkg/gameconfig"
	"github.com/AccelByte/extend-word-puzzle/pkg/notifier"
	notifierBuiltin "github.com/AccelByte/extend-word-puzzle/pkg/notifier/builtin"
	"github.com/sirupsen/logrus"
)

// InitNotifierDispatcher creates a dispatcher over the notifiers in the game config.
//
// ============================================================
// DEVELOPER: Register custom notifier types here.
// ============================================================
// Notifiers forward game events (mission created, completed,
// claimed, traits unlocked) to external services.
//
// Steps to add a new notifier:
// 1. Create your notifier in pkg/notifier/builtin/ (see examples)
// 2. Implement the Notifier interface
// 3. Register the notifier type in pkg/notifier/builtin/init.go
// 4. Add notifier configuration to config/game.yaml
//
// IMPORTANT: Notifiers may need external service dependencies
// (e.g., the AccelByte stat incrementer). Pass dependencies
// through the Dependencies struct.
// ============================================================
func InitNotifierDispatcher(
	gameConfig *gameconfig.Config,
	deps *notifierBuiltin.Dependencies,
) (*notifier.Dispatcher, *notifier.Registry, error) {
	notifierBuiltin.RegisterNotifiers(deps)

	registry := notifier.NewRegistry()
	if err := notifier.RegisterNotifiers(registry, gameConfig.Notifiers); err != nil {
		return nil, nil, fmt.Errorf("failed to register notifiers: %w", err)
	}

	dispatcher := notifier.NewDispatcher(registry, notifier.DefaultCallTimeout)
	logrus.Infof("initialized notifier dispatcher with %d notifiers", registry.Count())

	return dispatcher, registry, nil
}
