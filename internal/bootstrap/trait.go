// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/gameconfig"
	"github.com/AccelByte/extend-word-puzzle/pkg/trait"
	traitBuiltin "github.com/AccelByte/extend-word-puzzle/pkg/trait/builtin"
	"github.com/sirupsen/logrus"
)

// InitTraitEvaluator creates a trait evaluator with conditions from the game config.
//
// ============================================================
// DEVELOPER: Register custom trait condition types here.
// ============================================================
// Trait conditions decide which traits a player unlocks when a
// puzzle is completed (e.g., early bird, speed demon).
//
// Steps to add a new trait:
// 1. Create your condition in pkg/trait/builtin/ (see examples)
// 2. Implement the Condition interface
// 3. Register the condition type in pkg/trait/builtin/init.go
// 4. Add the trait configuration to config/game.yaml
//
// When config/game.yaml lists no traits, every builtin trait
// is enabled with its default parameters.
// ============================================================
func InitTraitEvaluator(
	gameConfig *gameconfig.Config,
	now func() time.Time,
	loc *time.Location,
) (*trait.Evaluator, *trait.Registry, error) {
	traitBuiltin.RegisterBuiltinTraits()

	configs := gameConfig.Traits
	if len(configs) == 0 {
		logrus.Info("no traits configured, using builtin defaults")
		configs = traitBuiltin.DefaultConfigs()
	}

	registry := trait.NewRegistry()
	if err := trait.RegisterConditions(registry, configs); err != nil {
		return nil, nil, fmt.Errorf("failed to register traits: %w", err)
	}

	evaluator := trait.NewEvaluator(registry, now, loc)
	logrus.Infof("initialized trait evaluator with %d enabled traits", len(registry.GetEnabled()))

	return evaluator, registry, nil
}
