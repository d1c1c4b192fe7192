package builtin

import (
	"fmt"
	"math"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/trait"
)

// RegisterBuiltinTraits registers all built-in trait condition types with the factory.
func RegisterBuiltinTraits() {
	trait.RegisterConditionType(EarlyBirdID, func(config trait.Config) (trait.Condition, error) {
		return NewEarlyBird(config), nil
	})

	trait.RegisterConditionType(NightOwlID, func(config trait.Config) (trait.Condition, error) {
		return NewNightOwl(config), nil
	})

	trait.RegisterConditionType(QuestHunterID, func(config trait.Config) (trait.Condition, error) {
		return NewQuestHunter(config), nil
	})

	trait.RegisterConditionType(SpeedDemonID, func(config trait.Config) (trait.Condition, error) {
		return NewSpeedDemon(config), nil
	})

	trait.RegisterConditionType(PerfectionistID, func(config trait.Config) (trait.Condition, error) {
		return NewPerfectionist(config), nil
	})
}

// DefaultConfigs returns the enabled configuration of every built-in trait.
// Used when the game configuration does not list any traits.
func DefaultConfigs() []trait.Config {
	return []trait.Config{
		{ID: EarlyBirdID, Type: EarlyBirdID, Enabled: true, Priority: 50},
		{ID: NightOwlID, Type: NightOwlID, Enabled: true, Priority: 40},
		{ID: QuestHunterID, Type: QuestHunterID, Enabled: true, Priority: 30},
		{ID: SpeedDemonID, Type: SpeedDemonID, Enabled: true, Priority: 20},
		{ID: PerfectionistID, Type: PerfectionistID, Enabled: true, Priority: 10},
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func percentDesc(factor float64, what string) string {
	return fmt.Sprintf("%d%% %s", int(math.Round((factor-1)*100)), what)
}

func minutesDesc(minutes int, what string) string {
	return fmt.Sprintf("%d min %s", minutes, what)
}
