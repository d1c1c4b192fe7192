package gameconfig

import (
	"strings"
	"testing"

	"github.com/AccelByte/extend-word-puzzle/pkg/notifier"
	notifierbuiltin "github.com/AccelByte/extend-word-puzzle/pkg/notifier/builtin"
	"github.com/AccelByte/extend-word-puzzle/pkg/trait"
	traitbuiltin "github.com/AccelByte/extend-word-puzzle/pkg/trait/builtin"
)

func TestValidateWiring_AllRegistered(t *testing.T) {
	traitRegistry := trait.NewRegistry()
	notifierRegistry := notifier.NewRegistry()

	_ = traitRegistry.Register(traitbuiltin.NewSpeedDemon(trait.Config{ID: "speed", Type: traitbuiltin.SpeedDemonID, Enabled: true}))
	_ = notifierRegistry.Register(notifierbuiltin.NewLogNotifier(notifier.Config{ID: "log", Type: notifierbuiltin.LogNotifierID, Enabled: true}))

	config := &Config{
		Traits: []trait.Config{
			{ID: "speed", Type: traitbuiltin.SpeedDemonID, Enabled: true},
			{ID: "owl", Type: traitbuiltin.NightOwlID, Enabled: false},
		},
		Notifiers: []notifier.Config{
			{ID: "log", Type: notifierbuiltin.LogNotifierID, Enabled: true},
		},
	}

	if err := ValidateWiring(traitRegistry, notifierRegistry, config); err != nil {
		t.Errorf("expected wiring to be valid, got %v", err)
	}
}

func TestValidateWiring_Missing(t *testing.T) {
	config := &Config{
		Traits: []trait.Config{
			{ID: "speed", Type: traitbuiltin.SpeedDemonID, Enabled: true},
		},
		Notifiers: []notifier.Config{
			{ID: "rewards", Type: notifierbuiltin.RewardsAPINotifierID, Enabled: true},
		},
	}

	err := ValidateWiring(trait.NewRegistry(), notifier.NewRegistry(), config)
	if err == nil {
		t.Fatal("expected wiring error")
	}
	for _, want := range []string{"trait 'speed'", "notifier 'rewards'"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got %v", want, err)
		}
	}
}
