package gameconfig

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-word-puzzle/pkg/notifier"
	"github.com/AccelByte/extend-word-puzzle/pkg/trait"
)

// ValidateWiring validates that every enabled trait and notifier in the
// config has a registered instance. It catches unregistered factories and
// typos in ids or types.
func ValidateWiring(traitRegistry *trait.Registry, notifierRegistry *notifier.Registry, config *Config) error {
	var errors []string

	for _, tc := range config.Traits {
		if !tc.Enabled {
			continue
		}
		if traitRegistry.Get(tc.ID) == nil {
			errors = append(errors, fmt.Sprintf("trait '%s' (type=%s) is enabled in config but not registered", tc.ID, tc.Type))
		}
	}

	for _, nc := range config.Notifiers {
		if !nc.Enabled {
			continue
		}
		if notifierRegistry.Get(nc.ID) == nil {
			errors = append(errors, fmt.Sprintf("notifier '%s' (type=%s) is enabled in config but not registered", nc.ID, nc.Type))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("game wiring validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
