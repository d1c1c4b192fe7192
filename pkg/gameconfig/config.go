package gameconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/AccelByte/extend-word-puzzle/pkg/mission"
	"github.com/AccelByte/extend-word-puzzle/pkg/notifier"
	"github.com/AccelByte/extend-word-puzzle/pkg/trait"
	"gopkg.in/yaml.v3"
)

// Config represents the complete game configuration.
type Config struct {
	Traits    []trait.Config    `yaml:"traits"`
	Notifiers []notifier.Config `yaml:"notifiers"`
	Missions  MissionsConfig    `yaml:"missions"`
}

// MissionsConfig tunes the built-in missions. Zero values keep the defaults.
type MissionsConfig struct {
	HourlyXP     int `yaml:"hourly_xp"`
	StreakLength int `yaml:"streak_length"`
	StreakXP     int `yaml:"streak_xp"`
}

// LoadConfig loads game configuration from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses and validates game configuration from YAML.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration for common errors.
func (c *Config) Validate() error {
	traitIDs := make(map[string]bool)
	for _, t := range c.Traits {
		if t.ID == "" {
			return fmt.Errorf("trait with empty ID found")
		}
		if traitIDs[t.ID] {
			return fmt.Errorf("duplicate trait ID: %s", t.ID)
		}
		traitIDs[t.ID] = true

		if t.Type == "" {
			return fmt.Errorf("trait %s has empty type", t.ID)
		}
	}

	notifierIDs := make(map[string]bool)
	for _, n := range c.Notifiers {
		if n.ID == "" {
			return fmt.Errorf("notifier with empty ID found")
		}
		if notifierIDs[n.ID] {
			return fmt.Errorf("duplicate notifier ID: %s", n.ID)
		}
		notifierIDs[n.ID] = true

		if n.Type == "" {
			return fmt.Errorf("notifier %s has empty type", n.ID)
		}
		if err := validateRetry(n.ID, n.Retry); err != nil {
			return err
		}
	}

	m := c.Missions
	if m.HourlyXP < 0 || m.StreakLength < 0 || m.StreakXP < 0 {
		return fmt.Errorf("mission values must not be negative")
	}

	return nil
}

func validateRetry(notifierID string, retry *notifier.RetryConfig) error {
	if retry == nil {
		return nil
	}
	if retry.MaxAttempts < 0 {
		return fmt.Errorf("notifier %s has negative retry max_attempts", notifierID)
	}
	if retry.Delay < 0 {
		return fmt.Errorf("notifier %s has negative retry delay", notifierID)
	}
	switch retry.Backoff {
	case "", "constant", "exponential":
		return nil
	default:
		return fmt.Errorf("notifier %s has unknown retry backoff: %s", notifierID, retry.Backoff)
	}
}

// Definitions returns the mission definitions with the configured overrides applied.
func (m MissionsConfig) Definitions() []mission.Definition {
	defs := mission.DefaultDefinitions()
	for i := range defs {
		switch defs[i].Type {
		case mission.TypeHourlyPuzzle:
			if m.HourlyXP > 0 {
				defs[i].Rewards = []mission.Reward{mission.XPReward{Amount: m.HourlyXP}}
			}
		case mission.TypeStreakChallenge:
			if m.StreakLength > 0 {
				defs[i].Requirement = mission.MaintainStreak{Length: m.StreakLength}
				defs[i].Description = fmt.Sprintf("Solve %d hourly puzzles in a row", m.StreakLength)
			}
			if m.StreakXP > 0 {
				defs[i].Rewards = []mission.Reward{
					mission.TraitReward{Trait: mission.StreakMasterTrait},
					mission.XPReward{Amount: m.StreakXP},
				}
			}
		}
	}
	return defs
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
