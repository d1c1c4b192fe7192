package gameconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/mission"
)

const testConfig = `
traits:
  - id: early_bird
    type: early_bird
    enabled: true
    priority: 50
    parameters:
      window_minutes: 15
      xp_boost: 1.25

  - id: night_owl
    type: night_owl
    enabled: false

notifiers:
  - id: rewards
    type: rewards_api
    enabled: true
    retry:
      max_attempts: 3
      delay: 200ms
      backoff: exponential
    parameters:
      base_url: ${TEST_REWARDS_URL:http://localhost:3001/api}
      api_key: ${TEST_REWARDS_KEY}

missions:
  hourly_xp: 150
  streak_length: 3
`

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "game.yaml")

	if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TEST_REWARDS_KEY", "secret")

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(config.Traits) != 2 {
		t.Fatalf("expected 2 traits, got %d", len(config.Traits))
	}
	early := config.Traits[0]
	if early.ID != "early_bird" || !early.Enabled || early.Priority != 50 {
		t.Errorf("unexpected trait config: %+v", early)
	}
	if got := early.GetInt("window_minutes", 0); got != 15 {
		t.Errorf("expected window_minutes 15, got %d", got)
	}
	if got := early.GetFloat("xp_boost", 0); got != 1.25 {
		t.Errorf("expected xp_boost 1.25, got %f", got)
	}
	if config.Traits[1].Enabled {
		t.Error("expected night_owl to be disabled")
	}

	if len(config.Notifiers) != 1 {
		t.Fatalf("expected 1 notifier, got %d", len(config.Notifiers))
	}
	rewards := config.Notifiers[0]
	if rewards.Retry == nil || rewards.Retry.MaxAttempts != 3 || rewards.Retry.Delay != 200*time.Millisecond {
		t.Errorf("unexpected retry config: %+v", rewards.Retry)
	}
	if got := rewards.GetParameterString("base_url", ""); got != "http://localhost:3001/api" {
		t.Errorf("expected default base_url, got %q", got)
	}
	if got := rewards.GetParameterString("api_key", ""); got != "secret" {
		t.Errorf("expected api_key from env, got %q", got)
	}

	if config.Missions.HourlyXP != 150 || config.Missions.StreakLength != 3 {
		t.Errorf("unexpected missions config: %+v", config.Missions)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "empty trait id",
			yaml:    "traits:\n  - type: early_bird\n",
			wantErr: "trait with empty ID",
		},
		{
			name:    "duplicate trait id",
			yaml:    "traits:\n  - {id: a, type: early_bird}\n  - {id: a, type: night_owl}\n",
			wantErr: "duplicate trait ID: a",
		},
		{
			name:    "empty notifier type",
			yaml:    "notifiers:\n  - id: n\n",
			wantErr: "notifier n has empty type",
		},
		{
			name:    "unknown backoff",
			yaml:    "notifiers:\n  - id: n\n    type: log\n    retry: {max_attempts: 2, backoff: linear}\n",
			wantErr: "unknown retry backoff",
		},
		{
			name:    "negative mission value",
			yaml:    "missions:\n  hourly_xp: -1\n",
			wantErr: "must not be negative",
		},
		{
			name: "valid",
			yaml: "traits:\n  - {id: a, type: early_bird, enabled: true}\nnotifiers:\n  - {id: n, type: log, enabled: true}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMissionsConfig_Definitions(t *testing.T) {
	defaults := MissionsConfig{}.Definitions()
	if len(defaults) != len(mission.DefaultDefinitions()) {
		t.Fatalf("expected %d definitions, got %d", len(mission.DefaultDefinitions()), len(defaults))
	}

	defs := MissionsConfig{HourlyXP: 150, StreakLength: 3, StreakXP: 900}.Definitions()
	for _, d := range defs {
		switch d.Type {
		case mission.TypeHourlyPuzzle:
			if xp, ok := d.Rewards[0].(mission.XPReward); !ok || xp.Amount != 150 {
				t.Errorf("expected hourly reward 150, got %+v", d.Rewards)
			}
		case mission.TypeStreakChallenge:
			if d.Requirement.Target() != 3 {
				t.Errorf("expected streak target 3, got %d", d.Requirement.Target())
			}
			if len(d.Rewards) != 2 {
				t.Fatalf("expected trait and xp rewards, got %+v", d.Rewards)
			}
			if xp, ok := d.Rewards[1].(mission.XPReward); !ok || xp.Amount != 900 {
				t.Errorf("expected streak reward 900, got %+v", d.Rewards[1])
			}
		}
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("GAME_TEST_SET", "value")

	tests := []struct {
		input    string
		expected string
	}{
		{input: "${GAME_TEST_SET}", expected: "value"},
		{input: "${GAME_TEST_SET:fallback}", expected: "value"},
		{input: "${GAME_TEST_UNSET:fallback}", expected: "fallback"},
		{input: "${GAME_TEST_UNSET}", expected: ""},
		{input: "url: ${GAME_TEST_UNSET:http://host:1/x}", expected: "url: http://host:1/x"},
	}

	for _, tt := range tests {
		if got := expandEnvVars(tt.input); got != tt.expected {
			t.Errorf("expandEnvVars(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
