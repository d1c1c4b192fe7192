package notifier

import "time"

// Config is the base configuration for all notifiers.
// This is typically loaded from the game YAML configuration.
type Config struct {
	ID         string                 `yaml:"id" json:"id"`
	Name       string                 `yaml:"name" json:"name"`
	Type       string                 `yaml:"type" json:"type"` // e.g., "rewards_api"
	Enabled    bool                   `yaml:"enabled" json:"enabled"`
	Retry      *RetryConfig           `yaml:"retry,omitempty" json:"retry,omitempty"`
	Parameters map[string]interface{} `yaml:"parameters" json:"parameters"`
}

// RetryConfig defines retry behavior for failed notifier calls.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	Delay       time.Duration `yaml:"delay" json:"delay"`
	Backoff     string        `yaml:"backoff" json:"backoff"` // "constant", "exponential"
}

// GetParameterInt retrieves an integer parameter with a default.
func (c *Config) GetParameterInt(key string, defaultValue int) int {
	switch v := c.Parameters[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return defaultValue
}

// GetParameterString retrieves a string parameter with a default.
func (c *Config) GetParameterString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// GetParameterBool retrieves a boolean parameter with a default.
func (c *Config) GetParameterBool(key string, defaultValue bool) bool {
	if val, ok := c.Parameters[key]; ok {
		if boolVal, ok := val.(bool); ok {
			return boolVal
		}
	}
	return defaultValue
}

// GetParameterDuration retrieves a duration parameter such as "5s" with a default.
func (c *Config) GetParameterDuration(key string, defaultValue time.Duration) time.Duration {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			if d, err := time.ParseDuration(strVal); err == nil {
				return d
			}
		}
	}
	return defaultValue
}
