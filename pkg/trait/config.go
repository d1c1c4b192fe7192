package trait

// Config is the base configuration for all trait conditions.
// This is typically loaded from the game YAML configuration.
type Config struct {
	ID         string                 `yaml:"id" json:"id"`
	Name       string                 `yaml:"name" json:"name"`
	Type       string                 `yaml:"type" json:"type"` // e.g., "speed_demon"
	Enabled    bool                   `yaml:"enabled" json:"enabled"`
	Priority   int                    `yaml:"priority" json:"priority"`
	Parameters map[string]interface{} `yaml:"parameters" json:"parameters"`
}

// GetInt retrieves an integer value from parameters with a default.
func (c *Config) GetInt(key string, defaultValue int) int {
	switch v := c.Parameters[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return defaultValue
}

// GetFloat retrieves a float value from parameters with a default.
// Whole numbers written without a decimal point are accepted.
func (c *Config) GetFloat(key string, defaultValue float64) float64 {
	switch v := c.Parameters[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return defaultValue
}

// GetString retrieves a string value from parameters with a default.
func (c *Config) GetString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// GetBool retrieves a boolean value from parameters with a default.
func (c *Config) GetBool(key string, defaultValue bool) bool {
	if val, ok := c.Parameters[key]; ok {
		if boolVal, ok := val.(bool); ok {
			return boolVal
		}
	}
	return defaultValue
}

// DisplayName returns the configured name or the fallback.
func (c *Config) DisplayName(fallback string) string {
	if c.Name != "" {
		return c.Name
	}
	return fallback
}
