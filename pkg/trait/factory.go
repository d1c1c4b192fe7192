package trait

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ConditionFactory is a function that creates a condition from a configuration.
type ConditionFactory func(config Config) (Condition, error)

var (
	factoriesMu sync.RWMutex
	// factories stores registered condition factories by type
	factories = make(map[string]ConditionFactory)
)

// RegisterConditionType registers a factory function for a condition type.
// This allows external packages to register their trait types without creating import cycles.
func RegisterConditionType(conditionType string, factory ConditionFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[conditionType] = factory
	logrus.Debugf("registered trait condition type: %s", conditionType)
}

// IsRegisteredType reports whether a factory exists for the type.
func IsRegisteredType(conditionType string) bool {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	_, ok := factories[conditionType]
	return ok
}

// CreateCondition creates a condition instance based on the configuration.
// Returns nil for disabled conditions and an error if the type is unknown.
func CreateCondition(config Config) (Condition, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled trait: %s", config.ID)
		return nil, nil
	}

	factoriesMu.RLock()
	factory, exists := factories[config.Type]
	factoriesMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown trait type: %s", config.Type)
	}

	logrus.Infof("creating trait condition: id=%s, type=%s, priority=%d", config.ID, config.Type, config.Priority)
	return factory(config)
}

// CreateConditions creates multiple conditions from a list of configurations.
// Returns all successfully created conditions and any errors encountered.
func CreateConditions(configs []Config) ([]Condition, []error) {
	var conditions []Condition
	var errors []error

	for _, config := range configs {
		condition, err := CreateCondition(config)
		if err != nil {
			errors = append(errors, fmt.Errorf("failed to create trait %s: %w", config.ID, err))
			continue
		}

		if condition != nil {
			conditions = append(conditions, condition)
		}
	}

	return conditions, errors
}

// RegisterConditions creates conditions from configs and registers them with the registry.
func RegisterConditions(registry *Registry, configs []Config) error {
	conditions, errors := CreateConditions(configs)

	if len(errors) > 0 {
		logrus.Warnf("encountered %d errors while creating trait conditions", len(errors))
		for _, err := range errors {
			logrus.Warnf("trait creation error: %v", err)
		}
	}

	for _, condition := range conditions {
		if err := registry.Register(condition); err != nil {
			return fmt.Errorf("failed to register trait %s: %w", condition.ID(), err)
		}
	}

	logrus.Infof("registered %d trait conditions", len(conditions))
	return nil
}
