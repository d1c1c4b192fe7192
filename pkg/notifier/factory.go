package notifier

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Factory is a function that creates a notifier from a configuration.
type Factory func(config Config) (Notifier, error)

var (
	factoriesMu sync.RWMutex
	// factories stores registered notifier factories by type
	factories = make(map[string]Factory)
)

// RegisterNotifierType registers a factory function for a notifier type.
func RegisterNotifierType(notifierType string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[notifierType] = factory
	logrus.Debugf("registered notifier type: %s", notifierType)
}

// CreateNotifier creates a notifier instance based on the configuration.
// Returns nil for disabled notifiers and an error if the type is unknown.
func CreateNotifier(config Config) (Notifier, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled notifier: %s", config.ID)
		return nil, nil
	}

	logrus.Infof("creating notifier: id=%s, type=%s", config.ID, config.Type)

	factoriesMu.RLock()
	factory, exists := factories[config.Type]
	factoriesMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown notifier type: %s", config.Type)
	}

	return factory(config)
}

// CreateNotifiers creates multiple notifier instances from a list of configurations.
// Returns all successfully created notifiers and any errors encountered.
func CreateNotifiers(configs []Config) ([]Notifier, []error) {
	var notifiers []Notifier
	var errors []error

	for _, config := range configs {
		n, err := CreateNotifier(config)
		if err != nil {
			errors = append(errors, fmt.Errorf("failed to create notifier %s: %w", config.ID, err))
			continue
		}

		if n != nil {
			notifiers = append(notifiers, n)
		}
	}

	return notifiers, errors
}

// RegisterNotifiers creates notifiers from configs and registers them with the registry.
func RegisterNotifiers(registry *Registry, configs []Config) error {
	notifiers, errors := CreateNotifiers(configs)

	if len(errors) > 0 {
		logrus.Warnf("encountered %d errors while creating notifiers", len(errors))
		for _, err := range errors {
			logrus.Warnf("notifier creation error: %v", err)
		}
	}

	for _, n := range notifiers {
		if err := registry.Register(n); err != nil {
			return fmt.Errorf("failed to register notifier %s: %w", n.ID(), err)
		}
	}

	logrus.Infof("registered %d notifiers", len(notifiers))
	return nil
}
