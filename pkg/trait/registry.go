package trait

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages available trait conditions.
// It provides thread-safe registration and lookup of conditions.
type Registry struct {
	conditions map[string]Condition
	mu         sync.RWMutex
}

// NewRegistry creates a new empty condition registry.
func NewRegistry() *Registry {
	return &Registry{
		conditions: make(map[string]Condition),
	}
}

// Register adds a condition to the registry.
// Returns an error if a condition with the same ID already exists.
func (r *Registry) Register(condition Condition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conditions[condition.ID()]; exists {
		return fmt.Errorf("trait %s already registered", condition.ID())
	}

	r.conditions[condition.ID()] = condition
	return nil
}

// Unregister removes a condition from the registry.
// Returns an error if the condition doesn't exist.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conditions[id]; !exists {
		return fmt.Errorf("trait %s not found", id)
	}

	delete(r.conditions, id)
	return nil
}

// Get returns a condition by trait ID.
// Returns nil if the condition doesn't exist.
func (r *Registry) Get(id string) Condition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.conditions[id]
}

// GetEnabled returns all enabled conditions, highest priority first and then by ID.
func (r *Registry) GetEnabled() []Condition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var enabled []Condition
	for _, c := range r.conditions {
		if c.Config().Enabled {
			enabled = append(enabled, c)
		}
	}

	sort.Slice(enabled, func(i, j int) bool {
		pi, pj := enabled[i].Config().Priority, enabled[j].Config().Priority
		if pi != pj {
			return pi > pj
		}
		return enabled[i].ID() < enabled[j].ID()
	})
	return enabled
}

// GetAll returns all registered conditions.
func (r *Registry) GetAll() []Condition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conditions := make([]Condition, 0, len(r.conditions))
	for _, c := range r.conditions {
		conditions = append(conditions, c)
	}

	return conditions
}

// Count returns the number of registered conditions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conditions)
}
