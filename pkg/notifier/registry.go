package notifier

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages available notifiers.
// It provides thread-safe registration and lookup of notifiers.
type Registry struct {
	notifiers map[string]Notifier
	mu        sync.RWMutex
}

// NewRegistry creates a new empty notifier registry.
func NewRegistry() *Registry {
	return &Registry{
		notifiers: make(map[string]Notifier),
	}
}

// Register adds a notifier to the registry.
// Returns an error if a notifier with the same ID already exists.
func (r *Registry) Register(n Notifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notifiers[n.ID()]; exists {
		return fmt.Errorf("notifier %s already registered", n.ID())
	}

	r.notifiers[n.ID()] = n
	return nil
}

// Unregister removes a notifier from the registry.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notifiers[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNotifierNotFound, id)
	}

	delete(r.notifiers, id)
	return nil
}

// Get returns a notifier by ID, or nil.
func (r *Registry) Get(id string) Notifier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.notifiers[id]
}

// GetAll returns all registered notifiers ordered by ID.
func (r *Registry) GetAll() []Notifier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notifiers := make([]Notifier, 0, len(r.notifiers))
	for _, n := range r.notifiers {
		notifiers = append(notifiers, n)
	}
	sort.Slice(notifiers, func(i, j int) bool {
		return notifiers[i].ID() < notifiers[j].ID()
	})

	return notifiers
}

// Count returns the number of registered notifiers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.notifiers)
}
