package statestore

import (
	"fmt"
	"sort"
	"sync"
)

// Factory is a function that creates a new backend instance.
type Factory func(cfg *Config) (Backend, error)

var (
	backendMu        sync.RWMutex
	backendFactories = make(map[string]Factory)
)

// RegisterBackend registers a backend factory under the given name.
// Built-in backends register themselves at init time.
func RegisterBackend(name string, factory Factory) {
	backendMu.Lock()
	defer backendMu.Unlock()
	backendFactories[name] = factory
}

// NewBackend creates an unopened backend instance for the given name.
func NewBackend(name string, cfg *Config) (Backend, error) {
	backendMu.RLock()
	factory, ok := backendFactories[name]
	backendMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}

	return factory(cfg)
}

// AvailableBackends returns the registered backend names in sorted
// order.
func AvailableBackends() []string {
	backendMu.RLock()
	defer backendMu.RUnlock()

	names := make([]string, 0, len(backendFactories))
	for name := range backendFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBackendAvailable checks if a backend with the given name is
// registered.
func IsBackendAvailable(name string) bool {
	backendMu.RLock()
	_, ok := backendFactories[name]
	backendMu.RUnlock()
	return ok
}
