package statestore

import (
	"sort"
	"sync"
	"sync/atomic"
)

// MemoryBackend implements an in-memory Backend. It is the default for
// tests and for one-shot fixture generation that only feeds a dump.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte

	open int64 // atomic flag for open state
}

// NewMemoryBackend creates a new in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		data: make(map[string][]byte),
	}
}

// NewMemoryBackendFromConfig creates an in-memory backend from config.
// The config is ignored but required for the Factory signature.
func NewMemoryBackendFromConfig(cfg *Config) (Backend, error) {
	return NewMemoryBackend(), nil
}

// Name returns the name of this backend.
func (m *MemoryBackend) Name() string {
	return "memory"
}

// Open opens the backend for use.
func (m *MemoryBackend) Open(createIfMissing bool) error {
	if !atomic.CompareAndSwapInt64(&m.open, 0, 1) {
		return ErrClosed // Already open, treat as error for consistency
	}
	return nil
}

// Close closes the backend and clears all data.
func (m *MemoryBackend) Close() error {
	if !atomic.CompareAndSwapInt64(&m.open, 1, 0) {
		return nil // Already closed
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)

	return nil
}

// IsOpen reports whether the backend is currently open.
func (m *MemoryBackend) IsOpen() bool {
	return atomic.LoadInt64(&m.open) != 0
}

// Get retrieves the value stored under key.
func (m *MemoryBackend) Get(key []byte) ([]byte, Status) {
	if !m.IsOpen() {
		return nil, BackendClosed
	}

	m.mu.RLock()
	value, found := m.data[string(key)]
	m.mu.RUnlock()

	if !found {
		return nil, NotFound
	}

	// Return a copy to prevent mutation of stored state.
	out := make([]byte, len(value))
	copy(out, value)
	return out, OK
}

// Has reports whether a value is stored under key.
func (m *MemoryBackend) Has(key []byte) (bool, Status) {
	if !m.IsOpen() {
		return false, BackendClosed
	}

	m.mu.RLock()
	_, found := m.data[string(key)]
	m.mu.RUnlock()

	return found, OK
}

// Apply applies every operation in the batch atomically. The single
// write lock makes the batch indivisible for readers.
func (m *MemoryBackend) Apply(batch Batch) Status {
	if !m.IsOpen() {
		return BackendClosed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, op := range batch.Ops() {
		if op.Delete {
			delete(m.data, string(op.Key))
			continue
		}
		value := make([]byte, len(op.Value))
		copy(value, op.Value)
		m.data[string(op.Key)] = value
	}

	return OK
}

// ForEach visits all stored pairs in ascending key order.
func (m *MemoryBackend) ForEach(fn func(key, value []byte) error) error {
	if !m.IsOpen() {
		return ErrClosed
	}

	m.mu.RLock()
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Copy pairs out before releasing the lock so the callback cannot
	// deadlock the backend by calling back into it.
	pairs := make([][2][]byte, 0, len(keys))
	for _, key := range keys {
		value := m.data[key]
		v := make([]byte, len(value))
		copy(v, value)
		pairs = append(pairs, [2][]byte{[]byte(key), v})
	}
	m.mu.RUnlock()

	for _, pair := range pairs {
		if err := fn(pair[0], pair[1]); err != nil {
			return err
		}
	}

	return nil
}

// Sync flushes pending writes (no-op for the memory backend).
func (m *MemoryBackend) Sync() Status {
	if !m.IsOpen() {
		return BackendClosed
	}
	return OK
}

// Len returns the number of stored pairs.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	n := len(m.data)
	m.mu.RUnlock()
	return n
}

func init() {
	RegisterBackend("memory", NewMemoryBackendFromConfig)
}
