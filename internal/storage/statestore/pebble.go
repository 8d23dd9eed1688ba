package statestore

import (
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/pebble"
)

// PebbleBackend implements a Backend on Pebble. It is the durable
// choice for large fixture sets.
type PebbleBackend struct {
	path string
	db   *pebble.DB

	open int64 // atomic flag for open state
}

// NewPebbleBackend creates an unopened Pebble backend from config.
func NewPebbleBackend(cfg *Config) (Backend, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("%w: pebble backend requires a path", ErrInvalidConfig)
	}
	return &PebbleBackend{path: cfg.Path}, nil
}

// Name returns the name of this backend.
func (p *PebbleBackend) Name() string {
	return fmt.Sprintf("pebble(%s)", p.path)
}

// Open opens the underlying database.
func (p *PebbleBackend) Open(createIfMissing bool) error {
	if !atomic.CompareAndSwapInt64(&p.open, 0, 1) {
		return ErrClosed
	}

	opts := &pebble.Options{ErrorIfNotExists: !createIfMissing}

	db, err := pebble.Open(p.path, opts)
	if err != nil {
		atomic.StoreInt64(&p.open, 0)
		return fmt.Errorf("open pebble at %s: %w", p.path, err)
	}

	p.db = db
	return nil
}

// Close flushes and closes the underlying database.
func (p *PebbleBackend) Close() error {
	if !atomic.CompareAndSwapInt64(&p.open, 1, 0) {
		return nil // Already closed
	}

	err := p.db.Flush()
	if closeErr := p.db.Close(); err == nil {
		err = closeErr
	}
	p.db = nil
	if err != nil {
		return fmt.Errorf("close pebble: %w", err)
	}
	return nil
}

// IsOpen reports whether the backend is currently open.
func (p *PebbleBackend) IsOpen() bool {
	return atomic.LoadInt64(&p.open) != 0
}

// Get retrieves the value stored under key.
func (p *PebbleBackend) Get(key []byte) ([]byte, Status) {
	if !p.IsOpen() {
		return nil, BackendClosed
	}

	value, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, NotFound
	}
	if err != nil {
		return nil, BackendError
	}

	// The returned slice is only valid until the closer is closed.
	out := make([]byte, len(value))
	copy(out, value)
	if err := closer.Close(); err != nil {
		return nil, BackendError
	}

	return out, OK
}

// Has reports whether a value is stored under key.
func (p *PebbleBackend) Has(key []byte) (bool, Status) {
	if !p.IsOpen() {
		return false, BackendClosed
	}

	_, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return false, OK
	}
	if err != nil {
		return false, BackendError
	}
	if err := closer.Close(); err != nil {
		return false, BackendError
	}
	return true, OK
}

// Apply applies the batch through a Pebble batch, which commits
// atomically.
func (p *PebbleBackend) Apply(batch Batch) Status {
	if !p.IsOpen() {
		return BackendClosed
	}

	wb := p.db.NewBatch()
	defer wb.Close()

	for _, op := range batch.Ops() {
		var err error
		if op.Delete {
			err = wb.Delete(op.Key, nil)
		} else {
			err = wb.Set(op.Key, op.Value, nil)
		}
		if err != nil {
			return BackendError
		}
	}

	if err := wb.Commit(pebble.Sync); err != nil {
		return BackendError
	}
	return OK
}

// ForEach visits all stored pairs in ascending key order.
func (p *PebbleBackend) ForEach(fn func(key, value []byte) error) error {
	if !p.IsOpen() {
		return ErrClosed
	}

	iter, err := p.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("iterate pebble: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		// Iterator buffers are only valid until the next step.
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())

		if err := fn(key, value); err != nil {
			return err
		}
	}

	if err := iter.Error(); err != nil {
		return fmt.Errorf("iterate pebble: %w", err)
	}
	return nil
}

// Sync forces pending writes to be flushed.
func (p *PebbleBackend) Sync() Status {
	if !p.IsOpen() {
		return BackendClosed
	}
	if err := p.db.Flush(); err != nil {
		return BackendError
	}
	return OK
}

func init() {
	RegisterBackend("pebble", NewPebbleBackend)
}
