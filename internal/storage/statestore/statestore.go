// Package statestore persists synthesized account state. It applies
// write-sets as atomic batches of (storage key, resource blob) pairs and
// serves point reads through an LRU cache. Backends are pluggable:
// an in-memory map for tests, LevelDB, Pebble, and SQLite for durable
// fixtures.
package statestore

import "fmt"

// MemoryPath selects the in-memory form of backends that support one
// (leveldb, sqlite). The memory backend ignores paths entirely.
const MemoryPath = ":memory:"

// Status reports the outcome of a backend operation.
type Status int

const (
	// OK indicates the operation was successful
	OK Status = iota
	// NotFound indicates the requested key was not found
	NotFound
	// DataCorrupt indicates the stored data is corrupted
	DataCorrupt
	// BackendClosed indicates the backend is not open
	BackendClosed
	// BackendError indicates a failure in the storage backend
	BackendError
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case NotFound:
		return "NotFound"
	case DataCorrupt:
		return "DataCorrupt"
	case BackendClosed:
		return "BackendClosed"
	case BackendError:
		return "BackendError"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Err maps the status to its sentinel error, nil for OK.
func (s Status) Err() error {
	switch s {
	case OK:
		return nil
	case NotFound:
		return ErrNotFound
	case DataCorrupt:
		return ErrDataCorrupt
	case BackendClosed:
		return ErrClosed
	default:
		return ErrBackend
	}
}

// BatchOp is a single mutation in a batch: a full-value put, or a
// deletion when Delete is set.
type BatchOp struct {
	Key    []byte
	Value  []byte
	Delete bool
}

// Batch is an ordered list of mutations a backend applies atomically:
// either every operation takes effect or none do.
type Batch struct {
	ops []BatchOp
}

// Put appends a full-value write for key.
func (b *Batch) Put(key, value []byte) {
	b.ops = append(b.ops, BatchOp{Key: key, Value: value})
}

// Delete appends a deletion for key. Deleting an absent key is not an
// error.
func (b *Batch) Delete(key []byte) {
	b.ops = append(b.ops, BatchOp{Key: key, Delete: true})
}

// Len returns the number of operations in the batch.
func (b *Batch) Len() int {
	return len(b.ops)
}

// Ops returns the operations in application order.
func (b *Batch) Ops() []BatchOp {
	return b.ops
}

// Backend is the interface storage backends implement. Keys and values
// are opaque bytes; implementations must not retain or mutate the
// slices passed to them, and the slices they return are owned by the
// caller.
type Backend interface {
	// Name returns a human-readable name for this backend.
	Name() string

	// Open opens the backend for use.
	Open(createIfMissing bool) error

	// Close closes the backend and releases resources.
	Close() error

	// IsOpen reports whether the backend is currently open.
	IsOpen() bool

	// Get retrieves the value stored under key.
	Get(key []byte) ([]byte, Status)

	// Has reports whether a value is stored under key.
	Has(key []byte) (bool, Status)

	// Apply applies every operation in the batch atomically.
	Apply(batch Batch) Status

	// ForEach visits all stored pairs in ascending key order. The
	// slices are only valid for the duration of the call.
	ForEach(fn func(key, value []byte) error) error

	// Sync flushes pending writes to stable storage.
	Sync() Status
}
