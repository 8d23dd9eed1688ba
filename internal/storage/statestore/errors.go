package statestore

import "errors"

var (
	// ErrNotFound indicates that no value is stored under the key
	ErrNotFound = errors.New("key not found")

	// ErrDataCorrupt indicates that stored data is corrupted
	ErrDataCorrupt = errors.New("data corruption detected")

	// ErrClosed indicates that the backend is closed
	ErrClosed = errors.New("backend is closed")

	// ErrBackend indicates a failure in the storage backend
	ErrBackend = errors.New("backend failure")

	// ErrUnknownBackend indicates that no backend is registered under the name
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrInvalidConfig indicates that the store configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownFormat indicates an unrecognized dump format
	ErrUnknownFormat = errors.New("unknown dump format")

	// ErrDumpVersion indicates a dump written by an incompatible version
	ErrDumpVersion = errors.New("unsupported dump version")

	// ErrCorruptDump indicates a dump whose entries cannot be decoded
	ErrCorruptDump = errors.New("corrupt dump")

	// ErrDeletionEntry indicates a write-set deletion offered to a dump,
	// which holds full snapshots only
	ErrDeletionEntry = errors.New("write set contains a deletion")
)
