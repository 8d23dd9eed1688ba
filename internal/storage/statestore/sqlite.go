package statestore

import (
	"database/sql"
	"fmt"
	"os"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS account_state (
	k BLOB PRIMARY KEY,
	v BLOB NOT NULL
)`

// SQLiteBackend implements a Backend on SQLite with a single key-value
// table. A path of MemoryPath opens an in-memory database.
type SQLiteBackend struct {
	path string
	db   *sql.DB

	open int64 // atomic flag for open state
}

// NewSQLiteBackend creates an unopened SQLite backend from config.
func NewSQLiteBackend(cfg *Config) (Backend, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("%w: sqlite backend requires a path", ErrInvalidConfig)
	}
	return &SQLiteBackend{path: cfg.Path}, nil
}

// Name returns the name of this backend.
func (s *SQLiteBackend) Name() string {
	return fmt.Sprintf("sqlite(%s)", s.path)
}

// Open opens the database and ensures the schema exists.
func (s *SQLiteBackend) Open(createIfMissing bool) error {
	if !atomic.CompareAndSwapInt64(&s.open, 0, 1) {
		return ErrClosed
	}

	if !createIfMissing && s.path != MemoryPath {
		if _, err := os.Stat(s.path); err != nil {
			atomic.StoreInt64(&s.open, 0)
			return fmt.Errorf("open sqlite at %s: %w", s.path, err)
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		atomic.StoreInt64(&s.open, 0)
		return fmt.Errorf("open sqlite at %s: %w", s.path, err)
	}

	if s.path == MemoryPath {
		// Each pooled connection would otherwise get its own private
		// in-memory database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		atomic.StoreInt64(&s.open, 0)
		return fmt.Errorf("create sqlite schema: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the database.
func (s *SQLiteBackend) Close() error {
	if !atomic.CompareAndSwapInt64(&s.open, 1, 0) {
		return nil // Already closed
	}

	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}

// IsOpen reports whether the backend is currently open.
func (s *SQLiteBackend) IsOpen() bool {
	return atomic.LoadInt64(&s.open) != 0
}

// Get retrieves the value stored under key.
func (s *SQLiteBackend) Get(key []byte) ([]byte, Status) {
	if !s.IsOpen() {
		return nil, BackendClosed
	}

	var value []byte
	err := s.db.QueryRow(`SELECT v FROM account_state WHERE k = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, NotFound
	}
	if err != nil {
		return nil, BackendError
	}
	return value, OK
}

// Has reports whether a value is stored under key.
func (s *SQLiteBackend) Has(key []byte) (bool, Status) {
	if !s.IsOpen() {
		return false, BackendClosed
	}

	var found bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM account_state WHERE k = ?)`, key).Scan(&found)
	if err != nil {
		return false, BackendError
	}
	return found, OK
}

// Apply applies the batch inside a single transaction, which commits
// atomically.
func (s *SQLiteBackend) Apply(batch Batch) Status {
	if !s.IsOpen() {
		return BackendClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return BackendError
	}

	for _, op := range batch.Ops() {
		if op.Delete {
			_, err = tx.Exec(`DELETE FROM account_state WHERE k = ?`, op.Key)
		} else {
			_, err = tx.Exec(
				`INSERT INTO account_state (k, v) VALUES (?, ?)
				 ON CONFLICT(k) DO UPDATE SET v = excluded.v`,
				op.Key, op.Value)
		}
		if err != nil {
			tx.Rollback()
			return BackendError
		}
	}

	if err := tx.Commit(); err != nil {
		return BackendError
	}
	return OK
}

// ForEach visits all stored pairs in ascending key order. BLOB keys
// compare bytewise, so ORDER BY gives the contract order.
func (s *SQLiteBackend) ForEach(fn func(key, value []byte) error) error {
	if !s.IsOpen() {
		return ErrClosed
	}

	rows, err := s.db.Query(`SELECT k, v FROM account_state ORDER BY k`)
	if err != nil {
		return fmt.Errorf("iterate sqlite: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("iterate sqlite: %w", err)
		}
		if err := fn(key, value); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate sqlite: %w", err)
	}
	return nil
}

// Sync flushes pending writes. Transactions commit durably, so this is
// a no-op.
func (s *SQLiteBackend) Sync() Status {
	if !s.IsOpen() {
		return BackendClosed
	}
	return OK
}

func init() {
	RegisterBackend("sqlite", NewSQLiteBackend)
}
