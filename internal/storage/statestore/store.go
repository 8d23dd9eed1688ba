package statestore

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LeJamon/goLibra/internal/core/types"
)

// Store applies write-sets to a backend and serves point reads through
// an optional LRU cache. Keys are flat access-path keys (address bytes
// followed by path bytes).
type Store struct {
	backend Backend
	cache   *lru.Cache[string, []byte]

	stats struct {
		reads  uint64
		hits   uint64
		misses uint64
		writes uint64
	}
}

// Stats holds store performance counters.
type Stats struct {
	Backend     string // Backend name
	Reads       uint64 // Total read operations
	CacheHits   uint64 // Reads served from the cache
	CacheMisses uint64 // Reads that went to the backend
	Writes      uint64 // Write operations applied
	CacheLen    int    // Current number of cached entries
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	if s.Reads == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(s.Reads) * 100
}

// NewStore wraps an opened backend. A cacheSize of zero disables the
// read cache.
func NewStore(backend Backend, cacheSize int) (*Store, error) {
	s := &Store{backend: backend}
	if cacheSize > 0 {
		cache, err := lru.New[string, []byte](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create read cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Open creates the configured backend, opens it, and wraps it in a
// Store. This is the main entry point for callers.
func Open(cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend, err := NewBackend(cfg.Backend, cfg)
	if err != nil {
		return nil, err
	}
	if err := backend.Open(cfg.CreateIfMissing); err != nil {
		return nil, err
	}

	store, err := NewStore(backend, cfg.CacheSize)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return store, nil
}

// ApplyWriteSet applies every entry of the write-set as one atomic
// batch, in entry order. On success the cache absorbs the mutations;
// on failure neither the backend nor the cache changes.
func (s *Store) ApplyWriteSet(ws types.WriteSet) error {
	var batch Batch
	for _, entry := range ws.Entries() {
		key := entry.Path.Key()
		switch entry.Op.Kind {
		case types.WriteOpValue:
			batch.Put(key, entry.Op.Value)
		case types.WriteOpDeletion:
			batch.Delete(key)
		default:
			return fmt.Errorf("apply write set: unsupported op kind %s", entry.Op.Kind)
		}
	}

	if st := s.backend.Apply(batch); st != OK {
		return s.opError("apply", st)
	}
	atomic.AddUint64(&s.stats.writes, uint64(batch.Len()))

	if s.cache != nil {
		for _, op := range batch.Ops() {
			if op.Delete {
				s.cache.Remove(string(op.Key))
				continue
			}
			s.cache.Add(string(op.Key), cloneBytes(op.Value))
		}
	}

	return nil
}

// Get returns the resource blob stored at the access path. Absent
// paths yield ErrNotFound.
func (s *Store) Get(ap types.AccessPath) ([]byte, error) {
	atomic.AddUint64(&s.stats.reads, 1)
	key := ap.Key()

	if s.cache != nil {
		if value, found := s.cache.Get(string(key)); found {
			atomic.AddUint64(&s.stats.hits, 1)
			return cloneBytes(value), nil
		}
		atomic.AddUint64(&s.stats.misses, 1)
	}

	value, st := s.backend.Get(key)
	if st != OK {
		return nil, s.opError("get", st)
	}

	if s.cache != nil {
		s.cache.Add(string(key), cloneBytes(value))
	}
	return value, nil
}

// Has reports whether a value is stored at the access path.
func (s *Store) Has(ap types.AccessPath) (bool, error) {
	atomic.AddUint64(&s.stats.reads, 1)
	key := ap.Key()

	if s.cache != nil {
		if _, found := s.cache.Get(string(key)); found {
			atomic.AddUint64(&s.stats.hits, 1)
			return true, nil
		}
		atomic.AddUint64(&s.stats.misses, 1)
	}

	found, st := s.backend.Has(key)
	if st != OK {
		return false, s.opError("has", st)
	}
	return found, nil
}

// ForEach visits every stored (access path, value) pair in ascending
// key order.
func (s *Store) ForEach(fn func(ap types.AccessPath, value []byte) error) error {
	return s.backend.ForEach(func(key, value []byte) error {
		ap, err := SplitKey(key)
		if err != nil {
			return err
		}
		return fn(ap, value)
	})
}

// Sync flushes pending writes to stable storage.
func (s *Store) Sync() error {
	if st := s.backend.Sync(); st != OK {
		return s.opError("sync", st)
	}
	return nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	if s.cache != nil {
		s.cache.Purge()
	}
	return s.backend.Close()
}

// Stats returns current performance counters.
func (s *Store) Stats() Stats {
	stats := Stats{
		Backend:     s.backend.Name(),
		Reads:       atomic.LoadUint64(&s.stats.reads),
		CacheHits:   atomic.LoadUint64(&s.stats.hits),
		CacheMisses: atomic.LoadUint64(&s.stats.misses),
		Writes:      atomic.LoadUint64(&s.stats.writes),
	}
	if s.cache != nil {
		stats.CacheLen = s.cache.Len()
	}
	return stats
}

// SplitKey decodes a flat storage key back into its access path.
func SplitKey(key []byte) (types.AccessPath, error) {
	if len(key) < types.AddressLength {
		return types.AccessPath{}, fmt.Errorf("%w: key %d bytes, want at least %d",
			ErrDataCorrupt, len(key), types.AddressLength)
	}
	addr, err := types.AddressFromBytes(key[:types.AddressLength])
	if err != nil {
		return types.AccessPath{}, err
	}
	path := make([]byte, len(key)-types.AddressLength)
	copy(path, key[types.AddressLength:])
	return types.AccessPath{Address: addr, Path: path}, nil
}

func (s *Store) opError(op string, st Status) error {
	return fmt.Errorf("statestore %s on %s: %w", op, s.backend.Name(), st.Err())
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
