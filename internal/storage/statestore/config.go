package statestore

import "fmt"

// DefaultCacheSize is the default capacity of the read cache, in
// entries.
const DefaultCacheSize = 2000

// Config holds configuration for a state store.
type Config struct {
	// Backend selects the storage backend by registered name.
	Backend string `json:"backend" yaml:"backend"`

	// Path is the file system path for persistent backends. The memory
	// backend ignores it; leveldb and sqlite accept MemoryPath.
	Path string `json:"path" yaml:"path"`

	// CacheSize is the read cache capacity in entries. Zero disables
	// the cache.
	CacheSize int `json:"cache_size" yaml:"cache_size"`

	// CreateIfMissing controls whether persistent backends create
	// their store on first open.
	CreateIfMissing bool `json:"create_if_missing" yaml:"create_if_missing"`
}

// DefaultConfig returns a configuration backed by the in-memory
// backend.
func DefaultConfig() *Config {
	return &Config{
		Backend:         "memory",
		CacheSize:       DefaultCacheSize,
		CreateIfMissing: true,
	}
}

// Validate checks the backend-independent constraints. Path
// requirements are backend-specific and checked by each factory.
func (c *Config) Validate() error {
	if c.Backend == "" {
		return fmt.Errorf("%w: backend must be specified", ErrInvalidConfig)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cache_size must be non-negative", ErrInvalidConfig)
	}
	return nil
}
