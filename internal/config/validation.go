package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/LeJamon/goLibra/internal/core/types"
	"github.com/LeJamon/goLibra/internal/storage/statestore"
)

// ValidateConfig checks the complete configuration before any fixture
// work starts. Each section validates independently so the first error
// names the section it came from.
func ValidateConfig(config *Config) error {
	if _, err := zapcore.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("log_level validation failed: %w", err)
	}

	if err := config.Genesis.Validate(); err != nil {
		return fmt.Errorf("genesis validation failed: %w", err)
	}
	if err := config.Fixtures.Validate(); err != nil {
		return fmt.Errorf("fixtures validation failed: %w", err)
	}
	if err := config.Store.Validate(); err != nil {
		return fmt.Errorf("store validation failed: %w", err)
	}
	if err := config.Dump.Validate(); err != nil {
		return fmt.Errorf("dump validation failed: %w", err)
	}

	return nil
}

// Validate checks the genesis section. An empty seed is valid and
// means random identities.
func (g GenesisConfig) Validate() error {
	if !g.HasSeed() {
		return nil
	}
	_, err := g.SeedBytes()
	return err
}

// Validate checks the fixture profile.
func (f FixturesConfig) Validate() error {
	if !types.ValidIdentifier(f.Currency) {
		return fmt.Errorf("currency %q is not a valid identifier", f.Currency)
	}
	if _, err := f.RoleSpecifier(); err != nil {
		return err
	}
	if f.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", f.Count)
	}
	return nil
}

// Validate checks the store section against the registered backends.
func (s StoreConfig) Validate() error {
	if !statestore.IsBackendAvailable(s.Backend) {
		return fmt.Errorf("unknown backend %q (available: %s)",
			s.Backend, strings.Join(statestore.AvailableBackends(), ", "))
	}
	if s.Backend != "memory" && s.Path == "" {
		return fmt.Errorf("backend %q requires a path", s.Backend)
	}
	if s.CacheSize < 0 {
		return fmt.Errorf("cache_size cannot be negative, got %d", s.CacheSize)
	}
	return nil
}

// Validate checks the dump section.
func (d DumpConfig) Validate() error {
	if _, err := d.FileFormat(); err != nil {
		return err
	}
	return nil
}
