// Package config loads the librafix tool configuration. Values come
// from built-in defaults, an optional TOML file, and LIBRAFIX_-prefixed
// environment variables, in increasing priority.
package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/LeJamon/goLibra/internal/core/account"
	"github.com/LeJamon/goLibra/internal/core/types"
	"github.com/LeJamon/goLibra/internal/crypto"
	"github.com/LeJamon/goLibra/internal/storage/statestore"
)

// Config is the complete librafix configuration.
type Config struct {
	// LogLevel sets the zap level for CLI output (debug, info, warn, error).
	LogLevel string `toml:"log_level" mapstructure:"log_level"`

	// Genesis controls the key material fixtures are derived from.
	Genesis GenesisConfig `toml:"genesis" mapstructure:"genesis"`

	// Fixtures is the default profile for generated accounts.
	Fixtures FixturesConfig `toml:"fixtures" mapstructure:"fixtures"`

	// Store selects the state store backend write sets are applied to.
	Store StoreConfig `toml:"store" mapstructure:"store"`

	// Dump controls the state dump encoding.
	Dump DumpConfig `toml:"dump" mapstructure:"dump"`

	// Internal field for configuration management
	configPath string `toml:"-" mapstructure:"-"`
}

// GenesisConfig holds the seed of the fixture key generator.
type GenesisConfig struct {
	// Seed is the hex-encoded 32-byte seed for the deterministic key
	// generator. Accounts built from the same seed get identical
	// identities. Empty means draw a fresh seed from the system CSPRNG.
	Seed string `toml:"seed" mapstructure:"seed"`
}

// FixturesConfig is the default account profile for a generate run.
// Every field can be overridden per run by CLI flags.
type FixturesConfig struct {
	Currency       string `toml:"currency" mapstructure:"currency"`
	Balance        uint64 `toml:"balance" mapstructure:"balance"`
	SequenceNumber uint64 `toml:"sequence_number" mapstructure:"sequence_number"`
	Role           string `toml:"role" mapstructure:"role"`
	Count          int    `toml:"count" mapstructure:"count"`
}

// StoreConfig selects the state store backend.
type StoreConfig struct {
	Backend   string `toml:"backend" mapstructure:"backend"`
	Path      string `toml:"path" mapstructure:"path"`
	CacheSize int    `toml:"cache_size" mapstructure:"cache_size"`
}

// DumpConfig controls how state dumps are written.
type DumpConfig struct {
	Format   string `toml:"format" mapstructure:"format"`
	Compress bool   `toml:"compress" mapstructure:"compress"`
}

// GetConfigPath returns the path of the loaded configuration file, or
// the empty string when only defaults and environment were used.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// Level parses the configured log level.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// HasSeed reports whether a deterministic seed is configured.
func (g GenesisConfig) HasSeed() bool {
	return g.Seed != ""
}

// SeedBytes decodes the configured hex seed. An optional 0x prefix is
// accepted.
func (g GenesisConfig) SeedBytes() ([crypto.SeedSize]byte, error) {
	var seed [crypto.SeedSize]byte

	raw, err := hex.DecodeString(strings.TrimPrefix(g.Seed, "0x"))
	if err != nil {
		return seed, fmt.Errorf("genesis seed must be hex: %w", err)
	}
	if len(raw) != crypto.SeedSize {
		return seed, fmt.Errorf("genesis seed must be %d bytes, got %d", crypto.SeedSize, len(raw))
	}

	copy(seed[:], raw)
	return seed, nil
}

// NewKeyGen returns the key generator a fixture run draws identities
// from: deterministic when a seed is configured, random otherwise.
func (g GenesisConfig) NewKeyGen() (*crypto.KeyGen, error) {
	if !g.HasSeed() {
		return crypto.NewRandomKeyGen()
	}

	seed, err := g.SeedBytes()
	if err != nil {
		return nil, err
	}
	return crypto.NewKeyGen(seed), nil
}

// CurrencyCode returns the configured currency as a checked identifier.
func (f FixturesConfig) CurrencyCode() (types.Identifier, error) {
	return types.NewIdentifier(f.Currency)
}

// RoleSpecifier resolves the configured role name.
func (f FixturesConfig) RoleSpecifier() (account.RoleSpecifier, error) {
	return account.ParseRoleSpecifier(f.Role)
}

// Options converts the section into a state store configuration.
func (s StoreConfig) Options() *statestore.Config {
	return &statestore.Config{
		Backend:         s.Backend,
		Path:            s.Path,
		CacheSize:       s.CacheSize,
		CreateIfMissing: true,
	}
}

// FileFormat parses the configured dump format.
func (d DumpConfig) FileFormat() (statestore.Format, error) {
	return statestore.ParseFormat(d.Format)
}
