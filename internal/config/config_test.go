package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/LeJamon/goLibra/internal/core/account"
	"github.com/LeJamon/goLibra/internal/core/protocol"
	"github.com/LeJamon/goLibra/internal/crypto"
	"github.com/LeJamon/goLibra/internal/storage/statestore"
)

func TestLoadDefaults(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "info", config.LogLevel)
	assert.False(t, config.Genesis.HasSeed())
	assert.Equal(t, "LBR", config.Fixtures.Currency)
	assert.Equal(t, uint64(1_000_000), config.Fixtures.Balance)
	assert.Equal(t, uint64(0), config.Fixtures.SequenceNumber)
	assert.Equal(t, "parent_vasp", config.Fixtures.Role)
	assert.Equal(t, 1, config.Fixtures.Count)
	assert.Equal(t, "memory", config.Store.Backend)
	assert.Equal(t, statestore.DefaultCacheSize, config.Store.CacheSize)
	assert.Equal(t, "json", config.Dump.Format)
	assert.False(t, config.Dump.Compress)
	assert.Equal(t, "", config.GetConfigPath())
}

func TestLoadFile(t *testing.T) {
	configContent := `
log_level = "debug"

[genesis]
seed = "0000000000000000000000000000000000000000000000000000000000000000"

[fixtures]
currency = "Coin1"
balance = 250000
sequence_number = 7
role = "unhosted"
count = 32

[store]
backend = "leveldb"
path = ":memory:"
cache_size = 64

[dump]
format = "cbor"
compress = true
`

	configPath := filepath.Join(t.TempDir(), "librafix.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	config, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.True(t, config.Genesis.HasSeed())
	assert.Equal(t, "Coin1", config.Fixtures.Currency)
	assert.Equal(t, uint64(250_000), config.Fixtures.Balance)
	assert.Equal(t, uint64(7), config.Fixtures.SequenceNumber)
	assert.Equal(t, "unhosted", config.Fixtures.Role)
	assert.Equal(t, 32, config.Fixtures.Count)
	assert.Equal(t, "leveldb", config.Store.Backend)
	assert.Equal(t, statestore.MemoryPath, config.Store.Path)
	assert.Equal(t, 64, config.Store.CacheSize)
	assert.Equal(t, "cbor", config.Dump.Format)
	assert.True(t, config.Dump.Compress)
	assert.Equal(t, configPath, config.GetConfigPath())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LIBRAFIX_LOG_LEVEL", "warn")
	t.Setenv("LIBRAFIX_FIXTURES_COUNT", "5")
	t.Setenv("LIBRAFIX_STORE_BACKEND", "sqlite")
	t.Setenv("LIBRAFIX_STORE_PATH", ":memory:")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, 5, config.Fixtures.Count)
	assert.Equal(t, "sqlite", config.Store.Backend)
	assert.Equal(t, statestore.MemoryPath, config.Store.Path)
}

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "shout" }, "log_level"},
		{"short seed", func(c *Config) { c.Genesis.Seed = "abcd" }, "genesis"},
		{"non-hex seed", func(c *Config) { c.Genesis.Seed = strings.Repeat("zz", 32) }, "genesis"},
		{"bad currency", func(c *Config) { c.Fixtures.Currency = "1Coin" }, "currency"},
		{"bad role", func(c *Config) { c.Fixtures.Role = "wizard" }, "role"},
		{"zero count", func(c *Config) { c.Fixtures.Count = 0 }, "count"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "bolt" }, "backend"},
		{"missing path", func(c *Config) { c.Store.Backend = "pebble"; c.Store.Path = "" }, "path"},
		{"negative cache", func(c *Config) { c.Store.CacheSize = -1 }, "cache_size"},
		{"bad dump format", func(c *Config) { c.Dump.Format = "xml" }, "format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config, err := Load("")
			require.NoError(t, err)

			tc.mutate(config)
			err = ValidateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestConfigHelperMethods(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)

	level, err := config.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)

	code, err := config.Fixtures.CurrencyCode()
	require.NoError(t, err)
	assert.Equal(t, protocol.DefaultCurrencyCode, code)

	role, err := config.Fixtures.RoleSpecifier()
	require.NoError(t, err)
	assert.Equal(t, account.RoleParentVASP, role)

	opts := config.Store.Options()
	assert.Equal(t, "memory", opts.Backend)
	assert.True(t, opts.CreateIfMissing)
	require.NoError(t, opts.Validate())

	format, err := config.Dump.FileFormat()
	require.NoError(t, err)
	assert.Equal(t, statestore.FormatJSON, format)
}

func TestGenesisSeed(t *testing.T) {
	zero := GenesisConfig{Seed: strings.Repeat("00", crypto.SeedSize)}
	seed, err := zero.SeedBytes()
	require.NoError(t, err)
	assert.Equal(t, [crypto.SeedSize]byte{}, seed)

	// 0x prefix is accepted
	prefixed := GenesisConfig{Seed: "0x" + strings.Repeat("ab", crypto.SeedSize)}
	seed, err = prefixed.SeedBytes()
	require.NoError(t, err)
	assert.Equal(t, byte(0xab), seed[0])

	// Same seed, same identities
	g1, err := zero.NewKeyGen()
	require.NoError(t, err)
	g2, err := zero.NewKeyGen()
	require.NoError(t, err)
	assert.Equal(t, g1.Generate().Public, g2.Generate().Public)

	// No seed still yields a usable generator
	random, err := GenesisConfig{}.NewKeyGen()
	require.NoError(t, err)
	require.NotNil(t, random)
}

func TestSaveExample(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "librafix.toml")
	require.NoError(t, SaveExample(configPath))

	// The example must load back through the normal path
	config, err := Load(configPath)
	require.NoError(t, err)

	assert.True(t, config.Genesis.HasSeed())
	assert.Equal(t, 10, config.Fixtures.Count)
	assert.Equal(t, "leveldb", config.Store.Backend)
	assert.Equal(t, "/var/lib/librafix/state", config.Store.Path)
}
