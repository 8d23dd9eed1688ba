package config

import (
	"github.com/spf13/viper"

	"github.com/LeJamon/goLibra/internal/core/account"
	"github.com/LeJamon/goLibra/internal/core/protocol"
	"github.com/LeJamon/goLibra/internal/storage/statestore"
)

// setDefaults registers a default for every configuration key. Keys
// must all be known to viper up front or environment-only overrides
// would not survive Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	// Genesis defaults: no seed, fresh random identities each run.
	v.SetDefault("genesis.seed", "")

	// Fixture profile defaults
	v.SetDefault("fixtures.currency", string(protocol.DefaultCurrencyCode))
	v.SetDefault("fixtures.balance", 1_000_000)
	v.SetDefault("fixtures.sequence_number", 0)
	v.SetDefault("fixtures.role", account.RoleParentVASP.String())
	v.SetDefault("fixtures.count", 1)

	// Store defaults: in-memory backend, nothing touches disk unless
	// a path is configured.
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.path", "")
	v.SetDefault("store.cache_size", statestore.DefaultCacheSize)

	// Dump defaults
	v.SetDefault("dump.format", statestore.FormatJSON.String())
	v.SetDefault("dump.compress", false)
}
