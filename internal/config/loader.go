package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/LeJamon/goLibra/internal/crypto"
)

// Load loads configuration from multiple sources in priority order:
// 1. Default values
// 2. Configuration file (TOML), when path is non-empty
// 3. Environment variables (LIBRAFIX_ prefix)
// The result is validated before it is returned.
func Load(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults first
	setDefaults(v)

	// 2. Load the configuration file, if one was given
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// 3. Set up environment variable support
	v.SetEnvPrefix("LIBRAFIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Unmarshal into the config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.configPath = path

	// 5. Validate the complete configuration
	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// SaveExample writes an example configuration file. The format follows
// from the path extension; use .toml for the documented layout.
func SaveExample(path string) error {
	v := viper.New()

	for key, value := range exampleValues() {
		v.Set(key, value)
	}

	v.SetConfigFile(path)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write example config: %w", err)
	}

	return nil
}

// exampleValues generates example configuration values
func exampleValues() map[string]interface{} {
	return map[string]interface{}{
		"log_level": "info",

		"genesis.seed": strings.Repeat("00", crypto.SeedSize),

		"fixtures.currency":        "LBR",
		"fixtures.balance":         1_000_000,
		"fixtures.sequence_number": 0,
		"fixtures.role":            "parent_vasp",
		"fixtures.count":           10,

		"store.backend":    "leveldb",
		"store.path":       "/var/lib/librafix/state",
		"store.cache_size": 2000,

		"dump.format":   "json",
		"dump.compress": false,
	}
}
