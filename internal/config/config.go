// Package config loads the engine's tunable parameters from environment
// variables and an optional config file, per SPEC_FULL.md section A's
// ambient-stack decision to use github.com/spf13/viper rather than hand
// parsing os.Getenv/flag values the way a stdlib-only program would.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds every engine tunable exposed outside of the UCI `setoption`
// surface: values a deployer sets once via environment or file rather than
// per-game via the protocol. The UCI front-end keeps the loaded Config but
// does not read its fields, and its `setoption` handler accepts and ignores
// every option, so nothing overrides these values at runtime.
type Config struct {
	HashMB        int  `mapstructure:"hash_mb"`
	DefaultDepth  int  `mapstructure:"default_depth"`
	NullMovePrune bool `mapstructure:"null_move_pruning"`
	LogLevel      string `mapstructure:"log_level"`
}

// defaults mirrors the values SPEC_FULL.md section A names when nothing
// overrides them.
var defaults = Config{
	HashMB:        64,
	DefaultDepth:  0, // 0 means "no fixed cap; iterative deepening runs until time/stop"
	NullMovePrune: true,
	LogLevel:      "info",
}

// Load reads FORGE_*-prefixed environment variables and, if present, a
// forge.yaml/forge.json/forge.toml file in the working directory or any
// path named by the FORGE_CONFIG environment variable, merging over the
// package defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("hash_mb", defaults.HashMB)
	v.SetDefault("default_depth", defaults.DefaultDepth)
	v.SetDefault("null_move_pruning", defaults.NullMovePrune)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetConfigName("forge")
	v.AddConfigPath(".")
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, errors.Wrap(err, "config: reading config file")
		}
	}

	cfg := defaults
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshalling")
	}
	return &cfg, nil
}
