package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Saves    SavesConfig
	Database DatabaseConfig
}

// SavesConfig holds save-file settings. PreferredFormat is the one
// persisted preference the game exposes: JSON, XML or TXT.
type SavesConfig struct {
	Dir             string
	PreferredFormat string `mapstructure:"preferred_format"`
}

// DatabaseConfig holds sqlite settings for the round archive.
type DatabaseConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use prefix BLACKJACK_.
func Load() (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "blackjack")

	// default values
	v.SetDefault("saves.dir", filepath.Join(dataDir, "saved_games"))
	v.SetDefault("saves.preferred_format", "JSON")
	v.SetDefault("database.path", filepath.Join(dataDir, "blackjack.db"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BLACKJACK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "blackjack"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BLACKJACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config
// directory if needed. This is how the preferred-format choice made
// in the options view survives restarts.
func Save(cfg Config) error {
	path := os.Getenv("BLACKJACK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "blackjack", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("saves.dir", cfg.Saves.Dir)
	v.Set("saves.preferred_format", cfg.Saves.PreferredFormat)
	v.Set("database.path", cfg.Database.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
