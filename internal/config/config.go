package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Key modes select how a line of text is split into symbols.
const (
	ModeBytes    = "bytes"
	ModeRunes    = "runes"
	ModeSegments = "segments"
)

// Config holds all configuration for the ptrie command
type Config struct {
	Keys  KeysConfig  `mapstructure:"keys"`
	Cache CacheConfig `mapstructure:"cache"`
	Log   LogConfig   `mapstructure:"log"`
}

// KeysConfig describes the key file and how keys are split
type KeysConfig struct {
	File      string `mapstructure:"file"`
	Mode      string `mapstructure:"mode"`
	Separator string `mapstructure:"separator"`
}

// CacheConfig sizes the prefix resolution cache
type CacheConfig struct {
	Size int `mapstructure:"size"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// LoadConfig loads configuration from defaults, an optional file, the
// environment (PTRIE_ prefix) and finally any flags that were set.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("ptrie")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// flagKeys maps config keys to command line flag names
var flagKeys = map[string]string{
	"keys.file":      "keys",
	"keys.mode":      "mode",
	"keys.separator": "sep",
	"cache.size":     "cache-size",
	"log.level":      "log-level",
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("keys.mode", ModeBytes)
	v.SetDefault("keys.separator", "/")
	v.SetDefault("cache.size", 1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	switch c.Keys.Mode {
	case ModeBytes, ModeRunes:
	case ModeSegments:
		if c.Keys.Separator == "" {
			return fmt.Errorf("keys.separator must be set in %s mode", ModeSegments)
		}
	default:
		return fmt.Errorf("unknown keys.mode %q", c.Keys.Mode)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative, got %d", c.Cache.Size)
	}
	return nil
}
