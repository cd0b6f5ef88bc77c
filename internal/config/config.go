// ABOUTME: Viper-backed configuration: defaults, optional config.yml, env overrides
// ABOUTME: Precedence is flags > SMCGET_* environment > config file > defaults

package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the tool-level settings. Flags override whatever Load
// resolves.
type Config struct {
	DataDir string `mapstructure:"data_dir"` // repository root
	Verbose bool   `mapstructure:"verbose"`
	Color   string `mapstructure:"color"` // auto, always, never
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		DataDir: DefaultDataDir(),
		Verbose: false,
		Color:   "auto",
	}
}

// Load resolves the configuration. When configFile is empty, the optional
// config.yml in the XDG config dir is used; a missing file is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("color", d.Color)

	v.SetEnvPrefix("SMCGET")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("invalid color mode %q: expected auto, always, or never", cfg.Color)
	}
	return &cfg, nil
}
