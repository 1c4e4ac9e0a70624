// Package config loads scan parameters for the pdf417scan CLI from built-in
// defaults, a config file, and environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

const (
	// FileName is the base config file name (without extension), searched
	// for as pdf417scan.yaml/json/toml in the paths Load adds (the working
	// directory and $HOME/.config/pdf417scan).
	FileName = "pdf417scan"

	// EnvPrefix namespaces environment variable overrides, e.g.
	// PDF417SCAN_MIN_CODEWORD_WIDTH.
	EnvPrefix = "PDF417SCAN"
)

// Config holds the tunable parameters of a scan attempt.
type Config struct {
	MinCodewordWidth int `mapstructure:"min_codeword_width"`
	MaxCodewordWidth int `mapstructure:"max_codeword_width"`
}

// Validate reports whether c's fields form a usable codeword width range.
func (c *Config) Validate() error {
	if c.MinCodewordWidth <= 0 {
		return errors.New("min_codeword_width must be positive")
	}
	if c.MaxCodewordWidth < c.MinCodewordWidth {
		return errors.New("max_codeword_width must be >= min_codeword_width")
	}
	return nil
}

// Loader reads Config from a pdf417scan config file, PDF417SCAN_* env vars,
// and defaults, via a shared viper instance.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader bound to the global viper instance, so flag
// bindings set up by the caller (e.g. cobra's PersistentFlags) take effect.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load reads configuration from file/env/defaults, unmarshals it, and
// validates it.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(FileName)
	l.v.SetConfigType("yaml")
	l.v.AddConfigPath(".")
	l.v.AddConfigPath("$HOME/.config/pdf417scan")

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()

	l.v.SetDefault("min_codeword_width", 2)
	l.v.SetDefault("max_codeword_width", 30)

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
