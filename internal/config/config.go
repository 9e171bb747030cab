// Package config holds the histgen configuration.
//
// Settings come from an optional .histgen.toml or .histgen.yaml file in the
// working directory; command-line flags override them.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/revertable/internal/logging"
)

// Config is the generator configuration.
type Config struct {
	// Suffix replaces ".go" in the name of generated files.
	Suffix string `toml:"suffix" yaml:"suffix"`

	// Journal names the field holding the history.Journal. Empty means the
	// field is located by type.
	Journal string `toml:"journal" yaml:"journal"`

	// Types lists the aggregates to generate. Empty means every struct in
	// the file that carries a journal of its own type.
	Types []string `toml:"types" yaml:"types"`

	Log   LogConfig   `toml:"log" yaml:"log"`
	Watch WatchConfig `toml:"watch" yaml:"watch"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is a time.ParseDuration string.
	Debounce string `toml:"debounce" yaml:"debounce"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Suffix: "_history.go",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{
			Debounce: "200ms",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if !strings.HasSuffix(c.Suffix, ".go") {
		return fmt.Errorf("%w: suffix %q must end in .go", ErrInvalidValue, c.Suffix)
	}
	if c.Suffix == ".go" {
		return fmt.Errorf("%w: suffix %q would overwrite the source file", ErrInvalidValue, c.Suffix)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log level %q", ErrInvalidValue, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidValue, c.Log.Format)
	}
	if _, err := c.Debounce(); err != nil {
		return err
	}
	return nil
}

// Debounce returns the parsed watch debounce interval.
func (c Config) Debounce() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("%w: debounce %q: %v", ErrInvalidValue, c.Watch.Debounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: debounce %q is negative", ErrInvalidValue, c.Watch.Debounce)
	}
	return d, nil
}

// LoggerConfig converts the log settings for logging.New.
func (c Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.Log.Level)
	cfg.JSON = c.Log.Format == "json"
	return cfg
}
