package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings read from the environment at start-up.
type Config struct {
	// Parameters is the parameters document the GUI edits and saves.
	// $VAR and ${VAR} references are expanded.
	Parameters string `env:"RSVP_PARAMETERS,expand" envDefault:"parameters/parameters.json"`

	// CreateMissing writes the built-in defaults when Parameters does not exist.
	CreateMissing bool `env:"RSVP_CREATE_MISSING" envDefault:"true"`

	// RepairInvalid loads values that violate their declaration as the
	// parameter's default instead of refusing to start.
	RepairInvalid bool `env:"RSVP_REPAIR_INVALID" envDefault:"false"`

	LogFile   string `env:"RSVP_LOG_FILE,expand" envDefault:"rsvp.log"`
	LogLevel  string `env:"RSVP_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"RSVP_LOG_FORMAT" envDefault:"text"`

	// WatchInterval is how often the parameters file is checked for changes
	// made by other programs. Zero disables watching.
	WatchInterval time.Duration `env:"RSVP_WATCH_INTERVAL" envDefault:"2s"`

	// Theme names the terminal color theme.
	Theme string `env:"RSVP_THEME" envDefault:"rsvp"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, cfg.validate()
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Parameters == "" {
		return fmt.Errorf("RSVP_PARAMETERS must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.WatchInterval < 0 {
		return fmt.Errorf("RSVP_WATCH_INTERVAL must not be negative")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
