// Package config loads oasbundle defaults from OASBUNDLE_* environment
// variables. Command-line flags override these values.
package config

import (
	"fmt"
	"log/slog"

	env "github.com/caarlos0/env/v11"

	"github.com/erraggy/oasbundle/bundler"
	"github.com/erraggy/oasbundle/oaserrors"
)

// Prefix is prepended to every variable name.
const Prefix = "OASBUNDLE_"

// Config holds the environment-level configuration.
type Config struct {
	ProjectRoot        string   `env:"PROJECT_ROOT"`
	RootPrefixes       []string `env:"ROOT_PREFIXES" envDefault:"proto/openapi/" envSeparator:","`
	Strict             bool     `env:"STRICT" envDefault:"false"`
	MaxRefDepth        int      `env:"MAX_REF_DEPTH" envDefault:"100"`
	MaxCachedDocuments int      `env:"MAX_CACHED_DOCUMENTS" envDefault:"100"`
	MaxFileSize        int64    `env:"MAX_FILE_SIZE" envDefault:"10485760"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return load(env.Options{Prefix: Prefix})
}

func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, &oaserrors.ConfigError{Option: "environment", Message: "cannot parse " + Prefix + "* variables", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects negative limits and unknown log levels.
func (c *Config) Validate() error {
	limits := []struct {
		name  string
		value int64
	}{
		{"MAX_REF_DEPTH", int64(c.MaxRefDepth)},
		{"MAX_CACHED_DOCUMENTS", int64(c.MaxCachedDocuments)},
		{"MAX_FILE_SIZE", c.MaxFileSize},
	}
	for _, l := range limits {
		if l.value < 0 {
			return &oaserrors.ConfigError{Option: Prefix + l.name, Value: fmt.Sprint(l.value), Message: "cannot be negative"}
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, &oaserrors.ConfigError{Option: Prefix + "LOG_LEVEL", Value: c.LogLevel, Cause: err}
	}
	return level, nil
}

// Mode returns the bundler mode selected by Strict.
func (c *Config) Mode() bundler.Mode {
	if c.Strict {
		return bundler.ModeStrict
	}
	return bundler.ModeLenient
}

// Apply copies the configuration onto b.
func (c *Config) Apply(b *bundler.Bundler) {
	b.Mode = c.Mode()
	b.ProjectRoot = c.ProjectRoot
	b.RootPrefixes = append([]string{}, c.RootPrefixes...)
	b.MaxRefDepth = c.MaxRefDepth
	b.MaxCachedDocuments = c.MaxCachedDocuments
	b.MaxFileSize = c.MaxFileSize
}

// Options returns the configuration as bundler options, for use with
// bundler.BundleWithOptions. Options appended later override these.
func (c *Config) Options() []bundler.Option {
	return []bundler.Option{
		bundler.WithMode(c.Mode()),
		bundler.WithProjectRoot(c.ProjectRoot),
		bundler.WithRootPrefixes(c.RootPrefixes...),
		bundler.WithMaxRefDepth(c.MaxRefDepth),
		bundler.WithMaxCachedDocuments(c.MaxCachedDocuments),
		bundler.WithMaxFileSize(c.MaxFileSize),
	}
}
