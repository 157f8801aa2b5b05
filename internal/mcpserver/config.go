package mcpserver

import (
	"log/slog"
	"slices"

	"github.com/erraggy/oasbundle/bundler"
	"github.com/erraggy/oasbundle/internal/config"
)

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// logger receives bundler logs once Run has started. Handlers called
// directly leave it nil and bundle silently.
var logger *slog.Logger

// loadConfig reads configuration from OASBUNDLE_* environment variables.
// An invalid environment logs a warning and falls back to the defaults.
func loadConfig() *config.Config {
	c, err := config.Load()
	if err != nil {
		slog.Warn("invalid OASBUNDLE_* environment, using defaults", "error", err)
		return defaultConfig()
	}
	return c
}

func defaultConfig() *config.Config {
	return &config.Config{
		RootPrefixes:       slices.Clone(bundler.DefaultRootPrefixes),
		MaxRefDepth:        bundler.MaxRefDepth,
		MaxCachedDocuments: bundler.MaxCachedDocuments,
		MaxFileSize:        bundler.MaxFileSize,
		LogLevel:           "info",
	}
}

// newBundler returns a bundler configured from cfg. projectRoot and strict
// override the environment when set.
func newBundler(projectRoot string, strict bool) *bundler.Bundler {
	b := bundler.New()
	cfg.Apply(b)
	if projectRoot != "" {
		b.ProjectRoot = projectRoot
	}
	if strict {
		b.Mode = bundler.ModeStrict
	}
	if logger != nil {
		b.Logger = bundler.NewSlogAdapter(logger)
	}
	return b
}
