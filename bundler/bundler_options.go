package bundler

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasbundle/node"
)

// Option is a function that configures a bundle operation
type Option func(*bundleConfig) error

// bundleConfig holds configuration for a bundle operation
type bundleConfig struct {
	entryFile  *string
	outputFile string

	mode         Mode
	projectRoot  string
	rootPrefixes []string
	format       node.Format
	logger       Logger

	// Resource limits (0 means use default)
	maxRefDepth        int
	maxCachedDocuments int
	maxFileSize        int64
}

// BundleWithOptions bundles a document using functional options.
//
// Example:
//
//	result, err := bundler.BundleWithOptions(
//	    bundler.WithEntryFile("api/openapi.yaml"),
//	    bundler.WithOutputFile("dist/openapi.yaml"),
//	    bundler.WithMode(bundler.ModeStrict),
//	)
func BundleWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("bundler: invalid options: %w", err)
	}

	b := &Bundler{
		Mode:               cfg.mode,
		ProjectRoot:        cfg.projectRoot,
		RootPrefixes:       cfg.rootPrefixes,
		Format:             cfg.format,
		Logger:             cfg.logger,
		MaxRefDepth:        cfg.maxRefDepth,
		MaxCachedDocuments: cfg.maxCachedDocuments,
		MaxFileSize:        cfg.maxFileSize,
	}
	return b.Bundle(*cfg.entryFile, cfg.outputFile)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*bundleConfig, error) {
	cfg := &bundleConfig{
		mode:         ModeLenient,
		rootPrefixes: slices.Clone(DefaultRootPrefixes),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.entryFile == nil || *cfg.entryFile == "" {
		return nil, fmt.Errorf("bundler: must specify an entry document (use WithEntryFile)")
	}
	return cfg, nil
}

// WithEntryFile specifies the root document to bundle
func WithEntryFile(path string) Option {
	return func(cfg *bundleConfig) error {
		cfg.entryFile = &path
		return nil
	}
}

// WithOutputFile specifies where to write the bundled document.
// Without it nothing is written and callers use Result.Marshal.
func WithOutputFile(path string) Option {
	return func(cfg *bundleConfig) error {
		cfg.outputFile = path
		return nil
	}
}

// WithMode selects lenient (default) or strict handling of reference problems
func WithMode(mode Mode) Option {
	return func(cfg *bundleConfig) error {
		if mode != ModeLenient && mode != ModeStrict {
			return fmt.Errorf("bundler: unknown mode %d", mode)
		}
		cfg.mode = mode
		return nil
	}
}

// WithStrict is shorthand for WithMode(ModeStrict) when enabled is true
func WithStrict(enabled bool) Option {
	if enabled {
		return WithMode(ModeStrict)
	}
	return WithMode(ModeLenient)
}

// WithProjectRoot sets the directory that root-prefixed references resolve against
func WithProjectRoot(dir string) Option {
	return func(cfg *bundleConfig) error {
		cfg.projectRoot = dir
		return nil
	}
}

// WithRootPrefixes replaces the project-root-relative reference prefixes.
// An empty list disables project-root resolution.
func WithRootPrefixes(prefixes ...string) Option {
	return func(cfg *bundleConfig) error {
		cfg.rootPrefixes = append([]string{}, prefixes...)
		return nil
	}
}

// WithFormat forces the output format
func WithFormat(f node.Format) Option {
	return func(cfg *bundleConfig) error {
		cfg.format = f
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(l Logger) Option {
	return func(cfg *bundleConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxRefDepth sets the maximum length of a reference chain.
// A value of 0 means use the default (100).
// Returns an error if depth is negative.
func WithMaxRefDepth(depth int) Option {
	return func(cfg *bundleConfig) error {
		if depth < 0 {
			return fmt.Errorf("bundler: maxRefDepth cannot be negative")
		}
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithMaxCachedDocuments sets the maximum number of documents loaded per run.
// A value of 0 means use the default (100).
// Returns an error if count is negative.
func WithMaxCachedDocuments(count int) Option {
	return func(cfg *bundleConfig) error {
		if count < 0 {
			return fmt.Errorf("bundler: maxCachedDocuments cannot be negative")
		}
		cfg.maxCachedDocuments = count
		return nil
	}
}

// WithMaxFileSize sets the maximum size in bytes of any loaded document.
// A value of 0 means use the default (10MB).
// Returns an error if size is negative.
func WithMaxFileSize(size int64) Option {
	return func(cfg *bundleConfig) error {
		if size < 0 {
			return fmt.Errorf("bundler: maxFileSize cannot be negative")
		}
		cfg.maxFileSize = size
		return nil
	}
}
