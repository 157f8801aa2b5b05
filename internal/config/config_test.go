package config

import (
	"log/slog"
	"testing"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasbundle/bundler"
	"github.com/erraggy/oasbundle/oaserrors"
)

func loadFrom(t *testing.T, vars map[string]string) (*Config, error) {
	t.Helper()
	return load(env.Options{Prefix: Prefix, Environment: vars})
}

func TestLoadDefaults(t *testing.T) {
	c, err := loadFrom(t, map[string]string{})
	require.NoError(t, err)

	assert.Empty(t, c.ProjectRoot)
	assert.Equal(t, []string{"proto/openapi/"}, c.RootPrefixes)
	assert.False(t, c.Strict)
	assert.Equal(t, bundler.MaxRefDepth, c.MaxRefDepth)
	assert.Equal(t, bundler.MaxCachedDocuments, c.MaxCachedDocuments)
	assert.Equal(t, int64(bundler.MaxFileSize), c.MaxFileSize)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	c, err := loadFrom(t, map[string]string{
		"OASBUNDLE_PROJECT_ROOT":         "/repo",
		"OASBUNDLE_ROOT_PREFIXES":        "proto/openapi/,shared/",
		"OASBUNDLE_STRICT":               "true",
		"OASBUNDLE_MAX_REF_DEPTH":        "20",
		"OASBUNDLE_MAX_CACHED_DOCUMENTS": "5",
		"OASBUNDLE_MAX_FILE_SIZE":        "2048",
		"OASBUNDLE_LOG_LEVEL":            "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "/repo", c.ProjectRoot)
	assert.Equal(t, []string{"proto/openapi/", "shared/"}, c.RootPrefixes)
	assert.True(t, c.Strict)
	assert.Equal(t, 20, c.MaxRefDepth)
	assert.Equal(t, 5, c.MaxCachedDocuments)
	assert.Equal(t, int64(2048), c.MaxFileSize)

	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
	assert.Equal(t, bundler.ModeStrict, c.Mode())
}

func TestLoadFromProcessEnvironment(t *testing.T) {
	t.Setenv("OASBUNDLE_STRICT", "true")
	t.Setenv("OASBUNDLE_LOG_LEVEL", "warn")

	c, err := Load()
	require.NoError(t, err)
	assert.True(t, c.Strict)
	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"not a bool":      {"OASBUNDLE_STRICT": "maybe"},
		"not an int":      {"OASBUNDLE_MAX_REF_DEPTH": "deep"},
		"negative depth":  {"OASBUNDLE_MAX_REF_DEPTH": "-1"},
		"negative size":   {"OASBUNDLE_MAX_FILE_SIZE": "-10"},
		"unknown level":   {"OASBUNDLE_LOG_LEVEL": "chatty"},
		"negative caches": {"OASBUNDLE_MAX_CACHED_DOCUMENTS": "-3"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadFrom(t, vars)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}
}

func TestApply(t *testing.T) {
	c := &Config{
		ProjectRoot:        "/repo",
		RootPrefixes:       []string{"shared/"},
		Strict:             true,
		MaxRefDepth:        7,
		MaxCachedDocuments: 8,
		MaxFileSize:        9,
	}
	b := bundler.New()
	c.Apply(b)

	assert.Equal(t, bundler.ModeStrict, b.Mode)
	assert.Equal(t, "/repo", b.ProjectRoot)
	assert.Equal(t, []string{"shared/"}, b.RootPrefixes)
	assert.Equal(t, 7, b.MaxRefDepth)
	assert.Equal(t, 8, b.MaxCachedDocuments)
	assert.Equal(t, int64(9), b.MaxFileSize)

	c.RootPrefixes[0] = "changed/"
	assert.Equal(t, []string{"shared/"}, b.RootPrefixes, "prefixes are copied")
}

func TestOptionsBundle(t *testing.T) {
	c, err := loadFrom(t, map[string]string{"OASBUNDLE_PROJECT_ROOT": "../../testdata/petstore"})
	require.NoError(t, err)

	opts := append(c.Options(), bundler.WithEntryFile("../../testdata/petstore/openapi.yaml"))
	result, err := bundler.BundleWithOptions(opts...)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
}
