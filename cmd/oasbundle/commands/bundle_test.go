package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	petstoreDir   = "../../../testdata/petstore"
	petstoreEntry = petstoreDir + "/openapi.yaml"
)

const brokenSpec = `openapi: 3.0.3
info:
  title: Broken
  version: "1.0"
paths:
  /thing:
    $ref: ./missing.yaml
`

func writeBrokenSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(brokenSpec), 0o600))
	return path
}

func TestSetupBundleFlags(t *testing.T) {
	fs, flags := SetupBundleFlags()

	t.Run("default values", func(t *testing.T) {
		assert.False(t, flags.Strict, "expected Strict to be false by default")
		assert.Empty(t, flags.Output)
		assert.Empty(t, flags.Format)
		assert.Empty(t, flags.ProjectRoot)
		assert.Empty(t, flags.RootPrefixes)
		assert.False(t, flags.Quiet)
		assert.False(t, flags.Verbose)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{
			"--strict", "-o", "out.json", "--format", "json", "--project-root", "/repo",
			"--root-prefix", "proto/openapi/", "--root-prefix", "shared/", "-q", "-v", "api.yaml",
		}
		require.NoError(t, fs.Parse(args))

		assert.True(t, flags.Strict)
		assert.Equal(t, "out.json", flags.Output)
		assert.Equal(t, "json", flags.Format)
		assert.Equal(t, "/repo", flags.ProjectRoot)
		assert.Equal(t, prefixList{"proto/openapi/", "shared/"}, flags.RootPrefixes)
		assert.True(t, flags.Quiet)
		assert.True(t, flags.Verbose)
		assert.Equal(t, "api.yaml", fs.Arg(0))
	})

	t.Run("long output flag", func(t *testing.T) {
		fs2, flags2 := SetupBundleFlags()
		require.NoError(t, fs2.Parse([]string{"--output", "bundled.yaml", "--quiet", "api.yaml"}))
		assert.Equal(t, "bundled.yaml", flags2.Output)
		assert.True(t, flags2.Quiet)
	})

	t.Run("empty root prefix", func(t *testing.T) {
		fs3, _ := SetupBundleFlags()
		fs3.SetOutput(&bytes.Buffer{})
		assert.Error(t, fs3.Parse([]string{"--root-prefix", "", "api.yaml"}))
	})
}

func TestHandleBundle_Help(t *testing.T) {
	var stderr bytes.Buffer
	require.NoError(t, runBundle([]string{"--help"}, &bytes.Buffer{}, &stderr))
	assert.Contains(t, stderr.String(), "Usage: oasbundle bundle")
}

func TestHandleBundle_ArgErrors(t *testing.T) {
	tests := map[string][]string{
		"no args":         {},
		"too many":        {"a.yaml", "b.yaml", "c.yaml"},
		"output twice":    {"-o", "x.yaml", "a.yaml", "y.yaml"},
		"bad format":      {"--format", "toml", petstoreEntry},
		"unknown flag":    {"--nope", petstoreEntry},
		"missing entry":   {"does-not-exist.yaml"},
		"overwrite entry": {petstoreEntry, petstoreEntry},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, runBundle(args, &bytes.Buffer{}, &bytes.Buffer{}))
		})
	}
}

func TestHandleBundle_Stdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runBundle([]string{"--project-root", petstoreDir, petstoreEntry}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "$ref: '#/components/schemas/Pet'")
	assert.NotContains(t, stdout.String(), "pet.yaml")
	assert.Empty(t, stderr.String())
}

func TestHandleBundle_JSONFormat(t *testing.T) {
	var stdout bytes.Buffer
	err := runBundle([]string{"--format", "json", "--project-root", petstoreDir, petstoreEntry}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(stdout.Bytes(), []byte("{")), "expected JSON output")
}

func TestHandleBundle_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bundled.json")
	var stdout, stderr bytes.Buffer
	err := runBundle([]string{"--project-root", petstoreDir, petstoreEntry, out}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "bundled 4 file(s)")
	assert.Contains(t, stderr.String(), "Output: "+out)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("{")), "format follows the output extension")
}

func TestHandleBundle_QuietOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bundled.yaml")
	var stderr bytes.Buffer
	err := runBundle([]string{"-q", "-o", out, "--project-root", petstoreDir, petstoreEntry}, &bytes.Buffer{}, &stderr)
	require.NoError(t, err)
	assert.Empty(t, stderr.String())
	assert.FileExists(t, out)
}

func TestHandleBundle_LenientDiagnostics(t *testing.T) {
	entry := writeBrokenSpec(t)
	var stdout, stderr bytes.Buffer
	err := runBundle([]string{entry}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "Reference not found: "+filepath.Join(filepath.Dir(entry), "missing.yaml")+"\n", stderr.String())
	assert.Contains(t, stdout.String(), "$ref: ./missing.yaml")
}

func TestHandleBundle_StrictFails(t *testing.T) {
	entry := writeBrokenSpec(t)
	out := filepath.Join(filepath.Dir(entry), "bundled.yaml")

	err := runBundle([]string{"--strict", entry, out}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "referenced file not found")
	assert.NoFileExists(t, out)
}

func TestHandleBundle_FlagsAfterPaths(t *testing.T) {
	t.Run("strict after input", func(t *testing.T) {
		err := runBundle([]string{writeBrokenSpec(t), "--strict"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "referenced file not found")
		assert.NoFileExists(t, "--strict")
	})

	t.Run("strict after output", func(t *testing.T) {
		entry := writeBrokenSpec(t)
		out := filepath.Join(filepath.Dir(entry), "bundled.yaml")
		err := runBundle([]string{entry, out, "--strict"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "referenced file not found")
		assert.NoFileExists(t, out)
	})

	t.Run("mixed order", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "bundled.yaml")
		var stderr bytes.Buffer
		err := runBundle([]string{petstoreEntry, "--project-root", petstoreDir, out, "-q"}, &bytes.Buffer{}, &stderr)
		require.NoError(t, err)
		assert.FileExists(t, out)
		assert.Empty(t, stderr.String())
	})
}

func TestHandleBundle_StrictFromEnvironment(t *testing.T) {
	t.Setenv("OASBUNDLE_STRICT", "true")
	err := runBundle([]string{writeBrokenSpec(t)}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestHandleBundle_InvalidEnvironment(t *testing.T) {
	t.Setenv("OASBUNDLE_MAX_REF_DEPTH", "deep")
	err := runBundle([]string{petstoreEntry}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestHandleBundle_Verbose(t *testing.T) {
	var stderr bytes.Buffer
	err := runBundle([]string{"-v", "--project-root", petstoreDir, petstoreEntry}, &bytes.Buffer{}, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "level=DEBUG")
	assert.Contains(t, stderr.String(), "run_id=")
}
