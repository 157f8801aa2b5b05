package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileTightensExistingPermissions(t *testing.T) {
	target := filepath.Join(t.TempDir(), "bundled.yaml")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	require.NoError(t, WriteFile(target, []byte("new"), OwnerReadWrite))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, OwnerReadWrite, info.Mode().Perm())
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.yaml"), []byte("x"), OwnerReadWrite)
	assert.Error(t, err)
}
