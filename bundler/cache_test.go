package bundler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasbundle/node"
	"github.com/erraggy/oasbundle/oaserrors"
)

func TestDocumentCacheLoadsOnce(t *testing.T) {
	dir := writeFixtures(t, map[string]string{"pet.yaml": "Pet:\n  type: object\n"})
	path := filepath.Join(dir, "pet.yaml")
	cache := NewDocumentCache(0, 0, nil)

	first, err := cache.Load(path)
	require.NoError(t, err)

	// Later edits are not observed within one run
	require.NoError(t, os.WriteFile(path, []byte("Other: {}\n"), 0o600))
	second, err := cache.Load(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, []string{path}, cache.Paths())
	assert.Equal(t, node.FormatYAML, cache.Format(path))
	assert.Equal(t, node.FormatUnknown, cache.Format(filepath.Join(dir, "never-loaded.yaml")))
}

func TestDocumentCacheErrors(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"bad.yaml":  "a: [1, 2\n",
		"big.json":  `{"description": "this document is larger than the limit"}`,
		"one.yaml":  "a: 1\n",
		"two.yaml":  "b: 2\n",
		"sub/.keep": "",
	})

	t.Run("missing", func(t *testing.T) {
		_, err := NewDocumentCache(0, 0, nil).Load(filepath.Join(dir, "missing.yaml"))
		var refErr *oaserrors.ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.True(t, refErr.IsMissingFile)
		assert.ErrorIs(t, err, oaserrors.ErrFileNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := NewDocumentCache(0, 0, nil).Load(filepath.Join(dir, "sub"))
		var refErr *oaserrors.ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.False(t, refErr.IsMissingFile)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := NewDocumentCache(0, 0, nil).Load(filepath.Join(dir, "bad.yaml"))
		assert.ErrorIs(t, err, oaserrors.ErrParse)
	})

	t.Run("file size", func(t *testing.T) {
		_, err := NewDocumentCache(0, 10, nil).Load(filepath.Join(dir, "big.json"))
		var limitErr *oaserrors.ResourceLimitError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, "file_size", limitErr.ResourceType)
		assert.Equal(t, int64(10), limitErr.Limit)
	})

	t.Run("document count", func(t *testing.T) {
		cache := NewDocumentCache(1, 0, nil)
		_, err := cache.Load(filepath.Join(dir, "one.yaml"))
		require.NoError(t, err)
		_, err = cache.Load(filepath.Join(dir, "one.yaml"))
		require.NoError(t, err, "cached documents do not count again")
		_, err = cache.Load(filepath.Join(dir, "two.yaml"))
		var limitErr *oaserrors.ResourceLimitError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, "cached_documents", limitErr.ResourceType)
	})
}
