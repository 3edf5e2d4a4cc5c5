package pathutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindModuleRoot(t *testing.T) {
	root, err := FindModuleRoot()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "go.mod"))
}

func TestFindModuleRootFrom(t *testing.T) {
	t.Run("walks up to the go.mod directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example\n"), 0o600))
		nested := filepath.Join(dir, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o750))

		root, err := findModuleRootFrom(nested)
		require.NoError(t, err)
		assert.Equal(t, dir, root)
	})

	t.Run("fails outside any module", func(t *testing.T) {
		_, err := findModuleRootFrom(t.TempDir())
		assert.ErrorContains(t, err, "go.mod not found")
	})
}
