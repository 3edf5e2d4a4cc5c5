package docwalk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing fields keep defaults", func(t *testing.T) {
		path := writeConfig(t, "filters:\n  - '^_'\n")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"^_"}, cfg.Filters)
		assert.Equal(t, "google", cfg.DocstringStyle)
		assert.Equal(t, defaultSpecialNamePattern, cfg.SpecialNamePattern)
	})

	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
filters:
  - '^_'
  - '!^__init__$'
docstring_style: markdown
inherited_members: true
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "markdown", cfg.DocstringStyle)
		assert.True(t, cfg.InheritedMembers)
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "filters: [")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("unknown docstring style", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DocstringStyle = "numpy"
		assert.Error(t, cfg.Validate())
	})

	t.Run("filter that does not compile", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Filters = []string{"!["}
		assert.Error(t, cfg.Validate())
	})

	t.Run("special name pattern that does not compile", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SpecialNamePattern = "("
		assert.Error(t, cfg.Validate())
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
