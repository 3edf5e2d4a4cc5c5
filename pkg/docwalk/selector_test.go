package docwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberSelector(t *testing.T) {
	t.Run("matching pattern excludes the name", func(t *testing.T) {
		s, err := newMemberSelector([]string{"^_"})
		require.NoError(t, err)
		assert.False(t, s.selectName("_private", nil))
		assert.True(t, s.selectName("public", nil))
	})

	t.Run("negated pattern re-includes a previously excluded name", func(t *testing.T) {
		s, err := newMemberSelector([]string{"^_", `!^__init__$`})
		require.NoError(t, err)
		assert.False(t, s.selectName("_private", nil))
		assert.False(t, s.selectName("__str__", nil))
		assert.True(t, s.selectName("__init__", nil))
	})

	t.Run("later patterns override earlier ones", func(t *testing.T) {
		s, err := newMemberSelector([]string{`!^__init__$`, "^_"})
		require.NoError(t, err)
		// The exclusion comes last, so the earlier re-inclusion loses.
		assert.False(t, s.selectName("__init__", nil))
	})

	t.Run("unmatched names are kept", func(t *testing.T) {
		s, err := newMemberSelector([]string{"^_"})
		require.NoError(t, err)
		assert.True(t, s.selectName("speak", nil))
	})

	t.Run("explicit selection bypasses the chain", func(t *testing.T) {
		s, err := newMemberSelector([]string{"^_"})
		require.NoError(t, err)
		explicit := map[string]struct{}{"_private": {}}
		assert.True(t, s.selectName("_private", explicit))
		assert.False(t, s.selectName("public", explicit))
	})

	t.Run("decisions are memoized", func(t *testing.T) {
		s, err := newMemberSelector([]string{"^_"})
		require.NoError(t, err)
		assert.False(t, s.selectName("_private", nil))
		assert.Equal(t, map[string]bool{"_private": true}, s.memo)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := newMemberSelector([]string{"("})
		assert.Error(t, err)
	})
}
