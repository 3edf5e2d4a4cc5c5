package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("registered styles", func(t *testing.T) {
		for _, style := range Styles() {
			p, err := New(style, nil)
			require.NoError(t, err)
			assert.NotNil(t, p)
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		_, err := New("restructured", nil)
		assert.EqualError(t, err, `unknown docstring style "restructured"`)
	})
}

func TestStyles(t *testing.T) {
	assert.Equal(t, []string{StyleGoogle, StyleMarkdown}, Styles())
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "single line",
			text:     "  Hello.  ",
			expected: "Hello.",
		},
		{
			name:     "common indentation is removed",
			text:     "Summary.\n\n    Indented body.\n        Deeper.\n",
			expected: "Summary.\n\nIndented body.\n    Deeper.",
		},
		{
			name:     "leading and trailing blank lines are dropped",
			text:     "\n\n  Text.\n\n",
			expected: "Text.",
		},
		{
			name:     "empty",
			text:     "",
			expected: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Clean(tc.text))
		})
	}
}
