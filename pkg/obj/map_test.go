package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	t.Run("keys keep insertion order", func(t *testing.T) {
		m := NewMap[int]()
		m.Set("c", 1)
		m.Set("a", 2)
		m.Set("b", 3)
		assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	})

	t.Run("replacing a key keeps its position", func(t *testing.T) {
		m := NewMap[int]()
		m.Set("a", 1)
		m.Set("b", 2)
		m.Set("a", 3)
		assert.Equal(t, []string{"a", "b"}, m.Keys())
		v, ok := m.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 3, v)
	})

	t.Run("nil map reads", func(t *testing.T) {
		var m *Map[int]
		_, ok := m.Get("a")
		assert.False(t, ok)
		assert.False(t, m.Has("a"))
		assert.Empty(t, m.Keys())
		assert.Zero(t, m.Len())
	})
}
