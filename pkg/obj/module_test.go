package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegister(t *testing.T) {
	t.Run("creates implicit parent packages", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(NewModule("a.b.c")))

		parent, ok := r.Import("a.b")
		require.True(t, ok)
		assert.True(t, parent.IsPackage())
		root, ok := r.Import("a")
		require.True(t, ok)
		assert.True(t, root.IsPackage())

		child, ok := root.Get("b")
		require.True(t, ok)
		assert.Same(t, parent, child)
	})

	t.Run("explicit registration replaces the implicit placeholder", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(NewModule("a.b.c")))

		b := NewModule("a.b")
		b.Doc = "the real thing"
		require.NoError(t, r.Register(b))

		got, ok := r.Import("a.b")
		require.True(t, ok)
		assert.Same(t, b, got)
		// The placeholder's submodules carry over.
		subs := got.Submodules()
		require.Len(t, subs, 1)
		assert.Equal(t, "a.b.c", subs[0].Path())
		// The parent now links to the replacement.
		root, _ := r.Import("a")
		child, _ := root.Get("b")
		assert.Same(t, b, child)
	})

	t.Run("duplicate explicit registration fails", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(NewModule("a")))
		assert.Error(t, r.Register(NewModule("a")))
	})

	t.Run("empty path fails", func(t *testing.T) {
		r := NewRegistry()
		assert.Error(t, r.Register(NewModule("")))
	})
}

func TestModuleGet(t *testing.T) {
	r := NewRegistry()
	m := NewModule("pkg")
	m.Define("value", 42)
	require.NoError(t, r.Register(m))
	require.NoError(t, r.Register(NewModule("pkg.sub")))

	v, ok := m.Get("value")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	sub, ok := m.Get("sub")
	require.True(t, ok)
	assert.Equal(t, "pkg.sub", sub.(*Module).Path())

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestModuleOf(t *testing.T) {
	m := NewModule("pkg")
	cls := NewClass("Thing")
	fn := &Func{Name: "run"}
	m.Define("Thing", cls)
	m.Define("run", fn)

	assert.Same(t, m, ModuleOf(cls))
	assert.Same(t, m, ModuleOf(fn))
	assert.Same(t, m, ModuleOf(&StaticMethod{Func: fn}))
	assert.Same(t, m, ModuleOf(&Property{Get: fn}))
	assert.Nil(t, ModuleOf(&Property{}))
	assert.Nil(t, ModuleOf("plain value"))
}
