package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mroNames(c *Class) []string {
	mro := c.MRO()
	names := make([]string, 0, len(mro))
	for _, anc := range mro {
		names = append(names, anc.Name())
	}
	return names
}

func TestClassMRO(t *testing.T) {
	t.Run("single inheritance", func(t *testing.T) {
		a := NewClass("A")
		b := NewClass("B", a)
		assert.Equal(t, []string{"B", "A", "object"}, mroNames(b))
	})

	t.Run("diamond", func(t *testing.T) {
		a := NewClass("A")
		b := NewClass("B", a)
		c := NewClass("C", a)
		d := NewClass("D", b, c)
		assert.Equal(t, []string{"D", "B", "C", "A", "object"}, mroNames(d))
	})

	t.Run("inconsistent hierarchy falls back to depth first", func(t *testing.T) {
		a := NewClass("A")
		b := NewClass("B", a)
		// Listing a base before its own subclass is rejected by the
		// linearization.
		c := NewClass("C", a, b)
		assert.Equal(t, []string{"C", "A", "object", "B"}, mroNames(c))
	})

	t.Run("root linearizes to itself", func(t *testing.T) {
		assert.Equal(t, []string{"object"}, mroNames(Root))
	})
}

func TestClassGetAttr(t *testing.T) {
	base := NewClass("Base")
	base.Define("speak", &Func{Name: "speak", Doc: "base"})
	derived := NewClass("Derived", base)
	derived.Define("speak", &Func{Name: "speak", Doc: "derived"})
	derived.Define("fetch", &StaticMethod{Func: &Func{Name: "fetch"}})
	derived.Define("count", &ClassMethod{Func: &Func{Name: "count"}})

	t.Run("override wins over ancestor", func(t *testing.T) {
		v, ok := derived.GetAttr("speak")
		require.True(t, ok)
		assert.Equal(t, "derived", v.(*Func).Doc)
	})

	t.Run("inherited resolves through ancestors", func(t *testing.T) {
		v, ok := derived.GetAttr(InitName)
		require.True(t, ok)
		assert.Equal(t, "Initialize self.", v.(*Func).Doc)
	})

	t.Run("wrappers bind to the plain function", func(t *testing.T) {
		v, ok := derived.GetAttr("fetch")
		require.True(t, ok)
		assert.IsType(t, &Func{}, v)
		v, ok = derived.GetAttr("count")
		require.True(t, ok)
		assert.IsType(t, &Func{}, v)
	})

	t.Run("missing name", func(t *testing.T) {
		_, ok := derived.GetAttr("nope")
		assert.False(t, ok)
	})
}

func TestClassMembers(t *testing.T) {
	base := NewClass("Base")
	base.Define("b_method", &Func{Name: "b_method"})
	derived := NewClass("Derived", base)
	derived.Define("a_method", &Func{Name: "a_method"})

	var names []string
	for _, m := range derived.Members() {
		names = append(names, m.Name)
	}
	// Own and inherited names, sorted, Root's defaults included.
	assert.Equal(t, []string{"__class__", "__eq__", InitName, "__repr__", "__str__", "a_method", "b_method"}, names)
}

func TestClassAdoptsModule(t *testing.T) {
	cls := NewClass("Thing")
	method := &Func{Name: "run"}
	cls.Define("run", method)

	defining := NewModule("pkg.things")
	defining.Define("Thing", cls)
	assert.Same(t, defining, cls.Module())
	assert.Same(t, defining, method.Module())

	// Re-exporting keeps the original definition site.
	facade := NewModule("pkg")
	facade.Define("Thing", cls)
	assert.Same(t, defining, cls.Module())
}
