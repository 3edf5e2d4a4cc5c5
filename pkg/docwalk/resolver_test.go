package docwalk

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nieomylnieja/docwalk/internal/testmodels"
	"github.com/nieomylnieja/docwalk/pkg/obj"
)

func TestResolve(t *testing.T) {
	registry := testmodels.NewRegistry()

	t.Run("module path yields one node per segment", func(t *testing.T) {
		leaf, err := resolve(registry, "sample.models")
		require.NoError(t, err)
		assert.Equal(t, "models", leaf.Name())
		assert.Equal(t, "sample.models", leaf.DottedPath())

		root := leaf.Root()
		assert.Equal(t, "sample", root.Name())
		assert.IsType(t, &obj.Module{}, root.Value())
	})

	t.Run("attribute segments resolve below the module", func(t *testing.T) {
		leaf, err := resolve(registry, "sample.models.Dog.speak")
		require.NoError(t, err)
		assert.Equal(t, "speak", leaf.Name())
		assert.Equal(t, "sample.models.Dog.speak", leaf.DottedPath())
		assert.Equal(t, "Bark.", leaf.Value().(*obj.Func).Doc)
	})

	t.Run("re-exported names resolve to their defining module", func(t *testing.T) {
		leaf, err := resolve(registry, "sample.Dog")
		require.NoError(t, err)
		parent, ok := leaf.Parent()
		require.True(t, ok)
		assert.Equal(t, "sample.models", parent.Value().(*obj.Module).Path())
		assert.Equal(t, "sample.models.Dog", leaf.DottedPath())
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := resolve(registry, "")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("unknown root module", func(t *testing.T) {
		_, err := resolve(registry, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing attribute", func(t *testing.T) {
		_, err := resolve(registry, "sample.models.Cat")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, err.Error(), `has no attribute "Cat"`)
	})
}

func TestUnwrapValue(t *testing.T) {
	inner := &obj.Func{Name: "inner"}

	t.Run("follows wrapper chains", func(t *testing.T) {
		assert.Same(t, inner, unwrapValue(wrapper{wrapper{inner}}))
	})

	t.Run("self referential wrapper stops", func(t *testing.T) {
		w := selfWrapper{}
		assert.Equal(t, w, unwrapValue(w))
	})

	t.Run("panicking wrapper is kept as is", func(t *testing.T) {
		w := panicWrapper{}
		assert.Equal(t, w, unwrapValue(w))
	})
}

type wrapper struct{ target any }

func (w wrapper) Unwrap() any { return w.target }

type selfWrapper struct{}

func (w selfWrapper) Unwrap() any { return w }

type panicWrapper struct{}

func (w panicWrapper) Unwrap() any { panic("no target") }
