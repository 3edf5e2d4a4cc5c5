package goload

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nieomylnieja/docwalk/internal/pathutils"
	"github.com/nieomylnieja/docwalk/pkg/obj"
)

func TestLoadDir(t *testing.T) {
	root, err := pathutils.FindModuleRoot()
	require.NoError(t, err)

	registry := obj.NewRegistry()
	require.NoError(t, LoadDir(registry, filepath.Join(root, "internal", "testmodels")))

	mod, ok := registry.Import("docwalk.internal.testmodels")
	require.True(t, ok, "package should register under the module's base name")
	assert.NotEmpty(t, mod.FilePath)
	assert.Contains(t, mod.Doc, "live object graph")

	t.Run("exported structs become classes", func(t *testing.T) {
		v, ok := mod.Get("Field")
		require.True(t, ok)
		cls, ok := v.(*obj.Class)
		require.True(t, ok)
		assert.Contains(t, cls.Doc, "declared-fields registry entry")
		assert.Same(t, mod, cls.Module())

		t.Run("fields are declared attributes", func(t *testing.T) {
			attrs := cls.DeclaredAttrs()
			assert.True(t, attrs.Has("Metadata"))
			assert.True(t, attrs.Has("Required"))
			doc, _ := attrs.Get("Required")
			assert.Equal(t, "bool", doc.Annotation)
		})

		t.Run("methods are class members", func(t *testing.T) {
			v, ok := cls.GetAttr("FieldRequired")
			require.True(t, ok)
			method, ok := v.(*obj.Func)
			require.True(t, ok)
			assert.Equal(t, "bool", method.Return)
		})
	})

	t.Run("exported functions carry signatures and source", func(t *testing.T) {
		v, ok := mod.Get("NewRegistry")
		require.True(t, ok)
		fn, ok := v.(*obj.Func)
		require.True(t, ok)
		assert.Contains(t, fn.Doc, "fixture graph")
		assert.Empty(t, fn.Params)
		assert.NotEmpty(t, fn.Return)
		require.NotNil(t, fn.Source)
		assert.Greater(t, fn.Source.Line, 1)
		assert.Contains(t, fn.Source.Text, "func NewRegistry()")
	})
}

func TestLoadDirOutsideModule(t *testing.T) {
	registry := obj.NewRegistry()
	assert.Error(t, LoadDir(registry, t.TempDir()))
}

func TestLoadDirDuplicateRegistration(t *testing.T) {
	root, err := pathutils.FindModuleRoot()
	require.NoError(t, err)
	dir := filepath.Join(root, "internal", "testmodels")

	registry := obj.NewRegistry()
	require.NoError(t, LoadDir(registry, dir))
	err = LoadDir(registry, dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, "already registered")
}
