// Package attrdoc indexes declared-attribute metadata per scope.
//
// A declared attribute is a name documented at its declaration site with a
// docstring and a type annotation but holding no value-bearing descriptor
// of its own: plain assigned names and annotated-only names. Scopes are
// modules, class bodies, and class initializers. Extraction runs once per
// scope and is cached for the index's lifetime.
package attrdoc

import "github.com/nieomylnieja/docwalk/pkg/obj"

type Index struct {
	modules map[*obj.Module]*obj.Map[obj.AttrDoc]
	classes map[*obj.Class]*obj.Map[obj.AttrDoc]
	inits   map[*obj.Func]*obj.Map[obj.AttrDoc]
}

func NewIndex() *Index {
	return &Index{
		modules: make(map[*obj.Module]*obj.Map[obj.AttrDoc]),
		classes: make(map[*obj.Class]*obj.Map[obj.AttrDoc]),
		inits:   make(map[*obj.Func]*obj.Map[obj.AttrDoc]),
	}
}

// ForModule returns the module-scope declared attributes: declared names
// whose member value, if any, is not a descriptor.
func (i *Index) ForModule(m *obj.Module) *obj.Map[obj.AttrDoc] {
	if cached, ok := i.modules[m]; ok {
		return cached
	}
	out := obj.NewMap[obj.AttrDoc]()
	for _, name := range m.DeclaredAttrs().Keys() {
		if v, bound := m.Get(name); bound && isDescriptor(v) {
			continue
		}
		doc, _ := m.DeclaredAttrs().Get(name)
		out.Set(name, doc)
	}
	i.modules[m] = out
	return out
}

// ForClass returns the declared attributes of the class's own body scope.
// Ancestor scopes are not consulted; callers merge them in linearized
// order.
func (i *Index) ForClass(c *obj.Class) *obj.Map[obj.AttrDoc] {
	if cached, ok := i.classes[c]; ok {
		return cached
	}
	out := obj.NewMap[obj.AttrDoc]()
	for _, name := range c.DeclaredAttrs().Keys() {
		if v, bound := c.DictGet(name); bound && isDescriptor(v) {
			continue
		}
		doc, _ := c.DeclaredAttrs().Get(name)
		out.Set(name, doc)
	}
	i.classes[c] = out
	return out
}

// ForInit returns the instance attributes declared inside an initializer's
// body.
func (i *Index) ForInit(f *obj.Func) *obj.Map[obj.AttrDoc] {
	if cached, ok := i.inits[f]; ok {
		return cached
	}
	out := obj.NewMap[obj.AttrDoc]()
	for _, name := range f.DeclaredAttrs().Keys() {
		doc, _ := f.DeclaredAttrs().Get(name)
		out.Set(name, doc)
	}
	i.inits[f] = out
	return out
}

// Merge copies src into dst. Existing names are overwritten in place, so
// merging scopes from most base to most derived lets later declarations
// win while the first declaration keeps its position.
func Merge(dst, src *obj.Map[obj.AttrDoc]) {
	for _, name := range src.Keys() {
		doc, _ := src.Get(name)
		dst.Set(name, doc)
	}
}

// isDescriptor reports whether a value documents itself; names bound to
// such values never come from the declared map.
func isDescriptor(v any) bool {
	switch v.(type) {
	case *obj.Module, *obj.Class, *obj.Func, *obj.Property, *obj.StaticMethod, *obj.ClassMethod:
		return true
	}
	return false
}
