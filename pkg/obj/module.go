package obj

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Module is a loadable namespace: a dotted-path unit exposing named members
// through attribute lookup. A module holding submodules is a package.
type Module struct {
	// Doc is the module docstring.
	Doc string
	// FilePath is the module's resident file, if any.
	FilePath string
	// Source is the module's full source text. When empty, source lookups
	// fall back to reading FilePath.
	Source string

	path       string
	pkg        bool
	implicit   bool
	members    *Map[any]
	submodules *Map[*Module]
	declared   *Map[AttrDoc]
}

func NewModule(path string) *Module {
	return &Module{
		path:       path,
		members:    NewMap[any](),
		submodules: NewMap[*Module](),
		declared:   NewMap[AttrDoc](),
	}
}

// Path returns the full dotted module path.
func (m *Module) Path() string { return m.path }

// Name returns the last path segment.
func (m *Module) Name() string {
	if i := strings.LastIndex(m.path, "."); i >= 0 {
		return m.path[i+1:]
	}
	return m.path
}

// Define binds a member name. The module becomes the value's defining
// namespace unless the value already has one, so re-exporting a name keeps
// its original definition site.
func (m *Module) Define(name string, value any) {
	m.members.Set(name, value)
	switch v := value.(type) {
	case *Class:
		v.adoptModule(m)
	case *Func:
		v.adoptModule(m)
	}
}

// DeclareAttr records docstring and type metadata for a name declared in
// the module without a value-bearing descriptor of its own.
func (m *Module) DeclareAttr(name string, doc AttrDoc) { m.declared.Set(name, doc) }

// DeclaredAttrs returns the module's declared-attribute metadata in
// declaration order.
func (m *Module) DeclaredAttrs() *Map[AttrDoc] { return m.declared }

// Get resolves an attribute: members first, then submodules.
func (m *Module) Get(name string) (any, bool) {
	if v, ok := m.members.Get(name); ok {
		return v, true
	}
	if sub, ok := m.submodules.Get(name); ok {
		return sub, true
	}
	return nil, false
}

// Member is a named member as enumeration yields it.
type Member struct {
	Name  string
	Value any
}

// Members returns the module's members sorted by name. Submodules are not
// included; they are enumerated separately through Submodules.
func (m *Module) Members() []Member {
	keys := m.members.Keys()
	slices.Sort(keys)
	out := make([]Member, 0, len(keys))
	for _, k := range keys {
		v, _ := m.members.Get(k)
		out = append(out, Member{Name: k, Value: v})
	}
	return out
}

// IsPackage reports whether the module is a namespace package.
func (m *Module) IsPackage() bool { return m.pkg || m.submodules.Len() > 0 }

// Submodules returns the direct submodules sorted by name.
func (m *Module) Submodules() []*Module {
	keys := m.submodules.Keys()
	slices.Sort(keys)
	out := make([]*Module, 0, len(keys))
	for _, k := range keys {
		sub, _ := m.submodules.Get(k)
		out = append(out, sub)
	}
	return out
}

func (m *Module) addSubmodule(sub *Module) { m.submodules.Set(sub.Name(), sub) }

// Registry holds the loadable modules of a live object graph.
type Registry struct {
	modules map[string]*Module
}

func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Register adds a module under its dotted path, creating implicit parent
// packages as needed and linking the module into its parent. Registering a
// path that an earlier registration only created implicitly replaces the
// placeholder and adopts its submodules.
func (r *Registry) Register(m *Module) error {
	if m.path == "" {
		return errors.New("module path must not be empty")
	}
	if old, ok := r.modules[m.path]; ok {
		if !old.implicit {
			return errors.Errorf("module %q already registered", m.path)
		}
		for _, k := range old.submodules.Keys() {
			sub, _ := old.submodules.Get(k)
			m.submodules.Set(k, sub)
		}
		m.pkg = m.pkg || old.pkg
	}
	r.modules[m.path] = m

	child := m
	segments := strings.Split(m.path, ".")
	for i := len(segments) - 1; i > 0; i-- {
		parentPath := strings.Join(segments[:i], ".")
		parent, ok := r.modules[parentPath]
		if !ok {
			parent = NewModule(parentPath)
			parent.pkg = true
			parent.implicit = true
			r.modules[parentPath] = parent
		}
		parent.addSubmodule(child)
		if ok {
			break
		}
		child = parent
	}
	return nil
}

// Import returns the module registered under the dotted path.
func (r *Registry) Import(path string) (*Module, bool) {
	m, ok := r.modules[path]
	return m, ok
}

// ModuleOf returns the defining module of a live object, or nil when the
// object carries no definition site (plain values, field entries).
func ModuleOf(v any) *Module {
	switch t := v.(type) {
	case *Module:
		return t
	case *Class:
		return t.module
	case *Func:
		if t == nil {
			return nil
		}
		return t.module
	case *StaticMethod:
		return ModuleOf(t.Func)
	case *ClassMethod:
		return ModuleOf(t.Func)
	case *Property:
		return ModuleOf(t.Get)
	}
	return nil
}
