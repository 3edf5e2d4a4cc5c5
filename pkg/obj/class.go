package obj

import "slices"

// Class is a live class object: a named declaration namespace with base
// classes. Attribute resolution and override precedence follow the
// linearized ancestor order.
type Class struct {
	// Doc is the class docstring.
	Doc string

	name     string
	bases    []*Class
	dict     *Map[any]
	declared *Map[AttrDoc]
	module   *Module
	mro      []*Class
}

// Meta is the class-of-classes sentinel exposed as __class__ on every
// class. Member enumeration excludes it together with Root.
var Meta = &Class{name: "type", dict: NewMap[any](), declared: NewMap[AttrDoc]()}

// Root is the universal base class. Every class created through NewClass
// ultimately derives from it. It carries the default special methods whose
// docstrings subclasses inherit verbatim until overridden.
var Root = newRoot()

func newRoot() *Class {
	c := &Class{name: "object", dict: NewMap[any](), declared: NewMap[AttrDoc]()}
	c.mro = []*Class{c}
	c.dict.Set("__class__", Meta)
	c.dict.Set(InitName, &Func{Name: InitName, Doc: "Initialize self."})
	c.dict.Set("__str__", &Func{Name: "__str__", Doc: "Return str(self)."})
	c.dict.Set("__repr__", &Func{Name: "__repr__", Doc: "Return repr(self)."})
	c.dict.Set("__eq__", &Func{Name: "__eq__", Doc: "Return self==value."})
	return c
}

// NewClass creates a class deriving from the given bases, or from Root when
// none are given.
func NewClass(name string, bases ...*Class) *Class {
	if len(bases) == 0 {
		bases = []*Class{Root}
	}
	return &Class{
		name:     name,
		bases:    slices.Clone(bases),
		dict:     NewMap[any](),
		declared: NewMap[AttrDoc](),
	}
}

func (c *Class) Name() string { return c.name }

// Module returns the class's defining module, if known.
func (c *Class) Module() *Module { return c.module }

// Bases returns the direct base classes.
func (c *Class) Bases() []*Class { return slices.Clone(c.bases) }

// SetBases replaces the direct base classes. It must be called before the
// linearized ancestor order is first computed.
func (c *Class) SetBases(bases ...*Class) {
	c.bases = slices.Clone(bases)
	c.mro = nil
}

// Define binds a name in the class's own declaration dict.
func (c *Class) Define(name string, value any) {
	c.dict.Set(name, value)
	if c.module != nil {
		adoptModule(value, c.module)
	}
}

// DeclareAttr records docstring and type metadata for a name declared in
// the class body without a value-bearing descriptor of its own.
func (c *Class) DeclareAttr(name string, doc AttrDoc) { c.declared.Set(name, doc) }

// DeclaredAttrs returns the class's own declared-attribute metadata.
func (c *Class) DeclaredAttrs() *Map[AttrDoc] { return c.declared }

// DictGet looks a name up in the class's own declaration dict only,
// returning the raw declaration-site value (wrappers included).
func (c *Class) DictGet(name string) (any, bool) { return c.dict.Get(name) }

// DictHas reports whether the class's own dict declares the name.
func (c *Class) DictHas(name string) bool { return c.dict.Has(name) }

// MRO returns the linearized ancestor order: the class itself first, Root
// last. The order is computed once with C3 linearization and cached.
// Hierarchies that C3 rejects fall back to a depth-first pre-order with
// duplicates removed.
func (c *Class) MRO() []*Class {
	if c.mro == nil {
		c.mro = linearize(c)
	}
	return slices.Clone(c.mro)
}

func linearize(c *Class) []*Class {
	seqs := make([][]*Class, 0, len(c.bases)+1)
	for _, b := range c.bases {
		seqs = append(seqs, b.MRO())
	}
	seqs = append(seqs, slices.Clone(c.bases))
	merged, ok := c3Merge(seqs)
	if !ok {
		merged = depthFirstAncestors(c)
	}
	return append([]*Class{c}, merged...)
}

func c3Merge(seqs [][]*Class) ([]*Class, bool) {
	var out []*Class
	for {
		remaining := false
		for _, s := range seqs {
			if len(s) > 0 {
				remaining = true
				break
			}
		}
		if !remaining {
			return out, true
		}
		var head *Class
		for _, s := range seqs {
			if len(s) == 0 {
				continue
			}
			if !inAnyTail(s[0], seqs) {
				head = s[0]
				break
			}
		}
		if head == nil {
			return nil, false
		}
		out = append(out, head)
		for i, s := range seqs {
			if len(s) > 0 && s[0] == head {
				seqs[i] = s[1:]
			}
		}
	}
}

func inAnyTail(c *Class, seqs [][]*Class) bool {
	for _, s := range seqs {
		if len(s) < 2 {
			continue
		}
		if slices.Contains(s[1:], c) {
			return true
		}
	}
	return false
}

func depthFirstAncestors(c *Class) []*Class {
	var out []*Class
	seen := map[*Class]bool{c: true}
	var walk func(cls *Class)
	walk = func(cls *Class) {
		for _, b := range cls.bases {
			if !seen[b] {
				seen[b] = true
				out = append(out, b)
				walk(b)
			}
		}
	}
	walk(c)
	return out
}

// GetAttr resolves a name through the linearized ancestor order, binding
// the result the way attribute access would: static and class method
// wrappers resolve to their underlying function, so the bound value alone
// cannot tell them apart from a plain function.
func (c *Class) GetAttr(name string) (any, bool) {
	for _, anc := range c.MRO() {
		if v, ok := anc.dict.Get(name); ok {
			switch w := v.(type) {
			case *StaticMethod:
				return w.Func, true
			case *ClassMethod:
				return w.Func, true
			}
			return v, true
		}
	}
	return nil, false
}

// Members enumerates every resolvable attribute name, own and inherited,
// sorted by name, with values bound as GetAttr binds them.
func (c *Class) Members() []Member {
	seen := make(map[string]bool)
	var names []string
	for _, anc := range c.MRO() {
		for _, k := range anc.dict.Keys() {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	slices.Sort(names)
	out := make([]Member, 0, len(names))
	for _, name := range names {
		v, _ := c.GetAttr(name)
		out = append(out, Member{Name: name, Value: v})
	}
	return out
}

func (c *Class) adoptModule(m *Module) {
	if c.module != nil || c == Root || c == Meta {
		return
	}
	c.module = m
	for _, k := range c.dict.Keys() {
		v, _ := c.dict.Get(k)
		adoptModule(v, m)
	}
}

func adoptModule(v any, m *Module) {
	switch t := v.(type) {
	case *Class:
		t.adoptModule(m)
	case *Func:
		t.adoptModule(m)
	case *StaticMethod:
		t.Func.adoptModule(m)
	case *ClassMethod:
		t.Func.adoptModule(m)
	case *Property:
		if t.Get != nil {
			t.Get.adoptModule(m)
		}
		if t.Set != nil {
			t.Set.adoptModule(m)
		}
	}
}

// StaticMethod marks a function declared in a class dict as not taking the
// instance. Attribute access binds it to the plain function.
type StaticMethod struct {
	Func *Func
}

// ClassMethod marks a function declared in a class dict as receiving the
// class. Attribute access binds it to the plain function.
type ClassMethod struct {
	Func *Func
}

// Property is a computed attribute with a getter and an optional setter.
type Property struct {
	Get *Func
	Set *Func
}
