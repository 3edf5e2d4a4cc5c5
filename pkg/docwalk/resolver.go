package docwalk

import (
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/docwalk/pkg/obj"
)

var (
	// ErrInvalidPath reports an empty dotted path.
	ErrInvalidPath = errors.New("path must be a non-empty dotted path")
	// ErrNotFound reports that no prefix of the path loads as a module.
	ErrNotFound = errors.New("module not found")
)

// nodeArena stores resolution nodes. Each node references its parent by
// index only; the chain is write-once and traversed upward, never down.
type nodeArena struct {
	nodes []nodeRecord
}

type nodeRecord struct {
	value  any
	name   string
	parent int // -1 for roots
}

// node is a handle into the arena.
type node struct {
	arena *nodeArena
	idx   int
}

func (a *nodeArena) add(value any, name string, parent int) node {
	a.nodes = append(a.nodes, nodeRecord{value: unwrapValue(value), name: name, parent: parent})
	return node{arena: a, idx: len(a.nodes) - 1}
}

// unwrapValue follows wrapped callables to their innermost target, best
// effort: a panicking or self-referential Unwrap leaves the value as is.
func unwrapValue(value any) any {
	for range 32 {
		w, ok := value.(interface{ Unwrap() any })
		if !ok {
			return value
		}
		inner := safeUnwrap(w)
		if inner == nil || inner == value {
			return value
		}
		value = inner
	}
	return value
}

func safeUnwrap(w interface{ Unwrap() any }) (inner any) {
	defer func() {
		if recover() != nil {
			inner = nil
		}
	}()
	return w.Unwrap()
}

func (n node) record() nodeRecord { return n.arena.nodes[n.idx] }

func (n node) Value() any { return n.record().value }

func (n node) Name() string { return n.record().name }

func (n node) Parent() (node, bool) {
	p := n.record().parent
	if p < 0 {
		return node{}, false
	}
	return node{arena: n.arena, idx: p}, true
}

func (n node) Root() node {
	for {
		p, ok := n.Parent()
		if !ok {
			return n
		}
		n = p
	}
}

// DottedPath joins names from the root down to this node.
func (n node) DottedPath() string {
	var parts []string
	for cur := n; ; {
		parts = append(parts, cur.Name())
		p, ok := cur.Parent()
		if !ok {
			break
		}
		cur = p
	}
	slices.Reverse(parts)
	return strings.Join(parts, ".")
}

// FilePath returns the resident file of the node's nearest enclosing
// module, or its own for module nodes.
func (n node) FilePath() string {
	for cur := n; ; {
		if m, ok := cur.Value().(*obj.Module); ok {
			return m.FilePath
		}
		p, ok := cur.Parent()
		if !ok {
			return ""
		}
		cur = p
	}
}

// resolve turns a dotted path into the leaf of a backward-linked node chain
// over the registry's live objects.
//
// The longest loadable prefix of the path is imported as a module, with one
// node per path segment; the remaining segments resolve through attribute
// lookup. Afterwards the nearest module ancestor of the leaf is corrected
// to the leaf object's true defining module, so source and docstring
// lookups for re-exported names land where the object is defined rather
// than where it was imported.
func resolve(reg *obj.Registry, path string) (node, error) {
	if path == "" {
		return node{}, ErrInvalidPath
	}
	segments := strings.Split(path, ".")
	var pending []string
	var mod *obj.Module
	for {
		m, ok := reg.Import(strings.Join(segments, "."))
		if ok {
			mod = m
			break
		}
		if len(segments) == 1 {
			return node{}, errors.Wrapf(ErrNotFound, "no module named %q", segments[0])
		}
		pending = append([]string{segments[len(segments)-1]}, pending...)
		segments = segments[:len(segments)-1]
	}

	arena := &nodeArena{}
	cur := addModuleChain(arena, reg, mod)
	for _, name := range pending {
		value, ok := attrLookup(cur.Value(), name)
		if !ok {
			return node{}, errors.Errorf("object %q has no attribute %q", cur.DottedPath(), name)
		}
		cur = arena.add(value, name, cur.idx)
	}
	spliceDefiningModule(arena, reg, cur)
	return cur, nil
}

// addModuleChain emits one node per module path segment. Parent packages
// always exist: the registry creates them implicitly on registration.
func addModuleChain(arena *nodeArena, reg *obj.Registry, mod *obj.Module) node {
	segments := strings.Split(mod.Path(), ".")
	parent := -1
	var cur node
	for i, seg := range segments {
		prefix, ok := reg.Import(strings.Join(segments[:i+1], "."))
		if !ok {
			prefix = mod
		}
		cur = arena.add(prefix, seg, parent)
		parent = cur.idx
	}
	return cur
}

func attrLookup(value any, name string) (any, bool) {
	switch v := value.(type) {
	case *obj.Module:
		return v.Get(name)
	case *obj.Class:
		return v.GetAttr(name)
	}
	return nil, false
}

// spliceDefiningModule rewires the leaf's nearest module ancestor to the
// true defining module of the first object below it that has one.
func spliceDefiningModule(arena *nodeArena, reg *obj.Registry, leaf node) {
	if _, isModule := leaf.Value().(*obj.Module); isModule {
		return
	}
	var real *obj.Module
	for cur := leaf; ; {
		parent, ok := cur.Parent()
		if !ok {
			return
		}
		if real == nil {
			real = obj.ModuleOf(cur.Value())
		}
		if current, isModule := parent.Value().(*obj.Module); isModule {
			if real != nil && real != current {
				corrected := addModuleChain(arena, reg, real)
				arena.nodes[cur.idx].parent = corrected.idx
			}
			return
		}
		cur = parent
	}
}
