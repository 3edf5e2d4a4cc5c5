package docwalk

import "github.com/nieomylnieja/docwalk/pkg/obj"

// kind is the structural role of a resolved node.
type kind int

const (
	kindModule kind = iota
	kindClass
	kindStaticMethod
	kindClassMethod
	kindMethod
	kindCoroutineFunction
	kindFunction
	kindProperty
	kindAttribute
)

// classify decides a node's structural role. Checks run in fixed precedence
// and the first match wins; Attribute is the fallback.
//
// Static and class method detection inspects the parent class's own
// declaration dict: after attribute binding both present as plain
// functions, so only the declaration-site wrapper tells them apart.
func classify(n node) kind {
	switch n.Value().(type) {
	case *obj.Module:
		return kindModule
	case *obj.Class:
		return kindClass
	}
	if parent, ok := n.Parent(); ok {
		if cls, isClass := parent.Value().(*obj.Class); isClass {
			if declared, found := cls.DictGet(n.Name()); found {
				switch declared.(type) {
				case *obj.StaticMethod:
					return kindStaticMethod
				case *obj.ClassMethod:
					return kindClassMethod
				}
			}
			if _, isFunc := n.Value().(*obj.Func); isFunc {
				return kindMethod
			}
		}
	}
	switch v := n.Value().(type) {
	case *obj.Func:
		if v.Async {
			return kindCoroutineFunction
		}
		return kindFunction
	case *obj.Property:
		return kindProperty
	}
	return kindAttribute
}

// funcOf returns the function under a declaration-site value, nil when the
// value is not callable.
func funcOf(v any) *obj.Func {
	switch t := v.(type) {
	case *obj.Func:
		return t
	case *obj.StaticMethod:
		return t.Func
	case *obj.ClassMethod:
		return t.Func
	}
	return nil
}
