// Package interpload populates an object registry from interpreted Go
// source, letting scripts be documented without compiling them into the
// host binary.
package interpload

import (
	"reflect"
	"regexp"

	"github.com/pkg/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/nieomylnieja/docwalk/internal/typeinfo"
	"github.com/nieomylnieja/docwalk/pkg/obj"
)

var packageNamePattern = regexp.MustCompile(`(?m)^package\s+(\w+)`)

// LoadSource interprets src and registers its package as a module under the
// given dotted path. Exported functions become functions backed by their
// interpreted implementations, exported variables become module attributes.
func LoadSource(registry *obj.Registry, path, src string) (*obj.Module, error) {
	match := packageNamePattern.FindStringSubmatch(src)
	if match == nil {
		return nil, errors.New("source has no package clause")
	}
	pkgName := match[1]

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, errors.Wrap(err, "failed to load standard library symbols")
	}
	if _, err := i.Eval(src); err != nil {
		return nil, errors.Wrap(err, "failed to interpret source")
	}

	mod := obj.NewModule(path)
	mod.Source = src
	symbols := i.Symbols(pkgName)[pkgName]
	for name, v := range symbols {
		switch v.Kind() {
		case reflect.Func:
			mod.Define(name, &obj.Func{Name: name, Impl: v.Interface()})
		case reflect.Ptr:
			// Package-level variables surface as pointers to their storage.
			elem := v.Elem()
			if !elem.IsValid() {
				continue
			}
			mod.DeclareAttr(name, obj.AttrDoc{Annotation: typeinfo.Get(elem.Type()).Name})
			mod.Define(name, elem.Interface())
		default:
			mod.DeclareAttr(name, obj.AttrDoc{Annotation: typeinfo.Get(v.Type()).Name})
			mod.Define(name, v.Interface())
		}
	}
	if err := registry.Register(mod); err != nil {
		return nil, err
	}
	return mod, nil
}
