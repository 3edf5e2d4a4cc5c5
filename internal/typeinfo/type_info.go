// Package typeinfo names reflect types for documentation output.
package typeinfo

import (
	"fmt"
	"reflect"
)

// Info describes a Go type: its bare name, its kind shape, and the package
// defining it. Package is empty for builtin types.
type Info struct {
	Name    string
	Kind    string
	Package string
}

// Get returns the information for the reflect type. Pointer indicators are
// stripped. Slices of named types keep the slice notation on the name while
// reporting the element's package:
//
//	Get(reflect.TypeOf([]mypkg.Bar{})) == Info{Name: "[]Bar", Package: ".../mypkg", Kind: "[]struct"}
func Get(typ reflect.Type) Info {
	if typ == nil {
		return Info{}
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	info := Info{Kind: kindOf(typ)}
	if typ.PkgPath() == "" && typ.Kind() == reflect.Slice {
		info.Name = "[]"
		typ = typ.Elem()
		for typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
	}
	if typ.PkgPath() == "" {
		info.Name += typ.String()
		return info
	}
	info.Name += typ.Name()
	info.Package = typ.PkgPath()
	return info
}

func kindOf(typ reflect.Type) string {
	switch typ.Kind() {
	case reflect.Map:
		return fmt.Sprintf("map[%s]%s", kindOf(typ.Key()), kindOf(typ.Elem()))
	case reflect.Slice:
		return "[]" + kindOf(typ.Elem())
	case reflect.Pointer:
		return kindOf(typ.Elem())
	default:
		return typ.Kind().String()
	}
}
