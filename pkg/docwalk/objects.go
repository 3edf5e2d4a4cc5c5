package docwalk

import (
	"strings"

	"github.com/nieomylnieja/docwalk/internal/docstring"
	"github.com/nieomylnieja/docwalk/pkg/obj"
)

// Category tags a documentation entity variant.
type Category string

const (
	CategoryModule    Category = "module"
	CategoryClass     Category = "class"
	CategoryFunction  Category = "function"
	CategoryMethod    Category = "method"
	CategoryAttribute Category = "attribute"
)

// Object is a documentation entity: one node of the persistent output
// tree. Entities are created once during the loader's walk, receive their
// parsed docstring sections in a final pass over the finished tree, and are
// immutable afterwards. Each entity is owned by its parent; the parent
// back-reference exists for path computation only.
type Object struct {
	Category  Category            `json:"category"`
	Name      string              `json:"name"`
	Path      string              `json:"path"`
	FilePath  string              `json:"file_path,omitempty"`
	Docstring string              `json:"docstring,omitempty"`
	Sections  []docstring.Section `json:"docstring_sections,omitempty"`
	// Properties holds role and modifier tags such as "async",
	// "staticmethod", "inherited" or "pydantic-model".
	Properties []string  `json:"properties,omitempty"`
	Children   []*Object `json:"children,omitempty"`
	// Signature is set on functions and methods.
	Signature *Signature  `json:"signature,omitempty"`
	Source    *obj.Source `json:"source,omitempty"`
	// Type is the attribute's type annotation.
	Type string `json:"type,omitempty"`

	parent *Object

	// Docstring-parsing context, collected during the build and consumed
	// by the final parse pass.
	docAttrs     *obj.Map[obj.AttrDoc]
	docSignature *Signature
}

// Signature is an ordered parameter list plus return annotation.
type Signature struct {
	Params []obj.Param `json:"params"`
	Return string      `json:"return,omitempty"`
}

// String renders the signature as "(name: annotation, ...) -> return".
func (s *Signature) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p.Kind == obj.ParamVariadic {
			sb.WriteString("...")
		}
		sb.WriteString(p.Name)
		if p.Annotation != "" {
			sb.WriteString(": " + p.Annotation)
		}
		if p.Default != "" {
			sb.WriteString(" = " + p.Default)
		}
	}
	sb.WriteString(")")
	if s.Return != "" {
		sb.WriteString(" -> " + s.Return)
	}
	return sb.String()
}

func (o *Object) addChild(child *Object) {
	child.parent = o
	o.Children = append(o.Children, child)
}

// Parent returns the owning entity, nil for the root.
func (o *Object) Parent() *Object { return o.parent }
