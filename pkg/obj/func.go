package obj

// Func is a live callable. Signature metadata can be declared directly; a
// callable backed by a real Go function leaves Params empty and lets the
// documentation layer derive the signature through reflection over Impl.
type Func struct {
	Name string
	// Doc is the callable's docstring.
	Doc string
	// Async marks asynchronous callables.
	Async bool
	// Params is the declared parameter list, in order.
	Params []Param
	// Return is the declared return annotation.
	Return string
	// Source is the callable's source block, if retained.
	Source *Source
	// Impl optionally holds the Go function backing the callable.
	Impl any

	module   *Module
	declared *Map[AttrDoc]
}

func (f *Func) adoptModule(m *Module) {
	if f != nil && f.module == nil {
		f.module = m
	}
}

// Module returns the callable's defining module, if known.
func (f *Func) Module() *Module { return f.module }

// DeclareAttr records instance-attribute metadata declared inside the
// callable's body. Used by class initializers.
func (f *Func) DeclareAttr(name string, doc AttrDoc) {
	if f.declared == nil {
		f.declared = NewMap[AttrDoc]()
	}
	f.declared.Set(name, doc)
}

// DeclaredAttrs returns the attributes declared inside the callable's body.
func (f *Func) DeclaredAttrs() *Map[AttrDoc] { return f.declared }

// Param is one entry of an ordered parameter list.
type Param struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Default    string `json:"default,omitempty"`
	Annotation string `json:"annotation,omitempty"`
}

// Parameter kinds.
const (
	ParamPositionalOnly      = "positional-only"
	ParamPositionalOrKeyword = "positional-or-keyword"
	ParamVariadic            = "variadic"
	ParamKeywordOnly         = "keyword-only"
)

// Source is a text block with its starting line.
type Source struct {
	Text string `json:"text"`
	Line int    `json:"line"`
}

// AttrDoc is the declared metadata of a value-less attribute.
type AttrDoc struct {
	Docstring  string `json:"docstring,omitempty"`
	Annotation string `json:"annotation,omitempty"`
}
