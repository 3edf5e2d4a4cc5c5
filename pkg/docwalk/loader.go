package docwalk

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nieomylnieja/docwalk/internal/attrdoc"
	"github.com/nieomylnieja/docwalk/internal/docstring"
	"github.com/nieomylnieja/docwalk/internal/typeinfo"
	"github.com/nieomylnieja/docwalk/pkg/obj"
)

// MemberSelection specifies which members of the root object get
// documented. It applies to the root only; recursion below it always uses
// the filter chain.
type MemberSelection struct {
	none  bool
	names map[string]struct{}
}

// AllMembers selects every member passing the filter chain.
func AllMembers() MemberSelection { return MemberSelection{} }

// NoMembers selects no members at all.
func NoMembers() MemberSelection { return MemberSelection{none: true} }

// MemberNames selects exactly the named members, bypassing the filter
// chain.
func MemberNames(names ...string) MemberSelection {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return MemberSelection{names: set}
}

// Loader builds documentation trees from live object graphs.
//
// Recoverable introspection failures (unreadable source, unobtainable
// signatures) are collected in order and reported through Errors; the
// affected field is left absent and the walk continues. Only a root path
// that cannot be resolved at all is fatal.
//
// A Loader must not be used from multiple goroutines at once: the selector
// memo and the error list are mutated in place during traversal.
type Loader struct {
	registry    *obj.Registry
	selector    *memberSelector
	parser      docstring.Parser
	attrs       *attrdoc.Index
	inherited   bool
	specialName *regexp.Regexp
	logger      *zap.Logger
	errors      []string
}

type loaderOptions struct {
	cfg    Config
	logger *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(o loaderOptions) loaderOptions

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) LoaderOption {
	return func(o loaderOptions) loaderOptions {
		o.cfg = cfg
		return o
	}
}

// WithFilters appends signed member-name filter patterns.
func WithFilters(patterns ...string) LoaderOption {
	return func(o loaderOptions) loaderOptions {
		o.cfg.Filters = append(o.cfg.Filters, patterns...)
		return o
	}
}

// WithDocstringStyle selects the docstring parsing style. Options are
// forwarded verbatim to the style parser.
func WithDocstringStyle(style string, options map[string]any) LoaderOption {
	return func(o loaderOptions) loaderOptions {
		o.cfg.DocstringStyle = style
		o.cfg.DocstringOptions = options
		return o
	}
}

// WithInheritedMembers selects members inherited from ancestor classes.
func WithInheritedMembers() LoaderOption {
	return func(o loaderOptions) loaderOptions {
		o.cfg.InheritedMembers = true
		return o
	}
}

// WithLogger sets the logger used for recoverable failures.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(o loaderOptions) loaderOptions {
		o.logger = logger
		return o
	}
}

// NewLoader creates a Loader over the given registry.
func NewLoader(registry *obj.Registry, opts ...LoaderOption) (*Loader, error) {
	o := loaderOptions{cfg: DefaultConfig(), logger: zap.NewNop()}
	for _, opt := range opts {
		o = opt(o)
	}
	cfg := o.cfg
	if cfg.DocstringStyle == "" {
		cfg.DocstringStyle = docstring.StyleGoogle
	}
	if cfg.SpecialNamePattern == "" {
		cfg.SpecialNamePattern = defaultSpecialNamePattern
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	selector, err := newMemberSelector(cfg.Filters)
	if err != nil {
		return nil, err
	}
	parser, err := docstring.New(cfg.DocstringStyle, cfg.DocstringOptions)
	if err != nil {
		return nil, err
	}
	specialName, err := regexp.Compile(cfg.SpecialNamePattern)
	if err != nil {
		return nil, errors.Wrap(err, "invalid special name pattern")
	}
	return &Loader{
		registry:    registry,
		selector:    selector,
		parser:      parser,
		attrs:       attrdoc.NewIndex(),
		inherited:   cfg.InheritedMembers,
		specialName: specialName,
		logger:      o.logger,
	}, nil
}

// Errors returns the recoverable errors collected so far, in order.
func (l *Loader) Errors() []string { return slices.Clone(l.errors) }

// Load documents the object at the dotted path and everything below it.
func (l *Loader) Load(path string, members MemberSelection) (*Object, error) {
	leaf, err := resolve(l.registry, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %q", path)
	}
	var root *Object
	switch classify(leaf) {
	case kindModule:
		root = l.moduleDocumentation(leaf, members)
	case kindClass:
		root = l.classDocumentation(leaf, members)
	case kindStaticMethod:
		root = l.staticmethodDocumentation(leaf)
	case kindClassMethod:
		root = l.classmethodDocumentation(leaf)
	case kindMethod:
		root = l.regularMethodDocumentation(leaf)
	case kindCoroutineFunction, kindFunction:
		root = l.functionDocumentation(leaf)
	case kindProperty:
		root = l.propertyDocumentation(leaf)
	default:
		root = l.attributeDocumentation(leaf, nil)
	}
	l.parseAllDocstrings(root)
	return root, nil
}

func (l *Loader) addError(msg string) {
	l.errors = append(l.errors, msg)
	l.logger.Warn("recoverable introspection failure", zap.String("error", msg))
}

func (l *Loader) moduleDocumentation(n node, members MemberSelection) *Object {
	mod := n.Value().(*obj.Module)
	path := n.DottedPath()

	root := &Object{
		Category:  CategoryModule,
		Name:      n.Name(),
		Path:      path,
		FilePath:  mod.FilePath,
		Docstring: mod.Doc,
		Source:    l.moduleSource(mod, path),
	}
	if members.none {
		return root
	}

	attrs := l.attrs.ForModule(mod)
	root.docAttrs = attrs

	for _, member := range mod.Members() {
		if !l.selector.selectName(member.Name, members.names) {
			continue
		}
		child := n.arena.add(member.Value, member.Name, n.idx)
		definedHere := obj.ModuleOf(child.Value()) == mod
		switch k := classify(child); {
		case k == kindClass && definedHere:
			root.addChild(l.classDocumentation(child, AllMembers()))
		case (k == kindFunction || k == kindCoroutineFunction) && definedHere:
			root.addChild(l.functionDocumentation(child))
		default:
			if data, ok := attrs.Get(member.Name); ok {
				root.addChild(l.attributeDocumentation(child, &data))
			}
		}
	}

	// Namespace packages recurse into their direct submodules.
	if mod.IsPackage() {
		for _, sub := range mod.Submodules() {
			if !l.selector.selectName(sub.Name(), members.names) {
				continue
			}
			leaf, err := resolve(l.registry, sub.Path())
			if err != nil {
				l.addError(fmt.Sprintf("Couldn't resolve submodule '%s': %v", sub.Path(), err))
				continue
			}
			root.addChild(l.moduleDocumentation(leaf, AllMembers()))
		}
	}
	return root
}

// moduleSource retrieves the module's full source: live text first, then
// the resident file.
func (l *Loader) moduleSource(mod *obj.Module, path string) *obj.Source {
	if mod.Source != "" {
		return &obj.Source{Text: mod.Source, Line: 1}
	}
	if mod.FilePath == "" {
		l.addError(fmt.Sprintf("Couldn't read source for '%s': module has no resident file", path))
		return nil
	}
	data, err := os.ReadFile(mod.FilePath)
	if err != nil {
		l.addError(fmt.Sprintf("Couldn't read source for '%s': %v", path, err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	return &obj.Source{Text: string(data), Line: 1}
}

func (l *Loader) classDocumentation(n node, members MemberSelection) *Object {
	cls := n.Value().(*obj.Class)
	path := n.DottedPath()

	root := &Object{
		Category:  CategoryClass,
		Name:      n.Name(),
		Path:      path,
		FilePath:  n.FilePath(),
		Docstring: docstring.Clean(cls.Doc),
	}

	// Merge declared attributes from most-base to most-derived so a derived
	// class's declaration of a name overrides an ancestor's.
	merged := obj.NewMap[obj.AttrDoc]()
	mro := cls.MRO()
	for i := len(mro) - 1; i >= 0; i-- {
		if mro[i] == obj.Root {
			continue
		}
		attrdoc.Merge(merged, l.attrs.ForClass(mro[i]))
	}
	if init, ok := cls.DictGet(obj.InitName); ok {
		if initFunc := funcOf(init); initFunc != nil {
			attrdoc.Merge(merged, l.attrs.ForInit(initFunc))
			if sig, err := l.signature(initFunc); err != nil {
				l.addError(fmt.Sprintf("Couldn't get signature for '%s.%s': %v", path, obj.InitName, err))
			} else {
				root.docSignature = sig
			}
		}
	}
	root.docAttrs = merged

	if members.none {
		return root
	}

	for _, member := range cls.Members() {
		if member.Value == obj.Root || member.Value == obj.Meta {
			continue
		}
		if !l.selector.selectName(member.Name, members.names) {
			continue
		}
		isOwn := cls.DictHas(member.Name)
		if !isOwn && !l.inherited {
			continue
		}
		child := n.arena.add(member.Value, member.Name, n.idx)
		var built *Object
		switch classify(child) {
		case kindClass:
			built = l.classDocumentation(child, AllMembers())
		case kindClassMethod:
			built = l.classmethodDocumentation(child)
		case kindStaticMethod:
			built = l.staticmethodDocumentation(child)
		case kindMethod:
			built = l.regularMethodDocumentation(child)
		case kindProperty:
			built = l.propertyDocumentation(child)
		default:
			data, ok := merged.Get(member.Name)
			if !ok {
				continue
			}
			built = l.attributeDocumentation(child, &data)
		}
		if !isOwn {
			built.Properties = append(built.Properties, "inherited")
		}
		root.addChild(built)
	}

	l.structuredFields(n, cls, root, members)
	return root
}

// structuredFields applies the structured-declaration conventions, checked
// in priority order with at most one applying: schema objects, declared
// field registries, record-style field declarations.
func (l *Loader) structuredFields(n node, cls *obj.Class, root *Object, members MemberSelection) {
	mro := cls.MRO()

	if v, ok := l.fieldRegistry(cls, obj.SchemaFieldsKey); ok {
		if fields, isRegistry := v.(*obj.SchemaFields); isRegistry {
			root.Properties = []string{"pydantic-model"}
			for _, name := range fields.Keys() {
				if !l.selector.selectName(name, members.names) {
					continue
				}
				if !l.inherited && ancestorHasField(mro, obj.SchemaFieldsKey, name) {
					continue
				}
				field, _ := fields.Get(name)
				root.addChild(l.schemaFieldDocumentation(n.arena.add(field, name, n.idx), field))
			}
			return
		}
	}

	if v, ok := l.fieldRegistry(cls, obj.DeclaredFieldsKey); ok {
		if fields, isRegistry := v.(*obj.DeclaredFields); isRegistry {
			root.Properties = []string{"marshmallow-model"}
			for _, name := range fields.Keys() {
				if !l.selector.selectName(name, members.names) {
					continue
				}
				if !l.inherited && ancestorHasField(mro, obj.DeclaredFieldsKey, name) {
					continue
				}
				field, _ := fields.Get(name)
				root.addChild(l.declaredFieldDocumentation(n.arena.add(field, name, n.idx), field))
			}
			return
		}
	}

	if v, ok := l.fieldRegistry(cls, obj.RecordFieldsKey); ok {
		if fields, isRegistry := v.(*obj.RecordFields); isRegistry {
			root.Properties = []string{"dataclass"}
			for _, name := range fields.Keys() {
				if !l.selector.selectName(name, members.names) {
					continue
				}
				if !l.inherited && ancestorHasField(mro, obj.RecordFieldsKey, name) {
					continue
				}
				field, _ := fields.Get(name)
				root.addChild(l.recordFieldDocumentation(n.arena.add(field.Type, name, n.idx), cls, field))
			}
			return
		}
	}
}

// fieldRegistry returns the registry stored under key when the class's own
// dict declares it, or any ancestor does and inherited members are
// selected.
func (l *Loader) fieldRegistry(cls *obj.Class, key string) (any, bool) {
	if v, ok := cls.DictGet(key); ok {
		return v, true
	}
	if !l.inherited {
		return nil, false
	}
	return cls.GetAttr(key)
}

// ancestorHasField tells whether a field was inherited: it exists in the
// same registry of a proper ancestor.
func ancestorHasField(mro []*obj.Class, key, name string) bool {
	for _, anc := range mro[1:] {
		if anc == obj.Root {
			continue
		}
		v, ok := anc.DictGet(key)
		if !ok {
			continue
		}
		switch fields := v.(type) {
		case *obj.SchemaFields:
			if fields.Has(name) {
				return true
			}
		case *obj.DeclaredFields:
			if fields.Has(name) {
				return true
			}
		case *obj.RecordFields:
			if fields.Has(name) {
				return true
			}
		}
	}
	return false
}

func (l *Loader) schemaFieldDocumentation(n node, field *obj.SchemaField) *Object {
	properties := []string{"pydantic-field"}
	if field.Required {
		properties = append(properties, "required")
	}
	return &Object{
		Category:   CategoryAttribute,
		Name:       n.Name(),
		Path:       n.DottedPath(),
		FilePath:   n.FilePath(),
		Docstring:  field.Description,
		Type:       field.Type,
		Properties: properties,
	}
}

func (l *Loader) declaredFieldDocumentation(n node, field obj.DeclaredField) *Object {
	properties := []string{"marshmallow-field"}
	if field.FieldRequired() {
		properties = append(properties, "required")
	}
	description, _ := field.FieldMetadata()["description"].(string)
	return &Object{
		Category:   CategoryAttribute,
		Name:       n.Name(),
		Path:       n.DottedPath(),
		FilePath:   n.FilePath(),
		Docstring:  description,
		Type:       typeinfo.Get(reflect.TypeOf(field)).Name,
		Properties: properties,
	}
}

// recordFieldDocumentation documents a record-style field. The registry
// holds only type metadata, so docstring and annotation come from the
// declared-attribute map: the class's own scope when the field is declared
// there, the defining module's scope otherwise.
func (l *Loader) recordFieldDocumentation(n node, cls *obj.Class, field *obj.RecordField) *Object {
	var data obj.AttrDoc
	if d, ok := l.attrs.ForClass(cls).Get(field.Name); ok {
		data = d
	} else if mod := cls.Module(); mod != nil {
		data, _ = l.attrs.ForModule(mod).Get(field.Name)
	}
	if data.Annotation == "" {
		data.Annotation = field.Type
	}
	return &Object{
		Category:   CategoryAttribute,
		Name:       n.Name(),
		Path:       n.DottedPath(),
		FilePath:   n.FilePath(),
		Docstring:  data.Docstring,
		Type:       data.Annotation,
		Properties: []string{"dataclass-field"},
	}
}

func (l *Loader) functionDocumentation(n node) *Object {
	f := n.Value().(*obj.Func)
	path := n.DottedPath()

	var source *obj.Source
	if f.Source != nil {
		source = f.Source
	} else {
		l.addError(fmt.Sprintf("Couldn't read source for '%s': source not available", path))
	}
	var properties []string
	if f.Async {
		properties = append(properties, "async")
	}
	return &Object{
		Category:   CategoryFunction,
		Name:       n.Name(),
		Path:       path,
		FilePath:   n.FilePath(),
		Docstring:  f.Doc,
		Signature:  l.functionSignature(f, path),
		Source:     source,
		Properties: properties,
	}
}

func (l *Loader) staticmethodDocumentation(n node) *Object {
	return l.methodDocumentation(n, []string{"staticmethod"})
}

func (l *Loader) classmethodDocumentation(n node) *Object {
	return l.methodDocumentation(n, []string{"classmethod"})
}

// regularMethodDocumentation documents an ordinary method and blanks the
// docstrings of special methods inherited verbatim: boilerplate whose text
// exactly matches the nearest ancestor's same-named method was never
// actually overridden.
func (l *Loader) regularMethodDocumentation(n node) *Object {
	method := l.methodDocumentation(n, nil)
	parent, ok := n.Parent()
	if !ok {
		return method
	}
	cls, isClass := parent.Value().(*obj.Class)
	if !isClass || !l.specialName.MatchString(n.Name()) {
		return method
	}
	for _, anc := range cls.MRO()[1:] {
		v, found := anc.GetAttr(n.Name())
		if !found {
			continue
		}
		if f := funcOf(v); f != nil && method.Docstring == f.Doc {
			method.Docstring = ""
		}
		break
	}
	return method
}

func (l *Loader) methodDocumentation(n node, properties []string) *Object {
	f := n.Value().(*obj.Func)
	path := n.DottedPath()
	if f.Async {
		properties = append(properties, "async")
	}
	// Default methods of the universal base have no definition site and
	// nothing to read; anything defined in a module must have source.
	if f.Source == nil && f.Module() != nil {
		l.addError(fmt.Sprintf("Couldn't read source for '%s': source not available", path))
	}
	return &Object{
		Category:   CategoryMethod,
		Name:       n.Name(),
		Path:       path,
		FilePath:   n.FilePath(),
		Docstring:  f.Doc,
		Signature:  l.functionSignature(f, path),
		Source:     f.Source,
		Properties: properties,
	}
}

func (l *Loader) propertyDocumentation(n node) *Object {
	prop := n.Value().(*obj.Property)
	path := n.DottedPath()

	properties := []string{"property"}
	if prop.Set == nil {
		properties = append(properties, "readonly")
	} else {
		properties = append(properties, "writable")
	}

	var doc, attrType string
	var source *obj.Source
	if prop.Get == nil {
		l.addError(fmt.Sprintf("Couldn't get signature for '%s': property has no getter", path))
	} else {
		doc = prop.Get.Doc
		if sig, err := l.signature(prop.Get); err != nil {
			l.addError(fmt.Sprintf("Couldn't get signature for '%s': %v", path, err))
		} else {
			attrType = sig.Return
		}
		if prop.Get.Source != nil {
			source = prop.Get.Source
		} else {
			l.addError(fmt.Sprintf("Couldn't get source for '%s': source not available", path))
		}
	}
	return &Object{
		Category:   CategoryAttribute,
		Name:       n.Name(),
		Path:       path,
		FilePath:   n.FilePath(),
		Docstring:  doc,
		Type:       attrType,
		Source:     source,
		Properties: properties,
	}
}

// attributeDocumentation documents a plain attribute. With no precomputed
// data the declared-attribute map for the node's scope is consulted;
// absence yields an empty docstring and no type rather than a failure.
func (l *Loader) attributeDocumentation(n node, data *obj.AttrDoc) *Object {
	if data == nil {
		var d obj.AttrDoc
		if parent, ok := n.Parent(); ok {
			if cls, isClass := parent.Value().(*obj.Class); isClass {
				d, _ = l.attrs.ForClass(cls).Get(n.Name())
			} else if mod, found := nearestModule(n); found {
				d, _ = l.attrs.ForModule(mod).Get(n.Name())
			}
		}
		data = &d
	}
	return &Object{
		Category:  CategoryAttribute,
		Name:      n.Name(),
		Path:      n.DottedPath(),
		FilePath:  n.FilePath(),
		Docstring: data.Docstring,
		Type:      data.Annotation,
	}
}

func nearestModule(n node) (*obj.Module, bool) {
	for cur := n; ; {
		p, ok := cur.Parent()
		if !ok {
			return nil, false
		}
		cur = p
		if m, isModule := cur.Value().(*obj.Module); isModule {
			return m, true
		}
	}
}

func (l *Loader) functionSignature(f *obj.Func, path string) *Signature {
	sig, err := l.signature(f)
	if err != nil {
		l.addError(fmt.Sprintf("Couldn't get signature for '%s': %v", path, err))
		return nil
	}
	return sig
}

// signature resolves a callable's parameter list: declared metadata first,
// then reflection over the implementation.
func (l *Loader) signature(f *obj.Func) (*Signature, error) {
	if len(f.Params) > 0 || f.Return != "" {
		return &Signature{Params: slices.Clone(f.Params), Return: f.Return}, nil
	}
	if f.Impl == nil {
		return &Signature{}, nil
	}
	rt := reflect.TypeOf(f.Impl)
	if rt.Kind() != reflect.Func {
		return nil, errors.Errorf("implementation is %s, not a function", rt.Kind())
	}
	sig := &Signature{}
	for i := 0; i < rt.NumIn(); i++ {
		in := rt.In(i)
		paramKind := obj.ParamPositionalOrKeyword
		if rt.IsVariadic() && i == rt.NumIn()-1 {
			paramKind = obj.ParamVariadic
			in = in.Elem()
		}
		sig.Params = append(sig.Params, obj.Param{
			Name:       fmt.Sprintf("arg%d", i),
			Kind:       paramKind,
			Annotation: typeinfo.Get(in).Name,
		})
	}
	switch rt.NumOut() {
	case 0:
	case 1:
		sig.Return = typeinfo.Get(rt.Out(0)).Name
	default:
		names := make([]string, rt.NumOut())
		for i := range names {
			names[i] = typeinfo.Get(rt.Out(i)).Name
		}
		sig.Return = "(" + strings.Join(names, ", ") + ")"
	}
	return sig, nil
}

// parseAllDocstrings runs the docstring parser over the finished tree, once
// per entity. Entities are immutable afterwards.
func (l *Loader) parseAllDocstrings(root *Object) {
	var ctx docstring.Context
	for _, name := range root.docAttrs.Keys() {
		d, _ := root.docAttrs.Get(name)
		ctx.Attributes = append(ctx.Attributes, docstring.Attribute{
			Name:       name,
			Docstring:  d.Docstring,
			Annotation: d.Annotation,
		})
	}
	if root.docSignature != nil {
		ctx.Signature = root.docSignature.String()
	}
	root.Sections = l.parser.Parse(root.Docstring, ctx)
	for _, child := range root.Children {
		l.parseAllDocstrings(child)
	}
}
