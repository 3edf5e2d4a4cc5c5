// Package goload populates an object registry from compiled Go packages.
//
// Each Go package becomes a module whose dotted path is the module's base
// name followed by the package's path segments relative to the module root.
// Exported structs become classes with their fields declared as attributes
// and embedded structs as bases, exported functions become functions with
// typed parameter lists and source snippets, and exported package-level
// variables and constants become module attributes.
package goload

import (
	"go/ast"
	"go/doc/comment"
	"go/token"
	"go/types"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/nieomylnieja/docwalk/internal/pathutils"
	"github.com/nieomylnieja/docwalk/pkg/obj"
)

// Load compiles every package under the enclosing Go module and registers
// the resulting object graph.
func Load(registry *obj.Registry) error {
	root, err := pathutils.FindModuleRoot()
	if err != nil {
		return err
	}
	return LoadDir(registry, root)
}

// LoadDir compiles every package under dir and registers the resulting
// object graph. dir must lie inside a Go module.
func LoadDir(registry *obj.Registry, dir string) error {
	// Load complete type information for the specified packages,
	// along with type-annotated syntax.
	conf := &packages.Config{
		Dir: dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo |
			packages.NeedModule,
	}
	pkgs, err := packages.Load(conf, dir+"/...")
	if err != nil {
		return errors.Wrap(err, "failed to load packages")
	}
	if err = checkForPackageErrors(pkgs); err != nil {
		return err
	}
	loader := &loader{
		registry: registry,
		classes:  make(map[*types.TypeName]*obj.Class),
	}
	// Two passes: first declare every exported struct so embedded-struct
	// bases resolve across packages, then fill bodies in.
	for _, pkg := range pkgs {
		loader.declareClasses(pkg)
	}
	for _, pkg := range pkgs {
		if err := loader.loadPackage(pkg); err != nil {
			return errors.Wrapf(err, "failed to load package %s", pkg.PkgPath)
		}
	}
	return nil
}

type loader struct {
	registry *obj.Registry
	classes  map[*types.TypeName]*obj.Class
}

// dottedPath maps a Go package to a dotted module path: the base name of
// the enclosing Go module followed by the package's relative path segments.
func dottedPath(pkg *packages.Package) string {
	base := pkg.PkgPath
	if pkg.Module != nil && pkg.Module.Path != "" {
		rel := strings.TrimPrefix(pkg.PkgPath, pkg.Module.Path)
		base = path.Base(pkg.Module.Path) + rel
	}
	return strings.ReplaceAll(strings.Trim(base, "/"), "/", ".")
}

func (l *loader) declareClasses(pkg *packages.Package) {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() {
			continue
		}
		if _, isStruct := tn.Type().Underlying().(*types.Struct); !isStruct {
			continue
		}
		l.classes[tn] = obj.NewClass(name)
	}
}

func (l *loader) loadPackage(pkg *packages.Package) error {
	mod := obj.NewModule(dottedPath(pkg))
	if len(pkg.CompiledGoFiles) > 0 {
		mod.FilePath = pkg.CompiledGoFiles[0]
	}
	mod.Doc = l.packageDoc(pkg)

	scope := pkg.Types.Scope()
	parser := newCommentParser(pkg)
	for _, name := range scope.Names() {
		o := scope.Lookup(name)
		if !o.Exported() {
			continue
		}
		switch t := o.(type) {
		case *types.TypeName:
			cls, ok := l.classes[t]
			if !ok {
				continue
			}
			l.fillClass(pkg, parser, cls, t)
			mod.Define(name, cls)
		case *types.Func:
			mod.Define(name, l.loadFunc(pkg, parser, t))
		case *types.Var, *types.Const:
			mod.DeclareAttr(name, obj.AttrDoc{
				Docstring:  l.objectDoc(pkg, parser, o),
				Annotation: types.TypeString(o.Type(), types.RelativeTo(pkg.Types)),
			})
			mod.Define(name, o)
		}
	}
	return l.registry.Register(mod)
}

func (l *loader) fillClass(pkg *packages.Package, parser *comment.Parser, cls *obj.Class, tn *types.TypeName) {
	cls.Doc = l.objectDoc(pkg, parser, tn)

	structType := tn.Type().Underlying().(*types.Struct)
	var bases []*obj.Class
	for i := 0; i < structType.NumFields(); i++ {
		field := structType.Field(i)
		if field.Embedded() {
			if base := l.classOf(field.Type()); base != nil {
				bases = append(bases, base)
			}
			continue
		}
		if !field.Exported() {
			continue
		}
		cls.DeclareAttr(field.Name(), obj.AttrDoc{
			Docstring:  l.fieldDoc(pkg, parser, tn, field),
			Annotation: types.TypeString(field.Type(), types.RelativeTo(pkg.Types)),
		})
	}
	if len(bases) > 0 {
		cls.SetBases(bases...)
	}

	// Methods with a value or pointer receiver on the named type.
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return
	}
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		if !m.Exported() {
			continue
		}
		cls.Define(m.Name(), l.loadFunc(pkg, parser, m))
	}
}

func (l *loader) classOf(t types.Type) *obj.Class {
	for {
		ptr, ok := t.(*types.Pointer)
		if !ok {
			break
		}
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return nil
	}
	return l.classes[named.Obj()]
}

func (l *loader) loadFunc(pkg *packages.Package, parser *comment.Parser, fn *types.Func) *obj.Func {
	f := &obj.Func{
		Name: fn.Name(),
		Doc:  l.objectDoc(pkg, parser, fn),
	}
	sig := fn.Type().(*types.Signature)
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		p := params.At(i)
		kind := obj.ParamPositionalOrKeyword
		pt := p.Type()
		if sig.Variadic() && i == params.Len()-1 {
			kind = obj.ParamVariadic
			pt = pt.(*types.Slice).Elem()
		}
		name := p.Name()
		if name == "" {
			name = "_"
		}
		f.Params = append(f.Params, obj.Param{
			Name:       name,
			Kind:       kind,
			Annotation: types.TypeString(pt, types.RelativeTo(pkg.Types)),
		})
	}
	switch results := sig.Results(); results.Len() {
	case 0:
	case 1:
		f.Return = types.TypeString(results.At(0).Type(), types.RelativeTo(pkg.Types))
	default:
		names := make([]string, results.Len())
		for i := range names {
			names[i] = types.TypeString(results.At(i).Type(), types.RelativeTo(pkg.Types))
		}
		f.Return = "(" + strings.Join(names, ", ") + ")"
	}
	f.Source = funcSource(pkg, fn)
	return f
}

// funcSource cuts the function's declaration out of its file using token
// offsets.
func funcSource(pkg *packages.Package, fn *types.Func) *obj.Source {
	decl, _ := findDeclaration[*ast.FuncDecl](pkg, fn.Pos())
	if decl == nil {
		return nil
	}
	position := pkg.Fset.Position(decl.Pos())
	data, err := os.ReadFile(position.Filename)
	if err != nil {
		return nil
	}
	start := position.Offset
	end := pkg.Fset.Position(decl.End()).Offset
	if start < 0 || end > len(data) || start >= end {
		return nil
	}
	return &obj.Source{Text: string(data[start:end]), Line: position.Line}
}

// findDeclaration walks up from the position to the nearest enclosing node
// of type T.
func findDeclaration[T ast.Node](pkg *packages.Package, pos token.Pos) (T, *ast.File) {
	var zero T
	for _, file := range pkg.Syntax {
		if file.FileStart > pos || pos >= file.FileEnd {
			continue // not in this file
		}
		nodes, _ := astutil.PathEnclosingInterval(file, pos, pos)
		for _, n := range nodes {
			if decl, ok := n.(T); ok {
				return decl, file
			}
		}
	}
	return zero, nil
}

func (l *loader) packageDoc(pkg *packages.Package) string {
	for _, file := range pkg.Syntax {
		if file.Doc != nil {
			return docCommentToMarkdown(newCommentParser(pkg), pkg.PkgPath, file.Doc.Text())
		}
	}
	return ""
}

// objectDoc renders the doc comment attached to a package-level object's
// declaration.
func (l *loader) objectDoc(pkg *packages.Package, parser *comment.Parser, o types.Object) string {
	for _, file := range pkg.Syntax {
		pos := o.Pos()
		if file.FileStart > pos || pos >= file.FileEnd {
			continue
		}
		nodes, _ := astutil.PathEnclosingInterval(file, pos, pos)
		for _, n := range nodes {
			var doc *ast.CommentGroup
			switch decl := n.(type) {
			case *ast.GenDecl:
				doc = decl.Doc
			case *ast.FuncDecl:
				doc = decl.Doc
			default:
				continue
			}
			if doc == nil {
				return ""
			}
			return docCommentToMarkdown(parser, pkg.PkgPath, doc.Text())
		}
	}
	return ""
}

// fieldDoc renders the doc comment of the struct field's AST node.
func (l *loader) fieldDoc(pkg *packages.Package, parser *comment.Parser, tn *types.TypeName, field *types.Var) string {
	decl, _ := findDeclaration[*ast.GenDecl](pkg, tn.Pos())
	if decl == nil || len(decl.Specs) == 0 {
		return ""
	}
	spec, ok := decl.Specs[0].(*ast.TypeSpec)
	if !ok {
		return ""
	}
	structType, ok := spec.Type.(*ast.StructType)
	if !ok {
		return ""
	}
	for _, astField := range structType.Fields.List {
		for _, ident := range astField.Names {
			if ident.Name == field.Name() && astField.Doc != nil {
				return docCommentToMarkdown(parser, pkg.PkgPath, astField.Doc.Text())
			}
		}
	}
	return ""
}

const docLinkBaseURL = "https://pkg.go.dev"

func docCommentToMarkdown(parser *comment.Parser, pkgPath, text string) string {
	if text == "" {
		return ""
	}
	parsed := parser.Parse(text)
	printer := comment.Printer{
		DocLinkURL: func(link *comment.DocLink) string {
			if link.ImportPath == "" {
				link.ImportPath = pkgPath
			}
			return link.DefaultURL(docLinkBaseURL)
		},
	}
	return strings.TrimSpace(string(printer.Markdown(parsed)))
}

func newCommentParser(currentPackage *packages.Package) *comment.Parser {
	return &comment.Parser{
		LookupPackage: func(name string) (importPath string, ok bool) {
			for importPath, imported := range currentPackage.Imports {
				if imported.Name == name {
					return importPath, true
				}
			}
			return "", false
		},
		LookupSym: func(recv, name string) (ok bool) {
			if recv == "" {
				return currentPackage.Types.Scope().Lookup(name) != nil
			}
			o := currentPackage.Types.Scope().Lookup(recv)
			if o == nil {
				return false
			}
			switch u := o.Type().Underlying().(type) {
			case *types.Struct:
				for field := range u.Fields() {
					if field.Name() == name {
						return true
					}
				}
				return false
			default:
				return false
			}
		},
	}
}

func checkForPackageErrors(pkgs []*packages.Package) (err error) {
	packages.Visit(pkgs, func(pkg *packages.Package) bool {
		for _, err = range pkg.Errors {
			err = errors.Wrapf(err, "package %s has reported an error", pkg.PkgPath)
			return false
		}
		mod := pkg.Module
		if mod != nil && mod.Error != nil {
			err = errors.New(mod.Error.Err)
			return false
		}
		return true
	}, nil)
	return err
}
