// Package docwalk builds documentation trees from live object graphs.
//
// It combines three sources of information:
//  1. The object graph itself (modules, classes, functions, properties)
//  2. Declared-attribute metadata collected at declaration sites
//  3. Docstrings parsed into structured sections
//
// The resulting Object tree mirrors the object hierarchy and is
// JSON-serializable: every node carries a category, dotted path, resident
// file, docstring with parsed sections, and role tags.
//
// # Basic Usage
//
// Objects are resolved by dotted path against an obj.Registry:
//
//	registry := obj.NewRegistry()
//	registry.Register(module)
//
//	loader, err := docwalk.NewLoader(registry)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	root, err := loader.Load("sample.models.Dog", docwalk.AllMembers())
//
// The dotted path is split into its longest importable module prefix and a
// chain of attribute lookups below it. Re-exported names are documented at
// their definition site, not their import site.
//
// # Configuration Options
//
// Use LoaderOption functions to customize behavior:
//
//	loader, err := docwalk.NewLoader(
//	    registry,
//	    docwalk.WithFilters("^_", "!^__init__$"),
//	    docwalk.WithDocstringStyle("google", nil),
//	    docwalk.WithInheritedMembers(),
//	)
//
// Filters form an ordered chain of signed regular expressions over member
// names: a match excludes the name, a leading "!" re-includes it, later
// patterns override earlier ones.
//
// # Error Handling
//
// Resolution of the root path is the only fatal failure. Everything else
// (unreadable source, unobtainable signatures, unresolvable submodules) is
// recoverable: the walk continues, the affected field stays absent, and the
// failure is reported through Loader.Errors in encounter order.
package docwalk
