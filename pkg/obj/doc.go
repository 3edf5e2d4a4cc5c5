// Package obj implements the live object model that docwalk documents.
//
// Go has no importable runtime module system of its own, so embedders build
// an object graph explicitly: a [Registry] of dotted-path [Module] values,
// each exposing named members through attribute lookup. Members can be
// classes, callables, properties, plain values, or further modules.
//
// The model mirrors the structures a dynamic runtime would expose:
//
//   - [Module] is a loadable namespace; packages hold submodules.
//   - [Class] is a declaration namespace with base classes and a
//     deterministic linearized ancestor order used for attribute
//     resolution and override precedence.
//   - [Func] is a live callable carrying docstring, signature metadata and
//     optionally a real Go function backing it.
//   - [StaticMethod], [ClassMethod] and [Property] are declaration-site
//     wrappers; attribute access binds the first two to their underlying
//     function, so only the class dict tells them apart afterwards.
//
// Modules and classes additionally carry declared attributes: names that
// hold no value-bearing descriptor of their own but were documented at the
// declaration site with a docstring and a type annotation.
//
// Graphs are typically built three ways: directly through this package,
// from compiled Go packages via the goload bridge, or from interpreted Go
// source via the interpload bridge.
package obj
