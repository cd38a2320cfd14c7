// Package analyze loads Go packages and selects the declarations that
// describe-gen emits registrations for.
//
// It uses golang.org/x/tools/go/packages with AST and go/types. A type is
// selected when its doc comment carries a `//describe:` or `//meta:`
// directive; enum variants are the package constants of the enum type.
//
// Key types:
//   - TypeID: package import path + type name
//   - Declaration: doc lines, directives, fields or variants of a type
//   - TypeGraph: selected declarations per package, in source order
package analyze
