package analyze

import (
	"go/token"
	"go/types"
	"reflect"

	"struct-metadata/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "struct-metadata/examples/inventory"
	Name    string // e.g., "Item"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// DeclKind represents the shape of a selected declaration.
type DeclKind int

const (
	DeclUnknown DeclKind = iota
	DeclStruct           // struct type
	DeclNamed            // named non-struct type (described as aliased)
	DeclEnum             // named scalar type with constants
)

// String returns a human-readable representation of the DeclKind.
func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclNamed:
		return "named"
	case DeclEnum:
		return "enum"
	default:
		return common.UnknownStr
	}
}

// Declaration is a type selected for generation by a `//describe:` or
// `//meta:` directive in its doc comment.
type Declaration struct {
	ID   TypeID
	Kind DeclKind
	// Docs holds the doc comment lines without directives.
	Docs []string
	// Directives joins the text of every `//describe:` line.
	Directives string
	// Meta joins the text of every `//meta:` line.
	Meta string
	// Fields lists the struct fields in declaration order.
	Fields []FieldDecl
	// Variants lists the constants of an enum in source order.
	Variants []VariantDecl
	// GoType is the declared go/types type.
	GoType types.Type
	Pos    token.Position
	// Described is set when the type declares DescribeMetadata outside the
	// generated file.
	Described bool
}

// FieldDecl describes one struct field as written in source.
type FieldDecl struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Embedded bool              // Whether the field is embedded (anonymous)
	Tag      reflect.StructTag // Raw struct tag
	Docs     []string          // Doc comment lines
	Type     types.Type        // Field type
	Index    int               // Field index in the struct
}

// VariantDecl describes one enum constant.
type VariantDecl struct {
	Ident      string
	Docs       []string
	Directives string
	Meta       string
	Pos        token.Position
}

// DocumentedFields returns the fields carrying doc comments.
func (d *Declaration) DocumentedFields() []FieldDecl {
	var out []FieldDecl

	for _, f := range d.Fields {
		if len(f.Docs) > 0 {
			out = append(out, f)
		}
	}

	return out
}

// TypeGraph holds the declarations selected from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to the selected declaration.
	Types map[TypeID]*Declaration
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*Declaration),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the Declaration for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *Declaration {
	return g.Types[id]
}

// Declarations returns the selected declarations of a package in source
// order.
func (g *TypeGraph) Declarations(pkgPath string) []*Declaration {
	pkg, ok := g.Packages[pkgPath]
	if !ok {
		return nil
	}

	out := make([]*Declaration, 0, len(pkg.Types))
	for _, id := range pkg.Types {
		out = append(out, g.Types[id])
	}

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Selected types in source order
	// Scope is the package scope, used to resolve metadata type names.
	Scope *types.Scope
	// Imports maps the names of imported packages to the packages.
	Imports map[string]*types.Package
}
