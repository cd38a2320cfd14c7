package describe

import (
	"reflect"
	"sync"
)

// TypeDecl carries the parts of a type declaration that reflection cannot
// see: doc comments and comment directives. describe-gen emits one per
// selected type.
type TypeDecl struct {
	// Docs holds the type's doc comment lines.
	Docs []string
	// Fields maps Go field names to their doc comment lines.
	Fields map[string][]string
	// Directives is the `//describe:` directive text of the type.
	Directives string
	// Meta is the `//meta:` directive text of the type.
	Meta string
}

// EnumDecl declares a fieldless enum: a named scalar type and its constants.
type EnumDecl struct {
	Docs       []string
	Directives string
	Meta       string
	Variants   []VariantDecl
	// Display labels variants with their fmt.Stringer output instead of the
	// raw identifier when no rename or case policy applies.
	Display bool
}

// VariantDecl declares one enum constant.
type VariantDecl struct {
	// Ident is the constant's Go identifier.
	Ident string
	// Value is the constant itself; it must have the enum type.
	Value      any
	Docs       []string
	Directives string
	Meta       string
}

// Registry holds the declarations registered for reflected types. It is
// written from package init functions and read by builders.
type Registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]TypeDecl
	enums map[reflect.Type]EnumDecl
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[reflect.Type]TypeDecl),
		enums: make(map[reflect.Type]EnumDecl),
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry used by builders created without
// WithRegistry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterType records the declaration of t, replacing any previous one.
func (r *Registry) RegisterType(t reflect.Type, decl TypeDecl) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types[t] = decl
}

// RegisterEnum records t as an enum labelled by raw identifiers.
func (r *Registry) RegisterEnum(t reflect.Type, decl EnumDecl) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.enums[t] = decl
}

// RegisterEnumString records t as an enum labelled by the values'
// fmt.Stringer output.
func (r *Registry) RegisterEnumString(t reflect.Type, decl EnumDecl) {
	decl.Display = true
	r.RegisterEnum(t, decl)
}

// Type returns the declaration registered for t.
func (r *Registry) Type(t reflect.Type) (TypeDecl, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decl, ok := r.types[t]

	return decl, ok
}

// Enum returns the enum declaration registered for t.
func (r *Registry) Enum(t reflect.Type) (EnumDecl, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decl, ok := r.enums[t]

	return decl, ok
}

// RegisterType records the declaration of t in the default registry.
func RegisterType(t reflect.Type, decl TypeDecl) {
	defaultRegistry.RegisterType(t, decl)
}

// RegisterEnum records t as a raw-identifier enum in the default registry.
func RegisterEnum(t reflect.Type, decl EnumDecl) {
	defaultRegistry.RegisterEnum(t, decl)
}

// RegisterEnumString records t as a display-labelled enum in the default
// registry.
func RegisterEnumString(t reflect.Type, decl EnumDecl) {
	defaultRegistry.RegisterEnumString(t, decl)
}
