package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"slices"
	"strings"

	"struct-metadata/internal/casing"
	"struct-metadata/internal/common"
	"struct-metadata/internal/diagnostic"
	"struct-metadata/internal/tags"
	"struct-metadata/meta"
)

// DecoderMethod is the method a non-struct metadata type must declare on its
// pointer to be decodable from annotation pairs.
const DecoderMethod = "DecodeMetadata"

// Validate checks every selected declaration of the graph and reports all
// findings. Packages are visited in path order and declarations in source
// order.
func Validate(graph *TypeGraph) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	paths := make([]string, 0, len(graph.Packages))
	for path := range graph.Packages {
		paths = append(paths, path)
	}

	slices.Sort(paths)

	for _, path := range paths {
		pkg := graph.Packages[path]
		for _, d := range graph.Declarations(path) {
			v := &validator{pkg: pkg, decl: d, diags: &diags}
			v.run()
		}
	}

	return diags
}

type validator struct {
	pkg   *PackageInfo
	decl  *Declaration
	diags *diagnostic.Diagnostics
	// record is the struct metadata type when keys can be checked statically.
	record *types.Struct
}

func (v *validator) name() string {
	return v.pkg.Name + "." + v.decl.ID.Name
}

func (v *validator) report(severity diagnostic.DiagnosticSeverity, code, member, format string, args ...any) {
	v.diags.Add(diagnostic.Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Type:     v.name(),
		Member:   member,
		Pos:      v.decl.Pos.String(),
	})
}

func (v *validator) run() {
	c, err := tags.ParseContainer(v.decl.Directives, v.decl.Meta)
	if err != nil {
		code := diagnostic.CodeDirective
		if errors.Is(err, tags.ErrConflictingMetadata) {
			code = diagnostic.CodeMetadataConflict
		}

		v.report(diagnostic.DiagnosticError, code, "", "%v", err)

		return
	}

	v.report(diagnostic.DiagnosticInfo, diagnostic.CodeSelected, "", "selected as %s", v.decl.Kind)

	if c.MetadataType != "" {
		v.metadataType(c.MetadataType)
	}

	v.keys("", c.Meta)

	switch v.decl.Kind {
	case DeclStruct:
		if c.Enum || c.Display {
			v.report(diagnostic.DiagnosticError, diagnostic.CodeEnumKind, "",
				"enum requires a named integer or string type, got struct")
		}

		v.fields()
	case DeclEnum:
		v.enum(c.Display)
	case DeclNamed:
		if bad := unsupported(v.decl.GoType.Underlying()); bad != "" {
			v.report(diagnostic.DiagnosticError, diagnostic.CodeUnsupportedType, "",
				"%s cannot be described", bad)
		}
	default:
	}
}

// metadataType resolves the metadata_type directive and prepares key
// checking for struct metadata types.
func (v *validator) metadataType(name string) {
	obj, err := ResolveType(v.pkg, name)
	if err != nil {
		v.report(diagnostic.DiagnosticError, diagnostic.CodeMetadataType, "", "%v", err)
		return
	}

	if st, ok := obj.Type().Underlying().(*types.Struct); ok && !hasDecoder(obj.Type()) {
		v.record = st
		return
	}

	if !hasDecoder(obj.Type()) {
		v.report(diagnostic.DiagnosticError, diagnostic.CodeMetadataType, "",
			"metadata type %s is neither a struct nor has a %s method on its pointer", name, DecoderMethod)
	}
}

// keys reports annotation keys that address no field of the record
// metadata type.
func (v *validator) keys(member string, pairs []meta.Pair) {
	if v.record == nil {
		return
	}

	for _, pair := range pairs {
		if !recordHasKey(v.record, pair.Key) {
			v.report(diagnostic.DiagnosticError, diagnostic.CodeUnknownKey, member,
				"metadata key %q matches no field of the metadata type", pair.Key)
		}
	}
}

func (v *validator) fields() {
	for _, f := range v.decl.Fields {
		parsed, err := tags.ParseField(f.Tag)
		if err != nil {
			v.report(diagnostic.DiagnosticError, diagnostic.CodeFieldTag, f.Name, "%v", err)
			continue
		}

		if parsed.Skip {
			continue
		}

		promoted := f.Embedded && parsed.Rename == "" && flattenable(f.Type)
		if !f.Exported && !promoted && !parsed.Flatten {
			continue
		}

		v.keys(f.Name, parsed.Meta)

		if parsed.Flatten && !flattenable(f.Type) {
			v.report(diagnostic.DiagnosticError, diagnostic.CodeFlatten, f.Name,
				"flatten requires a struct type, got %s", types.TypeString(f.Type, v.qualifier))

			continue
		}

		if bad := unsupported(f.Type); bad != "" {
			v.report(diagnostic.DiagnosticError, diagnostic.CodeUnsupportedType, f.Name,
				"%s cannot be described", bad)
		}
	}
}

func (v *validator) enum(display bool) {
	basic, ok := v.decl.GoType.Underlying().(*types.Basic)
	if !ok || basic.Info()&(types.IsInteger|types.IsString) == 0 {
		v.report(diagnostic.DiagnosticError, diagnostic.CodeEnumKind, "",
			"enum requires a named integer or string type, got %s", v.decl.GoType.Underlying())

		return
	}

	if display && !hasStringMethod(v.decl.GoType) {
		v.report(diagnostic.DiagnosticError, diagnostic.CodeEnumDisplay, "",
			"display requires a String() string method on the value receiver")
	}

	if common.IsEmpty(v.decl.Variants) {
		v.report(diagnostic.DiagnosticWarning, diagnostic.CodeEnumEmpty, "",
			"enum declares no constants and describes with no variants")

		return
	}

	for _, variant := range v.decl.Variants {
		parsed, err := tags.ParseVariant(variant.Directives, variant.Meta)
		if err != nil {
			v.report(diagnostic.DiagnosticError, diagnostic.CodeDirective, variant.Ident, "%v", err)
			continue
		}

		v.keys(variant.Ident, parsed.Meta)
	}
}

func (v *validator) qualifier(p *types.Package) string {
	if p.Path() == v.pkg.Path {
		return ""
	}

	return p.Name()
}

// hasStringMethod reports whether values of t implement fmt.Stringer.
func hasStringMethod(t types.Type) bool {
	obj, _, _ := types.LookupFieldOrMethod(t, false, nil, "String")

	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}

	result, ok := sig.Results().At(0).Type().(*types.Basic)

	return ok && result.Kind() == types.String
}

// ResolveType looks up a type name written in a directive: either an
// identifier of the declaring package or a name qualified by one of its
// imports.
func ResolveType(pkg *PackageInfo, name string) (*types.TypeName, error) {
	scope := pkg.Scope
	ident := name

	if qual, sel, ok := strings.Cut(name, "."); ok {
		imp, found := pkg.Imports[qual]
		if !found {
			return nil, fmt.Errorf("metadata type %s: package %q is not imported by %s", name, qual, pkg.Path)
		}

		scope = imp.Scope()
		ident = sel
	}

	if scope == nil {
		return nil, fmt.Errorf("metadata type %s: no scope for package %s", name, pkg.Path)
	}

	obj, ok := scope.Lookup(ident).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("metadata type %s is not a declared type", name)
	}

	return obj, nil
}

func hasDecoder(t types.Type) bool {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(t), true, nil, DecoderMethod)
	_, ok := obj.(*types.Func)

	return ok
}

func recordHasKey(st *types.Struct, key string) bool {
	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Exported() {
			continue
		}

		tag := reflect.StructTag(st.Tag(i)).Get(tags.MetaKey)
		if casing.KeyMatches(f.Name(), tag, key) {
			return true
		}
	}

	return false
}

// flattenable reports whether t (through pointers) describes as a struct.
func flattenable(t types.Type) bool {
	for {
		p, ok := types.Unalias(t).(*types.Pointer)
		if !ok {
			break
		}

		t = p.Elem()
	}

	t = types.Unalias(t)

	if _, ok := t.Underlying().(*types.Struct); !ok {
		return false
	}

	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return true
	}

	switch named.Obj().Pkg().Path() {
	case "time":
		return named.Obj().Name() != "Time"
	case "database/sql":
		return !strings.HasPrefix(named.Obj().Name(), "Null")
	default:
		return true
	}
}

// unsupported returns a description of the first part of t that has no
// descriptor shape, or "" when t can be described. Named struct types are
// not entered; they are checked where they are declared.
func unsupported(t types.Type) string {
	return unsupportedIn(t, make(map[*types.Named]bool))
}

func unsupportedIn(t types.Type, seen map[*types.Named]bool) string {
	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		switch tt.Underlying().(type) {
		case *types.Struct, *types.Interface:
			return ""
		default:
		}

		if seen[tt] {
			return ""
		}

		seen[tt] = true

		return unsupportedIn(tt.Underlying(), seen)
	case *types.Basic:
		switch {
		case tt.Info()&types.IsComplex != 0:
			return "complex number " + tt.Name()
		case tt.Kind() == types.Uintptr || tt.Kind() == types.UnsafePointer:
			return tt.Name()
		default:
			return ""
		}
	case *types.Pointer:
		return unsupportedIn(tt.Elem(), seen)
	case *types.Slice:
		return unsupportedIn(tt.Elem(), seen)
	case *types.Array:
		return unsupportedIn(tt.Elem(), seen)
	case *types.Map:
		if bad := unsupportedIn(tt.Key(), seen); bad != "" {
			return bad
		}

		return unsupportedIn(tt.Elem(), seen)
	case *types.Chan:
		return "channel " + tt.String()
	case *types.Signature:
		return "function " + tt.String()
	default:
		return ""
	}
}
