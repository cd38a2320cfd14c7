package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"struct-metadata/internal/common"
	"struct-metadata/internal/tags"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Comment directive prefixes.
const (
	DescribeDirective = "//describe:"
	MetaDirective     = "//meta:"
)

// DescribeMethod is the method through which a type supplies its own
// descriptor.
const DescribeMethod = "DescribeMetadata"

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir loads packages relative to dir instead of the working directory.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// WithLogger sets the logger for load progress and skipped declarations.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithGeneratedFile names the generator's own output file. Type errors
// reported inside it are tolerated, so that a stale generated file does not
// prevent regeneration.
func WithGeneratedFile(name string) Option {
	return func(a *Analyzer) {
		a.generated = name
	}
}

// Analyzer loads Go packages and selects the declarations to describe.
type Analyzer struct {
	graph     *TypeGraph
	dir       string
	generated string
	logger    *zap.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:  NewTypeGraph(),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and collects their annotated
// declarations. Patterns are standard Go package patterns (e.g.,
// "./examples/inventory", "struct-metadata/examples/...").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if a.tolerated(e) {
				a.logger.Warn("ignoring error in generated file", zap.String("error", e.Error()))
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func (a *Analyzer) tolerated(e packages.Error) bool {
	if a.generated == "" || e.Kind != packages.TypeError {
		return false
	}

	file, _, _ := strings.Cut(e.Pos, ":")

	return filepath.Base(file) == a.generated
}

// processPackage walks the package syntax in source order.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil || pkg.TypesInfo == nil {
		return fmt.Errorf("package %s has no type information", pkg.PkgPath)
	}

	pkgInfo := &PackageInfo{
		Path:    pkg.PkgPath,
		Name:    pkg.Name,
		Scope:   pkg.Types.Scope(),
		Imports: make(map[string]*types.Package),
	}

	if first, ok := common.First(pkg.GoFiles); ok {
		pkgInfo.Dir = filepath.Dir(first)
	}

	for _, imp := range pkg.Types.Imports() {
		pkgInfo.Imports[imp.Name()] = imp
	}

	variants := make(map[TypeID][]VariantDecl)

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}

			switch gen.Tok {
			case token.TYPE:
				for _, spec := range gen.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}

					doc := ts.Doc
					if doc == nil && common.IsSingle(gen.Specs) {
						doc = gen.Doc
					}

					d, ok := a.declaration(pkg, ts, doc)
					if !ok {
						continue
					}

					a.graph.Types[d.ID] = d
					pkgInfo.Types = append(pkgInfo.Types, d.ID)
				}
			case token.CONST:
				collectConstants(pkg, gen, variants)
			default:
			}
		}
	}

	for id, vs := range variants {
		if d := a.graph.Types[id]; d != nil && d.Kind == DeclEnum {
			d.Variants = vs
		}
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
	a.logger.Debug("loaded package",
		zap.String("package", pkg.PkgPath),
		zap.Int("declarations", len(pkgInfo.Types)))

	return nil
}

// declaration builds the Declaration of an annotated type spec.
func (a *Analyzer) declaration(pkg *packages.Package, ts *ast.TypeSpec, doc *ast.CommentGroup) (*Declaration, bool) {
	directives, metaText, docs := parseDoc(doc)
	if directives == "" && metaText == "" {
		return nil, false
	}

	pos := pkg.Fset.Position(ts.Pos())

	if ts.Assign.IsValid() || ts.TypeParams != nil {
		a.logger.Warn("skipping annotated alias or generic type",
			zap.String("type", ts.Name.Name), zap.Stringer("pos", pos))

		return nil, false
	}

	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil, false
	}

	d := &Declaration{
		ID:         TypeID{PkgPath: pkg.PkgPath, Name: obj.Name()},
		Docs:       docs,
		Directives: directives,
		Meta:       metaText,
		GoType:     obj.Type(),
		Pos:        pos,
		Described:  a.declaresDescribe(pkg, obj),
	}

	switch ut := obj.Type().Underlying().(type) {
	case *types.Struct:
		d.Kind = DeclStruct
		st, _ := ts.Type.(*ast.StructType)
		d.Fields = structFields(ut, st)
	default:
		d.Kind = DeclNamed
		if declaresEnum(directives) {
			d.Kind = DeclEnum
		}
	}

	return d, true
}

// declaresDescribe reports whether obj has a hand-written DescribeMetadata
// method.
func (a *Analyzer) declaresDescribe(pkg *packages.Package, obj *types.TypeName) bool {
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return false
	}

	for i := range named.NumMethods() {
		m := named.Method(i)
		if m.Name() != DescribeMethod {
			continue
		}

		return a.generated == "" || filepath.Base(pkg.Fset.Position(m.Pos()).Filename) != a.generated
	}

	return false
}

// structFields pairs the go/types fields with their doc comments.
func structFields(st *types.Struct, node *ast.StructType) []FieldDecl {
	var docs [][]string

	if node != nil && node.Fields != nil {
		for _, field := range node.Fields.List {
			_, _, lines := parseDoc(field.Doc)

			n := max(len(field.Names), 1)
			for range n {
				docs = append(docs, lines)
			}
		}
	}

	fields := make([]FieldDecl, 0, st.NumFields())

	for i := range st.NumFields() {
		f := st.Field(i)

		fd := FieldDecl{
			Name:     f.Name(),
			Exported: f.Exported(),
			Embedded: f.Embedded(),
			Tag:      reflect.StructTag(st.Tag(i)),
			Type:     f.Type(),
			Index:    i,
		}

		if i < len(docs) {
			fd.Docs = docs[i]
		}

		fields = append(fields, fd)
	}

	return fields
}

// collectConstants records every constant whose type is a named type of the
// package, keyed by that type.
func collectConstants(pkg *packages.Package, gen *ast.GenDecl, variants map[TypeID][]VariantDecl) {
	for _, spec := range gen.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		doc := vs.Doc
		if doc == nil && common.IsSingle(gen.Specs) {
			doc = gen.Doc
		}

		directives, metaText, docs := parseDoc(doc)

		for _, name := range vs.Names {
			if name.Name == "_" {
				continue
			}

			c, ok := pkg.TypesInfo.Defs[name].(*types.Const)
			if !ok {
				continue
			}

			named, ok := c.Type().(*types.Named)
			if !ok || named.Obj().Pkg() == nil || named.Obj().Pkg().Path() != pkg.PkgPath {
				continue
			}

			id := TypeID{PkgPath: pkg.PkgPath, Name: named.Obj().Name()}
			variants[id] = append(variants[id], VariantDecl{
				Ident:      name.Name,
				Docs:       docs,
				Directives: directives,
				Meta:       metaText,
				Pos:        pkg.Fset.Position(name.Pos()),
			})
		}
	}
}

// parseDoc separates the directive lines of a doc comment from its text.
func parseDoc(doc *ast.CommentGroup) (directives, metaText string, docs []string) {
	if doc == nil {
		return "", "", nil
	}

	var d, m []string

	text := &ast.CommentGroup{}

	for _, c := range doc.List {
		switch {
		case strings.HasPrefix(c.Text, DescribeDirective):
			d = appendDirective(d, strings.TrimPrefix(c.Text, DescribeDirective))
		case strings.HasPrefix(c.Text, MetaDirective):
			m = appendDirective(m, strings.TrimPrefix(c.Text, MetaDirective))
		default:
			text.List = append(text.List, c)
		}
	}

	return strings.Join(d, ","), strings.Join(m, ","), docLines(text.Text())
}

func appendDirective(list []string, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return list
	}

	return append(list, text)
}

func docLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}

func declaresEnum(directives string) bool {
	items, err := tags.Split(directives)
	if err != nil {
		return false
	}

	for _, item := range items {
		if item.Key == "enum" || item.Key == "display" {
			return true
		}
	}

	return false
}
