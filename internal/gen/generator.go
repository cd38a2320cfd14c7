package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strconv"
	"strings"

	"struct-metadata/internal/analyze"
	"struct-metadata/internal/common"
	"struct-metadata/internal/tags"
)

// Import paths referenced by generated code.
const (
	DescribePkg = "struct-metadata/describe"
	MetaPkg     = "struct-metadata/meta"
)

// DefaultOutput is the name of the generated file in each package.
const DefaultOutput = "described_gen.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Output is the file name written into every package directory.
	Output string
	// DebugUnformatted writes the raw template output next to the intended
	// file when it fails to format.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Output: DefaultOutput,
	}
}

// Generator emits registration code for the declarations of a TypeGraph.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Output == "" {
		config.Output = DefaultOutput
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "described_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate emits one file per package holding selected declarations,
// ordered by package path.
func (g *Generator) Generate(graph *analyze.TypeGraph) ([]GeneratedFile, error) {
	paths := make([]string, 0, len(graph.Packages))
	for path := range graph.Packages {
		paths = append(paths, path)
	}

	slices.Sort(paths)

	var files []GeneratedFile

	for _, path := range paths {
		pkg := graph.Packages[path]

		decls := graph.Declarations(path)
		if common.IsEmpty(decls) {
			continue
		}

		file, err := g.generatePackage(pkg, decls)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", path, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generatePackage(pkg *analyze.PackageInfo, decls []*analyze.Declaration) (*GeneratedFile, error) {
	data := &templateData{
		PackageName: pkg.Name,
		StdImports:  []importSpec{{Path: "reflect"}},
	}

	imports := map[string]importSpec{DescribePkg: {Path: DescribePkg}}

	for _, d := range decls {
		c, err := tags.ParseContainer(d.Directives, d.Meta)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", d.ID.Name, err)
		}

		data.Types = append(data.Types, registration(d, c))

		if (!c.Generate && !c.Enum) || d.Described {
			continue
		}

		metaType, imp, err := metadataType(pkg, c)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", d.ID.Name, err)
		}

		if imp.Path != "" {
			imports[imp.Path] = imp
		}

		imports[MetaPkg] = importSpec{Path: MetaPkg}
		data.Methods = append(data.Methods, methodData{TypeName: d.ID.Name, MetaType: metaType})
	}

	for _, path := range sortedKeys(imports) {
		data.Imports = append(data.Imports, imports[path])
	}

	var buf bytes.Buffer
	if err := describedTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := GeneratedFile{
		Dir:      pkg.Dir,
		Filename: g.config.Output,
		Content:  buf.Bytes(),
	}

	formatted, err := format.Source(file.Content)
	if err != nil {
		if g.config.DebugUnformatted {
			if path, werr := writeDebugUnformatted(file); werr == nil && path != "" {
				return nil, fmt.Errorf("formatting code, raw output in %s: %w", path, err)
			}
		}

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	file.Content = formatted

	return &file, nil
}

// registration converts a declaration into its init-time registration call.
func registration(d *analyze.Declaration, c tags.Container) typeData {
	t := typeData{
		Name:       d.ID.Name,
		Register:   "RegisterType",
		Docs:       stringsLiteral(d.Docs, true),
		Directives: quoteNonEmpty(d.Directives),
		Meta:       quoteNonEmpty(d.Meta),
	}

	if d.Kind == analyze.DeclEnum {
		t.Enum = true
		t.Register = "RegisterEnum"

		if c.Display {
			t.Register = "RegisterEnumString"
		}

		for _, v := range d.Variants {
			t.Variants = append(t.Variants, variantData{
				Ident:      v.Ident,
				Docs:       stringsLiteral(v.Docs, true),
				Directives: quoteNonEmpty(v.Directives),
				Meta:       quoteNonEmpty(v.Meta),
			})
		}

		return t
	}

	for _, f := range d.DocumentedFields() {
		t.Fields = append(t.Fields, fieldData{
			Name: strconv.Quote(f.Name),
			Docs: stringsLiteral(f.Docs, false),
		})
	}

	return t
}

// metadataType returns the Go expression of the metadata type selected by
// the container directives and the import it needs, if any.
func metadataType(pkg *analyze.PackageInfo, c tags.Container) (string, importSpec, error) {
	switch {
	case c.MetadataSequence:
		return "meta.Pairs", importSpec{}, nil
	case c.MetadataType == "":
		return "meta.Map", importSpec{}, nil
	}

	if _, err := analyze.ResolveType(pkg, c.MetadataType); err != nil {
		return "", importSpec{}, err
	}

	qual, _, ok := strings.Cut(c.MetadataType, ".")
	if !ok {
		return c.MetadataType, importSpec{}, nil
	}

	imp := pkg.Imports[qual]
	spec := importSpec{Path: imp.Path()}

	if common.PkgAlias(imp.Path()) != qual {
		spec.Alias = qual
	}

	return c.MetadataType, spec, nil
}

// stringsLiteral renders lines as a []string literal, or "" when empty.
// Elided literals omit the type for use as composite map values.
func stringsLiteral(lines []string, typed bool) string {
	if len(lines) == 0 {
		return ""
	}

	quoted := make([]string, len(lines))
	for i, line := range lines {
		quoted[i] = strconv.Quote(line)
	}

	lit := "{" + strings.Join(quoted, ", ") + "}"
	if typed {
		return "[]string" + lit
	}

	return lit
}

func quoteNonEmpty(s string) string {
	if s == "" {
		return ""
	}

	return strconv.Quote(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
