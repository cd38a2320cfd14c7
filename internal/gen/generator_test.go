package gen

import (
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-metadata/internal/analyze"
	"struct-metadata/internal/tags"
)

const inventoryPkg = "struct-metadata/examples/inventory"

func loadInventory(t *testing.T) *analyze.TypeGraph {
	t.Helper()

	graph, err := analyze.NewAnalyzer(analyze.WithGeneratedFile(DefaultOutput)).LoadPackages(inventoryPkg)
	require.NoError(t, err)

	return graph
}

func TestGenerator_Inventory(t *testing.T) {
	graph := loadInventory(t)

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(graph)
	require.NoError(t, err)
	require.Len(t, files, 1)

	file := files[0]
	assert.Equal(t, DefaultOutput, file.Filename)
	assert.Equal(t, graph.Packages[inventoryPkg].Dir, file.Dir)

	content := string(file.Content)
	assert.Contains(t, content, "// Code generated by describe-gen. DO NOT EDIT.")
	assert.Contains(t, content, "package inventory")
	assert.Contains(t, content, `describe.RegisterEnumString(reflect.TypeFor[Status](), describe.EnumDecl{`)
	assert.Contains(t, content, `{Ident: "GradeUsed", Value: GradeUsed},`)
	assert.Contains(t, content, `"SKU":  {"SKU identifies the item."},`)
	assert.Contains(t, content, "func (Item) DescribeMetadata() (meta.Descriptor[Search], error) {")
	assert.Contains(t, content, "func (Warehouse) DescribeMetadata() (meta.Descriptor[meta.Pairs], error) {")
	assert.NotContains(t, content, "func (Tags) DescribeMetadata()")

	checkedIn, err := os.ReadFile(file.Path())
	require.NoError(t, err)
	assert.Equal(t, string(checkedIn), content, "examples/inventory/described_gen.go is stale")

	stale, err := Stale(files)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func syntheticGraph(dir string) *analyze.TypeGraph {
	searchPkg := types.NewPackage("example.com/search/v2", "search")
	index := types.NewNamed(types.NewTypeName(0, searchPkg, "Index", nil), types.NewStruct(nil, nil), nil)
	searchPkg.Scope().Insert(index.Obj())

	pkgPath := "example.com/catalog"
	order := analyze.TypeID{PkgPath: pkgPath, Name: "Order"}
	custom := analyze.TypeID{PkgPath: pkgPath, Name: "Custom"}
	level := analyze.TypeID{PkgPath: pkgPath, Name: "Level"}

	graph := analyze.NewTypeGraph()
	graph.Packages[pkgPath] = &analyze.PackageInfo{
		Path:    pkgPath,
		Name:    "catalog",
		Dir:     dir,
		Types:   []analyze.TypeID{order, custom, level},
		Scope:   types.NewScope(nil, 0, 0, "catalog"),
		Imports: map[string]*types.Package{"search": searchPkg},
	}
	graph.Packages["example.com/empty"] = &analyze.PackageInfo{Path: "example.com/empty", Name: "empty"}

	graph.Types[order] = &analyze.Declaration{
		ID:         order,
		Kind:       analyze.DeclStruct,
		Directives: "generate,metadata_type=search.Index",
		Fields: []analyze.FieldDecl{
			{Name: "ID", Exported: true, Docs: []string{`Quoted "id".`}},
			{Name: "Total", Exported: true},
		},
	}
	graph.Types[custom] = &analyze.Declaration{
		ID:         custom,
		Kind:       analyze.DeclStruct,
		Directives: "generate",
		Described:  true,
	}
	graph.Types[level] = &analyze.Declaration{
		ID:         level,
		Kind:       analyze.DeclEnum,
		Directives: "enum",
		Variants:   []analyze.VariantDecl{{Ident: "LevelLow", Meta: "rank=1"}},
	}

	return graph
}

func TestGenerator_Synthetic(t *testing.T) {
	dir := t.TempDir()

	files, err := NewGenerator(GeneratorConfig{Output: "zz_described.go"}).Generate(syntheticGraph(dir))
	require.NoError(t, err)
	require.Len(t, files, 1, "packages without declarations get no file")

	content := string(files[0].Content)
	assert.Equal(t, "zz_described.go", files[0].Filename)
	assert.Contains(t, content, `search "example.com/search/v2"`)
	assert.Contains(t, content, `"ID": {"Quoted \"id\"."},`)
	assert.NotContains(t, content, `"Total"`)
	assert.Contains(t, content, "func (Order) DescribeMetadata() (meta.Descriptor[search.Index], error) {")
	assert.NotContains(t, content, "func (Custom) DescribeMetadata()", "hand-written method is kept")
	assert.Contains(t, content, `describe.RegisterEnum(reflect.TypeFor[Level](), describe.EnumDecl{`)
	assert.Contains(t, content, `{Ident: "LevelLow", Value: LevelLow, Meta: "rank=1"},`)
	assert.Contains(t, content, "func (Level) DescribeMetadata() (meta.Descriptor[meta.Map], error) {")

	stale, err := Stale(files)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "zz_described.go")}, stale)

	require.NoError(t, WriteFiles(files))

	stale, err = Stale(files)
	require.NoError(t, err)
	assert.Empty(t, stale)

	written, err := os.ReadFile(filepath.Join(dir, "zz_described.go"))
	require.NoError(t, err)
	assert.Equal(t, files[0].Content, written)
}

func TestGenerator_Errors(t *testing.T) {
	graph := syntheticGraph(t.TempDir())
	graph.Types[analyze.TypeID{PkgPath: "example.com/catalog", Name: "Order"}].Directives = "generate,metadata_type=Missing"

	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(graph)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generating example.com/catalog: type Order:")

	graph = syntheticGraph(t.TempDir())
	graph.Types[analyze.TypeID{PkgPath: "example.com/catalog", Name: "Level"}].Directives = "enum,inline"

	_, err = NewGenerator(DefaultGeneratorConfig()).Generate(graph)
	require.ErrorIs(t, err, tags.ErrUnknownOption)
}

func TestMetadataType(t *testing.T) {
	graph := syntheticGraph(t.TempDir())
	pkg := graph.Packages["example.com/catalog"]

	expr, imp, err := metadataType(pkg, tags.Container{MetadataSequence: true})
	require.NoError(t, err)
	assert.Equal(t, "meta.Pairs", expr)
	assert.Empty(t, imp.Path)

	expr, _, err = metadataType(pkg, tags.Container{})
	require.NoError(t, err)
	assert.Equal(t, "meta.Map", expr)

	expr, imp, err = metadataType(pkg, tags.Container{MetadataType: "search.Index"})
	require.NoError(t, err)
	assert.Equal(t, "search.Index", expr)
	assert.Equal(t, importSpec{Alias: "search", Path: "example.com/search/v2"}, imp)
}

func TestStringsLiteral(t *testing.T) {
	assert.Empty(t, stringsLiteral(nil, true))
	assert.Equal(t, `[]string{"a", "", "b"}`, stringsLiteral([]string{"a", "", "b"}, true))
	assert.Equal(t, `{"a"}`, stringsLiteral([]string{"a"}, false))
}

func TestWriteDebugUnformatted(t *testing.T) {
	file := GeneratedFile{Dir: t.TempDir(), Filename: DefaultOutput, Content: []byte("package broken {")}

	path, err := writeDebugUnformatted(file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(file.Dir, "described_gen.unformatted.txt"), path)
	assert.Equal(t, path, file.DebugPath())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package broken {", string(content))

	path, err = writeDebugUnformatted(GeneratedFile{Filename: DefaultOutput})
	require.NoError(t, err)
	assert.Empty(t, path)
}
