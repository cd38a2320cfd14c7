package describe_test

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-metadata/describe"
	"struct-metadata/meta"
)

type EmptyA struct{}

type EmptyDocB struct{}

type SingleFeatured struct {
	describe.Container `meta:"important=true"`
}

type DoubleFeatured struct {
	describe.Container `meta:"important=true,cats='Less than 10'"`
}

type SimpleFields struct {
	describe.Container `meta:"important=true"`

	Label       uint64 `json:"label"`
	Description string `json:"description" meta:"text=true"`
	Cats        bool   `json:"cats" meta:"important=true"`
}

type Single uint64

type OptionVec struct {
	Label    *string  `json:"label"`
	Score    *uint64  `json:"score" meta:"active=true"`
	Attached []uint64 `json:"attached" meta:"active=false"`
	Queue    []string `json:"queue" meta:"active=true"`
}

func testRegistry() *describe.Registry {
	reg := describe.NewRegistry()

	reg.RegisterType(reflect.TypeFor[EmptyDocB](), describe.TypeDecl{
		Docs: []string{"The", "", "Docstring"},
	})
	reg.RegisterType(reflect.TypeFor[SimpleFields](), describe.TypeDecl{
		Fields: map[string][]string{
			"Label": {"Name used"},
			"Cats":  {"Are cats allowed here?"},
		},
	})
	reg.RegisterType(reflect.TypeFor[OptionVec](), describe.TypeDecl{
		Docs: []string{"non trivial metadata structs"},
		Fields: map[string][]string{
			"Label": {"Name used"},
			"Queue": {"A queue of strings"},
		},
	})
	reg.RegisterType(reflect.TypeFor[Fields](), describe.TypeDecl{
		Docs: []string{"non trivial metadata structs"},
		Fields: map[string][]string{
			"Label": {"Name used"},
			"Cats":  {"Are cats allowed here?"},
		},
	})
	reg.RegisterType(reflect.TypeFor[Nested](), describe.TypeDecl{
		Docs:   []string{"nested structs"},
		Fields: map[string][]string{"Label": {"Name used"}},
	})

	return reg
}

func TestDescribe_Empty(t *testing.T) {
	d, err := describe.Of[meta.Map, EmptyA]()
	require.NoError(t, err)
	assert.Equal(t, meta.StructOf[meta.Map]("EmptyA", nil), d.Kind)
	assert.Nil(t, d.Docs)
	assert.True(t, d.Metadata.IsEmpty())
}

func TestDescribe_Docs(t *testing.T) {
	d, err := describe.Of[meta.Map, EmptyDocB](describe.WithRegistry(testRegistry()))
	require.NoError(t, err)
	assert.Equal(t, []string{"The", "", "Docstring"}, d.Docs)
	assert.Equal(t, "EmptyDocB", d.Kind.Name)
	assert.Empty(t, d.Kind.Children)
}

func TestDescribe_ContainerMetadata(t *testing.T) {
	d, err := describe.Of[meta.Map, SingleFeatured]()
	require.NoError(t, err)
	assert.Equal(t, meta.Map{"important": "true"}, d.Metadata)
	assert.Empty(t, d.Kind.Children, "the container marker never produces an entry")

	d, err = describe.Of[meta.Map, DoubleFeatured]()
	require.NoError(t, err)
	assert.Equal(t, meta.Map{"important": "true", "cats": "Less than 10"}, d.Metadata)
}

func TestDescribe_SimpleFields(t *testing.T) {
	d, err := describe.Of[meta.Map, SimpleFields](describe.WithRegistry(testRegistry()))
	require.NoError(t, err)

	expected := meta.Descriptor[meta.Map]{
		Metadata: meta.Map{"important": "true"},
		Kind: meta.StructOf("SimpleFields", []meta.Entry[meta.Map]{
			{
				Label:    "label",
				Aliases:  []string{"label"},
				Docs:     []string{"Name used"},
				TypeInfo: meta.Leaf[meta.Map](meta.KindU64),
			},
			{
				Label:    "description",
				Aliases:  []string{"description"},
				Metadata: meta.Map{"text": "true"},
				TypeInfo: meta.Leaf[meta.Map](meta.KindString),
			},
			{
				Label:    "cats",
				Aliases:  []string{"cats"},
				Docs:     []string{"Are cats allowed here?"},
				Metadata: meta.Map{"important": "true"},
				TypeInfo: meta.Leaf[meta.Map](meta.KindBool),
			},
		}),
	}

	// Map declares no hooks, so "label" does not inherit the container's pairs.
	assert.Equal(t, expected, *d, spew.Sdump(d))
}

func TestDescribe_Aliased(t *testing.T) {
	d, err := describe.Of[meta.Map, Single]()
	require.NoError(t, err)
	assert.Equal(t, meta.AliasedOf("Single", meta.Leaf[meta.Map](meta.KindU64)), d.Kind)
	assert.Nil(t, d.Docs)
	assert.True(t, d.Metadata.IsEmpty())
}

func TestDescribe_OptionAndSequence(t *testing.T) {
	d, err := describe.Of[meta.Map, OptionVec](describe.WithRegistry(testRegistry()))
	require.NoError(t, err)

	option := func(d meta.Descriptor[meta.Map]) meta.Descriptor[meta.Map] {
		return meta.Descriptor[meta.Map]{Kind: meta.OptionOf(d)}
	}
	sequence := func(d meta.Descriptor[meta.Map]) meta.Descriptor[meta.Map] {
		return meta.Descriptor[meta.Map]{Kind: meta.SequenceOf(d)}
	}

	expected := meta.Descriptor[meta.Map]{
		Docs: []string{"non trivial metadata structs"},
		Kind: meta.StructOf("OptionVec", []meta.Entry[meta.Map]{
			{
				Label: "label", Aliases: []string{"label"}, Docs: []string{"Name used"},
				TypeInfo: option(meta.Leaf[meta.Map](meta.KindString)),
			},
			{
				Label: "score", Aliases: []string{"score"}, Metadata: meta.Map{"active": "true"},
				TypeInfo: option(meta.Leaf[meta.Map](meta.KindU64)),
			},
			{
				Label: "attached", Aliases: []string{"attached"}, Metadata: meta.Map{"active": "false"},
				TypeInfo: sequence(meta.Leaf[meta.Map](meta.KindU64)),
			},
			{
				Label: "queue", Aliases: []string{"queue"}, Docs: []string{"A queue of strings"},
				Metadata: meta.Map{"active": "true"}, TypeInfo: sequence(meta.Leaf[meta.Map](meta.KindString)),
			},
		}),
	}

	assert.Equal(t, expected, *d, spew.Sdump(d))
}

func TestDescribe_Idempotent(t *testing.T) {
	reg := describe.WithRegistry(testRegistry())

	first, err := describe.Of[meta.Map, OptionVec](reg)
	require.NoError(t, err)

	second, err := describe.Of[meta.Map, OptionVec](reg)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	first.Kind.Children[1].Metadata["active"] = "changed"
	assert.Equal(t, "true", second.Kind.Children[1].Metadata["active"])
}

func TestDescribe_MustOf(t *testing.T) {
	assert.NotPanics(t, func() {
		describe.MustOf[meta.Map, EmptyA]()
	})

	assert.Panics(t, func() {
		describe.MustOf[meta.Map, chan int]()
	})
}
