package describe

import (
	"fmt"
	"reflect"
	"strings"

	"struct-metadata/internal/casing"
	"struct-metadata/internal/tags"
	"struct-metadata/meta"
)

var (
	containerType = reflect.TypeFor[Container]()
	stringerType  = reflect.TypeFor[fmt.Stringer]()
)

// build returns the descriptor of a member type, preferring the type's own
// Described implementation.
func (b *Builder[M]) build(t reflect.Type) (meta.Descriptor[M], error) {
	if d, ok := b.described(t); ok {
		return d()
	}

	return b.shape(t)
}

// described returns the Described implementation of t for M. Pointer and
// interface types are never asked: a nil receiver cannot describe itself.
func (b *Builder[M]) described(t reflect.Type) (func() (meta.Descriptor[M], error), bool) {
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return nil, false
	}

	if !t.Implements(reflect.TypeFor[Described[M]]()) {
		return nil, false
	}

	impl := reflect.Zero(t).Interface().(Described[M])

	return impl.DescribeMetadata, true
}

// shape builds the descriptor of t from its declaration.
func (b *Builder[M]) shape(t reflect.Type) (meta.Descriptor[M], error) {
	if decl, ok := b.registry.Enum(t); ok {
		return b.enum(t, decl)
	}

	if tag, ok := builtinLeaf(t); ok {
		return meta.Leaf[M](tag), nil
	}

	if elem, ok := nullableElem(t); ok {
		inner, err := b.build(elem)
		if err != nil {
			return meta.Descriptor[M]{}, err
		}

		return meta.Descriptor[M]{Kind: meta.OptionOf(inner)}, nil
	}

	switch t.Kind() {
	case reflect.Struct:
		return b.structure(t)
	case reflect.Interface:
		return meta.Leaf[M](meta.KindAny), nil
	default:
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return b.aliased(t)
	}

	return b.unnamed(t)
}

// aliased describes a named non-struct type as a wrapper around its
// underlying shape.
func (b *Builder[M]) aliased(t reflect.Type) (meta.Descriptor[M], error) {
	decl, _ := b.registry.Type(t)

	c, err := tags.ParseContainer(decl.Directives, decl.Meta)
	if err != nil {
		return meta.Descriptor[M]{}, declError(t.Name(), "", err)
	}

	name := typeName(t, c.Rename)

	md, err := meta.Decode[M](c.Meta)
	if err != nil {
		return meta.Descriptor[M]{}, declError(name, "", err)
	}

	inner, err := b.unnamed(t)
	if err != nil {
		return meta.Descriptor[M]{}, declError(name, "", err)
	}

	return meta.Descriptor[M]{
		Docs:     decl.Docs,
		Metadata: md,
		Kind:     meta.AliasedOf(name, inner),
	}, nil
}

// unnamed describes t by its reflect.Kind alone, ignoring its name.
func (b *Builder[M]) unnamed(t reflect.Type) (meta.Descriptor[M], error) {
	if tag, ok := scalarKinds[t.Kind()]; ok {
		return meta.Leaf[M](tag), nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		inner, err := b.build(t.Elem())
		if err != nil {
			return meta.Descriptor[M]{}, err
		}

		return meta.Descriptor[M]{Kind: meta.OptionOf(inner)}, nil

	case reflect.Slice, reflect.Array:
		inner, err := b.build(t.Elem())
		if err != nil {
			return meta.Descriptor[M]{}, err
		}

		return meta.Descriptor[M]{Kind: meta.SequenceOf(inner)}, nil

	case reflect.Map:
		key, err := b.build(t.Key())
		if err != nil {
			return meta.Descriptor[M]{}, err
		}

		value, err := b.build(t.Elem())
		if err != nil {
			return meta.Descriptor[M]{}, err
		}

		return meta.Descriptor[M]{Kind: meta.MappingOf(key, value)}, nil

	case reflect.Interface:
		return meta.Leaf[M](meta.KindAny), nil

	case reflect.Struct:
		return b.structure(t)

	default:
		return meta.Descriptor[M]{}, fmt.Errorf("%w %s", ErrUnsupportedType, t)
	}
}

// structure describes a struct type field by field.
func (b *Builder[M]) structure(t reflect.Type) (meta.Descriptor[M], error) {
	decl, _ := b.registry.Type(t)

	c, err := b.container(t, decl)
	if err != nil {
		return meta.Descriptor[M]{}, declError(t.Name(), "", err)
	}

	name := typeName(t, c.Rename)

	md, err := meta.Decode[M](c.Meta)
	if err != nil {
		return meta.Descriptor[M]{}, declError(name, "", err)
	}

	kind := meta.StructOf(name, make([]meta.Entry[M], 0, t.NumField()))

	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Type == containerType {
			continue
		}

		f, err := tags.ParseField(sf.Tag)
		if err != nil {
			return meta.Descriptor[M]{}, declError(name, sf.Name, err)
		}

		if f.Skip {
			continue
		}

		promoted := sf.Anonymous && f.Rename == "" && isStructLike(sf.Type)
		if !sf.IsExported() && !promoted && !f.Flatten {
			continue
		}

		fieldMeta, err := meta.Decode[M](f.Meta)
		if err != nil {
			return meta.Descriptor[M]{}, declError(name, sf.Name, err)
		}

		if f.Flatten || promoted {
			inner, err := b.flatten(sf.Type)
			if err != nil {
				return meta.Descriptor[M]{}, declError(name, sf.Name, err)
			}

			kind.Splice(fieldMeta, inner)

			continue
		}

		typeInfo, err := b.build(sf.Type)
		if err != nil {
			return meta.Descriptor[M]{}, declError(name, sf.Name, err)
		}

		label := tags.Label(f.Rename, c.RenameAll, sf.Name)
		kind.Children = append(kind.Children, meta.Entry[M]{
			Label:      label,
			Aliases:    tags.Aliases(label, f.Aliases),
			Docs:       decl.Fields[sf.Name],
			Metadata:   fieldMeta,
			TypeInfo:   typeInfo,
			HasDefault: f.Default || c.Default,
		})
	}

	return meta.Descriptor[M]{
		Docs:     decl.Docs,
		Metadata: md,
		Kind:     kind,
	}, nil
}

// flatten describes the type of a flattened field, which must be a struct.
func (b *Builder[M]) flatten(t reflect.Type) (meta.Descriptor[M], error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	inner, err := b.build(t)
	if err != nil {
		return meta.Descriptor[M]{}, err
	}

	if inner.Kind.Tag != meta.KindStruct {
		return meta.Descriptor[M]{}, fmt.Errorf("%w: %s describes as %s", ErrFlattenNotStruct, t, inner.Kind.Tag)
	}

	return inner, nil
}

// container reads the container-level directives of a struct: the
// registered comment directives first, then the tags of an embedded
// Container marker, later keys overriding earlier ones.
func (b *Builder[M]) container(t reflect.Type, decl TypeDecl) (tags.Container, error) {
	describeText, metaText := decl.Directives, decl.Meta

	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Type != containerType {
			continue
		}

		describeText = joinText(describeText, sf.Tag.Get(tags.DescribeKey))
		metaText = joinText(metaText, sf.Tag.Get(tags.MetaKey))
	}

	return tags.ParseContainer(describeText, metaText)
}

// enum describes a registered enum type.
func (b *Builder[M]) enum(t reflect.Type, decl EnumDecl) (meta.Descriptor[M], error) {
	c, err := tags.ParseContainer(decl.Directives, decl.Meta)
	if err != nil {
		return meta.Descriptor[M]{}, declError(t.Name(), "", err)
	}

	name := typeName(t, c.Rename)

	md, err := meta.Decode[M](c.Meta)
	if err != nil {
		return meta.Descriptor[M]{}, declError(name, "", err)
	}

	if _, ok := scalarKinds[t.Kind()]; !ok {
		return meta.Descriptor[M]{}, declError(name, "", fmt.Errorf("%w: %s is a %s", ErrInvalidVariant, t, t.Kind()))
	}

	display := decl.Display || c.Display
	if display && !t.Implements(stringerType) {
		return meta.Descriptor[M]{}, declError(name, "", fmt.Errorf("%w: %s has no String method", ErrDisplayWithoutString, t))
	}

	variants := make([]meta.Variant[M], 0, len(decl.Variants))

	for _, vd := range decl.Variants {
		value := reflect.ValueOf(vd.Value)
		if !value.IsValid() || value.Type() != t {
			return meta.Descriptor[M]{}, declError(name, vd.Ident,
				fmt.Errorf("%w: value %#v is not a constant of %s", ErrInvalidVariant, vd.Value, t))
		}

		v, err := tags.ParseVariant(vd.Directives, vd.Meta)
		if err != nil {
			return meta.Descriptor[M]{}, declError(name, vd.Ident, err)
		}

		vm, err := meta.Decode[M](v.Meta)
		if err != nil {
			return meta.Descriptor[M]{}, declError(name, vd.Ident, err)
		}

		label := variantLabel(vd, v.Rename, c, display)
		variants = append(variants, meta.Variant[M]{
			Label:    label,
			Docs:     vd.Docs,
			Metadata: vm,
			Aliases:  tags.Aliases(label, v.Aliases),
		})
	}

	return meta.Descriptor[M]{
		Docs:     decl.Docs,
		Metadata: md,
		Kind:     meta.EnumOf(name, variants),
	}, nil
}

// variantLabel applies the rename, then the case policy to the raw
// identifier, then falls back to the identifier or the display string.
func variantLabel(vd VariantDecl, rename string, c tags.Container, display bool) string {
	if rename != "" {
		return rename
	}

	ident := strings.TrimPrefix(vd.Ident, c.TrimPrefix)
	if c.RenameAll != casing.None {
		return c.RenameAll.Apply(ident)
	}

	if display {
		return fmt.Sprint(vd.Value)
	}

	return ident
}

func typeName(t reflect.Type, rename string) string {
	if rename != "" {
		return rename
	}

	return t.Name()
}

func joinText(a, b string) string {
	switch {
	case strings.TrimSpace(a) == "":
		return b
	case strings.TrimSpace(b) == "":
		return a
	default:
		return a + "," + b
	}
}
