package meta

// Descriptor is one node of a type's structural description.
//
// A Descriptor is a plain value: it holds no reference to its parent and is
// built fresh for every describe request, so callers may mutate or discard it
// freely.
type Descriptor[M any] struct {
	// Docs holds the documentation lines as authored, nil when undocumented.
	Docs []string
	// Metadata is the annotation payload of the node.
	Metadata M
	// Kind is the structural role of the node.
	Kind Kind[M]
}

// Kind is the tagged union of structural shapes a Descriptor can take.
// Only the fields relevant to Tag are populated.
type Kind[M any] struct {
	Tag KindTag

	// Name is the declared (or renamed) type name for KindStruct,
	// KindAliased and KindEnum.
	Name string
	// Children lists the fields of a KindStruct in declaration order.
	Children []Entry[M]
	// Variants lists the cases of a KindEnum in declaration order.
	Variants []Variant[M]

	// Key is the key descriptor of a KindMapping.
	Key *Descriptor[M]
	// Elem is the wrapped descriptor of KindAliased, KindSequence and
	// KindOption, and the value descriptor of KindMapping.
	Elem *Descriptor[M]

	// spliced records the runs of Children contributed by flattened
	// fields, ordered by position.
	spliced []splice[M]
}

// splice is a run of struct children taken from a flattened field. The
// propagation pass treats the run as the children of inner, reached through
// an entry carrying site.
type splice[M any] struct {
	start, end int
	site       M
	inner      Descriptor[M]
}

// Entry describes one struct field.
type Entry[M any] struct {
	// Label is the external name of the field after renaming.
	Label string
	// Aliases lists every name the field may be matched by; Label is always first.
	Aliases []string
	// Docs holds the field documentation lines, nil when undocumented.
	Docs []string
	// Metadata is the field-level annotation payload.
	Metadata M
	// TypeInfo describes the field's type.
	TypeInfo Descriptor[M]
	// HasDefault records whether the declaration supplies a default value.
	HasDefault bool
}

// Variant describes one enum case.
type Variant[M any] struct {
	Label    string
	Docs     []string
	Metadata M
	Aliases  []string
}

// Leaf returns the descriptor of a fixed leaf kind with no documentation and
// empty metadata.
func Leaf[M any](tag KindTag) Descriptor[M] {
	return Descriptor[M]{Kind: Kind[M]{Tag: tag}}
}

// StructOf returns a KindStruct kind.
func StructOf[M any](name string, children []Entry[M]) Kind[M] {
	if children == nil {
		children = []Entry[M]{}
	}

	return Kind[M]{Tag: KindStruct, Name: name, Children: children}
}

// Splice appends the children of inner, a KindStruct descriptor, to the
// struct kind k in place of a flattened field whose metadata is site. The
// spliced entries are propagated once, through site and the metadata of
// inner, as if inner were still an entry of k.
func (k *Kind[M]) Splice(site M, inner Descriptor[M]) {
	start := len(k.Children)
	k.Children = append(k.Children, inner.Kind.Children...)

	inner.Kind.Children = nil
	k.spliced = append(k.spliced, splice[M]{
		start: start,
		end:   len(k.Children),
		site:  site,
		inner: inner,
	})
}

// AliasedOf returns a KindAliased kind delegating to inner.
func AliasedOf[M any](name string, inner Descriptor[M]) Kind[M] {
	return Kind[M]{Tag: KindAliased, Name: name, Elem: &inner}
}

// EnumOf returns a KindEnum kind.
func EnumOf[M any](name string, variants []Variant[M]) Kind[M] {
	if variants == nil {
		variants = []Variant[M]{}
	}

	return Kind[M]{Tag: KindEnum, Name: name, Variants: variants}
}

// SequenceOf returns a KindSequence kind over elem.
func SequenceOf[M any](elem Descriptor[M]) Kind[M] {
	return Kind[M]{Tag: KindSequence, Elem: &elem}
}

// OptionOf returns a KindOption kind over elem.
func OptionOf[M any](elem Descriptor[M]) Kind[M] {
	return Kind[M]{Tag: KindOption, Elem: &elem}
}

// MappingOf returns a KindMapping kind from key to value.
func MappingOf[M any](key, value Descriptor[M]) Kind[M] {
	return Kind[M]{Tag: KindMapping, Key: &key, Elem: &value}
}

// Child returns the struct entry with the given label.
func (d *Descriptor[M]) Child(label string) (*Entry[M], bool) {
	if d.Kind.Tag != KindStruct {
		return nil, false
	}

	for i := range d.Kind.Children {
		if d.Kind.Children[i].Label == label {
			return &d.Kind.Children[i], true
		}
	}

	return nil, false
}

// Variant returns the enum variant with the given label.
func (d *Descriptor[M]) Variant(label string) (*Variant[M], bool) {
	if d.Kind.Tag != KindEnum {
		return nil, false
	}

	for i := range d.Kind.Variants {
		if d.Kind.Variants[i].Label == label {
			return &d.Kind.Variants[i], true
		}
	}

	return nil, false
}

// Labels returns the labels of a struct's children in order.
func (d *Descriptor[M]) Labels() []string {
	labels := make([]string, 0, len(d.Kind.Children))
	for _, child := range d.Kind.Children {
		labels = append(labels, child.Label)
	}

	return labels
}
