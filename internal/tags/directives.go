package tags

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"struct-metadata/internal/casing"
	"struct-metadata/meta"
)

var (
	// ErrUnknownOption is returned for a directive key outside the grammar
	// of its declaration site.
	ErrUnknownOption = errors.New("unknown describe option")
	// ErrConflictingMetadata is returned when a declaration selects both a
	// record metadata type and the raw pair sequence.
	ErrConflictingMetadata = errors.New("metadata_type and metadata_sequence are mutually exclusive")
)

// Field holds the directives of one struct field.
type Field struct {
	// Rename is the explicit external label, from `describe:"rename=..."`
	// or else the json tag name.
	Rename string
	// Aliases lists the declared alias strings in order.
	Aliases []string
	Flatten bool
	Default bool
	Skip    bool
	// Meta holds the parsed `meta` tag; HasMeta is false when the tag is absent.
	Meta    []meta.Pair
	HasMeta bool
}

// Container holds the directives of a type declaration.
type Container struct {
	Rename    string
	RenameAll casing.Policy
	// Default marks every field as having a default value.
	Default bool

	// Generate, Enum, Display and TrimPrefix select what describe-gen emits.
	Generate   bool
	Enum       bool
	Display    bool
	TrimPrefix string

	// MetadataType names the record metadata type; MetadataSequence selects
	// meta.Pairs. Neither selects meta.Map.
	MetadataType     string
	MetadataSequence bool

	Meta []meta.Pair
}

// Variant holds the directives of one enum constant.
type Variant struct {
	Rename  string
	Aliases []string
	Meta    []meta.Pair
}

// ParseField reads the describe, meta and json keys of a struct tag.
func ParseField(tag reflect.StructTag) (Field, error) {
	var f Field

	if jt, ok := tag.Lookup(JSONKey); ok {
		name, _, _ := strings.Cut(jt, ",")
		if jt == "-" {
			f.Skip = true
		} else if name != "" {
			f.Rename = name
		}
	}

	items, err := Split(tag.Get(DescribeKey))
	if err != nil {
		return Field{}, err
	}

	for _, item := range items {
		switch item.Key {
		case "rename":
			if err := requireValue(item); err != nil {
				return Field{}, err
			}

			f.Rename = item.Value
		case "alias":
			if err := requireValue(item); err != nil {
				return Field{}, err
			}

			f.Aliases = append(f.Aliases, item.Value)
		case "flatten":
			f.Flatten = true
		case "default":
			f.Default = true
		case "skip":
			f.Skip = true
		default:
			return Field{}, fmt.Errorf("%w %q on field (expected rename, alias, flatten, default or skip)",
				ErrUnknownOption, item.Key)
		}
	}

	metaText, ok := tag.Lookup(MetaKey)
	if ok {
		f.HasMeta = true

		f.Meta, err = Pairs(metaText)
		if err != nil {
			return Field{}, err
		}
	}

	return f, nil
}

// ParseContainer reads the directives of a type declaration: describeText
// from the `describe` tag of a container marker or `//describe:` comments,
// metaText from the matching `meta` annotation.
func ParseContainer(describeText, metaText string) (Container, error) {
	var c Container

	items, err := Split(describeText)
	if err != nil {
		return Container{}, err
	}

	for _, item := range items {
		switch item.Key {
		case "rename":
			if err := requireValue(item); err != nil {
				return Container{}, err
			}

			c.Rename = item.Value
		case "rename_all":
			if err := requireValue(item); err != nil {
				return Container{}, err
			}

			c.RenameAll, err = casing.Parse(item.Value)
			if err != nil {
				return Container{}, err
			}
		case "default":
			c.Default = true
		case "generate":
			c.Generate = true
		case "enum":
			c.Enum = true
		case "display":
			c.Enum = true
			c.Display = true
		case "trim_prefix":
			if err := requireValue(item); err != nil {
				return Container{}, err
			}

			c.TrimPrefix = item.Value
		case "metadata_type":
			if err := requireValue(item); err != nil {
				return Container{}, err
			}

			c.MetadataType = item.Value
		case "metadata_sequence":
			c.MetadataSequence = true
		default:
			return Container{}, fmt.Errorf("%w %q on type (expected rename, rename_all, default, generate, "+
				"enum, display, trim_prefix, metadata_type or metadata_sequence)", ErrUnknownOption, item.Key)
		}
	}

	if c.MetadataType != "" && c.MetadataSequence {
		return Container{}, ErrConflictingMetadata
	}

	c.Meta, err = Pairs(metaText)
	if err != nil {
		return Container{}, err
	}

	return c, nil
}

// ParseVariant reads the directives of an enum constant.
func ParseVariant(describeText, metaText string) (Variant, error) {
	var v Variant

	items, err := Split(describeText)
	if err != nil {
		return Variant{}, err
	}

	for _, item := range items {
		switch item.Key {
		case "rename":
			if err := requireValue(item); err != nil {
				return Variant{}, err
			}

			v.Rename = item.Value
		case "alias":
			if err := requireValue(item); err != nil {
				return Variant{}, err
			}

			v.Aliases = append(v.Aliases, item.Value)
		default:
			return Variant{}, fmt.Errorf("%w %q on variant (expected rename or alias)", ErrUnknownOption, item.Key)
		}
	}

	v.Meta, err = Pairs(metaText)
	if err != nil {
		return Variant{}, err
	}

	return v, nil
}

// Label resolves the external name of a member: an explicit rename wins,
// then the container's case policy applied to ident, then ident itself.
func Label(rename string, policy casing.Policy, ident string) string {
	if rename != "" {
		return rename
	}

	return policy.Apply(ident)
}

// Aliases returns label followed by the declared aliases.
func Aliases(label string, declared []string) []string {
	aliases := make([]string, 0, len(declared)+1)
	aliases = append(aliases, label)

	return append(aliases, declared...)
}

func requireValue(item Item) error {
	if !item.HasValue || item.Value == "" {
		return fmt.Errorf("%w: option %q requires a value (%s=...)", ErrSyntax, item.Key, item.Key)
	}

	return nil
}
