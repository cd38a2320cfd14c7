package meta

import (
	"reflect"
	"strings"
)

// The propagation hooks below are optional. A metadata type opts in by
// implementing any subset of them on its pointer type; missing hooks are
// no-ops. Hooks receive the other side by value and must treat it as
// read-only.

// ContextPropagator absorbs the metadata inherited from the enclosing entry
// or container before the node's own children are visited.
type ContextPropagator[M any] interface {
	ForwardPropagateContext(context M)
}

// EntryForwardPropagator fills an entry's metadata from its nested type
// (kind) and the enclosing struct (context) before the entry's subtree is
// visited.
type EntryForwardPropagator[M any] interface {
	ForwardPropagateEntryDefaults(context, kind M)
}

// EntryBackwardPropagator re-merges an entry's metadata after its subtree
// completed propagation.
type EntryBackwardPropagator[M any] interface {
	BackwardPropagateEntryDefaults(context, kind M)
}

// ChildForwardPropagator merges a container node's metadata with a wrapped
// descriptor before the wrapped subtree is visited.
type ChildForwardPropagator[M any] interface {
	ForwardPropagateChildDefaults(kind M)
}

// ChildBackwardPropagator merges a container node's metadata with a wrapped
// descriptor after the wrapped subtree completed propagation.
type ChildBackwardPropagator[M any] interface {
	BackwardPropagateChildDefaults(kind M)
}

// Decoder is implemented by metadata types that build themselves from
// annotation key/value pairs.
type Decoder interface {
	DecodeMetadata(pairs []Pair) error
}

// Pair is one raw key/value annotation.
type Pair struct {
	Key   string
	Value string
}

// Map is the default metadata type: an open string-keyed mapping. Later keys
// override earlier ones. Map declares no propagation hooks.
type Map map[string]string

// DecodeMetadata implements Decoder.
func (m *Map) DecodeMetadata(pairs []Pair) error {
	if len(pairs) == 0 {
		return nil
	}

	if *m == nil {
		*m = make(Map, len(pairs))
	}

	for _, p := range pairs {
		(*m)[p.Key] = p.Value
	}

	return nil
}

// IsEmpty reports whether the map holds no annotations.
func (m Map) IsEmpty() bool {
	return len(m) == 0
}

// Pairs is an ordered sequence of raw key/value annotations. Decoding
// appends, so repeated keys are all kept.
type Pairs []Pair

// DecodeMetadata implements Decoder.
func (p *Pairs) DecodeMetadata(pairs []Pair) error {
	*p = append(*p, pairs...)
	return nil
}

// Get returns the value of the last pair with the given key.
func (p Pairs) Get(key string) (string, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Key == key {
			return p[i].Value, true
		}
	}

	return "", false
}

// IsEmpty reports whether the sequence holds no annotations.
func (p Pairs) IsEmpty() bool {
	return len(p) == 0
}

// String renders the pairs as key=value items.
func (p Pairs) String() string {
	parts := make([]string, 0, len(p))
	for _, pair := range p {
		parts = append(parts, pair.Key+"="+pair.Value)
	}

	return strings.Join(parts, ",")
}

// FillUnset implements the usual merge policy of a propagation hook: every
// zero-valued field of the struct pointed to by dst takes the value of the
// same field in the first source where it is non-zero. For non-struct
// metadata the whole value is treated as one field.
func FillUnset[M any](dst *M, sources ...M) {
	target := reflect.ValueOf(dst).Elem()
	if target.Kind() != reflect.Struct {
		if !target.IsZero() {
			return
		}

		for _, src := range sources {
			v := reflect.ValueOf(&src).Elem()
			if !v.IsZero() {
				target.Set(v)
				return
			}
		}

		return
	}

	for i := range target.NumField() {
		field := target.Field(i)
		if !field.CanSet() || !field.IsZero() {
			continue
		}

		for _, src := range sources {
			v := reflect.ValueOf(&src).Elem().Field(i)
			if !v.IsZero() {
				field.Set(v)
				break
			}
		}
	}
}
