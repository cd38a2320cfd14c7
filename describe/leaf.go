package describe

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"struct-metadata/meta"
)

// builtinTypes maps named library types to fixed leaves. They are checked
// before the named-type rule, which would otherwise describe them as
// aliases or structs.
var builtinTypes = map[reflect.Type]meta.KindTag{
	reflect.TypeFor[time.Time]():       meta.KindDateTime,
	reflect.TypeFor[json.RawMessage](): meta.KindAny,
	reflect.TypeFor[json.Number]():     meta.KindString,
}

// scalarKinds maps reflect kinds to leaves. int and uint are described at
// their 64-bit width.
var scalarKinds = map[reflect.Kind]meta.KindTag{
	reflect.Bool:    meta.KindBool,
	reflect.String:  meta.KindString,
	reflect.Int:     meta.KindI64,
	reflect.Int8:    meta.KindI8,
	reflect.Int16:   meta.KindI16,
	reflect.Int32:   meta.KindI32,
	reflect.Int64:   meta.KindI64,
	reflect.Uint:    meta.KindU64,
	reflect.Uint8:   meta.KindU8,
	reflect.Uint16:  meta.KindU16,
	reflect.Uint32:  meta.KindU32,
	reflect.Uint64:  meta.KindU64,
	reflect.Float32: meta.KindF32,
	reflect.Float64: meta.KindF64,
}

func builtinLeaf(t reflect.Type) (meta.KindTag, bool) {
	tag, ok := builtinTypes[t]
	return tag, ok
}

// nullableElem reports whether t is one of the database/sql nullable
// wrappers (sql.NullString, sql.Null[T], ...) and returns the wrapped type.
func nullableElem(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Struct || t.PkgPath() != "database/sql" || !strings.HasPrefix(t.Name(), "Null") {
		return nil, false
	}

	if t.NumField() != 2 || t.Field(1).Name != "Valid" {
		return nil, false
	}

	return t.Field(0).Type, true
}

// isStructLike reports whether an embedded field of type t is promoted into
// its parent, following encoding/json: structs and pointers to structs,
// except the library types described as leaves.
func isStructLike(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if _, ok := builtinLeaf(t); ok {
		return false
	}

	return t.Kind() == reflect.Struct
}
