package meta

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"

	"struct-metadata/internal/casing"
)

var (
	// ErrUnknownKey is returned when an annotation names a key the record
	// metadata type does not declare.
	ErrUnknownKey = errors.New("unknown metadata key")
	// ErrUnsupportedMetadata is returned for metadata types that are neither
	// a Decoder nor a struct.
	ErrUnsupportedMetadata = errors.New("unsupported metadata type")
	// ErrInvalidValue is returned when an annotation value cannot be
	// converted to the record field's type.
	ErrInvalidValue = errors.New("invalid metadata value")
)

// Decode builds a metadata value from annotation pairs. With no pairs it
// returns the zero (empty) value.
//
// Types implementing Decoder on their pointer decode themselves. Struct
// types are populated field by field; see DecodeRecord.
func Decode[M any](pairs []Pair) (M, error) {
	var m M
	if len(pairs) == 0 {
		return m, nil
	}

	if d, ok := any(&m).(Decoder); ok {
		if err := d.DecodeMetadata(pairs); err != nil {
			return m, err
		}

		return m, nil
	}

	if reflect.TypeFor[M]().Kind() != reflect.Struct {
		return m, fmt.Errorf("%w: %s", ErrUnsupportedMetadata, reflect.TypeFor[M]())
	}

	if err := DecodeRecord(&m, pairs); err != nil {
		return m, err
	}

	return m, nil
}

// DecodeRecord assigns each pair to the matching field of the struct
// pointed to by dst. Fields are matched by their `meta:"name"` tag, else by
// the snake_case form of the field name or the field name ignoring case.
// Scalars are parsed with strconv, pointers to scalars are allocated and
// composite fields take the value as JSON.
func DecodeRecord(dst any, pairs []Pair) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrUnsupportedMetadata, dst)
	}

	rv = rv.Elem()
	rt := rv.Type()

	for _, pair := range pairs {
		idx, ok := RecordField(rt, pair.Key)
		if !ok {
			return fmt.Errorf("%w %q for %s", ErrUnknownKey, pair.Key, rt)
		}

		if err := setValue(rv.Field(idx), pair.Value); err != nil {
			return fmt.Errorf("%w for key %q: %w", ErrInvalidValue, pair.Key, err)
		}
	}

	return nil
}

// RecordField returns the index of the exported field of struct type rt
// addressed by key.
func RecordField(rt reflect.Type, key string) (int, bool) {
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		if casing.KeyMatches(sf.Name, sf.Tag.Get("meta"), key) {
			return i, true
		}
	}

	return 0, false
}

func setValue(field reflect.Value, raw string) error {
	if field.Kind() == reflect.Pointer && isScalar(field.Type().Elem().Kind()) {
		elem := reflect.New(field.Type().Elem())
		if err := setScalar(elem.Elem(), raw); err != nil {
			return err
		}

		field.Set(elem)

		return nil
	}

	if isScalar(field.Kind()) {
		return setScalar(field, raw)
	}

	ptr := reflect.New(field.Type())
	if err := json.Unmarshal([]byte(raw), ptr.Interface()); err != nil {
		return err
	}

	field.Set(ptr.Elem())

	return nil
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func setScalar(v reflect.Value, raw string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}

		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 0, v.Type().Bits())
		if err != nil {
			return err
		}

		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 0, v.Type().Bits())
		if err != nil {
			return err
		}

		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, v.Type().Bits())
		if err != nil {
			return err
		}

		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", v.Kind())
	}

	return nil
}
