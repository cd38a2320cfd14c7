package describe

import (
	"errors"
	"fmt"
)

var (
	// ErrFlattenNotStruct is returned when a flattened field's type does not
	// describe as a struct.
	ErrFlattenNotStruct = errors.New("flatten target must describe as a struct")
	// ErrUnsupportedType is returned for Go types with no descriptor shape
	// (channels, functions, complex numbers, unsafe pointers).
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrInvalidVariant is returned when a registered enum variant is not a
	// constant of the enum type. Only fieldless variants are supported.
	ErrInvalidVariant = errors.New("only fieldless variants are supported")
	// ErrDisplayWithoutString is returned when an enum labelled by its
	// display string does not implement fmt.Stringer.
	ErrDisplayWithoutString = errors.New("display enum must implement fmt.Stringer")
)

// DeclarationError reports a rejected declaration at the type (and member)
// where it was found.
type DeclarationError struct {
	// Type is the declared name of the offending type.
	Type string
	// Member is the Go field or variant identifier, empty for type-level errors.
	Member string
	Err    error
}

// Error implements error.
func (e *DeclarationError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("describe %s: %v", e.Type, e.Err)
	}

	return fmt.Sprintf("describe %s.%s: %v", e.Type, e.Member, e.Err)
}

// Unwrap returns the underlying error.
func (e *DeclarationError) Unwrap() error {
	return e.Err
}

func declError(typeName, member string, err error) error {
	var de *DeclarationError
	if errors.As(err, &de) {
		return err
	}

	return &DeclarationError{Type: typeName, Member: member, Err: err}
}
