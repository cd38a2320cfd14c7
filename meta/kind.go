package meta

//go:generate go tool stringer -type=KindTag -trimprefix=Kind -output=kind_string.go

// KindTag discriminates the structural role of a Descriptor.
//
// The set is open: new tags may be appended in later releases, so every
// switch over a KindTag must keep a default arm.
type KindTag int

const (
	_ KindTag = iota // skip zero value, use it as a default (invalid) value for KindTag

	KindStruct
	KindAliased
	KindEnum
	KindSequence
	KindOption
	KindMapping
	KindString
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindBool
	KindDateTime
	KindAny

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsLeaf reports whether the kind terminates recursion.
func (k KindTag) IsLeaf() bool {
	switch k {
	default:
		return false
	case KindString,
		KindI8, KindI16, KindI32, KindI64,
		KindU8, KindU16, KindU32, KindU64,
		KindF32, KindF64, KindBool, KindDateTime, KindAny:
		return true
	}
}

// IsContainer reports whether the kind wraps other descriptors without an
// intervening Entry.
func (k KindTag) IsContainer() bool {
	switch k {
	default:
		return false
	case KindAliased, KindSequence, KindOption, KindMapping:
		return true
	}
}

// IsNamed reports whether the kind records a declared type name.
func (k KindTag) IsNamed() bool {
	switch k {
	default:
		return false
	case KindStruct, KindAliased, KindEnum:
		return true
	}
}

// IsInteger reports whether the kind is one of the integer leaves.
func (k KindTag) IsInteger() bool {
	switch k {
	default:
		return false
	case KindI8, KindI16, KindI32, KindI64,
		KindU8, KindU16, KindU32, KindU64:
		return true
	}
}

// IsSigned reports whether the kind is a signed integer leaf.
func (k KindTag) IsSigned() bool {
	switch k {
	default:
		return false
	case KindI8, KindI16, KindI32, KindI64:
		return true
	}
}
