package diagnostic

// Codes reported by describe-gen.
const (
	CodeDirective        = "E_DIRECTIVE"
	CodeMetadataConflict = "E_METADATA_CONFLICT"
	CodeMetadataType     = "E_METADATA_TYPE"
	CodeFieldTag         = "E_FIELD_TAG"
	CodeFlatten          = "E_FLATTEN"
	CodeUnknownKey       = "E_UNKNOWN_KEY"
	CodeEnumKind         = "E_ENUM_KIND"
	CodeEnumDisplay      = "E_ENUM_DISPLAY"
	CodeUnsupportedType  = "E_UNSUPPORTED_TYPE"
	CodeEnumEmpty        = "W_ENUM_EMPTY"
	CodeSelected         = "I_SELECTED"
)
