package config

// ConfigFileName is the project file searched for by the CLI.
const ConfigFileName = "rva.yaml"

// ConfigFileNames are all recognized project file names
var ConfigFileNames = []string{"rva.yaml", "rva.yml"}

// IsTestMode indicates if the program is running under go test.
// Minted placeholder names are normalized when it is set so output stays deterministic.
var IsTestMode = false

// Scopes used by the canonical type names below.
const (
	StdScope = "std"
	RvaScope = "rva"
)

// Placeholder and variant template spelling
const (
	SelfTypeName    = "self_t"
	VariantTypeName = "variant"
	// MintedSelfPrefix prefixes placeholders minted by typesystem.NewPlaceholder.
	MintedSelfPrefix = "self_"
)

// Qualifiers
const (
	ConstQualifier    = "const"
	VolatileQualifier = "volatile"
)

// Built-in atom names with a runtime representation
const (
	NullTypeName       = "nullptr_t" // std::nullptr_t
	StringTypeName     = "string"    // std::string
	StringViewTypeName = "string_view"
	BoolTypeName       = "bool"
	IntTypeName        = "int"
	LongTypeName       = "long"
	DoubleTypeName     = "double"
	FloatTypeName      = "float"
	CharTypeName       = "char"
)

// Built-in generic templates
const (
	VectorTypeName   = "vector"
	MapTypeName      = "map"
	OptionalTypeName = "optional"
	PairTypeName     = "pair"
	TupleTypeName    = "tuple"
	ArrayTypeName    = "array"
)

// InlineTemplates are std templates that store their arguments in place.
// A placeholder reached only through one of them has no indirection.
var InlineTemplates = []string{OptionalTypeName, PairTypeName, TupleTypeName, ArrayTypeName}
