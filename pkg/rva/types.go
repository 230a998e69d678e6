// Package rva is the public face of the recursive variant library.
// It re-exports the descriptor, variant and object types of the internal
// packages so that host programs need a single import.
package rva

import (
	"github.com/funvibe/rva/internal/object"
	"github.com/funvibe/rva/internal/parser"
	"github.com/funvibe/rva/internal/sum"
	"github.com/funvibe/rva/internal/symbols"
	"github.com/funvibe/rva/internal/typesystem"
	"github.com/funvibe/rva/internal/variant"
)

// Type descriptor aliases
type Type = typesystem.Type
type TVariant = typesystem.TVariant

// Variant aliases
type Spec = variant.Spec
type Variant = variant.Variant
type Value = sum.Value

// Object types aliases
type Object = object.Object
type Integer = object.Integer
type Float = object.Float
type Boolean = object.Boolean
type String = object.String
type List = object.List
type Map = object.Map
type Array = object.Array
type Pointer = object.Pointer

// Names is a scope of named specializations for Parse.
type Names = symbols.SymbolTable

// Self is the placeholder rva::self_t standing for the variant being defined.
var Self = typesystem.Self

// NPos is the index of a valueless variant.
const NPos = sum.NPos

// Re-exported errors
var (
	ErrInvalidAccess = variant.ErrInvalidAccess
	ErrEmptyVariant  = variant.ErrEmptyVariant
	ErrNoAlternative = sum.ErrNoAlternative
	ErrAmbiguous     = sum.ErrAmbiguous
)

// NULL is the std::nullptr_t value.
var NULL = object.NULL

// NewNames returns an empty scope for named specializations.
func NewNames() *Names { return symbols.NewEmptySymbolTable() }

// Define builds a specialization from its alternatives, using Self as the
// self marker.
func Define(alternatives ...Type) (*Spec, error) { return variant.Define(alternatives...) }

// MustDefine is Define that panics on error.
func MustDefine(alternatives ...Type) *Spec { return variant.MustDefine(alternatives...) }

// Parse builds a specialization from its spelling. names may be nil.
func Parse(decl string, names *Names) (*Spec, error) { return variant.Parse(decl, names) }

// ParseType parses any type-id, such as "char const(&)[5]".
func ParseType(source string) (Type, error) { return parser.ParseType(source, nil) }

// Replace rewrites every occurrence of find in t, leaving closed variants alone.
func Replace(t, find, replace Type) Type { return typesystem.Replace(t, find, replace) }

// Identical reports structural type identity.
func Identical(a, b Type) bool { return typesystem.Identical(a, b) }

// Visit calls the arm for the active alternative of v.
func Visit[R any](v Variant, arms ...func(Object) R) (R, error) { return variant.Visit(v, arms...) }

// As returns the alternative at index i with its concrete object type.
func As[T Object](v Variant, i int) (T, error) { return variant.As[T](v, i) }

// Helper functions for conversions

// ToObject converts a Go scalar to its runtime object: int types become
// int, float64 becomes double, string becomes std::string and nil becomes
// nullptr. Objects pass through. Anything else yields nil.
func ToObject(val interface{}) Object {
	if val == nil {
		return NULL
	}

	switch v := val.(type) {
	case Object:
		return v
	case int:
		return &Integer{Value: int64(v)}
	case int32:
		return &Integer{Value: int64(v)}
	case int64:
		return &Integer{Value: v}
	case float64:
		return &Float{Value: v}
	case float32:
		return &Float{Value: float64(v)}
	case bool:
		return &Boolean{Value: v}
	case string:
		return &String{Value: v}
	}

	return nil
}

// NewList builds a std::vector<elem> from elements.
func NewList(elem Type, elements ...Object) (*List, error) { return object.NewList(elem, elements...) }

// NewMap builds an empty std::map<key, value>.
func NewMap(key, value Type) *Map { return object.NewMap(key, value) }
