package object

import (
	"github.com/funvibe/rva/internal/config"
	"github.com/funvibe/rva/internal/typesystem"
)

// Exact reports whether obj's runtime type is t, ignoring top-level qualifiers.
func Exact(obj Object, t typesystem.Type) bool {
	if obj == nil {
		return false
	}
	return typesystem.Identical(obj.RuntimeType(), bare(t))
}

// Conforms reports whether obj can be stored as a t. Besides exact matches
// it admits the standard conversions int to long, double to float and
// std::string to std::string_view. Container element types must match exactly.
func Conforms(obj Object, t typesystem.Type) bool {
	if Exact(obj, t) {
		return true
	}
	c, ok := bare(t).(typesystem.TCon)
	if !ok || c.Scope != "" && c.Scope != config.StdScope {
		return false
	}
	switch obj.(type) {
	case *Integer:
		return c.Scope == "" && c.Name == config.LongTypeName
	case *Float:
		return c.Scope == "" && c.Name == config.FloatTypeName
	case *String:
		return c.Scope == config.StdScope && c.Name == config.StringViewTypeName
	}
	return false
}

// bare strips qualifiers at every level, since a stored value carries none.
func bare(t typesystem.Type) typesystem.Type {
	switch typ := typesystem.StripQualifiers(t).(type) {
	case typesystem.TPointer:
		// The pointee's constness is part of the pointer type.
		return typ
	case typesystem.TArray:
		return typesystem.TArray{Elem: bare(typ.Elem), Len: typ.Len, Sized: typ.Sized}
	case typesystem.TApp:
		args := make([]typesystem.Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = bare(a)
		}
		return typesystem.TApp{Template: typ.Template, Args: args}
	default:
		return typ
	}
}
