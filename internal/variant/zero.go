package variant

import (
	"fmt"

	"github.com/funvibe/rva/internal/config"
	"github.com/funvibe/rva/internal/object"
	"github.com/funvibe/rva/internal/typesystem"
)

// ZeroValue returns the value a default-constructed t holds: zero numbers,
// empty strings and containers, null pointers, and for a variant its first
// alternative's zero value.
func ZeroValue(t typesystem.Type) (object.Object, error) {
	switch typ := typesystem.StripQualifiers(t).(type) {
	case typesystem.TCon:
		if obj := zeroAtom(typ); obj != nil {
			return obj, nil
		}
	case typesystem.TApp:
		if typ.Template.Scope != config.StdScope {
			break
		}
		switch {
		case typ.Template.Name == config.VectorTypeName && len(typ.Args) == 1:
			l, err := object.NewList(typ.Args[0])
			if err != nil {
				return nil, err
			}
			return l, nil
		case typ.Template.Name == config.MapTypeName && len(typ.Args) == 2:
			return object.NewMap(typ.Args[0], typ.Args[1]), nil
		}
	case typesystem.TArray:
		if !typ.Sized {
			break
		}
		elems := make([]object.Object, typ.Len)
		for i := range elems {
			el, err := ZeroValue(typ.Elem)
			if err != nil {
				return nil, err
			}
			elems[i] = el
		}
		arr, err := object.NewArray(typ.Elem, elems...)
		if err != nil {
			return nil, err
		}
		return arr, nil
	case typesystem.TPointer:
		return object.NewPointer(typ.Elem, nil), nil
	case *typesystem.TVariant:
		s, err := FromType(typ)
		if err != nil {
			return nil, err
		}
		return s.Zero()
	}
	return nil, fmt.Errorf("%w: %s", ErrNoZeroValue, t)
}

func zeroAtom(c typesystem.TCon) object.Object {
	switch c.Scope {
	case "":
		switch c.Name {
		case config.IntTypeName, config.LongTypeName:
			return &object.Integer{}
		case config.DoubleTypeName, config.FloatTypeName:
			return &object.Float{}
		case config.BoolTypeName:
			return &object.Boolean{}
		}
	case config.StdScope:
		switch c.Name {
		case config.NullTypeName:
			return object.NULL
		case config.StringTypeName, config.StringViewTypeName:
			return &object.String{}
		}
	}
	return nil
}
