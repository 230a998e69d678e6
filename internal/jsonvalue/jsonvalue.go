// Package jsonvalue is a JSON document model built on a recursive variant:
// objects and arrays hold values of the variant itself.
package jsonvalue

import (
	"errors"
	"fmt"
	"math"

	"github.com/funvibe/rva/internal/config"
	"github.com/funvibe/rva/internal/object"
	"github.com/funvibe/rva/internal/typesystem"
	"github.com/funvibe/rva/internal/variant"
)

// Positions of the alternatives in Spec.
const (
	NullIndex = iota
	StringIndex
	NumberIndex
	BoolIndex
	ObjectIndex
	ArrayIndex
)

var (
	stringType = typesystem.Std(config.StringTypeName)
	keyType    = typesystem.Std(config.StringViewTypeName)
)

// Spec is rva::variant<std::nullptr_t, std::string, double, bool,
// std::map<std::string_view, rva::self_t>, std::vector<rva::self_t>>.
var Spec = func() *variant.Spec {
	s := variant.MustDefine(
		typesystem.Std(config.NullTypeName),
		stringType,
		typesystem.Con(config.DoubleTypeName),
		typesystem.Con(config.BoolTypeName),
		typesystem.App(typesystem.Std(config.MapTypeName), keyType, typesystem.Self),
		typesystem.App(typesystem.Std(config.VectorTypeName), typesystem.Self),
	)
	s.Type().Name = "json_value"
	return s
}()

// Value is one JSON value.
type Value = variant.Variant

var ErrUnsupported = errors.New("jsonvalue: unsupported value")

// build constructs alternative i. The payload kind is fixed by the caller,
// so failure is a programming error.
func build(i int, obj object.Object) Value {
	v, err := Spec.NewAt(i, obj)
	if err != nil {
		panic(err)
	}
	return v
}

func Null() Value { return build(NullIndex, object.NULL) }
func Str(s string) Value { return build(StringIndex, &object.String{Value: s}) }
func Num(f float64) Value { return build(NumberIndex, &object.Float{Value: f}) }
func Bool(b bool) Value { return build(BoolIndex, &object.Boolean{Value: b}) }

func Array(items ...Value) Value {
	elems := make([]object.Object, len(items))
	for i, item := range items {
		elems[i] = item
	}
	l, err := object.NewList(Spec.Type(), elems...)
	if err != nil {
		panic(err)
	}
	return build(ArrayIndex, l)
}

// Object builds a JSON object from fields.
func Object(fields map[string]Value) Value {
	m := object.NewMap(keyType, Spec.Type())
	for k, v := range fields {
		var err error
		if m, err = m.Put(&object.String{Value: k}, v); err != nil {
			panic(err)
		}
	}
	return build(ObjectIndex, m)
}

// Fields returns the members of an object value, keyed by name.
func Fields(v Value) (map[string]Value, error) {
	m, err := variant.As[*object.Map](v, ObjectIndex)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Value, m.Len())
	for _, item := range m.Items() {
		out[item.Key.(*object.String).Value] = item.Value.(Value)
	}
	return out, nil
}

// Items returns the elements of an array value.
func Items(v Value) ([]Value, error) {
	l, err := variant.As[*object.List](v, ArrayIndex)
	if err != nil {
		return nil, err
	}
	out := make([]Value, l.Len())
	for i, el := range l.ToSlice() {
		out[i] = el.(Value)
	}
	return out, nil
}

// FromGo converts the output of encoding/json or yaml.v3 decoding.
// Integers become numbers. A Value passes through only if it is a json value.
func FromGo(data any) (Value, error) {
	switch val := data.(type) {
	case nil:
		return Null(), nil
	case Value:
		if !val.Spec().Same(Spec) {
			return Value{}, fmt.Errorf("%w: %s is not %s", ErrUnsupported, val.Spec(), Spec)
		}
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return Str(val), nil
	case int:
		return Num(float64(val)), nil
	case int64:
		return Num(float64(val)), nil
	case uint64:
		return Num(float64(val)), nil
	case float32:
		return Num(float64(val)), nil
	case float64:
		return Num(val), nil
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			v, err := FromGo(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = v
		}
		return Array(items...), nil
	case map[string]any:
		fields := make(map[string]Value, len(val))
		for k, item := range val {
			v, err := FromGo(item)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			fields[k] = v
		}
		return Object(fields), nil
	case map[any]any:
		fields := make(map[string]Value, len(val))
		for k, item := range val {
			v, err := FromGo(item)
			if err != nil {
				return Value{}, fmt.Errorf("%v: %w", k, err)
			}
			fields[fmt.Sprintf("%v", k)] = v
		}
		return Object(fields), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupported, data)
	}
}

// ToGo converts v to nil, bool, string, float64, []any and map[string]any.
func ToGo(v Value) (any, error) {
	return variant.Visit(v,
		func(object.Object) any { return nil },
		func(o object.Object) any { return o.(*object.String).Value },
		func(o object.Object) any { return o.(*object.Float).Value },
		func(o object.Object) any { return o.(*object.Boolean).Value },
		func(o object.Object) any {
			items := o.(*object.Map).Items()
			out := make(map[string]any, len(items))
			for _, item := range items {
				out[item.Key.(*object.String).Value] = mustGo(item.Value.(Value))
			}
			return out
		},
		func(o object.Object) any {
			elems := o.(*object.List).ToSlice()
			out := make([]any, len(elems))
			for i, el := range elems {
				out[i] = mustGo(el.(Value))
			}
			return out
		},
	)
}

// Nested values are never valueless: containers only store complete values.
func mustGo(v Value) any {
	out, err := ToGo(v)
	if err != nil {
		panic(err)
	}
	return out
}

// Kind names the active alternative.
func Kind(v Value) string {
	switch v.Index() {
	case NullIndex:
		return "null"
	case StringIndex:
		return "string"
	case NumberIndex:
		return "number"
	case BoolIndex:
		return "bool"
	case ObjectIndex:
		return "object"
	case ArrayIndex:
		return "array"
	}
	return "valueless"
}

// IsInteger reports whether v is a number without a fractional part.
func IsInteger(v Value) bool {
	n, err := variant.As[*object.Float](v, NumberIndex)
	return err == nil && n.Value == math.Trunc(n.Value) && !math.IsInf(n.Value, 0)
}
