package object

import (
	"fmt"
	"math"
	"strconv"

	"github.com/funvibe/rva/internal/config"
	"github.com/funvibe/rva/internal/typesystem"
)

// Null is the single value of std::nullptr_t.
type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "nullptr" }
func (n *Null) RuntimeType() typesystem.Type {
	return typesystem.Std(config.NullTypeName)
}
func (n *Null) Hash() uint32 { return 0 }

// NULL is shared; Null carries no state.
var NULL = &Null{}

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) RuntimeType() typesystem.Type {
	return typesystem.Con(config.BoolTypeName)
}
func (b *Boolean) Detach() Object { return &Boolean{Value: b.Value} }
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

// Integer is int. It also converts to long.
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) RuntimeType() typesystem.Type {
	return typesystem.Con(config.IntTypeName)
}
func (i *Integer) Detach() Object { return &Integer{Value: i.Value} }
func (i *Integer) Hash() uint32 {
	return uint32(i.Value ^ (i.Value >> 32))
}

// Float is double. It also converts to float.
type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return fmt.Sprintf("%g", f.Value) }
func (f *Float) RuntimeType() typesystem.Type {
	return typesystem.Con(config.DoubleTypeName)
}
func (f *Float) Detach() Object { return &Float{Value: f.Value} }
func (f *Float) Hash() uint32 {
	v := f.Value
	if v == 0 {
		v = 0 // -0 and +0 are equal and must hash alike
	}
	bits := math.Float64bits(v)
	return uint32(bits ^ (bits >> 32))
}

// String is std::string. It also converts to std::string_view.
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return strconv.Quote(s.Value) }
func (s *String) RuntimeType() typesystem.Type {
	return typesystem.Std(config.StringTypeName)
}
func (s *String) Detach() Object { return &String{Value: s.Value} }
func (s *String) Hash() uint32   { return hashString(s.Value) }
