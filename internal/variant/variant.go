package variant

import (
	"fmt"

	"github.com/funvibe/rva/internal/object"
	"github.com/funvibe/rva/internal/sum"
	"github.com/funvibe/rva/internal/typesystem"
)

// Variant is a value of a recursive variant specialization. It is a value
// type: assigning a Variant copies it, and nested variants reached through
// its alternatives are never shared with the copy.
//
// Variant implements object.Object, so it can be stored in containers that
// are themselves alternatives of a Variant.
type Variant struct {
	spec *Spec
	val  sum.Value
}

func (v Variant) Spec() *Spec { return v.spec }

// Underlying exposes the plain sum value for code written against package sum.
func (v Variant) Underlying() sum.Value { return v.val }

// Index returns the active position, or sum.NPos when valueless.
func (v Variant) Index() int { return v.val.Index() }

func (v Variant) ValuelessByException() bool { return v.val.ValuelessByException() }

func (v Variant) Get(i int) (object.Object, error) { return v.val.Get(i) }

// GetType is Get addressed by alternative type.
func (v Variant) GetType(t typesystem.Type) (object.Object, error) {
	i, err := v.indexOf(t)
	if err != nil {
		return nil, err
	}
	return v.val.Get(i)
}

func (v Variant) GetIf(i int) (object.Object, bool) { return v.val.GetIf(i) }

func (v Variant) GetIfType(t typesystem.Type) (object.Object, bool) {
	i, err := v.indexOf(t)
	if err != nil {
		return nil, false
	}
	return v.val.GetIf(i)
}

func (v Variant) HoldsAlternative(i int) bool { return v.val.HoldsAlternative(i) }

func (v Variant) HoldsType(t typesystem.Type) bool {
	i, err := v.indexOf(t)
	return err == nil && v.val.HoldsAlternative(i)
}

func (v Variant) indexOf(t typesystem.Type) (int, error) {
	if v.spec == nil {
		return sum.NPos, fmt.Errorf("%w: zero Variant", ErrInvalidAccess)
	}
	i, err := v.spec.IndexOf(t)
	if err != nil {
		return sum.NPos, fmt.Errorf("%w: %w", ErrInvalidAccess, err)
	}
	return i, nil
}

// Assign replaces the active alternative. A Variant of the same
// specialization is copied; anything else goes through converting assignment.
// On error v is unchanged.
func (v *Variant) Assign(obj object.Object) error {
	switch o := obj.(type) {
	case Variant:
		if v.spec.Same(o.spec) {
			return v.AssignVariant(o)
		}
	case *Variant:
		if o == nil {
			return fmt.Errorf("%w: <nil>", sum.ErrNoAlternative)
		}
		if v.spec.Same(o.spec) {
			return v.AssignVariant(*o)
		}
	}
	if v.spec == nil {
		return fmt.Errorf("%w: zero Variant", ErrSpecMismatch)
	}
	return v.val.Assign(obj)
}

// AssignVariant copies other into v.
func (v *Variant) AssignVariant(other Variant) error {
	if !v.spec.Same(other.spec) {
		return fmt.Errorf("%w: %s and %s", ErrSpecMismatch, v.spec, other.spec)
	}
	v.val = other.val
	return nil
}

// Emplace constructs alternative i in place from build. If build fails the
// variant is left valueless by exception.
func (v *Variant) Emplace(i int, build func() (object.Object, error)) error {
	if v.spec == nil {
		return fmt.Errorf("%w: zero Variant", ErrSpecMismatch)
	}
	return v.val.Emplace(i, build)
}

func (v *Variant) Swap(other *Variant) error {
	if !v.spec.Same(other.spec) {
		return fmt.Errorf("%w: %s and %s", ErrSpecMismatch, v.spec, other.spec)
	}
	v.val, other.val = other.val, v.val
	return nil
}

// Equal holds when both variants hold the same position with equal values.
// Equal payloads at different positions are not equal.
func (v Variant) Equal(other Variant) bool {
	return v.spec.Same(other.spec) && v.val.Equal(other.val)
}

// Compare orders by position first, then by value. A valueless variant
// orders before any other.
func (v Variant) Compare(other Variant) (int, error) {
	if !v.spec.Same(other.spec) {
		return 0, fmt.Errorf("%w: %s and %s", ErrSpecMismatch, v.spec, other.spec)
	}
	return v.val.Compare(other.val)
}

func (v Variant) Hash() uint32 { return v.val.Hash() }

func (v Variant) Type() object.ObjectType { return object.VARIANT_OBJ }

func (v Variant) Inspect() string {
	if v.val.ValuelessByException() {
		return "<valueless>"
	}
	obj, _ := v.val.GetIf(v.val.Index())
	return obj.Inspect()
}

func (v Variant) String() string { return v.Inspect() }

func (v Variant) RuntimeType() typesystem.Type {
	if v.spec == nil {
		return nil
	}
	return v.spec.typ
}

func (v Variant) EqualTo(other object.Object) bool {
	switch o := other.(type) {
	case Variant:
		return v.Equal(o)
	case *Variant:
		return v.Equal(*o)
	}
	return false
}

func (v Variant) CompareTo(other object.Object) (int, error) {
	switch o := other.(type) {
	case Variant:
		return v.Compare(o)
	case *Variant:
		return v.Compare(*o)
	}
	return 0, fmt.Errorf("%w: variant and %T", object.ErrUnordered, other)
}

// Detach returns a copy, so containers never share a *Variant with its owner.
func (v Variant) Detach() object.Object { return v }

// Visit dispatches to the arm at the active position. It needs exactly one
// arm per alternative.
func Visit[R any](v Variant, arms ...func(object.Object) R) (R, error) {
	return sum.Visit(v.val, arms...)
}

// As extracts alternative i as a T.
func As[T object.Object](v Variant, i int) (T, error) {
	var zero T
	obj, err := v.Get(i)
	if err != nil {
		return zero, err
	}
	t, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("%w: alternative %d is %T, not %T", ErrInvalidAccess, i, obj, zero)
	}
	return t, nil
}
