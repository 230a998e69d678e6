package sum

import (
	"fmt"

	"github.com/funvibe/rva/internal/object"
)

// NPos is the index reported by a valueless Value.
const NPos = -1

// Value holds exactly one alternative of a Union, tagged by position.
// The payload is detached on the way in and on the way out, so copies of a
// Value never observe each other.
// The zero Value belongs to no union and is valueless.
type Value struct {
	union   *Union
	index   int
	payload object.Object
}

// New constructs the alternative Select picks for obj.
func New(u *Union, obj object.Object) (Value, error) {
	i, err := u.Select(obj)
	if err != nil {
		return Value{}, err
	}
	return Value{union: u, index: i, payload: object.Detach(obj)}, nil
}

// NewAt constructs alternative i explicitly, which resolves ambiguity.
func NewAt(u *Union, i int, obj object.Object) (Value, error) {
	if err := u.check(i, obj); err != nil {
		return Value{}, err
	}
	return Value{union: u, index: i, payload: object.Detach(obj)}, nil
}

func (u *Union) check(i int, obj object.Object) error {
	if i < 0 || i >= len(u.alts) {
		return fmt.Errorf("%w: index %d of %d", ErrInvalidAccess, i, len(u.alts))
	}
	if obj == nil || !object.Conforms(obj, u.alts[i]) {
		return fmt.Errorf("%w %d (%s)", ErrTypeMismatch, i, u.alts[i])
	}
	return nil
}

func (v Value) Union() *Union { return v.union }

// Index returns the active position, or NPos.
func (v Value) Index() int {
	if v.payload == nil {
		return NPos
	}
	return v.index
}

func (v Value) ValuelessByException() bool { return v.payload == nil }

// Get returns the payload of alternative i.
func (v Value) Get(i int) (object.Object, error) {
	if v.payload == nil {
		return nil, ErrEmptyVariant
	}
	if i < 0 || i >= v.union.Len() {
		return nil, fmt.Errorf("%w: index %d of %d", ErrInvalidAccess, i, v.union.Len())
	}
	if i != v.index {
		return nil, fmt.Errorf("%w: holds alternative %d, not %d", ErrInvalidAccess, v.index, i)
	}
	return object.Detach(v.payload), nil
}

// GetIf is the non-failing form of Get.
func (v Value) GetIf(i int) (object.Object, bool) {
	if v.payload == nil || i != v.index {
		return nil, false
	}
	return object.Detach(v.payload), true
}

func (v Value) HoldsAlternative(i int) bool {
	return v.payload != nil && v.index == i
}

// Assign replaces the active alternative by converting assignment.
// On error v is unchanged.
func (v *Value) Assign(obj object.Object) error {
	if v.union == nil {
		return fmt.Errorf("%w: zero value", ErrUnionMismatch)
	}
	i, err := v.union.Select(obj)
	if err != nil {
		return err
	}
	v.index, v.payload = i, object.Detach(obj)
	return nil
}

// AssignValue copies other into v. Both must belong to the same union.
func (v *Value) AssignValue(other Value) error {
	if !v.union.Same(other.union) {
		return ErrUnionMismatch
	}
	*v = other
	return nil
}

// Emplace destroys the active alternative and constructs alternative i from
// build. If build fails, or returns a value alternative i cannot hold, v is
// left valueless by exception until the next successful assignment.
func (v *Value) Emplace(i int, build func() (object.Object, error)) error {
	if v.union == nil {
		return fmt.Errorf("%w: zero value", ErrUnionMismatch)
	}
	if i < 0 || i >= v.union.Len() {
		return fmt.Errorf("%w: index %d of %d", ErrInvalidAccess, i, v.union.Len())
	}
	v.index, v.payload = NPos, nil
	obj, err := build()
	if err != nil {
		return err
	}
	if err := v.union.check(i, obj); err != nil {
		return err
	}
	v.index, v.payload = i, object.Detach(obj)
	return nil
}

// Swap exchanges the states of v and other.
func (v *Value) Swap(other *Value) error {
	if !v.union.Same(other.union) {
		return ErrUnionMismatch
	}
	*v, *other = *other, *v
	return nil
}

// Visit calls the handler matching the active position.
func Visit[R any](v Value, arms ...func(object.Object) R) (R, error) {
	var zero R
	if v.union == nil || len(arms) != v.union.Len() {
		return zero, fmt.Errorf("%w: got %d handlers", ErrNonExhaustive, len(arms))
	}
	if v.payload == nil {
		return zero, ErrEmptyVariant
	}
	return arms[v.index](object.Detach(v.payload)), nil
}

// Equal holds when both values are valueless, or hold the same position
// with equal payloads.
func (v Value) Equal(other Value) bool {
	if !v.union.Same(other.union) {
		return false
	}
	if v.Index() != other.Index() {
		return false
	}
	if v.payload == nil {
		return true
	}
	return object.ObjectsEqual(v.payload, other.payload)
}

// Compare orders by position, then payload. A valueless value orders first.
func (v Value) Compare(other Value) (int, error) {
	if !v.union.Same(other.union) {
		return 0, ErrUnionMismatch
	}
	// NPos is -1, so valueless sorts before every position.
	switch i, j := v.Index(), other.Index(); {
	case i < j:
		return -1, nil
	case i > j:
		return 1, nil
	case i == NPos:
		return 0, nil
	}
	return object.CompareObjects(v.payload, other.payload)
}

// Hash mixes the position into the payload hash.
func (v Value) Hash() uint32 {
	if v.payload == nil {
		return 0x9e3779b9
	}
	return 31*(uint32(v.index)+1) ^ v.payload.Hash()*16777619
}

func (v Value) String() string {
	if v.payload == nil {
		return "<valueless>"
	}
	return fmt.Sprintf("%d:%s", v.index, v.payload.Inspect())
}
