package object

import (
	"cmp"
	"fmt"
	"math"
	"strings"
)

// ObjectsEqual performs a deep equality check between two objects.
// Containers compare element-wise; pointers compare by address.
func ObjectsEqual(a, b Object) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if e, ok := a.(Equatable); ok {
		return e.EqualTo(b)
	}
	if a.Type() != b.Type() {
		return false
	}

	switch aVal := a.(type) {
	case *Null:
		return true
	case *Boolean:
		return aVal.Value == b.(*Boolean).Value
	case *Integer:
		return aVal.Value == b.(*Integer).Value
	case *Float:
		return aVal.Value == b.(*Float).Value
	case *String:
		return aVal.Value == b.(*String).Value
	case *List:
		return seqEqual(aVal.elements, b.(*List).elements)
	case *Array:
		return seqEqual(aVal.elements, b.(*Array).elements)
	case *Map:
		bVal := b.(*Map)
		if aVal.Len() != bVal.Len() {
			return false
		}
		for _, item := range aVal.hamt.Items() {
			v2 := bVal.hamt.Get(item.Key)
			if v2 == nil || !ObjectsEqual(item.Value, v2) {
				return false
			}
		}
		return true
	case *Pointer:
		return aVal.target == b.(*Pointer).target
	}
	return false
}

func seqEqual(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ObjectsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// CompareObjects orders two objects of the same kind, returning -1, 0 or +1.
// Sequences and maps compare lexicographically. Values of different kinds
// and NaN are unordered.
func CompareObjects(a, b Object) (int, error) {
	if o, ok := a.(Ordered); ok {
		return o.CompareTo(b)
	}
	if a == nil || b == nil || a.Type() != b.Type() {
		return 0, fmt.Errorf("%w: %s and %s", ErrUnordered, describe(a), describe(b))
	}

	switch aVal := a.(type) {
	case *Null:
		return 0, nil
	case *Boolean:
		return cmpBool(aVal.Value, b.(*Boolean).Value), nil
	case *Integer:
		return cmp.Compare(aVal.Value, b.(*Integer).Value), nil
	case *Float:
		x, y := aVal.Value, b.(*Float).Value
		if math.IsNaN(x) || math.IsNaN(y) {
			return 0, fmt.Errorf("%w: NaN", ErrUnordered)
		}
		return cmp.Compare(x, y), nil
	case *String:
		return strings.Compare(aVal.Value, b.(*String).Value), nil
	case *List:
		return compareSeq(aVal.elements, b.(*List).elements)
	case *Array:
		return compareSeq(aVal.elements, b.(*Array).elements)
	case *Map:
		return compareMaps(aVal, b.(*Map))
	case *Pointer:
		return cmp.Compare(aVal.address(), b.(*Pointer).address()), nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnordered, describe(a))
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareSeq(a, b []Object) (int, error) {
	for i := 0; i < len(a) && i < len(b); i++ {
		c, err := CompareObjects(a[i], b[i])
		if err != nil || c != 0 {
			return c, err
		}
	}
	return cmp.Compare(len(a), len(b)), nil
}

func compareMaps(a, b *Map) (int, error) {
	ai, bi := a.Items(), b.Items()
	for i := 0; i < len(ai) && i < len(bi); i++ {
		c, err := CompareObjects(ai[i].Key, bi[i].Key)
		if err != nil || c != 0 {
			return c, err
		}
		c, err = CompareObjects(ai[i].Value, bi[i].Value)
		if err != nil || c != 0 {
			return c, err
		}
	}
	return cmp.Compare(len(ai), len(bi)), nil
}

func describe(o Object) string {
	if o == nil {
		return "<nil>"
	}
	return o.RuntimeType().String()
}
