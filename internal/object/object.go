package object

import (
	"errors"
	"hash/fnv"

	"github.com/funvibe/rva/internal/typesystem"
)

type ObjectType string

const (
	NULL_OBJ    = "NULL"
	BOOLEAN_OBJ = "BOOLEAN"
	INTEGER_OBJ = "INTEGER"
	FLOAT_OBJ   = "FLOAT"
	STRING_OBJ  = "STRING"
	LIST_OBJ    = "LIST"    // std::vector, persistent
	MAP_OBJ     = "MAP"     // std::map, persistent HAMT
	ARRAY_OBJ   = "ARRAY"   // T[N]
	POINTER_OBJ = "POINTER" // T*, shares its target
	VARIANT_OBJ = "VARIANT" // Implemented by the variant package
)

// Object is a runtime value whose type is described by a typesystem.Type.
type Object interface {
	Type() ObjectType
	Inspect() string
	RuntimeType() typesystem.Type // Returns the type system representation
	Hash() uint32
}

// Equatable is implemented by objects whose equality is not structural
// over the kinds known to this package.
type Equatable interface {
	Object
	EqualTo(other Object) bool
}

// Ordered is implemented by objects that define their own ordering.
type Ordered interface {
	Object
	CompareTo(other Object) (int, error)
}

// Detacher is implemented by objects with caller-visible state. Containers
// and variants store a detached copy and hand out detached copies, so no two
// owners ever share one.
type Detacher interface {
	Detach() Object
}

var (
	ErrTypeMismatch = errors.New("value does not conform to type")
	ErrUnordered    = errors.New("values are not ordered")
	ErrOutOfRange   = errors.New("index out of range")
	ErrNilPointer   = errors.New("nil pointer dereference")
)

// Detach returns obj's detached copy, or obj itself when it has no state.
func Detach(obj Object) Object {
	if d, ok := obj.(Detacher); ok {
		return d.Detach()
	}
	return obj
}

func detach(obj Object) Object { return Detach(obj) }

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
