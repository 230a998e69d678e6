package object

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/funvibe/rva/internal/config"
	"github.com/funvibe/rva/internal/typesystem"
)

var ErrConstTarget = errors.New("store through pointer to const")

// Cell is addressable storage a Pointer can refer to.
type Cell struct {
	Value Object
}

func NewCell(v Object) *Cell { return &Cell{Value: v} }

// Pointer is T*. Copies of a pointer share the target, so pointers compare,
// order and hash by address rather than by the value they point to.
type Pointer struct {
	Elem   typesystem.Type
	target *Cell
}

// NewPointer points at target, which may be nil.
func NewPointer(elem typesystem.Type, target *Cell) *Pointer {
	return &Pointer{Elem: elem, target: target}
}

func (p *Pointer) IsNil() bool { return p.target == nil }

// Deref returns the pointed-to value.
func (p *Pointer) Deref() (Object, error) {
	if p.target == nil {
		return nil, ErrNilPointer
	}
	return detach(p.target.Value), nil
}

// Store writes through the pointer.
func (p *Pointer) Store(v Object) error {
	if p.target == nil {
		return ErrNilPointer
	}
	if q, ok := p.Elem.(typesystem.TQual); ok && q.Qualifier == config.ConstQualifier {
		return fmt.Errorf("%w: %s", ErrConstTarget, p.RuntimeType())
	}
	if !Conforms(v, p.Elem) {
		return fmt.Errorf("%w: %s is not %s", ErrTypeMismatch, describe(v), p.Elem)
	}
	p.target.Value = detach(v)
	return nil
}

// Detach copies the pointer itself; the copy still points at the same cell.
func (p *Pointer) Detach() Object {
	c := *p
	return &c
}

func (p *Pointer) address() uintptr { return uintptr(unsafe.Pointer(p.target)) }

func (p *Pointer) Type() ObjectType { return POINTER_OBJ }
func (p *Pointer) Inspect() string {
	if p.target == nil {
		return "nullptr"
	}
	return fmt.Sprintf("%#x", p.address())
}
func (p *Pointer) RuntimeType() typesystem.Type { return typesystem.Ptr(p.Elem) }
func (p *Pointer) Hash() uint32 {
	a := uint64(p.address())
	return uint32(a ^ (a >> 32))
}
