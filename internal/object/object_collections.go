package object

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/funvibe/rva/internal/config"
	"github.com/funvibe/rva/internal/typesystem"
)

// List is std::vector<Elem>. Lists are immutable; every update returns a new List
// and unchanged elements are shared.
type List struct {
	elements []Object
	Elem     typesystem.Type
}

// NewList checks every element against elem.
func NewList(elem typesystem.Type, elements ...Object) (*List, error) {
	stored := make([]Object, len(elements))
	for i, el := range elements {
		if !Conforms(el, elem) {
			return nil, fmt.Errorf("list element %d: %w: %s is not %s", i, ErrTypeMismatch, describe(el), elem)
		}
		stored[i] = detach(el)
	}
	return &List{elements: stored, Elem: elem}, nil
}

func (l *List) Type() ObjectType { return LIST_OBJ }

// Len returns the number of elements
func (l *List) Len() int {
	return len(l.elements)
}

// Get returns the element at index i, or nil if out of bounds
func (l *List) Get(i int) Object {
	if i < 0 || i >= len(l.elements) {
		return nil
	}
	return detach(l.elements[i])
}

// Set returns a new List with the element at index i replaced with value
func (l *List) Set(i int, value Object) (*List, error) {
	if i < 0 || i >= len(l.elements) {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(l.elements))
	}
	if !Conforms(value, l.Elem) {
		return nil, fmt.Errorf("%w: %s is not %s", ErrTypeMismatch, describe(value), l.Elem)
	}
	newElements := make([]Object, len(l.elements))
	copy(newElements, l.elements)
	newElements[i] = detach(value)
	return &List{elements: newElements, Elem: l.Elem}, nil
}

// Append returns a new List with values added at the end
func (l *List) Append(values ...Object) (*List, error) {
	newElements := make([]Object, len(l.elements), len(l.elements)+len(values))
	copy(newElements, l.elements)
	for _, v := range values {
		if !Conforms(v, l.Elem) {
			return nil, fmt.Errorf("%w: %s is not %s", ErrTypeMismatch, describe(v), l.Elem)
		}
		newElements = append(newElements, detach(v))
	}
	return &List{elements: newElements, Elem: l.Elem}, nil
}

// ToSlice returns a copy of elements as a slice (for iteration)
func (l *List) ToSlice() []Object {
	return detachAll(l.elements)
}

// Detach copies the header; the element slice is never written in place.
func (l *List) Detach() Object {
	c := *l
	return &c
}

func (l *List) Inspect() string {
	return inspectSeq("[", "]", l.elements)
}

func (l *List) RuntimeType() typesystem.Type {
	return typesystem.App(typesystem.Std(config.VectorTypeName), bare(l.Elem))
}

func (l *List) Hash() uint32 {
	return hashSeq(l.elements)
}

// Map is std::map<Key, Value>, backed by a persistent HAMT.
// Iteration is in ascending key order.
type Map struct {
	hamt  *PersistentMap
	Key   typesystem.Type
	Value typesystem.Type
}

func NewMap(key, value typesystem.Type) *Map {
	return &Map{hamt: EmptyMap(), Key: key, Value: value}
}

func (m *Map) Type() ObjectType { return MAP_OBJ }

// Len returns the number of entries
func (m *Map) Len() int {
	return m.hamt.Len()
}

// Get returns value for key and whether it exists
func (m *Map) Get(key Object) (Object, bool) {
	val := m.hamt.Get(key)
	if val == nil {
		return nil, false
	}
	return detach(val), true
}

// Put returns a new Map with the key-value pair added/updated
func (m *Map) Put(key, value Object) (*Map, error) {
	if !Conforms(key, m.Key) {
		return nil, fmt.Errorf("map key: %w: %s is not %s", ErrTypeMismatch, describe(key), m.Key)
	}
	if !Conforms(value, m.Value) {
		return nil, fmt.Errorf("map value: %w: %s is not %s", ErrTypeMismatch, describe(value), m.Value)
	}
	return &Map{hamt: m.hamt.Put(detach(key), detach(value)), Key: m.Key, Value: m.Value}, nil
}

// Remove returns a new Map with the key removed
func (m *Map) Remove(key Object) *Map {
	return &Map{hamt: m.hamt.Remove(key), Key: m.Key, Value: m.Value}
}

func (m *Map) Contains(key Object) bool {
	return m.hamt.Contains(key)
}

// Items returns all entries sorted by key.
func (m *Map) Items() []Entry {
	items := m.hamt.Items()
	for i := range items {
		items[i] = Entry{Key: detach(items[i].Key), Value: detach(items[i].Value)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		c, err := CompareObjects(items[i].Key, items[j].Key)
		if err != nil {
			return items[i].Key.Inspect() < items[j].Key.Inspect()
		}
		return c < 0
	})
	return items
}

// Keys returns all keys in ascending order
func (m *Map) Keys() []Object {
	items := m.Items()
	keys := make([]Object, len(items))
	for i, item := range items {
		keys[i] = item.Key
	}
	return keys
}

// Detach copies the header; the trie is persistent.
func (m *Map) Detach() Object {
	c := *m
	return &c
}

func (m *Map) Inspect() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, item := range m.Items() {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(item.Key.Inspect())
		out.WriteString(": ")
		out.WriteString(item.Value.Inspect())
	}
	out.WriteString("}")
	return out.String()
}

func (m *Map) RuntimeType() typesystem.Type {
	return typesystem.App(typesystem.Std(config.MapTypeName), bare(m.Key), bare(m.Value))
}

func (m *Map) Hash() uint32 {
	h := uint32(0)
	for _, item := range m.hamt.Items() {
		// XOR keeps the hash independent of trie layout
		h ^= (item.Key.Hash() ^ (item.Value.Hash() * 31))
	}
	return h
}

// Array is a built-in array T[N]. Its length is part of its type.
type Array struct {
	elements []Object
	Elem     typesystem.Type
}

// NewArray requires one element per slot.
func NewArray(elem typesystem.Type, elements ...Object) (*Array, error) {
	l, err := NewList(elem, elements...)
	if err != nil {
		return nil, err
	}
	return &Array{elements: l.elements, Elem: elem}, nil
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Len() int         { return len(a.elements) }

func (a *Array) Get(i int) Object {
	if i < 0 || i >= len(a.elements) {
		return nil
	}
	return detach(a.elements[i])
}

// Set returns a new Array with slot i replaced.
func (a *Array) Set(i int, value Object) (*Array, error) {
	l, err := (&List{elements: a.elements, Elem: a.Elem}).Set(i, value)
	if err != nil {
		return nil, err
	}
	return &Array{elements: l.elements, Elem: a.Elem}, nil
}

func (a *Array) ToSlice() []Object { return detachAll(a.elements) }

func (a *Array) Detach() Object {
	c := *a
	return &c
}

func (a *Array) Inspect() string { return inspectSeq("{", "}", a.elements) }

func (a *Array) RuntimeType() typesystem.Type {
	return typesystem.Array(bare(a.Elem), len(a.elements))
}

func (a *Array) Hash() uint32 { return hashSeq(a.elements) }

func detachAll(elements []Object) []Object {
	out := make([]Object, len(elements))
	for i, el := range elements {
		out[i] = detach(el)
	}
	return out
}

func inspectSeq(open, close string, elements []Object) string {
	var out bytes.Buffer
	out.WriteString(open)
	for i, el := range elements {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el.Inspect())
	}
	out.WriteString(close)
	return out.String()
}

func hashSeq(elements []Object) uint32 {
	h := uint32(1)
	for _, obj := range elements {
		h = 31*h + obj.Hash()
	}
	return h
}
