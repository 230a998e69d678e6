package symbols

import (
	"fmt"
	"sort"

	"github.com/funvibe/rva/internal/typesystem"
)

type SymbolKind int

type ScopeType int

const (
	ScopeGlobal ScopeType = iota // Project-level declarations
	ScopeLocal                   // Declarations local to one file or call
)

const (
	VariantSymbol SymbolKind = iota // A closed recursive variant specialization
	AliasSymbol                     // Any other named type
)

type Symbol struct {
	Name           string
	Type           typesystem.Type
	Kind           SymbolKind
	DefinitionFile string // The file path where this symbol was defined
}

// SymbolTable maps names to type expressions. Lookups fall through to the outer scope.
type SymbolTable struct {
	store     map[string]Symbol
	order     []string
	outer     *SymbolTable
	scopeType ScopeType
}

func NewEmptySymbolTable() *SymbolTable {
	return &SymbolTable{
		store:     make(map[string]Symbol),
		scopeType: ScopeGlobal,
	}
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType) *SymbolTable {
	st := NewEmptySymbolTable()
	st.outer = outer
	st.scopeType = scopeType
	return st
}

// Outer returns the outer scope symbol table
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

// IsGlobalScope returns true if this symbol table is the root (global) scope.
func (s *SymbolTable) IsGlobalScope() bool {
	return s.scopeType == ScopeGlobal
}

// Define registers name in this scope. Redefinition in the same scope is an error;
// shadowing an outer scope is allowed.
func (s *SymbolTable) Define(name string, t typesystem.Type, file string) error {
	if _, exists := s.store[name]; exists {
		return &RedefinitionError{Name: name}
	}
	kind := AliasSymbol
	if v, ok := t.(*typesystem.TVariant); ok {
		kind = VariantSymbol
		if v.Name == "" {
			v.Name = name
		}
	}
	s.store[name] = Symbol{Name: name, Type: t, Kind: kind, DefinitionFile: file}
	s.order = append(s.order, name)
	return nil
}

// Find looks name up in this scope and then in the enclosing ones.
func (s *SymbolTable) Find(name string) (Symbol, bool) {
	for st := s; st != nil; st = st.outer {
		if sym, ok := st.store[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// MustFind is Find that reports a missing name as an error.
func (s *SymbolTable) MustFind(name string) (Symbol, error) {
	sym, ok := s.Find(name)
	if !ok {
		return Symbol{}, NewSymbolNotFoundError(name)
	}
	return sym, nil
}

// LookupType implements the parser's name resolution.
func (s *SymbolTable) LookupType(name string) (typesystem.Type, bool) {
	sym, ok := s.Find(name)
	if !ok {
		return nil, false
	}
	return sym.Type, true
}

// Names returns the names defined in this scope in definition order.
func (s *SymbolTable) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Variants returns the variant symbols of this scope sorted by name.
func (s *SymbolTable) Variants() []Symbol {
	var out []Symbol
	for _, sym := range s.store {
		if sym.Kind == VariantSymbol {
			out = append(out, sym)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SymbolNotFoundError indicates a symbol was not found
type SymbolNotFoundError struct {
	Name string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol not found: %s", e.Name)
}

func NewSymbolNotFoundError(name string) *SymbolNotFoundError {
	return &SymbolNotFoundError{Name: name}
}

// RedefinitionError reports a name defined twice in one scope.
type RedefinitionError struct {
	Name string
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("symbol already defined: %s", e.Name)
}
