package variant

import (
	"errors"
	"fmt"

	"github.com/funvibe/rva/internal/object"
	"github.com/funvibe/rva/internal/parser"
	"github.com/funvibe/rva/internal/pipeline"
	"github.com/funvibe/rva/internal/sum"
	"github.com/funvibe/rva/internal/symbols"
	"github.com/funvibe/rva/internal/typesystem"
)

// Spec is a closed recursive variant specialization: its declared
// alternatives, the concrete storage list and the sum type over it.
type Spec struct {
	typ   *typesystem.TVariant
	union *sum.Union
}

// Define declares a specialization whose alternatives use typesystem.Self
// for the variant itself.
func Define(alts ...typesystem.Type) (*Spec, error) {
	return DefineWith(typesystem.Self, alts...)
}

// DefineWith is Define with a custom self marker, typically one minted by
// typesystem.NewPlaceholder.
func DefineWith(placeholder typesystem.TCon, alts ...typesystem.Type) (*Spec, error) {
	for i, alt := range alts {
		if err := typesystem.CheckIndirection(alt, placeholder); err != nil {
			return nil, fmt.Errorf("variant: alternative %d: %w", i, err)
		}
	}
	return FromType(typesystem.NewVariant(placeholder, alts...))
}

// MustDefine is Define for declarations known to be valid.
func MustDefine(alts ...typesystem.Type) *Spec {
	s, err := Define(alts...)
	if err != nil {
		panic(err)
	}
	return s
}

// FromType builds the Spec of a variant descriptor, closing it if needed.
func FromType(v *typesystem.TVariant) (*Spec, error) {
	v.Close()
	u, err := sum.NewUnion(v.Concrete...)
	if err != nil {
		return nil, fmt.Errorf("variant %s: %w", v, err)
	}
	return &Spec{typ: v, union: u}, nil
}

// Parse defines a specialization from its spelling, such as
// "rva::variant<int, std::vector<rva::self_t>>". Other names resolve
// through table, which may be nil.
func Parse(decl string, table *symbols.SymbolTable) (*Spec, error) {
	var resolver pipeline.Resolver
	if table != nil {
		resolver = table
	}
	t, err := parser.ParseType(decl, resolver)
	if err != nil {
		return nil, err
	}
	v, ok := t.(*typesystem.TVariant)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotVariant, t)
	}
	return FromType(v)
}

// Type returns the closed descriptor. It is the runtime type of every Variant of s.
func (s *Spec) Type() *typesystem.TVariant { return s.typ }

func (s *Spec) Union() *sum.Union { return s.union }

// Alternatives returns the concrete storage types.
func (s *Spec) Alternatives() []typesystem.Type { return s.union.Alternatives() }

// Declared returns the alternatives as written, placeholder included.
func (s *Spec) Declared() []typesystem.Type {
	out := make([]typesystem.Type, len(s.typ.Declared))
	copy(out, s.typ.Declared)
	return out
}

func (s *Spec) Len() int { return s.union.Len() }

func (s *Spec) String() string { return s.typ.String() }

// IndexOf finds the unique alternative whose concrete or declared type is t.
func (s *Spec) IndexOf(t typesystem.Type) (int, error) {
	i, err := s.union.IndexOf(t)
	if err == nil || !errors.Is(err, sum.ErrNoAlternative) {
		return i, err
	}
	found := sum.NPos
	for j, alt := range s.typ.Declared {
		if typesystem.Identical(alt, t) {
			if found != sum.NPos {
				return sum.NPos, fmt.Errorf("%w: %s", sum.ErrAmbiguous, t)
			}
			found = j
		}
	}
	if found == sum.NPos {
		return sum.NPos, err
	}
	return found, nil
}

// Same reports whether s and other are the same specialization.
func (s *Spec) Same(other *Spec) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return typesystem.Identical(s.typ, other.typ)
}

// New constructs the alternative obj selects.
func (s *Spec) New(obj object.Object) (Variant, error) {
	val, err := sum.New(s.union, obj)
	if err != nil {
		return Variant{}, fmt.Errorf("%s: %w", s, err)
	}
	return Variant{spec: s, val: val}, nil
}

// NewAt constructs alternative i.
func (s *Spec) NewAt(i int, obj object.Object) (Variant, error) {
	val, err := sum.NewAt(s.union, i, obj)
	if err != nil {
		return Variant{}, fmt.Errorf("%s: %w", s, err)
	}
	return Variant{spec: s, val: val}, nil
}

// Zero holds the default value of the first alternative.
func (s *Spec) Zero() (Variant, error) {
	obj, err := ZeroValue(s.union.Alternative(0))
	if err != nil {
		return Variant{}, fmt.Errorf("%s: %w", s, err)
	}
	return s.NewAt(0, obj)
}
