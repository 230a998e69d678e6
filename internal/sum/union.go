package sum

import (
	"fmt"

	"github.com/funvibe/rva/internal/object"
	"github.com/funvibe/rva/internal/typesystem"
)

// Union is a closed, ordered list of alternative types.
type Union struct {
	alts []typesystem.Type
}

// NewUnion validates alts. References and arrays of unknown bound cannot be
// stored, and no alternative may still mention a placeholder.
func NewUnion(alts ...typesystem.Type) (*Union, error) {
	if len(alts) == 0 {
		return nil, ErrNoAlternatives
	}
	for i, alt := range alts {
		if typesystem.HasPlaceholder(alt) {
			return nil, fmt.Errorf("alternative %d (%s): %w", i, alt, ErrOpenAlternative)
		}
		switch a := typesystem.StripQualifiers(alt).(type) {
		case typesystem.TRef:
			return nil, fmt.Errorf("alternative %d (%s): %w: reference", i, alt, ErrUnsupported)
		case typesystem.TArray:
			if !a.Sized {
				return nil, fmt.Errorf("alternative %d (%s): %w: array of unknown bound", i, alt, ErrUnsupported)
			}
		}
	}
	u := &Union{alts: make([]typesystem.Type, len(alts))}
	copy(u.alts, alts)
	return u, nil
}

func (u *Union) Len() int { return len(u.alts) }

func (u *Union) Alternative(i int) typesystem.Type { return u.alts[i] }

func (u *Union) Alternatives() []typesystem.Type {
	out := make([]typesystem.Type, len(u.alts))
	copy(out, u.alts)
	return out
}

// IndexOf finds the unique alternative identical to t.
func (u *Union) IndexOf(t typesystem.Type) (int, error) {
	found := NPos
	for i, alt := range u.alts {
		if typesystem.Identical(alt, t) {
			if found != NPos {
				return NPos, fmt.Errorf("%w: %s", ErrAmbiguous, t)
			}
			found = i
		}
	}
	if found == NPos {
		return NPos, fmt.Errorf("%w: %s", ErrNoAlternative, t)
	}
	return found, nil
}

// Select picks the alternative a converting construction from obj would
// activate: the unique exact match, or failing that the unique conversion.
func (u *Union) Select(obj object.Object) (int, error) {
	if obj == nil {
		return NPos, fmt.Errorf("%w: <nil>", ErrNoAlternative)
	}
	for _, match := range []func(object.Object, typesystem.Type) bool{object.Exact, object.Conforms} {
		found := NPos
		for i, alt := range u.alts {
			if !match(obj, alt) {
				continue
			}
			if found != NPos {
				return NPos, fmt.Errorf("%w: %s fits %s and %s", ErrAmbiguous, obj.RuntimeType(), u.alts[found], alt)
			}
			found = i
		}
		if found != NPos {
			return found, nil
		}
	}
	return NPos, fmt.Errorf("%w: %s", ErrNoAlternative, obj.RuntimeType())
}

// Same reports whether u and other describe the same sum type.
func (u *Union) Same(other *Union) bool {
	if u == other {
		return true
	}
	if u == nil || other == nil || len(u.alts) != len(other.alts) {
		return false
	}
	for i := range u.alts {
		if !typesystem.Identical(u.alts[i], other.alts[i]) {
			return false
		}
	}
	return true
}

func (u *Union) String() string {
	return typesystem.App(typesystem.Std("variant"), u.alts...).String()
}
