package typesystem

import "github.com/funvibe/rva/internal/config"

// Identical reports whether a and b denote the same type.
// Two variant specializations are identical when they use the same
// placeholder and declare identical alternative lists; names are ignored.
func Identical(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case TCon:
		y, ok := b.(TCon)
		return ok && x.Name == y.Name && x.Scope == y.Scope
	case TQual:
		// cv-qualifiers form a set: const volatile T is volatile const T.
		if _, ok := b.(TQual); !ok || qualifierSet(x) != qualifierSet(b) {
			return false
		}
		return Identical(StripQualifiers(x), StripQualifiers(b))
	case TPointer:
		y, ok := b.(TPointer)
		return ok && Identical(x.Elem, y.Elem)
	case TRef:
		y, ok := b.(TRef)
		return ok && x.RValue == y.RValue && Identical(x.Elem, y.Elem)
	case TArray:
		y, ok := b.(TArray)
		return ok && x.Sized == y.Sized && x.Len == y.Len && Identical(x.Elem, y.Elem)
	case TApp:
		y, ok := b.(TApp)
		if !ok || !Identical(x.Template, y.Template) || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Identical(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *TVariant:
		y, ok := b.(*TVariant)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if x.Closed() != y.Closed() || !Identical(x.Placeholder, y.Placeholder) || len(x.Declared) != len(y.Declared) {
			return false
		}
		for i := range x.Declared {
			if !Identical(x.Declared[i], y.Declared[i]) {
				return false
			}
		}
		return true
	}
	return false
}

type cvSet struct{ isConst, isVolatile bool }

func qualifierSet(t Type) cvSet {
	var cv cvSet
	for q, ok := t.(TQual); ok; q, ok = t.(TQual) {
		switch q.Qualifier {
		case config.ConstQualifier:
			cv.isConst = true
		case config.VolatileQualifier:
			cv.isVolatile = true
		}
		t = q.Elem
	}
	return cv
}
