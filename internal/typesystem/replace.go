package typesystem

// Replace returns t with every occurrence of find rewritten to replace.
// Qualifiers, pointers, references and arrays around an occurrence are kept,
// and substitution distributes over every argument of a generic instantiation.
// A closed variant specialization is returned unchanged: its own placeholder
// belongs to a different self-reference scope.
func Replace(t Type, find Type, replace Type) Type {
	if t == nil {
		return nil
	}
	if Identical(t, find) {
		return replace
	}
	switch typ := t.(type) {
	case TCon:
		return typ
	case TQual:
		return TQual{Qualifier: typ.Qualifier, Elem: Replace(typ.Elem, find, replace)}
	case TPointer:
		return TPointer{Elem: Replace(typ.Elem, find, replace)}
	case TRef:
		return TRef{Elem: Replace(typ.Elem, find, replace), RValue: typ.RValue}
	case TArray:
		return TArray{Elem: Replace(typ.Elem, find, replace), Len: typ.Len, Sized: typ.Sized}
	case TApp:
		newArgs := make([]Type, len(typ.Args))
		for i, arg := range typ.Args {
			newArgs[i] = Replace(arg, find, replace)
		}
		return TApp{Template: typ.Template, Args: newArgs}
	case *TVariant:
		if typ.Closed() {
			return typ
		}
		// Still under construction: its alternatives are part of the expression.
		newDeclared := make([]Type, len(typ.Declared))
		for i, alt := range typ.Declared {
			newDeclared[i] = Replace(alt, find, replace)
		}
		return &TVariant{Name: typ.Name, Placeholder: typ.Placeholder, Declared: newDeclared}
	default:
		return t
	}
}

// ContainsType reports whether find occurs in t outside closed variants.
func ContainsType(t Type, find Type) bool {
	if t == nil {
		return false
	}
	if Identical(t, find) {
		return true
	}
	switch typ := t.(type) {
	case TQual:
		return ContainsType(typ.Elem, find)
	case TPointer:
		return ContainsType(typ.Elem, find)
	case TRef:
		return ContainsType(typ.Elem, find)
	case TArray:
		return ContainsType(typ.Elem, find)
	case TApp:
		for _, arg := range typ.Args {
			if ContainsType(arg, find) {
				return true
			}
		}
	case *TVariant:
		if typ.Closed() {
			return false
		}
		for _, alt := range typ.Declared {
			if ContainsType(alt, find) {
				return true
			}
		}
	}
	return false
}
