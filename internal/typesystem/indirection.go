package typesystem

import (
	"fmt"
	"slices"

	"github.com/funvibe/rva/internal/config"
)

// CheckIndirection verifies that every occurrence of placeholder in alt sits
// behind a pointer, a reference or a template that stores its arguments out
// of line. Without that the recursive type would have infinite size.
func CheckIndirection(alt Type, placeholder Type) error {
	if occursInline(alt, placeholder) {
		return fmt.Errorf("%w: %s", ErrUnboundedRecursion, alt)
	}
	return nil
}

func occursInline(t Type, placeholder Type) bool {
	if Identical(t, placeholder) {
		return true
	}
	switch typ := t.(type) {
	case TQual:
		return occursInline(typ.Elem, placeholder)
	case TArray:
		return occursInline(typ.Elem, placeholder)
	case TPointer, TRef:
		return false
	case TApp:
		if !IsInlineTemplate(typ.Template) {
			return false
		}
		for _, arg := range typ.Args {
			if occursInline(arg, placeholder) {
				return true
			}
		}
	case *TVariant:
		if typ.Closed() {
			return false
		}
		for _, alt := range typ.Declared {
			if occursInline(alt, placeholder) {
				return true
			}
		}
	}
	return false
}

// IsInlineTemplate reports whether instances of template embed their arguments.
// Unknown templates are assumed to allocate.
func IsInlineTemplate(template TCon) bool {
	return template.Scope == config.StdScope && slices.Contains(config.InlineTemplates, template.Name)
}
