package typesystem

import (
	"strings"

	"github.com/funvibe/rva/internal/config"
	"github.com/google/uuid"
)

// Self is the placeholder marker standing for "the enclosing recursive variant".
// It has no runtime representation.
var Self = TCon{Name: config.SelfTypeName, Scope: config.RvaScope}

// NewPlaceholder mints a fresh marker that cannot collide with Self or with
// any other minted marker. Use it to keep self-reference scopes apart when
// declarations are assembled programmatically.
func NewPlaceholder() TCon {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return TCon{Name: config.MintedSelfPrefix + id, Scope: config.RvaScope}
}

// IsPlaceholder reports whether t is Self or a minted marker.
func IsPlaceholder(t Type) bool {
	c, ok := t.(TCon)
	if !ok || c.Scope != config.RvaScope {
		return false
	}
	return c.Name == config.SelfTypeName || strings.HasPrefix(c.Name, config.MintedSelfPrefix)
}

// HasPlaceholder reports whether any placeholder occurs in t outside closed variants.
func HasPlaceholder(t Type) bool {
	switch typ := t.(type) {
	case TCon:
		return IsPlaceholder(typ)
	case TQual:
		return HasPlaceholder(typ.Elem)
	case TPointer:
		return HasPlaceholder(typ.Elem)
	case TRef:
		return HasPlaceholder(typ.Elem)
	case TArray:
		return HasPlaceholder(typ.Elem)
	case TApp:
		for _, arg := range typ.Args {
			if HasPlaceholder(arg) {
				return true
			}
		}
	case *TVariant:
		if typ.Closed() {
			return false
		}
		if IsPlaceholder(typ.Placeholder) {
			return true
		}
	}
	return false
}
