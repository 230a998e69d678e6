package typesystem

import (
	"strings"

	"github.com/funvibe/rva/internal/config"
)

// VariantTemplate is the template name a recursive variant is spelled with.
var VariantTemplate = TCon{Name: config.VariantTypeName, Scope: config.RvaScope}

// TVariant represents a recursive variant specialization.
// Declared holds the alternatives as written, placeholder included.
// Concrete is filled in by Close and holds the storage type list in which
// every placeholder occurrence has been replaced by the variant itself.
type TVariant struct {
	Name        string // Display name for named specializations (optional)
	Placeholder TCon
	Declared    []Type
	Concrete    []Type
	closed      bool
}

// NewVariant creates an open specialization using placeholder as its self marker.
func NewVariant(placeholder TCon, alternatives ...Type) *TVariant {
	declared := make([]Type, len(alternatives))
	copy(declared, alternatives)
	return &TVariant{Placeholder: placeholder, Declared: declared}
}

// Closed reports whether the concrete storage list has been computed.
// Replace never descends into a closed specialization.
func (v *TVariant) Closed() bool { return v.closed }

// Close computes the concrete storage type list and marks v closed.
// Closing twice is a no-op.
func (v *TVariant) Close() *TVariant {
	if v.closed {
		return v
	}
	concrete := make([]Type, len(v.Declared))
	for i, alt := range v.Declared {
		concrete[i] = Replace(alt, v.Placeholder, v)
	}
	v.Concrete = concrete
	v.closed = true
	return v
}

func (v *TVariant) String() string {
	if v.Name != "" {
		return v.Name
	}
	return v.Spelling()
}

// Spelling returns the declaration form, ignoring Name.
func (v *TVariant) Spelling() string {
	args := make([]string, len(v.Declared))
	for i, alt := range v.Declared {
		args[i] = alt.String()
	}
	return VariantTemplate.String() + "<" + strings.Join(args, ", ") + ">"
}

func (v *TVariant) decl(inner string) string { return v.String() + inner }
