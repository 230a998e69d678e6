package variant

import (
	"errors"

	"github.com/funvibe/rva/internal/sum"
)

var (
	// Reported by Get, GetType and As when another alternative is active.
	ErrInvalidAccess = sum.ErrInvalidAccess
	// Reported while a variant is valueless by exception.
	ErrEmptyVariant = sum.ErrEmptyVariant

	ErrNotVariant   = errors.New("declaration is not a recursive variant")
	ErrSpecMismatch = errors.New("variants of different specializations")
	ErrNoZeroValue  = errors.New("type has no default value")
)
