package sum

import "errors"

var (
	ErrNoAlternatives  = errors.New("sum type needs at least one alternative")
	ErrOpenAlternative = errors.New("alternative still contains a placeholder")
	ErrUnsupported     = errors.New("type cannot be an alternative")
	ErrNoAlternative   = errors.New("no alternative accepts the value")
	ErrAmbiguous       = errors.New("value matches more than one alternative")
	ErrInvalidAccess   = errors.New("bad variant access")
	ErrEmptyVariant    = errors.New("variant is valueless by exception")
	ErrTypeMismatch    = errors.New("value does not match alternative")
	ErrNonExhaustive   = errors.New("visit needs exactly one handler per alternative")
	ErrUnionMismatch   = errors.New("values belong to different sum types")
)
