package typesystem

import "errors"

// ErrUnboundedRecursion reports a placeholder that is not behind indirection.
var ErrUnboundedRecursion = errors.New("placeholder occurs without indirection")
