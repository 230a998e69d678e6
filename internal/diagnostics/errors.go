package diagnostics

import (
	"fmt"

	"github.com/funvibe/rva/internal/token"
)

type ErrorCode string

const (
	ErrL001 ErrorCode = "L001" // Illegal character
	ErrP001 ErrorCode = "P001" // Unexpected token
	ErrP002 ErrorCode = "P002" // Missing type name
	ErrP003 ErrorCode = "P003" // More than one type name in a specifier sequence
	ErrP004 ErrorCode = "P004" // Unterminated template argument list
	ErrP005 ErrorCode = "P005" // Expected token
	ErrP006 ErrorCode = "P006" // Invalid array bound
	ErrP007 ErrorCode = "P007" // Trailing input
	ErrS001 ErrorCode = "S001" // Invalid variant declaration
)

// DiagnosticError is a positioned error produced while reading a type expression.
type DiagnosticError struct {
	Code   ErrorCode
	Token  token.Token
	File   string
	Detail string
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: error [%s]: %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Detail)
	}
	return fmt.Sprintf("%d:%d: error [%s]: %s", e.Token.Line, e.Token.Column, e.Code, e.Detail)
}

// NewError creates a diagnostic at tok. A non-empty first arg is reported as
// what was found instead.
func NewError(code ErrorCode, tok token.Token, msg string, args ...interface{}) *DiagnosticError {
	detail := msg
	if len(args) > 0 && args[0] != nil && args[0] != "" {
		detail = fmt.Sprintf("%s (got %v)", msg, args[0])
	}
	return &DiagnosticError{Code: code, Token: tok, Detail: detail}
}
