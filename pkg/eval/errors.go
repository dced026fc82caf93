package eval

import (
	"fmt"

	"github.com/janelang/shji/pkg/token"
)

// RuntimeError aborts the evaluation of the current input. Token is the
// token active when the failure happened.
type RuntimeError struct {
	Message string
	Token   token.Token
	Err     error // underlying cause, if any
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s; at Line %d, Column %d", e.Message, e.Token.Pos.Line, e.Token.Pos.Column)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func newError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Token: tok}
}

// Common error messages
const (
	ErrNameInUse         = "variable name %q already in use, use .clear to reset the environment"
	ErrUninitialized     = "variable %q was uninitialized or not found at access time"
	ErrConditionNotBool  = "condition is not a boolean"
	ErrImplicitBool      = "cannot implicitly convert %s into bool"
	ErrNotSigned         = "%s is not a signed number type"
	ErrOperandTypes      = "operator %s not implemented for operands of type %s and %s"
	ErrUnknownOperator   = "operator %s is unknown or not implemented"
	ErrDivisionByZero    = "division by zero"
	ErrLiteralOutOfRange = "literal %s does not fit in %s"
)
