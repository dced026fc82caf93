package parser

import (
	"fmt"

	"github.com/janelang/shji/pkg/token"
)

// DiagnosticKind classifies a recoverable parse diagnostic.
type DiagnosticKind int

// Diagnostic kinds.
const (
	UnexpectedToken DiagnosticKind = iota
	NoUnaryProduction
	AmbiguousIf
)

var diagnosticNames = map[DiagnosticKind]string{
	UnexpectedToken:   "UnexpectedToken",
	NoUnaryProduction: "NoUnaryProduction",
	AmbiguousIf:       "AmbiguousIf",
}

func (k DiagnosticKind) String() string {
	if name, ok := diagnosticNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// ParseError is a recoverable diagnostic recorded while parsing. Parsing
// continues after one is recorded.
type ParseError struct {
	Kind    DiagnosticKind
	Message string
	Token   token.Token // offending token
}

func (e *ParseError) Error() string {
	return e.Message
}

// LexError represents a lexical failure. Scanning cannot continue past it.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrStringLiteral     = "string literals are not supported yet"
	ErrUnexpectedToken   = "expected next token to be %s, got %s instead"
	ErrNoUnaryProduction = "no unary production for %s found"
	ErrAmbiguousIf       = "ambiguous if-expression: wrap the condition in parentheses or the body in braces"
	ErrUnterminatedBlock = "expected } to close block, got EOF instead"
)
