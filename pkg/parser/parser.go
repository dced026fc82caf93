// Package parser turns Jane source text into an AST.
//
// # Usage
//
//	p := parser.New(parser.NewTokenizer(src))
//	program, err := p.ParseProgram()
//	if err != nil {
//	    // lexical failure, the program is unusable
//	}
//	for _, d := range p.Errors() {
//	    // recoverable diagnostics
//	}
//
// # Grammar Overview
//
// Expressions are parsed by precedence climbing over per-token tables of
// unary, binary and postfix productions:
//
//	program    → { statement (";" | EOL) }
//	statement  → return | function | for | expression
//	return     → "return" [expression]
//	function   → "fn" { "-" IDENT | "--" IDENT } IDENT "(" [params] ")" ["->" IDENT] ("=>" expression | block)
//	for        → "for" IDENT "in" expression block
//	expression → unary { binary expression | postfix }
//
// Line breaks end a statement but are skipped wherever a statement cannot
// end yet, such as after a binary operator or inside a block.
package parser

import (
	"fmt"

	"github.com/janelang/shji/pkg/ast"
	"github.com/janelang/shji/pkg/token"
)

type (
	unaryFn   func() ast.Expr
	binaryFn  func(left ast.Expr) ast.Expr
	postfixFn func(left ast.Expr) ast.Expr
)

// Parser parses Jane source into an AST.
type Parser struct {
	tokenizer *Tokenizer
	token     token.Token // current token
	peek      token.Token // lookahead token
	errors    []*ParseError

	unary   map[token.TokenType]unaryFn
	binary  map[token.TokenType]binaryFn
	postfix map[token.TokenType]postfixFn
}

// New creates a parser reading from t.
func New(t *Tokenizer) *Parser {
	p := &Parser{tokenizer: t}
	p.registerProductions()
	// Read two tokens to initialize current and peek
	p.advance(true)
	p.advance(true)
	return p
}

// ParseProgram parses the whole input. The returned error is the lexical
// failure that stopped the tokenizer, if any; recoverable diagnostics are
// reported by Errors instead.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	for !p.check(token.EOF) {
		if p.token.Type.IsTerminator() {
			p.advance(true)
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.synchronize()
		}
		p.advance(true)
	}
	if err := p.tokenizer.Err(); err != nil {
		return program, err
	}
	return program, nil
}

// Parse is a convenience wrapper that parses src and returns the program,
// its diagnostics and the lexical failure, if any.
func Parse(src string) (*ast.Program, []*ParseError, error) {
	p := New(NewTokenizer(src))
	program, err := p.ParseProgram()
	return program, p.Errors(), err
}

// Errors returns the diagnostics recorded so far, in order.
func (p *Parser) Errors() []*ParseError {
	out := make([]*ParseError, len(p.errors))
	copy(out, p.errors)
	return out
}

// ---------- Token Helpers ----------

// advance moves to the next token. With skipEOL set, line breaks landing in
// the current slot are skipped; the lookahead may still be an EOL so that
// expressions stop at the end of a line.
func (p *Parser) advance(skipEOL bool) {
	p.token = p.peek
	p.peek = p.tokenizer.NextToken()
	for skipEOL && p.token.Type == token.EOL {
		p.token = p.peek
		p.peek = p.tokenizer.NextToken()
	}
}

func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// expectPeek advances if the lookahead has type t and records an
// unexpected-token diagnostic otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.checkPeek(t) {
		p.advance(false)
		return true
	}
	p.peekError(t)
	return false
}

// consumeTerminator steps onto a trailing ";" or EOL without skipping it.
func (p *Parser) consumeTerminator() {
	if p.peek.Type.IsTerminator() {
		p.advance(false)
	}
}

// synchronize skips the rest of a malformed statement, stopping before the
// next terminator or closing brace.
func (p *Parser) synchronize() {
	for !p.peek.Type.IsTerminator() && !p.checkPeek(token.EOF) && !p.checkPeek(token.RBRACE) {
		p.advance(false)
	}
}

// ---------- Diagnostics ----------

func (p *Parser) addError(kind DiagnosticKind, tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Token:   tok,
	})
}

func (p *Parser) peekError(expected token.TokenType) {
	p.addError(UnexpectedToken, p.peek, ErrUnexpectedToken, expected, p.peek.Type)
}

func (p *Parser) noUnaryError(tok token.Token) {
	p.addError(NoUnaryProduction, tok, ErrNoUnaryProduction, tok.Type)
}
