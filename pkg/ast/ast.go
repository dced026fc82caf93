// Package ast defines the abstract syntax tree of the Jane language.
//
// The node set is closed: Stmt and Expr carry unexported marker methods and
// every node is dispatched through Visitor, so adding a node kind is a
// compile error at every visitor until it is handled.
package ast

import (
	"strings"

	"github.com/janelang/shji/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLiteral returns the literal text of the originating token.
	TokenLiteral() string
	// Origin returns the token the node was built from.
	Origin() token.Token
	// String renders the node back to source. Operator expressions are
	// always fully parenthesised.
	String() string
	// Dump renders every field of the node for debugging.
	Dump() string

	visit(v Visitor[any]) (any, error)
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// Program is the root of a parsed input. It owns the whole tree.
type Program struct {
	Statements []Stmt
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Origin() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].Origin()
	}
	return token.Token{Type: token.EOF, Pos: token.Position{Line: 1}}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Dump renders the program as a bracketed list with one statement dump per
// line.
func (p *Program) Dump() string {
	var sb strings.Builder
	sb.WriteString("[\n")
	for _, s := range p.Statements {
		sb.WriteByte('\t')
		sb.WriteString(s.Dump())
		sb.WriteByte('\n')
	}
	sb.WriteByte(']')
	return sb.String()
}
