package ast

import (
	"strings"

	"github.com/janelang/shji/pkg/token"
)

// Return is `return [value]`.
type Return struct {
	Token token.Token
	Value Expr // nil for a valueless return
}

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expr
}

// FunctionLiteral is `fn [-flags] name(params) [-> Type] body`.
type FunctionLiteral struct {
	Token      token.Token
	Flags      []string // ordered, no duplicates
	Name       *Identifier
	Parameters []*Identifier
	ReturnType *Identifier // nil when not annotated
	Body       *Block
}

// ForLoop is `for iterator in enumerable { body }`.
type ForLoop struct {
	Token      token.Token
	Iterator   *Identifier
	Enumerable Expr
	Body       *Block
}

// Block is a brace-delimited statement sequence, or a single statement
// standing in for one.
type Block struct {
	Token      token.Token
	Statements []Stmt
}

func (*Return) stmtNode()              {}
func (*ExpressionStatement) stmtNode() {}
func (*FunctionLiteral) stmtNode()     {}
func (*ForLoop) stmtNode()             {}
func (*Block) stmtNode()               {}

func (r *Return) TokenLiteral() string              { return r.Token.Literal }
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (f *FunctionLiteral) TokenLiteral() string     { return f.Token.Literal }
func (f *ForLoop) TokenLiteral() string             { return f.Token.Literal }
func (b *Block) TokenLiteral() string               { return b.Token.Literal }

func (r *Return) Origin() token.Token              { return r.Token }
func (e *ExpressionStatement) Origin() token.Token { return e.Token }
func (f *FunctionLiteral) Origin() token.Token     { return f.Token }
func (f *ForLoop) Origin() token.Token             { return f.Token }
func (b *Block) Origin() token.Token               { return b.Token }

func (r *Return) String() string {
	if r.Value == nil {
		return r.TokenLiteral()
	}
	return r.TokenLiteral() + " " + r.Value.String()
}

func (e *ExpressionStatement) String() string {
	if e.Expression == nil {
		return ""
	}
	return e.Expression.String()
}

func (f *FunctionLiteral) String() string {
	var sb strings.Builder
	sb.WriteString(f.TokenLiteral())
	sb.WriteByte(' ')
	for _, flag := range f.Flags {
		if len(flag) == 1 {
			sb.WriteString("-" + flag + " ")
		} else {
			sb.WriteString("--" + flag + " ")
		}
	}
	if f.Name != nil {
		sb.WriteString(f.Name.String())
	}
	sb.WriteByte('(')
	for i, p := range f.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	if f.ReturnType != nil {
		sb.WriteString(" -> " + f.ReturnType.String())
	}
	if f.Body != nil {
		sb.WriteString(" " + f.Body.String())
	}
	return sb.String()
}

func (f *ForLoop) String() string {
	return f.TokenLiteral() + " " + f.Iterator.String() + " in " + exprString(f.Enumerable) + " " + f.Body.String()
}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for _, s := range b.Statements {
		sb.WriteString("\n\t")
		sb.WriteString(s.String())
	}
	sb.WriteString("\n}")
	return sb.String()
}

func (r *Return) Dump() string {
	return render(tokenField(r.Token), exprField("Value", r.Value))
}

func (e *ExpressionStatement) Dump() string {
	return render(tokenField(e.Token), exprField("Expression", e.Expression))
}

func (f *FunctionLiteral) Dump() string {
	return render(
		tokenField(f.Token),
		stringsField("Flags", f.Flags),
		identField("Name", f.Name),
		listField("Parameters", f.Parameters),
		identField("ReturnType", f.ReturnType),
		blockField("Body", f.Body),
	)
}

func (f *ForLoop) Dump() string {
	return render(
		tokenField(f.Token),
		identField("Iterator", f.Iterator),
		exprField("Enumerable", f.Enumerable),
		blockField("Body", f.Body),
	)
}

func (b *Block) Dump() string {
	return render(tokenField(b.Token), listField("Statements", b.Statements))
}

// exprString renders e, or "" when absent.
func exprString(e Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}
