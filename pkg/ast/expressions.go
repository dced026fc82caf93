package ast

import (
	"strings"

	"github.com/janelang/shji/pkg/token"
)

// Identifier is a name, optionally annotated with `: Type`.
type Identifier struct {
	Token token.Token
	Value string
	Type  *Identifier // nil when not annotated
}

// Prefix is `op right`.
type Prefix struct {
	Token    token.Token
	Operator string
	Right    Expr
}

// Infix is `left op right`.
type Infix struct {
	Token    token.Token
	Operator string
	Left     Expr
	Right    Expr
}

// Postfix is `left op`.
type Postfix struct {
	Token    token.Token
	Operator string
	Left     Expr
}

// If is `if cond body [else body]`.
type If struct {
	Token       token.Token
	Condition   Expr
	Consequence *Block
	Alternative *Block // nil when there is no else branch
}

// Ternary is `cond ? ifTrue : ifFalse`.
type Ternary struct {
	Token     token.Token
	Condition Expr
	IfTrue    Expr
	IfFalse   Expr
}

// Let declares a name, with or without an initial value.
type Let struct {
	Token token.Token
	Name  *Identifier
	Value Expr // nil declares the name uninitialized
}

// Assignment is `name = value`.
type Assignment struct {
	Token token.Token
	Name  *Identifier
	Value Expr
}

// Call is `callee(args...)`.
type Call struct {
	Token     token.Token // (
	Function  Expr
	Arguments []Expr
}

// ArrayLiteral is `[a, b, ...]`.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expr
}

// Indexing is `target[index]`.
type Indexing struct {
	Token  token.Token // [
	Target Expr
	Index  Expr
}

// Abyss is the nil literal.
type Abyss struct {
	Token token.Token
}

func (*Identifier) exprNode()   {}
func (*Prefix) exprNode()       {}
func (*Infix) exprNode()        {}
func (*Postfix) exprNode()      {}
func (*If) exprNode()           {}
func (*Ternary) exprNode()      {}
func (*Let) exprNode()          {}
func (*Assignment) exprNode()   {}
func (*Call) exprNode()         {}
func (*ArrayLiteral) exprNode() {}
func (*Indexing) exprNode()     {}
func (*Abyss) exprNode()        {}

func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (p *Prefix) TokenLiteral() string       { return p.Token.Literal }
func (i *Infix) TokenLiteral() string        { return i.Token.Literal }
func (p *Postfix) TokenLiteral() string      { return p.Token.Literal }
func (i *If) TokenLiteral() string           { return i.Token.Literal }
func (t *Ternary) TokenLiteral() string      { return t.Token.Literal }
func (l *Let) TokenLiteral() string          { return l.Token.Literal }
func (a *Assignment) TokenLiteral() string   { return a.Token.Literal }
func (c *Call) TokenLiteral() string         { return c.Token.Literal }
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (i *Indexing) TokenLiteral() string     { return i.Token.Literal }
func (a *Abyss) TokenLiteral() string        { return a.Token.Literal }

func (i *Identifier) Origin() token.Token   { return i.Token }
func (p *Prefix) Origin() token.Token       { return p.Token }
func (i *Infix) Origin() token.Token        { return i.Token }
func (p *Postfix) Origin() token.Token      { return p.Token }
func (i *If) Origin() token.Token           { return i.Token }
func (t *Ternary) Origin() token.Token      { return t.Token }
func (l *Let) Origin() token.Token          { return l.Token }
func (a *Assignment) Origin() token.Token   { return a.Token }
func (c *Call) Origin() token.Token         { return c.Token }
func (a *ArrayLiteral) Origin() token.Token { return a.Token }
func (i *Indexing) Origin() token.Token     { return i.Token }
func (a *Abyss) Origin() token.Token        { return a.Token }

func (i *Identifier) String() string {
	if i.Type == nil {
		return i.Value
	}
	return i.Value + ": " + i.Type.String()
}

func (p *Prefix) String() string {
	return "(" + p.Operator + exprString(p.Right) + ")"
}

func (i *Infix) String() string {
	return "(" + exprString(i.Left) + " " + i.Operator + " " + exprString(i.Right) + ")"
}

func (p *Postfix) String() string {
	return "(" + exprString(p.Left) + p.Operator + ")"
}

func (i *If) String() string {
	var sb strings.Builder
	sb.WriteString("if " + exprString(i.Condition) + " " + i.Consequence.String())
	if i.Alternative != nil {
		sb.WriteString(" else " + i.Alternative.String())
	}
	return sb.String()
}

func (t *Ternary) String() string {
	return exprString(t.Condition) + " ? " + exprString(t.IfTrue) + " : " + exprString(t.IfFalse)
}

func (l *Let) String() string {
	if l.Value == nil {
		return l.TokenLiteral() + " " + l.Name.String()
	}
	return l.TokenLiteral() + " " + l.Name.String() + " = " + l.Value.String()
}

func (a *Assignment) String() string {
	return a.Name.String() + " = " + exprString(a.Value)
}

func (c *Call) String() string {
	return exprString(c.Function) + "(" + joinExprs(c.Arguments) + ")"
}

func (a *ArrayLiteral) String() string {
	return "[" + joinExprs(a.Elements) + "]"
}

func (i *Indexing) String() string {
	return "(" + exprString(i.Target) + "[" + exprString(i.Index) + "])"
}

func (a *Abyss) String() string { return "abyss" }

func (i *Identifier) Dump() string {
	return render(tokenField(i.Token), scalarField("Value", i.Value), identField("Type", i.Type))
}

func (p *Prefix) Dump() string {
	return render(tokenField(p.Token), scalarField("Operator", p.Operator), exprField("Right", p.Right))
}

func (i *Infix) Dump() string {
	return render(
		tokenField(i.Token),
		scalarField("Operator", i.Operator),
		exprField("Left", i.Left),
		exprField("Right", i.Right),
	)
}

func (p *Postfix) Dump() string {
	return render(tokenField(p.Token), scalarField("Operator", p.Operator), exprField("Left", p.Left))
}

func (i *If) Dump() string {
	return render(
		tokenField(i.Token),
		exprField("Condition", i.Condition),
		blockField("Consequence", i.Consequence),
		blockField("Alternative", i.Alternative),
	)
}

func (t *Ternary) Dump() string {
	return render(
		tokenField(t.Token),
		exprField("Condition", t.Condition),
		exprField("IfTrue", t.IfTrue),
		exprField("IfFalse", t.IfFalse),
	)
}

func (l *Let) Dump() string {
	return render(tokenField(l.Token), identField("Name", l.Name), exprField("Value", l.Value))
}

func (a *Assignment) Dump() string {
	return render(tokenField(a.Token), identField("Name", a.Name), exprField("Value", a.Value))
}

func (c *Call) Dump() string {
	return render(tokenField(c.Token), exprField("Function", c.Function), listField("Arguments", c.Arguments))
}

func (a *ArrayLiteral) Dump() string {
	return render(tokenField(a.Token), listField("Elements", a.Elements))
}

func (i *Indexing) Dump() string {
	return render(tokenField(i.Token), exprField("Target", i.Target), exprField("Index", i.Index))
}

// Dump renders abyss as a bare marker.
func (a *Abyss) Dump() string { return "#" }

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = exprString(e)
	}
	return strings.Join(parts, ", ")
}
