package ast

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/janelang/shji/pkg/token"
)

// NumericLiteral is implemented by every number literal node.
type NumericLiteral interface {
	Expr
	// Coalescion returns the suffix kind, CoalesceNone when unsuffixed.
	Coalescion() Coalescion
}

// Suffix is the immediate coalescion attached to a number literal.
type Suffix struct {
	Kind    Coalescion
	Literal string // as written, e.g. "UL"
}

// Integer is a literal that fits in 32 signed bits.
type Integer struct {
	Token  token.Token
	Value  int32
	Suffix Suffix
}

// Long is a literal that fits in 64 signed bits.
type Long struct {
	Token  token.Token
	Value  int64
	Suffix Suffix
}

// Int128 is a literal that fits in 128 signed bits.
type Int128 struct {
	Token  token.Token
	Value  *big.Int
	Suffix Suffix
}

// UInt128 is a literal that fits in 128 unsigned bits.
type UInt128 struct {
	Token  token.Token
	Value  *big.Int
	Suffix Suffix
}

// Float is a literal too large for any integer kind.
type Float struct {
	Token  token.Token
	Value  float64
	Suffix Suffix
}

// Boolean is `true` or `false`.
type Boolean struct {
	Token token.Token
	Value bool
}

// CharLiteral is a single character.
type CharLiteral struct {
	Token token.Token
	Value rune
}

// RawString is a string literal taken as written.
type RawString struct {
	Token token.Token
	Value string
}

// VerbatimString is a string literal whose escapes are not processed.
type VerbatimString struct {
	Token token.Token
	Value string
}

// InterpolatedString is a sequence of literal segments (*RawString) and
// spliced expressions.
type InterpolatedString struct {
	Token token.Token
	Parts []Expr
}

func (*Integer) exprNode()            {}
func (*Long) exprNode()               {}
func (*Int128) exprNode()             {}
func (*UInt128) exprNode()            {}
func (*Float) exprNode()              {}
func (*Boolean) exprNode()            {}
func (*CharLiteral) exprNode()        {}
func (*RawString) exprNode()          {}
func (*VerbatimString) exprNode()     {}
func (*InterpolatedString) exprNode() {}

func (i *Integer) Coalescion() Coalescion { return i.Suffix.Kind }
func (l *Long) Coalescion() Coalescion    { return l.Suffix.Kind }
func (i *Int128) Coalescion() Coalescion  { return i.Suffix.Kind }
func (u *UInt128) Coalescion() Coalescion { return u.Suffix.Kind }
func (f *Float) Coalescion() Coalescion   { return f.Suffix.Kind }

func (i *Integer) TokenLiteral() string            { return i.Token.Literal }
func (l *Long) TokenLiteral() string               { return l.Token.Literal }
func (i *Int128) TokenLiteral() string             { return i.Token.Literal }
func (u *UInt128) TokenLiteral() string            { return u.Token.Literal }
func (f *Float) TokenLiteral() string              { return f.Token.Literal }
func (b *Boolean) TokenLiteral() string            { return b.Token.Literal }
func (c *CharLiteral) TokenLiteral() string        { return c.Token.Literal }
func (r *RawString) TokenLiteral() string          { return r.Token.Literal }
func (v *VerbatimString) TokenLiteral() string     { return v.Token.Literal }
func (s *InterpolatedString) TokenLiteral() string { return s.Token.Literal }

func (i *Integer) Origin() token.Token            { return i.Token }
func (l *Long) Origin() token.Token               { return l.Token }
func (i *Int128) Origin() token.Token             { return i.Token }
func (u *UInt128) Origin() token.Token            { return u.Token }
func (f *Float) Origin() token.Token              { return f.Token }
func (b *Boolean) Origin() token.Token            { return b.Token }
func (c *CharLiteral) Origin() token.Token        { return c.Token }
func (r *RawString) Origin() token.Token          { return r.Token }
func (v *VerbatimString) Origin() token.Token     { return v.Token }
func (s *InterpolatedString) Origin() token.Token { return s.Token }

func (i *Integer) String() string { return i.Token.Literal + i.Suffix.Literal }
func (l *Long) String() string    { return l.Token.Literal + l.Suffix.Literal }
func (i *Int128) String() string  { return i.Token.Literal + i.Suffix.Literal }
func (u *UInt128) String() string { return u.Token.Literal + u.Suffix.Literal }
func (f *Float) String() string   { return f.Token.Literal + f.Suffix.Literal }
func (b *Boolean) String() string { return b.Token.Literal }

func (c *CharLiteral) String() string    { return "'" + string(c.Value) + "'" }
func (r *RawString) String() string      { return `"` + r.Value + `"` }
func (v *VerbatimString) String() string { return `@"` + v.Value + `"` }

func (s *InterpolatedString) String() string {
	var sb strings.Builder
	sb.WriteString(`$"`)
	for _, p := range s.Parts {
		if seg, ok := p.(*RawString); ok {
			sb.WriteString(seg.Value)
			continue
		}
		sb.WriteString("{" + exprString(p) + "}")
	}
	sb.WriteByte('"')
	return sb.String()
}

func (i *Integer) Dump() string {
	return numericDump(i.Token, strconv.FormatInt(int64(i.Value), 10), i.Suffix)
}

func (l *Long) Dump() string {
	return numericDump(l.Token, strconv.FormatInt(l.Value, 10), l.Suffix)
}

func (i *Int128) Dump() string {
	return numericDump(i.Token, bigString(i.Value), i.Suffix)
}

func (u *UInt128) Dump() string {
	return numericDump(u.Token, bigString(u.Value), u.Suffix)
}

func (f *Float) Dump() string {
	return numericDump(f.Token, strconv.FormatFloat(f.Value, 'g', -1, 64), f.Suffix)
}

func (b *Boolean) Dump() string {
	return render(tokenField(b.Token), scalarField("Value", strconv.FormatBool(b.Value)))
}

func (c *CharLiteral) Dump() string {
	return render(tokenField(c.Token), scalarField("Value", string(c.Value)))
}

func (r *RawString) Dump() string {
	return render(tokenField(r.Token), scalarField("Value", r.Value))
}

func (v *VerbatimString) Dump() string {
	return render(tokenField(v.Token), scalarField("Value", v.Value))
}

func (s *InterpolatedString) Dump() string {
	return render(tokenField(s.Token), listField("Parts", s.Parts))
}

func numericDump(tok token.Token, value string, suffix Suffix) string {
	return render(tokenField(tok), scalarField("Value", value), scalarField("Coalescion", suffix.Kind.String()))
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
