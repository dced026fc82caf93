package parser

import (
	"math"
	"math/big"

	"github.com/janelang/shji/pkg/ast"
	"github.com/janelang/shji/pkg/token"
)

var (
	maxInt128  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	maxUInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// ErrUnknownSuffix is reported for an identifier glued to a number that is
// not a known literal suffix.
const ErrUnknownSuffix = "unknown numeric literal suffix %q"

// parseNumber classifies a digit run by magnitude into the narrowest of
// Integer, Long, Int128 and UInt128, falling back to Float, and attaches an
// immediately following literal suffix.
func (p *Parser) parseNumber() ast.Expr {
	tok := p.token
	suffix, ok := p.parseSuffix(tok)
	if !ok {
		return nil
	}

	n, ok := new(big.Int).SetString(tok.Literal, 10)
	if !ok {
		p.addError(UnexpectedToken, tok, ErrUnexpectedToken, token.INT, tok.Type)
		return nil
	}

	switch {
	case n.IsInt64() && n.Int64() <= math.MaxInt32:
		return &ast.Integer{Token: tok, Value: int32(n.Int64()), Suffix: suffix}
	case n.IsInt64():
		return &ast.Long{Token: tok, Value: n.Int64(), Suffix: suffix}
	case n.Cmp(maxInt128) <= 0:
		return &ast.Int128{Token: tok, Value: n, Suffix: suffix}
	case n.Cmp(maxUInt128) <= 0:
		return &ast.UInt128{Token: tok, Value: n, Suffix: suffix}
	default:
		f, _ := new(big.Float).SetInt(n).Float64()
		return &ast.Float{Token: tok, Value: f, Suffix: suffix}
	}
}

// parseSuffix consumes an identifier that directly follows the number,
// with no whitespace in between, as its literal suffix.
func (p *Parser) parseSuffix(num token.Token) (ast.Suffix, bool) {
	next := p.peek
	glued := next.Type == token.IDENT &&
		next.Pos.Line == num.Pos.Line &&
		next.Pos.Column == num.Pos.Column+len(num.Literal)
	if !glued {
		return ast.Suffix{}, true
	}
	kind, ok := ast.LookupCoalescion(next.Literal)
	if !ok {
		p.addError(UnexpectedToken, next, ErrUnknownSuffix, next.Literal)
		p.advance(false)
		return ast.Suffix{}, false
	}
	p.advance(false)
	return ast.Suffix{Kind: kind, Literal: next.Literal}, true
}

func (p *Parser) parseBoolean() ast.Expr {
	return &ast.Boolean{Token: p.token, Value: p.check(token.TRUE)}
}

func (p *Parser) parseAbyss() ast.Expr {
	return &ast.Abyss{Token: p.token}
}
