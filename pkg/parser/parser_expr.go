package parser

import (
	"github.com/janelang/shji/pkg/ast"
	"github.com/janelang/shji/pkg/token"
)

// Precedence is the binding power of an operator.
type Precedence int

// Precedence levels, lowest to highest.
const (
	LOWEST Precedence = iota
	EQUALS            // == != ?
	COMPARE           // < > <= >=
	BITWISE           // reserved
	SUM               // + - ~
	PRODUCT           // * /
	PREFIX            // -x !x ++x --x
	POWER             // ^
	CALL              // f(x) a[i] x++ x--
)

var precedences = map[token.TokenType]Precedence{
	token.EQ:        EQUALS,
	token.NOT_EQ:    EQUALS,
	token.QUESTION:  EQUALS,
	token.LT:        COMPARE,
	token.GT:        COMPARE,
	token.LTE:       COMPARE,
	token.GTE:       COMPARE,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.TILDE:     SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.HAT:       POWER,
	token.LPAREN:    CALL,
	token.LBRACKET:  CALL,
	token.INCREMENT: CALL,
	token.DECREMENT: CALL,
}

func precedenceOf(t token.TokenType) Precedence {
	if prec, ok := precedences[t]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) registerProductions() {
	p.unary = map[token.TokenType]unaryFn{
		token.IDENT:     p.parseIdentifier,
		token.INT:       p.parseNumber,
		token.TRUE:      p.parseBoolean,
		token.FALSE:     p.parseBoolean,
		token.ABYSS:     p.parseAbyss,
		token.BANG:      p.parsePrefix,
		token.MINUS:     p.parsePrefix,
		token.INCREMENT: p.parsePrefix,
		token.DECREMENT: p.parsePrefix,
		token.LPAREN:    p.parseGrouped,
		token.LBRACKET:  p.parseArrayLiteral,
		token.IF:        p.parseIf,
		token.LET:       p.parseLet,
	}

	p.binary = map[token.TokenType]binaryFn{
		token.PLUS:     p.parseInfix,
		token.MINUS:    p.parseInfix,
		token.ASTERISK: p.parseInfix,
		token.SLASH:    p.parseInfix,
		token.HAT:      p.parseInfix,
		token.TILDE:    p.parseInfix,
		token.EQ:       p.parseInfix,
		token.NOT_EQ:   p.parseInfix,
		token.LT:       p.parseInfix,
		token.GT:       p.parseInfix,
		token.LTE:      p.parseInfix,
		token.GTE:      p.parseInfix,
		token.LPAREN:   p.parseCall,
		token.LBRACKET: p.parseIndexing,
		token.QUESTION: p.parseTernary,
	}

	p.postfix = map[token.TokenType]postfixFn{
		token.INCREMENT: p.parsePostfix,
		token.DECREMENT: p.parsePostfix,
	}
}

// ---------- Precedence Climbing ----------

// parseExpression parses an expression whose operators bind tighter than
// minPrec. On return the current token is the last token of the expression.
func (p *Parser) parseExpression(minPrec Precedence) ast.Expr {
	unary, ok := p.unary[p.token.Type]
	if !ok {
		p.noUnaryError(p.token)
		return nil
	}
	left := unary()

	for left != nil && !p.peek.Type.IsTerminator() && minPrec < precedenceOf(p.peek.Type) {
		if binary, ok := p.binary[p.peek.Type]; ok {
			p.advance(false)
			left = binary(left)
			continue
		}
		if postfix, ok := p.postfix[p.peek.Type]; ok {
			p.advance(false)
			return postfix(left)
		}
		break
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	expr := &ast.Prefix{Token: p.token, Operator: p.token.Literal}
	p.advance(true)
	expr.Right = p.parseExpression(PREFIX)
	if expr.Right == nil {
		return nil
	}
	return expr
}

// parseInfix reads the right operand at the operator's own precedence, so
// operators of equal precedence associate to the left.
func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	expr := &ast.Infix{Token: p.token, Operator: p.token.Literal, Left: left}
	prec := precedenceOf(p.token.Type)
	p.advance(true)
	expr.Right = p.parseExpression(prec)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parsePostfix(left ast.Expr) ast.Expr {
	return &ast.Postfix{Token: p.token, Operator: p.token.Literal, Left: left}
}

func (p *Parser) parseGrouped() ast.Expr {
	p.advance(true)
	expr := p.parseExpression(LOWEST)
	if expr == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

// ---------- Names ----------

// parseIdentifier parses a name, or an assignment when the name is followed
// by "=".
func (p *Parser) parseIdentifier() ast.Expr {
	ident := &ast.Identifier{Token: p.token, Value: p.token.Literal}
	if !p.checkPeek(token.ASSIGN) {
		return ident
	}
	p.advance(false)
	assign := &ast.Assignment{Token: p.token, Name: ident}
	p.advance(true)
	assign.Value = p.parseExpression(LOWEST)
	if assign.Value == nil {
		return nil
	}
	return assign
}

// parseTypedIdentifier parses `name [: Type]` with the name as the current
// token.
func (p *Parser) parseTypedIdentifier() *ast.Identifier {
	ident := &ast.Identifier{Token: p.token, Value: p.token.Literal}
	if !p.checkPeek(token.COLON) {
		return ident
	}
	p.advance(false)
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	ident.Type = &ast.Identifier{Token: p.token, Value: p.token.Literal}
	return ident
}

// parseLet parses `let name [: Type] [= value]`.
func (p *Parser) parseLet() ast.Expr {
	let := &ast.Let{Token: p.token}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	let.Name = p.parseTypedIdentifier()
	if let.Name == nil {
		return nil
	}
	if !p.checkPeek(token.ASSIGN) {
		return let
	}
	p.advance(false)
	p.advance(true)
	let.Value = p.parseExpression(LOWEST)
	if let.Value == nil {
		return nil
	}
	return let
}

// ---------- Calls and Collections ----------

func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	call := &ast.Call{Token: p.token, Function: callee}
	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	call.Arguments = args
	return call
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	arr := &ast.ArrayLiteral{Token: p.token}
	elems, ok := p.parseExpressionList(token.RBRACKET)
	if !ok {
		return nil
	}
	arr.Elements = elems
	return arr
}

// parseExpressionList parses a comma-separated list with the opening
// delimiter as the current token, ending on the closing one.
func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expr, bool) {
	p.skipPeekEOL()
	if p.checkPeek(end) {
		p.advance(false)
		return []ast.Expr{}, true
	}

	var list []ast.Expr
	for {
		p.advance(true)
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil, false
		}
		list = append(list, elem)
		p.skipPeekEOL()
		if !p.checkPeek(token.COMMA) {
			break
		}
		p.advance(false)
	}
	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}

// skipPeekEOL drops line breaks sitting in the lookahead slot. Used inside
// delimited lists where a line break cannot end anything.
func (p *Parser) skipPeekEOL() {
	for p.checkPeek(token.EOL) {
		p.peek = p.tokenizer.NextToken()
	}
}

func (p *Parser) parseIndexing(target ast.Expr) ast.Expr {
	idx := &ast.Indexing{Token: p.token, Target: target}
	p.advance(true)
	idx.Index = p.parseExpression(LOWEST)
	if idx.Index == nil || !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return idx
}

func (p *Parser) parseTernary(cond ast.Expr) ast.Expr {
	expr := &ast.Ternary{Token: p.token, Condition: cond}
	p.advance(true)
	expr.IfTrue = p.parseExpression(LOWEST)
	if expr.IfTrue == nil || !p.expectPeek(token.COLON) {
		return nil
	}
	p.advance(true)
	expr.IfFalse = p.parseExpression(LOWEST)
	if expr.IfFalse == nil {
		return nil
	}
	return expr
}

// ---------- Conditionals ----------

// parseIf parses `if cond body [else body]`. The condition may be wrapped in
// parentheses and each body may be a brace block; when neither framing is
// present the input is ambiguous, so a diagnostic is recorded and a single
// statement is taken as the body.
func (p *Parser) parseIf() ast.Expr {
	expr := &ast.If{Token: p.token}

	parenthesized := p.checkPeek(token.LPAREN)
	p.advance(true)
	expr.Condition = p.parseExpression(LOWEST)
	if expr.Condition == nil {
		return nil
	}

	if p.checkPeek(token.LBRACE) {
		p.advance(false)
		expr.Consequence = p.parseBlock()
		if expr.Consequence == nil {
			return nil
		}
	} else {
		if !parenthesized {
			p.addError(AmbiguousIf, expr.Token, ErrAmbiguousIf)
		}
		p.advance(true)
		expr.Consequence = p.parseSingleStatementBlock()
		if expr.Consequence == nil {
			return nil
		}
	}

	if !p.checkPeek(token.ELSE) {
		return expr
	}
	p.advance(false)
	if p.checkPeek(token.LBRACE) {
		p.advance(false)
		expr.Alternative = p.parseBlock()
		return expr
	}
	// An else with nothing usable after it on the same line has no alternate.
	if !p.startsStatement(p.peek.Type) {
		return expr
	}
	p.advance(false)
	expr.Alternative = p.parseSingleStatementBlock()
	return expr
}

// startsStatement reports whether a statement can begin with t.
func (p *Parser) startsStatement(t token.TokenType) bool {
	switch t {
	case token.RETURN, token.FUNCTION, token.FOR:
		return true
	}
	_, ok := p.unary[t]
	return ok
}
