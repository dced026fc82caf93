package parser

import (
	"github.com/janelang/shji/pkg/ast"
	"github.com/janelang/shji/pkg/token"
)

// parseStatement parses one statement and steps onto its trailing
// terminator, if there is one.
func (p *Parser) parseStatement() ast.Stmt {
	stmt := p.parseStatementBody()
	if stmt != nil {
		p.consumeTerminator()
	}
	return stmt
}

// parseStatementBody parses one statement and leaves the current token on
// its last token.
func (p *Parser) parseStatementBody() ast.Stmt {
	switch p.token.Type {
	case token.RETURN:
		return p.parseReturn()
	case token.FUNCTION:
		return p.parseFunctionLiteral()
	case token.FOR:
		return p.parseForLoop()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Stmt {
	stmt := &ast.ExpressionStatement{Token: p.token}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	return stmt
}

// parseReturn parses `return [value]`. A return followed by anything that
// cannot start an expression carries no value.
func (p *Parser) parseReturn() ast.Stmt {
	stmt := &ast.Return{Token: p.token}
	if _, ok := p.unary[p.peek.Type]; !ok {
		return stmt
	}
	p.advance(true)
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

// ---------- Blocks ----------

// parseBlock parses `{ statements }` with "{" as the current token and
// ends on the matching "}".
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.token, Statements: []ast.Stmt{}}
	p.advance(true)
	for !p.check(token.RBRACE) {
		if p.check(token.EOF) {
			p.addError(UnexpectedToken, p.token, ErrUnterminatedBlock)
			return nil
		}
		if p.token.Type.IsTerminator() {
			p.advance(true)
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.synchronize()
		}
		p.advance(true)
	}
	return block
}

// parseSingleStatementBlock wraps the statement at the current token in a
// block of its own.
func (p *Parser) parseSingleStatementBlock() *ast.Block {
	block := &ast.Block{Token: p.token}
	stmt := p.parseStatementBody()
	if stmt == nil {
		return nil
	}
	block.Statements = []ast.Stmt{stmt}
	return block
}

// ---------- Functions ----------

// parseFunctionLiteral parses
//
//	fn [-abc] [--long] name(a: T, b) [-> R] => expr
//	fn [-abc] [--long] name(a: T, b) [-> R] { ... }
//
// Short flags contribute one flag per letter. Any missing mandatory piece
// fails the whole literal.
func (p *Parser) parseFunctionLiteral() ast.Stmt {
	fn := &ast.FunctionLiteral{Token: p.token}

	seen := make(map[string]bool)
	addFlag := func(flag string) {
		if !seen[flag] {
			seen[flag] = true
			fn.Flags = append(fn.Flags, flag)
		}
	}
	for p.checkPeek(token.MINUS) || p.checkPeek(token.DECREMENT) {
		p.advance(false)
		long := p.check(token.DECREMENT)
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		if long {
			addFlag(p.token.Literal)
			continue
		}
		for _, r := range p.token.Literal {
			addFlag(string(r))
		}
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Name = &ast.Identifier{Token: p.token, Value: p.token.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseParameters()
	if !ok {
		return nil
	}
	fn.Parameters = params

	if p.checkPeek(token.SINGLE_ARROW) {
		p.advance(false)
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		fn.ReturnType = &ast.Identifier{Token: p.token, Value: p.token.Literal}
	}

	switch {
	case p.checkPeek(token.DOUBLE_ARROW):
		p.advance(false)
		p.advance(true)
		body := &ast.Block{Token: p.token}
		stmt := p.parseExpressionStatement()
		if stmt == nil {
			return nil
		}
		body.Statements = []ast.Stmt{stmt}
		fn.Body = body
	case p.checkPeek(token.LBRACE):
		p.advance(false)
		fn.Body = p.parseBlock()
		if fn.Body == nil {
			return nil
		}
	default:
		p.peekError(token.LBRACE)
		return nil
	}
	return fn
}

// parseParameters parses `(a: T, b)` with "(" as the current token.
func (p *Parser) parseParameters() ([]*ast.Identifier, bool) {
	params := []*ast.Identifier{}
	p.skipPeekEOL()
	if p.checkPeek(token.RPAREN) {
		p.advance(false)
		return params, true
	}

	for {
		p.skipPeekEOL()
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		param := p.parseTypedIdentifier()
		if param == nil {
			return nil, false
		}
		params = append(params, param)
		p.skipPeekEOL()
		if !p.checkPeek(token.COMMA) {
			break
		}
		p.advance(false)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return params, true
}

// ---------- Loops ----------

// parseForLoop parses `for name in expr { ... }`.
func (p *Parser) parseForLoop() ast.Stmt {
	loop := &ast.ForLoop{Token: p.token}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	loop.Iterator = &ast.Identifier{Token: p.token, Value: p.token.Literal}
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.advance(true)
	loop.Enumerable = p.parseExpression(LOWEST)
	if loop.Enumerable == nil {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	loop.Body = p.parseBlock()
	if loop.Body == nil {
		return nil
	}
	return loop
}
