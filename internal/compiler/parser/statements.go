package parser

import (
	"github.com/btouchard/zivc/internal/compiler/ast"
	"github.com/btouchard/zivc/internal/compiler/token"
)

// parseStatement dispatches on the current token per the statement
// grammar: declarations, control flow, loops, match, return, or a
// bare expression statement.
func (p *Parser) parseStatement() ast.Node {
	switch p.cur().Kind {
	case token.Let, token.Mut, token.Const:
		return p.parseVariableDecl()
	case token.If:
		return p.parseIfStmt()
	case token.While:
		return p.parseWhileStmt()
	case token.Do:
		return p.parseDoWhileStmt()
	case token.For:
		return p.parseForStmt()
	case token.Match:
		return p.parseMatchStmt()
	case token.Return:
		return p.parseReturnStmt()
	case token.Break:
		tok := p.advance()
		n := p.tree.AddNode(ast.BreakStmt, tok)
		p.expect(token.Semicolon, "expected ';' after 'break'")
		return n
	case token.Continue:
		tok := p.advance()
		n := p.tree.AddNode(ast.ContinueStmt, tok)
		p.expect(token.Semicolon, "expected ';' after 'continue'")
		return n
	case token.LBrace:
		return p.parseBlock()
	case token.Identifier:
		if p.cur().Text() == "ret" {
			return p.parseLegacyRet()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseLegacyRet handles the bare identifier "ret" in statement
// position. It isn't a keyword, but a statement starting with it is
// never a meaningful expression statement on its own (nothing calls
// or assigns through a dangling "ret"), so it's almost certainly a
// typo for "return" rather than a real identifier use.
func (p *Parser) parseLegacyRet() ast.Node {
	tok := p.advance()
	p.errorHere("'return'", tok.Text())
	n := p.errorNode(ast.Node(0), tok)
	p.synchronize()
	return n
}

// parseBlock: `{ stmts }`, or the indentation-sensitive equivalent the
// lexer produces for a colon-introduced body (`Indent stmts Dedent`).
// Neither opener present emits UnexpectedToken and returns Invalid.
func (p *Parser) parseBlock() ast.Node {
	if p.curIs(token.Indent) {
		return p.parseIndentedBlock()
	}

	start, ok := p.expect(token.LBrace, "expected '{' to start block")
	if !ok {
		return p.tree.AddNode(ast.Invalid, p.cur())
	}
	block := p.tree.AddNode(ast.CodeBlock, start)

	for !p.curIs(token.RBrace) && !p.curIs(token.Eof) {
		if p.consumeMatch(token.Semicolon) {
			continue
		}
		stmt := p.parseStatement()
		if stmt.IsValid() {
			p.tree.AddChild(block, stmt)
		}
	}

	p.expect(token.RBrace, "expected '}' to close block")
	return block
}

func (p *Parser) parseIndentedBlock() ast.Node {
	start := p.advance() // Indent
	block := p.tree.AddNode(ast.CodeBlock, start)

	for !p.curIs(token.Dedent) && !p.curIs(token.Eof) {
		if p.consumeMatch(token.Semicolon) {
			continue
		}
		stmt := p.parseStatement()
		if stmt.IsValid() {
			p.tree.AddChild(block, stmt)
		}
	}

	p.expect(token.Dedent, "expected a dedent to close this block")
	return block
}

// parseIfStmt: `if (Cond | ( Cond )) Block (else (if … | Block))?`.
func (p *Parser) parseIfStmt() ast.Node {
	start := p.advance() // 'if'
	n := p.tree.AddNode(ast.IfStmt, start)

	parenthesised := p.consumeMatch(token.LParen)
	cond := p.parseExpression(precAssignment)
	p.tree.AddChild(n, cond)
	if parenthesised {
		p.expect(token.RParen, "expected ')' after condition")
	}

	body := p.parseBlock()
	p.tree.AddChild(n, body)

	if p.consumeMatch(token.Else) {
		elseTok := p.tokens.At(p.pos - 1)
		branch := p.tree.AddNode(ast.ElseBranch, elseTok)
		if p.curIs(token.If) {
			inner := p.parseIfStmt()
			p.tree.AddChild(branch, inner)
		} else {
			inner := p.parseBlock()
			p.tree.AddChild(branch, inner)
		}
		p.tree.AddChild(n, branch)
	}

	return n
}

// parseWhileStmt: `while Cond Block`.
func (p *Parser) parseWhileStmt() ast.Node {
	start := p.advance() // 'while'
	n := p.tree.AddNode(ast.WhileStmt, start)

	parenthesised := p.consumeMatch(token.LParen)
	cond := p.parseExpression(precAssignment)
	p.tree.AddChild(n, cond)
	if parenthesised {
		p.expect(token.RParen, "expected ')' after condition")
	}

	body := p.parseBlock()
	p.tree.AddChild(n, body)
	return n
}

// parseDoWhileStmt: `do Block while Cond`.
func (p *Parser) parseDoWhileStmt() ast.Node {
	start := p.advance() // 'do'
	n := p.tree.AddNode(ast.DoWhileStmt, start)

	body := p.parseBlock()
	p.tree.AddChild(n, body)

	p.expect(token.While, "expected 'while' after do-block")
	parenthesised := p.consumeMatch(token.LParen)
	cond := p.parseExpression(precAssignment)
	p.tree.AddChild(n, cond)
	if parenthesised {
		p.expect(token.RParen, "expected ')' after condition")
	}
	p.expect(token.Semicolon, "expected ';' after do-while condition")
	return n
}

// parseForStmt: `for initialiser ; condition ; step block`.
func (p *Parser) parseForStmt() ast.Node {
	start := p.advance() // 'for'
	n := p.tree.AddNode(ast.ForStmt, start)

	init := p.parseStatement() // variable decl or expr-stmt, consumes trailing ';'
	p.tree.AddChild(n, init)

	cond := p.parseExpression(precAssignment)
	p.tree.AddChild(n, cond)
	p.expect(token.Semicolon, "expected ';' after loop condition")

	step := p.parseExpression(precAssignment)
	p.tree.AddChild(n, step)

	body := p.parseBlock()
	p.tree.AddChild(n, body)
	return n
}

// parseMatchStmt: `match Expr (case Pattern Block)* end`.
func (p *Parser) parseMatchStmt() ast.Node {
	start := p.advance() // 'match'
	n := p.tree.AddNode(ast.MatchStmt, start)

	subject := p.parseExpression(precAssignment)
	p.tree.AddChild(n, subject)

	for p.curIs(token.Case) {
		caseTok := p.advance()
		caseNode := p.tree.AddNode(ast.MatchCase, caseTok)
		pattern := p.parseExpression(precAssignment)
		p.tree.AddChild(caseNode, pattern)
		body := p.parseBlock()
		p.tree.AddChild(caseNode, body)
		p.tree.AddChild(n, caseNode)
	}

	p.expect(token.End, "expected 'end' to close match")
	return n
}

// parseReturnStmt: `return [Expr] ;`.
func (p *Parser) parseReturnStmt() ast.Node {
	start := p.advance() // 'return'
	n := p.tree.AddNode(ast.ReturnStmt, start)

	if !p.curIs(token.Semicolon) {
		value := p.parseExpression(precAssignment)
		p.tree.AddChild(n, value)
	}
	p.expect(token.Semicolon, "expected ';' after return statement")
	return n
}

// parseExprStmt parses an expression followed by ';'. On a parse
// failure it emits the diagnostic, produces an Error node, and
// synchronises before returning.
func (p *Parser) parseExprStmt() ast.Node {
	startPos := p.pos
	expr := p.parseExpression(precAssignment)

	if !expr.IsValid() || p.tree.HasError(expr) {
		if p.pos == startPos {
			// parseExpression made no progress; force it so callers
			// never spin.
			p.advance()
		}
		p.synchronize()
		return expr
	}

	n := p.tree.AddNode(ast.ExprStmt, p.tree.Token(expr))
	p.tree.AddChild(n, expr)
	p.expect(token.Semicolon, "expected ';' after expression")
	return n
}
