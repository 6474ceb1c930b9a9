package parser

import (
	"github.com/btouchard/zivc/internal/compiler/ast"
	"github.com/btouchard/zivc/internal/compiler/diagnostics"
	"github.com/btouchard/zivc/internal/compiler/token"
)

// precedence level tags, used only to select an entry point into the
// explicit per-level descent below; the levels themselves are encoded
// structurally (each function calls the next tighter-binding one),
// per the design note preferring explicit cascades as the
// correctness fallback for the non-associative levels.
const (
	precAssignment = iota
	precOr
	precAnd
	precEquality
	precComparison
	precAdditive
	precMultiplicative
	precUnary
)

// parseExpression is the single entry point the statement grammar
// calls. min is ignored: parsing always starts at the assignment
// level, and every caller in this parser passes precAssignment.
func (p *Parser) parseExpression(min int) ast.Node {
	return p.parseAssignment()
}

// parseAssignment: `=`, right-associative.
func (p *Parser) parseAssignment() ast.Node {
	left := p.parseOr()

	if p.curIs(token.Assign) {
		op := p.advance()
		right := p.parseAssignment()
		n := p.tree.AddNode(ast.AssignExpr, op)
		p.tree.AddChild(n, left)
		p.tree.AddChild(n, right)
		return n
	}
	return left
}

// parseOr: `or`, left-associative.
func (p *Parser) parseOr() ast.Node {
	left := p.parseAnd()
	for p.curIs(token.Or) {
		op := p.advance()
		right := p.parseAnd()
		left = p.makeBinary(op, left, right)
	}
	return left
}

// parseAnd: `and`, left-associative.
func (p *Parser) parseAnd() ast.Node {
	left := p.parseEquality()
	for p.curIs(token.And) {
		op := p.advance()
		right := p.parseEquality()
		left = p.makeBinary(op, left, right)
	}
	return left
}

// parseEquality: `==`, `!=`, non-associative. A second equality
// operator chained directly (`a == b == c`) is ambiguous.
func (p *Parser) parseEquality() ast.Node {
	left := p.parseComparison()
	if !isEqualityOp(p.cur().Kind) {
		return left
	}
	op := p.advance()
	right := p.parseComparison()
	result := p.makeBinary(op, left, right)

	if isEqualityOp(p.cur().Kind) {
		return p.ambiguousChain(result, "chained equality comparisons require parentheses")
	}
	return result
}

// parseComparison: `<`, `<=`, `>`, `>=`, non-associative.
func (p *Parser) parseComparison() ast.Node {
	left := p.parseAdditive()
	if !isComparisonOp(p.cur().Kind) {
		return left
	}
	if p.family[left] == bitwiseFamily {
		return p.ambiguousChain(left, "mixing bitwise and comparison operators requires parentheses")
	}
	op := p.advance()
	right := p.parseAdditive()
	if p.family[right] == bitwiseFamily {
		return p.ambiguousChain(right, "mixing bitwise and comparison operators requires parentheses")
	}
	result := p.makeBinary(op, left, right)

	if isComparisonOp(p.cur().Kind) {
		return p.ambiguousChain(result, "chained comparisons require parentheses")
	}
	return result
}

func isEqualityOp(k token.Kind) bool   { return k == token.Eq || k == token.NotEq }
func isComparisonOp(k token.Kind) bool { return k == token.Lt || k == token.LtEq || k == token.Gt || k == token.GtEq }

// exprFamily distinguishes the two operator families that may not mix
// without explicit parentheses.
type exprFamily uint8

const (
	noFamily exprFamily = iota
	arithFamily
	bitwiseFamily
)

func isBitwiseOp(k token.Kind) bool {
	return k == token.BitOr || k == token.BitAnd || k == token.BitXor
}
func isArithOp(k token.Kind) bool {
	return k == token.Plus || k == token.Minus
}

// parseAdditive: `+`, `-`, left-associative, plus the bitwise
// operators `|`, `&`, `^` (not separately leveled by the spec).
// Mixing the two families in one unparenthesised chain is ambiguous.
func (p *Parser) parseAdditive() ast.Node {
	left := p.parseMultiplicative()
	family := noFamily

	for {
		kind := p.cur().Kind
		switch {
		case isArithOp(kind):
			if family == bitwiseFamily {
				return p.ambiguousChain(left, "mixing arithmetic and bitwise operators requires parentheses")
			}
			family = arithFamily
		case isBitwiseOp(kind):
			if family == arithFamily {
				return p.ambiguousChain(left, "mixing arithmetic and bitwise operators requires parentheses")
			}
			family = bitwiseFamily
		default:
			if family == bitwiseFamily {
				p.family[left] = bitwiseFamily
			}
			return left
		}
		op := p.advance()
		right := p.parseMultiplicative()
		left = p.makeBinary(op, left, right)
	}
}

// parseMultiplicative: `*`, `/`, `%`, left-associative.
func (p *Parser) parseMultiplicative() ast.Node {
	left := p.parseUnary()
	for {
		kind := p.cur().Kind
		if kind != token.Star && kind != token.Slash && kind != token.Percent {
			return left
		}
		op := p.advance()
		right := p.parseUnary()
		left = p.makeBinary(op, left, right)
	}
}

// parseUnary: `-`, `not`, `~`, right-associative prefix operators.
func (p *Parser) parseUnary() ast.Node {
	switch p.cur().Kind {
	case token.Minus, token.Not, token.BitNot:
		op := p.advance()
		operand := p.parseUnary()
		n := p.tree.AddNode(ast.UnaryExpr, op)
		p.tree.AddChild(n, operand)
		return n
	default:
		return p.parsePostfix()
	}
}

// parsePostfix handles trailing `++`/`--` and `(...)` call syntax
// layered onto a primary expression.
func (p *Parser) parsePostfix() ast.Node {
	expr := p.parsePrimary()

	for {
		switch p.cur().Kind {
		case token.LParen:
			expr = p.parseCallArgs(expr)
		case token.Increment, token.Decrement:
			op := p.advance()
			n := p.tree.AddNode(ast.UnaryExpr, op)
			p.tree.AddChild(n, expr)
			expr = n
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs(callee ast.Node) ast.Node {
	start := p.advance() // '('
	call := p.tree.AddNode(ast.FunctionCall, start)
	p.tree.AddChild(call, callee)

	args := p.tree.AddNode(ast.ArgList, start)
	for !p.curIs(token.RParen) && !p.curIs(token.Eof) {
		arg := p.parseAssignment()
		p.tree.AddChild(args, arg)
		if !p.consumeMatch(token.Comma) {
			break
		}
	}
	p.tree.AddChild(call, args)

	p.expect(token.RParen, "expected ')' to close argument list")
	return call
}

// parsePrimary: literals, identifiers (with optional call), and
// parenthesised sub-expressions. Anything else becomes an Error node.
func (p *Parser) parsePrimary() ast.Node {
	tok := p.cur()
	switch tok.Kind {
	case token.IntLiteral, token.FloatLiteral, token.StringLiteral, token.CharLiteral, token.True, token.False:
		p.advance()
		return p.tree.AddNode(ast.LiteralExpr, tok)
	case token.Identifier:
		p.advance()
		return p.tree.AddNode(ast.IdentifierExpr, tok)
	case token.LParen:
		p.advance()
		inner := p.parseAssignment()
		p.expect(token.RParen, "expected ')' to close parenthesised expression")
		delete(p.family, inner) // parentheses disambiguate the enclosed expression
		return inner
	default:
		p.errorHere("expected expression", tok.Text())
		p.advance() // always make progress, even at EOF-adjacent malformed input
		n := p.errorNode(ast.Node(0), tok)
		return n
	}
}

func (p *Parser) makeBinary(op token.Token, left, right ast.Node) ast.Node {
	n := p.tree.AddNode(ast.BinaryExpr, op)
	p.tree.AddChild(n, left)
	p.tree.AddChild(n, right)
	return n
}

// ambiguousChain reports an Ambiguous diagnostic anchored at the
// already-parsed subtree's token, produces an Error node wrapping it,
// and returns that node so the caller's result is still well-formed.
func (p *Parser) ambiguousChain(subtree ast.Node, detail string) ast.Node {
	tok := p.tree.Token(subtree)
	p.emit.Emit(diagnostics.Ambiguous, p.location(tok), detail)
	n := p.errorNode(ast.Node(0), tok)
	p.tree.AddChild(n, subtree)
	return n
}
