// Package parser implements a recursive-descent parser with a
// Pratt/precedence-climbing expression sub-parser. It consumes a
// token buffer produced by the lexer and builds a flat AST.
package parser

import (
	"github.com/btouchard/zivc/internal/compiler/ast"
	"github.com/btouchard/zivc/internal/compiler/diagnostics"
	"github.com/btouchard/zivc/internal/compiler/source"
	"github.com/btouchard/zivc/internal/compiler/token"
)

// recoveryAnchors are the keywords synchronize() stops in front of
// after a syntax error, so parsing can resume at the next plausible
// top-level or statement boundary.
var recoveryAnchors = map[token.Kind]bool{
	token.Fn:     true,
	token.Let:    true,
	token.Mut:    true,
	token.Const:  true,
	token.If:     true,
	token.While:  true,
	token.Return: true,
	token.Module: true,
}

// Parser walks a token buffer with a single lookahead index and
// builds nodes into tree.
type Parser struct {
	tokens *token.Buffer
	pos    int
	tree   *ast.Tree
	emit   *diagnostics.Emitter

	// family records, for an already-built additive-level subtree, which
	// operator family (arithmetic or bitwise) it was built from, so the
	// comparison level above can detect an unparenthesised mix.
	family map[ast.Node]exprFamily
}

// New returns a Parser over tokens, reporting syntax diagnostics
// through emit and building nodes into a freshly created tree.
func New(tokens *token.Buffer, emit *diagnostics.Emitter) *Parser {
	p := &Parser{tokens: tokens, tree: ast.NewTree(), emit: emit, family: make(map[ast.Node]exprFamily)}
	// Skip the leading SOF; the parser works from the first real token.
	if p.cur().Kind == token.Sof {
		p.pos++
	}
	return p
}

func (p *Parser) Tree() *ast.Tree { return p.tree }

func (p *Parser) cur() token.Token  { return p.tokens.At(p.pos) }
func (p *Parser) peek() token.Token { return p.tokens.At(p.pos + 1) }

func (p *Parser) curIs(k token.Kind) bool  { return p.cur().Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if tok.Kind != token.Eof {
		p.pos++
	}
	return tok
}

// consumeMatch consumes and returns true only if the current token
// matches kind.
func (p *Parser) consumeMatch(kind token.Kind) bool {
	if p.curIs(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches kind. Otherwise it
// emits UnexpectedToken with message and the observed token's
// spelling, and does not consume.
func (p *Parser) expect(kind token.Kind, message string) (token.Token, bool) {
	if p.curIs(kind) {
		return p.advance(), true
	}
	p.errorHere(message, p.cur().Text())
	return token.Token{}, false
}

func (p *Parser) errorHere(message, observed string) {
	p.emit.Emit(diagnostics.UnexpectedToken, p.location(p.cur()), observed, message)
}

func (p *Parser) location(tok token.Token) source.Location {
	return source.Location{File: tok.Filename, Line: tok.Line, Column: tok.Column}
}

// errorNode appends an Error node anchored at tok, marks it in error
// (propagating upward), and links it under parent if parent is valid.
func (p *Parser) errorNode(parent ast.Node, tok token.Token) ast.Node {
	n := p.tree.AddNode(ast.ErrorNode, tok)
	p.tree.MarkError(n)
	if parent.IsValid() {
		p.tree.AddChild(parent, n)
	}
	return n
}

// synchronize implements panic-mode recovery: consume tokens until
// the last consumed token is ';' or '}', or the next token begins a
// known recovery anchor.
func (p *Parser) synchronize() {
	for !p.curIs(token.Eof) {
		if recoveryAnchors[p.cur().Kind] {
			return
		}
		tok := p.advance()
		if tok.Kind == token.Semicolon || tok.Kind == token.RBrace {
			return
		}
	}
}

// Parse runs the top-level production: FileStart, zero or more
// top-level nodes, FileEnd.
func Parse(tokens *token.Buffer, emit *diagnostics.Emitter) *ast.Tree {
	p := New(tokens, emit)

	root := p.tree.AddNode(ast.FileStart, p.cur())

	for !p.curIs(token.Eof) {
		if p.consumeMatch(token.Semicolon) {
			continue
		}
		node := p.parseTopLevel()
		if node.IsValid() {
			p.tree.AddChild(root, node)
		}
	}

	end := p.tree.AddNode(ast.FileEnd, p.cur())
	p.tree.AddChild(root, end)

	return p.tree
}

func (p *Parser) parseTopLevel() ast.Node {
	switch p.cur().Kind {
	case token.Module:
		return p.parseModuleDecl()
	case token.Import:
		return p.parseImport()
	case token.Fn:
		return p.parseFunctionDecl()
	case token.Let, token.Mut, token.Const:
		return p.parseVariableDecl()
	case token.If:
		return p.parseIfStmt()
	default:
		return p.parseIdentifierLed()
	}
}

// parseIdentifierLed covers the "anything else" branch of top-level
// dispatch: an expression statement or, on failure, the error-marked
// expression parseExprStmt returns after synchronizing. At EOF it
// returns the sentinel handle.
func (p *Parser) parseIdentifierLed() ast.Node {
	if p.curIs(token.Eof) {
		return ast.Node(0)
	}
	return p.parseExprStmt()
}
