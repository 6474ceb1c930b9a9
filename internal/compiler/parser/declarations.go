package parser

import (
	"github.com/btouchard/zivc/internal/compiler/ast"
	"github.com/btouchard/zivc/internal/compiler/diagnostics"
	"github.com/btouchard/zivc/internal/compiler/token"
)

// parseModuleDecl: `module Ident <body> end module`. <body> is any
// sequence of top-level nodes.
func (p *Parser) parseModuleDecl() ast.Node {
	start := p.advance() // 'module'
	decl := p.tree.AddNode(ast.ModuleDecl, start)

	if name, ok := p.expect(token.Identifier, "expected module name"); ok {
		nameNode := p.tree.AddNode(ast.IdentifierExpr, name)
		p.tree.AddChild(decl, nameNode)
	}

	for !p.curIs(token.Eof) && !(p.curIs(token.End)) {
		if p.consumeMatch(token.Semicolon) {
			continue
		}
		child := p.parseTopLevel()
		if child.IsValid() {
			p.tree.AddChild(decl, child)
		}
	}

	if _, ok := p.expect(token.End, "expected 'end' to close module"); ok {
		p.expect(token.Module, "expected 'module' after 'end'")
	}

	return decl
}

// parseImport: `import Ident [as Ident] [{ Ident (, Ident)* }]`.
func (p *Parser) parseImport() ast.Node {
	start := p.advance() // 'import'
	decl := p.tree.AddNode(ast.Import, start)

	if name, ok := p.expect(token.Identifier, "expected import path"); ok {
		nameNode := p.tree.AddNode(ast.IdentifierExpr, name)
		p.tree.AddChild(decl, nameNode)
	}

	if p.consumeMatch(token.As) {
		if alias, ok := p.expect(token.Identifier, "expected alias after 'as'"); ok {
			aliasNode := p.tree.AddNode(ast.IdentifierExpr, alias)
			p.tree.AddChild(decl, aliasNode)
		}
	}

	if p.consumeMatch(token.LBrace) {
		for !p.curIs(token.RBrace) && !p.curIs(token.Eof) {
			if member, ok := p.expect(token.Identifier, "expected imported member name"); ok {
				memberNode := p.tree.AddNode(ast.IdentifierExpr, member)
				p.tree.AddChild(decl, memberNode)
			}
			if !p.consumeMatch(token.Comma) {
				break
			}
		}
		p.expect(token.RBrace, "expected '}' to close import member list")
	}

	return decl
}

// parseFunctionDecl: `fn Ident [GenericParams] ParamList [-> Type] :
// Block`.
func (p *Parser) parseFunctionDecl() ast.Node {
	start := p.advance() // 'fn'
	decl := p.tree.AddNode(ast.FunctionDecl, start)

	if name, ok := p.expect(token.Identifier, "expected function name"); ok {
		nameNode := p.tree.AddNode(ast.FunctionName, name)
		p.tree.AddChild(decl, nameNode)
	} else {
		p.emit.Emit(diagnostics.FunctionMissingName, p.location(start))
		p.tree.MarkError(decl)
	}

	if p.curIs(token.LBracket) {
		generics := p.parseGenericParamList()
		p.tree.AddChild(decl, generics)
	}

	params := p.parseParameterList()
	p.tree.AddChild(decl, params)

	if p.consumeMatch(token.Arrow) {
		ret := p.tree.AddNode(ast.ReturnType, p.cur())
		typeSpec := p.parseTypeSpec()
		p.tree.AddChild(ret, typeSpec)
		p.tree.AddChild(decl, ret)
	}

	p.expect(token.Colon, "expected ':' before function body")
	body := p.parseBlock()
	p.tree.AddChild(decl, body)

	return decl
}

func (p *Parser) parseGenericParamList() ast.Node {
	start := p.advance() // '['
	list := p.tree.AddNode(ast.GenericParamList, start)

	for !p.curIs(token.RBracket) && !p.curIs(token.Eof) {
		paramTok, ok := p.expect(token.Identifier, "expected generic parameter name")
		if !ok {
			break
		}
		param := p.tree.AddNode(ast.GenericParam, paramTok)
		if p.consumeMatch(token.Colon) {
			if bound, ok := p.expect(token.Identifier, "expected trait bound"); ok {
				boundNode := p.tree.AddNode(ast.IdentifierExpr, bound)
				p.tree.AddChild(param, boundNode)
			}
		}
		p.tree.AddChild(list, param)
		if !p.consumeMatch(token.Comma) {
			break
		}
	}

	p.expect(token.RBracket, "expected ']' to close generic parameter list")
	return list
}

// parseParameterList: parenthesised, comma-separated parameters, each
// `[take | (mut ref) | ref]? Ident : Type`.
func (p *Parser) parseParameterList() ast.Node {
	start, ok := p.expect(token.LParen, "expected '(' to start parameter list")
	if !ok {
		return p.errorNode(ast.Node(0), p.cur())
	}
	list := p.tree.AddNode(ast.ParameterList, start)

	for !p.curIs(token.RParen) && !p.curIs(token.Eof) {
		param := p.parseParameter()
		if param.IsValid() {
			p.tree.AddChild(list, param)
		}
		if !p.consumeMatch(token.Comma) {
			break
		}
	}

	p.expect(token.RParen, "expected ')' to close parameter list")
	return list
}

func (p *Parser) parseParameter() ast.Node {
	modeTok := p.cur()
	switch modeTok.Kind {
	case token.Take:
		p.advance()
	case token.Mut:
		p.advance()
		p.consumeMatch(token.Ref)
	case token.Ref:
		p.advance()
	}

	nameTok, ok := p.expect(token.Identifier, "expected parameter name")
	if !ok {
		return p.errorNode(ast.Node(0), p.cur())
	}
	param := p.tree.AddNode(ast.Parameter, nameTok)

	p.expect(token.Colon, "expected ':' before parameter type")
	typeSpec := p.parseTypeSpec()
	p.tree.AddChild(param, typeSpec)

	return param
}

// parseTypeSpec: a primitive type keyword, optionally followed by a
// `< Type (, Type)* >` generic argument list.
func (p *Parser) parseTypeSpec() ast.Node {
	tok := p.cur()
	switch tok.Kind {
	case token.IntType, token.FloatType, token.BoolType, token.StringType, token.CharType, token.Identifier:
		p.advance()
	default:
		p.errorHere("expected a type", tok.Text())
		return p.errorNode(ast.Node(0), tok)
	}

	spec := p.tree.AddNode(ast.TypeSpec, tok)

	if p.consumeMatch(token.Lt) {
		for {
			arg := p.parseTypeSpec()
			p.tree.AddChild(spec, arg)
			if !p.consumeMatch(token.Comma) {
				break
			}
		}
		p.expect(token.Gt, "expected '>' to close generic argument list")
	}

	return spec
}

// parseVariableDecl: `(let|mut|const) Ident : Type = Expr ;`.
func (p *Parser) parseVariableDecl() ast.Node {
	start := p.advance() // let | mut | const
	decl := p.tree.AddNode(ast.VariableDecl, start)

	nameTok, ok := p.expect(token.Identifier, "expected variable name")
	if !ok {
		p.tree.MarkError(decl)
		p.synchronize()
		return decl
	}
	nameNode := p.tree.AddNode(ast.IdentifierExpr, nameTok)
	p.tree.AddChild(decl, nameNode)

	if !p.consumeMatch(token.Colon) {
		p.emit.Emit(diagnostics.VariableMissingType, p.location(nameTok), nameTok.Text())
		p.tree.MarkError(decl)
	} else {
		typeSpec := p.parseTypeSpec()
		p.tree.AddChild(decl, typeSpec)
	}

	if p.consumeMatch(token.Assign) {
		initTok := p.cur()
		init := p.tree.AddNode(ast.VariableInit, initTok)
		value := p.parseExpression(precAssignment)
		p.tree.AddChild(init, value)
		p.tree.AddChild(decl, init)
	}

	p.expect(token.Semicolon, "expected ';' after variable declaration")
	return decl
}
