// Package semantics implements the skeleton semantic checker: lexical
// scopes, name resolution, and the small set of checks spec'd for
// variable and function declarations. It does not perform full type
// inference.
package semantics

import (
	"github.com/btouchard/zivc/internal/compiler/ast"
	"github.com/btouchard/zivc/internal/compiler/diagnostics"
	"github.com/btouchard/zivc/internal/compiler/source"
)

// structural node kinds the checker recurses through without opening a
// new scope; only FunctionDecl opens one (the root scope is opened by
// Check itself).
var transparentKinds = map[ast.NodeKind]bool{
	ast.CodeBlock:   true,
	ast.IfStmt:      true,
	ast.ElseBranch:  true,
	ast.WhileStmt:   true,
	ast.DoWhileStmt: true,
	ast.ForStmt:     true,
	ast.MatchStmt:   true,
	ast.MatchCase:   true,
}

// Checker walks a built AST and reports name-resolution errors through
// emit. It returns false on the first error, per the skeleton's
// report-and-stop policy (unlike the parser's accumulate-and-continue
// one).
type Checker struct {
	tree    *ast.Tree
	symbols *SymbolTable
	emit    *diagnostics.Emitter
}

func NewChecker(tree *ast.Tree, emit *diagnostics.Emitter) *Checker {
	return &Checker{tree: tree, symbols: NewSymbolTable(), emit: emit}
}

// Check enters the root scope, walks every top-level node in order,
// and leaves the scope. It returns false as soon as any node fails.
func (c *Checker) Check() bool {
	c.symbols.EnterScope()
	ok := c.checkChildren(c.tree.Root())
	c.symbols.ExitScope()
	return ok
}

func (c *Checker) checkChildren(n ast.Node) bool {
	for _, child := range c.tree.Children(n) {
		if !c.checkNode(child) {
			return false
		}
	}
	return true
}

func (c *Checker) checkNode(n ast.Node) bool {
	switch c.tree.Kind(n) {
	case ast.VariableDecl:
		return c.checkVariableDecl(n)
	case ast.FunctionDecl:
		return c.checkFunctionDecl(n)
	default:
		if transparentKinds[c.tree.Kind(n)] {
			return c.checkChildren(n)
		}
		// Other nodes (expression statements, return/break/continue,
		// error nodes, literals...) are not modeled by this skeleton.
		return true
	}
}

func (c *Checker) firstChildOfKind(n ast.Node, kind ast.NodeKind) ast.Node {
	for _, child := range c.tree.Children(n) {
		if c.tree.Kind(child) == kind {
			return child
		}
	}
	return ast.Node(0)
}

func (c *Checker) location(n ast.Node) source.Location {
	tok := c.tree.Token(n)
	return source.Location{File: tok.Filename, Line: tok.Line, Column: tok.Column}
}

// checkVariableDecl extracts the declared name and type, rejecting a
// malformed node (one the parser already flagged and left without a
// name or type child) by leaving it unchecked rather than crashing.
func (c *Checker) checkVariableDecl(n ast.Node) bool {
	nameNode := c.firstChildOfKind(n, ast.IdentifierExpr)
	if !nameNode.IsValid() {
		return true
	}
	name := c.tree.Spelling(nameNode)

	declType := ErrorType()
	if typeNode := c.firstChildOfKind(n, ast.TypeSpec); typeNode.IsValid() {
		declType = LookupTypeName(c.tree.Spelling(typeNode))
	}

	if c.symbols.DeclaredInCurrentScope(name) {
		c.emit.Emit(diagnostics.VariableRedeclaration, c.location(nameNode), name)
		return false
	}
	c.symbols.Define(Symbol{Kind: VariableSymbol, Name: name, Type: declType})
	return true
}

// checkFunctionDecl registers the function in the enclosing scope,
// then enters a fresh scope for parameters and the body.
func (c *Checker) checkFunctionDecl(n ast.Node) bool {
	nameNode := c.firstChildOfKind(n, ast.FunctionName)
	if !nameNode.IsValid() {
		return true
	}
	name := c.tree.Spelling(nameNode)

	if c.symbols.DeclaredInCurrentScope(name) {
		c.emit.Emit(diagnostics.VariableRedeclaration, c.location(nameNode), name)
		return false
	}
	c.symbols.Define(Symbol{Kind: FunctionSymbol, Name: name, Type: c.returnType(n)})

	c.symbols.EnterScope()
	defer c.symbols.ExitScope()

	if params := c.firstChildOfKind(n, ast.ParameterList); params.IsValid() {
		for _, p := range c.tree.Children(params) {
			if c.tree.Kind(p) != ast.Parameter {
				continue
			}
			paramName := c.tree.Spelling(p)
			if c.symbols.DeclaredInCurrentScope(paramName) {
				c.emit.Emit(diagnostics.VariableRedeclaration, c.location(p), paramName)
				return false
			}
			paramType := ErrorType()
			if typeNode := c.firstChildOfKind(p, ast.TypeSpec); typeNode.IsValid() {
				paramType = LookupTypeName(c.tree.Spelling(typeNode))
			}
			c.symbols.Define(Symbol{Kind: VariableSymbol, Name: paramName, Type: paramType})
		}
	}

	if body := c.firstChildOfKind(n, ast.CodeBlock); body.IsValid() {
		return c.checkChildren(body)
	}
	return true
}

func (c *Checker) returnType(n ast.Node) *Type {
	ret := c.firstChildOfKind(n, ast.ReturnType)
	if !ret.IsValid() {
		return NoneType()
	}
	typeNode := c.firstChildOfKind(ret, ast.TypeSpec)
	if !typeNode.IsValid() {
		return ErrorType()
	}
	return LookupTypeName(c.tree.Spelling(typeNode))
}
