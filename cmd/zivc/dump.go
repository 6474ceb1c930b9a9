package main

import (
	"fmt"
	"strings"

	"github.com/btouchard/zivc/internal/compiler/ast"
	"github.com/btouchard/zivc/internal/compiler/token"
)

// printSourceBuffer mirrors source_command.cpp's review: filename,
// size, and whether it came from a regular file.
func printSourceBuffer(buf interface {
	Filename() string
	Contents() []byte
	IsRegularFile() bool
}) {
	fmt.Printf("Source buffer: %s\n", buf.Filename())
	fmt.Printf("Size: %d bytes\n", len(buf.Contents()))
	regular := "no"
	if buf.IsRegularFile() {
		regular = "yes"
	}
	fmt.Printf("Is regular file: %s\n", regular)
}

// printTokenBuffer mirrors lex_command.cpp's per-token review, one
// line per token in lexed order.
func printTokenBuffer(tokens *token.Buffer) {
	if tokens == nil {
		return
	}
	fmt.Printf("Token buffer (%d tokens):\n", tokens.Len())
	for i := 0; i < tokens.Len(); i++ {
		tok := tokens.At(i)
		fmt.Printf("  %d:%d %s\n", tok.Line, tok.Column, tok.String())
	}
}

// printTree is the CLI's deliberately minimal stand-in for
// toolchain/ast/printer.cpp: indentation per depth plus the node kind
// name and its token spelling, no index/metadata columns.
func printTree(tree *ast.Tree) {
	fmt.Printf("AST structure (%d nodes):\n", tree.Size())
	printNode(tree, tree.Root(), 0)
}

func printNode(tree *ast.Tree, n ast.Node, depth int) {
	if !n.IsValid() {
		return
	}
	indent := strings.Repeat("  ", depth)
	spelling := tree.Spelling(n)
	if spelling != "" {
		fmt.Printf("%s%s(%s)\n", indent, tree.Kind(n), spelling)
	} else {
		fmt.Printf("%s%s\n", indent, tree.Kind(n))
	}
	for _, child := range tree.Children(n) {
		printNode(tree, child, depth+1)
	}
}
