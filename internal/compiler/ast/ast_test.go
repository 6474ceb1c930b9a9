package ast

import (
	"testing"

	"github.com/btouchard/zivc/internal/compiler/token"
)

func tok(kind token.Kind, spelling string) token.Token {
	return token.Token{Kind: kind, Spelling: spelling, Filename: "test.z", Line: 1, Column: 1}
}

func TestEmptyTreeHasNoRoot(t *testing.T) {
	tr := NewTree()
	if tr.Root().IsValid() {
		t.Error("expected an empty tree to have no root")
	}
	if tr.Size() != 1 {
		t.Errorf("Size() = %d, want 1 (sentinel only)", tr.Size())
	}
}

func TestAddNodeAssignsRoot(t *testing.T) {
	tr := NewTree()
	root := tr.AddNode(FileStart, tok(token.Sof, ""))
	if tr.Root() != root {
		t.Errorf("Root() = %v, want %v", tr.Root(), root)
	}
}

func TestAddChildLinksParentAndChild(t *testing.T) {
	tr := NewTree()
	root := tr.AddNode(FileStart, tok(token.Sof, ""))
	fn := tr.AddNode(FunctionDecl, tok(token.Fn, "fn"))
	tr.AddChild(root, fn)

	children := tr.Children(root)
	if len(children) != 1 || children[0] != fn {
		t.Fatalf("Children(root) = %v, want [%v]", children, fn)
	}
	if tr.Parent(fn) != root {
		t.Errorf("Parent(fn) = %v, want %v", tr.Parent(fn), root)
	}
}

func TestAddChildRejectsCycle(t *testing.T) {
	tr := NewTree()
	a := tr.AddNode(FileStart, tok(token.Sof, ""))
	b := tr.AddNode(FunctionDecl, tok(token.Fn, "fn"))
	tr.AddChild(a, b)

	// Attempting to add a as a child of b would create a cycle.
	tr.AddChild(b, a)

	if tr.Parent(a) != sentinel {
		t.Errorf("Parent(a) = %v, want sentinel (cycle must be rejected)", tr.Parent(a))
	}
	if !tr.HasError(b) {
		t.Error("expected the candidate parent to be marked in error")
	}
}

func TestAddChildReparents(t *testing.T) {
	tr := NewTree()
	a := tr.AddNode(FileStart, tok(token.Sof, ""))
	b := tr.AddNode(ModuleDecl, tok(token.Module, "module"))
	c := tr.AddNode(FunctionDecl, tok(token.Fn, "fn"))

	tr.AddChild(a, c)
	tr.AddChild(b, c)

	if tr.Parent(c) != b {
		t.Errorf("Parent(c) = %v, want %v", tr.Parent(c), b)
	}
	if len(tr.Children(a)) != 0 {
		t.Errorf("Children(a) = %v, want empty after re-parenting", tr.Children(a))
	}
	if children := tr.Children(b); len(children) != 1 || children[0] != c {
		t.Errorf("Children(b) = %v, want [%v]", children, c)
	}
}

func TestMarkErrorIsMonotonicAndPropagates(t *testing.T) {
	tr := NewTree()
	root := tr.AddNode(FileStart, tok(token.Sof, ""))
	fn := tr.AddNode(FunctionDecl, tok(token.Fn, "fn"))
	block := tr.AddNode(CodeBlock, tok(token.LBrace, "{"))
	tr.AddChild(root, fn)
	tr.AddChild(fn, block)

	tr.MarkError(block)

	if !tr.HasError(block) || !tr.HasError(fn) || !tr.HasError(root) {
		t.Error("expected error to propagate from block up to root")
	}
}

func TestClearErrorDoesNotAffectAncestors(t *testing.T) {
	tr := NewTree()
	root := tr.AddNode(FileStart, tok(token.Sof, ""))
	fn := tr.AddNode(FunctionDecl, tok(token.Fn, "fn"))
	tr.AddChild(root, fn)

	tr.MarkError(fn)
	tr.ClearError(fn)

	if tr.HasError(fn) {
		t.Error("expected ClearError to unset the node's own bit")
	}
	if !tr.HasError(root) {
		t.Error("ClearError must not retroactively clear ancestors")
	}
}

func TestQueriesOnInvalidHandleReturnSentinels(t *testing.T) {
	tr := NewTree()
	bogus := Node(999)

	if tr.Kind(bogus) != Invalid {
		t.Errorf("Kind(bogus) = %v, want Invalid", tr.Kind(bogus))
	}
	if tr.Spelling(bogus) != "" {
		t.Errorf("Spelling(bogus) = %q, want empty", tr.Spelling(bogus))
	}
	if tr.Line(bogus) != 0 {
		t.Errorf("Line(bogus) = %d, want 0", tr.Line(bogus))
	}
	if tr.HasError(bogus) {
		t.Error("HasError(bogus) = true, want false")
	}
}

func TestSubtreeIteratorIsPostOrder(t *testing.T) {
	tr := NewTree()
	root := tr.AddNode(FileStart, tok(token.Sof, ""))
	fn := tr.AddNode(FunctionDecl, tok(token.Fn, "fn"))
	paramList := tr.AddNode(ParameterList, tok(token.LParen, "("))
	param := tr.AddNode(Parameter, tok(token.Identifier, "a"))
	block := tr.AddNode(CodeBlock, tok(token.LBrace, "{"))

	tr.AddChild(root, fn)
	tr.AddChild(fn, paramList)
	tr.AddChild(paramList, param)
	tr.AddChild(fn, block)

	var visited []NodeKind
	it := tr.Subtree(root)
	for it.Next() {
		n := it.Node()
		visited = append(visited, tr.Kind(n))
	}

	want := []NodeKind{Parameter, ParameterList, CodeBlock, FunctionDecl, FileStart}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %v, want %v", i, visited[i], want[i])
		}
	}
}

func TestChildrenIteratorPreservesInsertionOrder(t *testing.T) {
	tr := NewTree()
	root := tr.AddNode(FileStart, tok(token.Sof, ""))
	a := tr.AddNode(VariableDecl, tok(token.Let, "let"))
	b := tr.AddNode(VariableDecl, tok(token.Let, "let"))
	c := tr.AddNode(VariableDecl, tok(token.Let, "let"))
	tr.AddChild(root, a)
	tr.AddChild(root, b)
	tr.AddChild(root, c)

	var got []Node
	it := tr.ChildrenIter(root)
	for it.Next() {
		got = append(got, it.Node())
	}

	want := []Node{a, b, c}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
