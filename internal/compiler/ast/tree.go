// Package ast implements the flat, index-addressed abstract syntax
// tree the parser builds. It is an append-only arena: nodes are never
// freed individually and are referenced by small integer handles
// rather than pointers.
package ast

import "github.com/btouchard/zivc/internal/compiler/token"

// Node is an opaque handle into a Tree. The zero Node is the sentinel
// at index 0.
type Node int

const sentinel Node = 0

// IsValid reports whether n is a non-sentinel handle.
func (n Node) IsValid() bool { return n != sentinel }

type nodeData struct {
	kind     NodeKind
	token    token.Token
	parent   Node
	children []Node
	hasError bool
}

// Tree is the append-only arena. Index 0 is a reserved sentinel node
// of kind Invalid; index 1, if present, is the root.
type Tree struct {
	nodes []nodeData
}

// NewTree returns an arena with only the sentinel node present.
func NewTree() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, nodeData{kind: Invalid})
	return t
}

// Root returns the unique non-sentinel node whose parent is the
// sentinel, or the sentinel handle if the tree is empty.
func (t *Tree) Root() Node {
	if len(t.nodes) <= 1 {
		return sentinel
	}
	return Node(1)
}

func (t *Tree) Size() int { return len(t.nodes) }

func (t *Tree) valid(n Node) bool {
	return n >= 0 && int(n) < len(t.nodes)
}

// AddNode appends a new node of the given kind anchored at token and
// returns its handle. The node starts parentless and childless.
func (t *Tree) AddNode(kind NodeKind, tok token.Token) Node {
	t.nodes = append(t.nodes, nodeData{kind: kind, token: tok})
	return Node(len(t.nodes) - 1)
}

// Kind returns node's kind, or Invalid for an out-of-range handle.
func (t *Tree) Kind(n Node) NodeKind {
	if !t.valid(n) {
		return Invalid
	}
	return t.nodes[n].kind
}

// Token returns node's anchoring token, the zero Token for an
// out-of-range handle.
func (t *Tree) Token(n Node) token.Token {
	if !t.valid(n) {
		return token.Token{}
	}
	return t.nodes[n].token
}

// Spelling returns the anchoring token's text, or "" for an
// out-of-range handle.
func (t *Tree) Spelling(n Node) string {
	if !t.valid(n) {
		return ""
	}
	return t.nodes[n].token.Text()
}

// Line returns the anchoring token's source line, or 0 for an
// out-of-range handle.
func (t *Tree) Line(n Node) int {
	if !t.valid(n) {
		return 0
	}
	return t.nodes[n].token.Line
}

// HasError reports node's error bit, false for an out-of-range handle.
func (t *Tree) HasError(n Node) bool {
	if !t.valid(n) {
		return false
	}
	return t.nodes[n].hasError
}

// Parent returns node's parent handle, the sentinel for the root or
// an out-of-range handle.
func (t *Tree) Parent(n Node) Node {
	if !t.valid(n) {
		return sentinel
	}
	return t.nodes[n].parent
}

// Children returns node's children in insertion order. Callers must
// not mutate the result.
func (t *Tree) Children(n Node) []Node {
	if !t.valid(n) {
		return nil
	}
	return t.nodes[n].children
}

// MarkError sets node's error bit and propagates it up through the
// parent chain until a node already marked in error, or the sentinel,
// is reached. Once set, the bit is never cleared by tree mutation.
func (t *Tree) MarkError(n Node) {
	if !t.valid(n) {
		return
	}
	for n != sentinel && t.valid(n) && !t.nodes[n].hasError {
		t.nodes[n].hasError = true
		n = t.nodes[n].parent
	}
}

// ClearError unsets node's error bit without touching ancestors or
// descendants. This is a distinct, explicit operation from ordinary
// tree mutation, which only ever sets the bit.
func (t *Tree) ClearError(n Node) {
	if !t.valid(n) {
		return
	}
	t.nodes[n].hasError = false
}

// IsAncestor reports whether ancestor is a (possibly indirect)
// ancestor of descendant, including descendant == ancestor.
func (t *Tree) IsAncestor(ancestor, descendant Node) bool {
	if !t.valid(ancestor) || !t.valid(descendant) {
		return false
	}
	for n := descendant; t.valid(n); {
		if n == ancestor {
			return true
		}
		if n == sentinel {
			return false
		}
		n = t.nodes[n].parent
	}
	return false
}

func (t *Tree) unlinkFromParent(n Node) {
	p := t.nodes[n].parent
	if p == sentinel || !t.valid(p) {
		return
	}
	siblings := t.nodes[p].children
	for i, c := range siblings {
		if c == n {
			t.nodes[p].children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
}

// AddChild links child under parent. It rejects the operation outright
// (leaving both nodes untouched beyond the parent's error bit) if
// either handle is invalid or if linking would introduce a cycle,
// i.e. parent is itself a descendant of child. If child already has a
// parent it is first unlinked from that parent's child list. Once
// linked, a child's error bit is propagated to parent.
func (t *Tree) AddChild(parent, child Node) {
	if !t.valid(parent) || !t.valid(child) || parent == sentinel || child == sentinel {
		return
	}
	if t.IsAncestor(child, parent) {
		t.MarkError(parent)
		return
	}

	if t.nodes[child].parent != sentinel {
		t.unlinkFromParent(child)
	}

	t.nodes[parent].children = append(t.nodes[parent].children, child)
	t.nodes[child].parent = parent

	if t.nodes[child].hasError {
		t.MarkError(parent)
	}
}
