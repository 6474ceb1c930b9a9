package ast

// TreeIterator walks a subtree in post-order: leftmost leaf first,
// then right siblings, then the parent. It is done once the subtree
// root itself has been yielded.
type TreeIterator struct {
	tree *Tree
	root Node
	node Node
	done bool
}

// Subtree returns a post-order iterator over root's subtree,
// including root itself.
func (t *Tree) Subtree(root Node) *TreeIterator {
	if !t.valid(root) || root == sentinel {
		return &TreeIterator{tree: t, done: true}
	}
	return &TreeIterator{tree: t, root: root, node: t.leftmostLeaf(root), done: false}
}

// Nodes returns a post-order iterator over the entire tree, rooted at
// Root().
func (t *Tree) Nodes() *TreeIterator {
	return t.Subtree(t.Root())
}

func (t *Tree) leftmostLeaf(n Node) Node {
	for {
		children := t.nodes[n].children
		if len(children) == 0 {
			return n
		}
		n = children[0]
	}
}

// Next reports whether a node is available. It does not move the
// cursor; Node does.
func (it *TreeIterator) Next() bool {
	return !it.done
}

// Node returns the current node. Call only after Next returns true.
func (it *TreeIterator) Node() Node {
	current := it.node
	it.advance()
	return current
}

func (it *TreeIterator) advance() {
	t := it.tree
	current := it.node

	if current == it.root {
		it.done = true
		return
	}

	parent := t.nodes[current].parent
	siblings := t.nodes[parent].children
	idx := -1
	for i, c := range siblings {
		if c == current {
			idx = i
			break
		}
	}

	if idx >= 0 && idx+1 < len(siblings) {
		it.node = t.leftmostLeaf(siblings[idx+1])
		return
	}

	// No more siblings; move to the parent itself (post-order: a
	// parent is visited after all of its children).
	it.node = parent
}

// ChildIterator yields a node's children in insertion order.
type ChildIterator struct {
	children []Node
	idx      int
}

// ChildrenIter returns an iterator over n's direct children.
func (t *Tree) ChildrenIter(n Node) *ChildIterator {
	return &ChildIterator{children: t.Children(n)}
}

func (it *ChildIterator) Next() bool {
	return it.idx < len(it.children)
}

func (it *ChildIterator) Node() Node {
	n := it.children[it.idx]
	it.idx++
	return n
}
