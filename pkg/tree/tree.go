package tree

// Node is a vertex of an ordered tree carrying a payload of type T.
//
// The zero value is a valid single-node tree with a zero payload.
type Node[T any] struct {
	Data T

	parent   *Node[T]
	children []*Node[T]
}

// New creates a root node holding data.
func New[T any](data T) *Node[T] {
	return &Node[T]{Data: data}
}

// AddChild appends a new child holding data and returns it.
func (n *Node[T]) AddChild(data T) *Node[T] {
	child := &Node[T]{Data: data, parent: n}
	n.children = append(n.children, child)
	return child
}

// Children returns the node's children in insertion order.
// The returned slice must not be modified.
func (n *Node[T]) Children() []*Node[T] { return n.children }

// Parent returns the parent node, or nil for a root.
func (n *Node[T]) Parent() *Node[T] { return n.parent }

// IsRoot reports whether the node has no parent.
func (n *Node[T]) IsRoot() bool { return n.parent == nil }

// IsLeaf reports whether the node has no children.
func (n *Node[T]) IsLeaf() bool { return len(n.children) == 0 }

// Depth returns the number of edges between the node and its root.
func (n *Node[T]) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Len returns the number of nodes in the subtree rooted at n, n included.
func (n *Node[T]) Len() int {
	count := 0
	n.WalkDown(func(*Node[T]) { count++ })
	return count
}

// WalkDown visits n and every descendant in pre-order.
func (n *Node[T]) WalkDown(visit func(*Node[T])) {
	n.walk(func(node *Node[T]) bool {
		visit(node)
		return true
	})
}

// WalkDownData visits the payload of n and every descendant in pre-order.
func (n *Node[T]) WalkDownData(visit func(T)) {
	n.walk(func(node *Node[T]) bool {
		visit(node.Data)
		return true
	})
}

// WalkUp visits n and then each ancestor up to the root.
func (n *Node[T]) WalkUp(visit func(*Node[T])) {
	for node := n; node != nil; node = node.parent {
		visit(node)
	}
}

// Find returns the first node in pre-order for which match returns true.
func (n *Node[T]) Find(match func(*Node[T]) bool) (*Node[T], bool) {
	var found *Node[T]
	n.walk(func(node *Node[T]) bool {
		if match(node) {
			found = node
			return false
		}
		return true
	})
	return found, found != nil
}

// Map returns a structural copy of the subtree with each payload replaced by fn(node).
// The original tree is left untouched.
func Map[T, U any](n *Node[T], fn func(*Node[T]) U) *Node[U] {
	out := New(fn(n))
	for _, c := range n.children {
		child := Map(c, fn)
		child.parent = out
		out.children = append(out.children, child)
	}
	return out
}

// walk runs an explicit-stack pre-order traversal, stopping when visit returns false.
func (n *Node[T]) walk(visit func(*Node[T]) bool) {
	stack := []*Node[T]{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(node) {
			return
		}
		for i := len(node.children) - 1; i >= 0; i-- {
			stack = append(stack, node.children[i])
		}
	}
}
