// Package tree provides a small generic tree used to hold header hierarchies.
//
// # Overview
//
// A [Node] owns an ordered list of children and a typed payload. Trees are built
// top-down with [New] and [Node.AddChild]; a forest is simply a slice of root
// nodes kept in declaration order.
//
// # Traversal
//
// [Node.WalkDown] performs a deterministic pre-order walk: a node is visited
// before its children and siblings are visited in the order they were added.
// Every node in the subtree is visited exactly once. [Node.WalkDownData] walks
// the same order but only hands the payload to the callback, which is all the
// header matrix generator needs. [Node.WalkUp] climbs from a node to its root.
//
//	root := tree.New("A")
//	b := root.AddChild("B")
//	b.AddChild("C")
//	root.AddChild("D")
//
//	root.WalkDownData(func(s string) { fmt.Print(s) }) // ABCD
//
// # Concurrency
//
// Nodes are not safe for concurrent mutation. Walks may run concurrently with
// other walks, but not with [Node.AddChild] on the same tree.
package tree
