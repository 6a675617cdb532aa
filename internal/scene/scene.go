// Package scene is a retained render tree. Layout only positions, enables and
// reparents nodes; a backend walks the tree to put windows on screen.
package scene

import "slices"

// Node is a tree node positioned relative to its parent. A node with a Buffer
// is something a backend can draw.
type Node struct {
	parent   *Node
	children []*Node

	X       int
	Y       int
	Enabled bool
	// Width and Height are the displayed size of a buffer node.
	Width  int
	Height int
	// Scale is informational and inherited by buffers below it.
	Scale  float64
	Buffer any

	destroyed bool
}

func NewRoot() *Node {
	return &Node{Enabled: true, Scale: 1}
}

// CreateTree adds an enabled child.
func (n *Node) CreateTree() *Node {
	child := &Node{parent: n, Enabled: true, Scale: 1}
	n.children = append(n.children, child)
	return child
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// Destroy detaches the node and its subtree.
func (n *Node) Destroy() {
	if n.parent != nil {
		n.parent.remove(n)
		n.parent = nil
	}
	n.destroyed = true
	for _, c := range n.children {
		c.parent = nil
		c.Destroy()
	}
	n.children = nil
}

func (n *Node) Destroyed() bool {
	return n.destroyed
}

func (n *Node) SetEnabled(enabled bool) {
	n.Enabled = enabled
}

func (n *Node) SetPosition(x, y int) {
	n.X, n.Y = x, y
}

func (n *Node) SetSize(width, height int) {
	n.Width, n.Height = width, height
}

// Reparent moves the node on top of parent's children. It is a no-op when
// parent is already the parent or a descendant of n.
func (n *Node) Reparent(parent *Node) {
	if parent == nil || n.parent == parent {
		return
	}
	for p := parent; p != nil; p = p.parent {
		if p == n {
			return
		}
	}
	if n.parent != nil {
		n.parent.remove(n)
	}
	n.parent = parent
	parent.children = append(parent.children, n)
}

func (n *Node) RaiseToTop() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.remove(n)
	p.children = append(p.children, n)
}

func (n *Node) LowerToBottom() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.remove(n)
	p.children = slices.Insert(p.children, 0, n)
}

func (n *Node) remove(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

// Coords returns the absolute position of the node and whether it and all of
// its ancestors are enabled.
func (n *Node) Coords() (x, y int, enabled bool) {
	enabled = true
	for c := n; c != nil; c = c.parent {
		x += c.X
		y += c.Y
		enabled = enabled && c.Enabled
	}
	return
}

// ForEachBuffer calls fn for every enabled buffer node below n, bottom to top,
// with absolute coordinates.
func (n *Node) ForEachBuffer(fn func(node *Node, x, y int)) {
	n.forEachBuffer(0, 0, fn)
}

func (n *Node) forEachBuffer(x, y int, fn func(node *Node, x, y int)) {
	if !n.Enabled {
		return
	}
	x += n.X
	y += n.Y
	if n.Buffer != nil {
		fn(n, x, y)
	}
	for _, c := range n.children {
		c.forEachBuffer(x, y, fn)
	}
}
