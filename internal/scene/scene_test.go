package scene

import "testing"

func TestCoordsAndBuffers(t *testing.T) {
	root := NewRoot()
	layer := root.CreateTree()
	layer.SetPosition(10, 20)
	a := layer.CreateTree()
	a.SetPosition(5, 0)
	a.Buffer = "a"
	b := layer.CreateTree()
	b.SetPosition(100, 0)
	b.Buffer = "b"

	x, y, enabled := a.Coords()
	if x != 15 || y != 20 || !enabled {
		t.Fatalf("got %d,%d,%v", x, y, enabled)
	}

	b.SetEnabled(false)
	var seen []any
	root.ForEachBuffer(func(n *Node, x, y int) { seen = append(seen, n.Buffer) })
	if len(seen) != 1 || seen[0] != "a" {
		t.Fatalf("got %v", seen)
	}
}

func TestReparentAndOrder(t *testing.T) {
	root := NewRoot()
	p1 := root.CreateTree()
	p2 := root.CreateTree()
	c := p1.CreateTree()

	c.Reparent(p2)
	if c.Parent() != p2 || len(p1.Children()) != 0 || len(p2.Children()) != 1 {
		t.Fatal("reparent")
	}

	// Cycles are refused.
	p2.Reparent(c)
	if p2.Parent() != root {
		t.Fatal("cycle")
	}

	p1.RaiseToTop()
	if root.Children()[1] != p1 {
		t.Fatal("raise")
	}
	p1.LowerToBottom()
	if root.Children()[0] != p1 {
		t.Fatal("lower")
	}

	p2.Destroy()
	if !c.Destroyed() || len(root.Children()) != 1 {
		t.Fatal("destroy")
	}
}
