package layout

import (
	"slices"
	"testing"
)

func TestRemoveView(t *testing.T) {
	f := newFixture(t, 0)
	a := f.addView("a")
	b := f.addView("b")
	c := f.addView("c")
	parentB := f.parent(b)

	next := f.layout.RemoveView(b.ID)
	f.commit.CommitDirty()

	if len(f.tiling()) != 2 {
		t.Fatalf("%d top-level containers, want 2", len(f.tiling()))
	}
	if slices.Contains(f.tiling(), parentB.ID) {
		t.Fatal("empty parent was not removed")
	}
	if next != a.ID {
		t.Fatalf("next focus %v, want the left neighbor %v", next, a.ID)
	}
	if f.ws.ActiveChild() != f.parent(a).ID {
		t.Fatal("left neighbor is not active")
	}

	f.layout.RemoveView(a.ID)
	next = f.layout.RemoveView(c.ID)
	f.commit.CommitDirty()
	if next.Valid() || len(f.tiling()) != 0 {
		t.Fatalf("workspace not empty: next %v, tiling %v", next, f.tiling())
	}
}

func TestRemoveViewKeepsSiblings(t *testing.T) {
	f := newFixture(t, 0)
	a := f.addView("a")
	f.layout.SetMode(f.ws, f.ws.Layout.Type.Opposite())
	b := f.addView("b")
	parent := f.parent(a)
	if f.parent(b) != parent {
		t.Fatal("b did not join the container of a")
	}

	next := f.layout.RemoveView(b.ID)
	f.commit.CommitDirty()
	if len(parent.Pending.Children) != 1 || parent.Pending.Children[0] != a.ID {
		t.Fatalf("children %v", parent.Pending.Children)
	}
	if next != a.ID {
		t.Fatalf("next focus %v, want %v", next, a.ID)
	}
	if len(f.tiling()) != 1 {
		t.Fatal("the shared container was removed")
	}
}
