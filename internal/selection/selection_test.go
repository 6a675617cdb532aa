package selection

import (
	"errors"
	"testing"

	"github.com/ItsNotGoodName/x-scroller/internal/geom"
	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

type stubView struct{}

func (stubView) Configure(x, y, width, height float64) uint32 { return 1 }
func (stubView) SaveBuffer()                                  {}
func (stubView) RemoveSavedBuffer()                           {}
func (stubView) HasSavedBuffer() bool                         { return false }
func (stubView) IsVisible() bool                              { return true }
func (stubView) SendFrameDone()                               {}
func (stubView) PositionAware() bool                          { return false }
func (stubView) CenterAndClip(width, height float64)          {}
func (stubView) AppID() string                                { return "stub" }
func (stubView) Title() string                                { return "stub" }

type fixture struct {
	t      *testing.T
	tree   *tree.Tree
	layout *layout.Layout
	sel    *Selection
	out    *tree.Output
	ws     *tree.Workspace
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tr := tree.New(tree.Defaults{
		LayoutType:    tree.LayoutHoriz,
		DefaultWidth:  0.5,
		DefaultHeight: 1,
	})
	o := tr.NewOutput("test", geom.Box{Width: 1000, Height: 800})
	ws := tr.NewWorkspace("1", o.ID)
	l := layout.New(tr, nil, nil, layout.DefaultOptions())
	l.InitWorkspace(ws.ID)
	return &fixture{t: t, tree: tr, layout: l, sel: New(l), out: o, ws: ws}
}

func (f *fixture) workspace(name string) *tree.Workspace {
	ws := f.tree.NewWorkspace(name, f.out.ID)
	f.layout.InitWorkspace(ws.ID)
	return ws
}

func (f *fixture) addView(ws *tree.Workspace) *tree.Container {
	v := f.tree.NewView(stubView{})
	f.layout.AddView(ws, f.tree.Focused(), v.ID)
	f.tree.SetFocus(v.ID)
	f.layout.ArrangeWorkspace(ws.ID)
	return v
}

func TestToggleFollowsMode(t *testing.T) {
	f := newFixture(t)
	a := f.addView(f.ws)
	b := f.addView(f.ws)
	f.layout.SetMode(f.ws, tree.LayoutVert)
	c := f.addView(f.ws)
	parent := f.tree.TopLevel(c.ID)
	if parent != f.tree.TopLevel(b.ID) {
		t.Fatal("view did not join the active container")
	}

	if err := f.sel.Toggle(c.ID); err != nil {
		t.Fatal(err)
	}
	if !c.Selected || parent.Selected {
		t.Fatal("vertical mode should select the view only")
	}
	if f.sel.Enabled(b.ID) {
		t.Fatal("sibling view is selected")
	}

	f.layout.SetMode(f.ws, tree.LayoutHoriz)
	if err := f.sel.Toggle(c.ID); err != nil {
		t.Fatal(err)
	}
	if !parent.Selected {
		t.Fatal("horizontal mode should select the top-level container")
	}
	if !f.sel.Enabled(b.ID) {
		t.Fatal("view below a selected container is not selected")
	}
	if f.sel.Enabled(a.ID) {
		t.Fatal("unrelated view is selected")
	}

	if err := f.sel.Toggle(c.ID); err != nil {
		t.Fatal(err)
	}
	if parent.Selected {
		t.Fatal("second toggle did not clear the selection")
	}
	if got := f.sel.Selected(); len(got) != 1 || got[0] != c.ID {
		t.Fatalf("selected %v, want only the view", got)
	}
}

func TestToggleWithoutWorkspace(t *testing.T) {
	f := newFixture(t)
	v := f.tree.NewView(stubView{})
	if err := f.sel.Toggle(v.ID); !errors.Is(err, layout.ErrNoWorkspace) {
		t.Fatalf("got %v, want %v", err, layout.ErrNoWorkspace)
	}
	if err := f.sel.Toggle(tree.ContainerID{}); !errors.Is(err, layout.ErrNoContainer) {
		t.Fatalf("got %v, want %v", err, layout.ErrNoContainer)
	}
}

func TestWorkspaceAndReset(t *testing.T) {
	f := newFixture(t)
	f.addView(f.ws)
	f.addView(f.ws)

	f.sel.Workspace(f.ws)
	if got := f.sel.Selected(); len(got) != 2 {
		t.Fatalf("%d selected, want 2", len(got))
	}
	f.sel.Reset()
	if got := f.sel.Selected(); len(got) != 0 {
		t.Fatalf("%d selected after reset", len(got))
	}
}

func TestMoveWithoutSelection(t *testing.T) {
	f := newFixture(t)
	f.addView(f.ws)
	if err := f.sel.Move(f.workspace("2")); !errors.Is(err, layout.ErrNoSelection) {
		t.Fatalf("got %v, want %v", err, layout.ErrNoSelection)
	}
}

func TestMoveKeepsContainers(t *testing.T) {
	f := newFixture(t)
	a := f.addView(f.ws)
	b := f.addView(f.ws)
	ta, tb := f.tree.TopLevel(a.ID), f.tree.TopLevel(b.ID)
	target := f.workspace("2")

	f.sel.Workspace(f.ws)
	if err := f.sel.Move(target); err != nil {
		t.Fatal(err)
	}

	if len(f.ws.Pending.Tiling) != 0 {
		t.Fatalf("%d containers left behind", len(f.ws.Pending.Tiling))
	}
	got := target.Pending.Tiling
	if len(got) != 2 || got[0] != ta.ID || got[1] != tb.ID {
		t.Fatalf("target tiling %v, want %v", got, []tree.ContainerID{ta.ID, tb.ID})
	}
	if a.Pending.Workspace != target.ID {
		t.Fatal("view did not follow its container")
	}
	if len(f.sel.Selected()) != 0 {
		t.Fatal("selection was not cleared")
	}
}

func TestMoveJoinsActiveContainer(t *testing.T) {
	f := newFixture(t)
	a := f.addView(f.ws)
	b := f.addView(f.ws)
	target := f.workspace("2")
	d := f.tree.NewView(stubView{})
	f.layout.AddView(target, tree.ContainerID{}, d.ID)
	f.layout.SetMode(target, tree.LayoutVert)

	f.sel.Set(a.ID, true)
	f.sel.Set(b.ID, true)
	if err := f.sel.Move(target); err != nil {
		t.Fatal(err)
	}

	if len(target.Pending.Tiling) != 1 {
		t.Fatalf("%d top-level containers, want 1", len(target.Pending.Tiling))
	}
	top := f.tree.Container(target.Pending.Tiling[0])
	want := []tree.ContainerID{d.ID, a.ID, b.ID}
	if len(top.Pending.Children) != len(want) {
		t.Fatalf("children %v, want %v", top.Pending.Children, want)
	}
	for i := range want {
		if top.Pending.Children[i] != want[i] {
			t.Fatalf("children %v, want %v", top.Pending.Children, want)
		}
	}
	if len(f.ws.Pending.Tiling) != 0 {
		t.Fatal("empty containers were not reaped")
	}
}
