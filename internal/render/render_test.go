package render

import (
	"testing"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/geom"
	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/loop"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

type stubView struct{}

func (stubView) Configure(x, y, width, height float64) uint32 { return 1 }
func (stubView) SaveBuffer()                                  {}
func (stubView) RemoveSavedBuffer()                           {}
func (stubView) HasSavedBuffer() bool                         { return false }
func (stubView) IsVisible() bool                              { return true }
func (stubView) SendFrameDone()                               {}
func (stubView) PositionAware() bool                          { return true }
func (stubView) CenterAndClip(width, height float64)          {}
func (stubView) AppID() string                                { return "stub" }
func (stubView) Title() string                                { return "stub" }

// applier publishes dirty state immediately, in the order a transaction does.
type applier struct {
	tree     *tree.Tree
	renderer *Renderer
}

func (a *applier) CommitDirty() {
	if !a.tree.HasDirty() {
		return
	}
	a.renderer.SaveAnimation()
	for _, n := range a.tree.TakeDirty() {
		switch n.Kind {
		case tree.NodeContainer:
			if c := a.tree.Container(n.Container); c != nil {
				c.Current = c.Pending.Clone()
			}
		case tree.NodeWorkspace:
			if ws := a.tree.Workspace(n.Workspace); ws != nil {
				ws.Current = ws.Pending.Clone()
			}
		case tree.NodeOutput:
			if o := a.tree.Output(n.Output); o != nil {
				o.Current = o.Pending.Clone()
			}
		}
	}
	if a.renderer.Anim != nil {
		a.renderer.Anim.Start(nil, a.renderer.Arrange, nil)
		return
	}
	a.renderer.Arrange()
}

type fixture struct {
	t      *testing.T
	tree   *tree.Tree
	layout *layout.Layout
	render *Renderer
	ws     *tree.Workspace
	out    *tree.Output
}

func newFixture(t *testing.T, a *anim.Context) *fixture {
	t.Helper()
	tr := tree.New(tree.Defaults{
		LayoutType:    tree.LayoutHoriz,
		DefaultWidth:  0.5,
		DefaultHeight: 1,
	})
	o := tr.NewOutput("test", geom.Box{Width: 1000, Height: 800})
	ws := tr.NewWorkspace("1", o.ID)
	ap := &applier{tree: tr}
	l := layout.New(tr, a, ap, layout.DefaultOptions())
	ap.renderer = New(l, a)
	l.InitWorkspace(ws.ID)
	l.ArrangeWorkspace(ws.ID)
	ap.CommitDirty()
	return &fixture{t: t, tree: tr, layout: l, render: ap.renderer, ws: ws, out: o}
}

func (f *fixture) addView() *tree.Container {
	f.t.Helper()
	v := f.tree.NewView(stubView{})
	f.layout.AddView(f.ws, f.tree.Focused(), v.ID)
	f.tree.SetFocus(v.ID)
	f.layout.ArrangeWorkspace(f.ws.ID)
	f.layout.Commit.CommitDirty()
	return v
}

func (f *fixture) top(v *tree.Container) *tree.Container {
	return f.tree.TopLevel(v.ID)
}

func screenX(c *tree.Container) int {
	x, _, _ := c.Scene.Coords()
	return x
}

func TestArrangeCentersWhenEverythingFits(t *testing.T) {
	f := newFixture(t, nil)
	v := f.addView()

	if got := screenX(v); got != 250 {
		t.Fatalf("view at x=%d, want 250", got)
	}
	if got := f.top(v).Current.X; got != 250 {
		t.Fatalf("committed x=%v, want 250", got)
	}
	if _, _, enabled := v.Scene.Coords(); !enabled {
		t.Fatal("view scene is disabled")
	}
}

func TestArrangeKeepsActiveFlushAtFarEdge(t *testing.T) {
	f := newFixture(t, nil)
	a := f.addView()
	b := f.addView()
	c := f.addView()

	want := map[*tree.Container]int{a: -500, b: 0, c: 500}
	for v, x := range want {
		if got := screenX(v); got != x {
			t.Errorf("view at x=%d, want %d", got, x)
		}
		if got := f.top(v).Current.X; got != float64(x) {
			t.Errorf("committed x=%v, want %d", got, x)
		}
	}
	if w := c.Scene.Width; w != 500 {
		t.Fatalf("width %d, want 500", w)
	}
}

func TestArrangePinnedContainerStaysAtEdge(t *testing.T) {
	f := newFixture(t, nil)
	a := f.addView()
	f.addView()
	c := f.addView()

	if err := f.layout.PinSet(a.ID, tree.PinBeginning); err != nil {
		t.Fatal(err)
	}
	f.tree.SetFocus(c.ID)
	f.layout.ArrangeWorkspace(f.ws.ID)
	f.layout.Commit.CommitDirty()

	if got := screenX(a); got != 0 {
		t.Fatalf("pinned view at x=%d, want 0", got)
	}
	if got := screenX(c); got != 500 {
		t.Fatalf("active view at x=%d, want 500", got)
	}
	children := f.ws.Scene.Tiling.Children()
	if children[len(children)-1] != f.top(a).Scene {
		t.Fatal("pinned container is not drawn on top")
	}
}

func TestArrangeHidesInactiveWorkspace(t *testing.T) {
	f := newFixture(t, nil)
	v := f.addView()

	other := f.tree.NewWorkspace("2", f.out.ID)
	f.layout.InitWorkspace(other.ID)
	f.tree.SetFocusWorkspace(other.ID)
	f.layout.ArrangeWorkspace(other.ID)
	f.layout.Commit.CommitDirty()

	if f.ws.Scene.Tiling.Enabled {
		t.Fatal("inactive workspace tiling layer is enabled")
	}
	if _, _, enabled := v.Scene.Coords(); enabled {
		t.Fatal("view of the inactive workspace is visible")
	}

	f.tree.SetFocusWorkspace(f.ws.ID)
	f.layout.Commit.CommitDirty()
	if _, _, enabled := v.Scene.Coords(); !enabled {
		t.Fatal("view is hidden after switching back")
	}
}

func TestArrangeInterpolatesPosition(t *testing.T) {
	sched := loop.NewManual()
	curve, err := anim.NewCurve(true, 100, 0, nil, 0, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	a := anim.NewContext(sched, anim.Config{Enabled: true, Frequency: 20 * time.Millisecond, Default: curve})
	f := newFixture(t, a)

	first := f.addView()
	sched.Advance(time.Second)
	if got := screenX(first); got != 250 {
		t.Fatalf("settled at x=%d, want 250", got)
	}

	f.addView()
	// First of five steps: a fifth of the way from 250 to 0.
	if got := screenX(first); got != 200 {
		t.Fatalf("first frame at x=%d, want 200", got)
	}
	if got := f.top(first).Current.X; got != 0 {
		t.Fatalf("committed x=%v, want the final 0", got)
	}

	sched.Advance(time.Second)
	if got := screenX(first); got != 0 {
		t.Fatalf("settled at x=%d, want 0", got)
	}
	if a.Running() {
		t.Fatal("animation still running")
	}
}

func TestPlaceSyncsCrossAxisBeforeWobble(t *testing.T) {
	wobble := anim.Values{T: 0.5, X: 0.5, Y: 1, Scale: 0.1}
	tests := []struct {
		name   string
		before bool
		want   int
	}{
		// Children after the active one check the stale cross position.
		{"after active", false, 80},
		// Children before it take the parent's position first.
		{"before active", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			v := f.addView()
			parent := f.top(v)
			f.ws.Current.Y, f.ws.Current.Height = 0, 800

			parent.Current.X, parent.Pending.X = 300, 300
			v.Current.X, v.Pending.X = 0, 0
			v.Current.Y, v.Pending.Y = 0, 0
			v.Animation = tree.Animation{X0: 300, Y0: 0, W0: 500, W1: 500, H0: 800, H1: 800}

			f.render.place(f.ws, tree.LayoutVert, v, 0, wobble, parent.Scene, tt.before)

			if v.Scene.Y != tt.want {
				t.Fatalf("scene y=%d, want %d", v.Scene.Y, tt.want)
			}
			if v.Pending.X != 300 || v.Current.X != 300 {
				t.Fatalf("cross position %v/%v, want 300", v.Current.X, v.Pending.X)
			}
		})
	}
}
