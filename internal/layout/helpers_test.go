package layout

import (
	"testing"

	"github.com/ItsNotGoodName/x-scroller/internal/geom"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

type stubView struct{ name string }

func (v *stubView) Configure(x, y, width, height float64) uint32 { return 1 }
func (v *stubView) SaveBuffer()                                  {}
func (v *stubView) RemoveSavedBuffer()                           {}
func (v *stubView) HasSavedBuffer() bool                         { return false }
func (v *stubView) IsVisible() bool                              { return true }
func (v *stubView) SendFrameDone()                               {}
func (v *stubView) PositionAware() bool                          { return false }
func (v *stubView) CenterAndClip(width, height float64)          {}
func (v *stubView) AppID() string                                { return v.name }
func (v *stubView) Title() string                                { return v.name }

// syncCommitter copies pending state into current state the way an applied
// transaction does.
type syncCommitter struct {
	tree    *tree.Tree
	commits int
}

func (s *syncCommitter) CommitDirty() {
	s.commits++
	for _, n := range s.tree.TakeDirty() {
		switch n.Kind {
		case tree.NodeContainer:
			if c := s.tree.Container(n.Container); c != nil {
				c.Current = c.Pending.Clone()
			}
		case tree.NodeWorkspace:
			if ws := s.tree.Workspace(n.Workspace); ws != nil {
				ws.Current = ws.Pending.Clone()
			}
		case tree.NodeOutput:
			if o := s.tree.Output(n.Output); o != nil {
				o.Current = o.Pending.Clone()
			}
		}
	}
}

type fixture struct {
	t      *testing.T
	tree   *tree.Tree
	layout *Layout
	commit *syncCommitter
	ws     *tree.Workspace
}

func newFixture(t *testing.T, gaps float64) *fixture {
	t.Helper()
	tr := tree.New(tree.Defaults{
		LayoutType:    tree.LayoutHoriz,
		DefaultWidth:  0.5,
		DefaultHeight: 1,
		Widths:        []float64{0.25, 0.5, 0.75},
		Heights:       []float64{0.5, 1},
		GapsInner:     gaps,
	})
	o := tr.NewOutput("test", geom.Box{Width: 1000, Height: 800})
	ws := tr.NewWorkspace("1", o.ID)
	c := &syncCommitter{tree: tr}
	l := New(tr, nil, c, DefaultOptions())
	l.InitWorkspace(ws.ID)
	l.ArrangeWorkspace(ws.ID)
	c.CommitDirty()
	return &fixture{t: t, tree: tr, layout: l, commit: c, ws: ws}
}

// addView maps a new view next to the focused one, focuses it and commits.
func (f *fixture) addView(name string) *tree.Container {
	f.t.Helper()
	v := f.tree.NewView(&stubView{name})
	f.layout.AddView(f.ws, f.tree.Focused(), v.ID)
	f.tree.SetFocus(v.ID)
	f.layout.ArrangeWorkspace(f.ws.ID)
	f.commit.CommitDirty()
	return v
}

func (f *fixture) parent(c *tree.Container) *tree.Container {
	return f.tree.Container(c.Pending.Parent)
}

func (f *fixture) tiling() []tree.ContainerID {
	return f.ws.Pending.Tiling
}
