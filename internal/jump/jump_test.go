package jump

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

type applier struct {
	tree *tree.Tree
}

func (a applier) CommitDirty() {
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
}

type keyboard struct {
	grabbed bool
	err     error
}

func (k *keyboard) GrabKeyboard() error {
	if k.err != nil {
		return k.err
	}
	k.grabbed = true
	return nil
}

func (k *keyboard) UngrabKeyboard() { k.grabbed = false }

type fixture struct {
	tree  *tree.Tree
	ws    *tree.Workspace
	kb    *keyboard
	jump  *Jump
	views []*tree.Container
}

func newFixture(t *testing.T, views int, keys string) *fixture {
	t.Helper()
	tr := tree.New(tree.Defaults{
		LayoutType:    tree.LayoutHoriz,
		DefaultWidth:  0.5,
		DefaultHeight: 1,
	})
	o := tr.NewOutput("test", geom.Box{Width: 1000, Height: 800})
	ws := tr.NewWorkspace("1", o.ID)
	l := layout.New(tr, nil, applier{tr}, layout.DefaultOptions())
	l.InitWorkspace(ws.ID)

	f := &fixture{tree: tr, ws: ws, kb: &keyboard{}}
	for range views {
		v := tr.NewView(stubView{})
		l.AddView(ws, tr.Focused(), v.ID)
		tr.SetFocus(v.ID)
		f.views = append(f.views, v)
	}
	l.ArrangeWorkspace(ws.ID)
	l.Commit.CommitDirty()

	opts := DefaultOptions()
	opts.Keys = keys
	f.jump = New(l, f.kb, opts)
	return f
}

func (f *fixture) press(t *testing.T, keys string) bool {
	t.Helper()
	done := false
	for i, r := range keys {
		if done {
			t.Fatalf("jump ended before key %d", i)
		}
		done = f.jump.Key(r)
	}
	return done
}

func TestKeyCount(t *testing.T) {
	tests := []struct {
		n, k, want int
	}{
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{16, 4, 2},
		{17, 4, 3},
		{3, 2, 2},
		{1000, 10, 3},
	}
	for _, tt := range tests {
		if got := KeyCount(tt.n, tt.k); got != tt.want {
			t.Errorf("KeyCount(%d, %d) = %d, want %d", tt.n, tt.k, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		i    int
		keys string
		n    int
		want string
	}{
		{0, "123", 2, "11"},
		{5, "123", 2, "23"},
		{8, "123", 2, "33"},
		{3, "abcd", 1, "d"},
		{1, "12", 3, "112"},
	}
	for _, tt := range tests {
		if got := Label(tt.i, tt.keys, tt.n); got != tt.want {
			t.Errorf("Label(%d, %q, %d) = %q, want %q", tt.i, tt.keys, tt.n, got, tt.want)
		}
	}
}

func TestJumpFocusesLabeledView(t *testing.T) {
	f := newFixture(t, 5, "12")
	if err := f.jump.Start(); err != nil {
		t.Fatal(err)
	}
	if !f.jump.Active() || !f.kb.grabbed {
		t.Fatal("jump did not take the keyboard")
	}
	if !f.ws.Layout.Overview {
		t.Fatal("overview is off during the jump")
	}
	want := []string{"111", "112", "121", "122", "211"}
	for i, v := range f.views {
		if v.JumpLabel != want[i] {
			t.Errorf("view %d has label %q, want %q", i, v.JumpLabel, want[i])
		}
	}

	if !f.press(t, "112") {
		t.Fatal("jump did not end after the last key")
	}
	if f.tree.Focused() != f.views[1].ID {
		t.Fatal("labeled view was not focused")
	}
	if f.jump.Active() || f.kb.grabbed {
		t.Fatal("jump still holds the keyboard")
	}
	if f.ws.Layout.Overview {
		t.Fatal("overview was not restored")
	}
	for i, v := range f.views {
		if v.JumpLabel != "" {
			t.Errorf("view %d kept label %q", i, v.JumpLabel)
		}
	}
}

func TestJumpEndsWithoutFocus(t *testing.T) {
	tests := []struct {
		name string
		keys string
	}{
		{name: "invalid key", keys: "x"},
		{name: "number past the last view", keys: "22"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 3, "12")
			focused := f.tree.Focused()
			if err := f.jump.Start(); err != nil {
				t.Fatal(err)
			}
			if !f.press(t, tt.keys) {
				t.Fatal("jump did not end")
			}
			if f.tree.Focused() != focused {
				t.Fatal("focus changed")
			}
			if f.jump.Active() || f.ws.Layout.Overview {
				t.Fatal("jump state was not cleaned up")
			}
		})
	}
}

func TestJumpKeepsOverviewItDidNotEnable(t *testing.T) {
	f := newFixture(t, 2, "12")
	f.jump.Layout.OverviewToggle(f.ws)

	if err := f.jump.Start(); err != nil {
		t.Fatal(err)
	}
	f.jump.Cancel()
	if !f.ws.Layout.Overview {
		t.Fatal("overview turned on by the user was turned off")
	}
}

func TestJumpStartErrors(t *testing.T) {
	t.Run("no views", func(t *testing.T) {
		f := newFixture(t, 0, "12")
		if err := f.jump.Start(); err != nil {
			t.Fatal(err)
		}
		if f.jump.Active() || f.kb.grabbed {
			t.Fatal("jump started without views")
		}
	})
	t.Run("single key", func(t *testing.T) {
		f := newFixture(t, 2, "1")
		if err := f.jump.Start(); !errors.Is(err, ErrKeys) {
			t.Fatalf("got %v, want %v", err, ErrKeys)
		}
	})
	t.Run("keyboard grab fails", func(t *testing.T) {
		f := newFixture(t, 2, "12")
		grabErr := errors.New("already grabbed")
		f.kb.err = grabErr
		if err := f.jump.Start(); !errors.Is(err, grabErr) {
			t.Fatalf("got %v, want %v", err, grabErr)
		}
		if f.jump.Active() || f.ws.Layout.Overview || f.views[0].JumpLabel != "" {
			t.Fatal("failed jump left state behind")
		}
	})
}

func TestPlacement(t *testing.T) {
	f := newFixture(t, 1, "12")
	v := f.views[0]
	v.Pending.Width, v.Pending.Height = 400, 200

	scale, x, y := f.jump.Placement(v, 100, 20)
	// The label fits the width at 4x and is drawn at half of that.
	if scale != 2 || x != 100 || y != 80 {
		t.Fatalf("got scale %v at (%d, %d), want 2 at (100, 80)", scale, x, y)
	}
}
