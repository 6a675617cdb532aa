package ipc

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/build"
	"github.com/ItsNotGoodName/x-scroller/internal/bus"
	"github.com/ItsNotGoodName/x-scroller/internal/command"
	"github.com/ItsNotGoodName/x-scroller/internal/geom"
	"github.com/ItsNotGoodName/x-scroller/internal/jump"
	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/loop"
	"github.com/ItsNotGoodName/x-scroller/internal/selection"
	"github.com/ItsNotGoodName/x-scroller/internal/trail"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
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
func (stubView) AppID() string                                { return "kitty" }
func (stubView) Title() string                                { return "shell" }

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

var inline = RunnerFunc(func(ctx context.Context, fn func() error) error {
	return fn()
})

func newDispatcher(t *testing.T) *command.Dispatcher {
	t.Helper()
	tr := tree.New(tree.Defaults{
		LayoutType:    tree.LayoutHoriz,
		DefaultWidth:  0.5,
		DefaultHeight: 1,
	})
	o := tr.NewOutput("test", geom.Box{Width: 1000, Height: 800})
	ws := tr.NewWorkspace("1", o.ID)

	l := layout.New(tr, nil, applier{tr}, layout.DefaultOptions())
	sel := selection.New(l)
	d := command.New(
		l,
		anim.NewContext(loop.NewManual(), anim.Config{}),
		sel,
		trail.New(tr, sel),
		jump.New(l, nil, jump.DefaultOptions()),
	)
	l.InitWorkspace(ws.ID)

	v := tr.NewView(stubView{})
	l.AddView(ws, tr.Focused(), v.ID)
	tr.SetFocus(v.ID)
	l.ArrangeWorkspace(ws.ID)
	l.Commit.CommitDirty()
	return d
}

func newClient(t *testing.T, b Backend) *Client {
	t.Helper()
	srv := httptest.NewServer(NewHandler(b))
	t.Cleanup(srv.Close)
	return NewClient(srv.Listener.Addr().String())
}

func TestCommand(t *testing.T) {
	ctx := context.Background()
	d := newDispatcher(t)
	c := newClient(t, Backend{Runner: inline, Dispatcher: d})

	results, err := c.Command(ctx, "set_mode v; bogus")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if !results[0].Success() || results[0].Command != "set_mode v" {
		t.Errorf("first result %+v", results[0])
	}
	if results[1].Status != command.StatusInvalid || results[1].Error != "Unknown/invalid command 'bogus'" {
		t.Errorf("second result %+v", results[1])
	}

	tr := d.Layout.Tree
	ws := tr.Workspace(tr.Workspaces()[0])
	if ws == nil || ws.Layout.Mode != tree.LayoutVert {
		t.Fatalf("workspace mode was not changed: %+v", ws)
	}
}

func TestCommandRejectsLongMode(t *testing.T) {
	d := newDispatcher(t)
	c := newClient(t, Backend{Runner: inline, Dispatcher: d})

	results, err := c.Command(context.Background(), "set_mode vertical")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Status != command.StatusInvalid {
		t.Fatalf("got %+v", results)
	}
	tr := d.Layout.Tree
	if ws := tr.Workspace(tr.Workspaces()[0]); ws.Layout.Mode != tree.LayoutHoriz {
		t.Fatalf("mode changed to %v", ws.Layout.Mode)
	}
}

func TestCommandValidation(t *testing.T) {
	c := newClient(t, Backend{Runner: inline, Dispatcher: newDispatcher(t)})

	_, err := c.Command(context.Background(), "")
	var model *huma.ErrorModel
	if !errors.As(err, &model) || model.Status != 422 {
		t.Fatalf("got %v", err)
	}
}

func TestRunnerUnavailable(t *testing.T) {
	busy := RunnerFunc(func(ctx context.Context, fn func() error) error {
		return context.DeadlineExceeded
	})
	c := newClient(t, Backend{Runner: busy, Dispatcher: newDispatcher(t)})

	_, err := c.Tree(context.Background())
	var model *huma.ErrorModel
	if !errors.As(err, &model) || model.Status != 503 {
		t.Fatalf("got %v", err)
	}
}

func TestTree(t *testing.T) {
	c := newClient(t, Backend{Runner: inline, Dispatcher: newDispatcher(t)})

	info, err := c.Tree(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if info.Type != tree.InfoRoot || len(info.Nodes) != 1 {
		t.Fatalf("root %+v", info)
	}
	output := info.Nodes[0]
	if output.Name != "test" || output.UUID == uuid.Nil || len(output.Nodes) != 1 {
		t.Fatalf("output %+v", output)
	}
	ws := output.Nodes[0]
	if ws.Name != "1" || ws.Layout != "horizontal" || ws.UUID == uuid.Nil || ws.UUID == output.UUID || len(ws.Nodes) != 1 {
		t.Fatalf("workspace %+v", ws)
	}
	// A view added in horizontal mode gets its own top-level container,
	// whose axis is flipped against the workspace.
	wrapper := ws.Nodes[0]
	if wrapper.Type != tree.InfoContainer || wrapper.Layout != "vertical" || wrapper.AppID != "" || len(wrapper.Nodes) != 1 {
		t.Fatalf("wrapper %+v", wrapper)
	}
	if view := wrapper.Nodes[0]; view.AppID != "kitty" || view.Name != "shell" || view.Layout != "" {
		t.Fatalf("view %+v", view)
	}
}

func TestWorkspaces(t *testing.T) {
	c := newClient(t, Backend{Runner: inline, Dispatcher: newDispatcher(t)})

	list, err := c.Workspaces(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("got %+v", list)
	}
	ws := list[0]
	if ws.Name != "1" || ws.Output != "test" || !ws.Visible || ws.Views != 1 || ws.Layout != "horizontal" {
		t.Fatalf("got %+v", ws)
	}
}

func TestTrails(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, Backend{Runner: inline, Dispatcher: newDispatcher(t)})

	results, err := c.Command(ctx, "trail new; trailmark toggle")
	if err != nil {
		t.Fatal(err)
	}
	for _, res := range results {
		if !res.Success() {
			t.Fatalf("%s: %s", res.Command, res.Error)
		}
	}

	info, err := c.Trails(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if info.Length != 1 || info.Active != 0 || info.ActiveLength != 1 {
		t.Fatalf("counters %+v", info)
	}
	if len(info.Trails) != 1 || len(info.Trails[0].Views) != 1 {
		t.Fatalf("trails %+v", info.Trails)
	}
}

func TestCommands(t *testing.T) {
	c := newClient(t, Backend{Runner: inline, Dispatcher: newDispatcher(t)})

	names, err := c.Commands(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != len(command.Names()) {
		t.Fatalf("got %v", names)
	}
}

func TestVersion(t *testing.T) {
	c := newClient(t, Backend{Runner: inline, Dispatcher: newDispatcher(t)})

	b, err := c.Version(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if b.Version != build.Current.Version || b.Commit != build.Current.Commit {
		t.Fatalf("got %+v, want %+v", b, build.Current)
	}
}

func TestEvents(t *testing.T) {
	hub := bus.NewHub[bus.TrailEvent]()
	c := newClient(t, Backend{Runner: inline, Dispatcher: newDispatcher(t), Trail: hub})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stop := errors.New("stop")
	got := make(chan bus.Event, 1)
	go func() {
		c.Events(ctx, func(e bus.Event) error {
			got <- e
			return stop
		})
	}()

	// The stream subscribes asynchronously so keep publishing until it sees one.
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case e := <-got:
			if e.Name != EventTrail {
				t.Fatalf("event %q", e.Name)
			}
			data, ok := e.Data.(*bus.TrailEvent)
			if !ok || data.Length != 2 || data.ActiveLength != 3 {
				t.Fatalf("data %#v", e.Data)
			}
			return
		case <-ticker.C:
			hub.Broadcast(ctx, bus.TrailEvent{Length: 2, Active: 1, ActiveLength: 3})
		case <-ctx.Done():
			t.Fatal("no event received")
		}
	}
}
