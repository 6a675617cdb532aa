package app

import (
	"context"
	"slices"
	"testing"

	"github.com/ItsNotGoodName/x-scroller/internal/bus"
	"github.com/ItsNotGoodName/x-scroller/internal/config"
	"github.com/ItsNotGoodName/x-scroller/internal/geom"
	"github.com/ItsNotGoodName/x-scroller/internal/loop"
	"github.com/ItsNotGoodName/x-scroller/internal/scene"
	"github.com/ItsNotGoodName/x-scroller/internal/store"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/ItsNotGoodName/x-scroller/internal/xwm"
)

type stubView struct {
	appID   string
	serials []uint32
	next    uint32
	saved   bool
}

func (v *stubView) Configure(x, y, width, height float64) uint32 {
	v.next++
	v.serials = append(v.serials, v.next)
	return v.next
}
func (v *stubView) SaveBuffer()                         { v.saved = true }
func (v *stubView) RemoveSavedBuffer()                  { v.saved = false }
func (v *stubView) HasSavedBuffer() bool                { return v.saved }
func (v *stubView) IsVisible() bool                     { return true }
func (v *stubView) SendFrameDone()                      {}
func (v *stubView) PositionAware() bool                 { return false }
func (v *stubView) CenterAndClip(width, height float64) {}
func (v *stubView) AppID() string                       { return v.appID }
func (v *stubView) Title() string                       { return v.appID }

type fakeBackend struct {
	focused     tree.View
	syncs       int
	grabbed     bool
	decorations map[tree.View]xwm.Decoration
}

func (b *fakeBackend) GrabKeyboard() error { b.grabbed = true; return nil }
func (b *fakeBackend) UngrabKeyboard()     { b.grabbed = false }
func (b *fakeBackend) Focus(v tree.View)   { b.focused = v }

func (b *fakeBackend) Sync(root *scene.Node, decorate func(v tree.View) xwm.Decoration) {
	b.syncs++
	b.decorations = make(map[tree.View]xwm.Decoration)
	root.ForEachBuffer(func(n *scene.Node, x, y int) {
		if v, ok := n.Buffer.(tree.View); ok {
			b.decorations[v] = decorate(v)
		}
	})
}

func (b *fakeBackend) TextSize(text string) (float64, float64) {
	return float64(8 * len(text)), 13
}

type fakeMemory map[string]store.Fractions

func (m fakeMemory) Get(ctx context.Context, appID string) (store.Fractions, bool, error) {
	f, ok := m[appID]
	return f, ok, nil
}

func (m fakeMemory) Save(ctx context.Context, f store.Fractions) error {
	m[f.AppID] = f
	return nil
}

type fixture struct {
	t       *testing.T
	server  *Server
	backend *fakeBackend
	sched   *loop.Manual
}

func newFixture(t *testing.T, atomic bool) *fixture {
	t.Helper()
	settings, err := config.Default().Settings()
	if err != nil {
		t.Fatal(err)
	}
	settings.Anim.Enabled = false
	settings.Txn.NoAtomic = !atomic

	sched := loop.NewManual()
	b := &fakeBackend{}
	s := New(sched, b, settings)
	t.Cleanup(bus.Reset)
	return &fixture{t: t, server: s, backend: b, sched: sched}
}

func (f *fixture) monitor() {
	f.server.SetMonitors([]xwm.Monitor{{Name: "eDP-1", Box: geom.Box{Width: 1000, Height: 800}}})
}

func (f *fixture) mapView(appID string) (*stubView, tree.ContainerID) {
	f.t.Helper()
	v := &stubView{appID: appID}
	id := f.server.MapView(v)
	if !id.Valid() {
		f.t.Fatalf("map %s returned an invalid id", appID)
	}
	return v, id
}

func (f *fixture) workspace() *tree.Workspace {
	f.t.Helper()
	ws := f.server.Tree.WorkspaceByName("1")
	if ws == nil {
		f.t.Fatal("no workspace 1")
	}
	return ws
}

func TestSetMonitors(t *testing.T) {
	f := newFixture(t, false)
	s := f.server

	left := xwm.Monitor{Name: "eDP-1", Box: geom.Box{Width: 1000, Height: 800}}
	right := xwm.Monitor{Name: "HDMI-1", Box: geom.Box{X: 1000, Width: 1920, Height: 1080}}

	s.SetMonitors([]xwm.Monitor{left, right})
	if s.Tree.EnabledOutputs() != 2 {
		t.Fatalf("enabled outputs = %d", s.Tree.EnabledOutputs())
	}
	for name, ws := range map[string]string{"eDP-1": "1", "HDMI-1": "2"} {
		o := s.Tree.OutputByName(name)
		if o == nil || len(o.Pending.Workspaces) != 1 {
			t.Fatalf("output %s: %+v", name, o)
		}
		if got := s.Tree.Workspace(o.Pending.Workspaces[0]).Name; got != ws {
			t.Errorf("output %s workspace = %s, want %s", name, got, ws)
		}
	}
	if f.backend.syncs == 0 {
		t.Error("backend never synced")
	}

	s.SetMonitors([]xwm.Monitor{left})
	if o := s.Tree.OutputByName("HDMI-1"); o.Enabled {
		t.Error("unplugged output is still enabled")
	}

	right.Box.Width = 2560
	s.SetMonitors([]xwm.Monitor{left, right})
	o := s.Tree.OutputByName("HDMI-1")
	if !o.Enabled || o.Box.Width != 2560 || len(o.Pending.Workspaces) != 1 {
		t.Fatalf("replugged output %+v", o)
	}
}

func TestWorkspaceAt(t *testing.T) {
	f := newFixture(t, false)
	f.server.SetMonitors([]xwm.Monitor{
		{Name: "eDP-1", Box: geom.Box{Width: 1000, Height: 800}},
		{Name: "HDMI-1", Box: geom.Box{X: 1000, Width: 1000, Height: 800}},
	})

	tests := []struct {
		x, y float64
		want string
	}{
		{10, 10, "1"},
		{1500, 400, "2"},
		{2500, 400, ""},
	}
	for _, tt := range tests {
		ws := f.server.WorkspaceAt(tt.x, tt.y)
		got := ""
		if ws != nil {
			got = ws.Name
		}
		if got != tt.want {
			t.Errorf("WorkspaceAt(%v, %v) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMapView(t *testing.T) {
	f := newFixture(t, false)
	f.monitor()

	var events []bus.WindowEvent
	bus.Subscribe("test", func(ctx context.Context, e bus.WindowEvent) error {
		events = append(events, e)
		return nil
	})

	_, a := f.mapView("kitty")
	vb, b := f.mapView("firefox")

	s := f.server
	if s.Tree.Focused() != b {
		t.Fatalf("focused %v, want %v", s.Tree.Focused(), b)
	}
	if f.backend.focused != vb {
		t.Error("backend did not focus the new view")
	}
	ws := f.workspace()
	if len(ws.Pending.Tiling) != 2 {
		t.Fatalf("tiling %v", ws.Pending.Tiling)
	}
	if top := s.Tree.TopLevel(a); top == nil || top.ID != ws.Pending.Tiling[0] {
		t.Error("first view is not first")
	}
	if c := s.Tree.Container(b); c.Current.Width == 0 {
		t.Error("transaction was not applied")
	}

	var changes []string
	for _, e := range events {
		changes = append(changes, e.Change+":"+e.AppID)
	}
	for _, want := range []string{"new:kitty", "new:firefox", "focus:firefox"} {
		if !slices.Contains(changes, want) {
			t.Errorf("missing event %s in %v", want, changes)
		}
	}
}

func TestMapViewWithoutOutputs(t *testing.T) {
	f := newFixture(t, false)
	_, id := f.mapView("kitty")
	if c := f.server.Tree.Container(id); c.Pending.Workspace.Valid() {
		t.Fatal("view placed without a workspace")
	}

	f.monitor()
	ws := f.workspace()
	if len(ws.Pending.Tiling) != 1 || f.server.Tree.Focused() != id {
		t.Fatalf("orphan not adopted: tiling %v focused %v", ws.Pending.Tiling, f.server.Tree.Focused())
	}
}

func TestUnmapView(t *testing.T) {
	f := newFixture(t, false)
	f.monitor()
	s := f.server

	_, a := f.mapView("a")
	_, b := f.mapView("b")
	s.Dispatcher.Run("trail new; trailmark toggle")
	if s.Trails.ActiveLength() != 1 {
		t.Fatalf("trail length %d", s.Trails.ActiveLength())
	}

	s.UnmapView(b)
	if s.Tree.Focused() != a {
		t.Fatalf("focused %v, want %v", s.Tree.Focused(), a)
	}
	if s.Trails.ActiveLength() != 0 {
		t.Error("unmapped view is still trailmarked")
	}
	if n := len(f.workspace().Pending.Tiling); n != 1 {
		t.Errorf("tiling has %d containers", n)
	}

	s.UnmapView(a)
	if s.Tree.Focused().Valid() {
		t.Error("focus survived the last view")
	}
	if f.backend.focused != nil {
		t.Error("backend still focuses a view")
	}
	s.UnmapView(a)
}

func TestFractionMemory(t *testing.T) {
	f := newFixture(t, false)
	f.monitor()
	memory := fakeMemory{"mpv": {AppID: "mpv", Width: 0.75, Height: 1}}
	f.server.Memory = memory

	_, id := f.mapView("mpv")
	top := f.server.Tree.TopLevel(id)
	if top.WidthFraction != 0.75 {
		t.Fatalf("restored width %v", top.WidthFraction)
	}

	res := f.server.Dispatcher.Run("set_size h 0.5")
	if len(res) != 1 || !res[0].Success() {
		t.Fatalf("set_size: %+v", res)
	}
	if got := memory["mpv"].Width; got != 0.5 {
		t.Errorf("saved width after set_size = %v", got)
	}

	_, other := f.mapView("kitty")
	f.server.Tree.TopLevel(other).WidthFraction = 0.25
	f.server.UnmapView(other)
	if got := memory["kitty"].Width; got != 0.25 {
		t.Errorf("saved width on unmap = %v", got)
	}
}

func TestAtomicCommitWaitsForAck(t *testing.T) {
	f := newFixture(t, true)
	f.monitor()
	s := f.server

	v, id := f.mapView("kitty")
	c := s.Tree.Container(id)
	if len(v.serials) != 1 {
		t.Fatalf("configures %v", v.serials)
	}
	if c.Current.Width != 0 {
		t.Fatal("applied before the view acknowledged")
	}
	syncs := f.backend.syncs

	if !s.Txn.NotifyBySerial(id, v.serials[0]) {
		t.Fatal("ack was not accepted")
	}
	if c.Current.Width == 0 {
		t.Fatal("not applied after the ack")
	}
	if f.backend.syncs == syncs {
		t.Error("backend not synced after apply")
	}
}

func TestAtomicCommitTimesOut(t *testing.T) {
	f := newFixture(t, true)
	f.monitor()
	_, id := f.mapView("kitty")

	f.sched.Advance(f.server.Txn.Options().Timeout)
	if f.server.Tree.Container(id).Current.Width == 0 {
		t.Fatal("not applied after the timeout")
	}
	if f.server.Txn.Timeouts() != 1 {
		t.Errorf("timeouts = %d", f.server.Txn.Timeouts())
	}
}

func TestDecorate(t *testing.T) {
	f := newFixture(t, false)
	f.monitor()
	s := f.server

	va, a := f.mapView("a")
	vb, _ := f.mapView("b")
	s.Selection.Set(a, true)
	s.Tree.MarkContainerDirty(a)
	s.commit()

	if got := f.backend.decorations[va].Border; got != ColorSelected {
		t.Errorf("selected border %#x", got)
	}
	if got := f.backend.decorations[vb].Border; got != ColorFocused {
		t.Errorf("focused border %#x", got)
	}
}

func TestJumpLabels(t *testing.T) {
	f := newFixture(t, false)
	f.monitor()
	s := f.server

	va, a := f.mapView("a")
	f.mapView("b")

	if err := s.Jump.Start(); err != nil {
		t.Fatal(err)
	}
	if !f.backend.grabbed {
		t.Fatal("keyboard not grabbed")
	}
	label := f.backend.decorations[va].Label
	if label.Text == "" || label.Scale <= 0 {
		t.Fatalf("label %+v", label)
	}

	Handler{s}.Key(rune(label.Text[0]))
	if s.Jump.Active() {
		t.Fatal("jump still running")
	}
	if f.backend.grabbed {
		t.Error("keyboard still grabbed")
	}
	if s.Tree.Focused() != a {
		t.Errorf("focused %v, want %v", s.Tree.Focused(), a)
	}
}
