package tree

import (
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/scene"
	"github.com/google/uuid"
)

type WorkspaceID = Handle[Workspace]

type WorkspaceState struct {
	X      float64
	Y      float64
	Width  float64
	Height float64

	Output               OutputID
	Tiling               []ContainerID
	Floating             []ContainerID
	Fullscreen           ContainerID
	FocusedInactiveChild ContainerID
	Focused              bool
}

func (s WorkspaceState) Clone() WorkspaceState {
	s.Tiling = slices.Clone(s.Tiling)
	s.Floating = slices.Clone(s.Floating)
	return s
}

type Workspace struct {
	ID    WorkspaceID
	UUID  uuid.UUID
	Name  string
	Dirty bool

	Pending WorkspaceState
	Current WorkspaceState

	GapsInner float64
	GapsOuter float64

	Layout  Scroller
	Gesture Gesture

	Scene struct {
		Tiling   *scene.Node
		Floating *scene.Node
	}
}

func (t *Tree) Workspace(id WorkspaceID) *Workspace {
	return t.workspaces.Get(id)
}

// NewWorkspace creates a workspace on output o.
func (t *Tree) NewWorkspace(name string, o OutputID) *Workspace {
	id := t.workspaces.Insert(Workspace{
		UUID:      uuid.New(),
		Name:      name,
		GapsInner: t.Defaults.GapsInner,
		GapsOuter: t.Defaults.GapsOuter,
	})
	ws := t.workspaces.Get(id)
	ws.ID = id
	ws.Layout.Scale = -1
	ws.Layout.MemScale = -1
	ws.Scene.Tiling = t.Root.CreateTree()
	ws.Scene.Floating = t.Root.CreateTree()
	if out := t.Output(o); out != nil {
		ws.Pending.Output = o
		out.Pending.Workspaces = append(out.Pending.Workspaces, id)
		if !out.Pending.Active.Valid() {
			out.Pending.Active = id
		}
		ws.Scene.Tiling.Reparent(out.Scene)
		ws.Scene.Floating.Reparent(out.Scene)
		t.MarkDirty(OutputNode(o))
	}
	t.MarkWorkspaceDirty(id)
	return ws
}

// WorkspaceByName returns the first workspace called name.
func (t *Tree) WorkspaceByName(name string) *Workspace {
	var found *Workspace
	t.workspaces.Each(func(_ WorkspaceID, ws *Workspace) {
		if found == nil && ws.Name == name {
			found = ws
		}
	})
	return found
}

// Workspaces lists workspaces in output order.
func (t *Tree) Workspaces() []WorkspaceID {
	var ids []WorkspaceID
	for _, o := range t.Outputs {
		if out := t.Output(o); out != nil {
			ids = append(ids, out.Pending.Workspaces...)
		}
	}
	return ids
}

// ActiveChild returns the top-level container layout anchors on.
func (ws *Workspace) ActiveChild() ContainerID {
	if ws.Pending.FocusedInactiveChild.Valid() && slices.Contains(ws.Pending.Tiling, ws.Pending.FocusedInactiveChild) {
		return ws.Pending.FocusedInactiveChild
	}
	return ws.Current.FocusedInactiveChild
}

// SetActiveChild sets the anchor in both states so an arrange before the next
// commit already uses it.
func (ws *Workspace) SetActiveChild(id ContainerID) {
	ws.Pending.FocusedInactiveChild = id
	ws.Current.FocusedInactiveChild = id
}

// InsertTiling inserts c at idx of the tiling list, clamped to its bounds.
func (t *Tree) InsertTiling(wsID WorkspaceID, id ContainerID, idx int) {
	ws := t.Workspace(wsID)
	c := t.Container(id)
	if ws == nil || c == nil {
		return
	}
	idx = max(0, min(idx, len(ws.Pending.Tiling)))
	ws.Pending.Tiling = slices.Insert(ws.Pending.Tiling, idx, id)
	c.Pending.Parent = ContainerID{}
	t.SetWorkspace(id, wsID)
	t.MarkWorkspaceDirty(wsID)
	t.MarkContainerDirty(id)
}

// AddFloating appends c to the floating list.
func (t *Tree) AddFloating(wsID WorkspaceID, id ContainerID) {
	ws := t.Workspace(wsID)
	c := t.Container(id)
	if ws == nil || c == nil {
		return
	}
	ws.Pending.Floating = append(ws.Pending.Floating, id)
	c.Pending.Parent = ContainerID{}
	t.SetWorkspace(id, wsID)
	t.MarkWorkspaceDirty(wsID)
	t.MarkContainerDirty(id)
}

// EachTiling calls fn for every tiling container of ws, parents before children.
func (t *Tree) EachTiling(wsID WorkspaceID, fn func(c *Container)) {
	ws := t.Workspace(wsID)
	if ws == nil {
		return
	}
	var walk func(ids []ContainerID)
	walk = func(ids []ContainerID) {
		for _, id := range ids {
			if c := t.Container(id); c != nil {
				fn(c)
				walk(c.Pending.Children)
			}
		}
	}
	walk(ws.Pending.Tiling)
}

// IsVisible reports whether ws is the active workspace of its output.
func (t *Tree) IsVisible(wsID WorkspaceID) bool {
	ws := t.Workspace(wsID)
	if ws == nil {
		return false
	}
	o := t.Output(ws.Pending.Output)
	return o != nil && o.Pending.Active == wsID
}
