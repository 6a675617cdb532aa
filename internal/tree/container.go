package tree

import (
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/scene"
)

type ContainerID = Handle[Container]

type ContainerState struct {
	X      float64
	Y      float64
	Width  float64
	Height float64

	ContentX      float64
	ContentY      float64
	ContentWidth  float64
	ContentHeight float64

	Layout               Layout
	Children             []ContainerID
	Parent               ContainerID
	Workspace            WorkspaceID
	FocusedInactiveChild ContainerID
	Focused              bool
	Fullscreen           bool
}

// Clone copies the state without sharing the children list.
func (s ContainerState) Clone() ContainerState {
	s.Children = slices.Clone(s.Children)
	return s
}

// Animation holds the geometry a transition starts from and goes to.
type Animation struct {
	X0 float64
	Y0 float64
	W0 float64
	H0 float64
	W1 float64
	H1 float64
}

type Container struct {
	ID    ContainerID
	Dirty bool

	Pending ContainerState
	Current ContainerState

	WidthFraction  float64
	HeightFraction float64
	// FreeSize makes the pending pixel size authoritative over the fractions.
	FreeSize bool

	// View is nil for split containers.
	View View

	Selected   bool
	Scratchpad bool
	JumpLabel  string
	Animation  Animation

	Scene *scene.Node
}

func (c *Container) IsView() bool {
	return c.View != nil
}

func (t *Tree) Container(id ContainerID) *Container {
	return t.containers.Get(id)
}

// NewView wraps v in a detached view container.
func (t *Tree) NewView(v View) *Container {
	id := t.containers.Insert(Container{View: v})
	c := t.containers.Get(id)
	c.ID = id
	c.Scene = t.Root.CreateTree()
	c.Scene.Buffer = v
	c.Scene.SetEnabled(false)
	return c
}

// NewSplit creates a detached split container laying children out along layout.
func (t *Tree) NewSplit(layout Layout) *Container {
	id := t.containers.Insert(Container{})
	c := t.containers.Get(id)
	c.ID = id
	c.Pending.Layout = layout
	c.Scene = t.Root.CreateTree()
	c.Scene.SetEnabled(false)
	return c
}

func (t *Tree) ContainerCount() int {
	return t.containers.Len()
}

// EachContainer iterates every live container, including destroying ones.
func (t *Tree) EachContainer(fn func(c *Container)) {
	t.containers.Each(func(_ ContainerID, c *Container) { fn(c) })
}

// SetWorkspace sets the workspace of c and its subtree.
func (t *Tree) SetWorkspace(id ContainerID, ws WorkspaceID) {
	c := t.Container(id)
	if c == nil {
		return
	}
	c.Pending.Workspace = ws
	for _, child := range c.Pending.Children {
		t.SetWorkspace(child, ws)
	}
}

// SetParent makes child belong to parent without touching any list.
func (t *Tree) SetParent(child, parent ContainerID) {
	c := t.Container(child)
	if c == nil {
		return
	}
	c.Pending.Parent = parent
	if p := t.Container(parent); p != nil {
		t.SetWorkspace(child, p.Pending.Workspace)
	}
}

// AddChild appends child to parent.
func (t *Tree) AddChild(parent, child ContainerID) {
	p := t.Container(parent)
	if p == nil {
		return
	}
	t.InsertChild(parent, child, len(p.Pending.Children))
}

// InsertChild inserts child into parent at idx, clamped to the list bounds.
func (t *Tree) InsertChild(parent, child ContainerID, idx int) {
	p := t.Container(parent)
	if p == nil {
		return
	}
	idx = max(0, min(idx, len(p.Pending.Children)))
	p.Pending.Children = slices.Insert(p.Pending.Children, idx, child)
	t.SetParent(child, parent)
	t.MarkContainerDirty(parent)
	t.MarkContainerDirty(child)
}

// Siblings returns the list that owns c: its parent's children, or the
// tiling or floating list of its workspace.
func (t *Tree) Siblings(id ContainerID) *[]ContainerID {
	c := t.Container(id)
	if c == nil {
		return nil
	}
	if p := t.Container(c.Pending.Parent); p != nil {
		return &p.Pending.Children
	}
	ws := t.Workspace(c.Pending.Workspace)
	if ws == nil {
		return nil
	}
	if slices.Contains(ws.Pending.Floating, id) {
		return &ws.Pending.Floating
	}
	return &ws.Pending.Tiling
}

// SiblingIndex returns the position of c in its owning list or -1.
func (t *Tree) SiblingIndex(id ContainerID) int {
	list := t.Siblings(id)
	if list == nil {
		return -1
	}
	return slices.Index(*list, id)
}

// Detach removes c from whatever list holds it.
func (t *Tree) Detach(id ContainerID) {
	c := t.Container(id)
	if c == nil {
		return
	}
	if list := t.Siblings(id); list != nil {
		if idx := slices.Index(*list, id); idx >= 0 {
			*list = slices.Delete(*list, idx, idx+1)
		}
	}
	if p := t.Container(c.Pending.Parent); p != nil {
		if p.Pending.FocusedInactiveChild == id {
			p.Pending.FocusedInactiveChild = ContainerID{}
		}
		t.MarkContainerDirty(p.ID)
	} else if ws := t.Workspace(c.Pending.Workspace); ws != nil {
		if ws.Pending.FocusedInactiveChild == id {
			ws.Pending.FocusedInactiveChild = ContainerID{}
		}
		t.MarkWorkspaceDirty(ws.ID)
	}
	c.Pending.Parent = ContainerID{}
	t.SetWorkspace(id, WorkspaceID{})
	t.MarkContainerDirty(id)
}

// BeginDestroy detaches c and marks it for destruction once no transaction
// references it.
func (t *Tree) BeginDestroy(id ContainerID) {
	c := t.Container(id)
	if c == nil || t.containers.Destroying(id) {
		return
	}
	if ws := t.Workspace(c.Pending.Workspace); ws != nil {
		if ws.Pending.Fullscreen == id {
			ws.Pending.Fullscreen = ContainerID{}
		}
		if ws.Layout.Pin.Container == id {
			ws.Layout.Pin = Pin{}
		}
	}
	if c.Pending.Parent.Valid() || c.Pending.Workspace.Valid() {
		t.Detach(id)
	}
	if i := slices.Index(t.Scratchpad, id); i >= 0 {
		t.Scratchpad = slices.Delete(t.Scratchpad, i, i+1)
	}
	if t.focus == id {
		t.focus = ContainerID{}
	}
	// The next transaction carries the removal and frees the slot.
	t.containers.MarkDestroying(id)
	t.MarkContainerDirty(id)
}

// Reap destroys c and its ancestors while they are empty split containers.
func (t *Tree) Reap(id ContainerID) {
	for c := t.Container(id); c != nil; {
		if c.IsView() || t.containers.Destroying(c.ID) {
			return
		}
		next := c.Pending.Parent
		if len(c.Pending.Children) == 0 {
			t.BeginDestroy(c.ID)
		}
		c = t.Container(next)
	}
}

// IsFloating reports whether c is a top-level floating container.
func (t *Tree) IsFloating(id ContainerID) bool {
	c := t.Container(id)
	if c == nil || c.Pending.Parent.Valid() {
		return false
	}
	ws := t.Workspace(c.Pending.Workspace)
	return ws != nil && slices.Contains(ws.Pending.Floating, id)
}

// IsFullscreen reports whether c or one of its ancestors is fullscreen.
func (t *Tree) IsFullscreen(id ContainerID) bool {
	for c := t.Container(id); c != nil; c = t.Container(c.Pending.Parent) {
		if c.Pending.Fullscreen {
			return true
		}
	}
	return false
}

// IsScratchpadHidden reports whether c or an ancestor is a scratchpad
// container that is not on any workspace.
func (t *Tree) IsScratchpadHidden(id ContainerID) bool {
	c := t.TopLevel(id)
	if c == nil {
		return false
	}
	return c.Scratchpad && !c.Pending.Workspace.Valid()
}

// TopLevel returns the ancestor of c that has no parent.
func (t *Tree) TopLevel(id ContainerID) *Container {
	c := t.Container(id)
	for c != nil {
		p := t.Container(c.Pending.Parent)
		if p == nil {
			return c
		}
		c = p
	}
	return nil
}

// Views returns the view containers below c in order, c included.
func (t *Tree) Views(id ContainerID) []ContainerID {
	c := t.Container(id)
	if c == nil {
		return nil
	}
	if c.IsView() {
		return []ContainerID{id}
	}
	var views []ContainerID
	for _, child := range c.Pending.Children {
		views = append(views, t.Views(child)...)
	}
	return views
}
