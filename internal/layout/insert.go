package layout

import (
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// insertIndex returns where a new item goes in list relative to ref.
func insertIndex(list []tree.ContainerID, ref tree.ContainerID, pos tree.Insert) int {
	switch pos {
	case tree.InsertBeginning:
		return 0
	case tree.InsertEnd:
		return len(list)
	case tree.InsertAfter:
		return slices.Index(list, ref) + 1
	default:
		return max(slices.Index(list, ref), 0)
	}
}

// WrapIntoContainer wraps a detached container into a new split container
// with the given layout and returns the wrapper.
func (l *Layout) WrapIntoContainer(child tree.ContainerID, layout tree.Layout) *tree.Container {
	c := l.Tree.Container(child)
	cont := l.Tree.NewSplit(layout)
	if c == nil {
		return cont
	}
	cont.Pending.X = c.Pending.X
	cont.Pending.Y = c.Pending.Y
	cont.Pending.Width = c.Pending.Width
	cont.Pending.Height = c.Pending.Height
	cont.WidthFraction = c.WidthFraction
	cont.HeightFraction = c.HeightFraction
	cont.FreeSize = c.FreeSize
	cont.Pending.Workspace = c.Pending.Workspace
	cont.Pending.FocusedInactiveChild = child
	l.Tree.AddChild(cont.ID, child)
	return cont
}

// topLevelIndex returns where a new top-level container goes in ws relative
// to active.
func (l *Layout) topLevelIndex(ws *tree.Workspace, active *tree.Container, pos tree.Insert) int {
	if active == nil {
		return 0
	}
	ref := active.ID
	if active.Pending.Parent.Valid() {
		ref = active.Pending.Parent
	}
	return insertIndex(ws.Pending.Tiling, ref, pos)
}

func (l *Layout) containerAddView(active, view *tree.Container, pos tree.Insert) {
	parent := l.Tree.Container(active.Pending.Parent)
	ref := active.ID
	if parent == nil {
		parent = active
		ref = parent.Pending.FocusedInactiveChild
	}
	idx := insertIndex(parent.Pending.Children, ref, pos)
	l.Tree.InsertChild(parent.ID, view.ID, idx)
	view.WidthFraction = parent.WidthFraction
	view.HeightFraction = parent.HeightFraction
}

func (l *Layout) workspaceAddView(ws *tree.Workspace, active, view *tree.Container, pos tree.Insert) {
	idx := l.topLevelIndex(ws, active, pos)
	view.Pending.Workspace = ws.ID
	parent := l.WrapIntoContainer(view.ID, ws.Layout.Type.Opposite())
	if view.WidthFraction <= 0 {
		view.WidthFraction = l.DefaultWidth(ws)
	}
	parent.WidthFraction = view.WidthFraction
	if view.HeightFraction <= 0 {
		view.HeightFraction = l.DefaultHeight(ws)
	}
	parent.HeightFraction = view.HeightFraction
	l.Tree.InsertTiling(ws.ID, parent.ID, idx)
}

// AddView inserts a detached view into ws next to active. When the insertion
// mode matches the workspace axis, or ws is empty, the view gets its own
// top-level container; otherwise it joins the container of active.
func (l *Layout) AddView(ws *tree.Workspace, active tree.ContainerID, view tree.ContainerID) {
	v := l.Tree.Container(view)
	if v == nil {
		return
	}
	a := l.Tree.Container(active)
	if a != nil && a.Pending.Workspace != ws.ID {
		a = nil
	}
	if ws.Layout.Type == ws.Layout.Mode || len(ws.Pending.Tiling) == 0 {
		l.workspaceAddView(ws, a, v, ws.Layout.Insert)
		return
	}
	if a == nil {
		a = l.Tree.Container(ws.ActiveChild())
	}
	if a == nil {
		a = l.Tree.Container(ws.Pending.Tiling[0])
	}
	if a.IsView() && !a.Pending.Parent.Valid() {
		// Floating views have no container to join.
		l.workspaceAddView(ws, nil, v, ws.Layout.Insert)
		return
	}
	l.containerAddView(a, v, ws.Layout.Insert)
}

// addContainer inserts a detached top-level container into ws, flipping its
// axis when it collides with the workspace axis.
func (l *Layout) addContainer(ws *tree.Workspace, active, c *tree.Container, pos tree.Insert) {
	idx := l.topLevelIndex(ws, active, pos)
	if c.Pending.Layout == ws.Layout.Type {
		c.Pending.Layout = c.Pending.Layout.Opposite()
	}
	l.Tree.InsertTiling(ws.ID, c.ID, idx)
}

// AddContainer moves c into the tiling list of ws next to active as a
// top-level container. Views are wrapped first.
func (l *Layout) AddContainer(ws *tree.Workspace, active tree.ContainerID, id tree.ContainerID) {
	c := l.Tree.Container(id)
	if c == nil {
		return
	}
	a := l.Tree.Container(active)
	if a != nil && a.Pending.Workspace != ws.ID {
		a = nil
	}
	if old := l.Tree.Workspace(c.Pending.Workspace); old != nil {
		l.UnpinContainer(old, l.Tree.TopLevel(id))
		parent := c.Pending.Parent
		l.Tree.Detach(id)
		l.Tree.Reap(parent)
	}
	if c.IsView() {
		l.workspaceAddView(ws, a, c, ws.Layout.Insert)
		ws.SetActiveChild(l.Tree.TopLevel(id).ID)
		return
	}
	l.addContainer(ws, a, c, ws.Layout.Insert)
	ws.SetActiveChild(id)
}

// removeTopLevel takes c out of the tiling list of ws and makes its left
// neighbor the active container.
func (l *Layout) removeTopLevel(ws *tree.Workspace, idx int) {
	if idx < 0 || idx >= len(ws.Pending.Tiling) {
		return
	}
	id := ws.Pending.Tiling[idx]
	l.Tree.Detach(id)
	active := tree.ContainerID{}
	if n := len(ws.Pending.Tiling); n > 0 {
		active = ws.Pending.Tiling[min(max(idx-1, 0), n-1)]
	}
	ws.SetActiveChild(active)
	l.Tree.MarkWorkspaceDirty(ws.ID)
}

// MoveContainerToWorkspace moves c to ws. When the insertion mode of the old
// workspace matches its axis the whole top-level container moves, otherwise
// only the view moves and joins ws like a new view.
func (l *Layout) MoveContainerToWorkspace(id tree.ContainerID, wsID tree.WorkspaceID) error {
	c := l.Tree.Container(id)
	if c == nil {
		return ErrNoContainer
	}
	ws := l.Tree.Workspace(wsID)
	if ws == nil {
		return ErrNoWorkspace
	}
	if l.Tree.IsScratchpadHidden(id) {
		return ErrHiddenScratchpad
	}
	oldWS := l.Tree.Workspace(c.Pending.Workspace)
	if oldWS == nil {
		return ErrNoWorkspace
	}
	if oldWS.ID == wsID {
		return nil
	}
	l.UnpinContainer(oldWS, l.Tree.TopLevel(id))

	if l.Tree.IsFloating(id) {
		l.Tree.Detach(id)
		l.Tree.AddFloating(wsID, id)
		l.Tree.MarkWorkspaceDirty(oldWS.ID)
		return nil
	}

	active := l.Tree.Container(ws.Current.FocusedInactiveChild)
	if oldWS.Layout.Type == oldWS.Layout.Mode || !c.IsView() || !c.Pending.Parent.Valid() {
		con := c
		if c.IsView() && c.Pending.Parent.Valid() {
			con = l.Tree.Container(c.Pending.Parent)
		}
		l.removeTopLevel(oldWS, slices.Index(oldWS.Pending.Tiling, con.ID))
		l.addContainer(ws, active, con, ws.Layout.Insert)
		ws.SetActiveChild(con.ID)
	} else {
		parent := c.Pending.Parent
		l.Tree.Detach(id)
		l.Tree.Reap(parent)
		l.AddView(ws, ws.Current.FocusedInactiveChild, id)
		ws.SetActiveChild(l.Tree.TopLevel(id).ID)
	}
	l.Tree.MarkContainerDirty(id)
	l.Tree.MarkWorkspaceDirty(wsID)
	l.Tree.MarkWorkspaceDirty(oldWS.ID)
	return nil
}
