package tree

import "slices"

func (t *Tree) Focused() ContainerID {
	if t.Container(t.focus) == nil {
		return ContainerID{}
	}
	return t.focus
}

// FocusedWorkspace returns the workspace of the focused container, or the last
// focused workspace when nothing is focused.
func (t *Tree) FocusedWorkspace() WorkspaceID {
	if c := t.Container(t.focus); c != nil && c.Pending.Workspace.Valid() {
		return c.Pending.Workspace
	}
	if t.Workspace(t.focusWS) != nil {
		return t.focusWS
	}
	return WorkspaceID{}
}

// SetFocus focuses c and records it as the active child of every ancestor.
func (t *Tree) SetFocus(id ContainerID) {
	c := t.Container(id)
	if c == nil {
		return
	}
	if old := t.Container(t.focus); old != nil && old.ID != id {
		old.Pending.Focused = false
		t.MarkContainerDirty(old.ID)
	}
	c.Pending.Focused = true
	t.MarkContainerDirty(id)

	child := c
	for p := t.Container(c.Pending.Parent); p != nil; p = t.Container(p.Pending.Parent) {
		if p.Pending.FocusedInactiveChild != child.ID {
			p.Pending.FocusedInactiveChild = child.ID
			t.MarkContainerDirty(p.ID)
		}
		child = p
	}

	if ws := t.Workspace(c.Pending.Workspace); ws != nil {
		if slices.Contains(ws.Pending.Tiling, child.ID) {
			ws.Pending.FocusedInactiveChild = child.ID
		}
		t.MarkWorkspaceDirty(ws.ID)
		t.focusWS = ws.ID
		if o := t.Output(ws.Pending.Output); o != nil && o.Pending.Active != ws.ID {
			o.Pending.Active = ws.ID
			t.MarkDirty(OutputNode(o.ID))
		}
	}

	t.focus = id
	if t.OnFocus != nil {
		t.OnFocus(id)
	}
}

// SetFocusWorkspace switches to ws, focusing its last focused view if any.
func (t *Tree) SetFocusWorkspace(wsID WorkspaceID) {
	ws := t.Workspace(wsID)
	if ws == nil {
		return
	}
	if view := t.FocusInactiveView(wsID); view.Valid() {
		t.SetFocus(view)
		return
	}
	if old := t.Container(t.focus); old != nil {
		old.Pending.Focused = false
		t.MarkContainerDirty(old.ID)
	}
	t.focus = ContainerID{}
	t.focusWS = wsID
	if o := t.Output(ws.Pending.Output); o != nil && o.Pending.Active != wsID {
		o.Pending.Active = wsID
		t.MarkDirty(OutputNode(o.ID))
	}
	t.MarkWorkspaceDirty(wsID)
}

// FocusInactiveView follows the active child chain of ws down to a view.
func (t *Tree) FocusInactiveView(wsID WorkspaceID) ContainerID {
	ws := t.Workspace(wsID)
	if ws == nil || len(ws.Pending.Tiling) == 0 {
		return ContainerID{}
	}
	c := t.Container(ws.ActiveChild())
	if c == nil {
		c = t.Container(ws.Pending.Tiling[0])
	}
	for c != nil && !c.IsView() {
		next := t.Container(c.Pending.FocusedInactiveChild)
		if next == nil || !slices.Contains(c.Pending.Children, next.ID) {
			if len(c.Pending.Children) == 0 {
				return ContainerID{}
			}
			next = t.Container(c.Pending.Children[0])
		}
		c = next
	}
	if c == nil {
		return ContainerID{}
	}
	return c.ID
}
