package layout

import (
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// RemoveView takes an unmapped view out of the layout and starts its
// destruction. Empty split containers are reaped and the left neighbor of a
// removed top-level container becomes active. It returns the view that
// should get focus next, which is invalid when the workspace is empty.
func (l *Layout) RemoveView(id tree.ContainerID) tree.ContainerID {
	c := l.Tree.Container(id)
	if c == nil || !c.IsView() {
		return tree.ContainerID{}
	}
	ws := l.Tree.Workspace(c.Pending.Workspace)
	if ws == nil {
		l.Tree.BeginDestroy(id)
		return tree.ContainerID{}
	}

	top := l.Tree.TopLevel(id)
	l.UnpinContainer(ws, top)
	topIdx := -1
	if top != nil {
		topIdx = slices.Index(ws.Pending.Tiling, top.ID)
	}

	if c.Pending.Parent.Valid() {
		l.extractView(c)
	}
	l.Tree.BeginDestroy(id)

	if topIdx >= 0 && !slices.Contains(ws.Pending.Tiling, top.ID) {
		active := tree.ContainerID{}
		if n := len(ws.Pending.Tiling); n > 0 {
			active = ws.Pending.Tiling[min(max(topIdx-1, 0), n-1)]
		}
		ws.SetActiveChild(active)
	}
	l.Tree.MarkWorkspaceDirty(ws.ID)
	l.ArrangeWorkspace(ws.ID)
	return l.Tree.FocusInactiveView(ws.ID)
}
