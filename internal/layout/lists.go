package layout

import (
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// moveTo moves id to index idx of list, which is interpreted after id has
// been removed.
func moveTo(list *[]tree.ContainerID, idx int, id tree.ContainerID) {
	cur := slices.Index(*list, id)
	if cur < 0 {
		return
	}
	*list = slices.Delete(*list, cur, cur+1)
	idx = max(0, min(idx, len(*list)))
	*list = slices.Insert(*list, idx, id)
}

func swap(list []tree.ContainerID, i, j int) {
	if i < 0 || j < 0 || i >= len(list) || j >= len(list) {
		return
	}
	list[i], list[j] = list[j], list[i]
}

// detachAndWrap takes c out of its list and wraps it into a new split
// container on ws.
func (l *Layout) detachAndWrap(c *tree.Container, layout tree.Layout, ws tree.WorkspaceID) *tree.Container {
	l.Tree.Detach(c.ID)
	l.Tree.SetWorkspace(c.ID, ws)
	return l.WrapIntoContainer(c.ID, layout)
}

// extractView takes a view out of its split container, hands the active role
// to a neighbor and reaps the container when it ends up empty.
func (l *Layout) extractView(view *tree.Container) {
	parent := l.Tree.Container(view.Pending.Parent)
	if parent == nil {
		return
	}
	ws := view.Pending.Workspace
	idx := slices.Index(parent.Pending.Children, view.ID)
	wasActive := parent.Pending.FocusedInactiveChild == view.ID
	l.Tree.Detach(view.ID)
	if n := len(parent.Pending.Children); wasActive && n > 0 {
		if idx >= n {
			idx = n - 1
		}
		parent.Pending.FocusedInactiveChild = parent.Pending.Children[idx]
	}
	l.Tree.Reap(parent.ID)
	l.Tree.SetWorkspace(view.ID, ws)
}
