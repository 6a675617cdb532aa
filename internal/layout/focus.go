package layout

import (
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// FocusDirection returns the view that focus moves to from c in dir: the
// active view of the nearest neighbor along dir, walking up from c until a
// list along dir has one. DirBegin and DirEnd pick the first and last
// top-level containers.
func (l *Layout) FocusDirection(id tree.ContainerID, dir Direction) (tree.ContainerID, bool) {
	c := l.Tree.Container(id)
	if c == nil || dir == DirInvalid {
		return tree.ContainerID{}, false
	}
	ws := l.Tree.Workspace(c.Pending.Workspace)
	if ws == nil || l.Tree.IsFloating(id) {
		return tree.ContainerID{}, false
	}

	for cur := c; cur != nil; cur = l.Tree.Container(cur.Pending.Parent) {
		parentLayout := ws.Layout.Type
		if p := l.Tree.Container(cur.Pending.Parent); p != nil {
			parentLayout = axis(p.Pending.Layout)
		}
		edge := dir == DirBegin || dir == DirEnd
		if edge && cur.Pending.Parent.Valid() || !edge && !parallel(parentLayout, dir) {
			continue
		}
		siblings := l.Tree.Siblings(cur.ID)
		if siblings == nil {
			return tree.ContainerID{}, false
		}
		idx := slices.Index(*siblings, cur.ID)
		var next int
		switch dir {
		case DirBegin:
			next = 0
		case DirEnd:
			next = len(*siblings) - 1
		case DirRight, DirDown:
			next = idx + 1
		default:
			next = idx - 1
		}
		if next < 0 || next >= len(*siblings) || next == idx {
			if edge {
				return tree.ContainerID{}, false
			}
			continue
		}
		view := l.activeView(l.Tree.Container((*siblings)[next]))
		if view == nil {
			return tree.ContainerID{}, false
		}
		return view.ID, true
	}
	return tree.ContainerID{}, false
}

// activeView follows the active children of c down to a view.
func (l *Layout) activeView(c *tree.Container) *tree.Container {
	for c != nil && !c.IsView() {
		next := l.Tree.Container(c.Pending.FocusedInactiveChild)
		if next == nil || !slices.Contains(c.Pending.Children, next.ID) {
			if len(c.Pending.Children) == 0 {
				return nil
			}
			next = l.Tree.Container(c.Pending.Children[0])
		}
		c = next
	}
	return c
}
