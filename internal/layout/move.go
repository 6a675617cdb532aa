package layout

import (
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// parallel reports whether dir moves along layout.
func parallel(layout tree.Layout, dir Direction) bool {
	switch layout {
	case tree.LayoutHoriz:
		return dir == DirLeft || dir == DirRight || dir == DirBegin || dir == DirEnd
	case tree.LayoutVert:
		return dir == DirUp || dir == DirDown || dir == DirBegin || dir == DirEnd
	default:
		return false
	}
}

// directionIndex returns the index item moves to in list. A detaching move to
// the left or up lands on the current index, in front of the old owner.
func directionIndex(list []tree.ContainerID, item tree.ContainerID, dir Direction, detach bool) int {
	switch dir {
	case DirBegin:
		return 0
	case DirEnd:
		return len(list) - 1
	}
	idx := slices.Index(list, item)
	switch {
	case dir == DirRight || dir == DirDown:
		return idx + 1
	case detach:
		return idx
	default:
		return idx - 1
	}
}

func needToDetach(parentLayout tree.Layout, dir Direction) bool {
	switch dir {
	case DirLeft, DirRight:
		return parentLayout != tree.LayoutHoriz
	case DirUp, DirDown:
		return parentLayout != tree.LayoutVert
	case DirBegin, DirEnd:
		return false
	default:
		return true
	}
}

// MoveContainer moves c one step in dir. With nomode the move may take a view
// out of its container or into a neighbor; otherwise it only reorders lists,
// walking up from c until a list along dir can take the move.
func (l *Layout) MoveContainer(id tree.ContainerID, dir Direction, nomode bool) bool {
	c := l.Tree.Container(id)
	if c == nil || dir == DirInvalid {
		return false
	}
	ws := l.Tree.Workspace(c.Pending.Workspace)
	if ws == nil {
		return false
	}

	var moved bool
	if nomode && c.Pending.Parent.Valid() {
		moved = l.moveNomode(c, ws, dir)
	} else {
		moved = l.moveMode(c, ws, dir)
	}
	if !moved {
		return false
	}

	if c.Pending.Focused {
		l.Tree.SetFocus(id)
	}
	if top := l.Tree.TopLevel(id); top != nil {
		ws.SetActiveChild(top.ID)
	}
	l.ArrangeWorkspace(ws.ID)
	l.animate(anim.ModeWindowMove)
	return true
}

func (l *Layout) moveMode(c *tree.Container, ws *tree.Workspace, dir Direction) bool {
	for cur := c; cur != nil; cur = l.Tree.Container(cur.Pending.Parent) {
		if cur.Pending.Fullscreen || l.Tree.IsFloating(cur.ID) {
			return false
		}

		parentLayout := ws.Layout.Type
		if p := l.Tree.Container(cur.Pending.Parent); p != nil {
			parentLayout = axis(p.Pending.Layout)
		}
		siblings := l.Tree.Siblings(cur.ID)
		if siblings == nil {
			return false
		}
		idx := slices.Index(*siblings, cur.ID)

		desired, ok := -1, false
		switch dir {
		case DirLeft, DirRight:
			if parentLayout == tree.LayoutHoriz {
				desired, ok = idx-1, true
				if dir == DirRight {
					desired = idx + 1
				}
			}
		case DirUp, DirDown:
			if parentLayout == tree.LayoutVert {
				desired, ok = idx-1, true
				if dir == DirDown {
					desired = idx + 1
				}
			}
		case DirBegin, DirEnd:
			if ws.Layout.Mode == parentLayout {
				desired, ok = 0, true
				if dir == DirEnd {
					desired = len(*siblings) - 1
				}
			}
		}

		if ok && len(*siblings) > 1 && desired >= 0 && desired < len(*siblings) {
			moveTo(siblings, desired, cur.ID)
			if cur.Pending.Parent.Valid() {
				l.Tree.MarkContainerDirty(cur.Pending.Parent)
				l.Tree.MarkContainerDirty(cur.ID)
			} else {
				l.Tree.MarkWorkspaceDirty(ws.ID)
			}
			return true
		}
	}
	return false
}

func (l *Layout) moveNomode(c *tree.Container, ws *tree.Workspace, dir Direction) bool {
	if c.Pending.Fullscreen || l.Tree.IsFloating(c.ID) {
		return false
	}
	parent := l.Tree.Container(c.Pending.Parent)
	parentLayout := axis(parent.Pending.Layout)

	if len(parent.Pending.Children) > 1 {
		if needToDetach(parentLayout, dir) {
			idx := max(directionIndex(ws.Pending.Tiling, parent.ID, dir, true), 0)
			wrap := l.detachAndWrap(c, parent.Pending.Layout, ws.ID)
			l.Tree.MarkContainerDirty(parent.ID)
			l.Tree.InsertTiling(ws.ID, wrap.ID, idx)
			return true
		}
		children := parent.Pending.Children
		idx := directionIndex(children, c.ID, dir, false)
		if idx < 0 || idx >= len(children) {
			return false
		}
		moveTo(&parent.Pending.Children, idx, c.ID)
		l.Tree.MarkContainerDirty(parent.ID)
		return true
	}

	// c is alone, move into the neighbor or swap with it.
	nidx := directionIndex(ws.Pending.Tiling, parent.ID, dir, false)
	if nidx < 0 || nidx >= len(ws.Pending.Tiling) {
		return false
	}
	neighbor := l.Tree.Container(ws.Pending.Tiling[nidx])
	if neighbor == nil || neighbor.ID == parent.ID {
		return false
	}
	idx := slices.Index(ws.Pending.Tiling, parent.ID)
	if dir == DirBegin || dir == DirEnd {
		swap(ws.Pending.Tiling, nidx, idx)
	} else if neighbor.IsView() {
		// A floating-style top-level view cannot take children.
		return false
	} else {
		l.Tree.Detach(c.ID)
		pos := insertIndex(neighbor.Pending.Children, neighbor.Current.FocusedInactiveChild, ws.Layout.Insert)
		l.Tree.InsertChild(neighbor.ID, c.ID, pos)
		l.Tree.Reap(parent.ID)
	}
	l.Tree.MarkWorkspaceDirty(ws.ID)
	return true
}
