package layout

import (
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// PinSet anchors the top-level container of c to an edge of its workspace.
// The container moves to that end of the tiling list.
func (l *Layout) PinSet(id tree.ContainerID, pos tree.PinPosition) error {
	c := l.Tree.Container(id)
	if c == nil {
		return ErrNoContainer
	}
	if l.Tree.IsFloating(id) {
		return ErrFloating
	}
	top := l.Tree.TopLevel(id)
	ws := l.Tree.Workspace(top.Pending.Workspace)
	if ws == nil {
		return ErrNoWorkspace
	}
	idx := 0
	if pos == tree.PinEnd {
		idx = len(ws.Pending.Tiling) - 1
	}
	moveTo(&ws.Pending.Tiling, idx, top.ID)
	ws.Layout.Pin = tree.Pin{Container: top.ID, Position: pos}
	l.Tree.MarkWorkspaceDirty(ws.ID)
	l.publish("pin", ws)
	l.ArrangeWorkspace(ws.ID)
	return nil
}

// PinRemove drops the pin of ws.
func (l *Layout) PinRemove(ws *tree.Workspace) {
	if !ws.Layout.Pin.Container.Valid() {
		return
	}
	ws.Layout.Pin = tree.Pin{}
	l.Tree.MarkWorkspaceDirty(ws.ID)
	l.publish("pin", ws)
}

// UnpinContainer removes the pin of ws if it anchors c.
func (l *Layout) UnpinContainer(ws *tree.Workspace, c *tree.Container) {
	if ws == nil || c == nil || ws.Layout.Pin.Container != c.ID {
		return
	}
	l.PinRemove(ws)
}

// PinEnabled reports whether ws has a pin that still names one of its
// top-level tiling containers. A pin is checked lazily instead of being
// cleared on every change that can invalidate it.
func (l *Layout) PinEnabled(ws *tree.Workspace) bool {
	pin := ws.Layout.Pin.Container
	if !pin.Valid() || l.Tree.Container(pin) == nil {
		return false
	}
	return slices.Contains(ws.Pending.Tiling, pin) || ws.Gesture.Pinned == pin
}

// PinnedContainer returns the container pinned on ws, nil without a pin.
func (l *Layout) PinnedContainer(ws *tree.Workspace) *tree.Container {
	if !l.PinEnabled(ws) {
		return nil
	}
	return l.Tree.Container(ws.Layout.Pin.Container)
}

// floatPin takes the pinned container out of the tiling list for the length
// of a gesture and shifts the rest toward the pin edge to fill its space.
func (l *Layout) floatPin(ws *tree.Workspace) {
	pinned := l.PinnedContainer(ws)
	if pinned == nil || ws.Gesture.Pinned.Valid() {
		return
	}
	idx := slices.Index(ws.Pending.Tiling, pinned.ID)
	if idx < 0 {
		return
	}
	layout := ws.Layout.Type
	_, size := span(&pinned.Pending, layout)
	shift := Scale(ws) * (*size + 2*ws.GapsInner)
	if ws.Layout.Pin.Position == tree.PinBeginning {
		shift = -shift
	}

	wasActive := ws.ActiveChild() == pinned.ID
	ws.Pending.Tiling = slices.Delete(ws.Pending.Tiling, idx, idx+1)
	ws.Pending.Floating = append(ws.Pending.Floating, pinned.ID)
	ws.Gesture.Pinned = pinned.ID
	if wasActive && len(ws.Pending.Tiling) > 0 {
		ws.SetActiveChild(ws.Pending.Tiling[min(idx, len(ws.Pending.Tiling)-1)])
	}

	for _, id := range ws.Pending.Tiling {
		c := l.Tree.Container(id)
		pos, _ := span(&c.Pending, layout)
		*pos += shift
		for _, child := range c.Pending.Children {
			if v := l.Tree.Container(child); v != nil {
				vpos, _ := span(&v.Pending, layout)
				*vpos += shift
			}
		}
	}
	l.Tree.MarkWorkspaceDirty(ws.ID)
}

// unfloatPin puts the pinned container back into the tiling list in front of
// the first container that starts at or after it on screen.
func (l *Layout) unfloatPin(ws *tree.Workspace) {
	pinned := l.Tree.Container(ws.Gesture.Pinned)
	ws.Gesture.Pinned = tree.ContainerID{}
	if pinned == nil || pinned.Pending.Workspace != ws.ID {
		return
	}
	if i := slices.Index(ws.Pending.Floating, pinned.ID); i >= 0 {
		ws.Pending.Floating = slices.Delete(ws.Pending.Floating, i, i+1)
	}
	layout := ws.Layout.Type
	ppos, _ := span(&pinned.Pending, layout)
	idx := len(ws.Pending.Tiling)
	for i, id := range ws.Pending.Tiling {
		c := l.Tree.Container(id)
		if pos, _ := span(&c.Pending, layout); *pos >= *ppos {
			idx = i
			break
		}
	}
	ws.Pending.Tiling = slices.Insert(ws.Pending.Tiling, idx, pinned.ID)
	l.Tree.MarkWorkspaceDirty(ws.ID)
	l.Tree.MarkContainerDirty(pinned.ID)
}
