package layout

import (
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/geom"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// DropBorder is the thickness in pixels of the edge zones of a drop target.
const DropBorder = 30

// MouseContainer returns the top-level container of ws under the pointer
// coordinate along the workspace axis. Only the active container position is
// trusted; the others are derived from it because they may not be arranged
// at the current scale yet.
func (l *Layout) MouseContainer(ws *tree.Workspace, cx, cy float64) *tree.Container {
	active := l.Tree.Container(ws.Current.FocusedInactiveChild)
	idx := slices.Index(ws.Pending.Tiling, ws.Current.FocusedInactiveChild)
	if active == nil || idx < 0 {
		if len(ws.Pending.Tiling) == 0 {
			return nil
		}
		idx = 0
		active = l.Tree.Container(ws.Pending.Tiling[0])
	}
	layout := ws.Layout.Type
	scale := Scale(ws)
	g := ws.GapsInner
	p := cx
	if axis(layout) == tree.LayoutVert {
		p = cy
	}
	apos, _ := span(&active.Pending, layout)

	offset := *apos
	for _, id := range ws.Pending.Tiling[idx:] {
		c := l.Tree.Container(id)
		_, size := span(&c.Pending, layout)
		a := offset - scale*g
		b := a + scale*(*size+2*g)
		if p >= a && p < b {
			return c
		}
		offset = b
	}
	offset = *apos
	for i := idx - 1; i >= 0; i-- {
		c := l.Tree.Container(ws.Pending.Tiling[i])
		_, size := span(&c.Pending, layout)
		b := offset - scale*g
		a := b - scale*(*size+2*g)
		if p >= a && p < b {
			return c
		}
		offset = a
	}
	return active
}

// ContainerBox is the on-screen box of c, scaled by its workspace.
func (l *Layout) ContainerBox(c *tree.Container) geom.Box {
	s := Scale(l.Tree.Workspace(c.Pending.Workspace))
	return geom.Box{
		X:      c.Pending.X,
		Y:      c.Pending.Y,
		Width:  s * c.Pending.Width,
		Height: s * c.Pending.Height,
	}
}

// ViewAt returns the view of ws under the pointer, floating views first.
func (l *Layout) ViewAt(ws *tree.Workspace, cx, cy float64) *tree.Container {
	for i := len(ws.Pending.Floating) - 1; i >= 0; i-- {
		for _, id := range l.Tree.Views(ws.Pending.Floating[i]) {
			if c := l.Tree.Container(id); c != nil && l.ContainerBox(c).Contains(cx, cy) {
				return c
			}
		}
	}
	var found *tree.Container
	l.Tree.EachTiling(ws.ID, func(c *tree.Container) {
		if found == nil && c.IsView() && l.ContainerBox(c).Contains(cx, cy) {
			found = c
		}
	})
	return found
}

// DropTarget decides where dragging c with the pointer at (cx, cy) lands.
// It returns the target container, which is top-level when whole containers
// are dragged, and the edge zone the pointer is in. ok is false when there is
// no valid target.
func (l *Layout) DropTarget(c *tree.Container, under *tree.Container, cx, cy float64) (target *tree.Container, edge Edge, ok bool) {
	if under == nil {
		return nil, EdgeNone, false
	}
	oldWS := l.Tree.Workspace(c.Pending.Workspace)
	ws := l.Tree.Workspace(under.Pending.Workspace)
	if oldWS == nil || ws == nil {
		return nil, EdgeNone, false
	}
	// The only tiled view cannot move within its own workspace.
	if oldWS.ID == ws.ID && len(l.tilingViews(oldWS)) == 1 {
		return nil, EdgeNone, false
	}

	scale := Scale(ws)
	border := DropBorder * scale
	box := l.ContainerBox(under)
	target = under
	if oldWS.Layout.Type == oldWS.Layout.Mode && under.IsView() {
		if p := l.Tree.Container(under.Pending.Parent); p != nil {
			target = p
			g := ws.GapsInner
			if ws.Layout.Type == tree.LayoutHoriz {
				box.Y = ws.Pending.Y + g
				box.Height = ws.Pending.Height - 2*g
			} else {
				box.X = ws.Pending.X + g
				box.Width = ws.Pending.Width - 2*g
			}
		}
	}

	switch {
	case cy < box.Y+border:
		edge = EdgeTop
	case cy > box.Y+box.Height-border:
		edge = EdgeBottom
	case cx < box.X+border:
		edge = EdgeLeft
	case cx > box.X+box.Width-border:
		edge = EdgeRight
	default:
		edge = EdgeNone
	}
	return target, edge, true
}

func (l *Layout) tilingViews(ws *tree.Workspace) []tree.ContainerID {
	var views []tree.ContainerID
	for _, id := range ws.Pending.Tiling {
		views = append(views, l.Tree.Views(id)...)
	}
	return views
}
