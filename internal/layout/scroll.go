package layout

import (
	"log/slog"
	"math"
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// extent is the scaled length of children along layout, gaps included.
func (l *Layout) extent(ws *tree.Workspace, layout tree.Layout, children []tree.ContainerID) float64 {
	scale := Scale(ws)
	var total float64
	for _, id := range children {
		if c := l.Tree.Container(id); c != nil {
			_, size := span(&c.Pending, layout)
			total += scale * (*size + 2*ws.GapsInner)
		}
	}
	return total
}

// ScrollBegin starts a scroll gesture on ws. It fails with ErrFits when
// neither the workspace nor the container under the pointer has content
// outside the viewport.
func (l *Layout) ScrollBegin(wsID tree.WorkspaceID, cx, cy float64) error {
	ws := l.Tree.Workspace(wsID)
	if ws == nil {
		return ErrNoWorkspace
	}
	if len(ws.Pending.Tiling) == 0 {
		return ErrFits
	}
	typ := ws.Layout.Type
	_, wsExtent := boxSpan(WorkspaceBox(ws), typ)
	fits := l.extent(ws, typ, ws.Pending.Tiling) <= wsExtent
	if c := l.MouseContainer(ws, cx, cy); fits && c != nil {
		cross := typ.Opposite()
		_, crossExtent := boxSpan(WorkspaceBox(ws), cross)
		fits = l.extent(ws, cross, c.Pending.Children) <= crossExtent
	}
	if fits {
		return ErrFits
	}

	ws.Gesture = tree.Gesture{Scrolling: true}
	slog.Debug("Scroll gesture started", "package", "layout", "workspace", ws.Name)
	return nil
}

// ScrollUpdate moves content by the gesture delta. Along the workspace axis
// every top-level container moves; across it only the children of the
// container under the pointer move. Every step is committed.
func (l *Layout) ScrollUpdate(wsID tree.WorkspaceID, cx, cy, dx, dy float64) {
	ws := l.Tree.Workspace(wsID)
	if ws == nil || !ws.Gesture.Scrolling || len(ws.Pending.Tiling) == 0 {
		return
	}
	k := l.Options.ScrollSensitivity * Scale(ws)
	dx *= k
	dy *= k

	var along tree.Layout
	if math.Abs(dx) > math.Abs(dy) {
		along = tree.LayoutHoriz
		ws.Gesture.DX += dx
	} else {
		along = tree.LayoutVert
		ws.Gesture.DY += dy
	}

	if along == ws.Layout.Type {
		if ws.Layout.Pin.Container.Valid() {
			l.floatPin(ws)
		}
		l.scrollList(ws.Pending.Tiling, along, dx, dy)
		l.Tree.MarkWorkspaceDirty(ws.ID)
	} else if c := l.MouseContainer(ws, cx, cy); c != nil {
		l.scrollList(c.Pending.Children, along, dx, dy)
		l.Tree.MarkContainerDirty(c.ID)
	}
	l.commit()
}

func (l *Layout) scrollList(children []tree.ContainerID, layout tree.Layout, dx, dy float64) {
	d := dx
	if layout == tree.LayoutVert {
		d = dy
	}
	for _, id := range children {
		if c := l.Tree.Container(id); c != nil {
			pos, _ := span(&c.Pending, layout)
			*pos += d
			l.Tree.MarkContainerDirty(id)
		}
	}
}

// ScrollEnd finishes the gesture and focuses the sibling the gesture
// scrolled into view. It returns false when no gesture was running.
func (l *Layout) ScrollEnd(wsID tree.WorkspaceID, cx, cy float64) bool {
	ws := l.Tree.Workspace(wsID)
	if ws == nil || !ws.Gesture.Scrolling {
		return false
	}
	g := ws.Gesture
	ws.Gesture.Scrolling = false
	if g.Pinned.Valid() {
		l.unfloatPin(ws)
	}

	var along tree.Layout
	var forward bool
	if math.Abs(g.DX) > math.Abs(g.DY) {
		along, forward = tree.LayoutHoriz, g.DX < 0
	} else {
		along, forward = tree.LayoutVert, g.DY < 0
	}

	var children []tree.ContainerID
	var active tree.ContainerID
	if along == ws.Layout.Type {
		children, active = ws.Pending.Tiling, ws.Current.FocusedInactiveChild
	} else if c := l.MouseContainer(ws, cx, cy); c != nil {
		children, active = c.Pending.Children, c.Current.FocusedInactiveChild
	}
	if len(children) > 0 {
		idx := max(slices.Index(children, active), 0)
		if next := l.scrollTarget(ws, along, children, idx, forward); next != nil {
			if view := l.focusTarget(next); view.Valid() {
				l.Tree.SetFocus(view)
			}
		}
	}

	l.ArrangeWorkspace(ws.ID)
	l.commit()
	slog.Debug("Scroll gesture ended", "package", "layout", "workspace", ws.Name, "dx", g.DX, "dy", g.DY)
	return true
}

// scrollTarget picks the new active child after a gesture. Content moving
// toward the start brings in the first child after active whose near edge is
// inside the viewport; content moving toward the end brings in the first
// child before active whose far edge is. Without one the last or first child
// wins.
func (l *Layout) scrollTarget(ws *tree.Workspace, layout tree.Layout, children []tree.ContainerID, idx int, forward bool) *tree.Container {
	scale := Scale(ws)
	g := ws.GapsInner
	start, extent := boxSpan(WorkspaceBox(ws), layout)
	inside := func(v float64) bool {
		v -= start
		return v > 0 && v < extent
	}
	active := l.Tree.Container(children[idx])
	apos, asize := span(&active.Pending, layout)

	if forward {
		offset := *apos + scale*(*asize+2*g)
		for i := idx + 1; i < len(children); i++ {
			c := l.Tree.Container(children[i])
			if inside(offset) {
				return c
			}
			_, size := span(&c.Pending, layout)
			offset += scale * (*size + 2*g)
		}
		return l.Tree.Container(children[len(children)-1])
	}

	offset := *apos - 2*scale*g
	for i := idx - 1; i >= 0; i-- {
		c := l.Tree.Container(children[i])
		if inside(offset) {
			return c
		}
		_, size := span(&c.Pending, layout)
		offset -= scale * (*size + 2*g)
	}
	return l.Tree.Container(children[0])
}

// focusTarget returns the view focus goes to when c becomes active.
func (l *Layout) focusTarget(c *tree.Container) tree.ContainerID {
	for c != nil && !c.IsView() {
		next := l.Tree.Container(c.Pending.FocusedInactiveChild)
		if next == nil && len(c.Pending.Children) > 0 {
			next = l.Tree.Container(c.Pending.Children[0])
		}
		c = next
	}
	if c == nil {
		return tree.ContainerID{}
	}
	return c.ID
}
