package layout

import (
	"log/slog"
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/geom"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// applyLayout sizes children along layout inside box and places them
// contiguously outward from active. Every container carries an inner gap on
// both sides so an edge container gets the same content size as an inner one.
func (l *Layout) applyLayout(children []tree.ContainerID, active tree.ContainerID, layout tree.Layout, box geom.Box) {
	if len(children) == 0 {
		return
	}
	layout = axis(layout)
	cross := layout.Opposite()

	first := l.Tree.Container(children[0])
	if first == nil {
		return
	}
	ws := l.Tree.Workspace(first.Pending.Workspace)
	parent := l.Tree.Container(first.Pending.Parent)
	var gap float64
	if ws != nil {
		gap = ws.GapsInner
	}

	idx := slices.Index(children, active)
	if idx < 0 {
		// A new list has no anchor yet, start it at the corner.
		idx = 0
		pos, _ := span(&first.Pending, layout)
		if parent != nil {
			ppos, _ := span(&parent.Pending, layout)
			*pos = *ppos
		} else if ws != nil {
			*pos, _ = boxSpan(WorkspaceBox(ws), layout)
		}
	}

	var crossFraction float64
	switch {
	case parent != nil:
		crossFraction = *fraction(parent, cross)
	case cross == tree.LayoutVert:
		crossFraction = l.DefaultHeight(ws)
	default:
		crossFraction = l.DefaultWidth(ws)
	}

	_, extent := boxSpan(box, layout)
	crossPos, crossExtent := boxSpan(box, cross)

	resize := func(c *tree.Container) {
		_, size := span(&c.Pending, layout)
		if !c.FreeSize {
			*size = geom.FractionToPixels(*fraction(c, layout), extent, gap)
		}
		_, csize := span(&c.Pending, cross)
		switch {
		case parent != nil && parent.FreeSize:
			_, psize := span(&parent.Pending, cross)
			*csize = *psize
		case parent != nil:
			*csize = geom.FractionToPixels(crossFraction, crossExtent, gap)
		default:
			*csize = geom.FractionToPixels(*fraction(c, cross), crossExtent, gap)
		}
	}

	anchor := l.Tree.Container(children[idx])
	start, _ := span(&anchor.Pending, layout)
	next := *start
	for _, id := range children[idx:] {
		c := l.Tree.Container(id)
		if c == nil {
			continue
		}
		pos, size := span(&c.Pending, layout)
		cpos, _ := span(&c.Pending, cross)
		*pos = next
		*cpos = crossPos
		resize(c)
		next += *size + 2*gap
	}
	next = *start
	for i := idx - 1; i >= 0; i-- {
		c := l.Tree.Container(children[i])
		if c == nil {
			continue
		}
		resize(c)
		pos, size := span(&c.Pending, layout)
		cpos, _ := span(&c.Pending, cross)
		next -= *size + 2*gap
		*pos = next
		*cpos = crossPos
	}
}

func (l *Layout) arrangeChildren(children []tree.ContainerID, active tree.ContainerID, layout tree.Layout, box geom.Box) {
	l.applyLayout(children, active, layout, box)
	for _, id := range children {
		l.ArrangeContainer(id)
	}
}

// autoconfigure fits the view content to the container.
func (l *Layout) autoconfigure(c *tree.Container) {
	c.Pending.ContentX = c.Pending.X
	c.Pending.ContentY = c.Pending.Y
	c.Pending.ContentWidth = c.Pending.Width
	c.Pending.ContentHeight = c.Pending.Height
}

// ArrangeContainer recomputes the pending geometry below c.
func (l *Layout) ArrangeContainer(id tree.ContainerID) {
	c := l.Tree.Container(id)
	if c == nil {
		return
	}
	if c.IsView() {
		l.autoconfigure(c)
		l.Tree.MarkContainerDirty(id)
		return
	}
	if len(c.Pending.Children) == 0 {
		return
	}
	ws := l.Tree.Workspace(c.Pending.Workspace)
	if ws == nil {
		return
	}
	// Sizes are fractions of the workspace, positions start at the container.
	box := WorkspaceBox(ws)
	box.X = c.Pending.X
	box.Y = c.Pending.Y
	active := c.Pending.FocusedInactiveChild
	if !active.Valid() {
		active = c.Current.FocusedInactiveChild
	}
	l.arrangeChildren(c.Pending.Children, active, c.Pending.Layout, box)
	l.Tree.MarkContainerDirty(id)
}

// ArrangeWorkspace places ws inside the usable area of its output and
// recomputes everything on it.
func (l *Layout) ArrangeWorkspace(id tree.WorkspaceID) {
	ws := l.Tree.Workspace(id)
	if ws == nil {
		return
	}
	o := l.Tree.Output(ws.Pending.Output)
	if o == nil {
		// No outputs connected.
		return
	}

	first := ws.Pending.Width == 0 && ws.Pending.Height == 0
	prevX, prevY := ws.Pending.X, ws.Pending.Y
	ws.Pending.X = o.Box.X + o.Usable.X + ws.GapsOuter
	ws.Pending.Y = o.Box.Y + o.Usable.Y + ws.GapsOuter
	ws.Pending.Width = max(0, o.Usable.Width-2*ws.GapsOuter)
	ws.Pending.Height = max(0, o.Usable.Height-2*ws.GapsOuter)

	if dx, dy := ws.Pending.X-prevX, ws.Pending.Y-prevY; !first && (dx != 0 || dy != 0) {
		for _, fid := range ws.Pending.Floating {
			if f := l.Tree.Container(fid); f != nil {
				f.Pending.X += dx
				f.Pending.Y += dy
			}
		}
	}

	l.Tree.MarkWorkspaceDirty(id)
	slog.Debug("Arranging workspace", "package", "layout", "workspace", ws.Name, "x", ws.Pending.X, "y", ws.Pending.Y)

	if fs := l.Tree.Container(ws.Pending.Fullscreen); fs != nil {
		fs.Pending.X = o.Box.X
		fs.Pending.Y = o.Box.Y
		fs.Pending.Width = o.Box.Width
		fs.Pending.Height = o.Box.Height
		l.ArrangeContainer(fs.ID)
		return
	}

	l.arrangeChildren(ws.Pending.Tiling, ws.Current.FocusedInactiveChild, ws.Layout.Type, WorkspaceBox(ws))
	for _, fid := range ws.Pending.Floating {
		l.ArrangeContainer(fid)
	}
}

func (l *Layout) ArrangeOutput(id tree.OutputID) {
	o := l.Tree.Output(id)
	if o == nil || !o.Enabled {
		return
	}
	for _, ws := range o.Pending.Workspaces {
		l.ArrangeWorkspace(ws)
	}
}

func (l *Layout) ArrangeRoot() {
	for _, o := range l.Tree.Outputs {
		l.ArrangeOutput(o)
	}
}

// arrangeParent re-arranges the list that holds c.
func (l *Layout) arrangeParent(c *tree.Container) {
	if c.Pending.Parent.Valid() {
		l.ArrangeContainer(c.Pending.Parent)
		return
	}
	l.ArrangeWorkspace(c.Pending.Workspace)
}
