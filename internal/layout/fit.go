package layout

import (
	"fmt"
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// sizeTarget returns the container a size change along axis applies to. The
// workspace axis is sized per top-level container, never per view.
func (l *Layout) sizeTarget(c *tree.Container, ws *tree.Workspace, layout tree.Layout) *tree.Container {
	if ws.Layout.Type == axis(layout) {
		if p := l.Tree.Container(c.Pending.Parent); p != nil {
			return p
		}
	}
	return c
}

// setFraction stores f on c along layout and hands it down to the children
// when layout is the workspace axis.
func (l *Layout) setFraction(c *tree.Container, ws *tree.Workspace, layout tree.Layout, f float64) {
	*fraction(c, layout) = f
	c.FreeSize = false
	if ws.Layout.Type != axis(layout) {
		return
	}
	for _, id := range c.Pending.Children {
		if child := l.Tree.Container(id); child != nil {
			*fraction(child, layout) = f
			child.FreeSize = false
		}
	}
}

// SetSize sets the fraction of c along layout.
func (l *Layout) SetSize(id tree.ContainerID, layout tree.Layout, f float64) error {
	c := l.Tree.Container(id)
	if c == nil {
		return ErrNoContainer
	}
	if l.Tree.IsScratchpadHidden(id) {
		return ErrHiddenScratchpad
	}
	ws := l.Tree.Workspace(c.Pending.Workspace)
	if ws == nil {
		return ErrNoWorkspace
	}
	c = l.sizeTarget(c, ws, layout)
	l.setFraction(c, ws, layout, f)
	l.arrangeParent(c)
	l.animate(anim.ModeWindowSize)
	return nil
}

// ClosestFraction returns the first size above cur when inc > 0, the last
// size below cur otherwise, or cur when there is none.
func ClosestFraction(cur float64, sizes []float64, inc int) float64 {
	if inc > 0 {
		for _, s := range sizes {
			if s > cur {
				return s
			}
		}
		return cur
	}
	for i := len(sizes) - 1; i >= 0; i-- {
		if sizes[i] < cur {
			return sizes[i]
		}
	}
	return cur
}

// CycleSize snaps the fraction of c along layout to the next or previous
// configured size.
func (l *Layout) CycleSize(id tree.ContainerID, layout tree.Layout, inc int) error {
	c := l.Tree.Container(id)
	if c == nil {
		return ErrNoContainer
	}
	ws := l.Tree.Workspace(c.Pending.Workspace)
	if ws == nil && !l.Tree.IsScratchpadHidden(id) {
		return ErrNoWorkspace
	}
	if ws != nil {
		c = l.sizeTarget(c, ws, layout)
	}
	if l.Tree.IsScratchpadHidden(c.ID) {
		return ErrHiddenScratchpad
	}

	f := fraction(c, layout)
	var cur float64
	var sizes []float64
	if axis(layout) == tree.LayoutVert {
		sizes = l.Heights(ws)
		if c.FreeSize {
			cur = c.Pending.Height / ws.Pending.Height
		} else {
			if *f <= 0 {
				*f = l.DefaultHeight(ws)
			}
			cur = *f
		}
	} else {
		sizes = l.Widths(ws)
		if c.FreeSize {
			cur = c.Pending.Width / ws.Pending.Width
		} else {
			if *f <= 0 {
				*f = l.DefaultWidth(ws)
			}
			cur = *f
		}
	}

	l.setFraction(c, ws, layout, ClosestFraction(cur, sizes, inc))
	l.arrangeParent(c)
	l.animate(anim.ModeWindowSize)
	return nil
}

type FitRange int

const (
	FitActive FitRange = iota
	FitVisible
	FitAll
	FitToEnd
	FitToBeginning
)

func ParseFitRange(s string) (FitRange, error) {
	switch s {
	case "active":
		return FitActive, nil
	case "visible":
		return FitVisible, nil
	case "all":
		return FitAll, nil
	case "toend":
		return FitToEnd, nil
	case "tobeg":
		return FitToBeginning, nil
	default:
		return 0, fmt.Errorf("unknown fit range %q", s)
	}
}

// visibleRange returns the first and last children that overlap the
// viewport of ws, walking outward from the active child.
func visibleRange(l *Layout, ws *tree.Workspace, layout tree.Layout, children []tree.ContainerID, active int) (from, to int) {
	from, to = len(children), -1
	scale := Scale(ws)
	g := ws.GapsInner
	start, extent := boxSpan(WorkspaceBox(ws), layout)
	end := start + extent
	mark := func(i int, a, b float64) {
		if (a >= start && a < end) || (b >= start && b < end) || (a < start && b >= end) {
			from = min(from, i)
			to = max(to, i)
		}
	}

	anchor := l.Tree.Container(children[active])
	apos, _ := span(&anchor.Pending, layout)

	offset := *apos
	for i := active; i < len(children); i++ {
		c := l.Tree.Container(children[i])
		_, size := span(&c.Pending, layout)
		a, b := offset, offset+scale*(*size)
		mark(i, a, b)
		offset = b + 2*scale*g
	}
	offset = *apos - 2*scale*g
	for i := active - 1; i >= 0; i-- {
		c := l.Tree.Container(children[i])
		_, size := span(&c.Pending, layout)
		a, b := offset-scale*(*size), offset
		mark(i, a, b)
		offset = a - 2*scale*g
	}
	return from, to
}

// fitList resizes children[from..to] to share the viewport and moves them so
// from starts at the near edge.
func (l *Layout) fitList(ws *tree.Workspace, layout tree.Layout, children []tree.ContainerID, active int, fit FitRange, equal bool) {
	var from, to int
	switch fit {
	case FitActive:
		from, to = active, active
	case FitVisible:
		from, to = visibleRange(l, ws, layout, children, active)
		if from > to {
			return
		}
	case FitAll:
		from, to = 0, len(children)-1
	case FitToEnd:
		from, to = active, len(children)-1
	case FitToBeginning:
		from, to = 0, active
	default:
		return
	}

	g := ws.GapsInner
	start, extent := boxSpan(WorkspaceBox(ws), layout)
	n := float64(to - from + 1)
	share := extent - n*2*g

	var total float64
	for _, id := range children[from : to+1] {
		_, size := span(&l.Tree.Container(id).Pending, layout)
		total += *size
	}
	for _, id := range children[from : to+1] {
		c := l.Tree.Container(id)
		_, size := span(&c.Pending, layout)
		c.FreeSize = true
		if equal || total <= 0 {
			*size = share / n
		} else {
			*size *= share / total
		}
	}

	// Positions are scaled, sizes are not.
	scale := Scale(ws)
	offset := start + scale*g
	if from <= active {
		for i := from; i <= active; i++ {
			c := l.Tree.Container(children[i])
			pos, size := span(&c.Pending, layout)
			*pos = offset
			offset += scale * (*size + 2*g)
		}
	} else {
		for i := from - 1; i >= active; i-- {
			c := l.Tree.Container(children[i])
			pos, size := span(&c.Pending, layout)
			offset -= scale * (*size + 2*g)
			*pos = offset
		}
	}
}

// FitSize resizes a range of siblings of c along layout so they fill the
// viewport. Along the workspace axis the range is taken from the top-level
// containers, across it from the children of the container of c.
func (l *Layout) FitSize(id tree.ContainerID, layout tree.Layout, fit FitRange, equal bool) error {
	c := l.Tree.Container(id)
	if c == nil {
		return ErrNoContainer
	}
	if l.Tree.IsScratchpadHidden(id) {
		return ErrHiddenScratchpad
	}
	if l.Tree.IsFloating(id) {
		return ErrFloating
	}
	ws := l.Tree.Workspace(c.Pending.Workspace)
	if ws == nil {
		return ErrNoWorkspace
	}
	if l.Tree.IsFullscreen(id) || ws.Layout.Overview {
		return nil
	}

	layout = axis(layout)
	if ws.Layout.Type == layout {
		if len(ws.Pending.Tiling) > 0 {
			active := max(slices.Index(ws.Pending.Tiling, ws.Current.FocusedInactiveChild), 0)
			l.fitList(ws, layout, ws.Pending.Tiling, active, fit, equal)
			l.ArrangeWorkspace(ws.ID)
		}
	} else {
		cont := c
		if p := l.Tree.Container(c.Pending.Parent); p != nil {
			cont = p
		}
		if len(cont.Pending.Children) > 0 {
			active := max(slices.Index(cont.Pending.Children, cont.Current.FocusedInactiveChild), 0)
			l.fitList(ws, axis(cont.Pending.Layout), cont.Pending.Children, active, fit, equal)
			l.ArrangeContainer(cont.ID)
		}
	}
	l.animate(anim.ModeWindowSize)
	return nil
}
