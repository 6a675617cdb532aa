package layout

import (
	"github.com/ItsNotGoodName/x-scroller/internal/geom"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// axis normalizes a layout to the axis its children are laid along. Split
// containers without a layout behave as horizontal ones.
func axis(layout tree.Layout) tree.Layout {
	if layout == tree.LayoutVert {
		return tree.LayoutVert
	}
	return tree.LayoutHoriz
}

// span returns the position and size of s along layout.
func span(s *tree.ContainerState, layout tree.Layout) (pos, size *float64) {
	if axis(layout) == tree.LayoutVert {
		return &s.Y, &s.Height
	}
	return &s.X, &s.Width
}

func fraction(c *tree.Container, layout tree.Layout) *float64 {
	if axis(layout) == tree.LayoutVert {
		return &c.HeightFraction
	}
	return &c.WidthFraction
}

func boxSpan(b geom.Box, layout tree.Layout) (pos, size float64) {
	if axis(layout) == tree.LayoutVert {
		return b.Y, b.Height
	}
	return b.X, b.Width
}

// WorkspaceBox is the area containers of ws are laid out in.
func WorkspaceBox(ws *tree.Workspace) geom.Box {
	return geom.Box{
		X:      ws.Pending.X,
		Y:      ws.Pending.Y,
		Width:  ws.Pending.Width,
		Height: ws.Pending.Height,
	}
}
