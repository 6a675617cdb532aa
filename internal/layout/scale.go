package layout

import (
	"math"

	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

const (
	MinScale = 0.2
	MaxScale = 1.0
)

func (l *Layout) ScaleSet(ws *tree.Workspace, scale float64) {
	ws.Layout.Scale = scale
	l.Tree.MarkWorkspaceDirty(ws.ID)
	l.publish("scale", ws)
}

func (l *Layout) ScaleReset(ws *tree.Workspace) {
	ws.Layout.Scale = -1
	l.Tree.MarkWorkspaceDirty(ws.ID)
	l.publish("scale", ws)
}

// ScaleIncrement adds delta to the current scale, clamped.
func (l *Layout) ScaleIncrement(ws *tree.Workspace, delta float64) {
	l.ScaleSet(ws, clampScale(Scale(ws)+delta))
}

func (l *Layout) ScaleExact(ws *tree.Workspace, scale float64) {
	l.ScaleSet(ws, clampScale(scale))
}

func clampScale(v float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, v))
}

// OverviewToggle turns overview on, remembering the scale, or off, restoring it.
func (l *Layout) OverviewToggle(ws *tree.Workspace) {
	if ws.Layout.Overview {
		ws.Layout.Overview = false
		ws.Layout.Scale = ws.Layout.MemScale
	} else {
		ws.Layout.MemScale = ws.Layout.Scale
		ws.Layout.Overview = true
	}
	l.Tree.MarkWorkspaceDirty(ws.ID)
	l.publish("overview", ws)
}

// OverviewScale is the scale at which every top-level container of ws fits
// the viewport. It returns false when ws has nothing tiled.
func (l *Layout) OverviewScale(ws *tree.Workspace) (float64, bool) {
	if len(ws.Pending.Tiling) == 0 {
		return 0, false
	}
	g := ws.GapsInner
	width, height := g, -math.MaxFloat64
	for _, id := range ws.Pending.Tiling {
		c := l.Tree.Container(id)
		if c == nil {
			continue
		}
		width += c.Pending.Width + 2*g
		h := g
		for _, child := range c.Pending.Children {
			if v := l.Tree.Container(child); v != nil {
				h += v.Pending.Height + 2*g
			}
		}
		height = math.Max(height, h)
	}
	if ws.Layout.Type == tree.LayoutVert {
		// Columns stack vertically, rows of children lie horizontally.
		width, height = -math.MaxFloat64, g
		for _, id := range ws.Pending.Tiling {
			c := l.Tree.Container(id)
			if c == nil {
				continue
			}
			height += c.Pending.Height + 2*g
			w := g
			for _, child := range c.Pending.Children {
				if v := l.Tree.Container(child); v != nil {
					w += v.Pending.Width + 2*g
				}
			}
			width = math.Max(width, w)
		}
	}
	if width <= 0 || height <= 0 {
		return 0, false
	}
	return math.Min(ws.Pending.Width/width, ws.Pending.Height/height), true
}

// OverviewRecomputeScale refreshes the overview scale of ws.
func (l *Layout) OverviewRecomputeScale(ws *tree.Workspace) {
	scale, ok := l.OverviewScale(ws)
	if !ok || scale == ws.Layout.Scale {
		return
	}
	ws.Layout.Scale = scale
	l.Tree.MarkWorkspaceDirty(ws.ID)
}
