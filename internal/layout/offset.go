package layout

import (
	"math"

	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// Strip is one list of siblings seen along its axis for the offset heuristic.
// Sizes are unscaled; positions are absolute.
type Strip struct {
	// Start and Extent are the viewport along the axis.
	Start  float64
	Extent float64
	Gap    float64
	Scale  float64
	Sizes  []float64
	Active int
	// Pos is the current position of the active child.
	Pos    float64
	Center bool
}

func (s Strip) outer(i int) float64 {
	return s.Scale * (s.Sizes[i] + 2*s.Gap)
}

// Offset returns the position the active child should be placed at.
func (s Strip) Offset() float64 {
	if len(s.Sizes) == 0 {
		return s.Pos
	}
	if s.Scale <= 0 {
		s.Scale = 1
	}
	s.Active = max(0, min(s.Active, len(s.Sizes)-1))

	if s.Center {
		return s.Start + 0.5*(s.Extent-s.Scale*s.Sizes[s.Active])
	}

	var before, after float64
	for i := range s.Sizes {
		if i < s.Active {
			before += s.outer(i)
		} else {
			after += s.outer(i)
		}
	}
	if total := before + after; total <= s.Extent {
		return s.Start + 0.5*(s.Extent-total) + before + s.Scale*s.Gap
	}

	return s.position()
}

// position tries every placement that keeps the active child fully visible
// with one sibling flush against a viewport edge, keeps those that leave no
// empty space at the other edge and picks the one moving the active child the
// least.
func (s Strip) position() float64 {
	// One pixel of slack absorbs rounding of fractional sizes.
	beg := s.Start - 1
	end := s.Start + s.Extent + 1
	best := math.MaxFloat64

	// Active at the near edge, then each child after it that still fits flush
	// at the far edge. Neighbors share one gap here.
	edge := s.Start + s.Scale*s.Gap
	for c := s.Active; c < len(s.Sizes); c++ {
		edge += s.Scale * (s.Sizes[c] + s.Gap)
		if edge > end {
			break
		}
		movement := math.MaxFloat64
		covered := false
		x := s.Start + s.Extent
		for i := c; i >= 0; i-- {
			x -= s.outer(i)
			if i == s.Active {
				movement = x + s.Scale*s.Gap - s.Pos
			}
			if x <= beg {
				covered = true
				if x < beg {
					break
				}
			}
		}
		if covered && math.Abs(movement) < math.Abs(best) {
			best = movement
		}
	}

	// Active at the far edge, then each child before it that still fits flush
	// at the near edge.
	edge = s.Start + s.Extent - s.Scale*s.Gap
	for c := s.Active; c >= 0; c-- {
		edge -= s.Scale * (s.Sizes[c] + s.Gap)
		if edge < beg {
			break
		}
		movement := math.MaxFloat64
		covered := false
		x := s.Start
		for i := c; i < len(s.Sizes); i++ {
			if i == s.Active {
				movement = x + s.Scale*s.Gap - s.Pos
			}
			x += s.outer(i)
			if x >= end {
				covered = true
				if x > end {
					break
				}
			}
		}
		if covered && math.Abs(movement) < math.Abs(best) {
			best = movement
		}
	}

	if best != math.MaxFloat64 {
		return s.Pos + best
	}
	return s.fallback()
}

// fallback handles strips where no placement covers both edges, which only
// happens when the active child with its neighbors cannot fill the viewport
// exactly. The same rule applies to both axes.
func (s Strip) fallback() float64 {
	g := s.Scale * s.Gap
	near := s.Start + g
	size := s.Scale * s.Sizes[s.Active]
	far := s.Start + s.Extent - g - size

	if s.Pos >= near-1 && s.Pos <= far+1 {
		return s.Pos
	}
	if next := s.Active + 1; next < len(s.Sizes) && s.outer(s.Active)+s.outer(next) <= s.Extent {
		return s.Start + s.Extent - s.outer(next) - s.outer(s.Active) + g
	}
	if prev := s.Active - 1; prev >= 0 && s.outer(prev)+s.outer(s.Active) <= s.Extent {
		return s.Start + s.outer(prev) + g
	}
	if s.outer(s.Active) <= s.Extent {
		if s.Pos < near {
			return near
		}
		return far
	}
	return s.Pos
}

// ActiveStrip builds the strip of children anchored on children[active] in
// the viewport of ws. Sizes come from the committed state, the active
// position from the pending state.
func (l *Layout) ActiveStrip(ws *tree.Workspace, layout tree.Layout, children []tree.ContainerID, active int) Strip {
	layout = axis(layout)
	s := Strip{
		Gap:    ws.GapsInner,
		Scale:  Scale(ws),
		Sizes:  make([]float64, 0, len(children)),
		Active: active,
	}
	if layout == tree.LayoutVert {
		s.Start, s.Extent = ws.Current.Y, ws.Current.Height
		s.Center = ws.Layout.CenterVertical
	} else {
		s.Start, s.Extent = ws.Current.X, ws.Current.Width
		s.Center = ws.Layout.CenterHorizontal
	}
	for i, id := range children {
		c := l.Tree.Container(id)
		if c == nil {
			s.Sizes = append(s.Sizes, 0)
			continue
		}
		_, size := span(&c.Current, layout)
		s.Sizes = append(s.Sizes, *size)
		if i == active {
			pos, _ := span(&c.Pending, layout)
			s.Pos = *pos
		}
	}
	return s
}

// ComputeActiveOffset returns where children[active] should start so it stays
// optimally positioned in the viewport of ws.
func (l *Layout) ComputeActiveOffset(ws *tree.Workspace, layout tree.Layout, children []tree.ContainerID, active int) float64 {
	return l.ActiveStrip(ws, layout, children, active).Offset()
}
