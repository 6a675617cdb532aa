package app

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/loop"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// ScrollIdle ends a wheel scroll gesture after this long without a step.
const ScrollIdle = 200 * time.Millisecond

type drag struct {
	id       tree.ContainerID
	x, y     float64
	dragging bool
}

type scroll struct {
	ws     tree.WorkspaceID
	x, y   float64
	cancel loop.Cancel
}

// WorkspaceAt returns the active workspace of the output under (x, y).
func (s *Server) WorkspaceAt(x, y float64) *tree.Workspace {
	for _, id := range s.Tree.Outputs {
		o := s.Tree.Output(id)
		if o == nil || !o.Enabled || !o.Box.Contains(x, y) {
			continue
		}
		return s.Tree.Workspace(o.Pending.Active)
	}
	return nil
}

// DragBegin arms a drag of view id. Nothing moves until the pointer travels
// past the drag threshold.
func (s *Server) DragBegin(id tree.ContainerID, x, y float64) {
	c := s.Tree.Container(id)
	if c == nil || s.Tree.IsFloating(id) || s.Tree.IsFullscreen(id) {
		return
	}
	s.drag = drag{id: id, x: x, y: y}
	s.FocusView(id)
}

func (s *Server) DragMotion(x, y float64) {
	if !s.drag.id.Valid() || s.drag.dragging {
		return
	}
	if math.Hypot(x-s.drag.x, y-s.drag.y) >= s.Layout.Options.DragThreshold {
		s.drag.dragging = true
		slog.Debug("Drag started", "package", "app", "container", s.drag.id.Uint64())
	}
}

// DragEnd drops the dragged view at (x, y). It reports whether anything
// was dropped.
func (s *Server) DragEnd(x, y float64) bool {
	d := s.drag
	s.drag = drag{}
	if !d.dragging {
		return false
	}
	c := s.Tree.Container(d.id)
	ws := s.WorkspaceAt(x, y)
	if c == nil || ws == nil {
		return false
	}
	oldWS := c.Pending.Workspace

	var err error
	under := s.Layout.ViewAt(ws, x, y)
	if target, edge, ok := s.Layout.DropTarget(c, under, x, y); ok {
		err = s.Layout.DragContainerToContainer(d.id, target.ID, ws.ID, edge)
	} else if under == nil {
		err = s.Layout.DragContainerToWorkspace(d.id, ws.ID)
	} else {
		return false
	}
	if err != nil {
		slog.Debug("Drop failed", "package", "app", "error", err)
		return false
	}

	s.Tree.SetFocus(d.id)
	s.commit()
	if oldWS != c.Pending.Workspace {
		s.publishWindow("move", c)
	}
	return true
}

// Scroll moves the content of the workspace under (x, y) by dx, dy. The
// gesture ends on its own once the steps stop. Horizontal workspaces take
// vertical steps along their axis.
func (s *Server) Scroll(x, y, dx, dy float64) {
	ws := s.WorkspaceAt(x, y)
	if ws == nil {
		return
	}
	if ws.Layout.Type == tree.LayoutHoriz {
		dx, dy = dy, dx
	}

	if s.scroll.cancel == nil || s.scroll.ws != ws.ID {
		s.ScrollEnd()
		if err := s.Layout.ScrollBegin(ws.ID, x, y); err != nil {
			if !errors.Is(err, layout.ErrFits) {
				slog.Debug("Scroll failed", "package", "app", "error", err)
			}
			return
		}
		s.scroll.ws = ws.ID
	} else {
		s.scroll.cancel()
	}
	s.scroll.x, s.scroll.y = x, y
	s.Layout.ScrollUpdate(ws.ID, x, y, dx, dy)
	s.scroll.cancel = s.sched.Schedule(ScrollIdle, s.ScrollEnd)
}

// ScrollEnd finishes the running scroll gesture, if any.
func (s *Server) ScrollEnd() {
	if s.scroll.cancel == nil {
		return
	}
	sc := s.scroll
	sc.cancel()
	s.scroll = scroll{}
	s.Layout.ScrollEnd(sc.ws, sc.x, sc.y)
}
