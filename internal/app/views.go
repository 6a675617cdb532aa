package app

import (
	"log/slog"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/bus"
	"github.com/ItsNotGoodName/x-scroller/internal/store"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// MapView wraps v in a view container and tiles it next to the focused view.
func (s *Server) MapView(v tree.View) tree.ContainerID {
	c := s.Tree.NewView(v)
	s.views[v] = c.ID
	s.restoreFractions(c)

	ws := s.targetWorkspace()
	if ws == nil {
		slog.Debug("No workspace for view, holding it", "package", "app", "app_id", v.AppID())
		s.orphans = append(s.orphans, c.ID)
		return c.ID
	}
	s.placeView(ws, c)
	s.commit()
	s.publishWindow("new", c)
	return c.ID
}

func (s *Server) placeView(ws *tree.Workspace, c *tree.Container) {
	s.Layout.AddView(ws, s.Tree.Focused(), c.ID)
	if ws.Layout.Focus || !s.Tree.Focused().Valid() {
		s.Tree.SetFocus(c.ID)
		if top := s.Tree.TopLevel(c.ID); top != nil {
			ws.SetActiveChild(top.ID)
		}
	}
	s.Layout.ArrangeWorkspace(ws.ID)
	s.Anim.Create(anim.ModeWindowOpen)
}

// targetWorkspace is the focused workspace, else the first visible one.
func (s *Server) targetWorkspace() *tree.Workspace {
	if ws := s.Tree.Workspace(s.Tree.FocusedWorkspace()); ws != nil {
		return ws
	}
	for _, id := range s.Tree.Workspaces() {
		if s.Tree.IsVisible(id) {
			return s.Tree.Workspace(id)
		}
	}
	return nil
}

// UnmapView removes the view container id and focuses what takes its place.
func (s *Server) UnmapView(id tree.ContainerID) {
	c := s.Tree.Container(id)
	if c == nil || s.Tree.Destroying(tree.ContainerNode(id)) {
		return
	}
	s.saveFractions(id)
	s.publishWindow("close", c)
	delete(s.views, c.View)

	for i, orphan := range s.orphans {
		if orphan == id {
			s.orphans = append(s.orphans[:i], s.orphans[i+1:]...)
			s.Tree.BeginDestroy(id)
			return
		}
	}

	if s.Jump.Active() {
		s.Jump.Cancel()
	}
	if s.drag.id == id {
		s.drag = drag{}
	}
	s.Selection.Set(id, false)
	s.Trails.RemoveView(id)

	focused := s.Tree.Focused() == id
	wsID := c.Pending.Workspace
	next := s.Layout.RemoveView(id)
	if focused {
		if next.Valid() {
			s.Tree.SetFocus(next)
		} else {
			s.Tree.SetFocusWorkspace(wsID)
		}
		if !s.Tree.Focused().Valid() {
			s.backend.Focus(nil)
		}
	}
	s.commit()
}

// FocusView focuses id and makes its top-level container the active one.
func (s *Server) FocusView(id tree.ContainerID) {
	c := s.Tree.Container(id)
	if c == nil || s.Tree.Focused() == id {
		return
	}
	s.Tree.SetFocus(id)
	ws := s.Tree.Workspace(c.Pending.Workspace)
	if ws == nil {
		s.commit()
		return
	}
	if top := s.Tree.TopLevel(id); top != nil && !s.Tree.IsFloating(top.ID) {
		ws.SetActiveChild(top.ID)
	}
	s.Layout.ArrangeWorkspace(ws.ID)
	s.commit()
}

// View returns the container wrapping v.
func (s *Server) View(v tree.View) (tree.ContainerID, bool) {
	id, ok := s.views[v]
	return id, ok
}

func (s *Server) focused(id tree.ContainerID) {
	c := s.Tree.Container(id)
	if c == nil || !c.IsView() {
		s.backend.Focus(nil)
		return
	}
	s.backend.Focus(c.View)
	s.publishWindow("focus", c)
}

func (s *Server) publishWindow(change string, c *tree.Container) {
	e := bus.WindowEvent{
		Change: change,
		ID:     c.ID.Uint64(),
	}
	if c.View != nil {
		e.AppID = c.View.AppID()
		e.Title = c.View.Title()
	}
	if ws := s.Tree.Workspace(c.Pending.Workspace); ws != nil {
		e.Workspace = ws.Name
	}
	bus.Publish(e)
}

func (s *Server) restoreFractions(c *tree.Container) {
	if s.Memory == nil || c.View == nil || c.View.AppID() == "" {
		return
	}
	ctx, cancel := s.memoryContext()
	defer cancel()
	f, ok, err := s.Memory.Get(ctx, c.View.AppID())
	if err != nil {
		slog.Error("Failed to read fractions", "package", "app", "app_id", c.View.AppID(), "error", err)
		return
	}
	if ok {
		c.WidthFraction = f.Width
		c.HeightFraction = f.Height
	}
}

// saveFractions remembers the size of every view below id. Along the
// workspace axis the size belongs to the top-level container.
func (s *Server) saveFractions(id tree.ContainerID) {
	if s.Memory == nil {
		return
	}
	ctx, cancel := s.memoryContext()
	defer cancel()

	for _, vid := range s.Tree.Views(id) {
		v := s.Tree.Container(vid)
		if v == nil || v.View == nil || v.View.AppID() == "" {
			continue
		}
		f := store.Fractions{
			AppID:  v.View.AppID(),
			Width:  v.WidthFraction,
			Height: v.HeightFraction,
		}
		if top := s.Tree.TopLevel(vid); top != nil {
			if ws := s.Tree.Workspace(v.Pending.Workspace); ws != nil {
				if ws.Layout.Type == tree.LayoutHoriz {
					f.Width = top.WidthFraction
				} else {
					f.Height = top.HeightFraction
				}
			}
		}
		if err := s.Memory.Save(ctx, f); err != nil {
			slog.Error("Failed to save fractions", "package", "app", "app_id", f.AppID, "error", err)
		}
	}
}
