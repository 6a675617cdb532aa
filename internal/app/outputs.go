package app

import (
	"log/slog"
	"strconv"

	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/ItsNotGoodName/x-scroller/internal/xwm"
)

// SetMonitors creates, resizes and disables outputs to match monitors. A new
// output gets a fresh workspace named after the lowest free number.
func (s *Server) SetMonitors(monitors []xwm.Monitor) {
	seen := make(map[string]bool, len(monitors))
	for _, m := range monitors {
		seen[m.Name] = true
		o := s.Tree.OutputByName(m.Name)
		if o == nil {
			o = s.Tree.NewOutput(m.Name, m.Box)
			slog.Info("Output added", "package", "app", "name", m.Name, "box", m.Box)
		} else {
			if !o.Enabled {
				o.Enabled = true
				slog.Info("Output enabled", "package", "app", "name", m.Name)
			}
			s.Tree.Resize(o.ID, m.Box)
		}
		if len(o.Pending.Workspaces) == 0 {
			ws := s.Tree.NewWorkspace(s.freeWorkspaceName(), o.ID)
			s.Layout.InitWorkspace(ws.ID)
		}
	}

	for _, id := range s.Tree.Outputs {
		o := s.Tree.Output(id)
		if o == nil || !o.Enabled || seen[o.Name] {
			continue
		}
		o.Enabled = false
		s.Tree.MarkDirty(tree.OutputNode(id))
		slog.Info("Output disabled", "package", "app", "name", o.Name)
	}

	if !s.Tree.FocusedWorkspace().Valid() {
		if ws := s.targetWorkspace(); ws != nil {
			s.Tree.SetFocusWorkspace(ws.ID)
		}
	}
	s.adoptOrphans()
	s.Layout.ArrangeRoot()
	s.commit()
}

func (s *Server) freeWorkspaceName() string {
	for i := 1; ; i++ {
		name := strconv.Itoa(i)
		if s.Tree.WorkspaceByName(name) == nil {
			return name
		}
	}
}

func (s *Server) adoptOrphans() {
	ws := s.targetWorkspace()
	if ws == nil || len(s.orphans) == 0 {
		return
	}
	orphans := s.orphans
	s.orphans = nil
	for _, id := range orphans {
		if c := s.Tree.Container(id); c != nil {
			s.placeView(ws, c)
			s.publishWindow("new", c)
		}
	}
}
