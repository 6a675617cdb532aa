// Package selection marks containers so they can be moved around together.
package selection

import (
	"log/slog"
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

type Selection struct {
	Layout *layout.Layout
}

func New(l *layout.Layout) *Selection {
	return &Selection{Layout: l}
}

func (s *Selection) tree() *tree.Tree {
	return s.Layout.Tree
}

// Enabled reports whether c or one of its ancestors is selected.
func (s *Selection) Enabled(id tree.ContainerID) bool {
	for c := s.tree().Container(id); c != nil; c = s.tree().Container(c.Pending.Parent) {
		if c.Selected {
			return true
		}
	}
	return false
}

func (s *Selection) Set(id tree.ContainerID, selected bool) {
	c := s.tree().Container(id)
	if c == nil || c.Selected == selected {
		return
	}
	c.Selected = selected
	s.tree().MarkContainerDirty(id)
}

// Toggle flips the selection of the top-level container of c when the
// workspace inserts containers, or of the view otherwise.
func (s *Selection) Toggle(id tree.ContainerID) error {
	c := s.tree().Container(id)
	if c == nil {
		return layout.ErrNoContainer
	}
	ws := s.tree().Workspace(c.Pending.Workspace)
	if ws == nil {
		return layout.ErrNoWorkspace
	}

	var target *tree.Container
	if ws.Layout.Mode == ws.Layout.Type {
		target = s.tree().TopLevel(id)
	} else {
		target = s.view(c)
	}
	if target == nil {
		return layout.ErrNoContainer
	}
	s.Set(target.ID, !target.Selected)
	return nil
}

// view follows the active children of c down to a view.
func (s *Selection) view(c *tree.Container) *tree.Container {
	for c != nil && !c.IsView() {
		next := s.tree().Container(c.Pending.FocusedInactiveChild)
		if next == nil || !slices.Contains(c.Pending.Children, next.ID) {
			if len(c.Pending.Children) == 0 {
				return nil
			}
			next = s.tree().Container(c.Pending.Children[0])
		}
		c = next
	}
	return c
}

// Workspace selects every top-level container of ws.
func (s *Selection) Workspace(ws *tree.Workspace) {
	for _, id := range ws.Pending.Tiling {
		s.Set(id, true)
	}
	for _, id := range ws.Pending.Floating {
		s.Set(id, true)
	}
}

func (s *Selection) Reset() {
	s.tree().EachContainer(func(c *tree.Container) {
		if c.Selected {
			c.Selected = false
			s.tree().MarkContainerDirty(c.ID)
		}
	})
}

// Selected returns the outermost selected containers in workspace order.
// Containers below a selected ancestor are left out.
func (s *Selection) Selected() []tree.ContainerID {
	var ids []tree.ContainerID
	var walk func(list []tree.ContainerID)
	walk = func(list []tree.ContainerID) {
		for _, id := range list {
			c := s.tree().Container(id)
			if c == nil {
				continue
			}
			if c.Selected {
				ids = append(ids, id)
				continue
			}
			walk(c.Pending.Children)
		}
	}
	for _, wsID := range s.tree().Workspaces() {
		ws := s.tree().Workspace(wsID)
		walk(ws.Pending.Tiling)
		walk(ws.Pending.Floating)
	}
	return ids
}

// Move sends the selection to ws and clears it. When the mode of ws matches
// its axis every selected container becomes a top-level container, otherwise
// every selected view joins the active container of ws.
func (s *Selection) Move(ws *tree.Workspace) error {
	items := s.Selected()
	if len(items) == 0 {
		return layout.ErrNoSelection
	}
	slog.Debug("Moving selection", "package", "selection", "workspace", ws.Name, "containers", len(items))

	touched := []tree.WorkspaceID{ws.ID}
	active := s.tree().FocusInactiveView(ws.ID)
	for _, id := range items {
		c := s.tree().Container(id)
		old := c.Pending.Workspace
		if !slices.Contains(touched, old) {
			touched = append(touched, old)
		}

		if s.tree().IsFloating(id) {
			if old != ws.ID {
				s.tree().Detach(id)
				s.tree().AddFloating(ws.ID, id)
			}
			continue
		}
		if ws.Layout.Mode == ws.Layout.Type {
			s.Layout.AddContainer(ws, active, id)
			active = id
			continue
		}
		for _, view := range s.tree().Views(id) {
			v := s.tree().Container(view)
			if oldWS := s.tree().Workspace(v.Pending.Workspace); oldWS != nil {
				s.Layout.UnpinContainer(oldWS, s.tree().TopLevel(view))
			}
			parent := v.Pending.Parent
			s.tree().Detach(view)
			s.tree().Reap(parent)
			s.Layout.AddView(ws, active, view)
			active = view
		}
	}
	s.Reset()

	if top := s.tree().TopLevel(active); top != nil && top.Pending.Workspace == ws.ID && !s.tree().IsFloating(top.ID) {
		ws.SetActiveChild(top.ID)
	}
	for _, id := range touched {
		s.tree().MarkWorkspaceDirty(id)
		s.Layout.ArrangeWorkspace(id)
	}
	return nil
}
