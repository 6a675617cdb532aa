package layout

import (
	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// Align moves c, or its top-level container, against a viewport edge or to
// its center and switches ws to lazy reordering so the placement sticks.
// DirCenter centers along the insertion mode, DirMiddle along both axes.
func (l *Layout) Align(id tree.ContainerID, dir Direction) error {
	c := l.Tree.Container(id)
	if c == nil {
		return ErrNoContainer
	}
	if l.Tree.IsFloating(id) {
		return ErrFloating
	}
	if l.Tree.IsFullscreen(id) {
		return ErrFullscreen
	}
	ws := l.Tree.Workspace(c.Pending.Workspace)
	if ws == nil {
		return ErrNoWorkspace
	}
	if ws.Layout.Overview {
		return nil
	}

	parent := c
	if p := l.Tree.Container(c.Pending.Parent); p != nil {
		parent = p
	}
	scale := Scale(ws)
	g := ws.GapsInner
	b := WorkspaceBox(ws)
	horiz := ws.Layout.Type == tree.LayoutHoriz
	l.SetReorder(ws, tree.ReorderLazy)

	setParent := func(v float64) {
		if horiz {
			parent.Pending.X = v
		} else {
			parent.Pending.Y = v
		}
		l.Tree.MarkContainerDirty(parent.ID)
		l.ArrangeWorkspace(ws.ID)
	}
	setChild := func(v float64) {
		if horiz {
			c.Pending.Y = v
		} else {
			c.Pending.X = v
		}
		l.Tree.MarkContainerDirty(c.ID)
		l.ArrangeContainer(c.ID)
	}
	// Centered positions along each axis.
	centerX := func(w float64) float64 { return b.X + 0.5*(b.Width-scale*w) }
	centerY := func(h float64) float64 { return b.Y + 0.5*(b.Height-scale*h) }

	switch dir {
	case DirLeft:
		if horiz {
			setParent(b.X + scale*g)
		} else {
			setChild(b.X + scale*g)
		}
	case DirRight:
		if horiz {
			setParent(b.X + b.Width - scale*(parent.Pending.Width+g))
		} else {
			setChild(b.X + b.Width - scale*(c.Pending.Width+g))
		}
	case DirUp:
		if horiz {
			setChild(b.Y + scale*g)
		} else {
			setParent(b.Y + scale*g)
		}
	case DirDown:
		if horiz {
			setChild(b.Y + b.Height - scale*(c.Pending.Height+g))
		} else {
			setParent(b.Y + b.Height - scale*(parent.Pending.Height+g))
		}
	case DirCenter:
		switch {
		case horiz && ws.Layout.Mode == tree.LayoutHoriz:
			setParent(centerX(parent.Pending.Width))
		case horiz:
			setChild(centerY(c.Pending.Height))
		case ws.Layout.Mode == tree.LayoutVert:
			setParent(centerY(parent.Pending.Height))
		default:
			setChild(centerX(c.Pending.Width))
		}
	case DirMiddle:
		if horiz {
			setParent(centerX(parent.Pending.Width))
			setChild(centerY(c.Pending.Height))
		} else {
			setParent(centerY(parent.Pending.Height))
			setChild(centerX(c.Pending.Width))
		}
	default:
		return ErrInvalidDirection
	}
	l.animate(anim.ModeWindowMove)
	return nil
}

// AlignReset goes back to automatic reordering.
func (l *Layout) AlignReset(ws *tree.Workspace) {
	l.SetReorder(ws, tree.ReorderAuto)
	l.Tree.MarkWorkspaceDirty(ws.ID)
}

// Transpose swaps the workspace axis. Every top-level container takes the old
// workspace axis.
func (l *Layout) Transpose(ws *tree.Workspace) error {
	old := ws.Layout.Type
	if old != tree.LayoutHoriz && old != tree.LayoutVert {
		return ErrUnknownLayoutType
	}
	l.SetType(ws, old.Opposite())
	for _, id := range ws.Pending.Tiling {
		if c := l.Tree.Container(id); c != nil {
			c.Pending.Layout = old
			l.Tree.MarkContainerDirty(id)
		}
	}
	l.publish("type", ws)
	l.ArrangeWorkspace(ws.ID)
	l.animate(anim.ModeWindowMove)
	return nil
}

// ToggleFullscreen makes c cover its output or puts it back.
func (l *Layout) ToggleFullscreen(id tree.ContainerID) error {
	c := l.Tree.Container(id)
	if c == nil {
		return ErrNoContainer
	}
	ws := l.Tree.Workspace(c.Pending.Workspace)
	if ws == nil {
		return ErrNoWorkspace
	}
	if ws.Pending.Fullscreen == id {
		c.Pending.Fullscreen = false
		ws.Pending.Fullscreen = tree.ContainerID{}
	} else {
		if old := l.Tree.Container(ws.Pending.Fullscreen); old != nil {
			old.Pending.Fullscreen = false
			l.Tree.MarkContainerDirty(old.ID)
		}
		c.Pending.Fullscreen = true
		ws.Pending.Fullscreen = id
	}
	l.Tree.MarkContainerDirty(id)
	l.ArrangeWorkspace(ws.ID)
	l.animate(anim.ModeWindowSize)
	return nil
}
