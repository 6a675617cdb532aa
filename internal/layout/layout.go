// Package layout turns containers with fractional sizes into pixel geometry
// and implements every operation that reshapes the scrolling layout.
package layout

import (
	"log/slog"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/bus"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// Committer publishes dirty nodes as a transaction.
type Committer interface {
	CommitDirty()
}

type Options struct {
	// ScrollSensitivity multiplies gesture deltas.
	ScrollSensitivity float64
	// DragThreshold is the pointer distance in pixels before a tiling drag starts.
	DragThreshold float64
}

func DefaultOptions() Options {
	return Options{
		ScrollSensitivity: 1.0,
		DragThreshold:     9,
	}
}

type Layout struct {
	Tree    *tree.Tree
	Anim    *anim.Context
	Commit  Committer
	Options Options
}

func New(t *tree.Tree, a *anim.Context, c Committer, opts Options) *Layout {
	return &Layout{
		Tree:    t,
		Anim:    a,
		Commit:  c,
		Options: opts,
	}
}

func (l *Layout) commit() {
	if l.Commit != nil {
		l.Commit.CommitDirty()
	}
}

func (l *Layout) animate(mode anim.Mode) {
	if l.Anim != nil {
		l.Anim.Create(mode)
	}
}

type Direction int

const (
	DirInvalid Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
	DirBegin
	DirEnd
	DirCenter
	DirMiddle
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirBegin:
		return "beginning"
	case DirEnd:
		return "end"
	case DirCenter:
		return "center"
	case DirMiddle:
		return "middle"
	default:
		return "invalid"
	}
}

// ParseDirection accepts the direction names used by commands.
func ParseDirection(s string) Direction {
	switch s {
	case "left":
		return DirLeft
	case "right":
		return DirRight
	case "up":
		return DirUp
	case "down":
		return DirDown
	case "beginning", "begin", "beg":
		return DirBegin
	case "end":
		return DirEnd
	case "center":
		return DirCenter
	case "middle":
		return DirMiddle
	default:
		return DirInvalid
	}
}

// Scale returns the content scale of ws, 1 when scaling is off.
func Scale(ws *tree.Workspace) float64 {
	if ws == nil || ws.Layout.Scale <= 0 {
		return 1
	}
	return ws.Layout.Scale
}

func (l *Layout) output(ws *tree.Workspace) *tree.Output {
	if ws == nil {
		return nil
	}
	return l.Tree.Output(ws.Pending.Output)
}

// DefaultWidth is the width fraction given to new top-level containers of ws.
func (l *Layout) DefaultWidth(ws *tree.Workspace) float64 {
	if o := l.output(ws); o != nil && o.Options.DefaultWidth > 0 {
		return o.Options.DefaultWidth
	}
	return l.Tree.Defaults.DefaultWidth
}

func (l *Layout) DefaultHeight(ws *tree.Workspace) float64 {
	if o := l.output(ws); o != nil && o.Options.DefaultHeight > 0 {
		return o.Options.DefaultHeight
	}
	return l.Tree.Defaults.DefaultHeight
}

// Widths is the list cycle_size snaps widths to.
func (l *Layout) Widths(ws *tree.Workspace) []float64 {
	if o := l.output(ws); o != nil && len(o.Options.Widths) > 0 {
		return o.Options.Widths
	}
	return l.Tree.Defaults.Widths
}

func (l *Layout) Heights(ws *tree.Workspace) []float64 {
	if o := l.output(ws); o != nil && len(o.Options.Heights) > 0 {
		return o.Options.Heights
	}
	return l.Tree.Defaults.Heights
}

// InitWorkspace resets the layout record of ws from its output and the
// configured defaults.
func (l *Layout) InitWorkspace(id tree.WorkspaceID) {
	ws := l.Tree.Workspace(id)
	if ws == nil {
		return
	}
	typ := l.Tree.Defaults.LayoutType
	if o := l.output(ws); o != nil && o.Options.LayoutType != tree.LayoutNone {
		typ = o.Options.LayoutType
	}
	if typ == tree.LayoutNone {
		typ = tree.LayoutHoriz
	}
	ws.Layout.Type = typ
	ws.Layout.Mode = typ
	ws.Layout.Reorder = tree.ReorderAuto
	ws.Layout.Insert = tree.InsertAfter
	ws.Layout.Focus = true
	ws.Layout.CenterHorizontal = false
	ws.Layout.CenterVertical = false
	ws.Layout.Overview = false
	ws.Layout.MemScale = -1
	l.publish("new", ws)
}

func (l *Layout) publish(change string, ws *tree.Workspace) {
	slog.Debug("Scroller changed", "package", "layout", "change", change, "workspace", ws.Name)
	bus.Publish(ScrollerEvent(change, ws))
}

// ScrollerEvent describes the layout record of ws.
func ScrollerEvent(change string, ws *tree.Workspace) bus.ScrollerEvent {
	return bus.ScrollerEvent{
		Change:    change,
		Workspace: ws.Name,
		Type:      ws.Layout.Type.String(),
		Mode:      ws.Layout.Mode.String(),
		Insert:    ws.Layout.Insert.String(),
		Reorder:   ws.Layout.Reorder.String(),
		Focus:     ws.Layout.Focus,
		CenterH:   ws.Layout.CenterHorizontal,
		CenterV:   ws.Layout.CenterVertical,
		Overview:  ws.Layout.Overview,
		Scale:     Scale(ws),
	}
}
