// Package render positions the scene graph from committed state. It runs
// after every applied transaction and on every animation tick, and it is the
// only place where positions along a scrolling axis become final.
package render

import (
	"math"
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/geom"
	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/scene"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

type Renderer struct {
	Tree   *tree.Tree
	Layout *layout.Layout
	Anim   *anim.Context
}

func New(l *layout.Layout, a *anim.Context) *Renderer {
	return &Renderer{
		Tree:   l.Tree,
		Layout: l,
		Anim:   a,
	}
}

func (r *Renderer) values() anim.Values {
	if r.Anim == nil {
		return anim.Settled
	}
	return r.Anim.Values()
}

// SaveAnimation records where the tiling containers of every visible
// workspace start from and what size they end at. It must run before pending
// state is copied into current state.
func (r *Renderer) SaveAnimation() {
	for _, oid := range r.Tree.Outputs {
		o := r.Tree.Output(oid)
		if o == nil || !o.Enabled {
			continue
		}
		if ws := r.Tree.Workspace(o.Current.Active); ws != nil {
			r.saveChildren(ws.Pending.Tiling)
		}
	}
}

func (r *Renderer) saveChildren(children []tree.ContainerID) {
	for _, id := range children {
		c := r.Tree.Container(id)
		if c == nil {
			continue
		}
		c.Animation = tree.Animation{
			X0: c.Current.X,
			Y0: c.Current.Y,
			W0: c.Current.Width,
			H0: c.Current.Height,
			W1: c.Pending.Width,
			H1: c.Pending.Height,
		}
		r.saveChildren(c.Pending.Children)
	}
}

// Arrange lays the whole scene out for the current animation frame.
func (r *Renderer) Arrange() {
	for _, id := range r.Tree.Scratchpad {
		c := r.Tree.Container(id)
		if c == nil || c.Current.Workspace.Valid() {
			continue
		}
		r.disableContainer(c)
		c.Scene.SetEnabled(false)
	}

	for _, oid := range r.Tree.Outputs {
		o := r.Tree.Output(oid)
		if o == nil {
			continue
		}
		o.Scene.SetPosition(round(o.Box.X), round(o.Box.Y))
		o.Scene.SetEnabled(o.Enabled)
		r.arrangeOutput(o)
	}
}

func (r *Renderer) arrangeOutput(o *tree.Output) {
	for _, wsID := range o.Current.Workspaces {
		ws := r.Tree.Workspace(wsID)
		if ws == nil {
			continue
		}
		ws.Scene.Tiling.Reparent(o.Scene)
		ws.Scene.Floating.Reparent(o.Scene)

		if o.Current.Active != wsID || !o.Enabled {
			ws.Scene.Tiling.SetEnabled(false)
			ws.Scene.Floating.SetEnabled(false)
			r.disableWorkspace(ws)
			continue
		}

		fs := r.Tree.Container(ws.Current.Fullscreen)
		ws.Scene.Tiling.SetEnabled(fs == nil)
		ws.Scene.Floating.SetEnabled(true)
		ws.Scene.Floating.SetPosition(0, 0)
		r.arrangeFloating(ws, o)

		if fs != nil {
			r.arrangeFullscreen(ws, o, fs)
			continue
		}

		ws.Scene.Tiling.SetPosition(round(ws.Current.X-o.Box.X), round(ws.Current.Y-o.Box.Y))
		ws.Scene.Tiling.Scale = layout.Scale(ws)
		r.arrangeTiling(ws)
	}
}

func (r *Renderer) arrangeTiling(ws *tree.Workspace) {
	if len(ws.Current.Tiling) == 0 {
		return
	}
	if ws.Layout.Overview {
		r.Layout.OverviewRecomputeScale(ws)
	}
	r.arrangeChildren(ws, ws.Layout.Type, ws.Current.Tiling, ws.Current.FocusedInactiveChild, ws.Scene.Tiling, true)
}

func (r *Renderer) arrangeFloating(ws *tree.Workspace, o *tree.Output) {
	for _, id := range ws.Current.Floating {
		c := r.Tree.Container(id)
		if c == nil || c.Current.Fullscreen {
			continue
		}
		c.Scene.Reparent(ws.Scene.Floating)
		c.Scene.SetPosition(round(c.Current.X-o.Box.X), round(c.Current.Y-o.Box.Y))
		c.Scene.SetEnabled(true)
		r.arrangeContainer(ws, c, c.Current.Width, c.Current.Height)
	}
}

// arrangeFullscreen covers the output with fs, above everything else on it.
func (r *Renderer) arrangeFullscreen(ws *tree.Workspace, o *tree.Output, fs *tree.Container) {
	fs.Scene.Reparent(o.Scene)
	fs.Scene.RaiseToTop()
	fs.Scene.SetPosition(0, 0)
	fs.Scene.SetEnabled(true)
	if fs.IsView() {
		fs.Scene.SetSize(round(o.Box.Width), round(o.Box.Height))
		return
	}
	r.arrangeContainer(ws, fs, o.Box.Width, o.Box.Height)
}

func (r *Renderer) arrangeContainer(ws *tree.Workspace, c *tree.Container, width, height float64) {
	c.Scene.SetEnabled(true)
	scale := layout.Scale(ws)
	c.Scene.SetSize(round(scale*width), round(scale*height))
	if c.IsView() {
		return
	}
	r.arrangeChildren(ws, c.Current.Layout, c.Current.Children, c.Current.FocusedInactiveChild, c.Scene, false)
}

// arrangeChildren places children along layout starting from the offset of
// the active child and walking outward, then arranges each child's subtree.
func (r *Renderer) arrangeChildren(ws *tree.Workspace, typ tree.Layout, children []tree.ContainerID, active tree.ContainerID, content *scene.Node, top bool) {
	if len(children) == 0 {
		return
	}
	typ = axis(typ)
	scale := layout.Scale(ws)
	gap := ws.GapsInner

	var pinned *tree.Container
	var shift, cut float64
	if top {
		if p := r.Layout.PinnedContainer(ws); p != nil && slices.Contains(children, p.ID) && !ws.Gesture.Pinned.Valid() {
			pinned = p
			children = slices.DeleteFunc(slices.Clone(children), func(id tree.ContainerID) bool { return id == p.ID })
			_, size := span(&p.Pending, typ)
			cut = scale * (*size + 2*gap)
			if ws.Layout.Pin.Position == tree.PinBeginning {
				shift = cut
			}
			if active == p.ID && len(children) > 0 {
				if ws.Layout.Pin.Position == tree.PinBeginning {
					active = children[0]
				} else {
					active = children[len(children)-1]
				}
			}
		}
	}

	v := r.values()
	if pinned != nil {
		start, extent := wsSpan(ws, typ)
		_, size := span(&pinned.Pending, typ)
		off := start + scale*gap
		if ws.Layout.Pin.Position == tree.PinEnd {
			off = start + extent - scale*(*size+gap)
		}
		r.place(ws, typ, pinned, off, v, content, false)
		pinned.Scene.RaiseToTop()
	}
	if len(children) == 0 {
		return
	}

	idx := slices.Index(children, active)
	if idx < 0 {
		idx = 0
	}
	var offset float64
	if ws.Gesture.Scrolling || ws.Layout.Reorder == tree.ReorderLazy {
		if c := r.Tree.Container(children[idx]); c != nil {
			pos, _ := span(&c.Pending, typ)
			offset = *pos
		}
	} else {
		s := r.Layout.ActiveStrip(ws, typ, children, idx)
		s.Start += shift
		s.Extent -= cut
		offset = s.Offset()
	}

	off := offset
	for _, id := range children[idx:] {
		c := r.Tree.Container(id)
		if c == nil {
			continue
		}
		r.place(ws, typ, c, off, v, content, false)
		_, size := span(&c.Pending, typ)
		off += scale * (*size + 2*gap)
	}
	off = offset
	for i := idx - 1; i >= 0; i-- {
		c := r.Tree.Container(children[i])
		if c == nil {
			continue
		}
		_, size := span(&c.Pending, typ)
		off -= scale * (*size + 2*gap)
		r.place(ws, typ, c, off, v, content, true)
	}
}

// place puts c at off along typ. The committed position is overwritten so
// the next pass starts from it; the scene gets the interpolated position.
// place positions c at off along typ. Children before the active one sync
// their state with the parent first, so the wobble check sees the new
// cross-axis position.
func (r *Renderer) place(ws *tree.Workspace, typ tree.Layout, c *tree.Container, off float64, v anim.Values, content *scene.Node, before bool) {
	var shown float64
	if before {
		r.syncSpan(typ, c, off)
		shown = shownSpan(ws, typ, c, off, v)
	} else {
		shown = shownSpan(ws, typ, c, off, v)
		r.syncSpan(typ, c, off)
	}

	start, _ := wsSpan(ws, typ)
	if typ == tree.LayoutVert {
		c.Scene.SetPosition(0, round(shown-start))
	} else {
		c.Scene.SetPosition(round(shown-start), 0)
	}
	c.Scene.Reparent(content)

	a := &c.Animation
	width := math.Max(1, geom.Lerp(a.W0, a.W1, v.T))
	height := math.Max(1, geom.Lerp(a.H0, a.H1, v.T))
	r.arrangeContainer(ws, c, width, height)
}

// shownSpan is where c is displayed along typ in the current frame.
func shownSpan(ws *tree.Workspace, typ tree.Layout, c *tree.Container, off float64, v anim.Values) float64 {
	a := &c.Animation
	start0, cross0 := a.X0, a.Y0
	if typ == tree.LayoutVert {
		start0, cross0 = a.Y0, a.X0
	}
	pcross, _ := span(&c.Pending, typ.Opposite())

	switch {
	case off != start0:
		return geom.Lerp(start0, off, v.X)
	case *pcross != cross0:
		_, extent := wsSpan(ws, typ)
		return start0 + v.Y*v.Scale*extent
	default:
		return start0
	}
}

// syncSpan moves c to off along typ and to its parent along the other axis,
// carrying the view content along.
func (r *Renderer) syncSpan(typ tree.Layout, c *tree.Container, off float64) {
	cross := typ.Opposite()
	cur, _ := span(&c.Current, typ)
	pend, _ := span(&c.Pending, typ)
	content0, _ := contentSpan(&c.Pending, typ)
	delta := *content0 - *cur
	*cur = off
	*pend = off
	if c.IsView() {
		*content0 = off + delta
	}
	if parent := r.Tree.Container(c.Pending.Parent); parent != nil {
		ccur, _ := span(&c.Current, cross)
		cpend, _ := span(&c.Pending, cross)
		pcur, _ := span(&parent.Current, cross)
		ppend, _ := span(&parent.Pending, cross)
		d := *pcur - *ccur
		*ccur = *pcur
		*cpend = *ppend
		if c.IsView() {
			ccontent, _ := contentSpan(&c.Pending, cross)
			*ccontent += d
		}
	}
}

// disableWorkspace moves everything of a hidden workspace under its own
// layers so nothing of it stays visible elsewhere.
func (r *Renderer) disableWorkspace(ws *tree.Workspace) {
	for _, id := range ws.Current.Tiling {
		if c := r.Tree.Container(id); c != nil {
			c.Scene.Reparent(ws.Scene.Tiling)
			r.disableContainer(c)
		}
	}
	for _, id := range ws.Current.Floating {
		if c := r.Tree.Container(id); c != nil {
			c.Scene.Reparent(ws.Scene.Floating)
			r.disableContainer(c)
			c.Scene.SetEnabled(false)
		}
	}
}

func (r *Renderer) disableContainer(c *tree.Container) {
	for _, id := range c.Current.Children {
		if child := r.Tree.Container(id); child != nil {
			child.Scene.Reparent(c.Scene)
			r.disableContainer(child)
		}
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

func axis(typ tree.Layout) tree.Layout {
	if typ == tree.LayoutVert {
		return tree.LayoutVert
	}
	return tree.LayoutHoriz
}

func span(s *tree.ContainerState, typ tree.Layout) (pos, size *float64) {
	if typ == tree.LayoutVert {
		return &s.Y, &s.Height
	}
	return &s.X, &s.Width
}

func contentSpan(s *tree.ContainerState, typ tree.Layout) (pos, size *float64) {
	if typ == tree.LayoutVert {
		return &s.ContentY, &s.ContentHeight
	}
	return &s.ContentX, &s.ContentWidth
}

func wsSpan(ws *tree.Workspace, typ tree.Layout) (start, extent float64) {
	if typ == tree.LayoutVert {
		return ws.Current.Y, ws.Current.Height
	}
	return ws.Current.X, ws.Current.Width
}
