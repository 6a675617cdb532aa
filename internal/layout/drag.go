package layout

import (
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// Edge is the side of a drop target the pointer is over.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeTop
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "none"
	}
}

type DragAction int

const (
	DragNothing DragAction = iota
	DragInsertChildrenBefore
	DragInsertChildrenAfter
	DragMoveContainerBefore
	DragMoveContainerAfter
	DragSwapContainers
	DragInsertViewBefore
	DragInsertViewAfter
	DragExtractViewBefore
	DragExtractViewAfter
	DragSwapViews
)

func (a DragAction) String() string {
	switch a {
	case DragInsertChildrenBefore:
		return "insert_children_before"
	case DragInsertChildrenAfter:
		return "insert_children_after"
	case DragMoveContainerBefore:
		return "move_container_before"
	case DragMoveContainerAfter:
		return "move_container_after"
	case DragSwapContainers:
		return "swap_containers"
	case DragInsertViewBefore:
		return "insert_view_before"
	case DragInsertViewAfter:
		return "insert_view_after"
	case DragExtractViewBefore:
		return "extract_view_before"
	case DragExtractViewAfter:
		return "extract_view_after"
	case DragSwapViews:
		return "swap_views"
	default:
		return "nothing"
	}
}

// DragKey selects a drop behavior. Parent is true when whole top-level
// containers are dragged, which happens when the insertion mode equals the
// workspace axis.
type DragKey struct {
	Parent bool
	Layout tree.Layout
	Edge   Edge
}

// DragTable maps every drop situation to its action. Edges parallel to the
// workspace axis merge into the target; perpendicular edges reorder
// top-level containers; no edge swaps.
var DragTable = map[DragKey]DragAction{
	{true, tree.LayoutHoriz, EdgeTop}:    DragInsertChildrenBefore,
	{true, tree.LayoutHoriz, EdgeBottom}: DragInsertChildrenAfter,
	{true, tree.LayoutHoriz, EdgeLeft}:   DragMoveContainerBefore,
	{true, tree.LayoutHoriz, EdgeRight}:  DragMoveContainerAfter,
	{true, tree.LayoutHoriz, EdgeNone}:   DragSwapContainers,

	{true, tree.LayoutVert, EdgeTop}:    DragMoveContainerBefore,
	{true, tree.LayoutVert, EdgeBottom}: DragMoveContainerAfter,
	{true, tree.LayoutVert, EdgeLeft}:   DragInsertChildrenBefore,
	// Dropping on the right edge of a row reorders instead of merging.
	{true, tree.LayoutVert, EdgeRight}: DragMoveContainerAfter,
	{true, tree.LayoutVert, EdgeNone}:  DragSwapContainers,

	{false, tree.LayoutHoriz, EdgeTop}:    DragInsertViewBefore,
	{false, tree.LayoutHoriz, EdgeBottom}: DragInsertViewAfter,
	{false, tree.LayoutHoriz, EdgeLeft}:   DragExtractViewBefore,
	{false, tree.LayoutHoriz, EdgeRight}:  DragExtractViewAfter,
	{false, tree.LayoutHoriz, EdgeNone}:   DragSwapViews,

	{false, tree.LayoutVert, EdgeTop}:    DragExtractViewBefore,
	{false, tree.LayoutVert, EdgeBottom}: DragExtractViewAfter,
	{false, tree.LayoutVert, EdgeLeft}:   DragInsertViewBefore,
	{false, tree.LayoutVert, EdgeRight}:  DragInsertViewAfter,
	{false, tree.LayoutVert, EdgeNone}:   DragSwapViews,
}

// DragContainerToContainer drops c onto target at edge. ws is the workspace
// of target.
func (l *Layout) DragContainerToContainer(id, targetID tree.ContainerID, wsID tree.WorkspaceID, edge Edge) error {
	c := l.Tree.Container(id)
	target := l.Tree.Container(targetID)
	ws := l.Tree.Workspace(wsID)
	if c == nil || target == nil {
		return ErrNoContainer
	}
	if ws == nil {
		return ErrNoWorkspace
	}
	oldWS := l.Tree.Workspace(c.Pending.Workspace)
	if oldWS == nil {
		return ErrNoWorkspace
	}
	if l.Tree.IsFloating(id) || l.Tree.IsFloating(targetID) {
		return ErrFloating
	}
	if l.Tree.IsFullscreen(id) || l.Tree.IsFullscreen(targetID) {
		return ErrFullscreen
	}

	moveParent := oldWS.Layout.Type == oldWS.Layout.Mode
	if moveParent {
		if p := l.Tree.Container(c.Pending.Parent); p != nil {
			c = p
		}
		if p := l.Tree.Container(target.Pending.Parent); p != nil {
			target = p
		}
	} else if !c.IsView() || !target.IsView() {
		return ErrNoContainer
	}
	if c.ID == target.ID {
		return nil
	}
	l.UnpinContainer(oldWS, l.Tree.TopLevel(c.ID))

	action := DragTable[DragKey{Parent: moveParent, Layout: axis(oldWS.Layout.Type), Edge: edge}]
	switch action {
	case DragInsertChildrenBefore:
		l.insertChildren(c, target, true)
	case DragInsertChildrenAfter:
		l.insertChildren(c, target, false)
	case DragMoveContainerBefore:
		l.moveContainerNextTo(c, target, ws, true)
	case DragMoveContainerAfter:
		l.moveContainerNextTo(c, target, ws, false)
	case DragSwapContainers:
		l.swapContainers(c, target, ws)
	case DragInsertViewBefore:
		l.insertView(c, target, true)
	case DragInsertViewAfter:
		l.insertView(c, target, false)
	case DragExtractViewBefore:
		l.extractViewNextTo(c, l.Tree.Container(target.Pending.Parent), ws, true)
	case DragExtractViewAfter:
		l.extractViewNextTo(c, l.Tree.Container(target.Pending.Parent), ws, false)
	case DragSwapViews:
		l.swapViews(c, target)
	case DragNothing:
	}

	l.ArrangeWorkspace(wsID)
	if oldWS.ID != wsID {
		l.ArrangeWorkspace(oldWS.ID)
	}
	l.Tree.MarkWorkspaceDirty(wsID)
	l.animate(anim.ModeWindowMove)
	return nil
}

// moveContainerNextTo places top-level c before or after top-level target.
func (l *Layout) moveContainerNextTo(c, target *tree.Container, ws *tree.Workspace, before bool) {
	oldWS := l.Tree.Workspace(c.Pending.Workspace)
	cidx := slices.Index(oldWS.Pending.Tiling, c.ID)
	tidx := slices.Index(ws.Pending.Tiling, target.ID)
	if cidx < 0 || tidx < 0 {
		return
	}
	if oldWS.ID != ws.ID {
		l.removeTopLevel(oldWS, cidx)
		if !before {
			tidx++
		}
		l.Tree.InsertTiling(ws.ID, c.ID, tidx)
		return
	}
	if before {
		if cidx == tidx-1 {
			return
		}
		if cidx < tidx {
			tidx--
		}
	} else {
		if cidx == tidx+1 {
			return
		}
		if cidx > tidx {
			tidx++
		}
	}
	moveTo(&ws.Pending.Tiling, tidx, c.ID)
	l.Tree.MarkWorkspaceDirty(ws.ID)
}

func (l *Layout) swapContainers(c, target *tree.Container, ws *tree.Workspace) {
	oldWS := l.Tree.Workspace(c.Pending.Workspace)
	cidx := slices.Index(oldWS.Pending.Tiling, c.ID)
	tidx := slices.Index(ws.Pending.Tiling, target.ID)
	if cidx < 0 || tidx < 0 || cidx == tidx && oldWS.ID == ws.ID {
		return
	}
	if oldWS.ID != ws.ID {
		l.removeTopLevel(oldWS, cidx)
		l.removeTopLevel(ws, tidx)
		l.Tree.InsertTiling(oldWS.ID, target.ID, cidx)
		l.Tree.InsertTiling(ws.ID, c.ID, tidx)
		return
	}
	swap(ws.Pending.Tiling, cidx, tidx)
	l.Tree.MarkWorkspaceDirty(ws.ID)
}

// insertChildren moves every child of top-level c into target, at its
// beginning or its end, and reaps c.
func (l *Layout) insertChildren(c, target *tree.Container, before bool) {
	oldWS := l.Tree.Workspace(c.Pending.Workspace)
	l.removeTopLevel(oldWS, slices.Index(oldWS.Pending.Tiling, c.ID))
	children := slices.Clone(c.Pending.Children)
	for i, child := range children {
		l.Tree.Detach(child)
		if before {
			l.Tree.InsertChild(target.ID, child, i)
		} else {
			l.Tree.AddChild(target.ID, child)
		}
	}
	l.Tree.Reap(c.ID)
	l.Tree.MarkContainerDirty(target.ID)
}

// insertView moves view c next to view target inside target's container.
func (l *Layout) insertView(c, target *tree.Container, before bool) {
	l.extractView(c)
	parent := l.Tree.Container(target.Pending.Parent)
	if parent == nil {
		return
	}
	idx := slices.Index(parent.Pending.Children, target.ID)
	if !before {
		idx++
	}
	l.Tree.InsertChild(parent.ID, c.ID, idx)
	parent.Pending.FocusedInactiveChild = c.ID
}

// extractViewNextTo moves view c into a new top-level container placed before
// or after ref.
func (l *Layout) extractViewNextTo(c, ref *tree.Container, ws *tree.Workspace, before bool) {
	if ref == nil {
		return
	}
	// ref disappears when c was its only child, keep its slot.
	idx := slices.Index(ws.Pending.Tiling, ref.ID)
	l.extractView(c)
	if i := slices.Index(ws.Pending.Tiling, ref.ID); i >= 0 {
		idx = i
		if !before {
			idx++
		}
	}
	l.Tree.SetWorkspace(c.ID, ws.ID)
	wrap := l.WrapIntoContainer(c.ID, ws.Layout.Type.Opposite())
	l.Tree.InsertTiling(ws.ID, wrap.ID, idx)
}

// swapViews exchanges two views, possibly across containers and workspaces.
func (l *Layout) swapViews(c, target *tree.Container) {
	cparent := l.Tree.Container(c.Pending.Parent)
	tparent := l.Tree.Container(target.Pending.Parent)
	if cparent == nil || tparent == nil {
		return
	}
	cidx := slices.Index(cparent.Pending.Children, c.ID)
	tidx := slices.Index(tparent.Pending.Children, target.ID)
	if cidx < 0 || tidx < 0 {
		return
	}
	if cparent.ID == tparent.ID {
		swap(cparent.Pending.Children, cidx, tidx)
		l.Tree.MarkContainerDirty(cparent.ID)
		return
	}
	cparent.Pending.Children[cidx] = target.ID
	tparent.Pending.Children[tidx] = c.ID
	l.Tree.SetParent(c.ID, tparent.ID)
	l.Tree.SetParent(target.ID, cparent.ID)
	if cparent.Pending.FocusedInactiveChild == c.ID {
		cparent.Pending.FocusedInactiveChild = target.ID
	}
	if tparent.Pending.FocusedInactiveChild == target.ID {
		tparent.Pending.FocusedInactiveChild = c.ID
	}
	l.Tree.MarkContainerDirty(c.ID)
	l.Tree.MarkContainerDirty(target.ID)
	l.Tree.MarkContainerDirty(cparent.ID)
	l.Tree.MarkContainerDirty(tparent.ID)
}

// DragContainerToWorkspace drops c on an empty spot of ws. A view dragged
// out of a container with siblings gets its own top-level container.
func (l *Layout) DragContainerToWorkspace(id tree.ContainerID, wsID tree.WorkspaceID) error {
	c := l.Tree.Container(id)
	if c == nil {
		return ErrNoContainer
	}
	ws := l.Tree.Workspace(wsID)
	if ws == nil {
		return ErrNoWorkspace
	}
	oldWS := l.Tree.Workspace(c.Pending.Workspace)
	if oldWS == nil {
		return ErrNoWorkspace
	}
	if l.Tree.IsFloating(id) {
		return ErrFloating
	}
	parent := l.Tree.Container(c.Pending.Parent)
	if parent == nil {
		parent = c
	}
	l.UnpinContainer(oldWS, l.Tree.TopLevel(c.ID))

	if oldWS.Layout.Type != oldWS.Layout.Mode && c.IsView() && parent.ID != c.ID && len(parent.Pending.Children) > 1 {
		parent = l.detachAndWrap(c, parent.Pending.Layout, oldWS.ID)
		l.Tree.MarkContainerDirty(parent.ID)
	}
	l.dragParentToWorkspace(parent, oldWS, ws)
	l.ArrangeWorkspace(wsID)
	l.animate(anim.ModeWindowMove)
	return nil
}

func (l *Layout) dragParentToWorkspace(c *tree.Container, oldWS, ws *tree.Workspace) {
	if c.IsView() {
		return
	}
	if idx := slices.Index(oldWS.Pending.Tiling, c.ID); idx >= 0 {
		l.removeTopLevel(oldWS, idx)
	}
	if oldWS.ID != ws.ID {
		l.ArrangeWorkspace(oldWS.ID)
	}
	active := l.Tree.Container(ws.Current.FocusedInactiveChild)
	if active != nil && active.ID == c.ID {
		active = nil
	}
	l.addContainer(ws, active, c, ws.Layout.Insert)
}
