package layout

import "github.com/ItsNotGoodName/x-scroller/internal/tree"

func (l *Layout) SetType(ws *tree.Workspace, typ tree.Layout) {
	ws.Layout.Type = typ
	l.Tree.MarkWorkspaceDirty(ws.ID)
}

func (l *Layout) SetMode(ws *tree.Workspace, mode tree.Layout) {
	ws.Layout.Mode = mode
	l.publish("mode", ws)
}

// ToggleMode flips the insertion mode between horizontal and vertical.
func (l *Layout) ToggleMode(ws *tree.Workspace) {
	if ws.Layout.Mode == tree.LayoutHoriz {
		l.SetMode(ws, tree.LayoutVert)
	} else {
		l.SetMode(ws, tree.LayoutHoriz)
	}
}

func (l *Layout) SetInsert(ws *tree.Workspace, insert tree.Insert) {
	ws.Layout.Insert = insert
	l.publish("insert", ws)
}

func (l *Layout) SetReorder(ws *tree.Workspace, reorder tree.Reorder) {
	ws.Layout.Reorder = reorder
	l.publish("reorder", ws)
}

func (l *Layout) SetFocus(ws *tree.Workspace, focus bool) {
	ws.Layout.Focus = focus
	l.publish("focus", ws)
}

func (l *Layout) SetCenterHorizontal(ws *tree.Workspace, center bool) {
	ws.Layout.CenterHorizontal = center
	l.publish("center_horizontal", ws)
}

func (l *Layout) SetCenterVertical(ws *tree.Workspace, center bool) {
	ws.Layout.CenterVertical = center
	l.publish("center_vertical", ws)
}
