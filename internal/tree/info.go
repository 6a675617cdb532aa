package tree

import "github.com/google/uuid"

// Node kinds as they appear in an Info.
const (
	InfoRoot      = "root"
	InfoOutput    = "output"
	InfoWorkspace = "workspace"
	InfoContainer = "con"
	InfoFloating  = "floating_con"
)

// Info is a read-only description of a node and its descendants in current
// state.
type Info struct {
	ID         uint64    `json:"id"`
	UUID       uuid.UUID `json:"uuid,omitzero"`
	Type       string    `json:"type"`
	Name       string    `json:"name,omitempty"`
	AppID      string    `json:"app_id,omitempty"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Layout     string    `json:"layout,omitempty"`
	Focused    bool      `json:"focused"`
	Fullscreen bool      `json:"fullscreen,omitempty"`
	Selected   bool      `json:"selected,omitempty"`
	// Fractions are only set on containers.
	WidthFraction  float64 `json:"width_fraction,omitempty"`
	HeightFraction float64 `json:"height_fraction,omitempty"`
	Nodes          []Info  `json:"nodes,omitempty"`
	FloatingNodes  []Info  `json:"floating_nodes,omitempty"`
}

// Info describes the whole tree.
func (t *Tree) Info() Info {
	root := Info{Type: InfoRoot, Name: "root"}
	for _, id := range t.Outputs {
		if o := t.Output(id); o != nil {
			root.Nodes = append(root.Nodes, t.OutputInfo(o))
		}
	}
	return root
}

func (t *Tree) OutputInfo(o *Output) Info {
	info := Info{
		ID:      o.ID.Uint64(),
		UUID:    o.UUID,
		Type:    InfoOutput,
		Name:    o.Name,
		X:       o.Box.X,
		Y:       o.Box.Y,
		Width:   o.Box.Width,
		Height:  o.Box.Height,
		Focused: t.focusWS.Valid() && o.Current.Active == t.focusWS,
	}
	for _, id := range o.Current.Workspaces {
		if ws := t.Workspace(id); ws != nil {
			info.Nodes = append(info.Nodes, t.WorkspaceInfo(ws))
		}
	}
	return info
}

func (t *Tree) WorkspaceInfo(ws *Workspace) Info {
	info := Info{
		ID:      ws.ID.Uint64(),
		UUID:    ws.UUID,
		Type:    InfoWorkspace,
		Name:    ws.Name,
		X:       ws.Current.X,
		Y:       ws.Current.Y,
		Width:   ws.Current.Width,
		Height:  ws.Current.Height,
		Layout:  ws.Layout.Type.String(),
		Focused: ws.Current.Focused,
	}
	for _, id := range ws.Current.Tiling {
		if c := t.Container(id); c != nil {
			info.Nodes = append(info.Nodes, t.containerInfo(c, InfoContainer))
		}
	}
	for _, id := range ws.Current.Floating {
		if c := t.Container(id); c != nil {
			info.FloatingNodes = append(info.FloatingNodes, t.containerInfo(c, InfoFloating))
		}
	}
	return info
}

func (t *Tree) containerInfo(c *Container, typ string) Info {
	info := Info{
		ID:             c.ID.Uint64(),
		Type:           typ,
		X:              c.Current.X,
		Y:              c.Current.Y,
		Width:          c.Current.Width,
		Height:         c.Current.Height,
		Focused:        c.Current.Focused,
		Fullscreen:     c.Current.Fullscreen,
		Selected:       c.Selected,
		WidthFraction:  c.WidthFraction,
		HeightFraction: c.HeightFraction,
	}
	if c.View != nil {
		info.Name = c.View.Title()
		info.AppID = c.View.AppID()
	} else {
		info.Layout = c.Current.Layout.String()
	}
	for _, id := range c.Current.Children {
		if child := t.Container(id); child != nil {
			info.Nodes = append(info.Nodes, t.containerInfo(child, InfoContainer))
		}
	}
	return info
}
