package tree

import (
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/geom"
	"github.com/ItsNotGoodName/x-scroller/internal/scene"
	"github.com/google/uuid"
)

type OutputID = Handle[Output]

type OutputState struct {
	Workspaces []WorkspaceID
	Active     WorkspaceID
}

func (s OutputState) Clone() OutputState {
	s.Workspaces = slices.Clone(s.Workspaces)
	return s
}

// OutputOptions override the global layout defaults. Zero values mean unset.
type OutputOptions struct {
	LayoutType    Layout
	DefaultWidth  float64
	DefaultHeight float64
	Widths        []float64
	Heights       []float64
}

type Output struct {
	ID    OutputID
	UUID  uuid.UUID
	Name  string
	Dirty bool

	Box geom.Box
	// Usable is the area left for workspaces, relative to Box.
	Usable  geom.Box
	Enabled bool
	Scale   float64

	Pending OutputState
	Current OutputState

	Options OutputOptions

	Scene *scene.Node
}

func (t *Tree) Output(id OutputID) *Output {
	return t.outputs.Get(id)
}

// NewOutput adds an enabled output of the given size at (x, y).
func (t *Tree) NewOutput(name string, box geom.Box) *Output {
	id := t.outputs.Insert(Output{
		UUID:    uuid.New(),
		Name:    name,
		Box:     box,
		Usable:  geom.Box{Width: box.Width, Height: box.Height},
		Enabled: true,
		Scale:   1,
	})
	o := t.outputs.Get(id)
	o.ID = id
	o.Scene = t.Root.CreateTree()
	o.Scene.SetPosition(int(box.X), int(box.Y))
	if opts, ok := t.Defaults.Outputs[name]; ok {
		o.Options = opts
	}
	t.Outputs = append(t.Outputs, id)
	t.MarkDirty(OutputNode(id))
	return o
}

// Resize changes the output geometry and resets the usable area.
func (t *Tree) Resize(id OutputID, box geom.Box) {
	o := t.Output(id)
	if o == nil {
		return
	}
	o.Box = box
	o.Usable = geom.Box{Width: box.Width, Height: box.Height}
	o.Scene.SetPosition(int(box.X), int(box.Y))
	t.MarkDirty(OutputNode(id))
}

func (t *Tree) OutputByName(name string) *Output {
	for _, id := range t.Outputs {
		if o := t.Output(id); o != nil && o.Name == name {
			return o
		}
	}
	return nil
}

// EnabledOutputs returns the number of enabled outputs.
func (t *Tree) EnabledOutputs() int {
	n := 0
	for _, id := range t.Outputs {
		if o := t.Output(id); o != nil && o.Enabled {
			n++
		}
	}
	return n
}
