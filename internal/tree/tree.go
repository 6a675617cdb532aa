// Package tree is the arena of outputs, workspaces and containers with their
// pending and current state.
package tree

import (
	"github.com/ItsNotGoodName/x-scroller/internal/scene"
)

// Defaults are the configured layout values used when an output sets none.
type Defaults struct {
	LayoutType    Layout
	DefaultWidth  float64
	DefaultHeight float64
	Widths        []float64
	Heights       []float64
	GapsInner     float64
	GapsOuter     float64
	Outputs       map[string]OutputOptions
}

type Tree struct {
	Root     *scene.Node
	Defaults Defaults

	Outputs    []OutputID
	Scratchpad []ContainerID

	containers Arena[Container]
	workspaces Arena[Workspace]
	outputs    Arena[Output]

	dirty   []NodeRef
	focus   ContainerID
	focusWS WorkspaceID

	// OnFocus is called after the seat focus changes.
	OnFocus func(id ContainerID)
}

func New(defaults Defaults) *Tree {
	return &Tree{
		Root:     scene.NewRoot(),
		Defaults: defaults,
	}
}
