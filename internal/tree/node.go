package tree

type NodeKind uint8

const (
	NodeOutput NodeKind = iota
	NodeWorkspace
	NodeContainer
)

func (k NodeKind) String() string {
	switch k {
	case NodeOutput:
		return "output"
	case NodeWorkspace:
		return "workspace"
	default:
		return "container"
	}
}

// NodeRef names any node that takes part in transactions.
type NodeRef struct {
	Kind      NodeKind
	Output    OutputID
	Workspace WorkspaceID
	Container ContainerID
}

func ContainerNode(id ContainerID) NodeRef {
	return NodeRef{Kind: NodeContainer, Container: id}
}

func WorkspaceNode(id WorkspaceID) NodeRef {
	return NodeRef{Kind: NodeWorkspace, Workspace: id}
}

func OutputNode(id OutputID) NodeRef {
	return NodeRef{Kind: NodeOutput, Output: id}
}

func (n NodeRef) String() string {
	switch n.Kind {
	case NodeOutput:
		return "output(" + n.Output.String() + ")"
	case NodeWorkspace:
		return "workspace(" + n.Workspace.String() + ")"
	default:
		return "container(" + n.Container.String() + ")"
	}
}

func (t *Tree) dirtyFlag(n NodeRef) *bool {
	switch n.Kind {
	case NodeOutput:
		if o := t.Output(n.Output); o != nil {
			return &o.Dirty
		}
	case NodeWorkspace:
		if ws := t.Workspace(n.Workspace); ws != nil {
			return &ws.Dirty
		}
	case NodeContainer:
		if c := t.Container(n.Container); c != nil {
			return &c.Dirty
		}
	}
	return nil
}

// MarkDirty adds n to the dirty set once.
func (t *Tree) MarkDirty(n NodeRef) {
	flag := t.dirtyFlag(n)
	if flag == nil || *flag {
		return
	}
	*flag = true
	t.dirty = append(t.dirty, n)
}

func (t *Tree) MarkContainerDirty(id ContainerID) {
	t.MarkDirty(ContainerNode(id))
}

func (t *Tree) MarkWorkspaceDirty(id WorkspaceID) {
	t.MarkDirty(WorkspaceNode(id))
}

func (t *Tree) HasDirty() bool {
	return len(t.dirty) > 0
}

// TakeDirty returns the dirty set and clears every dirty flag.
func (t *Tree) TakeDirty() []NodeRef {
	dirty := t.dirty
	t.dirty = nil
	for _, n := range dirty {
		if flag := t.dirtyFlag(n); flag != nil {
			*flag = false
		}
	}
	return dirty
}

func (t *Tree) NodeExists(n NodeRef) bool {
	return t.dirtyFlag(n) != nil
}

func (t *Tree) Ref(n NodeRef) {
	switch n.Kind {
	case NodeOutput:
		t.outputs.Ref(n.Output)
	case NodeWorkspace:
		t.workspaces.Ref(n.Workspace)
	case NodeContainer:
		t.containers.Ref(n.Container)
	}
}

func (t *Tree) Refs(n NodeRef) int {
	switch n.Kind {
	case NodeOutput:
		return t.outputs.Refs(n.Output)
	case NodeWorkspace:
		return t.workspaces.Refs(n.Workspace)
	default:
		return t.containers.Refs(n.Container)
	}
}

// Unref drops a transaction reference and finishes a pending destroy.
func (t *Tree) Unref(n NodeRef) {
	if !t.Destroying(n) || t.Refs(n) > 1 {
		t.unref(n)
		return
	}
	t.finishDestroy(n)
	t.unref(n)
}

func (t *Tree) unref(n NodeRef) {
	switch n.Kind {
	case NodeOutput:
		t.outputs.Unref(n.Output)
	case NodeWorkspace:
		t.workspaces.Unref(n.Workspace)
	case NodeContainer:
		t.containers.Unref(n.Container)
	}
}

func (t *Tree) Destroying(n NodeRef) bool {
	switch n.Kind {
	case NodeOutput:
		return t.outputs.Destroying(n.Output)
	case NodeWorkspace:
		return t.workspaces.Destroying(n.Workspace)
	default:
		return t.containers.Destroying(n.Container)
	}
}

// finishDestroy releases what the node owns outside the arena.
func (t *Tree) finishDestroy(n NodeRef) {
	switch n.Kind {
	case NodeContainer:
		if c := t.Container(n.Container); c != nil && c.Scene != nil {
			c.Scene.Destroy()
		}
	case NodeWorkspace:
		if ws := t.Workspace(n.Workspace); ws != nil {
			ws.Scene.Tiling.Destroy()
			ws.Scene.Floating.Destroy()
		}
	case NodeOutput:
		if o := t.Output(n.Output); o != nil {
			o.Scene.Destroy()
		}
	}
}
