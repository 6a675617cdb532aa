package tree

// Layout is the axis along which a split container or workspace lays out its children.
type Layout int

const (
	LayoutNone Layout = iota
	LayoutHoriz
	LayoutVert
)

func (l Layout) String() string {
	switch l {
	case LayoutHoriz:
		return "horizontal"
	case LayoutVert:
		return "vertical"
	default:
		return "none"
	}
}

// Opposite returns the other axis.
func (l Layout) Opposite() Layout {
	if l == LayoutHoriz {
		return LayoutVert
	}
	return LayoutHoriz
}

type Insert int

const (
	InsertBefore Insert = iota
	InsertAfter
	InsertBeginning
	InsertEnd
)

func (i Insert) String() string {
	switch i {
	case InsertBefore:
		return "before"
	case InsertAfter:
		return "after"
	case InsertBeginning:
		return "beginning"
	case InsertEnd:
		return "end"
	default:
		return "unknown"
	}
}

type Reorder int

const (
	ReorderAuto Reorder = iota
	ReorderLazy
)

func (r Reorder) String() string {
	if r == ReorderLazy {
		return "lazy"
	}
	return "auto"
}

type PinPosition int

const (
	PinBeginning PinPosition = iota
	PinEnd
)

func (p PinPosition) String() string {
	if p == PinEnd {
		return "end"
	}
	return "beginning"
}

// Pin anchors a top-level container to a workspace edge.
type Pin struct {
	Container ContainerID
	Position  PinPosition
}

// Scroller is the per-workspace layout record.
type Scroller struct {
	Type             Layout
	Mode             Layout
	Insert           Insert
	Reorder          Reorder
	Focus            bool
	CenterHorizontal bool
	CenterVertical   bool
	Overview         bool
	// Scale is the workspace content scale; <= 0 means disabled.
	Scale float64
	// MemScale remembers Scale while overview is on; <= 0 means none.
	MemScale float64
	Pin      Pin
}

// Gesture is an in-progress scroll gesture.
type Gesture struct {
	Scrolling bool
	DX        float64
	DY        float64
	// Pinned is the pinned container while it is floated out of the tiling list.
	Pinned ContainerID
}
