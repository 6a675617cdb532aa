package tree

// View is a client surface wrapped by a view container.
type View interface {
	// Configure asks the client to take the geometry and returns a serial the
	// client acknowledges later.
	Configure(x, y, width, height float64) uint32
	SaveBuffer()
	RemoveSavedBuffer()
	HasSavedBuffer() bool
	IsVisible() bool
	SendFrameDone()
	// PositionAware reports whether the client works in absolute coordinates,
	// which makes position changes require a configure.
	PositionAware() bool
	// CenterAndClip fits the displayed buffer into the container size.
	CenterAndClip(width, height float64)
	AppID() string
	Title() string
}
