package layout

import "errors"

var (
	ErrNoOutputs         = errors.New("no outputs connected")
	ErrNoContainer       = errors.New("no container")
	ErrNoWorkspace       = errors.New("no workspace")
	ErrNoSelection       = errors.New("no selection")
	ErrHiddenScratchpad  = errors.New("container is a hidden scratchpad container")
	ErrFloating          = errors.New("container is floating")
	ErrFullscreen        = errors.New("container is fullscreen")
	ErrFits              = errors.New("content fits the viewport")
	ErrUnknownLayoutType = errors.New("workspace has an unknown layout type")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrNotScrolling      = errors.New("no scroll gesture in progress")
)
