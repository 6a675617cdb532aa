package command

import (
	"errors"
	"strings"

	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

func cmdSelection(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if res, ok := checkArgs("selection", args, 1); !ok {
		return res
	}

	switch strings.ToLower(args[0]) {
	case "toggle":
		if ctx.Container == nil {
			return invalid("Need a container to select")
		}
		if err := d.Selection.Toggle(ctx.Container.ID); err != nil {
			return fromError("select", err)
		}
	case "workspace":
		if ctx.Workspace == nil {
			return invalid("Need a workspace to select")
		}
		d.Selection.Workspace(ctx.Workspace)
	case "reset":
		d.Selection.Reset()
	case "move":
		if ctx.Workspace == nil {
			return invalid("Need a workspace to move the selection to")
		}
		err := d.Selection.Move(ctx.Workspace)
		if errors.Is(err, layout.ErrNoSelection) {
			return invalid("Need a selection to move")
		}
		if err != nil {
			return fromError("move the selection", err)
		}
	default:
		return invalid("Unknown argument %s, expected 'selection <toggle|workspace|reset|move>'", args[0])
	}
	return success()
}

func cmdTrail(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if res, ok := checkArgs("trail", args, 1); !ok {
		return res
	}

	switch strings.ToLower(args[0]) {
	case "new":
		d.Trails.New()
	case "next":
		d.Trails.Next()
	case "prev":
		d.Trails.Prev()
	case "delete":
		d.Trails.Delete()
	case "clear":
		d.Trails.Clear()
	case "to_selection":
		d.Trails.ToSelection()
	default:
		return invalid("Unknown argument %s for command 'trail'", args[0])
	}
	return success()
}

func cmdTrailmark(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if res, ok := checkArgs("trailmark", args, 1); !ok {
		return res
	}

	switch strings.ToLower(args[0]) {
	case "toggle":
		view := d.markedView(ctx.Container)
		if view == nil {
			return invalid("Need a window to trailmark")
		}
		d.Trails.TrailmarkToggle(view.ID)
	case "next":
		d.Trails.TrailmarkNext()
	case "prev":
		d.Trails.TrailmarkPrev()
	default:
		return invalid("Unknown argument %s for command 'trailmark'", args[0])
	}
	return success()
}

// markedView is the view a trailmark toggle of c applies to.
func (d *Dispatcher) markedView(c *tree.Container) *tree.Container {
	for c != nil && !c.IsView() {
		next := d.tree().Container(c.Current.FocusedInactiveChild)
		if next == nil && len(c.Current.Children) > 0 {
			next = d.tree().Container(c.Current.Children[0])
		}
		c = next
	}
	return c
}

func cmdJump(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if d.Jump == nil {
		return failure("Jump is not available")
	}
	if err := d.Jump.Start(); err != nil {
		return failure("Cannot jump: %v", err)
	}
	return success()
}
