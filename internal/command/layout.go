package command

import (
	"math"
	"strings"

	"github.com/ItsNotGoodName/x-scroller/internal/core"
	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

func cmdSetMode(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if res, ok := checkArgs("set_mode", args, 1); !ok {
		return res
	}
	ws := ctx.Workspace
	if ws == nil {
		return invalid("Need a workspace to run set_mode")
	}

	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "h":
			d.Layout.SetMode(ws, tree.LayoutHoriz)
		case "v":
			d.Layout.SetMode(ws, tree.LayoutVert)
		case "t":
			d.Layout.ToggleMode(ws)
		case "after":
			d.Layout.SetInsert(ws, tree.InsertAfter)
		case "before":
			d.Layout.SetInsert(ws, tree.InsertBefore)
		case "end":
			d.Layout.SetInsert(ws, tree.InsertEnd)
		case "beg", "beginning":
			d.Layout.SetInsert(ws, tree.InsertBeginning)
		case "focus":
			d.Layout.SetFocus(ws, true)
		case "nofocus":
			d.Layout.SetFocus(ws, false)
		case "center_horiz":
			d.Layout.SetCenterHorizontal(ws, true)
		case "nocenter_horiz":
			d.Layout.SetCenterHorizontal(ws, false)
		case "center_vert":
			d.Layout.SetCenterVertical(ws, true)
		case "nocenter_vert":
			d.Layout.SetCenterVertical(ws, false)
		case "reorder_auto":
			d.Layout.SetReorder(ws, tree.ReorderAuto)
		case "noreorder_auto":
			d.Layout.SetReorder(ws, tree.ReorderLazy)
		default:
			return invalid("Expected 'set_mode [<h|v|t> <after|before|end|beg> <focus|nofocus> <center_horiz|nocenter_horiz> <center_vert|nocenter_vert> <reorder_auto|noreorder_auto>]'")
		}
	}
	return success()
}

func (d *Dispatcher) sizeChanged(c *tree.Container) {
	if d.Hooks.SizeChanged != nil {
		d.Hooks.SizeChanged(c.ID)
	}
}

func cmdSetSize(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if ctx.Container == nil {
		return invalid("Cannot set_size nothing")
	}
	if res, ok := checkArgs("set_size", args, 2); !ok {
		return res
	}
	axis, ok := parseAxis(args[0])
	if !ok {
		return invalid("Expected 'set_size <h|v> <fraction>'")
	}
	f := core.ParseFloat(args[1])
	if math.IsNaN(f) || f <= 0 {
		return invalid("Expected 'set_size <h|v> <fraction>'")
	}
	if err := d.Layout.SetSize(ctx.Container.ID, axis, f); err != nil {
		return fromError("set_size", err)
	}
	d.sizeChanged(ctx.Container)
	return success()
}

func cmdCycleSize(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if ctx.Container == nil {
		return invalid("Cannot cycle_size nothing")
	}
	if res, ok := checkArgs("cycle_size", args, 2); !ok {
		return res
	}
	const usage = "Expected 'cycle_size <h|v> <next|prev>'"
	axis, ok := parseAxis(args[0])
	if !ok {
		return invalid(usage)
	}
	var inc int
	switch strings.ToLower(args[1]) {
	case "next":
		inc = 1
	case "prev":
		inc = -1
	default:
		return invalid(usage)
	}
	if err := d.Layout.CycleSize(ctx.Container.ID, axis, inc); err != nil {
		return fromError("cycle_size", err)
	}
	d.sizeChanged(ctx.Container)
	return success()
}

func cmdFitSize(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if ctx.Container == nil {
		return invalid("Cannot fit_size nothing")
	}
	if res, ok := checkArgs("fit_size", args, 3); !ok {
		return res
	}
	axis, ok := parseAxis(args[0])
	if !ok {
		return invalid("Expected 'fit_size <h|v> <active|visible|all|toend|tobeg> <proportional|equal>'")
	}
	fit, err := layout.ParseFitRange(strings.ToLower(args[1]))
	if err != nil {
		return invalid("fit_size range invalid")
	}
	var equal bool
	switch strings.ToLower(args[2]) {
	case "proportional":
	case "equal":
		equal = true
	default:
		return invalid("fit_size mode (proportional|equal) invalid")
	}
	return fromError("fit_size", d.Layout.FitSize(ctx.Container.ID, axis, fit, equal))
}

func cmdAlign(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if res, ok := checkArgs("align", args, 1); !ok {
		return res
	}
	const usage = "Expected 'align <left|right|center|up|down|middle|reset>' "
	arg := strings.ToLower(args[0])
	if arg == "reset" {
		if ctx.Workspace == nil {
			return invalid("Need a workspace to run align")
		}
		d.Layout.AlignReset(ctx.Workspace)
		return success()
	}

	c := ctx.Container
	if c == nil {
		return invalid("Command 'align' needs a container to align.")
	}
	if d.tree().IsFloating(c.ID) || d.tree().IsFullscreen(c.ID) {
		return invalid("Command 'align' needs a tiled, non full-screen container to align.")
	}
	dir := layout.ParseDirection(arg)
	switch dir {
	case layout.DirLeft, layout.DirRight, layout.DirUp, layout.DirDown, layout.DirCenter, layout.DirMiddle:
	default:
		return invalid(usage)
	}
	return fromError("align", d.Layout.Align(c.ID, dir))
}

func cmdMove(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if res, ok := checkArgs("move", args, 1); !ok {
		return res
	}
	if ctx.Container == nil {
		return invalid("Nothing to move")
	}

	// move [container|window] to workspace <name>
	rest := args
	if len(rest) > 0 && (strings.EqualFold(rest[0], "container") || strings.EqualFold(rest[0], "window")) {
		rest = rest[1:]
	}
	if len(rest) > 0 && strings.EqualFold(rest[0], "to") {
		if len(rest) < 3 || !strings.EqualFold(rest[1], "workspace") {
			return invalid("Expected 'move [container|window] to workspace <name>'")
		}
		return d.moveToWorkspace(ctx, strings.Join(rest[2:], " "))
	}

	dir := layout.ParseDirection(strings.ToLower(args[0]))
	switch dir {
	case layout.DirLeft, layout.DirRight, layout.DirUp, layout.DirDown, layout.DirBegin, layout.DirEnd:
	default:
		return invalid("Expected 'move <left|right|up|down|beginning|end> [nomode]'")
	}
	nomode := len(args) > 1 && strings.EqualFold(args[1], "nomode")
	if d.tree().IsFloating(ctx.Container.ID) {
		return invalid("Cannot move a floating container")
	}
	d.Layout.MoveContainer(ctx.Container.ID, dir, nomode)
	return success()
}

func (d *Dispatcher) moveToWorkspace(ctx Context, name string) Result {
	ws := d.workspace(ctx, name)
	if ws == nil {
		return failure("Unable to find workspace '%s'", name)
	}
	old := ctx.Container.Pending.Workspace
	if err := d.Layout.MoveContainerToWorkspace(ctx.Container.ID, ws.ID); err != nil {
		return fromError("move", err)
	}
	d.Layout.ArrangeWorkspace(old)
	d.Layout.ArrangeWorkspace(ws.ID)
	return success()
}

// workspace returns the workspace called name, creating it on the output of
// the current workspace.
func (d *Dispatcher) workspace(ctx Context, name string) *tree.Workspace {
	if ws := d.tree().WorkspaceByName(name); ws != nil {
		return ws
	}
	var output tree.OutputID
	if ctx.Workspace != nil {
		output = ctx.Workspace.Pending.Output
	} else if len(d.tree().Outputs) > 0 {
		output = d.tree().Outputs[0]
	}
	if d.tree().Output(output) == nil {
		return nil
	}
	ws := d.tree().NewWorkspace(name, output)
	d.Layout.InitWorkspace(ws.ID)
	return ws
}

func cmdWorkspace(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if res, ok := checkArgs("workspace", args, 1); !ok {
		return res
	}
	name := strings.Join(args, " ")
	ws := d.workspace(ctx, name)
	if ws == nil {
		return failure("Unable to find workspace '%s'", name)
	}
	d.tree().SetFocusWorkspace(ws.ID)
	d.Layout.ArrangeOutput(ws.Pending.Output)
	return success()
}

func cmdFocus(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if res, ok := checkArgs("focus", args, 1); !ok {
		return res
	}
	dir := layout.ParseDirection(strings.ToLower(args[0]))
	switch dir {
	case layout.DirLeft, layout.DirRight, layout.DirUp, layout.DirDown, layout.DirBegin, layout.DirEnd:
	default:
		return invalid("Expected 'focus <left|right|up|down|beginning|end>'")
	}
	if ctx.Container == nil {
		return success()
	}
	if id, ok := d.Layout.FocusDirection(ctx.Container.ID, dir); ok {
		d.tree().SetFocus(id)
		if top := d.tree().TopLevel(id); top != nil && ctx.Workspace != nil {
			ctx.Workspace.SetActiveChild(top.ID)
		}
		if ctx.Workspace != nil {
			d.Layout.ArrangeWorkspace(ctx.Workspace.ID)
		}
	}
	return success()
}

func cmdLayoutTranspose(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if ctx.Workspace == nil {
		return invalid("layout_transpose needs a workspace to transpose its layout")
	}
	return fromError("layout_transpose", d.Layout.Transpose(ctx.Workspace))
}

func cmdFullscreen(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if ctx.Container == nil {
		return invalid("Cannot fullscreen nothing")
	}
	cur := d.tree().IsFullscreen(ctx.Container.ID)
	want := !cur
	if len(args) > 0 {
		want = core.ParseBoolean(args[0], cur)
	}
	if want == cur {
		return success()
	}
	return fromError("fullscreen", d.Layout.ToggleFullscreen(ctx.Container.ID))
}

func cmdPin(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	if ctx.Container == nil {
		return invalid("Need a container to pin")
	}
	if d.tree().IsFloating(ctx.Container.ID) {
		return invalid("Cannot pin floating containers, use sticky for that")
	}
	if res, ok := checkArgs("pin", args, 1); !ok {
		return res
	}
	var pos tree.PinPosition
	switch strings.ToLower(args[0]) {
	case "beg", "beginning":
		pos = tree.PinBeginning
	case "end":
		pos = tree.PinEnd
	default:
		return invalid("Unknown argument %s, expected 'pin <beginning|end>'", args[0])
	}
	return fromError("pin", d.Layout.PinSet(ctx.Container.ID, pos))
}

func cmdScaleWorkspace(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := d.requireOutputs(); !ok {
		return res
	}
	ws := ctx.Workspace
	if ws == nil {
		return invalid("Need a workspace to run scale_workspace")
	}
	if res, ok := checkArgs("scale_workspace", args, 1); !ok {
		return res
	}
	usage := invalid("Expected 'scale_workspace <exact number|increment number|reset|overview>'")
	switch strings.ToLower(args[0]) {
	case "exact":
		if len(args) < 2 {
			return usage
		}
		d.Layout.ScaleExact(ws, strtod(args[1]))
	case "increment", "incr":
		if len(args) < 2 {
			return usage
		}
		d.Layout.ScaleIncrement(ws, strtod(args[1]))
	case "reset":
		d.Layout.ScaleReset(ws)
	case "overview":
		d.Layout.OverviewToggle(ws)
	default:
		return usage
	}
	d.Layout.ArrangeWorkspace(ws.ID)
	return success()
}

// strtod reads a float the lenient way, 0 when s is not a number.
func strtod(s string) float64 {
	if f := core.ParseFloat(s); !math.IsNaN(f) {
		return f
	}
	return 0
}
