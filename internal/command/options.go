package command

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/core"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/k0kubun/pp"
)

func cmdAnimations(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := checkArgs("animations", args, 2); !ok {
		return res
	}
	if d.Anim == nil {
		return failure("Animations are not available")
	}
	name, args := strings.ToLower(args[0]), args[1:]
	cfg := d.Anim.Config()

	var target **anim.Curve
	switch name {
	case "enabled":
		cfg.Enabled = core.ParseBoolean(args[0], cfg.Enabled)
	case "frequency_ms":
		ms, _ := strconv.Atoi(args[0])
		cfg.Frequency = time.Duration(ms) * time.Millisecond
	case "default":
		target = &cfg.Default
	case "window_open":
		target = &cfg.WindowOpen
	case "window_move":
		target = &cfg.WindowMove
	case "window_size":
		target = &cfg.WindowSize
	default:
		return failure("Unknown animations subcommand.")
	}
	if target != nil {
		curve, err := anim.ParseCurve(args)
		if errors.Is(err, anim.ErrParseArray) {
			return failure("Error parsing animations array")
		}
		if err != nil {
			return failure("%v", err)
		}
		*target = curve
	}
	d.Anim.SetConfig(cfg)
	return success()
}

func cmdJumpLabelsColor(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := checkArgs("jump_labels_color", args, 1); !ok {
		return res
	}
	color, ok := core.ParseColor(args[0])
	if !ok {
		return invalid("Invalid color '%s'", args[0])
	}
	d.Jump.Options.Color = color
	return success()
}

func cmdJumpLabelsBackground(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := checkArgs("jump_labels_background", args, 1); !ok {
		return res
	}
	color, ok := core.ParseColor(args[0])
	if !ok {
		return invalid("Invalid color '%s'", args[0])
	}
	d.Jump.Options.Background = color
	return success()
}

func cmdJumpLabelsScale(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := checkArgs("jump_labels_scale", args, 1); !ok {
		return res
	}
	d.Jump.Options.Scale = math.Min(math.Max(strtod(args[0]), 0.1), 1.0)
	return success()
}

func cmdJumpLabelsKeys(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := checkArgs("jump_labels_keys", args, 1); !ok {
		return res
	}
	d.Jump.Options.Keys = args[0]
	return success()
}

func cmdLayoutDefaultWidth(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := checkArgs("layout_default_width", args, 1); !ok {
		return res
	}
	d.tree().Defaults.DefaultWidth = strtod(args[0])
	return success()
}

func cmdLayoutDefaultHeight(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := checkArgs("layout_default_height", args, 1); !ok {
		return res
	}
	d.tree().Defaults.DefaultHeight = strtod(args[0])
	return success()
}

func cmdLayoutWidths(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := checkArgs("layout_widths", args, 1); !ok {
		return res
	}
	widths, err := core.ParseFloatArray(args[0])
	if err != nil {
		return failure("Error parsing layout_widths array")
	}
	d.tree().Defaults.Widths = widths
	return success()
}

func cmdLayoutHeights(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := checkArgs("layout_heights", args, 1); !ok {
		return res
	}
	heights, err := core.ParseFloatArray(args[0])
	if err != nil {
		return failure("Error parsing layout_heights array")
	}
	d.tree().Defaults.Heights = heights
	return success()
}

func cmdWorkspaceLayout(d *Dispatcher, ctx Context, args []string) Result {
	if len(args) != 1 {
		return invalid("Invalid workspace_layout command (expected 1 argument, got %d)", len(args))
	}
	switch strings.ToLower(args[0]) {
	case "default":
		d.tree().Defaults.LayoutType = tree.LayoutNone
	case "horizontal":
		d.tree().Defaults.LayoutType = tree.LayoutHoriz
	case "vertical":
		d.tree().Defaults.LayoutType = tree.LayoutVert
	default:
		return invalid("Expected 'workspace_layout <default|horzontal|vertical>'")
	}
	return success()
}

func cmdDebug(d *Dispatcher, ctx Context, args []string) Result {
	if res, ok := checkArgs("debug", args, 1); !ok {
		return res
	}
	switch strings.ToLower(args[0]) {
	case "tree":
		pp.Println(d.tree().Info())
	case "workspace":
		if ctx.Workspace == nil {
			return invalid("Need a workspace to debug")
		}
		pp.Println(d.tree().WorkspaceInfo(ctx.Workspace))
	default:
		return invalid("Expected 'debug <tree|workspace>'")
	}
	return success()
}

func cmdReload(d *Dispatcher, ctx Context, args []string) Result {
	if d.Hooks.Reload == nil {
		return failure("Nothing to reload")
	}
	if err := d.Hooks.Reload(); err != nil {
		return failure("Unable to reload config: %v", err)
	}
	return success()
}
