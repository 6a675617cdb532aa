package config

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/core"
	"github.com/ItsNotGoodName/x-scroller/internal/jump"
	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/ItsNotGoodName/x-scroller/internal/txn"
)

// Settings are the runtime options described by a Config.
type Settings struct {
	Tree      tree.Defaults
	Anim      anim.Config
	Layout    layout.Options
	Txn       txn.Options
	Jump      jump.Options
	StorePath string
}

// ParseLayoutType accepts horizontal, vertical and default. Default and the
// empty string mean no preference.
func ParseLayoutType(s string) (tree.Layout, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return tree.LayoutNone, nil
	case "horizontal", "h":
		return tree.LayoutHoriz, nil
	case "vertical", "v":
		return tree.LayoutVert, nil
	default:
		return tree.LayoutNone, fmt.Errorf("invalid layout type %q", s)
	}
}

func (c Config) Settings() (Settings, error) {
	typ, err := ParseLayoutType(c.Layout.Type)
	if err != nil {
		return Settings{}, fmt.Errorf("layout: %w", err)
	}

	outputs := make(map[string]tree.OutputOptions, len(c.Outputs))
	for _, o := range c.Outputs {
		otyp, err := ParseLayoutType(o.LayoutType)
		if err != nil {
			return Settings{}, fmt.Errorf("output %s: %w", o.Name, err)
		}
		outputs[o.Name] = tree.OutputOptions{
			LayoutType:    otyp,
			DefaultWidth:  o.DefaultWidth,
			DefaultHeight: o.DefaultHeight,
			Widths:        o.Widths,
			Heights:       o.Heights,
		}
	}

	jumpOpts := jump.DefaultOptions()
	if c.Jump.Keys != "" {
		jumpOpts.Keys = c.Jump.Keys
	}
	if c.Jump.Color != "" {
		color, ok := core.ParseColor(c.Jump.Color)
		if !ok {
			return Settings{}, fmt.Errorf("jump: invalid color %q", c.Jump.Color)
		}
		jumpOpts.Color = color
	}
	if c.Jump.Background != "" {
		color, ok := core.ParseColor(c.Jump.Background)
		if !ok {
			return Settings{}, fmt.Errorf("jump: invalid background %q", c.Jump.Background)
		}
		jumpOpts.Background = color
	}
	if c.Jump.Scale > 0 {
		jumpOpts.Scale = math.Min(math.Max(c.Jump.Scale, 0.1), 1.0)
	}

	layoutOpts := layout.DefaultOptions()
	if c.Gestures.ScrollSensitivity > 0 {
		layoutOpts.ScrollSensitivity = c.Gestures.ScrollSensitivity
	}
	if c.Gestures.TilingDragThreshold > 0 {
		layoutOpts.DragThreshold = c.Gestures.TilingDragThreshold
	}

	txnOpts := txn.DefaultOptions()
	if c.Transactions.TimeoutMS > 0 {
		txnOpts.Timeout = time.Duration(c.Transactions.TimeoutMS) * time.Millisecond
	}
	txnOpts.NoAtomic = c.Debug.NoAtomic
	txnOpts.Wait = c.Debug.TxnWait
	txnOpts.Timings = c.Debug.TxnTimings

	return Settings{
		Tree: tree.Defaults{
			LayoutType:    typ,
			DefaultWidth:  c.Layout.DefaultWidth,
			DefaultHeight: c.Layout.DefaultHeight,
			Widths:        c.Layout.Widths,
			Heights:       c.Layout.Heights,
			GapsInner:     c.Layout.GapsInner,
			GapsOuter:     c.Layout.GapsOuter,
			Outputs:       outputs,
		},
		Anim:      c.Animations.config(),
		Layout:    layoutOpts,
		Txn:       txnOpts,
		Jump:      jumpOpts,
		StorePath: c.Store.Path,
	}, nil
}

func (a Animations) config() anim.Config {
	return anim.Config{
		Enabled:    a.Enabled,
		Frequency:  time.Duration(a.FrequencyMS) * time.Millisecond,
		Default:    a.Default.curve("default"),
		WindowOpen: a.WindowOpen.curve("window_open"),
		WindowMove: a.WindowMove.curve("window_move"),
		WindowSize: a.WindowSize.curve("window_size"),
	}
}

// curve builds the animation curve. A curve that does not match its order is
// dropped so the default curve is used instead.
func (c *Curve) curve(name string) *anim.Curve {
	if c == nil {
		return nil
	}
	var (
		varOrder, offOrder   int
		varPoints, offPoints []float64
		offScale             float64
	)
	if c.Var != nil {
		varOrder, varPoints = c.Var.Order, c.Var.Points
	}
	if c.Off != nil {
		offScale, offOrder, offPoints = c.Off.Scale, c.Off.Order, c.Off.Points
	}
	curve, err := anim.NewCurve(c.Enabled, c.DurationMS, varOrder, varPoints, offScale, offOrder, offPoints)
	if err != nil {
		slog.Error("Invalid animation curve", "package", "config", "curve", name, "error", err)
		return nil
	}
	return curve
}
