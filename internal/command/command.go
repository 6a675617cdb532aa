// Package command parses and runs the text commands that drive the layout.
// Every command runs against the focused container and workspace and is
// followed by a commit of whatever it dirtied.
package command

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/core"
	"github.com/ItsNotGoodName/x-scroller/internal/jump"
	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/selection"
	"github.com/ItsNotGoodName/x-scroller/internal/trail"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "invalid"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "success":
		*s = StatusSuccess
	case "failure":
		*s = StatusFailure
	case "invalid":
		*s = StatusInvalid
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

type Result struct {
	Command string `json:"command"`
	Status  Status `json:"status"`
	Error   string `json:"error,omitempty"`
}

func (r Result) Success() bool {
	return r.Status == StatusSuccess
}

func success() Result {
	return Result{Status: StatusSuccess}
}

func invalid(format string, args ...any) Result {
	return Result{Status: StatusInvalid, Error: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) Result {
	return Result{Status: StatusFailure, Error: fmt.Sprintf(format, args...)}
}

// Context is what a command acts on.
type Context struct {
	Container *tree.Container
	Workspace *tree.Workspace
}

type handler func(d *Dispatcher, ctx Context, args []string) Result

// Hooks let the owner of the dispatcher react to commands that reach outside
// the layout.
type Hooks struct {
	// SizeChanged runs after the fractions of a container were set by hand.
	SizeChanged func(id tree.ContainerID)
	// Reload reloads the configuration file.
	Reload func() error
}

type Dispatcher struct {
	Layout    *layout.Layout
	Anim      *anim.Context
	Selection *selection.Selection
	Trails    *trail.Context
	Jump      *jump.Jump
	Hooks     Hooks
}

func New(l *layout.Layout, a *anim.Context, s *selection.Selection, t *trail.Context, j *jump.Jump) *Dispatcher {
	return &Dispatcher{
		Layout:    l,
		Anim:      a,
		Selection: s,
		Trails:    t,
		Jump:      j,
	}
}

func (d *Dispatcher) tree() *tree.Tree {
	return d.Layout.Tree
}

// Names lists every command in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes every command of line. Commands are separated by ';' or ','
// and each one is committed before the next runs.
func (d *Dispatcher) Run(line string) []Result {
	var results []Result
	for _, cmd := range splitCommands(line) {
		args := core.SplitArgs(cmd)
		if len(args) == 0 {
			continue
		}
		res := d.Exec(args[0], args[1:]...)
		res.Command = cmd
		results = append(results, res)
	}
	return results
}

// Exec runs a single command.
func (d *Dispatcher) Exec(name string, args ...string) Result {
	h, ok := handlers[strings.ToLower(name)]
	if !ok {
		return invalid("Unknown/invalid command '%s'", name)
	}
	ctx := d.context()
	res := h(d, ctx, args)
	if res.Success() {
		slog.Debug("Command executed", "package", "command", "name", name, "args", args)
	} else {
		slog.Debug("Command failed", "package", "command", "name", name, "args", args, "status", res.Status, "error", res.Error)
	}
	if d.Layout.Commit != nil {
		d.Layout.Commit.CommitDirty()
	}
	return res
}

func (d *Dispatcher) context() Context {
	var ctx Context
	if c := d.tree().Container(d.tree().Focused()); c != nil {
		ctx.Container = c
	}
	ctx.Workspace = d.tree().Workspace(d.tree().FocusedWorkspace())
	if ctx.Workspace == nil {
		for _, id := range d.tree().Workspaces() {
			if d.tree().IsVisible(id) {
				ctx.Workspace = d.tree().Workspace(id)
				break
			}
		}
	}
	return ctx
}

func splitCommands(line string) []string {
	var cmds []string
	var current strings.Builder
	var quote rune
	depth := 0
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case depth == 0 && (r == ';' || r == ','):
			cmds = append(cmds, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}
	return append(cmds, strings.TrimSpace(current.String()))
}

// checkArgs mirrors the usual argument count error.
func checkArgs(name string, args []string, least int) (Result, bool) {
	if len(args) >= least {
		return Result{}, true
	}
	plural := "s"
	if least == 1 {
		plural = ""
	}
	return invalid("Invalid %s command (expected at least %d argument%s, got %d)", name, least, plural, len(args)), false
}

func (d *Dispatcher) requireOutputs() (Result, bool) {
	if d.tree().EnabledOutputs() == 0 {
		return invalid("Can't run this command while there's no outputs connected."), false
	}
	return Result{}, true
}

// fromError turns a layout error into a result.
func fromError(name string, err error) Result {
	switch {
	case err == nil:
		return success()
	case errors.Is(err, layout.ErrHiddenScratchpad):
		return failure("Cannot %s a hidden scratchpad container", name)
	case errors.Is(err, layout.ErrFloating):
		return invalid("Cannot %s a floating container", name)
	case errors.Is(err, layout.ErrFullscreen):
		return failure("Cannot %s a fullscreen container", name)
	case errors.Is(err, layout.ErrNoContainer):
		return invalid("Cannot %s nothing", name)
	case errors.Is(err, layout.ErrNoWorkspace):
		return invalid("Need a workspace to run %s", name)
	case errors.Is(err, layout.ErrUnknownLayoutType):
		return invalid("The current workspace has an unknown layout type")
	default:
		return failure("%s: %v", name, err)
	}
}

func parseAxis(s string) (tree.Layout, bool) {
	switch strings.ToLower(s) {
	case "h":
		return tree.LayoutHoriz, true
	case "v":
		return tree.LayoutVert, true
	default:
		return tree.LayoutNone, false
	}
}
