// Package jump lets the user focus any tiled view on screen by typing the
// label drawn over it.
package jump

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

var ErrKeys = errors.New("jump needs at least two label keys")

// Keyboard routes key presses to the jump while it runs.
type Keyboard interface {
	GrabKeyboard() error
	UngrabKeyboard()
}

type Options struct {
	Keys string
	// Color and Background are RGBA.
	Color      uint32
	Background uint32
	Scale      float64
}

func DefaultOptions() Options {
	return Options{
		Keys:       "1234",
		Color:      0xFFFFFFFF,
		Background: 0x285577FF,
		Scale:      0.5,
	}
}

type Jump struct {
	Layout   *layout.Layout
	Keyboard Keyboard
	Options  Options

	session *session
}

type session struct {
	// overview lists the workspaces whose overview the jump turned on.
	overview []tree.WorkspaceID
	targets  []tree.ContainerID
	nkeys    int
	pressed  int
	number   int
}

func New(l *layout.Layout, kb Keyboard, opts Options) *Jump {
	return &Jump{
		Layout:   l,
		Keyboard: kb,
		Options:  opts,
	}
}

func (j *Jump) tree() *tree.Tree {
	return j.Layout.Tree
}

func (j *Jump) commit() {
	if j.Layout.Commit != nil {
		j.Layout.Commit.CommitDirty()
	}
}

func (j *Jump) Active() bool {
	return j.session != nil
}

// Targets lists the views in label order while a jump runs.
func (j *Jump) Targets() []tree.ContainerID {
	if j.session == nil {
		return nil
	}
	return j.session.targets
}

// KeyCount is how many keys it takes to address n views with k label keys.
func KeyCount(n, k int) int {
	count, capacity := 1, k
	for capacity < n {
		capacity *= k
		count++
	}
	return count
}

// Label spells i in base len(keys) with exactly n digits, most significant first.
func Label(i int, keys string, n int) string {
	k := len(keys)
	label := make([]byte, n)
	for d := n - 1; d >= 0; d-- {
		label[d] = keys[i%k]
		i /= k
	}
	return string(label)
}

// Start shows overview on every output that has tiled views and labels
// them. Nothing happens when there is nothing to jump to.
func (j *Jump) Start() error {
	if j.session != nil {
		return nil
	}
	keys := j.Options.Keys
	if len(keys) < 2 {
		return ErrKeys
	}

	s := &session{}
	var workspaces []*tree.Workspace
	for _, oid := range j.tree().Outputs {
		o := j.tree().Output(oid)
		if o == nil || !o.Enabled {
			continue
		}
		ws := j.tree().Workspace(o.Current.Active)
		if ws == nil || len(ws.Pending.Tiling) == 0 {
			continue
		}
		workspaces = append(workspaces, ws)
	}
	if len(workspaces) == 0 {
		return nil
	}

	for _, ws := range workspaces {
		if !ws.Layout.Overview {
			j.Layout.OverviewToggle(ws)
			s.overview = append(s.overview, ws.ID)
		}
		for _, id := range ws.Pending.Tiling {
			s.targets = append(s.targets, j.tree().Views(id)...)
		}
	}
	j.commit()

	s.nkeys = KeyCount(len(s.targets), len(keys))
	for i, id := range s.targets {
		c := j.tree().Container(id)
		c.JumpLabel = Label(i, keys, s.nkeys)
		j.tree().MarkContainerDirty(id)
	}
	j.session = s
	slog.Debug("Jump started", "package", "jump", "views", len(s.targets), "keys", s.nkeys)

	if j.Keyboard != nil {
		if err := j.Keyboard.GrabKeyboard(); err != nil {
			j.finish(false)
			return err
		}
	}
	j.commit()
	return nil
}

// Key feeds a pressed key to the running jump and reports whether the jump
// ended. A key that is not a label key aborts the jump.
func (j *Jump) Key(r rune) bool {
	s := j.session
	if s == nil {
		return false
	}
	idx := strings.IndexRune(j.Options.Keys, r)
	if idx < 0 {
		j.finish(false)
		return true
	}
	s.number = s.number*len(j.Options.Keys) + idx
	s.pressed++
	if s.pressed < s.nkeys {
		return false
	}
	j.finish(s.number < len(s.targets))
	return true
}

// Cancel ends the running jump without changing focus.
func (j *Jump) Cancel() {
	if j.session != nil {
		j.finish(false)
	}
}

func (j *Jump) finish(focus bool) {
	s := j.session
	j.session = nil

	for _, id := range s.targets {
		if c := j.tree().Container(id); c != nil {
			c.JumpLabel = ""
			j.tree().MarkContainerDirty(id)
		}
	}
	for _, id := range s.overview {
		if ws := j.tree().Workspace(id); ws != nil && ws.Layout.Overview {
			j.Layout.OverviewToggle(ws)
		}
	}
	j.commit()

	if focus {
		target := s.targets[s.number]
		slog.Debug("Jumping", "package", "jump", "container", target)
		if c := j.tree().Container(target); c != nil && c.Pending.Workspace.Valid() {
			j.tree().SetFocus(target)
			j.commit()
		}
	}
	if j.Keyboard != nil {
		j.Keyboard.UngrabKeyboard()
	}
}

// Placement returns the scale to draw a label of textWidth by textHeight over
// c with, and its offset inside c, centering it on the scaled container.
func (j *Jump) Placement(c *tree.Container, textWidth, textHeight float64) (scale float64, x, y int) {
	if textWidth <= 0 || textHeight <= 0 {
		return 0, 0, 0
	}
	wscale := layout.Scale(j.tree().Workspace(c.Pending.Workspace))
	fit := min(c.Pending.Width/textWidth, c.Pending.Height/textHeight)
	js := j.Options.Scale
	x = int(0.5 * wscale * (c.Pending.Width - textWidth*js*fit))
	y = int(0.5 * wscale * (c.Pending.Height - textHeight*js*fit))
	return js * fit * wscale, x, y
}
