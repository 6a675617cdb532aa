// Package trail keeps bookmark trails of views. A trail is an ordered list of
// trailmarks; one trail is active at a time and trailmark navigation cycles
// through it.
package trail

import (
	"log/slog"
	"slices"

	"github.com/ItsNotGoodName/x-scroller/internal/bus"
	"github.com/ItsNotGoodName/x-scroller/internal/core"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/google/uuid"
)

type Trail struct {
	ID    uuid.UUID
	Views []tree.ContainerID
	// cursor is the trailmark navigation last landed on.
	cursor int
}

// Selector marks views as selected.
type Selector interface {
	Set(id tree.ContainerID, selected bool)
}

type Context struct {
	Tree      *tree.Tree
	Selection Selector

	trails []*Trail
	active int
}

func New(t *tree.Tree, s Selector) *Context {
	return &Context{
		Tree:      t,
		Selection: s,
		active:    -1,
	}
}

func (c *Context) current() *Trail {
	if c.active < 0 || c.active >= len(c.trails) {
		return nil
	}
	return c.trails[c.active]
}

// Length is the number of trails.
func (c *Context) Length() int {
	return len(c.trails)
}

// Active is the index of the active trail, -1 without trails.
func (c *Context) Active() int {
	return c.active
}

// ActiveLength is the number of trailmarks of the active trail.
func (c *Context) ActiveLength() int {
	if t := c.current(); t != nil {
		return len(t.Views)
	}
	return 0
}

// Trailmarked reports whether view is a trailmark of the active trail.
func (c *Context) Trailmarked(view tree.ContainerID) bool {
	t := c.current()
	return t != nil && slices.Contains(t.Views, view)
}

// Trails returns copies of every trail.
func (c *Context) Trails() []Trail {
	trails := make([]Trail, 0, len(c.trails))
	for _, t := range c.trails {
		trails = append(trails, Trail{ID: t.ID, Views: slices.Clone(t.Views), cursor: t.cursor})
	}
	return trails
}

func (c *Context) publish() {
	slog.Debug("Trails changed", "package", "trail", "length", c.Length(), "active", c.Active(), "active_length", c.ActiveLength())
	bus.Publish(bus.TrailEvent{
		Length:       c.Length(),
		Active:       c.Active(),
		ActiveLength: c.ActiveLength(),
	})
}

// markDirty redraws the trailmarks of the active trail.
func (c *Context) markDirty() {
	if t := c.current(); t != nil {
		for _, id := range t.Views {
			c.Tree.MarkContainerDirty(id)
		}
	}
}

// New appends an empty trail and makes it active.
func (c *Context) New() {
	c.markDirty()
	c.trails = append(c.trails, &Trail{ID: uuid.New(), cursor: -1})
	c.active = len(c.trails) - 1
	c.publish()
}

func (c *Context) Next() {
	c.step(1)
}

func (c *Context) Prev() {
	c.step(-1)
}

func (c *Context) step(delta int) {
	if len(c.trails) == 0 {
		return
	}
	c.markDirty()
	c.active = core.Wrap(c.active+delta, len(c.trails))
	c.markDirty()
	c.publish()
}

// Delete removes the active trail and activates the one before it.
func (c *Context) Delete() {
	if c.current() == nil {
		return
	}
	c.markDirty()
	c.trails = slices.Delete(c.trails, c.active, c.active+1)
	switch {
	case len(c.trails) == 0:
		c.active = -1
	case c.active > 0:
		c.active--
	}
	c.markDirty()
	c.publish()
}

// Clear removes every trailmark of the active trail.
func (c *Context) Clear() {
	t := c.current()
	if t == nil {
		return
	}
	c.markDirty()
	t.Views = nil
	t.cursor = -1
	c.publish()
}

// ToSelection selects every trailmark of the active trail.
func (c *Context) ToSelection() {
	t := c.current()
	if t == nil || c.Selection == nil {
		return
	}
	for _, id := range t.Views {
		c.Selection.Set(id, true)
	}
}

// TrailmarkToggle adds view to the active trail or removes it when already
// there. A trail is created when there is none.
func (c *Context) TrailmarkToggle(view tree.ContainerID) {
	if v := c.Tree.Container(view); v == nil || !v.IsView() {
		return
	}
	if c.current() == nil {
		c.trails = append(c.trails, &Trail{ID: uuid.New(), cursor: -1})
		c.active = len(c.trails) - 1
	}
	t := c.current()
	if idx := slices.Index(t.Views, view); idx >= 0 {
		t.remove(idx)
	} else {
		t.Views = append(t.Views, view)
		t.cursor = len(t.Views) - 1
	}
	c.Tree.MarkContainerDirty(view)
	c.publish()
}

func (c *Context) TrailmarkNext() tree.ContainerID {
	return c.trailmarkStep(1)
}

func (c *Context) TrailmarkPrev() tree.ContainerID {
	return c.trailmarkStep(-1)
}

// trailmarkStep moves the cursor of the active trail and focuses the view
// under it.
func (c *Context) trailmarkStep(delta int) tree.ContainerID {
	t := c.current()
	if t == nil || len(t.Views) == 0 {
		return tree.ContainerID{}
	}
	if t.cursor < 0 {
		// The first step lands on the first or last trailmark.
		t.cursor = core.Wrap(min(delta, 0), len(t.Views))
	} else {
		t.cursor = core.Wrap(t.cursor+delta, len(t.Views))
	}
	view := t.Views[t.cursor]
	c.Tree.SetFocus(view)
	return view
}

// RemoveView forgets view in every trail. Trails that end up empty are kept.
func (c *Context) RemoveView(view tree.ContainerID) {
	changed := false
	for _, t := range c.trails {
		if idx := slices.Index(t.Views, view); idx >= 0 {
			t.remove(idx)
			changed = true
		}
	}
	if changed {
		c.publish()
	}
}

func (t *Trail) remove(idx int) {
	t.Views = slices.Delete(t.Views, idx, idx+1)
	switch {
	case len(t.Views) == 0:
		t.cursor = -1
	case t.cursor >= idx:
		t.cursor = max(t.cursor-1, 0)
	}
}
