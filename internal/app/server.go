// Package app owns the window manager state. Everything in it runs on the
// event loop.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/command"
	"github.com/ItsNotGoodName/x-scroller/internal/config"
	"github.com/ItsNotGoodName/x-scroller/internal/jump"
	"github.com/ItsNotGoodName/x-scroller/internal/layout"
	"github.com/ItsNotGoodName/x-scroller/internal/loop"
	"github.com/ItsNotGoodName/x-scroller/internal/render"
	"github.com/ItsNotGoodName/x-scroller/internal/scene"
	"github.com/ItsNotGoodName/x-scroller/internal/selection"
	"github.com/ItsNotGoodName/x-scroller/internal/store"
	"github.com/ItsNotGoodName/x-scroller/internal/trail"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/ItsNotGoodName/x-scroller/internal/txn"
	"github.com/ItsNotGoodName/x-scroller/internal/xwm"
)

// Border colors, RGBA.
const (
	ColorFocused     = 0x4C7899FF
	ColorSelected    = 0xE5A50AFF
	ColorTrailmarked = 0x26A269FF
)

// Backend shows the scene and routes input.
type Backend interface {
	jump.Keyboard
	Focus(v tree.View)
	Sync(root *scene.Node, decorate func(v tree.View) xwm.Decoration)
	TextSize(text string) (width, height float64)
}

// ConfigSource is read again on reload.
type ConfigSource interface {
	GetConfig() (config.Config, error)
}

// Memory remembers the fractions of application ids.
type Memory interface {
	Get(ctx context.Context, appID string) (store.Fractions, bool, error)
	Save(ctx context.Context, f store.Fractions) error
}

type Server struct {
	Tree       *tree.Tree
	Anim       *anim.Context
	Txn        *txn.Engine
	Layout     *layout.Layout
	Selection  *selection.Selection
	Trails     *trail.Context
	Jump       *jump.Jump
	Dispatcher *command.Dispatcher

	// Config and Memory are optional.
	Config ConfigSource
	Memory Memory

	backend Backend
	sched   loop.Scheduler
	views   map[tree.View]tree.ContainerID
	// orphans are views mapped while there was no workspace.
	orphans []tree.ContainerID
	drag    drag
	scroll  scroll
}

func New(sched loop.Scheduler, backend Backend, settings config.Settings) *Server {
	t := tree.New(settings.Tree)
	a := anim.NewContext(sched, settings.Anim)
	l := layout.New(t, a, nil, settings.Layout)
	r := render.New(l, a)
	sel := selection.New(l)
	trails := trail.New(t, sel)

	s := &Server{
		Tree:      t,
		Anim:      a,
		Layout:    l,
		Selection: sel,
		Trails:    trails,
		backend:   backend,
		sched:     sched,
		views:     make(map[tree.View]tree.ContainerID),
	}
	s.Txn = txn.New(t, sched, a, renderer{Renderer: r, sync: s.sync}, settings.Txn)
	l.Commit = s.Txn
	s.Jump = jump.New(l, backend, settings.Jump)
	s.Dispatcher = command.New(l, a, sel, trails, s.Jump)
	s.Dispatcher.Hooks = command.Hooks{
		SizeChanged: s.saveFractions,
		Reload:      s.Reload,
	}
	t.OnFocus = s.focused
	return s
}

// renderer syncs the backend after every arrange.
type renderer struct {
	*render.Renderer
	sync func()
}

func (r renderer) Arrange() {
	r.Renderer.Arrange()
	r.sync()
}

func (s *Server) sync() {
	s.backend.Sync(s.Tree.Root, s.decorate)
}

func (s *Server) commit() {
	s.Txn.CommitDirty()
}

// Apply switches to settings. Existing outputs pick up their new options.
func (s *Server) Apply(settings config.Settings) {
	s.Tree.Defaults = settings.Tree
	for _, id := range s.Tree.Outputs {
		if o := s.Tree.Output(id); o != nil {
			o.Options = settings.Tree.Outputs[o.Name]
		}
	}
	s.Anim.SetConfig(settings.Anim)
	s.Layout.Options = settings.Layout
	s.Txn.SetOptions(settings.Txn)
	s.Jump.Options = settings.Jump

	for _, id := range s.Tree.Workspaces() {
		s.Layout.ArrangeWorkspace(id)
	}
	s.commit()
}

// Reload reads the configuration again and applies it.
func (s *Server) Reload() error {
	if s.Config == nil {
		return nil
	}
	cfg, err := s.Config.GetConfig()
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	s.Apply(settings)
	slog.Info("Configuration reloaded", "package", "app")
	return nil
}

func (s *Server) decorate(v tree.View) xwm.Decoration {
	var d xwm.Decoration
	id, ok := s.views[v]
	if !ok {
		return d
	}
	c := s.Tree.Container(id)
	if c == nil {
		return d
	}

	switch {
	case c.Selected:
		d.Border = ColorSelected
	case s.Trails.Trailmarked(id):
		d.Border = ColorTrailmarked
	case s.Tree.Focused() == id:
		d.Border = ColorFocused
	}

	if c.JumpLabel != "" {
		tw, th := s.backend.TextSize(c.JumpLabel)
		scale, x, y := s.Jump.Placement(c, tw, th)
		d.Label = xwm.LabelStyle{
			Text:       c.JumpLabel,
			X:          x,
			Y:          y,
			Scale:      scale,
			Color:      s.Jump.Options.Color,
			Background: s.Jump.Options.Background,
		}
	}
	return d
}

func (s *Server) memoryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Second)
}
