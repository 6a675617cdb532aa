package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ItsNotGoodName/x-scroller/internal/build"
	"github.com/ItsNotGoodName/x-scroller/internal/bus"
	"github.com/ItsNotGoodName/x-scroller/internal/config"
	"github.com/ItsNotGoodName/x-scroller/internal/ipc"
	"github.com/ItsNotGoodName/x-scroller/internal/loop"
	"github.com/ItsNotGoodName/x-scroller/internal/store"
	"github.com/ItsNotGoodName/x-scroller/internal/xwm"
	"github.com/ItsNotGoodName/x-scroller/pkg/sutureext"
	"github.com/k0kubun/pp"
	"github.com/thejerf/suture/v4"
)

type Options struct {
	Debug      bool
	Addr       string
	ConfigPath string
	// Display is the X display, $DISPLAY when empty.
	Display string
}

// Run manages the X display until ctx is done or the X connection is lost.
func Run(ctx context.Context, opts Options) error {
	bus.SetContext(ctx)

	driver, err := config.NewDriver(opts.ConfigPath)
	if err != nil {
		return err
	}
	configStore, err := config.NewStore(driver)
	if err != nil {
		return err
	}
	if err := NormalizeConfig(configStore); err != nil {
		return err
	}
	cfg, err := configStore.GetConfig()
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return fmt.Errorf("invalid config %s: %w", opts.ConfigPath, err)
	}

	var memory *store.Store
	if settings.StorePath != "" {
		memory, err = store.Open(settings.StorePath)
		if err != nil {
			return err
		}
		defer memory.Close()
	}

	lp := loop.New()
	wm, err := xwm.Connect(opts.Display, lp, lp)
	if err != nil {
		return err
	}
	defer wm.Close()

	srv := New(lp, wm, settings)
	srv.Config = configStore
	if memory != nil {
		srv.Memory = memory
	}

	scrollerHub := bus.NewHub[bus.ScrollerEvent]().Register()
	trailHub := bus.NewHub[bus.TrailEvent]().Register()
	windowHub := bus.NewHub[bus.WindowEvent]().Register()
	defer bus.Reset()

	super := sutureext.NewSimple("x-scroller")
	sutureext.Add(super, lp)
	sutureext.Add(super, sutureext.NewServiceFunc("xwm.WM", func(ctx context.Context) error {
		err := lp.Do(ctx, func() error {
			if err := wm.Manage(Handler{srv}); err != nil {
				return err
			}
			if opts.Debug {
				pp.Fprintln(os.Stderr, srv.Tree.Info())
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("%w: %w", suture.ErrTerminateSupervisorTree, err)
		}
		return wm.Serve(ctx)
	}))
	sutureext.Add(super, ipc.NewServer(opts.Addr, ipc.Backend{
		Runner:     lp,
		Dispatcher: srv.Dispatcher,
		Scroller:   scrollerHub,
		Trail:      trailHub,
		Window:     windowHub,
	}))

	slog.Info("Starting", "package", "app", "version", build.Current.String(), "display", opts.Display, "address", opts.Addr, "config", opts.ConfigPath)
	return super.Serve(ctx)
}

// NormalizeConfig fills settings that were left empty in the file with
// their defaults.
func NormalizeConfig(s *config.Store) error {
	return s.UpdateConfig(func(cfg config.Config) (config.Config, error) {
		def := config.Default()
		if cfg.Layout.Type == "" {
			cfg.Layout.Type = def.Layout.Type
		}
		if cfg.Layout.DefaultWidth <= 0 {
			cfg.Layout.DefaultWidth = def.Layout.DefaultWidth
		}
		if cfg.Layout.DefaultHeight <= 0 {
			cfg.Layout.DefaultHeight = def.Layout.DefaultHeight
		}
		if len(cfg.Layout.Widths) == 0 {
			cfg.Layout.Widths = def.Layout.Widths
		}
		if len(cfg.Layout.Heights) == 0 {
			cfg.Layout.Heights = def.Layout.Heights
		}
		if cfg.Jump.Keys == "" {
			cfg.Jump.Keys = def.Jump.Keys
		}
		if cfg.Transactions.TimeoutMS <= 0 {
			cfg.Transactions.TimeoutMS = def.Transactions.TimeoutMS
		}
		if cfg.Outputs == nil {
			cfg.Outputs = []config.Output{}
		}
		return cfg, nil
	})
}
