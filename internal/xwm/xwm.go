// Package xwm manages top-level X11 windows and hands them to the layout as
// views. Every method except Serve must run on the event loop.
package xwm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/x-scroller/internal/loop"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/ItsNotGoodName/x-scroller/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
	"github.com/thejerf/suture/v4"
)

var ErrOtherWM = errors.New("another window manager is running")

// Runner runs fn on the event loop and waits for it.
type Runner interface {
	Do(ctx context.Context, fn func() error) error
}

// Handler receives window and input events on the event loop.
type Handler interface {
	Map(c *Client)
	Unmap(c *Client)
	// Ack reports that c took the geometry of the configure with serial.
	Ack(c *Client, serial uint32)
	Title(c *Client)
	Focus(c *Client)
	Key(r rune)
	Pointer(p Pointer)
	Monitors(monitors []Monitor)
}

type atoms struct {
	netWMName xproto.Atom
	utf8      xproto.Atom
}

type WM struct {
	conn    *xgb.Conn
	screen  *xproto.ScreenInfo
	root    xproto.Window
	runner  Runner
	sched   loop.Scheduler
	handler Handler
	cursors *xcursor.Cache
	atoms   atoms
	keymap  keymap
	font    font
	randr   bool

	clients map[xproto.Window]*Client
	labels  map[xproto.Window]*Client
	serial  uint32
	grabbed bool
}

// Connect opens display, or $DISPLAY when it is empty.
func Connect(display string, r Runner, sched loop.Scheduler) (*WM, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	wm := &WM{
		conn:    conn,
		screen:  screen,
		root:    screen.Root,
		runner:  r,
		sched:   sched,
		clients: make(map[xproto.Window]*Client),
		labels:  make(map[xproto.Window]*Client),
	}

	if wm.cursors, err = xcursor.NewCache(conn); err != nil {
		conn.Close()
		return nil, err
	}
	if wm.atoms.netWMName, err = internAtom(conn, "_NET_WM_NAME"); err != nil {
		conn.Close()
		return nil, err
	}
	if wm.atoms.utf8, err = internAtom(conn, "UTF8_STRING"); err != nil {
		conn.Close()
		return nil, err
	}
	if wm.keymap, err = loadKeymap(conn, setup.MinKeycode, setup.MaxKeycode); err != nil {
		conn.Close()
		return nil, err
	}
	if wm.font, err = openFont(conn, "fixed"); err != nil {
		conn.Close()
		return nil, err
	}

	if err := randr.Init(conn); err != nil {
		slog.Warn("RandR is not available, using the screen as the only monitor", "package", "xwm", "error", err)
	} else {
		wm.randr = true
	}

	return wm, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

func (wm *WM) String() string {
	return "xwm.WM"
}

// Manage takes over the root window and adopts the windows that are already
// mapped.
func (wm *WM) Manage(h Handler) error {
	wm.handler = h

	cursor, err := wm.cursors.Get(xcursor.LeftPtr)
	if err != nil {
		return err
	}
	err = xproto.ChangeWindowAttributesChecked(wm.conn, wm.root,
		xproto.CwEventMask|xproto.CwCursor,
		[]uint32{
			xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify | xproto.EventMaskStructureNotify,
			uint32(cursor),
		}).Check()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOtherWM, err)
	}

	if err := wm.grabButtons(); err != nil {
		return err
	}
	if wm.randr {
		randr.SelectInput(wm.conn, wm.root, randr.NotifyMaskScreenChange)
	}
	h.Monitors(wm.Monitors())

	tree, err := xproto.QueryTree(wm.conn, wm.root).Reply()
	if err != nil {
		return err
	}
	for _, win := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(wm.conn, win).Reply()
		if err != nil || attrs.OverrideRedirect || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		wm.manage(win)
	}

	slog.Info("Managing windows", "package", "xwm", "windows", len(wm.clients))
	return nil
}

// Serve reads X events and handles them on the event loop. Losing the
// connection stops the supervisor tree.
func (wm *WM) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		wm.conn.Close()
	}()

	for {
		ev, err := wm.conn.WaitForEvent()
		if ev == nil && err == nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: connection to X server closed", suture.ErrTerminateSupervisorTree)
		}
		if err != nil {
			slog.Debug("X error", "package", "xwm", "error", err)
			continue
		}

		if err := wm.runner.Do(ctx, func() error {
			wm.handle(ev)
			return nil
		}); err != nil {
			return err
		}
	}
}

// Close releases the server side resources of the manager.
func (wm *WM) Close() {
	for _, c := range wm.clients {
		c.destroyLabel()
	}
	wm.cursors.Close()
	xproto.CloseFont(wm.conn, wm.font.id)
	wm.conn.Close()
}

// Focus gives v the input focus, or the pointer root when v is not a
// client.
func (wm *WM) Focus(v tree.View) {
	c, ok := v.(*Client)
	if !ok || c == nil {
		xproto.SetInputFocus(wm.conn, xproto.InputFocusPointerRoot, xproto.InputFocusPointerRoot, xproto.TimeCurrentTime)
		return
	}
	xproto.SetInputFocus(wm.conn, xproto.InputFocusPointerRoot, c.Window, xproto.TimeCurrentTime)
}

func (wm *WM) nextSerial() uint32 {
	wm.serial++
	if wm.serial == 0 {
		wm.serial++
	}
	return wm.serial
}
