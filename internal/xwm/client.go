package xwm

import (
	"bytes"
	"log/slog"
	"math"

	"github.com/ItsNotGoodName/x-scroller/internal/loop"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/jezek/xgb/xproto"
)

// Client is a managed top-level window.
type Client struct {
	Window xproto.Window
	// Container is the view container the handler wraps the client in.
	Container tree.ContainerID

	wm    *WM
	appID string
	title string

	// x, y, width and height are what the window was last told to take.
	x, y          int16
	width, height uint16
	border        uint32
	borderWidth   uint16
	shown         bool
	saved         bool

	pending struct {
		serial        uint32
		width, height uint16
		cancel        loop.Cancel
	}

	label *label
}

func (wm *WM) manage(win xproto.Window) {
	if _, ok := wm.clients[win]; ok {
		xproto.MapWindow(wm.conn, win)
		return
	}

	c := &Client{
		Window: win,
		wm:     wm,
		width:  1,
		height: 1,
	}
	if geom, err := xproto.GetGeometry(wm.conn, xproto.Drawable(win)).Reply(); err == nil {
		c.x, c.y = geom.X, geom.Y
		c.width, c.height = geom.Width, geom.Height
	}
	c.appID = wm.class(win)
	c.title = wm.name(win)

	xproto.ChangeWindowAttributes(wm.conn, win, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange})
	// Unmodified clicks focus the window and are then replayed to it.
	xproto.GrabButton(wm.conn, false, win, xproto.EventMaskButtonPress,
		xproto.GrabModeSync, xproto.GrabModeAsync, xproto.WindowNone, xproto.CursorNone,
		xproto.ButtonIndexAny, xproto.ModMaskAny)
	xproto.MapWindow(wm.conn, win)
	c.shown = true

	wm.clients[win] = c
	slog.Debug("Client mapped", "package", "xwm", "window", win, "app_id", c.appID, "title", c.title)
	wm.handler.Map(c)
}

func (wm *WM) unmanage(win xproto.Window) {
	c, ok := wm.clients[win]
	if !ok {
		return
	}
	delete(wm.clients, win)
	c.cancelAck()
	c.destroyLabel()
	slog.Debug("Client unmapped", "package", "xwm", "window", win, "app_id", c.appID)
	wm.handler.Unmap(c)
}

// Configure resizes the window. The position is applied by Sync since X
// clients do not depend on it.
func (c *Client) Configure(x, y, width, height float64) uint32 {
	serial := c.wm.nextSerial()
	w, h := dimension(width), dimension(height)

	c.cancelAck()
	c.pending.serial = serial
	c.pending.width, c.pending.height = w, h

	if w == c.width && h == c.height {
		// No ConfigureNotify follows a configure that changes nothing.
		c.pending.cancel = c.wm.sched.Schedule(0, func() { c.ack(serial) })
		return serial
	}

	c.width, c.height = w, h
	xproto.ConfigureWindow(c.wm.conn, c.Window,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(w), uint32(h)})
	return serial
}

func (c *Client) configured(width, height uint16) {
	if c.pending.serial != 0 && width == c.pending.width && height == c.pending.height {
		c.ack(c.pending.serial)
	}
}

func (c *Client) ack(serial uint32) {
	if c.pending.serial != serial {
		return
	}
	c.pending.serial = 0
	c.pending.cancel = nil
	if _, ok := c.wm.clients[c.Window]; ok {
		c.wm.handler.Ack(c, serial)
	}
}

func (c *Client) cancelAck() {
	if c.pending.cancel != nil {
		c.pending.cancel()
		c.pending.cancel = nil
	}
	c.pending.serial = 0
}

// The X server keeps window contents, so there is nothing to snapshot.
func (c *Client) SaveBuffer()          { c.saved = true }
func (c *Client) RemoveSavedBuffer()   { c.saved = false }
func (c *Client) HasSavedBuffer() bool { return c.saved }
func (c *Client) IsVisible() bool      { return c.shown }
func (c *Client) SendFrameDone()       {}
func (c *Client) PositionAware() bool  { return false }

func (c *Client) CenterAndClip(width, height float64) {}

func (c *Client) AppID() string { return c.appID }
func (c *Client) Title() string { return c.title }

// place moves the window on screen.
func (c *Client) place(x, y int, width, height int, border uint32) {
	bw := uint16(0)
	if border != 0 {
		bw = borderWidth
	}
	w := dimension(float64(width) - 2*float64(bw))
	h := dimension(float64(height) - 2*float64(bw))
	nx, ny := int16(x), int16(y)

	if c.shown && nx == c.x && ny == c.y && w == c.width && h == c.height && bw == c.borderWidth && border == c.border {
		return
	}

	if border != c.border {
		xproto.ChangeWindowAttributes(c.wm.conn, c.Window, xproto.CwBorderPixel, []uint32{pixel(border)})
		c.border = border
	}

	c.x, c.y, c.width, c.height, c.borderWidth = nx, ny, w, h, bw
	c.shown = true
	xproto.ConfigureWindow(c.wm.conn, c.Window,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(int32(nx)), uint32(int32(ny)), uint32(w), uint32(h), uint32(bw)})
}

// hide moves the window past the right edge of the screen. Unmapping would
// make the client withdraw itself.
func (c *Client) hide() {
	if !c.shown {
		return
	}
	c.shown = false
	c.x = int16(min(int(c.wm.screen.WidthInPixels)+1, math.MaxInt16))
	xproto.ConfigureWindow(c.wm.conn, c.Window, xproto.ConfigWindowX, []uint32{uint32(int32(c.x))})
	c.hideLabel()
}

// sendConfigure tells the client its real geometry after it asked for another.
func (c *Client) sendConfigure() {
	ev := xproto.ConfigureNotifyEvent{
		Event:            c.Window,
		Window:           c.Window,
		AboveSibling:     xproto.WindowNone,
		X:                c.x,
		Y:                c.y,
		Width:            c.width,
		Height:           c.height,
		BorderWidth:      c.borderWidth,
		OverrideRedirect: false,
	}
	xproto.SendEvent(c.wm.conn, false, c.Window, xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

func (wm *WM) class(win xproto.Window) string {
	reply, err := xproto.GetProperty(wm.conn, false, win, xproto.AtomWmClass, xproto.AtomString, 0, 256).Reply()
	if err != nil {
		return ""
	}
	return parseClass(reply.Value)
}

func (wm *WM) name(win xproto.Window) string {
	reply, err := xproto.GetProperty(wm.conn, false, win, wm.atoms.netWMName, wm.atoms.utf8, 0, 256).Reply()
	if err == nil && len(reply.Value) > 0 {
		return string(reply.Value)
	}
	reply, err = xproto.GetProperty(wm.conn, false, win, xproto.AtomWmName, xproto.GetPropertyTypeAny, 0, 256).Reply()
	if err != nil {
		return ""
	}
	return string(reply.Value)
}

// parseClass returns the class half of WM_CLASS, which is two NUL terminated
// strings: instance then class.
func parseClass(value []byte) string {
	parts := bytes.Split(bytes.TrimRight(value, "\x00"), []byte{0})
	if len(parts) == 0 {
		return ""
	}
	return string(parts[len(parts)-1])
}

// dimension clamps a size to what X accepts.
func dimension(v float64) uint16 {
	return uint16(max(1, min(math.Round(v), math.MaxUint16)))
}
