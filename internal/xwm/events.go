package xwm

import (
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

func (wm *WM) handle(ev xgb.Event) {
	switch ev := ev.(type) {
	case xproto.MapRequestEvent:
		wm.manage(ev.Window)
	case xproto.ConfigureRequestEvent:
		wm.configureRequest(ev)
	case xproto.ConfigureNotifyEvent:
		if ev.Window == wm.root {
			if !wm.randr {
				wm.screen.WidthInPixels, wm.screen.HeightInPixels = ev.Width, ev.Height
				wm.handler.Monitors(wm.Monitors())
			}
			return
		}
		if c, ok := wm.clients[ev.Window]; ok {
			c.configured(ev.Width, ev.Height)
		}
	case xproto.UnmapNotifyEvent:
		wm.unmanage(ev.Window)
	case xproto.DestroyNotifyEvent:
		wm.unmanage(ev.Window)
	case xproto.PropertyNotifyEvent:
		c, ok := wm.clients[ev.Window]
		if !ok {
			return
		}
		if ev.Atom == xproto.AtomWmName || ev.Atom == wm.atoms.netWMName {
			c.title = wm.name(c.Window)
			wm.handler.Title(c)
		}
	case xproto.ButtonPressEvent:
		wm.buttonPress(ev)
	case xproto.ButtonReleaseEvent:
		wm.buttonRelease(ev)
	case xproto.MotionNotifyEvent:
		wm.motion(ev)
	case xproto.KeyPressEvent:
		wm.keyPress(ev)
	case xproto.ExposeEvent:
		if c, ok := wm.labels[ev.Window]; ok && ev.Count == 0 {
			c.label.draw()
		}
	case randr.ScreenChangeNotifyEvent:
		wm.screen.WidthInPixels, wm.screen.HeightInPixels = ev.Width, ev.Height
		wm.handler.Monitors(wm.Monitors())
	default:
		slog.Debug("Unhandled event", "package", "xwm", "event", ev.String())
	}
}

// configureRequest lets unmanaged windows configure themselves. Managed
// windows are told the geometry the layout gave them.
func (wm *WM) configureRequest(ev xproto.ConfigureRequestEvent) {
	if c, ok := wm.clients[ev.Window]; ok {
		c.sendConfigure()
		return
	}

	var (
		mask   uint16
		values []uint32
	)
	add := func(bit uint16, v uint32) {
		if ev.ValueMask&bit != 0 {
			mask |= bit
			values = append(values, v)
		}
	}
	add(xproto.ConfigWindowX, uint32(int32(ev.X)))
	add(xproto.ConfigWindowY, uint32(int32(ev.Y)))
	add(xproto.ConfigWindowWidth, uint32(ev.Width))
	add(xproto.ConfigWindowHeight, uint32(ev.Height))
	add(xproto.ConfigWindowBorderWidth, uint32(ev.BorderWidth))
	add(xproto.ConfigWindowSibling, uint32(ev.Sibling))
	add(xproto.ConfigWindowStackMode, uint32(ev.StackMode))
	xproto.ConfigureWindow(wm.conn, ev.Window, mask, values)
}
