package xwm

import (
	"errors"
	"fmt"

	"github.com/ItsNotGoodName/x-scroller/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Modifier held for window manager pointer bindings.
const bindMod = xproto.ModMask4

// ScrollStep is how far one wheel click scrolls, in layout pixels.
const ScrollStep = 40

type PointerKind int

const (
	// PointerPress starts a drag of Client.
	PointerPress PointerKind = iota
	PointerMotion
	PointerRelease
	// PointerScroll scrolls the workspace under X, Y by DX, DY.
	PointerScroll
)

// Pointer is a pointer event in root coordinates. DX and DY are how far a
// scroll moves content.
type Pointer struct {
	Kind   PointerKind
	X, Y   float64
	DX, DY float64
	Client *Client
}

var ErrGrab = errors.New("failed to grab keyboard")

type keymap struct {
	min     xproto.Keycode
	perCode int
	syms    []xproto.Keysym
}

func loadKeymap(conn *xgb.Conn, lo, hi xproto.Keycode) (keymap, error) {
	reply, err := xproto.GetKeyboardMapping(conn, lo, byte(hi-lo+1)).Reply()
	if err != nil {
		return keymap{}, fmt.Errorf("failed to get keyboard mapping: %w", err)
	}
	return keymap{
		min:     lo,
		perCode: int(reply.KeysymsPerKeycode),
		syms:    reply.Keysyms,
	}, nil
}

// lookup returns the first keysym of code, or the second one with shift held.
func (k keymap) lookup(code xproto.Keycode, state uint16) xproto.Keysym {
	if code < k.min || k.perCode == 0 {
		return 0
	}
	i := int(code-k.min) * k.perCode
	if i >= len(k.syms) {
		return 0
	}
	if state&xproto.ModMaskShift != 0 && k.perCode > 1 && k.syms[i+1] != 0 {
		return k.syms[i+1]
	}
	return k.syms[i]
}

// keysymRune maps Latin-1 keysyms and a few function keys to runes. Other
// keysyms map to 0.
func keysymRune(sym xproto.Keysym) rune {
	switch {
	case sym >= 0x20 && sym <= 0x7e, sym >= 0xa0 && sym <= 0xff:
		return rune(sym)
	case sym >= 0xffb0 && sym <= 0xffb9:
		return '0' + rune(sym-0xffb0)
	case sym == 0xff1b:
		return 0x1b
	case sym == 0xff0d, sym == 0xff8d:
		return '\r'
	case sym == 0xff08:
		return '\b'
	default:
		return 0
	}
}

// GrabKeyboard sends every key press to the manager until UngrabKeyboard.
func (wm *WM) GrabKeyboard() error {
	if wm.grabbed {
		return nil
	}
	reply, err := xproto.GrabKeyboard(wm.conn, false, wm.root, xproto.TimeCurrentTime,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Reply()
	if err != nil {
		return err
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("%w: status %d", ErrGrab, reply.Status)
	}
	wm.grabbed = true
	return nil
}

func (wm *WM) UngrabKeyboard() {
	if !wm.grabbed {
		return
	}
	wm.grabbed = false
	xproto.UngrabKeyboard(wm.conn, xproto.TimeCurrentTime)
}

func (wm *WM) grabButtons() error {
	fleur, err := wm.cursors.Get(xcursor.Fleur)
	if err != nil {
		return err
	}
	err = xproto.GrabButtonChecked(wm.conn, false, wm.root,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync, xproto.WindowNone, fleur,
		xproto.ButtonIndex1, bindMod).Check()
	if err != nil {
		return err
	}
	for button := byte(4); button <= 7; button++ {
		xproto.GrabButton(wm.conn, false, wm.root, xproto.EventMaskButtonPress,
			xproto.GrabModeAsync, xproto.GrabModeAsync, xproto.WindowNone, xproto.CursorNone,
			button, bindMod)
	}
	return nil
}

// scrollDelta is the content movement of a wheel button. Scrolling down or
// right brings in what follows, so content moves up or left.
func scrollDelta(button xproto.Button) (dx, dy float64, ok bool) {
	switch button {
	case 4:
		return 0, ScrollStep, true
	case 5:
		return 0, -ScrollStep, true
	case 6:
		return ScrollStep, 0, true
	case 7:
		return -ScrollStep, 0, true
	default:
		return 0, 0, false
	}
}

func (wm *WM) buttonPress(ev xproto.ButtonPressEvent) {
	if ev.Event != wm.root {
		c, ok := wm.clients[ev.Event]
		xproto.AllowEvents(wm.conn, xproto.AllowReplayPointer, ev.Time)
		if ok {
			wm.handler.Focus(c)
		}
		return
	}

	p := Pointer{
		X:      float64(ev.RootX),
		Y:      float64(ev.RootY),
		Client: wm.clients[ev.Child],
	}
	if dx, dy, ok := scrollDelta(ev.Detail); ok {
		p.Kind, p.DX, p.DY = PointerScroll, dx, dy
	} else if ev.Detail == xproto.ButtonIndex1 {
		p.Kind = PointerPress
	} else {
		return
	}
	wm.handler.Pointer(p)
}

func (wm *WM) buttonRelease(ev xproto.ButtonReleaseEvent) {
	if ev.Event != wm.root || ev.Detail != xproto.ButtonIndex1 {
		return
	}
	wm.handler.Pointer(Pointer{
		Kind: PointerRelease,
		X:    float64(ev.RootX),
		Y:    float64(ev.RootY),
	})
}

func (wm *WM) motion(ev xproto.MotionNotifyEvent) {
	wm.handler.Pointer(Pointer{
		Kind:   PointerMotion,
		X:      float64(ev.RootX),
		Y:      float64(ev.RootY),
		Client: wm.clients[ev.Child],
	})
}

func (wm *WM) keyPress(ev xproto.KeyPressEvent) {
	if r := keysymRune(wm.keymap.lookup(ev.Detail, ev.State)); r != 0 {
		wm.handler.Key(r)
	}
}
