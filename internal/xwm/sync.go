package xwm

import (
	"fmt"

	"github.com/ItsNotGoodName/x-scroller/internal/scene"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const borderWidth = 2

// Decoration is what Sync draws around and over a client. Colors are RGBA
// and a zero Border means no border.
type Decoration struct {
	Border uint32
	Label  LabelStyle
}

// LabelStyle places a jump label at X, Y inside the client, Scale times the
// size of its text.
type LabelStyle struct {
	Text       string
	X, Y       int
	Scale      float64
	Color      uint32
	Background uint32
}

// Sync moves every client to its buffer node in root and hides the rest.
func (wm *WM) Sync(root *scene.Node, decorate func(v tree.View) Decoration) {
	seen := make(map[xproto.Window]bool, len(wm.clients))
	root.ForEachBuffer(func(n *scene.Node, x, y int) {
		c, ok := n.Buffer.(*Client)
		if !ok || c.wm != wm {
			return
		}
		if _, managed := wm.clients[c.Window]; !managed {
			return
		}
		seen[c.Window] = true

		var deco Decoration
		if decorate != nil {
			deco = decorate(c)
		}
		c.place(x, y, n.Width, n.Height, deco.Border)
		if deco.Label.Text != "" {
			c.showLabel(x, y, deco.Label)
		} else {
			c.hideLabel()
		}
	})

	for win, c := range wm.clients {
		if !seen[win] {
			c.hide()
		}
	}
}

// TextSize is the unscaled size of text in the label font.
func (wm *WM) TextSize(text string) (width, height float64) {
	return float64(len(text) * wm.font.width), float64(wm.font.ascent + wm.font.descent)
}

type font struct {
	id      xproto.Font
	width   int
	ascent  int
	descent int
}

func openFont(conn *xgb.Conn, name string) (font, error) {
	id, err := xproto.NewFontId(conn)
	if err != nil {
		return font{}, err
	}
	if err := xproto.OpenFontChecked(conn, id, uint16(len(name)), name).Check(); err != nil {
		return font{}, fmt.Errorf("failed to open font %s: %w", name, err)
	}
	info, err := xproto.QueryFont(conn, xproto.Fontable(id)).Reply()
	if err != nil {
		return font{}, err
	}
	return font{
		id:      id,
		width:   max(1, int(info.MaxBounds.CharacterWidth)),
		ascent:  int(info.FontAscent),
		descent: int(info.FontDescent),
	}, nil
}

// label is an override-redirect window that shows a jump label. Core fonts
// do not scale, so the text is centered in a window of the scaled size.
type label struct {
	wm     *WM
	window xproto.Window
	gc     xproto.Gcontext
	style  LabelStyle
	width  uint16
	height uint16
	shown  bool
}

func (c *Client) showLabel(x, y int, style LabelStyle) {
	wm := c.wm
	if c.label == nil {
		l, err := newLabel(wm)
		if err != nil {
			return
		}
		c.label = l
		wm.labels[l.window] = c
	}
	l := c.label

	tw, th := wm.TextSize(style.Text)
	l.width = dimension(tw * style.Scale)
	l.height = dimension(th * style.Scale)
	l.style = style

	xproto.ChangeWindowAttributes(wm.conn, l.window, xproto.CwBackPixel, []uint32{pixel(style.Background)})
	xproto.ChangeGC(wm.conn, l.gc, xproto.GcForeground|xproto.GcBackground,
		[]uint32{pixel(style.Color), pixel(style.Background)})
	xproto.ConfigureWindow(wm.conn, l.window,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{uint32(int32(x + style.X)), uint32(int32(y + style.Y)), uint32(l.width), uint32(l.height), xproto.StackModeAbove})
	if !l.shown {
		xproto.MapWindow(wm.conn, l.window)
		l.shown = true
	}
	xproto.ClearArea(wm.conn, false, l.window, 0, 0, 0, 0)
	l.draw()
}

func newLabel(wm *WM) (*label, error) {
	window, err := xproto.NewWindowId(wm.conn)
	if err != nil {
		return nil, err
	}
	err = xproto.CreateWindowChecked(wm.conn, wm.screen.RootDepth,
		window, wm.root,
		0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, wm.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{0, 1, xproto.EventMaskExposure}).Check()
	if err != nil {
		return nil, err
	}

	gc, err := xproto.NewGcontextId(wm.conn)
	if err != nil {
		xproto.DestroyWindow(wm.conn, window)
		return nil, err
	}
	xproto.CreateGC(wm.conn, gc, xproto.Drawable(window), xproto.GcFont, []uint32{uint32(wm.font.id)})

	return &label{wm: wm, window: window, gc: gc}, nil
}

func (l *label) draw() {
	if !l.shown || l.style.Text == "" {
		return
	}
	tw, _ := l.wm.TextSize(l.style.Text)
	x := (int(l.width) - int(tw)) / 2
	y := (int(l.height)-l.wm.font.ascent-l.wm.font.descent)/2 + l.wm.font.ascent
	text := l.style.Text
	if len(text) > 255 {
		text = text[:255]
	}
	xproto.ImageText8(l.wm.conn, byte(len(text)), xproto.Drawable(l.window), l.gc, int16(x), int16(y), text)
}

func (c *Client) hideLabel() {
	if c.label == nil || !c.label.shown {
		return
	}
	c.label.shown = false
	xproto.UnmapWindow(c.wm.conn, c.label.window)
}

func (c *Client) destroyLabel() {
	if c.label == nil {
		return
	}
	delete(c.wm.labels, c.label.window)
	xproto.FreeGC(c.wm.conn, c.label.gc)
	xproto.DestroyWindow(c.wm.conn, c.label.window)
	c.label = nil
}

// pixel converts RGBA to a 24-bit TrueColor pixel.
func pixel(rgba uint32) uint32 {
	return rgba >> 8
}
