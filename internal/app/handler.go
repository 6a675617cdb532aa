package app

import (
	"github.com/ItsNotGoodName/x-scroller/internal/xwm"
)

// Handler feeds X11 events into the server.
type Handler struct {
	*Server
}

var _ xwm.Handler = Handler{}

func (h Handler) Map(c *xwm.Client) {
	c.Container = h.MapView(c)
}

func (h Handler) Unmap(c *xwm.Client) {
	h.UnmapView(c.Container)
}

func (h Handler) Ack(c *xwm.Client, serial uint32) {
	h.Txn.NotifyBySerial(c.Container, serial)
}

func (h Handler) Title(c *xwm.Client) {
	if container := h.Tree.Container(c.Container); container != nil {
		h.publishWindow("title", container)
	}
}

func (h Handler) Focus(c *xwm.Client) {
	h.FocusView(c.Container)
}

// Key feeds a running jump. A key that is not a label ends it.
func (h Handler) Key(r rune) {
	if h.Jump.Active() {
		h.Jump.Key(r)
	}
}

func (h Handler) Pointer(p xwm.Pointer) {
	switch p.Kind {
	case xwm.PointerPress:
		if p.Client != nil {
			h.DragBegin(p.Client.Container, p.X, p.Y)
		}
	case xwm.PointerMotion:
		h.DragMotion(p.X, p.Y)
	case xwm.PointerRelease:
		h.DragEnd(p.X, p.Y)
	case xwm.PointerScroll:
		h.Scroll(p.X, p.Y, p.DX, p.DY)
	}
}

func (h Handler) Monitors(monitors []xwm.Monitor) {
	h.SetMonitors(monitors)
}
