// Package xcursor creates X11 cursors from the standard cursor font.
package xcursor

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Glyph indexes into the cursor font. Each cursor uses its glyph and the
// next one as the mask.
const (
	LeftPtr        = 68
	Fleur          = 52
	SBHDoubleArrow = 108
	SBVDoubleArrow = 116
	Watch          = 150
)

// Cache opens the cursor font once and creates every cursor at most once.
type Cache struct {
	conn    *xgb.Conn
	font    xproto.Font
	cursors map[uint16]xproto.Cursor
}

func NewCache(conn *xgb.Conn) (*Cache, error) {
	font, err := xproto.NewFontId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.OpenFontChecked(conn, font, uint16(len("cursor")), "cursor").Check(); err != nil {
		return nil, err
	}
	return &Cache{
		conn:    conn,
		font:    font,
		cursors: make(map[uint16]xproto.Cursor),
	}, nil
}

// Get returns a white on black cursor for glyph.
func (c *Cache) Get(glyph uint16) (xproto.Cursor, error) {
	if cursor, ok := c.cursors[glyph]; ok {
		return cursor, nil
	}

	cursor, err := xproto.NewCursorId(c.conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateGlyphCursorChecked(c.conn, cursor, c.font, c.font,
		glyph, glyph+1,
		0xffff, 0xffff, 0xffff,
		0, 0, 0).Check()
	if err != nil {
		return 0, err
	}

	c.cursors[glyph] = cursor
	return cursor, nil
}

// Close frees every cursor and the font.
func (c *Cache) Close() {
	for _, cursor := range c.cursors {
		xproto.FreeCursor(c.conn, cursor)
	}
	c.cursors = make(map[uint16]xproto.Cursor)
	xproto.CloseFont(c.conn, c.font)
}
