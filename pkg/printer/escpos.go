package printer

import (
	"bytes"
	"strings"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

const (
	FontNormal = 0x00
	FontDouble = 0x11
)

// Document builds an ESC/POS byte stream. Width is the number of characters
// per line: 32 on 58mm paper, 48 on 80mm.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document with the printer initialise command
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Width returns the characters per line
func (d *Document) Width() int {
	return d.width
}

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes one line, cut to the paper width
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(clip(s, d.width))
	d.buf.WriteByte(LF)
	return d
}

// Separator fills a line with char
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints key on the left and value on the right of one line.
// A key too long to fit is shortened; the value is never cut.
func (d *Document) KeyValue(key, value string) *Document {
	room := d.width - len(value) - 1
	if room < 0 {
		room = 0
	}
	key = clip(key, room)
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", max(1, d.width-len(key)-len(value))))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// PartialCut cuts the paper leaving a small hinge
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated stream
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
