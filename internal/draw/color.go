package draw

import (
	"strconv"
	"strings"
)

// Color is a 24-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// Hex builds a colour from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Palette used by the game and its screens.
var (
	White = Hex(0xffffff)
	Black = Hex(0x000000)
	Red   = Hex(0xff3040)
	Gray  = Hex(0x9a9a9a)
	Gold  = Hex(0xffd24a)
	Cyan  = Hex(0x00ffcc)
)

// ANSI attribute reset.
const ColorReset = "\033[0m"

// writeFG appends a truecolor foreground escape to b.
func writeFG(b *strings.Builder, c Color) {
	writeSGR(b, "38", c)
}

// writeBG appends a truecolor background escape to b.
func writeBG(b *strings.Builder, c Color) {
	writeSGR(b, "48", c)
}

func writeSGR(b *strings.Builder, kind string, c Color) {
	var num [3]byte
	b.WriteString("\033[")
	b.WriteString(kind)
	b.WriteString(";2;")
	b.Write(strconv.AppendUint(num[:0], uint64(c.R), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendUint(num[:0], uint64(c.G), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendUint(num[:0], uint64(c.B), 10))
	b.WriteByte('m')
}
