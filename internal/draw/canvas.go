package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Render area columns
	termHeight     int     // Render area rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	lit            []bool  // true if the pixel at the same index is set

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	texts []textItem // Text queued since the last Clear

	renderBuf strings.Builder // Buffer for batching render output
}

// textItem is a text run anchored at a 0-based canvas cell.
type textItem struct {
	col, row int
	value    string
	fg       Color
}

// Cell is the terminal representation of two stacked canvas pixels.
type Cell struct {
	Rune  rune
	FG    Color
	BG    Color
	HasFG bool
	HasBG bool
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the dimensions of the render area in terminal cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.lit = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Width returns the logical width.
func (c *Canvas) Width() float64 {
	return c.logicalWidth
}

// Height returns the logical height.
func (c *Canvas) Height() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Clear resets all pixels and queued text.
func (c *Canvas) Clear() {
	clear(c.lit)
	c.texts = c.texts[:0]
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		idx := y*c.termWidth + x
		c.pixels[idx] = col
		c.lit[idx] = true
	}
}

// pixel reports the colour at terminal pixel coordinates.
func (c *Canvas) pixel(x, y int) (Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Color{}, false
	}
	idx := y*c.termWidth + x
	return c.pixels[idx], c.lit[idx]
}

// FillRect fills an axis-aligned rectangle given in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	fillRect(c, x*c.scaleX, y*c.scaleY, w*c.scaleX, h*c.scaleY, col)
}

// FillCircle fills a circle given in logical coordinates. Because the
// axes scale independently the circle may rasterise as an ellipse.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	fillEllipse(c, cx*c.scaleX, cy*c.scaleY, r*c.scaleX, r*c.scaleY, col)
}

// DrawText queues s centred on the logical point (cx, cy). Text is drawn
// on top of the pixels when the canvas is rendered.
func (c *Canvas) DrawText(cx, cy float64, s string, col Color) {
	if s == "" {
		return
	}
	px := int(math.Round(cx * c.scaleX))
	py := int(math.Round(cy * c.scaleY))
	c.texts = append(c.texts, textItem{
		col:   px - runewidth.StringWidth(s)/2,
		row:   py / 2,
		value: s,
		fg:    col,
	})
}

// CellAt returns the terminal cell at a 0-based canvas column and row.
func (c *Canvas) CellAt(col, row int) Cell {
	top, topLit := c.pixel(col, row*2)
	bottom, bottomLit := c.pixel(col, row*2+1)

	switch {
	case topLit && bottomLit && top == bottom:
		return Cell{Rune: BlockFull, FG: top, HasFG: true}
	case topLit && bottomLit:
		return Cell{Rune: BlockUpperHalf, FG: top, BG: bottom, HasFG: true, HasBG: true}
	case topLit:
		return Cell{Rune: BlockUpperHalf, FG: top, HasFG: true}
	case bottomLit:
		return Cell{Rune: BlockLowerHalf, FG: bottom, HasFG: true}
	default:
		return Cell{Rune: BlockEmpty}
	}
}

// EachCell calls fn for every cell of the render area, row by row.
func (c *Canvas) EachCell(fn func(col, row int, cell Cell)) {
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			fn(col, row, c.CellAt(col, row))
		}
	}
}

// EachText calls fn for every queued text run clipped to the render area.
// bg is the colour of the pixel under the first character, if any, so
// labels can sit on top of filled shapes.
func (c *Canvas) EachText(fn func(col, row int, s string, fg, bg Color, hasBG bool)) {
	for _, t := range c.texts {
		if t.row < 0 || t.row >= c.termHeight {
			continue
		}
		col, s := t.col, t.value
		if col < 0 {
			s = trimLeftCells(s, -col)
			col = 0
		}
		if room := c.termWidth - col; runewidth.StringWidth(s) > room {
			s = runewidth.Truncate(s, room, "")
		}
		if s == "" {
			continue
		}
		bg, hasBG := c.pixel(col, t.row*2)
		fn(col, t.row, s, t.fg, bg, hasBG)
	}
}

// trimLeftCells drops leading runes until n cells are removed.
func trimLeftCells(s string, n int) string {
	for i, r := range s {
		if n <= 0 {
			return s[i:]
		}
		n -= runewidth.RuneWidth(r)
	}
	return ""
}

// Render outputs the canvas to the writer using coloured half-block characters.
// Every cell of the render area is rewritten, so no screen clear is needed between frames.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 24)

	var num [20]byte
	for row := 0; row < c.termHeight; row++ {
		c.renderBuf.WriteString("\033[")
		c.renderBuf.Write(strconv.AppendInt(num[:0], int64(row+1+c.offsetRow), 10))
		c.renderBuf.WriteByte(';')
		c.renderBuf.Write(strconv.AppendInt(num[:0], int64(1+c.offsetCol), 10))
		c.renderBuf.WriteByte('H')

		var cur Cell
		styled := false
		for col := 0; col < c.termWidth; col++ {
			cell := c.CellAt(col, row)
			if !styled || cell.HasFG != cur.HasFG || cell.HasBG != cur.HasBG || cell.FG != cur.FG || cell.BG != cur.BG {
				c.renderBuf.WriteString(ColorReset)
				if cell.HasFG {
					writeFG(&c.renderBuf, cell.FG)
				}
				if cell.HasBG {
					writeBG(&c.renderBuf, cell.BG)
				}
				cur = cell
				styled = true
			}
			c.renderBuf.WriteRune(cell.Rune)
		}
		c.renderBuf.WriteString(ColorReset)
	}

	c.EachText(func(col, row int, s string, fg, bg Color, hasBG bool) {
		c.renderBuf.WriteString("\033[")
		c.renderBuf.Write(strconv.AppendInt(num[:0], int64(row+1+c.offsetRow), 10))
		c.renderBuf.WriteByte(';')
		c.renderBuf.Write(strconv.AppendInt(num[:0], int64(col+1+c.offsetCol), 10))
		c.renderBuf.WriteByte('H')
		writeFG(&c.renderBuf, fg)
		if hasBG {
			writeBG(&c.renderBuf, bg)
		}
		c.renderBuf.WriteString(s)
		c.renderBuf.WriteString(ColorReset)
	})

	io.WriteString(w, c.renderBuf.String())
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical room, vertical borders
// when there is horizontal room, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer, col Color) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 2 // Row offsetRow is reserved for the HUD

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	writeFG(&buf, col)

	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			buf.WriteString(cursorTo(bottom, left) + "└" + line + "┘")
		} else {
			buf.WriteString(cursorTo(bottom, c.offsetCol+1) + line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row < bottom; row++ {
			buf.WriteString(cursorTo(row, left) + "│" + cursorTo(row, right) + "│")
		}
	}

	buf.WriteString(ColorReset)
	io.WriteString(w, buf.String())
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

func cursorTo(row, col int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}
