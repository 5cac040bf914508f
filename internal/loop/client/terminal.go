package client

import (
	"io"

	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/input"
)

// Terminal is an output backend the client renders frames to.
// Coordinates are 1-based terminal cells.
type Terminal interface {
	Size() (cols, rows int, err error)
	Begin()
	End()
	Clear()
	DrawCanvas(c *draw.Canvas)
	DrawBorder(c *draw.Canvas, col draw.Color)
	WriteAt(col, row int, s string, fg draw.Color)
	Flush() error
}

// KeySource delivers the held keys of the player.
type KeySource interface {
	Read() input.Input
	// Reset forgets held keys.
	Reset()
}

// ANSITerminal renders with ANSI escape sequences to a byte stream, e.g. a
// raw-mode TTY or an SSH channel.
type ANSITerminal struct {
	cw   *draw.ChunkWriter
	size draw.TermSizeFunc
}

// Ensure ANSITerminal satisfies Terminal.
var _ Terminal = (*ANSITerminal)(nil)

// NewANSITerminal creates a terminal writing to w. size reports the
// terminal dimensions; nil uses draw.DefaultTermSizeFunc.
func NewANSITerminal(w io.Writer, size draw.TermSizeFunc) *ANSITerminal {
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}
	return &ANSITerminal{cw: draw.NewChunkWriter(w), size: size}
}

func (t *ANSITerminal) Size() (int, int, error) {
	return t.size()
}

// Begin switches to the alternate screen and hides the cursor.
func (t *ANSITerminal) Begin() {
	draw.EnterAltScreen(t.cw)
	draw.HideCursor(t.cw)
	draw.ClearScreen(t.cw)
	_ = t.cw.Flush()
}

// End restores the cursor and the main screen.
func (t *ANSITerminal) End() {
	draw.ClearScreen(t.cw)
	draw.ShowCursor(t.cw)
	draw.ExitAltScreen(t.cw)
	_ = t.cw.Flush()
}

func (t *ANSITerminal) Clear() {
	draw.ClearScreen(t.cw)
}

func (t *ANSITerminal) DrawCanvas(c *draw.Canvas) {
	c.Render(t.cw)
}

func (t *ANSITerminal) DrawBorder(c *draw.Canvas, col draw.Color) {
	c.RenderBorder(t.cw, col)
}

func (t *ANSITerminal) WriteAt(col, row int, s string, fg draw.Color) {
	t.cw.WriteColoredAt(col, row, s, fg)
}

func (t *ANSITerminal) Flush() error {
	return t.cw.Flush()
}

// StreamKeys reads keys from a terminal byte stream.
type StreamKeys struct {
	stream *input.Stream
}

// NewStreamKeys wraps an input stream.
func NewStreamKeys(s *input.Stream) *StreamKeys {
	return &StreamKeys{stream: s}
}

func (k *StreamKeys) Read() input.Input {
	return input.ReadInput(k.stream)
}

func (k *StreamKeys) Reset() {
	input.ResetKeyInput(k.stream)
}
