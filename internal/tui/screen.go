// Package tui renders the client through a tcell screen instead of raw ANSI
// output, and reads keys from tcell events.
package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/input"
	"github.com/tomz197/campus-invaders/internal/loop/client"
)

// Screen is a client terminal and key source backed by tcell.
type Screen struct {
	screen  tcell.Screen
	events  chan tcell.Event
	tracker *input.Tracker
	closed  bool
	now     func() time.Time
}

var (
	_ client.Terminal  = (*Screen)(nil)
	_ client.KeySource = (*Screen)(nil)
)

// Open creates and initialises a tcell screen on the controlling terminal.
func Open(hold time.Duration) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("tcell init: %w", err)
	}
	return New(s, hold), nil
}

// New wraps an initialised tcell screen.
func New(s tcell.Screen, hold time.Duration) *Screen {
	return &Screen{
		screen:  s,
		events:  make(chan tcell.Event, 100),
		tracker: input.NewTracker(hold),
		now:     time.Now,
	}
}

func (s *Screen) Size() (int, int, error) {
	w, h := s.screen.Size()
	return w, h, nil
}

// Begin hides the cursor and starts delivering events.
func (s *Screen) Begin() {
	s.screen.HideCursor()
	s.screen.Clear()
	go s.poll()
}

// End releases the terminal. The event poller exits with it.
func (s *Screen) End() {
	s.screen.Fini()
}

func (s *Screen) poll() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			close(s.events)
			return
		}
		s.events <- ev
	}
}

func (s *Screen) Clear() {
	s.screen.Clear()
}

// DrawCanvas copies the canvas cells and labels onto the screen.
func (s *Screen) DrawCanvas(c *draw.Canvas) {
	ox, oy := c.OffsetCol(), c.OffsetRow()
	c.EachCell(func(col, row int, cell draw.Cell) {
		style := tcell.StyleDefault
		if cell.HasFG {
			style = style.Foreground(rgb(cell.FG))
		}
		if cell.HasBG {
			style = style.Background(rgb(cell.BG))
		}
		s.screen.SetContent(ox+col, oy+row, cell.Rune, nil, style)
	})
	c.EachText(func(col, row int, text string, fg, bg draw.Color, hasBG bool) {
		style := tcell.StyleDefault.Foreground(rgb(fg))
		if hasBG {
			style = style.Background(rgb(bg))
		}
		s.put(ox+col, oy+row, text, style)
	})
}

// DrawBorder frames the render area on the sides where there is room,
// like the ANSI border.
func (s *Screen) DrawBorder(c *draw.Canvas, col draw.Color) {
	style := tcell.StyleDefault.Foreground(rgb(col))
	hasH := c.OffsetCol() >= 1
	hasV := c.OffsetRow() >= 2

	// 0-based cells around the render area
	left := c.OffsetCol() - 1
	right := c.OffsetCol() + c.TerminalWidth()
	bottom := c.OffsetRow() + c.TerminalHeight()

	if hasV {
		s.put(c.OffsetCol(), bottom, strings.Repeat("─", c.TerminalWidth()), style)
		if hasH {
			s.screen.SetContent(left, bottom, '└', nil, style)
			s.screen.SetContent(right, bottom, '┘', nil, style)
		}
	}
	if hasH {
		for row := c.OffsetRow(); row < bottom; row++ {
			s.screen.SetContent(left, row, '│', nil, style)
			s.screen.SetContent(right, row, '│', nil, style)
		}
	}
}

// WriteAt writes s at the 1-based cell (col, row).
func (s *Screen) WriteAt(col, row int, text string, fg draw.Color) {
	s.put(col-1, row-1, text, tcell.StyleDefault.Foreground(rgb(fg)))
}

func (s *Screen) Flush() error {
	s.screen.Show()
	return nil
}

func (s *Screen) put(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// Read drains pending events and returns the held keys.
func (s *Screen) Read() input.Input {
	now := s.now()
	var pressed []byte

drain:
	for !s.closed {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.closed = true
				break drain
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				pressed = s.press(ev, now, pressed)
			case *tcell.EventResize:
				s.screen.Sync()
			}
		default:
			break drain
		}
	}

	in := s.tracker.Snapshot(now)
	in.Pressed = pressed
	if s.closed {
		in.Quit = true
	}
	return in
}

// press records the action of a key event and appends its bytes to pressed.
func (s *Screen) press(ev *tcell.EventKey, now time.Time, pressed []byte) []byte {
	switch ev.Key() {
	case tcell.KeyLeft:
		s.tracker.Press(input.KeyLeft, now)
	case tcell.KeyRight:
		s.tracker.Press(input.KeyRight, now)
	case tcell.KeyUp:
		s.tracker.Press(input.KeyFire, now)
	case tcell.KeyEnter:
		s.tracker.Press(input.KeyStart, now)
	case tcell.KeyCtrlC, tcell.KeyEscape:
		s.tracker.Press(input.KeyQuit, now)
	case tcell.KeyRune:
		r := ev.Rune()
		if r < utf8.RuneSelf {
			if k, ok := input.KeyForByte(byte(r)); ok {
				s.tracker.Press(k, now)
			}
		}
		return utf8.AppendRune(pressed, r)
	}
	return append(pressed, '\x1b')
}

func (s *Screen) Reset() {
	s.tracker.Reset()
}

func rgb(c draw.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
