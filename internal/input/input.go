package input

import (
	"bufio"
	"time"
)

// DefaultHoldDuration is how long a key is considered "held" after its last press.
// Terminals report no key release, so holding a key is seen as a stream of
// repeats; the window bridges the gaps between them.
const DefaultHoldDuration = 80 * time.Millisecond

// Input represents the current tick's input state.
type Input struct {
	Left    bool
	Right   bool
	Fire    bool
	Start   bool
	Quit    bool
	Pressed []byte // Raw bytes seen since the previous sample
}

// Key identifies a game action.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyFire
	KeyStart
	KeyQuit
	keyCount
)

// Tracker remembers the last time each action key was pressed.
// It is not safe for concurrent use; feed it from the goroutine that samples it.
type Tracker struct {
	hold time.Duration
	last [keyCount]time.Time
}

// NewTracker creates a tracker with the given hold window.
// A non-positive hold uses DefaultHoldDuration.
func NewTracker(hold time.Duration) *Tracker {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	return &Tracker{hold: hold}
}

// Press records a press of k at now.
func (t *Tracker) Press(k Key, now time.Time) {
	if k >= 0 && k < keyCount {
		t.last[k] = now
	}
}

// Held reports whether k was pressed within the hold window before now.
func (t *Tracker) Held(k Key, now time.Time) bool {
	last := t.last[k]
	return !last.IsZero() && now.Sub(last) < t.hold
}

// Snapshot builds the input state as of now.
func (t *Tracker) Snapshot(now time.Time) Input {
	return Input{
		Left:  t.Held(KeyLeft, now),
		Right: t.Held(KeyRight, now),
		Fire:  t.Held(KeyFire, now),
		Start: t.Held(KeyStart, now),
		Quit:  t.Held(KeyQuit, now),
	}
}

// Reset forgets every press, e.g. so the key that started a game does not
// keep acting in it.
func (t *Tracker) Reset() {
	t.last = [keyCount]time.Time{}
}

// KeyForByte maps a single input byte to its action key.
func KeyForByte(b byte) (Key, bool) {
	switch b {
	case 'a', 'A':
		return KeyLeft, true
	case 'd', 'D':
		return KeyRight, true
	case ' ':
		return KeyFire, true
	case '\n', '\r', 'r', 'R':
		return KeyStart, true
	case 'q', 'Q', 0x03: // 0x03 is Ctrl-C in raw mode
		return KeyQuit, true
	}
	return 0, false
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	tracker *Tracker
	now     func() time.Time
	pending []byte // Unfinished escape sequence from the previous read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader, hold time.Duration) *Stream {
	s := newStream(hold)
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream(hold time.Duration) *Stream {
	return &Stream{
		ch:      make(chan byte, 128),
		tracker: NewTracker(hold),
		now:     time.Now,
	}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// An escape sequence cut off at the end of the drained bytes is kept for the
// next read. A closed stream (reader hit EOF) reports Quit.
func ReadInput(s *Stream) Input {
	now := s.now()
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	keys := append(s.pending, buf...)
	s.pending = nil

	for i := 0; i < len(keys); i++ {
		b := keys[i]
		if b != '\x1b' {
			if k, ok := KeyForByte(b); ok {
				s.tracker.Press(k, now)
			}
			continue
		}

		// ESC alone at the end may start a sequence still in flight
		if i+1 == len(keys) {
			if !closed {
				s.pending = append(s.pending, keys[i:]...)
			}
			break
		}
		if keys[i+1] != '[' {
			continue
		}

		// CSI sequence: ESC [ <params> <final>, final byte in 0x40-0x7e
		end := csiEnd(keys, i+2)
		if end < 0 {
			if !closed {
				s.pending = append(s.pending, keys[i:]...)
			}
			break
		}
		switch keys[end] {
		case 'A': // Up arrow fires
			s.tracker.Press(KeyFire, now)
		case 'C':
			s.tracker.Press(KeyRight, now)
		case 'D':
			s.tracker.Press(KeyLeft, now)
		}
		i = end
	}

	in := s.tracker.Snapshot(now)
	in.Pressed = buf
	if closed {
		in.Quit = true
	}
	return in
}

// csiEnd returns the index of the final byte of a CSI sequence whose
// parameters start at from, or -1 if the sequence is incomplete.
func csiEnd(b []byte, from int) int {
	for j := from; j < len(b); j++ {
		if b[j] >= 0x40 && b[j] <= 0x7e {
			return j
		}
	}
	return -1
}

// ResetKeyInput clears held key state.
func ResetKeyInput(s *Stream) {
	s.tracker.Reset()
}
