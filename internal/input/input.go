// Package input turns a raw terminal byte stream into per-frame input state.
package input

import (
	"bufio"
	"io"
	"strconv"
	"time"
)

// keyHoldDuration is how long a direction key is considered "held" after
// its last press. Terminals only report key repeats, never releases.
const keyHoldDuration = 60 * time.Millisecond

// Mouse is the latest pointer report in 1-based terminal cells.
type Mouse struct {
	Col     int
	Row     int
	Button  int  // SGR button code with modifier bits stripped
	Pressed bool // False for release reports
}

// Input represents the current frame's input state.
// Directions are held; everything else only reflects this frame's bytes.
type Input struct {
	Quit      bool // q / Q
	Interrupt bool // Ctrl+C
	Up        bool
	Down      bool
	Left      bool
	Right     bool
	Space     bool
	Enter     bool
	Tab       bool
	Escape    bool
	Restart   bool // r / R
	Backspace int  // Number of backspace presses
	Text      []rune
	Mouse     Mouse
	HasMouse  bool
	Pressed   []byte
}

// keyState tracks the last time each direction was pressed.
type keyState struct {
	up    time.Time
	down  time.Time
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried to the next read
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
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

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ResetKeyInput forgets held keys so they don't leak into the next screen.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
	s.pending = s.pending[:0]
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and SGR mouse reports.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := append([]byte(nil), s.pending...)
	s.pending = s.pending[:0]

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var in Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			n, complete := parseCSI(s, &in, buf[i:], now)
			if !complete && !s.closed {
				s.pending = append(s.pending, buf[i:]...)
				break
			}
			if n > 0 {
				i += n - 1
				continue
			}
		}

		applyByte(s, &in, b, now)
	}

	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Pressed = buf
	return in
}

// parseCSI handles a sequence starting with ESC [. It returns the number of
// bytes consumed (0 if the sequence is malformed) and whether the sequence
// was complete.
func parseCSI(s *Stream, in *Input, seq []byte, now time.Time) (int, bool) {
	if len(seq) < 3 {
		return 0, false
	}

	switch seq[2] {
	case 'A': // Up arrow
		s.state.up = now
		return 3, true
	case 'B': // Down arrow
		s.state.down = now
		return 3, true
	case 'C': // Right arrow
		s.state.right = now
		return 3, true
	case 'D': // Left arrow
		s.state.left = now
		return 3, true
	case '<':
		return parseSGRMouse(in, seq)
	}

	// Skip any other CSI sequence up to its final byte.
	for i := 2; i < len(seq); i++ {
		if seq[i] >= 0x40 && seq[i] <= 0x7e {
			return i + 1, true
		}
	}
	return 0, false
}

// parseSGRMouse parses ESC [ < b ; x ; y (M|m).
func parseSGRMouse(in *Input, seq []byte) (int, bool) {
	var fields [3]int
	field := 0
	start := 3
	for i := 3; i < len(seq); i++ {
		c := seq[i]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && field < 2:
			v, err := strconv.Atoi(string(seq[start:i]))
			if err != nil {
				return 0, true
			}
			fields[field] = v
			field++
			start = i + 1
		case (c == 'M' || c == 'm') && field == 2:
			v, err := strconv.Atoi(string(seq[start:i]))
			if err != nil {
				return 0, true
			}
			fields[2] = v
			in.Mouse = Mouse{
				Button:  fields[0] &^ (4 | 8 | 16 | 32),
				Col:     fields[1],
				Row:     fields[2],
				Pressed: c == 'M',
			}
			in.HasMouse = true
			return i + 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

// applyByte updates key state and frame flags for a single byte.
func applyByte(s *Stream, in *Input, b byte, now time.Time) {
	switch b {
	case 'w', 'W':
		s.state.up = now
	case 's', 'S':
		s.state.down = now
	case 'a', 'A':
		s.state.left = now
	case 'd', 'D':
		s.state.right = now
	case 'q', 'Q':
		in.Quit = true
	case 'r', 'R':
		in.Restart = true
	case ' ':
		in.Space = true
	case '\n', '\r':
		in.Enter = true
	case '\t':
		in.Tab = true
	case '\b', '\x7f':
		in.Backspace++
	case '\x1b':
		in.Escape = true
	case '\x03':
		in.Interrupt = true
	}

	if b >= 0x20 && b < 0x7f {
		in.Text = append(in.Text, rune(b))
	}
}

// EnableMouse turns on any-event mouse tracking with SGR coordinates.
func EnableMouse(w io.Writer) {
	io.WriteString(w, "\033[?1003h\033[?1006h")
}

// DisableMouse turns mouse tracking off again.
func DisableMouse(w io.Writer) {
	io.WriteString(w, "\033[?1003l\033[?1006l")
}
