// Package input turns raw terminal bytes into key and mouse events.
package input

import (
	"bufio"
	"io"
	"strconv"
	"unicode/utf8"
)

// Key identifies a key press.
type Key int

const (
	KeyRune Key = iota // Printable character, see Event.Rune
	KeyEnter
	KeyEscape
	KeySpace
	KeyTab
	KeyBackspace
	KeyInterrupt // Ctrl-C
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Kind tells key events from mouse events.
type Kind int

const (
	KindKey Kind = iota
	KindMouse
)

// Mouse buttons as reported by SGR mouse mode (low two bits).
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)

// Event is one key press or mouse report.
type Event struct {
	Kind Kind
	Key  Key
	Rune rune

	// Mouse fields. Col and Row are 1-based terminal cells.
	Button  int
	Col     int
	Row     int
	Pressed bool // false for a release
	Motion  bool
}

// LeftClick reports whether the event is a left button press.
func (e Event) LeftClick() bool {
	return e.Kind == KindMouse && e.Pressed && !e.Motion && e.Button == ButtonLeft
}

// Stream delivers input bytes via a channel and keeps partial escape
// sequences between frames.
type Stream struct {
	ch      chan byte
	done    chan struct{} // Closed by Stop
	exited  chan struct{} // Closed when the reader goroutine returns
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{
		ch:     make(chan byte, 256),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go func() {
		defer close(s.exited)
		defer close(s.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Stop abandons the stream. The reader goroutine returns on its next byte
// or at EOF instead of blocking on a full buffer. Safe to call more than once.
func (s *Stream) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// ReadEvents drains all available bytes (non-blocking) and returns the
// events they form, in arrival order. An incomplete sequence at the end is
// held back until the next call; if no new bytes arrive by then it is
// flushed as plain keys, so a lone Esc still registers.
func (s *Stream) ReadEvents() []Event {
	buf := s.pending
	fresh := 0
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			fresh++
		default:
			break drain
		}
	}
	if len(buf) == 0 {
		return nil
	}

	events, rest := Parse(buf, fresh == 0 || s.closed)
	s.pending = append(s.pending[:0:0], rest...)
	return events
}

// Closed reports whether the underlying reader hit EOF or failed.
func (s *Stream) Closed() bool {
	return s.closed
}

// Parse decodes buf into events. Unless final is set, a trailing incomplete
// escape sequence or UTF-8 rune is returned as rest instead of being decoded.
func Parse(buf []byte, final bool) (events []Event, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]
		switch {
		case b == '\x1b':
			ev, n, ok := parseEscape(buf[i:])
			if !ok {
				if !final {
					return events, buf[i:]
				}
				// Give up on the sequence: report Esc and reparse the rest as keys.
				events = append(events, Event{Kind: KindKey, Key: KeyEscape})
				i++
				continue
			}
			if ev != nil {
				events = append(events, *ev)
			}
			i += n
		case b == 0x03:
			events = append(events, Event{Kind: KindKey, Key: KeyInterrupt})
			i++
		case b == '\r' || b == '\n':
			events = append(events, Event{Kind: KindKey, Key: KeyEnter})
			i++
		case b == ' ':
			events = append(events, Event{Kind: KindKey, Key: KeySpace, Rune: ' '})
			i++
		case b == '\t':
			events = append(events, Event{Kind: KindKey, Key: KeyTab})
			i++
		case b == 0x7f || b == '\b':
			events = append(events, Event{Kind: KindKey, Key: KeyBackspace})
			i++
		case b < 0x20:
			i++ // Other control bytes are ignored
		default:
			r, n := utf8.DecodeRune(buf[i:])
			if r == utf8.RuneError && n <= 1 {
				if !final && !utf8.FullRune(buf[i:]) {
					return events, buf[i:]
				}
				i++
				continue
			}
			events = append(events, Event{Kind: KindKey, Key: KeyRune, Rune: r})
			i += n
		}
	}
	return events, nil
}

// parseEscape decodes a sequence starting with ESC. ok is false when the
// sequence is incomplete; ev is nil for recognized but unused sequences.
func parseEscape(buf []byte) (ev *Event, n int, ok bool) {
	if len(buf) < 2 {
		return nil, 0, false
	}
	switch buf[1] {
	case '[':
		if len(buf) < 3 {
			return nil, 0, false
		}
		if buf[2] == '<' {
			return parseSGRMouse(buf)
		}
		// Generic CSI: parameters then a final byte in 0x40..0x7e.
		for j := 2; j < len(buf); j++ {
			c := buf[j]
			if c >= 0x40 && c <= 0x7e {
				if j == 2 {
					if k, isArrow := arrow(c); isArrow {
						return &Event{Kind: KindKey, Key: k}, 3, true
					}
				}
				return nil, j + 1, true
			}
		}
		return nil, 0, false
	case 'O':
		if len(buf) < 3 {
			return nil, 0, false
		}
		if k, isArrow := arrow(buf[2]); isArrow {
			return &Event{Kind: KindKey, Key: k}, 3, true
		}
		return nil, 3, true
	default:
		// ESC followed by an unrelated byte: a plain Esc press.
		return &Event{Kind: KindKey, Key: KeyEscape}, 1, true
	}
}

// parseSGRMouse decodes ESC [ < b ; col ; row (M|m).
func parseSGRMouse(buf []byte) (*Event, int, bool) {
	end := -1
	for j := 3; j < len(buf); j++ {
		c := buf[j]
		if c == 'M' || c == 'm' {
			end = j
			break
		}
		if (c < '0' || c > '9') && c != ';' {
			// Not a mouse report after all; drop through the bad byte.
			return nil, j + 1, true
		}
	}
	if end < 0 {
		return nil, 0, false
	}

	fields := splitSemicolons(buf[3:end])
	if len(fields) != 3 {
		return nil, end + 1, true
	}
	var vals [3]int
	for k, f := range fields {
		v, err := strconv.Atoi(string(f))
		if err != nil {
			return nil, end + 1, true
		}
		vals[k] = v
	}
	code := vals[0]
	return &Event{
		Kind:    KindMouse,
		Button:  code & 3,
		Motion:  code&32 != 0 || code&64 != 0, // Drag or wheel
		Col:     vals[1],
		Row:     vals[2],
		Pressed: buf[end] == 'M',
	}, end + 1, true
}

func splitSemicolons(b []byte) [][]byte {
	var out [][]byte
	start := 0
	for j, c := range b {
		if c == ';' {
			out = append(out, b[start:j])
			start = j + 1
		}
	}
	return append(out, b[start:])
}

func arrow(c byte) (Key, bool) {
	switch c {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return 0, false
}

// EnableMouse turns on button press reporting in SGR encoding.
func EnableMouse(w io.Writer) {
	io.WriteString(w, "\033[?1000h\033[?1006h")
}

// DisableMouse undoes EnableMouse.
func DisableMouse(w io.Writer) {
	io.WriteString(w, "\033[?1006l\033[?1000l")
}
